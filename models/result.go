package models

import (
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
	"gitlab.com/aoterocom/AOBacktester/helpers"
	"math"
	"time"
)

const (
	msPerYear         = 365 * 86400000
	maxProfitFactor   = 999.0
	equityCurveOrigin = 1.0
)

type EquityPoint struct {
	Time   int64   `json:"time"`
	Equity float64 `json:"equity"`
}

// BacktestResult is derived entirely from its trades and never changes after
// construction.
type BacktestResult struct {
	Trades              []Trade             `json:"trades"`
	TotalTrades         int                 `json:"totalTrades"`
	TotalReturnPct      float64             `json:"totalReturnPct"`
	AvgReturnPct        float64             `json:"avgReturnPct"`
	WinRate             float64             `json:"winRate"`
	EquityCurve         []EquityPoint       `json:"equityCurve"`
	FinalEquity         float64             `json:"finalEquity"`
	MaxDrawdownPct      float64             `json:"maxDrawdownPct"`
	AnnualizedReturnPct float64             `json:"annualizedReturnPct"`
	ProfitFactor        float64             `json:"profitFactor"`
	BestTradePct        float64             `json:"bestTradePct"`
	WorstTradePct       float64             `json:"worstTradePct"`
	Exposure            float64             `json:"exposure"`
	ExitReasons         map[ExitTrigger]int `json:"exitReasons"`
	StartTime           int64               `json:"startTime"`
	EndTime             int64               `json:"endTime"`
}

// NewBacktestResult computes every statistic from trades. startTime and
// endTime bound the evaluated candle span and seed the equity curve.
func NewBacktestResult(trades []Trade, startTime int64, endTime int64) *BacktestResult {
	result := &BacktestResult{
		Trades:      append([]Trade(nil), trades...),
		TotalTrades: len(trades),
		ExitReasons: make(map[ExitTrigger]int),
		StartTime:   startTime,
		EndTime:     endTime,
	}

	pnls := make([]float64, len(trades))
	wins := 0
	grossWins, grossLosses := 0.0, 0.0
	for i, trade := range trades {
		pnls[i] = trade.PnlPct
		result.ExitReasons[trade.ExitReason]++
		if trade.PnlPct > 0 {
			wins++
			grossWins += trade.PnlPct
		} else {
			grossLosses -= trade.PnlPct
		}
	}

	result.TotalReturnPct = helpers.Sum(pnls)
	result.AvgReturnPct = helpers.Mean(pnls)
	if len(trades) > 0 {
		result.WinRate = float64(wins) / float64(len(trades))
		result.BestTradePct = helpers.Max(pnls)
		result.WorstTradePct = helpers.Min(pnls)
	}
	switch {
	case grossLosses > 0:
		result.ProfitFactor = grossWins / grossLosses
	case grossWins > 0:
		result.ProfitFactor = maxProfitFactor
	}

	equity := equityCurveOrigin
	result.EquityCurve = make([]EquityPoint, 0, len(trades)+1)
	result.EquityCurve = append(result.EquityCurve, EquityPoint{Time: startTime, Equity: equity})
	values := make([]float64, 0, len(trades)+1)
	values = append(values, equity)
	for _, trade := range trades {
		equity *= 1 + trade.PnlPct/100
		result.EquityCurve = append(result.EquityCurve, EquityPoint{Time: trade.ExitTime, Equity: equity})
		values = append(values, equity)
	}
	result.FinalEquity = equity
	result.MaxDrawdownPct = helpers.MaxDrawdownPct(values)

	if len(trades) > 0 {
		span := trades[len(trades)-1].ExitTime - trades[0].EntryTime
		result.AnnualizedReturnPct = annualize(equity, span)
	}

	if span := endTime - startTime; span > 0 {
		var held int64
		for _, trade := range trades {
			held += trade.ExitTime - trade.EntryTime
		}
		result.Exposure = float64(held) / float64(span)
	}

	return result
}

// annualize scales the compounded equity to a yearly rate. Degenerate spans
// and overflowing exponents yield zero.
func annualize(equity float64, spanMs int64) float64 {
	if spanMs <= 0 {
		return 0
	}
	if equity <= 0 {
		return -100
	}
	annualized := (math.Pow(equity, float64(msPerYear)/float64(spanMs)) - 1) * 100
	if math.IsInf(annualized, 0) || math.IsNaN(annualized) {
		return 0
	}
	return annualized
}

// TradingRecord replays the trades as unit-sized long positions into a techan
// trading record so techan analyses can run on the result.
func (r *BacktestResult) TradingRecord(security string) *techan.TradingRecord {
	record := techan.NewTradingRecord()
	for _, trade := range r.Trades {
		record.Operate(techan.Order{
			Side:          techan.BUY,
			Security:      security,
			Price:         big.NewDecimal(trade.EntryPrice),
			Amount:        big.ONE,
			ExecutionTime: time.UnixMilli(trade.EntryTime).UTC(),
		})
		record.Operate(techan.Order{
			Side:          techan.SELL,
			Security:      security,
			Price:         big.NewDecimal(trade.ExitPrice),
			Amount:        big.ONE,
			ExecutionTime: time.UnixMilli(trade.ExitTime).UTC(),
		})
	}
	return record
}
