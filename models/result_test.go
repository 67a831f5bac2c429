package models_test

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/aoterocom/AOBacktester/models"
	"testing"
)

const year = int64(365 * 86400000)

func trade(entry int64, exit int64, pnl float64, reason models.ExitTrigger) models.Trade {
	return models.Trade{EntryTime: entry, ExitTime: exit, EntryPrice: 100, ExitPrice: 100 + pnl, PnlPct: pnl, ExitReason: reason}
}

func TestBacktestResultStatistics(t *testing.T) {
	trades := []models.Trade{
		trade(0, year/2, 10, models.ExitTriggerTakeProfit),
		trade(year/2, year, -5, models.ExitTriggerStopLoss),
	}
	result := models.NewBacktestResult(trades, 0, year)

	assert.Equal(t, 2, result.TotalTrades)
	assert.InDelta(t, 5.0, result.TotalReturnPct, 1e-9)
	assert.InDelta(t, 2.5, result.AvgReturnPct, 1e-9)
	assert.InDelta(t, 0.5, result.WinRate, 1e-9)
	assert.InDelta(t, 2.0, result.ProfitFactor, 1e-9)
	assert.InDelta(t, 10.0, result.BestTradePct, 1e-9)
	assert.InDelta(t, -5.0, result.WorstTradePct, 1e-9)

	require.Len(t, result.EquityCurve, 3)
	assert.Equal(t, 1.0, result.EquityCurve[0].Equity)
	assert.InDelta(t, 1.1, result.EquityCurve[1].Equity, 1e-9)
	assert.InDelta(t, 1.045, result.FinalEquity, 1e-9)
	assert.InDelta(t, 5.0, result.MaxDrawdownPct, 1e-9)
	assert.InDelta(t, 4.5, result.AnnualizedReturnPct, 1e-9)
	assert.InDelta(t, 1.0, result.Exposure, 1e-9)

	assert.Equal(t, 1, result.ExitReasons[models.ExitTriggerTakeProfit])
	assert.Equal(t, 1, result.ExitReasons[models.ExitTriggerStopLoss])
}

func TestBacktestResultWithoutTrades(t *testing.T) {
	result := models.NewBacktestResult(nil, 0, 1000)

	assert.Equal(t, 0, result.TotalTrades)
	assert.Zero(t, result.WinRate)
	assert.Zero(t, result.AvgReturnPct)
	assert.Zero(t, result.MaxDrawdownPct)
	assert.Zero(t, result.AnnualizedReturnPct)
	assert.Zero(t, result.ProfitFactor)
	assert.Equal(t, 1.0, result.FinalEquity)
	assert.Len(t, result.EquityCurve, 1)
}

func TestDrawdownIsZeroForNonDecreasingEquity(t *testing.T) {
	result := models.NewBacktestResult([]models.Trade{
		trade(0, 10, 1, models.ExitTriggerSignal),
		trade(10, 20, 0, models.ExitTriggerSignal),
		trade(20, 30, 2, models.ExitTriggerSignal),
	}, 0, 30)

	assert.Zero(t, result.MaxDrawdownPct)
	assert.Equal(t, 999.0, result.ProfitFactor)
}

func TestSumAndCompoundedEquityAgreeInSign(t *testing.T) {
	for _, pnls := range [][]float64{{3, -1}, {-3, 1}, {2, -2}, {-0.5}} {
		var trades []models.Trade
		for i, pnl := range pnls {
			trades = append(trades, trade(int64(i)*10, int64(i)*10+5, pnl, models.ExitTriggerSignal))
		}
		result := models.NewBacktestResult(trades, 0, 100)

		switch {
		case result.TotalReturnPct > 0:
			assert.Greater(t, result.FinalEquity, 1.0, "pnls %v", pnls)
		case result.TotalReturnPct < 0:
			assert.Less(t, result.FinalEquity, 1.0, "pnls %v", pnls)
		}
	}
}

func TestAnnualizationGuardsDegenerateSpans(t *testing.T) {
	sameInstant := models.NewBacktestResult([]models.Trade{trade(10, 10, 5, models.ExitTriggerSignal)}, 0, 10)
	assert.Zero(t, sameInstant.AnnualizedReturnPct)

	// A short, very profitable trade overflows the exponent.
	overflow := models.NewBacktestResult([]models.Trade{trade(0, 1, 50, models.ExitTriggerSignal)}, 0, 1)
	assert.Zero(t, overflow.AnnualizedReturnPct)
}

func TestTradingRecordReplaysTrades(t *testing.T) {
	result := models.NewBacktestResult([]models.Trade{
		trade(0, year/2, 10, models.ExitTriggerTakeProfit),
		trade(year/2+1, year, -5, models.ExitTriggerStopLoss),
	}, 0, year)

	record := result.TradingRecord("BTCUSDT")
	require.Len(t, record.Trades, 2)
	assert.True(t, record.CurrentPosition().IsNew())
	assert.InDelta(t, 110.0, record.Trades[0].ExitOrder().Price.Float(), 1e-9)
}
