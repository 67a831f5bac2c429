package services

import (
	"fmt"
	"github.com/sdcoffey/techan"
	log "github.com/sirupsen/logrus"
	"gitlab.com/aoterocom/AOBacktester/helpers"
	"gitlab.com/aoterocom/AOBacktester/indicators"
	"gitlab.com/aoterocom/AOBacktester/interfaces"
	"gitlab.com/aoterocom/AOBacktester/models"
	"gitlab.com/aoterocom/AOBacktester/regime"
	"gitlab.com/aoterocom/AOBacktester/strategies"
)

var logger = helpers.Logger

// BacktestService runs the single-position long-only engine. It holds no
// state between runs and is safe for concurrent use.
type BacktestService struct{}

func NewBacktestService() BacktestService {
	return BacktestService{}
}

// Run evaluates cfg over candles. Bars before the warm-up are skipped; a
// series no longer than the warm-up returns ErrInsufficientData.
func (bs BacktestService) Run(candles []models.Candle, cfg models.StrategyConfig) (*models.BacktestResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	warmup := cfg.WarmupBars()
	if len(candles) <= warmup {
		return nil, fmt.Errorf("%w: %d candles, warm-up needs more than %d", models.ErrInsufficientData, len(candles), warmup)
	}
	detector, err := strategies.DetectorFactory(cfg)
	if err != nil {
		return nil, err
	}

	run := engineRun{
		cfg:      cfg,
		set:      indicators.NewSet(candles, cfg),
		detector: detector,
	}
	if len(cfg.HigherTFRegime) > 0 {
		run.cursor = regime.NewCursor(cfg.HigherTFRegime)
	}

	trades, err := run.execute(warmup)
	if err != nil {
		return nil, err
	}
	result := models.NewBacktestResult(trades, candles[warmup].CloseTime, candles[len(candles)-1].CloseTime)

	logger.WithFields(log.Fields{
		"config": cfg.Label(),
		"bars":   len(candles),
		"trades": result.TotalTrades,
		"return": fmt.Sprintf("%.2f%%", result.TotalReturnPct),
		"maxDD":  fmt.Sprintf("%.2f%%", result.MaxDrawdownPct),
	}).Debugln("backtest finished")
	return result, nil
}

// RunSeries runs the engine on a techan time series.
func (bs BacktestService) RunSeries(series *techan.TimeSeries, cfg models.StrategyConfig) (*models.BacktestResult, error) {
	return bs.Run(models.CandlesFromTimeSeries(series), cfg)
}

type engineRun struct {
	cfg      models.StrategyConfig
	set      *indicators.Set
	detector interfaces.SignalDetector
	cursor   *regime.Cursor
	position models.Position
}

func (r *engineRun) execute(warmup int) ([]models.Trade, error) {
	candles := r.set.Candles
	var trades []models.Trade

	for i := warmup; i < len(candles); i++ {
		candle := candles[i]

		// The cursor advances on every bar so lookups stay linear overall.
		var htf models.RegimePoint
		htfActive := false
		if r.cursor != nil {
			htf, htfActive = r.cursor.At(candle.CloseTime)
		}

		if !r.set.Ready(i) {
			continue
		}

		if r.position.IsOpen() {
			trade, closed, err := r.evaluateExit(i)
			if err != nil {
				return nil, err
			}
			if closed {
				trades = append(trades, trade)
			}
			continue
		}

		if r.detector.Detect(r.set, i, false) != models.SignalLong {
			continue
		}
		if !r.entryAllowed(i, htf, htfActive) {
			continue
		}
		if err := r.position.Enter(candle.Close, candle.CloseTime, i); err != nil {
			return nil, err
		}
	}

	if r.position.IsOpen() {
		last := len(candles) - 1
		trade, err := r.position.Exit(candles[last].Close, candles[last].CloseTime, last, models.ExitTriggerSignal, r.cfg.FeeRate)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

// evaluateExit applies stop-loss, take-profit and signal exit in that order;
// the first match closes the position.
func (r *engineRun) evaluateExit(i int) (models.Trade, bool, error) {
	candle := r.set.Candles[i]
	stop := r.position.StopPrice(r.cfg.StopLossPct)
	target := r.position.TargetPrice(r.cfg.TakeProfitPct)

	var price float64
	var reason models.ExitTrigger
	switch {
	case candle.Low <= stop:
		price, reason = stop, models.ExitTriggerStopLoss
	case candle.High >= target:
		price, reason = target, models.ExitTriggerTakeProfit
	case r.detector.Detect(r.set, i, true) == models.SignalCloseLong:
		price, reason = candle.Close, models.ExitTriggerSignal
	default:
		return models.Trade{}, false, nil
	}

	trade, err := r.position.Exit(price, candle.CloseTime, i, reason, r.cfg.FeeRate)
	if err != nil {
		return models.Trade{}, false, err
	}
	return trade, true, nil
}

func (r *engineRun) entryAllowed(i int, htf models.RegimePoint, htfActive bool) bool {
	set := r.set
	price := set.Closes[i]

	if r.cfg.MinAtrPct > 0 && set.Atr[i]/price <= r.cfg.MinAtrPct {
		return false
	}
	if r.cfg.UseTrendFilter && !trendStackAligned(set, i) {
		return false
	}
	if r.cursor != nil && (!htfActive || !r.cfg.AllowedHigherTFRegimes.Contains(htf.Regime)) {
		return false
	}
	if rsi := set.Rsi[i]; rsi < r.cfg.MinRsiForEntry || rsi > r.cfg.MaxRsiForEntry {
		return false
	}
	premium := (price - set.EmaFast[i]) / set.EmaFast[i]
	return premium < r.cfg.MaxPremiumOverEma50
}

// trendStackAligned requires the trend EMAs ordered shortest above longest
// with the close above the longest.
func trendStackAligned(set *indicators.Set, i int) bool {
	if len(set.Trend) == 0 {
		return true
	}
	for k := 1; k < len(set.Trend); k++ {
		if set.Trend[k-1][i] <= set.Trend[k][i] {
			return false
		}
	}
	return set.Closes[i] > set.Trend[len(set.Trend)-1][i]
}
