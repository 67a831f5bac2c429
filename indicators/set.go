package indicators

import "gitlab.com/aoterocom/AOBacktester/models"

// Set bundles every series one engine run reads. All series have the length
// of Candles and are indexed in lock-step.
type Set struct {
	Candles []models.Candle
	Closes  []float64
	EmaFast []float64
	EmaSlow []float64
	EmaMid  []float64
	// Trend holds one EMA per configured trend period, shortest first.
	Trend [][]float64
	Atr   []float64
	Rsi   []float64
}

func NewSet(candles []models.Candle, cfg models.StrategyConfig) *Set {
	closes := models.Closes(candles)
	set := &Set{
		Candles: candles,
		Closes:  closes,
		EmaFast: EMA(closes, cfg.FastEmaPeriod),
		EmaSlow: EMA(closes, cfg.SlowEmaPeriod),
		EmaMid:  EMA(closes, cfg.MidEmaPeriod),
		Atr:     ATR(candles, cfg.AtrPeriod),
		Rsi:     RSI(closes, cfg.RsiPeriod),
	}
	if cfg.UseTrendFilter {
		set.Trend = make([][]float64, len(cfg.TrendEmaPeriods))
		for i, period := range cfg.TrendEmaPeriods {
			set.Trend[i] = EMA(closes, period)
		}
	}
	return set
}

func (s *Set) Len() int {
	return len(s.Candles)
}

// Ready reports whether every sentinel-bearing series has a value at i.
func (s *Set) Ready(i int) bool {
	return i >= 0 && i < s.Len() && IsReady(s.Atr[i]) && IsReady(s.Rsi[i])
}
