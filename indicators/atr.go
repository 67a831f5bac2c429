package indicators

import (
	"gitlab.com/aoterocom/AOBacktester/models"
	"math"
)

// TrueRange of bar i. The first bar has no previous close and uses its
// high-low range.
func TrueRange(candles []models.Candle, i int) float64 {
	c := candles[i]
	if i == 0 {
		return c.High - c.Low
	}
	prevClose := candles[i-1].Close
	return math.Max(c.High-c.Low, math.Max(math.Abs(c.High-prevClose), math.Abs(c.Low-prevClose)))
}

// ATR is Wilder's average true range. atr[period] is the simple mean of the
// true ranges of bars 1..period; indices below period are NaN.
func ATR(candles []models.Candle, period int) []float64 {
	atr := notReady(len(candles))
	if period <= 0 || len(candles) <= period {
		return atr
	}

	sum := 0.0
	for i := 1; i <= period; i++ {
		sum += TrueRange(candles, i)
	}
	atr[period] = sum / float64(period)
	for i := period + 1; i < len(candles); i++ {
		atr[i] = (atr[i-1]*float64(period-1) + TrueRange(candles, i)) / float64(period)
	}
	return atr
}
