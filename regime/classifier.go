package regime

import (
	"gitlab.com/aoterocom/AOBacktester/indicators"
	"gitlab.com/aoterocom/AOBacktester/models"
)

// Classify labels one bar from its close and the fast/slow EMA structure.
func Classify(price float64, emaFast float64, emaSlow float64, prevEmaSlow float64) (models.Regime, float64) {
	slope := emaSlow - prevEmaSlow
	switch {
	case price > emaSlow && emaFast > emaSlow && slope > 0:
		return models.RegimeBull, slope
	case price < emaSlow && emaFast < emaSlow && slope < 0:
		return models.RegimeBear, slope
	default:
		return models.RegimeRange, slope
	}
}

// Series classifies every bar from index max(fast, slow) on. Points carry the
// bar's closeTime so a lower-timeframe run can look them up by its own clock.
func Series(candles []models.Candle, fastPeriod int, slowPeriod int) []models.RegimePoint {
	start := fastPeriod
	if slowPeriod > start {
		start = slowPeriod
	}
	if start < 1 {
		start = 1
	}
	if len(candles) <= start {
		return nil
	}

	closes := models.Closes(candles)
	fast := indicators.EMA(closes, fastPeriod)
	slow := indicators.EMA(closes, slowPeriod)

	points := make([]models.RegimePoint, 0, len(candles)-start)
	for i := start; i < len(candles); i++ {
		r, slope := Classify(closes[i], fast[i], slow[i], slow[i-1])
		points = append(points, models.RegimePoint{Time: candles[i].CloseTime, Regime: r, Slope: slope})
	}
	return points
}
