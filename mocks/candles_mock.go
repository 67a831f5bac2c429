package mocks

import (
	"gitlab.com/aoterocom/AOBacktester/models"
	"math"
	"time"
)

var (
	Hour = time.Hour.Milliseconds()
	Day  = 24 * Hour
)

// Origin is the openTime of the first generated candle (2023-01-01 UTC).
const Origin int64 = 1672531200000

// CandlesFromCloses builds consecutive bars of length step. Each bar opens at
// the previous close and its range extends spread beyond open and close.
func CandlesFromCloses(start int64, step int64, closes []float64, spread float64) []models.Candle {
	candles := make([]models.Candle, len(closes))
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		candles[i] = models.Candle{
			OpenTime:  start + int64(i)*step,
			CloseTime: start + int64(i+1)*step - 1,
			Open:      open,
			High:      math.Max(open, c) + spread,
			Low:       math.Min(open, c) - spread,
			Close:     c,
			Volume:    1,
		}
	}
	return candles
}

func FlatCandles(n int, price float64) []models.Candle {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return CandlesFromCloses(Origin, Hour, closes, 0.5)
}

func TrendCandles(n int, start float64, step float64) []models.Candle {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + float64(i)*step
	}
	return CandlesFromCloses(Origin, Hour, closes, 0.5)
}

// SineCandles oscillates around mid with the given amplitude and period in
// bars.
func SineCandles(n int, mid float64, amplitude float64, period int) []models.Candle {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = mid + amplitude*math.Sin(2*math.Pi*float64(i)/float64(period))
	}
	return CandlesFromCloses(Origin, Hour, closes, 0.5)
}

// NextCandle returns a bar following prev with the given prices.
func NextCandle(prev models.Candle, open float64, high float64, low float64, close float64) models.Candle {
	step := prev.CloseTime + 1 - prev.OpenTime
	return models.Candle{
		OpenTime:  prev.CloseTime + 1,
		CloseTime: prev.CloseTime + step,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    1,
	}
}
