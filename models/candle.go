package models

import (
	"fmt"
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
	"math"
	"sort"
	"time"
)

// Candle is a single OHLCV bar. Times are unix milliseconds.
type Candle struct {
	OpenTime  int64   `json:"openTime"`
	CloseTime int64   `json:"closeTime"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (c Candle) Validate() error {
	if c.OpenTime >= c.CloseTime {
		return fmt.Errorf("candle %d: openTime must precede closeTime", c.OpenTime)
	}
	for _, v := range []float64{c.Open, c.High, c.Low, c.Close, c.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("candle %d: prices and volume must be finite and non-negative", c.OpenTime)
		}
	}
	return nil
}

// ValidateSeries checks every candle and the strictly increasing closeTime
// ordering the engine relies on.
func ValidateSeries(candles []Candle) error {
	for i, c := range candles {
		if err := c.Validate(); err != nil {
			return err
		}
		if i > 0 && c.CloseTime <= candles[i-1].CloseTime {
			return fmt.Errorf("candle %d: closeTime %d is not after previous closeTime %d",
				i, c.CloseTime, candles[i-1].CloseTime)
		}
	}
	return nil
}

func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}

// LowerBound returns the first index whose closeTime is >= t.
func LowerBound(candles []Candle, t int64) int {
	return sort.Search(len(candles), func(i int) bool {
		return candles[i].CloseTime >= t
	})
}

// SliceByTime returns the candles whose closeTime falls in [from, to).
// The returned slice shares the backing array with candles.
func SliceByTime(candles []Candle, from int64, to int64) []Candle {
	start := LowerBound(candles, from)
	end := LowerBound(candles, to)
	if end < start {
		end = start
	}
	return candles[start:end]
}

// SplitByFraction splits candles chronologically: the first fraction of the
// bars is the train slice, the rest the test slice.
func SplitByFraction(candles []Candle, fraction float64) ([]Candle, []Candle) {
	if fraction <= 0 {
		return candles[:0], candles
	}
	if fraction >= 1 {
		return candles, candles[len(candles):]
	}
	cut := int(float64(len(candles)) * fraction)
	return candles[:cut], candles[cut:]
}

func CandleFromTechan(candle *techan.Candle) Candle {
	return Candle{
		OpenTime:  candle.Period.Start.UnixMilli(),
		CloseTime: candle.Period.End.UnixMilli(),
		Open:      candle.OpenPrice.Float(),
		High:      candle.MaxPrice.Float(),
		Low:       candle.MinPrice.Float(),
		Close:     candle.ClosePrice.Float(),
		Volume:    candle.Volume.Float(),
	}
}

func CandlesFromTimeSeries(timeSeries *techan.TimeSeries) []Candle {
	if timeSeries == nil {
		return nil
	}
	candles := make([]Candle, 0, len(timeSeries.Candles))
	for _, candle := range timeSeries.Candles {
		candles = append(candles, CandleFromTechan(candle))
	}
	return candles
}

func ToTimeSeries(candles []Candle) *techan.TimeSeries {
	timeSeries := techan.NewTimeSeries()
	for _, c := range candles {
		start := time.UnixMilli(c.OpenTime).UTC()
		period := techan.NewTimePeriod(start, time.Duration(c.CloseTime-c.OpenTime)*time.Millisecond)
		candle := techan.NewCandle(period)
		candle.OpenPrice = big.NewDecimal(c.Open)
		candle.MaxPrice = big.NewDecimal(c.High)
		candle.MinPrice = big.NewDecimal(c.Low)
		candle.ClosePrice = big.NewDecimal(c.Close)
		candle.Volume = big.NewDecimal(c.Volume)
		timeSeries.AddCandle(candle)
	}
	return timeSeries
}
