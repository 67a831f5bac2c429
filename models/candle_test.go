package models_test

import (
	"github.com/sdcoffey/techan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/aoterocom/AOBacktester/mocks"
	"gitlab.com/aoterocom/AOBacktester/models"
	"math"
	"testing"
)

func TestCandleValidate(t *testing.T) {
	valid := models.Candle{OpenTime: 0, CloseTime: 10, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 3}
	assert.NoError(t, valid.Validate())

	inverted := valid
	inverted.CloseTime = 0
	assert.Error(t, inverted.Validate())

	negative := valid
	negative.Low = -1
	assert.Error(t, negative.Validate())

	notANumber := valid
	notANumber.Close = math.NaN()
	assert.Error(t, notANumber.Validate())
}

func TestValidateSeriesRequiresIncreasingCloseTime(t *testing.T) {
	candles := mocks.FlatCandles(5, 100)
	assert.NoError(t, models.ValidateSeries(candles))

	candles[3].CloseTime = candles[2].CloseTime
	assert.Error(t, models.ValidateSeries(candles))
}

func TestSliceByTime(t *testing.T) {
	candles := mocks.FlatCandles(10, 100)

	slice := models.SliceByTime(candles, candles[2].CloseTime, candles[5].CloseTime)
	require.Len(t, slice, 3)
	assert.Equal(t, candles[2], slice[0])
	assert.Equal(t, candles[4], slice[2])

	assert.Empty(t, models.SliceByTime(candles, candles[5].CloseTime, candles[2].CloseTime))
	assert.Len(t, models.SliceByTime(candles, 0, candles[9].CloseTime+1), 10)
}

func TestSplitByFraction(t *testing.T) {
	candles := mocks.FlatCandles(10, 100)

	train, test := models.SplitByFraction(candles, 0.7)
	assert.Len(t, train, 7)
	assert.Len(t, test, 3)
	assert.Less(t, train[len(train)-1].CloseTime, test[0].CloseTime)

	train, test = models.SplitByFraction(candles, 1)
	assert.Len(t, train, 10)
	assert.Empty(t, test)
}

func TestTimeSeriesRoundTrip(t *testing.T) {
	candles := mocks.TrendCandles(5, 100, 1)

	series := models.ToTimeSeries(candles)
	require.Len(t, series.Candles, 5)
	assert.InDelta(t, 102.0, series.Candles[2].ClosePrice.Float(), 1e-9)

	back := models.CandlesFromTimeSeries(series)
	require.Len(t, back, 5)
	for i := range candles {
		assert.Equal(t, candles[i].OpenTime, back[i].OpenTime)
		assert.Equal(t, candles[i].CloseTime, back[i].CloseTime)
		assert.InDelta(t, candles[i].Close, back[i].Close, 1e-9)
		assert.InDelta(t, candles[i].High, back[i].High, 1e-9)
	}

	assert.Empty(t, models.CandlesFromTimeSeries(techan.NewTimeSeries()))
}
