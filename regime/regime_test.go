package regime

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/aoterocom/AOBacktester/mocks"
	"gitlab.com/aoterocom/AOBacktester/models"
	"testing"
)

func TestClassify(t *testing.T) {
	r, slope := Classify(110, 105, 100, 99)
	assert.Equal(t, models.RegimeBull, r)
	assert.InDelta(t, 1.0, slope, 1e-12)

	r, slope = Classify(90, 95, 100, 101)
	assert.Equal(t, models.RegimeBear, r)
	assert.InDelta(t, -1.0, slope, 1e-12)

	// Bullish structure with a flat slow EMA is not a trend.
	r, _ = Classify(110, 105, 100, 100)
	assert.Equal(t, models.RegimeRange, r)

	r, _ = Classify(99, 105, 100, 99)
	assert.Equal(t, models.RegimeRange, r)
}

func TestSeriesStartsAfterSlowPeriod(t *testing.T) {
	candles := mocks.TrendCandles(30, 100, 1)
	points := Series(candles, 3, 10)

	require.Len(t, points, 20)
	assert.Equal(t, candles[10].CloseTime, points[0].Time)
	assert.Equal(t, candles[29].CloseTime, points[19].Time)
	for _, point := range points {
		assert.Equal(t, models.RegimeBull, point.Regime)
		assert.Greater(t, point.Slope, 0.0)
	}

	assert.Empty(t, Series(candles[:10], 3, 10))
}

func TestSeriesOnDowntrend(t *testing.T) {
	points := Series(mocks.TrendCandles(30, 200, -1), 3, 10)
	require.NotEmpty(t, points)
	assert.Equal(t, models.RegimeBear, points[len(points)-1].Regime)
}

func TestCursor(t *testing.T) {
	points := []models.RegimePoint{
		{Time: 100, Regime: models.RegimeBear},
		{Time: 200, Regime: models.RegimeRange},
		{Time: 300, Regime: models.RegimeBull},
	}
	cursor := NewCursor(points)

	_, ok := cursor.At(50)
	assert.False(t, ok)

	point, ok := cursor.At(100)
	require.True(t, ok)
	assert.Equal(t, models.RegimeBear, point.Regime)

	point, _ = cursor.At(199)
	assert.Equal(t, models.RegimeBear, point.Regime)

	point, _ = cursor.At(250)
	assert.Equal(t, models.RegimeRange, point.Regime)

	point, _ = cursor.At(10_000)
	assert.Equal(t, models.RegimeBull, point.Regime)

	_, ok = NewCursor(nil).At(10_000)
	assert.False(t, ok)
}
