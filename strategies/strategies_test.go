package strategies

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/aoterocom/AOBacktester/indicators"
	"gitlab.com/aoterocom/AOBacktester/mocks"
	"gitlab.com/aoterocom/AOBacktester/models"
	"math"
	"testing"
)

func closesSet(closes []float64, emaFast []float64) *indicators.Set {
	return &indicators.Set{
		Candles: mocks.CandlesFromCloses(mocks.Origin, mocks.Hour, closes, 0.5),
		Closes:  closes,
		EmaFast: emaFast,
	}
}

func TestBreakoutNeverSignalsOnFlatSeries(t *testing.T) {
	cfg := models.DefaultStrategyConfig().With(models.WithEmaPeriods(3, 5))
	set := indicators.NewSet(mocks.FlatCandles(50, 100), cfg)
	detector := NewBreakoutStrategy()

	for i := 0; i < set.Len(); i++ {
		assert.Equal(t, models.SignalHold, detector.Detect(set, i, false))
		assert.Equal(t, models.SignalHold, detector.Detect(set, i, true))
	}
}

func TestBreakoutCrosses(t *testing.T) {
	detector := NewBreakoutStrategy()
	set := closesSet([]float64{99, 100, 101, 99}, []float64{100, 100, 100, 100})

	assert.Equal(t, models.SignalHold, detector.Detect(set, 0, false))
	// Sitting on the EMA is still the near side.
	assert.Equal(t, models.SignalHold, detector.Detect(set, 1, false))
	assert.Equal(t, models.SignalLong, detector.Detect(set, 2, false))
	assert.Equal(t, models.SignalHold, detector.Detect(set, 2, true))
	assert.Equal(t, models.SignalCloseLong, detector.Detect(set, 3, true))
	assert.Equal(t, models.SignalHold, detector.Detect(set, 3, false))
}

func TestPullbackRequiresRetracement(t *testing.T) {
	detector := NewPullbackStrategy(3, 0.01)
	emaSlow := []float64{90, 90, 90, 90, 90}
	emaFast := []float64{100, 100, 100, 100, 100}

	shallow := closesSet([]float64{100, 99.5, 99.5, 100, 101}, emaFast)
	shallow.EmaSlow = emaSlow
	assert.Equal(t, models.SignalHold, detector.Detect(shallow, 4, false))

	deep := closesSet([]float64{100, 98, 99.5, 100, 101}, emaFast)
	deep.EmaSlow = emaSlow
	assert.Equal(t, models.SignalLong, detector.Detect(deep, 4, false))
	assert.Equal(t, models.SignalHold, detector.Detect(deep, 4, true))

	// Outside the lookback the retracement no longer counts.
	stale := closesSet([]float64{98, 100, 99.5, 100, 101}, emaFast)
	stale.EmaSlow = emaSlow
	assert.Equal(t, models.SignalHold, NewPullbackStrategy(2, 0.01).Detect(stale, 4, false))

	downtrend := closesSet([]float64{100, 98, 99.5, 100, 101}, emaFast)
	downtrend.EmaSlow = []float64{110, 110, 110, 110, 110}
	assert.Equal(t, models.SignalHold, detector.Detect(downtrend, 4, false))
}

func TestLooseConfirmNeedsNextBar(t *testing.T) {
	detector := NewLooseConfirmStrategy()
	assert.Equal(t, 1, detector.Lookahead())

	closes := []float64{100, 103, 104}
	set := closesSet(closes, []float64{100, 100, 100})
	set.EmaSlow = []float64{95, 95, 95}
	// Bar 0 high is 100.5; bar 1 closes above it and bar 2 confirms.
	assert.Equal(t, models.SignalLong, detector.Detect(set, 1, false))
	assert.Equal(t, models.SignalHold, detector.Detect(set, 2, false))
	assert.Equal(t, models.SignalHold, detector.Detect(set, 1, true))

	unconfirmed := closesSet([]float64{100, 103, 102}, []float64{100, 100, 100})
	unconfirmed.EmaSlow = []float64{95, 95, 95}
	assert.Equal(t, models.SignalHold, detector.Detect(unconfirmed, 1, false))
}

func TestMeanReversionBands(t *testing.T) {
	detector := NewMeanReversionStrategy(2, 0.5)
	set := closesSet([]float64{100, 95, 97, 99.5}, []float64{100, 100, 100, 100})
	set.EmaMid = []float64{100, 100, 100, 100}
	set.Atr = []float64{math.NaN(), 2, 2, 2}

	assert.Equal(t, models.SignalHold, detector.Detect(set, 0, false))
	assert.Equal(t, models.SignalLong, detector.Detect(set, 1, false))
	assert.Equal(t, models.SignalHold, detector.Detect(set, 2, true))
	assert.Equal(t, models.SignalCloseLong, detector.Detect(set, 3, true))
	assert.Equal(t, models.SignalHold, detector.Detect(set, 3, false))
}

func TestDetectorFactory(t *testing.T) {
	for _, variant := range models.SignalVariants {
		detector, err := DetectorFactory(models.DefaultStrategyConfig().With(models.WithSignalVariant(variant)))
		require.NoError(t, err)
		assert.Equal(t, variant, detector.Name())
	}

	_, err := DetectorFactory(models.DefaultStrategyConfig().With(models.WithSignalVariant("grid")))
	assert.Error(t, err)
}
