package models_test

import (
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/aoterocom/AOBacktester/models"
	"testing"
)

func TestDefaultStrategyConfigIsValid(t *testing.T) {
	cfg := models.DefaultStrategyConfig()
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.UseTrendFilter)
	assert.Equal(t, models.VariantBreakout, cfg.SignalVariant)
	assert.True(t, cfg.AllowedHigherTFRegimes.Contains(models.RegimeBull))
	assert.False(t, cfg.AllowedHigherTFRegimes.Contains(models.RegimeBear))
	assert.Equal(t, 200, cfg.WarmupBars())
}

func TestNewStrategyConfigAppliesOptions(t *testing.T) {
	cfg, err := models.NewStrategyConfig(
		models.WithSignalVariant(models.VariantMeanRevert),
		models.WithStopLoss(0.05),
		models.WithRsiBand(10, 90),
		models.WithAllowedRegimes(models.RegimeBull, models.RegimeRange),
	)
	require.NoError(t, err)

	assert.Equal(t, models.VariantMeanRevert, cfg.SignalVariant)
	assert.Equal(t, 0.05, cfg.StopLossPct)
	assert.Equal(t, 10.0, cfg.MinRsiForEntry)
	assert.Equal(t, "BULL,RANGE", cfg.AllowedHigherTFRegimes.String())
}

func TestValidateReportsEveryViolation(t *testing.T) {
	_, err := models.NewStrategyConfig(
		models.WithRsiBand(70, 30),
		models.WithMeanReversion(20, 1, 2),
		models.WithStopLoss(1.5),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidConfig)

	fields := map[string]bool{}
	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	for _, e := range joined.Unwrap() {
		var configErr *models.ConfigError
		require.True(t, errors.As(e, &configErr))
		fields[configErr.Field] = true
	}
	assert.True(t, fields["minRsiForEntry"])
	assert.True(t, fields["bandKExit"])
	assert.True(t, fields["stopLossPct"])
}

func TestValidateAllowsDisabledVolatilityFilter(t *testing.T) {
	_, err := models.NewStrategyConfig(models.WithMinAtrPct(0))
	assert.NoError(t, err)

	_, err = models.NewStrategyConfig(models.WithAllowedRegimes())
	assert.ErrorIs(t, err, models.ErrInvalidConfig)
}

func TestWithDoesNotShareTrendPeriods(t *testing.T) {
	base := models.DefaultStrategyConfig()
	changed := base.With(func(c *models.StrategyConfig) { c.TrendEmaPeriods[0] = 5 })

	assert.Equal(t, 20, base.TrendEmaPeriods[0])
	assert.Equal(t, 5, changed.TrendEmaPeriods[0])
}

func TestWarmupBars(t *testing.T) {
	cfg := models.DefaultStrategyConfig().With(
		models.WithEmaPeriods(3, 5),
		models.WithAtrPeriod(7),
		models.WithRsiPeriod(3),
		models.WithTrendFilter(false),
	)
	assert.Equal(t, 7, cfg.WarmupBars())

	cfg = cfg.With(models.WithSignalVariant(models.VariantMeanRevert))
	assert.Equal(t, 20, cfg.WarmupBars())

	cfg = cfg.With(models.WithTrendFilter(true), models.WithTrendEmaPeriods(5, 10, 30))
	assert.Equal(t, 30, cfg.WarmupBars())
}

func TestParseSignalVariantAndRegime(t *testing.T) {
	variant, err := models.ParseSignalVariant(" Loose-Confirm ")
	require.NoError(t, err)
	assert.Equal(t, models.VariantLooseConfirm, variant)

	_, err = models.ParseSignalVariant("martingale")
	assert.Error(t, err)

	r, err := models.ParseRegime("bear")
	require.NoError(t, err)
	assert.Equal(t, models.RegimeBear, r)
}

func TestStrategyConfigJSONRoundTrip(t *testing.T) {
	cfg := models.DefaultStrategyConfig().With(models.WithAllowedRegimes(models.RegimeBull, models.RegimeRange))
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"BULL,RANGE"`)

	var decoded models.StrategyConfig
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, cfg, decoded)

	var set models.RegimeSet
	assert.Error(t, set.UnmarshalText([]byte("BULL,SIDEWAYS")))
}
