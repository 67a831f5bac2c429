package config

import (
	"fmt"
	"gitlab.com/aoterocom/AOBacktester/models"
	"strconv"
	"strings"
)

// StrategyConfigFromEnv maps the strategy keys present in env onto the
// defaults and validates the result.
func StrategyConfigFromEnv(env Env) (models.StrategyConfig, error) {
	var opts []models.StrategyOption
	cfg := models.DefaultStrategyConfig()

	if value, ok := env.Lookup("useTrendFilter"); ok {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return models.StrategyConfig{}, fmt.Errorf("useTrendFilter: %w", err)
		}
		opts = append(opts, models.WithTrendFilter(enabled))
	}
	if value, ok := env.Lookup("signalVariant"); ok {
		variant, err := models.ParseSignalVariant(value)
		if err != nil {
			return models.StrategyConfig{}, err
		}
		opts = append(opts, models.WithSignalVariant(variant))
	}
	if value, ok := env.Lookup("allowedHigherTFRegimes"); ok {
		var regimes []models.Regime
		for _, name := range strings.Split(value, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			r, err := models.ParseRegime(name)
			if err != nil {
				return models.StrategyConfig{}, fmt.Errorf("allowedHigherTFRegimes: %w", err)
			}
			regimes = append(regimes, r)
		}
		opts = append(opts, models.WithAllowedRegimes(regimes...))
	}
	if value, ok := env.Lookup("trendEmaPeriods"); ok {
		var periods []int
		for _, field := range strings.Split(value, ",") {
			period, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return models.StrategyConfig{}, fmt.Errorf("trendEmaPeriods: %w", err)
			}
			periods = append(periods, period)
		}
		opts = append(opts, models.WithTrendEmaPeriods(periods...))
	}

	ints := []struct {
		key    string
		option func(int) models.StrategyOption
	}{
		{"fastEmaPeriod", func(v int) models.StrategyOption {
			return func(c *models.StrategyConfig) { c.FastEmaPeriod = v }
		}},
		{"slowEmaPeriod", func(v int) models.StrategyOption {
			return func(c *models.StrategyConfig) { c.SlowEmaPeriod = v }
		}},
		{"midEmaPeriod", func(v int) models.StrategyOption {
			return func(c *models.StrategyConfig) { c.MidEmaPeriod = v }
		}},
		{"pullbackLookback", func(v int) models.StrategyOption {
			return func(c *models.StrategyConfig) { c.PullbackLookback = v }
		}},
		{"atrPeriod", models.WithAtrPeriod},
		{"rsiPeriod", models.WithRsiPeriod},
	}
	for _, f := range ints {
		value, ok := env.Lookup(f.key)
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return models.StrategyConfig{}, fmt.Errorf("%s: %w", f.key, err)
		}
		opts = append(opts, f.option(parsed))
	}

	floats := []struct {
		key    string
		option func(float64) models.StrategyOption
	}{
		{"stopLossPct", models.WithStopLoss},
		{"takeProfitPct", models.WithTakeProfit},
		{"minAtrPct", models.WithMinAtrPct},
		{"maxPremiumOverEma50", models.WithMaxPremium},
		{"feeRate", models.WithFeeRate},
		{"minRsiForEntry", func(v float64) models.StrategyOption {
			return func(c *models.StrategyConfig) { c.MinRsiForEntry = v }
		}},
		{"maxRsiForEntry", func(v float64) models.StrategyOption {
			return func(c *models.StrategyConfig) { c.MaxRsiForEntry = v }
		}},
		{"pullbackRetracePct", func(v float64) models.StrategyOption {
			return func(c *models.StrategyConfig) { c.PullbackRetracePct = v }
		}},
		{"bandKEnter", func(v float64) models.StrategyOption {
			return func(c *models.StrategyConfig) { c.BandKEnter = v }
		}},
		{"bandKExit", func(v float64) models.StrategyOption {
			return func(c *models.StrategyConfig) { c.BandKExit = v }
		}},
	}
	for _, f := range floats {
		value, ok := env.Lookup(f.key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return models.StrategyConfig{}, fmt.Errorf("%s: %w", f.key, err)
		}
		opts = append(opts, f.option(parsed))
	}

	cfg = cfg.With(opts...)
	if err := cfg.Validate(); err != nil {
		return models.StrategyConfig{}, err
	}
	return cfg, nil
}
