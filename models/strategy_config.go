package models

import (
	"errors"
	"fmt"
)

// StrategyConfig is the complete, validated parameter set of one engine run.
// Build it with NewStrategyConfig or DefaultStrategyConfig and treat it as a
// value; With returns a modified copy.
type StrategyConfig struct {
	UseTrendFilter bool          `json:"useTrendFilter" yaml:"useTrendFilter"`
	SignalVariant  SignalVariant `json:"signalVariant" yaml:"signalVariant"`

	FastEmaPeriod    int   `json:"fastEmaPeriod" yaml:"fastEmaPeriod"`
	SlowEmaPeriod    int   `json:"slowEmaPeriod" yaml:"slowEmaPeriod"`
	TrendEmaPeriods  []int `json:"trendEmaPeriods" yaml:"trendEmaPeriods"`
	AtrPeriod        int   `json:"atrPeriod" yaml:"atrPeriod"`
	RsiPeriod        int   `json:"rsiPeriod" yaml:"rsiPeriod"`
	MidEmaPeriod     int   `json:"midEmaPeriod" yaml:"midEmaPeriod"`
	PullbackLookback int   `json:"pullbackLookback" yaml:"pullbackLookback"`

	StopLossPct         float64 `json:"stopLossPct" yaml:"stopLossPct"`
	TakeProfitPct       float64 `json:"takeProfitPct" yaml:"takeProfitPct"`
	MinAtrPct           float64 `json:"minAtrPct" yaml:"minAtrPct"`
	MinRsiForEntry      float64 `json:"minRsiForEntry" yaml:"minRsiForEntry"`
	MaxRsiForEntry      float64 `json:"maxRsiForEntry" yaml:"maxRsiForEntry"`
	MaxPremiumOverEma50 float64 `json:"maxPremiumOverEma50" yaml:"maxPremiumOverEma50"`
	FeeRate             float64 `json:"feeRate" yaml:"feeRate"`
	PullbackRetracePct  float64 `json:"pullbackRetracePct" yaml:"pullbackRetracePct"`
	BandKEnter          float64 `json:"bandKEnter" yaml:"bandKEnter"`
	BandKExit           float64 `json:"bandKExit" yaml:"bandKExit"`

	// HigherTFRegime enables the higher-timeframe filter when non-empty.
	HigherTFRegime         []RegimePoint `json:"-" yaml:"-"`
	AllowedHigherTFRegimes RegimeSet     `json:"allowedHigherTFRegimes" yaml:"-"`
}

type StrategyOption func(*StrategyConfig)

func DefaultStrategyConfig() StrategyConfig {
	return StrategyConfig{
		UseTrendFilter:         true,
		SignalVariant:          VariantBreakout,
		FastEmaPeriod:          50,
		SlowEmaPeriod:          200,
		TrendEmaPeriods:        []int{20, 50, 100, 200},
		AtrPeriod:              14,
		RsiPeriod:              14,
		MidEmaPeriod:           20,
		PullbackLookback:       10,
		StopLossPct:            0.02,
		TakeProfitPct:          0.04,
		MinAtrPct:              0.001,
		MinRsiForEntry:         40,
		MaxRsiForEntry:         75,
		MaxPremiumOverEma50:    0.03,
		FeeRate:                0.001,
		PullbackRetracePct:     0.003,
		BandKEnter:             2.0,
		BandKExit:              0.5,
		AllowedHigherTFRegimes: NewRegimeSet(RegimeBull),
	}
}

// NewStrategyConfig applies opts over the defaults and validates the result.
func NewStrategyConfig(opts ...StrategyOption) (StrategyConfig, error) {
	cfg := DefaultStrategyConfig().With(opts...)
	if err := cfg.Validate(); err != nil {
		return StrategyConfig{}, err
	}
	return cfg, nil
}

// With returns a copy of the config with opts applied. The copy is not
// validated.
func (c StrategyConfig) With(opts ...StrategyOption) StrategyConfig {
	c.TrendEmaPeriods = append([]int(nil), c.TrendEmaPeriods...)
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func WithTrendFilter(enabled bool) StrategyOption {
	return func(c *StrategyConfig) { c.UseTrendFilter = enabled }
}

func WithSignalVariant(variant SignalVariant) StrategyOption {
	return func(c *StrategyConfig) { c.SignalVariant = variant }
}

func WithEmaPeriods(fast int, slow int) StrategyOption {
	return func(c *StrategyConfig) {
		c.FastEmaPeriod = fast
		c.SlowEmaPeriod = slow
	}
}

func WithTrendEmaPeriods(periods ...int) StrategyOption {
	return func(c *StrategyConfig) { c.TrendEmaPeriods = append([]int(nil), periods...) }
}

func WithAtrPeriod(period int) StrategyOption {
	return func(c *StrategyConfig) { c.AtrPeriod = period }
}

func WithRsiPeriod(period int) StrategyOption {
	return func(c *StrategyConfig) { c.RsiPeriod = period }
}

func WithStopLoss(pct float64) StrategyOption {
	return func(c *StrategyConfig) { c.StopLossPct = pct }
}

func WithTakeProfit(pct float64) StrategyOption {
	return func(c *StrategyConfig) { c.TakeProfitPct = pct }
}

func WithMinAtrPct(pct float64) StrategyOption {
	return func(c *StrategyConfig) { c.MinAtrPct = pct }
}

func WithRsiBand(min float64, max float64) StrategyOption {
	return func(c *StrategyConfig) {
		c.MinRsiForEntry = min
		c.MaxRsiForEntry = max
	}
}

func WithMaxPremium(pct float64) StrategyOption {
	return func(c *StrategyConfig) { c.MaxPremiumOverEma50 = pct }
}

func WithFeeRate(rate float64) StrategyOption {
	return func(c *StrategyConfig) { c.FeeRate = rate }
}

func WithPullback(lookback int, retracePct float64) StrategyOption {
	return func(c *StrategyConfig) {
		c.PullbackLookback = lookback
		c.PullbackRetracePct = retracePct
	}
}

func WithMeanReversion(midPeriod int, kEnter float64, kExit float64) StrategyOption {
	return func(c *StrategyConfig) {
		c.MidEmaPeriod = midPeriod
		c.BandKEnter = kEnter
		c.BandKExit = kExit
	}
}

func WithHigherTFRegime(points []RegimePoint) StrategyOption {
	return func(c *StrategyConfig) { c.HigherTFRegime = points }
}

func WithAllowedRegimes(regimes ...Regime) StrategyOption {
	return func(c *StrategyConfig) { c.AllowedHigherTFRegimes = NewRegimeSet(regimes...) }
}

// Validate reports every invalid field at once. The returned error matches
// ErrInvalidConfig.
func (c StrategyConfig) Validate() error {
	var errs []error
	fail := func(field string, format string, args ...interface{}) {
		errs = append(errs, &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	if _, err := ParseSignalVariant(string(c.SignalVariant)); err != nil {
		fail("signalVariant", "%s is not a known signal variant", c.SignalVariant)
	}
	if c.StopLossPct <= 0 || c.StopLossPct >= 1 {
		fail("stopLossPct", "must be in (0,1), got %v", c.StopLossPct)
	}
	if c.TakeProfitPct <= 0 || c.TakeProfitPct >= 1 {
		fail("takeProfitPct", "must be in (0,1), got %v", c.TakeProfitPct)
	}
	if c.MinAtrPct < 0 || c.MinAtrPct >= 1 {
		fail("minAtrPct", "must be in [0,1), got %v", c.MinAtrPct)
	}
	if c.MinRsiForEntry < 0 || c.MinRsiForEntry > 100 {
		fail("minRsiForEntry", "must be in [0,100], got %v", c.MinRsiForEntry)
	}
	if c.MaxRsiForEntry < 0 || c.MaxRsiForEntry > 100 {
		fail("maxRsiForEntry", "must be in [0,100], got %v", c.MaxRsiForEntry)
	}
	if c.MinRsiForEntry >= c.MaxRsiForEntry {
		fail("minRsiForEntry", "must be below maxRsiForEntry (%v >= %v)", c.MinRsiForEntry, c.MaxRsiForEntry)
	}
	if c.MaxPremiumOverEma50 <= 0 {
		fail("maxPremiumOverEma50", "must be positive, got %v", c.MaxPremiumOverEma50)
	}
	if c.FeeRate < 0 || c.FeeRate >= 0.5 {
		fail("feeRate", "must be in [0,0.5), got %v", c.FeeRate)
	}

	periods := map[string]int{
		"fastEmaPeriod":    c.FastEmaPeriod,
		"slowEmaPeriod":    c.SlowEmaPeriod,
		"atrPeriod":        c.AtrPeriod,
		"rsiPeriod":        c.RsiPeriod,
		"midEmaPeriod":     c.MidEmaPeriod,
		"pullbackLookback": c.PullbackLookback,
	}
	for _, field := range []string{"fastEmaPeriod", "slowEmaPeriod", "atrPeriod", "rsiPeriod", "midEmaPeriod", "pullbackLookback"} {
		if periods[field] <= 0 {
			fail(field, "must be positive, got %d", periods[field])
		}
	}
	if c.FastEmaPeriod >= c.SlowEmaPeriod {
		fail("fastEmaPeriod", "must be below slowEmaPeriod (%d >= %d)", c.FastEmaPeriod, c.SlowEmaPeriod)
	}
	if c.UseTrendFilter {
		if len(c.TrendEmaPeriods) == 0 {
			fail("trendEmaPeriods", "required when the trend filter is enabled")
		}
		for i, p := range c.TrendEmaPeriods {
			if p <= 0 {
				fail("trendEmaPeriods", "period %d must be positive, got %d", i, p)
			} else if i > 0 && p <= c.TrendEmaPeriods[i-1] {
				fail("trendEmaPeriods", "periods must be strictly increasing")
			}
		}
	}

	if c.SignalVariant == VariantPullback && (c.PullbackRetracePct < 0 || c.PullbackRetracePct >= 1) {
		fail("pullbackRetracePct", "must be in [0,1), got %v", c.PullbackRetracePct)
	}
	if c.BandKEnter <= 0 {
		fail("bandKEnter", "must be positive, got %v", c.BandKEnter)
	}
	if c.BandKExit >= c.BandKEnter {
		fail("bandKExit", "must be below bandKEnter (%v >= %v)", c.BandKExit, c.BandKEnter)
	}
	if c.AllowedHigherTFRegimes.IsEmpty() {
		fail("allowedHigherTFRegimes", "must allow at least one regime")
	}

	return errors.Join(errs...)
}

// WarmupBars is the number of leading bars the engine skips, and the
// minimum series length it accepts.
func (c StrategyConfig) WarmupBars() int {
	warmup := c.SlowEmaPeriod
	for _, p := range []int{c.FastEmaPeriod, c.AtrPeriod, c.RsiPeriod} {
		if p > warmup {
			warmup = p
		}
	}
	if c.SignalVariant == VariantMeanRevert && c.MidEmaPeriod > warmup {
		warmup = c.MidEmaPeriod
	}
	if c.UseTrendFilter {
		for _, p := range c.TrendEmaPeriods {
			if p > warmup {
				warmup = p
			}
		}
	}
	return warmup
}

// Label is a short human readable description used in logs and reports.
func (c StrategyConfig) Label() string {
	return fmt.Sprintf("%s sl=%.4g tp=%.4g atr>%.4g rsi=[%.4g,%.4g]",
		c.SignalVariant, c.StopLossPct, c.TakeProfitPct, c.MinAtrPct, c.MinRsiForEntry, c.MaxRsiForEntry)
}
