package analytics

import "gitlab.com/aoterocom/AOBacktester/models"

// ParameterGrid lists the values the optimizer sweeps. An empty dimension
// keeps the base configuration's value.
type ParameterGrid struct {
	Variants       []models.SignalVariant `json:"variants" yaml:"variants"`
	StopLossPcts   []float64              `json:"stopLossPcts" yaml:"stopLossPcts"`
	TakeProfitPcts []float64              `json:"takeProfitPcts" yaml:"takeProfitPcts"`
	MinAtrPcts     []float64              `json:"minAtrPcts" yaml:"minAtrPcts"`
	MinRsis        []float64              `json:"minRsis" yaml:"minRsis"`
	MaxRsis        []float64              `json:"maxRsis" yaml:"maxRsis"`
}

// Size is the number of combinations the grid expands to.
func (g ParameterGrid) Size() int {
	size := 1
	for _, n := range []int{len(g.Variants), len(g.StopLossPcts), len(g.TakeProfitPcts),
		len(g.MinAtrPcts), len(g.MinRsis), len(g.MaxRsis)} {
		if n > 0 {
			size *= n
		}
	}
	return size
}

// Combinations expands the grid over base in enumeration order: variant,
// stop-loss, take-profit, min ATR, min RSI, max RSI. Combinations are not
// validated.
func (g ParameterGrid) Combinations(base models.StrategyConfig) []models.StrategyConfig {
	variants := g.Variants
	if len(variants) == 0 {
		variants = []models.SignalVariant{base.SignalVariant}
	}
	stopLosses := orBase(g.StopLossPcts, base.StopLossPct)
	takeProfits := orBase(g.TakeProfitPcts, base.TakeProfitPct)
	minAtrs := orBase(g.MinAtrPcts, base.MinAtrPct)
	minRsis := orBase(g.MinRsis, base.MinRsiForEntry)
	maxRsis := orBase(g.MaxRsis, base.MaxRsiForEntry)

	combinations := make([]models.StrategyConfig, 0, g.Size())
	for _, variant := range variants {
		for _, sl := range stopLosses {
			for _, tp := range takeProfits {
				for _, minAtr := range minAtrs {
					for _, minRsi := range minRsis {
						for _, maxRsi := range maxRsis {
							combinations = append(combinations, base.With(
								models.WithSignalVariant(variant),
								models.WithStopLoss(sl),
								models.WithTakeProfit(tp),
								models.WithMinAtrPct(minAtr),
								models.WithRsiBand(minRsi, maxRsi),
							))
						}
					}
				}
			}
		}
	}
	return combinations
}

func orBase(values []float64, base float64) []float64 {
	if len(values) == 0 {
		return []float64{base}
	}
	return values
}
