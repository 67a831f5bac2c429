package strategies

import (
	"gitlab.com/aoterocom/AOBacktester/indicators"
	"gitlab.com/aoterocom/AOBacktester/models"
)

// BreakoutStrategy trades closes crossing the fast EMA in both directions.
type BreakoutStrategy struct{}

func NewBreakoutStrategy() BreakoutStrategy {
	return BreakoutStrategy{}
}

func (s BreakoutStrategy) Name() models.SignalVariant {
	return models.VariantBreakout
}

func (s BreakoutStrategy) Lookahead() int {
	return 0
}

func (s BreakoutStrategy) Detect(set *indicators.Set, i int, inPosition bool) models.SignalType {
	if i < 1 || i >= set.Len() {
		return models.SignalHold
	}
	if !inPosition && crossesUp(set.Closes, set.EmaFast, i) {
		return models.SignalLong
	}
	if inPosition && crossesDown(set.Closes, set.EmaFast, i) {
		return models.SignalCloseLong
	}
	return models.SignalHold
}

// crossesUp ties go to the near side: a previous value sitting on the line
// has not crossed yet.
func crossesUp(values []float64, line []float64, i int) bool {
	return values[i-1] <= line[i-1] && values[i] > line[i]
}

func crossesDown(values []float64, line []float64, i int) bool {
	return values[i-1] >= line[i-1] && values[i] < line[i]
}
