package strategies

import (
	"gitlab.com/aoterocom/AOBacktester/indicators"
	"gitlab.com/aoterocom/AOBacktester/models"
)

// PullbackStrategy buys a fast EMA cross-up inside an up-trend, but only after
// price has genuinely retraced below the fast EMA within the lookback. Exits
// are left to the stop and target.
type PullbackStrategy struct {
	lookback   int
	retracePct float64
}

func NewPullbackStrategy(lookback int, retracePct float64) PullbackStrategy {
	return PullbackStrategy{lookback: lookback, retracePct: retracePct}
}

func (s PullbackStrategy) Name() models.SignalVariant {
	return models.VariantPullback
}

func (s PullbackStrategy) Lookahead() int {
	return 0
}

func (s PullbackStrategy) Detect(set *indicators.Set, i int, inPosition bool) models.SignalType {
	if inPosition || i < 1 || i >= set.Len() {
		return models.SignalHold
	}
	price := set.Closes[i]
	if !(price > set.EmaSlow[i] && set.EmaFast[i] > set.EmaSlow[i]) {
		return models.SignalHold
	}
	if !crossesUp(set.Closes, set.EmaFast, i) || !s.retraced(set, i) {
		return models.SignalHold
	}
	return models.SignalLong
}

func (s PullbackStrategy) retraced(set *indicators.Set, i int) bool {
	from := i - s.lookback
	if from < 0 {
		from = 0
	}
	for j := from; j < i; j++ {
		if set.Closes[j] <= set.EmaFast[j]*(1-s.retracePct) {
			return true
		}
	}
	return false
}
