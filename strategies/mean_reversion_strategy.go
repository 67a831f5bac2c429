package strategies

import (
	"gitlab.com/aoterocom/AOBacktester/indicators"
	"gitlab.com/aoterocom/AOBacktester/models"
)

// MeanReversionStrategy buys a close stretched below the mid EMA by
// kEnter ATRs and exits once it recovers to within kExit ATRs.
type MeanReversionStrategy struct {
	kEnter float64
	kExit  float64
}

func NewMeanReversionStrategy(kEnter float64, kExit float64) MeanReversionStrategy {
	return MeanReversionStrategy{kEnter: kEnter, kExit: kExit}
}

func (s MeanReversionStrategy) Name() models.SignalVariant {
	return models.VariantMeanRevert
}

func (s MeanReversionStrategy) Lookahead() int {
	return 0
}

func (s MeanReversionStrategy) Detect(set *indicators.Set, i int, inPosition bool) models.SignalType {
	if i < 0 || i >= set.Len() || !indicators.IsReady(set.Atr[i]) {
		return models.SignalHold
	}
	price := set.Closes[i]
	mid := set.EmaMid[i]
	atr := set.Atr[i]
	if !inPosition && price < mid-s.kEnter*atr {
		return models.SignalLong
	}
	if inPosition && price >= mid-s.kExit*atr {
		return models.SignalCloseLong
	}
	return models.SignalHold
}
