package strategies

import (
	"gitlab.com/aoterocom/AOBacktester/indicators"
	"gitlab.com/aoterocom/AOBacktester/models"
)

// LooseConfirmStrategy enters on a close above both EMAs and the prior high
// that the next bar confirms with a higher close. It reads bar i+1, so it
// never signals on the last bar of a series and is one bar late on a live
// feed.
type LooseConfirmStrategy struct{}

func NewLooseConfirmStrategy() LooseConfirmStrategy {
	return LooseConfirmStrategy{}
}

func (s LooseConfirmStrategy) Name() models.SignalVariant {
	return models.VariantLooseConfirm
}

func (s LooseConfirmStrategy) Lookahead() int {
	return 1
}

func (s LooseConfirmStrategy) Detect(set *indicators.Set, i int, inPosition bool) models.SignalType {
	if inPosition || i < 1 || i+1 >= set.Len() {
		return models.SignalHold
	}
	price := set.Closes[i]
	if price > set.EmaFast[i] && price > set.EmaSlow[i] &&
		price > set.Candles[i-1].High && set.Closes[i+1] > price {
		return models.SignalLong
	}
	return models.SignalHold
}
