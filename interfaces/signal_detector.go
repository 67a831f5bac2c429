package interfaces

import (
	"gitlab.com/aoterocom/AOBacktester/indicators"
	"gitlab.com/aoterocom/AOBacktester/models"
)

type SignalDetector interface {
	Name() models.SignalVariant
	// Detect evaluates bar i. It must not mutate set and returns HOLD whenever
	// the indicator values it needs are not ready.
	Detect(set *indicators.Set, i int, inPosition bool) models.SignalType
	// Lookahead is the number of bars after i that Detect reads.
	Lookahead() int
}
