package analytics

import "gitlab.com/aoterocom/AOBacktester/models"

// WindowResult holds the train and test runs of one walk-forward window.
// Bounds are unix milliseconds, half-open, matched against candle closeTime.
type WindowResult struct {
	Index      int                    `json:"index"`
	TrainStart int64                  `json:"trainStart"`
	TrainEnd   int64                  `json:"trainEnd"`
	TestStart  int64                  `json:"testStart"`
	TestEnd    int64                  `json:"testEnd"`
	Train      *models.BacktestResult `json:"train"`
	Test       *models.BacktestResult `json:"test"`
}
