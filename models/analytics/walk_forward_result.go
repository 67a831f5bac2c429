package analytics

import (
	"gitlab.com/aoterocom/AOBacktester/helpers"
	"math"
)

// WalkForwardResult summarises the completed windows of a walk-forward run.
type WalkForwardResult struct {
	Windows                []WindowResult `json:"windows"`
	CompletedWindows       int            `json:"completedWindows"`
	SkippedWindows         int            `json:"skippedWindows"`
	MeanTestReturnPct      float64        `json:"meanTestReturnPct"`
	WorstTestReturnPct     float64        `json:"worstTestReturnPct"`
	WorstTestDrawdownPct   float64        `json:"worstTestDrawdownPct"`
	MeanTrainReturnPct     float64        `json:"meanTrainReturnPct"`
	TotalTestTrades        int            `json:"totalTestTrades"`
	PositiveWindowRatio    float64        `json:"positiveWindowRatio"`
	TestReturnStdDev       float64        `json:"testReturnStdDev"`
	AllTestWindowsPositive bool           `json:"allTestWindowsPositive"`
}

func NewWalkForwardResult(windows []WindowResult, skipped int) *WalkForwardResult {
	result := &WalkForwardResult{
		Windows:          windows,
		CompletedWindows: len(windows),
		SkippedWindows:   skipped,
	}
	if len(windows) == 0 {
		return result
	}

	testReturns := make([]float64, len(windows))
	trainReturns := make([]float64, len(windows))
	result.WorstTestReturnPct = math.Inf(1)
	for i, window := range windows {
		testReturns[i] = window.Test.TotalReturnPct
		trainReturns[i] = window.Train.TotalReturnPct
		result.TotalTestTrades += window.Test.TotalTrades
		result.WorstTestReturnPct = math.Min(result.WorstTestReturnPct, window.Test.TotalReturnPct)
		result.WorstTestDrawdownPct = math.Max(result.WorstTestDrawdownPct, window.Test.MaxDrawdownPct)
	}

	result.MeanTestReturnPct = helpers.Mean(testReturns)
	result.MeanTrainReturnPct = helpers.Mean(trainReturns)
	result.TestReturnStdDev = helpers.StdDev(testReturns, result.MeanTestReturnPct)
	result.PositiveWindowRatio = helpers.PositiveRatio(testReturns)
	result.AllTestWindowsPositive = helpers.AllValuesPositive(testReturns)
	return result
}
