package analytics

import "gitlab.com/aoterocom/AOBacktester/models"

// OptimizationResult is one scored grid combination.
type OptimizationResult struct {
	Rank        int                    `json:"rank"`
	Config      models.StrategyConfig  `json:"config"`
	Train       *models.BacktestResult `json:"train"`
	Test        *models.BacktestResult `json:"test"`
	TrainScore  float64                `json:"trainScore"`
	TestScore   float64                `json:"testScore"`
	JointScore  float64                `json:"jointScore"`
	WalkForward *WalkForwardResult     `json:"walkForward,omitempty"`
}

// OptimizationReport is the ranked outcome of a grid search, best first.
type OptimizationReport struct {
	Results             []OptimizationResult `json:"results"`
	Combinations        int                  `json:"combinations"`
	InvalidCombinations int                  `json:"invalidCombinations"`
	Discarded           int                  `json:"discarded"`
}

// Recommended returns the top-ranked result, if any combination qualified.
func (r *OptimizationReport) Recommended() (OptimizationResult, bool) {
	if len(r.Results) == 0 {
		return OptimizationResult{}, false
	}
	return r.Results[0], true
}
