package services

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"gitlab.com/aoterocom/AOBacktester/models"
	"gitlab.com/aoterocom/AOBacktester/models/analytics"
	"math"
	"sort"
	"time"
)

type OptimizerSettings struct {
	MinTrainTrades int     `yaml:"minTrainTrades"`
	MinTestTrades  int     `yaml:"minTestTrades"`
	Alpha          float64 `yaml:"alpha"`
	TrainWeight    float64 `yaml:"trainWeight"`
	TestWeight     float64 `yaml:"testWeight"`
	// TopN truncates the ranking when positive.
	TopN    int `yaml:"topN"`
	Workers int `yaml:"workers"`
}

func DefaultOptimizerSettings() OptimizerSettings {
	return OptimizerSettings{
		MinTrainTrades: 3,
		MinTestTrades:  1,
		Alpha:          0.5,
		TrainWeight:    0.4,
		TestWeight:     0.6,
	}
}

func (s OptimizerSettings) Validate() error {
	var errs []error
	if s.MinTrainTrades < 0 || s.MinTestTrades < 0 {
		errs = append(errs, fmt.Errorf("minimum trade counts must not be negative"))
	}
	if s.Alpha < 0 {
		errs = append(errs, fmt.Errorf("alpha must not be negative, got %v", s.Alpha))
	}
	if s.TrainWeight < 0 || s.TestWeight < 0 || math.Abs(s.TrainWeight+s.TestWeight-1) > 1e-9 {
		errs = append(errs, fmt.Errorf("train and test weights must be non-negative and sum to 1, got %v + %v",
			s.TrainWeight, s.TestWeight))
	}
	if s.TestWeight < s.TrainWeight {
		errs = append(errs, fmt.Errorf("test weight %v must not be below train weight %v", s.TestWeight, s.TrainWeight))
	}
	if s.TopN < 0 {
		errs = append(errs, fmt.Errorf("topN must not be negative, got %d", s.TopN))
	}
	return errors.Join(errs...)
}

type OptimizerService struct {
	backtestService    BacktestService
	walkForwardService WalkForwardService
	settings           OptimizerSettings
}

func NewOptimizerService(settings OptimizerSettings) (OptimizerService, error) {
	if err := settings.Validate(); err != nil {
		return OptimizerService{}, fmt.Errorf("optimizer settings: %w", err)
	}
	return OptimizerService{
		backtestService:    NewBacktestService(),
		walkForwardService: NewWalkForwardService(settings.Workers),
		settings:           settings,
	}, nil
}

// Score is the return penalised by alpha times the drawdown.
func (ops OptimizerService) Score(result *models.BacktestResult) float64 {
	return result.TotalReturnPct - ops.settings.Alpha*result.MaxDrawdownPct
}

// Optimize evaluates every grid combination over base on the train and test
// slices and ranks the qualifying ones by joint score, best first. Ties keep
// enumeration order.
func (ops OptimizerService) Optimize(grid analytics.ParameterGrid, base models.StrategyConfig,
	train []models.Candle, test []models.Candle) (*analytics.OptimizationReport, error) {
	combinations := grid.Combinations(base)
	report := &analytics.OptimizationReport{Combinations: len(combinations)}

	type outcome struct {
		result    *analytics.OptimizationResult
		invalid   bool
		discarded bool
	}
	outcomes := make([]outcome, len(combinations))
	errs := make([]error, len(combinations))

	runParallel(ops.settings.Workers, len(combinations), func(i int) {
		cfg := combinations[i]
		if err := cfg.Validate(); err != nil {
			outcomes[i].invalid = true
			return
		}
		result, err := ops.evaluate(cfg, train, test)
		if err != nil {
			errs[i] = fmt.Errorf("combination %d (%s): %w", i, cfg.Label(), err)
			return
		}
		if result == nil {
			outcomes[i].discarded = true
			return
		}
		outcomes[i].result = result
	})
	if err := firstError(errs); err != nil {
		return nil, err
	}

	report.Results = make([]analytics.OptimizationResult, 0, len(combinations))
	for _, o := range outcomes {
		switch {
		case o.invalid:
			report.InvalidCombinations++
		case o.discarded:
			report.Discarded++
		case o.result != nil:
			report.Results = append(report.Results, *o.result)
		}
	}

	sort.SliceStable(report.Results, func(i, j int) bool {
		return report.Results[i].JointScore > report.Results[j].JointScore
	})
	if ops.settings.TopN > 0 && len(report.Results) > ops.settings.TopN {
		report.Results = report.Results[:ops.settings.TopN]
	}
	for i := range report.Results {
		report.Results[i].Rank = i + 1
	}

	logger.WithFields(log.Fields{
		"combinations": report.Combinations,
		"invalid":      report.InvalidCombinations,
		"discarded":    report.Discarded,
		"ranked":       len(report.Results),
	}).Infoln("optimization finished")
	return report, nil
}

// evaluate returns nil when either run has fewer trades than required.
func (ops OptimizerService) evaluate(cfg models.StrategyConfig, train []models.Candle, test []models.Candle) (*analytics.OptimizationResult, error) {
	trainResult, err := ops.backtestService.Run(train, cfg)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}
	if trainResult.TotalTrades < ops.settings.MinTrainTrades {
		return nil, nil
	}
	testResult, err := ops.backtestService.Run(test, cfg)
	if err != nil {
		return nil, fmt.Errorf("test: %w", err)
	}
	if testResult.TotalTrades < ops.settings.MinTestTrades {
		return nil, nil
	}

	trainScore := ops.Score(trainResult)
	testScore := ops.Score(testResult)
	return &analytics.OptimizationResult{
		Config:     cfg,
		Train:      trainResult,
		Test:       testResult,
		TrainScore: trainScore,
		TestScore:  testScore,
		JointScore: ops.settings.TrainWeight*trainScore + ops.settings.TestWeight*testScore,
	}, nil
}

// ValidateTopK runs a walk-forward over candles for the k best results and
// attaches the summaries to the report in place.
func (ops OptimizerService) ValidateTopK(report *analytics.OptimizationReport, candles []models.Candle,
	trainLength time.Duration, testLength time.Duration, k int) error {
	if k > len(report.Results) {
		k = len(report.Results)
	}
	for i := 0; i < k; i++ {
		summary, err := ops.walkForwardService.Run(candles, report.Results[i].Config, trainLength, testLength)
		if err != nil {
			return fmt.Errorf("walk-forward of rank %d: %w", report.Results[i].Rank, err)
		}
		report.Results[i].WalkForward = summary
	}
	return nil
}
