package services

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"gitlab.com/aoterocom/AOBacktester/models"
	"gitlab.com/aoterocom/AOBacktester/models/analytics"
	"time"
)

// Window is one planned train/test pair. Bounds are half-open unix
// milliseconds matched against candle closeTime.
type Window struct {
	Index      int
	TrainStart int64
	TrainEnd   int64
	TestStart  int64
	TestEnd    int64
}

// PlanWindows slides a train/test pair across the history starting at the
// first closeTime, advancing by the test length. A pair whose test range
// would extend past the last candle is dropped.
func PlanWindows(candles []models.Candle, trainLength time.Duration, testLength time.Duration) ([]Window, error) {
	if trainLength <= 0 || testLength <= 0 {
		return nil, fmt.Errorf("walk-forward lengths must be positive (train %s, test %s)", trainLength, testLength)
	}
	if len(candles) == 0 {
		return nil, nil
	}

	trainMs := trainLength.Milliseconds()
	testMs := testLength.Milliseconds()
	historyEnd := candles[len(candles)-1].CloseTime + 1

	var windows []Window
	for trainStart := candles[0].CloseTime; ; trainStart += testMs {
		trainEnd := trainStart + trainMs
		testEnd := trainEnd + testMs
		if testEnd > historyEnd {
			break
		}
		windows = append(windows, Window{
			Index:      len(windows),
			TrainStart: trainStart,
			TrainEnd:   trainEnd,
			TestStart:  trainEnd,
			TestEnd:    testEnd,
		})
	}
	return windows, nil
}

type WalkForwardService struct {
	backtestService BacktestService
	workers         int
}

// NewWalkForwardService runs windows on up to workers goroutines; zero or
// less means one per CPU.
func NewWalkForwardService(workers int) WalkForwardService {
	return WalkForwardService{backtestService: NewBacktestService(), workers: workers}
}

// Run backtests cfg on the train and test slice of every window. Windows with
// a slice too short for the warm-up are skipped and counted.
func (wfs WalkForwardService) Run(candles []models.Candle, cfg models.StrategyConfig,
	trainLength time.Duration, testLength time.Duration) (*analytics.WalkForwardResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	windows, err := PlanWindows(candles, trainLength, testLength)
	if err != nil {
		return nil, err
	}

	results := make([]*analytics.WindowResult, len(windows))
	errs := make([]error, len(windows))
	runParallel(wfs.workers, len(windows), func(i int) {
		results[i], errs[i] = wfs.runWindow(candles, cfg, windows[i])
	})
	if err := firstError(errs); err != nil {
		return nil, err
	}

	completed := make([]analytics.WindowResult, 0, len(windows))
	skipped := 0
	for _, result := range results {
		if result == nil {
			skipped++
			continue
		}
		completed = append(completed, *result)
	}
	summary := analytics.NewWalkForwardResult(completed, skipped)

	logger.WithFields(log.Fields{
		"config":    cfg.Label(),
		"windows":   summary.CompletedWindows,
		"skipped":   summary.SkippedWindows,
		"meanTest":  fmt.Sprintf("%.2f%%", summary.MeanTestReturnPct),
		"worstTest": fmt.Sprintf("%.2f%%", summary.WorstTestReturnPct),
		"worstDD":   fmt.Sprintf("%.2f%%", summary.WorstTestDrawdownPct),
	}).Infoln("walk-forward finished")
	return summary, nil
}

// runWindow returns nil without error when the window is skipped.
func (wfs WalkForwardService) runWindow(candles []models.Candle, cfg models.StrategyConfig, window Window) (*analytics.WindowResult, error) {
	train, err := wfs.backtestService.Run(models.SliceByTime(candles, window.TrainStart, window.TrainEnd), cfg)
	if errors.Is(err, models.ErrInsufficientData) {
		logger.WithFields(log.Fields{"window": window.Index}).Debugln("train slice too short, window skipped")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("window %d train: %w", window.Index, err)
	}

	test, err := wfs.backtestService.Run(models.SliceByTime(candles, window.TestStart, window.TestEnd), cfg)
	if errors.Is(err, models.ErrInsufficientData) {
		logger.WithFields(log.Fields{"window": window.Index}).Debugln("test slice too short, window skipped")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("window %d test: %w", window.Index, err)
	}

	return &analytics.WindowResult{
		Index:      window.Index,
		TrainStart: window.TrainStart,
		TrainEnd:   window.TrainEnd,
		TestStart:  window.TestStart,
		TestEnd:    window.TestEnd,
		Train:      train,
		Test:       test,
	}, nil
}
