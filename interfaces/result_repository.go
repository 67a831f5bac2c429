package interfaces

import (
	"gitlab.com/aoterocom/AOBacktester/models"
	"gitlab.com/aoterocom/AOBacktester/models/analytics"
)

type ResultRepository interface {
	SaveBacktestRun(symbol string, interval string, cfg models.StrategyConfig, result *models.BacktestResult) (uint, error)
	SaveWalkForwardRun(symbol string, interval string, cfg models.StrategyConfig, result *analytics.WalkForwardResult) (uint, error)
	SaveOptimizationRun(symbol string, interval string, report *analytics.OptimizationReport) (uint, error)
}
