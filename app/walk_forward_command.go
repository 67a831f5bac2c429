package app

import (
	"fmt"
	"github.com/urfave/cli/v2"
	"github.com/xhit/go-str2duration/v2"
	"gitlab.com/aoterocom/AOBacktester/helpers"
	"gitlab.com/aoterocom/AOBacktester/interfaces"
	"gitlab.com/aoterocom/AOBacktester/models/analytics"
	"gitlab.com/aoterocom/AOBacktester/services"
	"time"
)

func (bt *Backtester) WalkForward(c *cli.Context) error {
	trainLength, testLength, err := parseWindowLengths(c.String("train"), c.String("test"))
	if err != nil {
		return err
	}
	candles, err := bt.loadCandles(c, "candles")
	if err != nil {
		return err
	}
	cfg, err := bt.strategyConfig(c)
	if err != nil {
		return err
	}

	result, err := services.NewWalkForwardService(bt.AppConfig.Workers).Run(candles, cfg, trainLength, testLength)
	if err != nil {
		return err
	}
	helpers.Logger.Notify(walkForwardSummary(c.String("symbol"), result))

	if c.Bool("save") {
		dbService, err := bt.database()
		if err != nil {
			return err
		}
		repository := interfaces.ResultRepository(dbService)
		if _, err := repository.SaveWalkForwardRun(c.String("symbol"), c.String("interval"), cfg, result); err != nil {
			return err
		}
	}
	if c.Bool("json") {
		return bt.printJSON(result)
	}
	for _, window := range result.Windows {
		fmt.Fprintf(bt.Out, "#%-3d test %s -> %s  train %7.2f%% (%d)  test %7.2f%% (%d)  DD %6.2f%%\n",
			window.Index, formatMillis(window.TestStart), formatMillis(window.TestEnd),
			window.Train.TotalReturnPct, window.Train.TotalTrades,
			window.Test.TotalReturnPct, window.Test.TotalTrades, window.Test.MaxDrawdownPct)
	}
	return nil
}

func parseWindowLengths(train string, test string) (time.Duration, time.Duration, error) {
	trainLength, err := str2duration.ParseDuration(train)
	if err != nil {
		return 0, 0, fmt.Errorf("train: %w", err)
	}
	testLength, err := str2duration.ParseDuration(test)
	if err != nil {
		return 0, 0, fmt.Errorf("test: %w", err)
	}
	return trainLength, testLength, nil
}

func walkForwardSummary(symbol string, result *analytics.WalkForwardResult) string {
	return fmt.Sprintf("%s walk-forward windows: %d (skipped %d), mean test: %.2f%%, worst test: %.2f%%, worst test DD: %.2f%%, positive: %.0f%%",
		symbol, result.CompletedWindows, result.SkippedWindows, result.MeanTestReturnPct,
		result.WorstTestReturnPct, result.WorstTestDrawdownPct, result.PositiveWindowRatio*100)
}
