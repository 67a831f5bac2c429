package app

import (
	"fmt"
	"github.com/urfave/cli/v2"
	"gitlab.com/aoterocom/AOBacktester/config"
	"gitlab.com/aoterocom/AOBacktester/helpers"
	"gitlab.com/aoterocom/AOBacktester/interfaces"
	"gitlab.com/aoterocom/AOBacktester/models"
	"gitlab.com/aoterocom/AOBacktester/services"
)

func (bt *Backtester) Optimize(c *cli.Context) error {
	plan, err := config.LoadOptimizerFile(c.String("grid"))
	if err != nil {
		return err
	}
	if c.IsSet("validate-top") {
		plan.TopK = c.Int("validate-top")
	}
	if c.String("train") != "" || c.String("test") != "" {
		if plan.WalkForwardTrain, plan.WalkForwardTest, err = parseWindowLengths(c.String("train"), c.String("test")); err != nil {
			return err
		}
	}
	if plan.Settings.Workers == 0 {
		plan.Settings.Workers = bt.AppConfig.Workers
	}

	candles, err := bt.loadCandles(c, "candles")
	if err != nil {
		return err
	}
	base, err := bt.strategyConfig(c)
	if err != nil {
		return err
	}
	optimizer, err := services.NewOptimizerService(plan.Settings)
	if err != nil {
		return err
	}

	train, test := models.SplitByFraction(candles, plan.TrainFraction)
	report, err := optimizer.Optimize(plan.Grid, base, train, test)
	if err != nil {
		return err
	}
	if plan.TopK > 0 {
		if err := optimizer.ValidateTopK(report, candles, plan.WalkForwardTrain, plan.WalkForwardTest, plan.TopK); err != nil {
			return err
		}
	}

	if best, ok := report.Recommended(); ok {
		helpers.Logger.Notify(fmt.Sprintf("%s best of %d combinations: %s joint score %.2f (train %.2f%%, test %.2f%%)",
			c.String("symbol"), report.Combinations, best.Config.Label(), best.JointScore,
			best.Train.TotalReturnPct, best.Test.TotalReturnPct))
	} else {
		helpers.Logger.Notify(fmt.Sprintf("%s no combination out of %d qualified", c.String("symbol"), report.Combinations))
	}

	if c.Bool("save") {
		dbService, err := bt.database()
		if err != nil {
			return err
		}
		repository := interfaces.ResultRepository(dbService)
		if _, err := repository.SaveOptimizationRun(c.String("symbol"), c.String("interval"), report); err != nil {
			return err
		}
	}
	if c.Bool("json") {
		return bt.printJSON(report)
	}
	for _, result := range report.Results {
		fmt.Fprintf(bt.Out, "%3d  %-60s  joint %8.2f  train %8.2f  test %8.2f\n",
			result.Rank, result.Config.Label(), result.JointScore, result.TrainScore, result.TestScore)
	}
	return nil
}
