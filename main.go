package main

import (
	"github.com/urfave/cli/v2"
	"gitlab.com/aoterocom/AOBacktester/app"
	"os"
)

func main() {
	backtester := &app.Backtester{}

	cliApp := &cli.App{
		Name:  "aobacktester",
		Usage: "backtest, walk-forward and optimize rule-based trading strategies",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env", Value: "conf.env", Usage: "env file with application and strategy settings"},
			&cli.StringFlag{Name: "log-level", Usage: "overrides logLevel from the env file"},
		},
		Before:   backtester.Before,
		Commands: app.Commands(backtester),
	}

	os.Exit(app.HandleError(cliApp.Run(os.Args)))
}
