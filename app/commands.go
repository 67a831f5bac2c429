package app

import (
	"github.com/urfave/cli/v2"
)

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "candles", Usage: "candle file (.json or .csv); the database cache is used when empty"},
		&cli.StringFlag{Name: "symbol", Usage: "symbol of the series, e.g. BTCUSDT"},
		&cli.StringFlag{Name: "interval", Value: "1h", Usage: "kline interval of the series"},
		&cli.StringFlag{Name: "from", Usage: "first day (YYYY-MM-DD), inclusive"},
		&cli.StringFlag{Name: "to", Usage: "last day (YYYY-MM-DD), exclusive"},
		&cli.StringFlag{Name: "htf-candles", Usage: "higher timeframe candle file enabling the regime filter"},
		&cli.IntFlag{Name: "htf-fast", Value: 50, Usage: "fast EMA period of the regime classifier"},
		&cli.IntFlag{Name: "htf-slow", Value: 200, Usage: "slow EMA period of the regime classifier"},
		&cli.BoolFlag{Name: "json", Usage: "print the full result as JSON"},
		&cli.BoolFlag{Name: "save", Usage: "store the result in the database"},
	}
}

// Commands wires the subcommands to bt.
func Commands(bt *Backtester) []*cli.Command {
	return []*cli.Command{
		{
			Name:   "backtest",
			Usage:  "run the strategy configured in the env file over a candle series",
			Flags:  sourceFlags(),
			Action: bt.Backtest,
		},
		{
			Name:  "walkforward",
			Usage: "run the strategy over consecutive train/test windows",
			Flags: append(sourceFlags(),
				&cli.StringFlag{Name: "train", Value: "90d", Usage: "train window length (e.g. 90d, 12w)"},
				&cli.StringFlag{Name: "test", Value: "30d", Usage: "test window length"},
			),
			Action: bt.WalkForward,
		},
		{
			Name:  "optimize",
			Usage: "rank a parameter grid by train/test score",
			Flags: append(sourceFlags(),
				&cli.StringFlag{Name: "grid", Required: true, Usage: "optimizer YAML file"},
				&cli.IntFlag{Name: "validate-top", Usage: "walk-forward validate the k best combinations"},
				&cli.StringFlag{Name: "train", Usage: "walk-forward train length, overrides the grid file"},
				&cli.StringFlag{Name: "test", Usage: "walk-forward test length, overrides the grid file"},
			),
			Action: bt.Optimize,
		},
		{
			Name:  "fetch",
			Usage: "download klines from Binance",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "symbol", Required: true},
				&cli.StringFlag{Name: "interval", Value: "1h"},
				&cli.StringFlag{Name: "from", Required: true, Usage: "first day (YYYY-MM-DD)"},
				&cli.StringFlag{Name: "to", Usage: "last day (YYYY-MM-DD), exclusive"},
				&cli.StringFlag{Name: "out", Usage: "JSON file to write"},
				&cli.BoolFlag{Name: "to-db", Usage: "upsert the candles into the database cache"},
			},
			Action: bt.Fetch,
		},
	}
}
