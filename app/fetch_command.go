package app

import (
	"fmt"
	"github.com/urfave/cli/v2"
	"gitlab.com/aoterocom/AOBacktester/helpers"
	"gitlab.com/aoterocom/AOBacktester/models"
	"gitlab.com/aoterocom/AOBacktester/providers/binance"
	"gitlab.com/aoterocom/AOBacktester/providers/file"
)

func (bt *Backtester) Fetch(c *cli.Context) error {
	if c.String("out") == "" && !c.Bool("to-db") {
		return fmt.Errorf("fetch needs --out, --to-db or both")
	}
	from, to, err := parseRange(c.String("from"), c.String("to"))
	if err != nil {
		return err
	}

	symbol := c.String("symbol")
	interval := c.String("interval")
	binanceService := binance.NewBinanceService(bt.AppConfig.BinanceAPIKey, bt.AppConfig.BinanceAPISecret)
	candles, err := binanceService.GetCandles(c.Context, symbol, interval, from, to)
	if err != nil {
		return err
	}
	if err := models.ValidateSeries(candles); err != nil {
		return fmt.Errorf("downloaded series: %w", err)
	}

	if out := c.String("out"); out != "" {
		if err := file.WriteJSON(out, candles); err != nil {
			return err
		}
	}
	if c.Bool("to-db") {
		dbService, err := bt.database()
		if err != nil {
			return err
		}
		if err := dbService.SaveCandles(symbol, interval, candles); err != nil {
			return err
		}
	}
	helpers.Logger.Infoln(fmt.Sprintf("fetched %d %s %s candles", len(candles), symbol, interval))
	return nil
}
