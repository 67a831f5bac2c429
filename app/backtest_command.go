package app

import (
	"fmt"
	"github.com/sdcoffey/techan"
	"github.com/urfave/cli/v2"
	"gitlab.com/aoterocom/AOBacktester/helpers"
	"gitlab.com/aoterocom/AOBacktester/interfaces"
	"gitlab.com/aoterocom/AOBacktester/models"
	"gitlab.com/aoterocom/AOBacktester/services"
	"time"
)

func (bt *Backtester) Backtest(c *cli.Context) error {
	candles, err := bt.loadCandles(c, "candles")
	if err != nil {
		return err
	}
	cfg, err := bt.strategyConfig(c)
	if err != nil {
		return err
	}

	result, err := services.NewBacktestService().Run(candles, cfg)
	if err != nil {
		return err
	}
	helpers.Logger.Notify(backtestSummary(c.String("symbol"), cfg, result))

	if c.Bool("save") {
		if err := bt.saveBacktest(c, cfg, result); err != nil {
			return err
		}
	}
	if c.Bool("json") {
		return bt.printJSON(result)
	}
	bt.printTrades(result.Trades)
	bt.printRecordAnalysis(result.TradingRecord(c.String("symbol")))
	return nil
}

func (bt *Backtester) saveBacktest(c *cli.Context, cfg models.StrategyConfig, result *models.BacktestResult) error {
	dbService, err := bt.database()
	if err != nil {
		return err
	}
	repository := interfaces.ResultRepository(dbService)
	id, err := repository.SaveBacktestRun(c.String("symbol"), c.String("interval"), cfg, result)
	if err != nil {
		return err
	}
	helpers.Logger.Infoln(fmt.Sprintf("backtest run stored with id %d", id))
	return nil
}

func backtestSummary(symbol string, cfg models.StrategyConfig, result *models.BacktestResult) string {
	return fmt.Sprintf("%s [%s] trades: %d, return: %.2f%%, avg: %.2f%%, win rate: %.1f%%, max DD: %.2f%%, annualized: %.2f%%, PF: %.2f",
		symbol, cfg.Label(), result.TotalTrades, result.TotalReturnPct, result.AvgReturnPct, result.WinRate*100,
		result.MaxDrawdownPct, result.AnnualizedReturnPct, result.ProfitFactor)
}

func (bt *Backtester) printTrades(trades []models.Trade) {
	for _, trade := range trades {
		fmt.Fprintf(bt.Out, "%s -> %s  %10.4f -> %10.4f  %7.2f%%  %s\n",
			formatMillis(trade.EntryTime), formatMillis(trade.ExitTime),
			trade.EntryPrice, trade.ExitPrice, trade.PnlPct, trade.ExitReason)
	}
}

// printRecordAnalysis reports techan's view of the replayed unit-sized trades.
func (bt *Backtester) printRecordAnalysis(record *techan.TradingRecord) {
	var profitable techan.ProfitableTradesAnalysis
	var totalProfit techan.TotalProfitAnalysis
	fmt.Fprintf(bt.Out, "profitable trades: %.0f of %d, profit per unit: %.4f\n",
		profitable.Analyze(record), len(record.Trades), totalProfit.Analyze(record))
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04")
}
