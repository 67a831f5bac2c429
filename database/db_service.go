package database

import (
	"context"
	"encoding/json"
	"fmt"
	database "gitlab.com/aoterocom/AOBacktester/database/models"
	"gitlab.com/aoterocom/AOBacktester/models"
	"gitlab.com/aoterocom/AOBacktester/models/analytics"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

type DBService struct {
	DB *gorm.DB
}

func NewDBService(dsn string) (*DBService, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	dbs := &DBService{
		DB: db,
	}

	err = dbs.DB.AutoMigrate(&database.Candle{}, &database.BacktestRun{}, &database.TradeRecord{},
		&database.WalkForwardRun{}, &database.WalkForwardWindow{},
		&database.OptimizationRun{}, &database.OptimizationEntry{})
	if err != nil {
		return nil, err
	}

	return dbs, nil
}

// GetCandles reads cached candles whose closeTime falls in [from, to).
func (dbs *DBService) GetCandles(ctx context.Context, symbol string, interval string, from time.Time, to time.Time) ([]models.Candle, error) {
	query := dbs.DB.WithContext(ctx).
		Where("symbol = ? AND timeframe = ?", symbol, interval)
	if !from.IsZero() {
		query = query.Where("close_time >= ?", from.UnixMilli())
	}
	if !to.IsZero() {
		query = query.Where("close_time < ?", to.UnixMilli())
	}

	var rows []database.Candle
	if err := query.Order("open_time").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading %s %s candles: %w", symbol, interval, err)
	}
	candles := make([]models.Candle, len(rows))
	for i, row := range rows {
		candles[i] = candleFromRow(row)
	}
	return candles, nil
}

// SaveCandles upserts candles keyed by symbol, interval and openTime.
func (dbs *DBService) SaveCandles(symbol string, interval string, candles []models.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	rows := candleRows(symbol, interval, candles)

	// Update columns to new value on conflict
	err := dbs.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "timeframe"}, {Name: "open_time"}},
		DoUpdates: clause.AssignmentColumns([]string{"close_time", "open", "high", "low", "close", "volume", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("saving %s %s candles: %w", symbol, interval, err)
	}
	return nil
}

func (dbs *DBService) SaveBacktestRun(symbol string, interval string, cfg models.StrategyConfig, result *models.BacktestResult) (uint, error) {
	row, err := backtestRunRow(symbol, interval, cfg, result)
	if err != nil {
		return 0, err
	}
	if err := dbs.DB.Create(&row).Error; err != nil {
		return 0, fmt.Errorf("saving backtest run: %w", err)
	}
	return row.ID, nil
}

func (dbs *DBService) SaveWalkForwardRun(symbol string, interval string, cfg models.StrategyConfig, result *analytics.WalkForwardResult) (uint, error) {
	row, err := walkForwardRunRow(symbol, interval, cfg, result)
	if err != nil {
		return 0, err
	}
	if err := dbs.DB.Create(&row).Error; err != nil {
		return 0, fmt.Errorf("saving walk-forward run: %w", err)
	}
	return row.ID, nil
}

func (dbs *DBService) SaveOptimizationRun(symbol string, interval string, report *analytics.OptimizationReport) (uint, error) {
	row, err := optimizationRunRow(symbol, interval, report)
	if err != nil {
		return 0, err
	}
	if err := dbs.DB.Create(&row).Error; err != nil {
		return 0, fmt.Errorf("saving optimization run: %w", err)
	}
	return row.ID, nil
}

func candleRows(symbol string, interval string, candles []models.Candle) []database.Candle {
	rows := make([]database.Candle, len(candles))
	for i, c := range candles {
		rows[i] = database.Candle{
			Symbol:    symbol,
			Timeframe: interval,
			OpenTime:  c.OpenTime,
			CloseTime: c.CloseTime,
			Open:      c.Open,
			High:      c.High,
			Low:       c.Low,
			Close:     c.Close,
			Volume:    c.Volume,
		}
	}
	return rows
}

func candleFromRow(row database.Candle) models.Candle {
	return models.Candle{
		OpenTime:  row.OpenTime,
		CloseTime: row.CloseTime,
		Open:      row.Open,
		High:      row.High,
		Low:       row.Low,
		Close:     row.Close,
		Volume:    row.Volume,
	}
}

func configJSON(cfg models.StrategyConfig) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding strategy config: %w", err)
	}
	return string(data), nil
}

func backtestRunRow(symbol string, interval string, cfg models.StrategyConfig, result *models.BacktestResult) (database.BacktestRun, error) {
	config, err := configJSON(cfg)
	if err != nil {
		return database.BacktestRun{}, err
	}
	row := database.BacktestRun{
		Symbol:              symbol,
		Timeframe:           interval,
		Variant:             string(cfg.SignalVariant),
		Config:              config,
		TotalTrades:         result.TotalTrades,
		TotalReturnPct:      result.TotalReturnPct,
		AvgReturnPct:        result.AvgReturnPct,
		WinRate:             result.WinRate,
		MaxDrawdownPct:      result.MaxDrawdownPct,
		AnnualizedReturnPct: result.AnnualizedReturnPct,
		ProfitFactor:        result.ProfitFactor,
		FinalEquity:         result.FinalEquity,
		StartTime:           result.StartTime,
		EndTime:             result.EndTime,
	}
	for _, trade := range result.Trades {
		row.Trades = append(row.Trades, database.TradeRecord{
			EntryTime:  trade.EntryTime,
			ExitTime:   trade.ExitTime,
			EntryPrice: trade.EntryPrice,
			ExitPrice:  trade.ExitPrice,
			GrossPct:   trade.GrossPct,
			PnlPct:     trade.PnlPct,
			ExitReason: string(trade.ExitReason),
			BarsHeld:   trade.BarsHeld,
		})
	}
	return row, nil
}

func walkForwardRunRow(symbol string, interval string, cfg models.StrategyConfig, result *analytics.WalkForwardResult) (database.WalkForwardRun, error) {
	config, err := configJSON(cfg)
	if err != nil {
		return database.WalkForwardRun{}, err
	}
	row := database.WalkForwardRun{
		Symbol:                 symbol,
		Timeframe:              interval,
		Variant:                string(cfg.SignalVariant),
		Config:                 config,
		CompletedWindows:       result.CompletedWindows,
		SkippedWindows:         result.SkippedWindows,
		MeanTestReturnPct:      result.MeanTestReturnPct,
		WorstTestReturnPct:     result.WorstTestReturnPct,
		WorstTestDrawdownPct:   result.WorstTestDrawdownPct,
		MeanTrainReturnPct:     result.MeanTrainReturnPct,
		TotalTestTrades:        result.TotalTestTrades,
		PositiveWindowRatio:    result.PositiveWindowRatio,
		TestReturnStdDev:       result.TestReturnStdDev,
		AllTestWindowsPositive: result.AllTestWindowsPositive,
	}
	for _, window := range result.Windows {
		row.Windows = append(row.Windows, database.WalkForwardWindow{
			WindowIndex:        window.Index,
			TrainStart:         window.TrainStart,
			TrainEnd:           window.TrainEnd,
			TestStart:          window.TestStart,
			TestEnd:            window.TestEnd,
			TrainTrades:        window.Train.TotalTrades,
			TrainReturnPct:     window.Train.TotalReturnPct,
			TestTrades:         window.Test.TotalTrades,
			TestReturnPct:      window.Test.TotalReturnPct,
			TestMaxDrawdownPct: window.Test.MaxDrawdownPct,
		})
	}
	return row, nil
}

func optimizationRunRow(symbol string, interval string, report *analytics.OptimizationReport) (database.OptimizationRun, error) {
	row := database.OptimizationRun{
		Symbol:              symbol,
		Timeframe:           interval,
		Combinations:        report.Combinations,
		InvalidCombinations: report.InvalidCombinations,
		Discarded:           report.Discarded,
	}
	for _, result := range report.Results {
		config, err := configJSON(result.Config)
		if err != nil {
			return database.OptimizationRun{}, err
		}
		entry := database.OptimizationEntry{
			Rank:           result.Rank,
			Variant:        string(result.Config.SignalVariant),
			Config:         config,
			TrainScore:     result.TrainScore,
			TestScore:      result.TestScore,
			JointScore:     result.JointScore,
			TrainTrades:    result.Train.TotalTrades,
			TrainReturnPct: result.Train.TotalReturnPct,
			TestTrades:     result.Test.TotalTrades,
			TestReturnPct:  result.Test.TotalReturnPct,
		}
		if result.WalkForward != nil {
			entry.WalkForwardMeanTestReturnPct = result.WalkForward.MeanTestReturnPct
			entry.WalkForwardWorstTestReturnPct = result.WalkForward.WorstTestReturnPct
		}
		row.Entries = append(row.Entries, entry)
	}
	return row, nil
}
