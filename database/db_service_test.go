package database

import (
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/aoterocom/AOBacktester/mocks"
	"gitlab.com/aoterocom/AOBacktester/models"
	"gitlab.com/aoterocom/AOBacktester/models/analytics"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"testing"
	"time"
)

// sqlRecorder captures the statements gorm builds in dry-run mode.
type sqlRecorder struct {
	statements []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.statements = append(r.statements, sql)
}

func dryRunService(t *testing.T) (*DBService, *sqlRecorder) {
	t.Helper()
	recorder := &sqlRecorder{}
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/backtests?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 recorder,
	})
	require.NoError(t, err)
	return &DBService{DB: db}, recorder
}

func TestSaveCandlesUpserts(t *testing.T) {
	dbs, recorder := dryRunService(t)

	require.NoError(t, dbs.SaveCandles("BTCUSDT", "1h", mocks.FlatCandles(3, 100)))
	require.Len(t, recorder.statements, 1)
	sql := recorder.statements[0]
	assert.Contains(t, sql, "INSERT INTO `candles`")
	assert.Contains(t, sql, "ON DUPLICATE KEY UPDATE")
	assert.Contains(t, sql, "`close`=VALUES(`close`)")
	assert.NotContains(t, sql, "`symbol`=VALUES")
}

func TestSaveCandlesIgnoresEmptyInput(t *testing.T) {
	dbs, recorder := dryRunService(t)
	require.NoError(t, dbs.SaveCandles("BTCUSDT", "1h", nil))
	assert.Empty(t, recorder.statements)
}

func TestGetCandlesQuery(t *testing.T) {
	dbs, recorder := dryRunService(t)

	_, err := dbs.GetCandles(context.Background(), "BTCUSDT", "1h",
		time.UnixMilli(mocks.Origin), time.UnixMilli(mocks.Origin+mocks.Day))
	require.NoError(t, err)
	require.Len(t, recorder.statements, 1)
	sql := recorder.statements[0]
	assert.Contains(t, sql, "close_time >= 1672531200000")
	assert.Contains(t, sql, "close_time < 1672617600000")
	assert.Contains(t, sql, "ORDER BY open_time")
}

func TestCandleRowsRoundTrip(t *testing.T) {
	candles := mocks.TrendCandles(4, 100, 2)
	rows := candleRows("ETHUSDT", "4h", candles)

	require.Len(t, rows, 4)
	for i, row := range rows {
		assert.Equal(t, "ETHUSDT", row.Symbol)
		assert.Equal(t, "4h", row.Timeframe)
		assert.Equal(t, candles[i], candleFromRow(row))
	}
}

func TestBacktestRunRow(t *testing.T) {
	cfg := models.DefaultStrategyConfig().With(models.WithSignalVariant(models.VariantPullback))
	trades := []models.Trade{
		{EntryTime: 10, ExitTime: 20, EntryPrice: 100, ExitPrice: 104, GrossPct: 4, PnlPct: 3.8,
			ExitReason: models.ExitTriggerTakeProfit, BarsHeld: 3},
		{EntryTime: 30, ExitTime: 40, EntryPrice: 100, ExitPrice: 98, GrossPct: -2, PnlPct: -2.2,
			ExitReason: models.ExitTriggerStopLoss, BarsHeld: 1},
	}
	result := models.NewBacktestResult(trades, 0, 100)

	row, err := backtestRunRow("BTCUSDT", "1h", cfg, result)
	require.NoError(t, err)
	assert.Equal(t, "pullback", row.Variant)
	assert.Equal(t, 2, row.TotalTrades)
	assert.Equal(t, result.FinalEquity, row.FinalEquity)
	require.Len(t, row.Trades, 2)
	assert.Equal(t, "TP", row.Trades[0].ExitReason)
	assert.Equal(t, "SL", row.Trades[1].ExitReason)

	var decoded models.StrategyConfig
	require.NoError(t, json.Unmarshal([]byte(row.Config), &decoded))
	assert.Equal(t, cfg.SignalVariant, decoded.SignalVariant)
	assert.Equal(t, cfg.TrendEmaPeriods, decoded.TrendEmaPeriods)
}

func TestOptimizationRunRow(t *testing.T) {
	empty := models.NewBacktestResult(nil, 0, 100)
	report := &analytics.OptimizationReport{
		Combinations:        6,
		InvalidCombinations: 2,
		Discarded:           2,
		Results: []analytics.OptimizationResult{
			{Rank: 1, Config: models.DefaultStrategyConfig(), Train: empty, Test: empty, JointScore: 3,
				WalkForward: &analytics.WalkForwardResult{MeanTestReturnPct: 1.5, WorstTestReturnPct: -0.5}},
			{Rank: 2, Config: models.DefaultStrategyConfig(), Train: empty, Test: empty, JointScore: 1},
		},
	}

	row, err := optimizationRunRow("BTCUSDT", "1h", report)
	require.NoError(t, err)
	assert.Equal(t, 6, row.Combinations)
	require.Len(t, row.Entries, 2)
	assert.Equal(t, 1.5, row.Entries[0].WalkForwardMeanTestReturnPct)
	assert.Equal(t, -0.5, row.Entries[0].WalkForwardWorstTestReturnPct)
	assert.Zero(t, row.Entries[1].WalkForwardMeanTestReturnPct)
	assert.Equal(t, 2, row.Entries[1].Rank)
}

func TestWalkForwardRunRow(t *testing.T) {
	train := models.NewBacktestResult(nil, 0, 10)
	test := models.NewBacktestResult([]models.Trade{
		{EntryTime: 12, ExitTime: 14, EntryPrice: 100, ExitPrice: 101, GrossPct: 1, PnlPct: 0.8,
			ExitReason: models.ExitTriggerSignal, BarsHeld: 2},
	}, 10, 20)
	windows := []analytics.WindowResult{{Index: 0, TrainStart: 0, TrainEnd: 10, TestStart: 10, TestEnd: 20, Train: train, Test: test}}
	result := analytics.NewWalkForwardResult(windows, 1)

	row, err := walkForwardRunRow("BTCUSDT", "1h", models.DefaultStrategyConfig(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, row.CompletedWindows)
	assert.Equal(t, 1, row.SkippedWindows)
	require.Len(t, row.Windows, 1)
	assert.Equal(t, 1, row.Windows[0].TestTrades)
	assert.InDelta(t, 0.8, row.Windows[0].TestReturnPct, 1e-9)
}
