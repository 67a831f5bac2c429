package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/urfave/cli/v2"
	"gitlab.com/aoterocom/AOBacktester/config"
	"gitlab.com/aoterocom/AOBacktester/database"
	"gitlab.com/aoterocom/AOBacktester/helpers"
	"gitlab.com/aoterocom/AOBacktester/interfaces"
	"gitlab.com/aoterocom/AOBacktester/models"
	"gitlab.com/aoterocom/AOBacktester/providers/file"
	"gitlab.com/aoterocom/AOBacktester/regime"
	"io"
	"os"
	"time"
)

const dateLayout = "2006-01-02"

// Backtester holds what every command needs once global flags are parsed.
type Backtester struct {
	AppConfig config.AppConfig
	Env       config.Env
	Out       io.Writer

	dbService *database.DBService
}

// Before loads the env file and configures logging. It is installed as the
// cli.App Before hook.
func (bt *Backtester) Before(c *cli.Context) error {
	appConfig, env, err := config.LoadAppConfig(c.String("env"))
	if err != nil {
		return err
	}
	if level := c.String("log-level"); level != "" {
		appConfig.LogLevel = level
	}
	err = helpers.ConfigureLogger(helpers.LoggerConfig{
		LogFile:        appConfig.LogFile,
		LogLevel:       appConfig.LogLevel,
		MaxSizeMB:      appConfig.LogMaxSizeMB,
		MaxBackups:     appConfig.LogMaxBackups,
		MaxAgeDays:     appConfig.LogMaxAgeDays,
		TelegramOutput: appConfig.TelegramOutput,
		TelegramToken:  appConfig.TelegramToken,
		TelegramChatId: appConfig.TelegramChatId,
	})
	if err != nil {
		return err
	}

	bt.AppConfig = appConfig
	bt.Env = env
	if bt.Out == nil {
		bt.Out = os.Stdout
	}
	return nil
}

func (bt *Backtester) database() (*database.DBService, error) {
	if bt.dbService != nil {
		return bt.dbService, nil
	}
	if !bt.AppConfig.EnableDatabaseRecording {
		return nil, fmt.Errorf("database access requires enableDatabaseRecording=true")
	}
	dbService, err := database.NewDBService(bt.AppConfig.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	bt.dbService = dbService
	return dbService, nil
}

// candleProvider picks the file given by flag, or the database cache.
func (bt *Backtester) candleProvider(path string) (interfaces.CandleProvider, error) {
	if path != "" {
		return file.NewFileService(path), nil
	}
	dbService, err := bt.database()
	if err != nil {
		return nil, err
	}
	return dbService, nil
}

func (bt *Backtester) loadCandles(c *cli.Context, pathFlag string) ([]models.Candle, error) {
	provider, err := bt.candleProvider(c.String(pathFlag))
	if err != nil {
		return nil, err
	}
	from, to, err := parseRange(c.String("from"), c.String("to"))
	if err != nil {
		return nil, err
	}
	candles, err := provider.GetCandles(c.Context, c.String("symbol"), c.String("interval"), from, to)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: no candles loaded", models.ErrInsufficientData)
	}
	return candles, nil
}

// strategyConfig reads the strategy from the env file and attaches the
// higher-timeframe regime series when --htf-candles is given.
func (bt *Backtester) strategyConfig(c *cli.Context) (models.StrategyConfig, error) {
	cfg, err := config.StrategyConfigFromEnv(bt.Env)
	if err != nil {
		return models.StrategyConfig{}, err
	}
	if c.String("htf-candles") == "" {
		return cfg, nil
	}

	provider := file.NewFileService(c.String("htf-candles"))
	htfCandles, err := provider.GetCandles(c.Context, c.String("symbol"), "", time.Time{}, time.Time{})
	if err != nil {
		return models.StrategyConfig{}, fmt.Errorf("higher timeframe candles: %w", err)
	}
	points := regime.Series(htfCandles, c.Int("htf-fast"), c.Int("htf-slow"))
	helpers.Logger.Debugln(fmt.Sprintf("higher timeframe regime series has %d points", len(points)))
	return cfg.With(models.WithHigherTFRegime(points)), nil
}

func (bt *Backtester) printJSON(v interface{}) error {
	encoder := json.NewEncoder(bt.Out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func parseRange(from string, to string) (time.Time, time.Time, error) {
	var fromTime, toTime time.Time
	var err error
	if from != "" {
		if fromTime, err = time.ParseInLocation(dateLayout, from, time.UTC); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("from: %w", err)
		}
	}
	if to != "" {
		if toTime, err = time.ParseInLocation(dateLayout, to, time.UTC); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("to: %w", err)
		}
	}
	if !fromTime.IsZero() && !toTime.IsZero() && !fromTime.Before(toTime) {
		return time.Time{}, time.Time{}, fmt.Errorf("from %s must precede to %s", from, to)
	}
	return fromTime, toTime, nil
}

// HandleError maps a command error to the process exit code.
// ErrInsufficientData is an expected outcome and exits cleanly.
func HandleError(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, models.ErrInsufficientData) {
		helpers.Logger.Warnln(err.Error())
		return 0
	}
	helpers.Logger.Errorln(err.Error())
	return 1
}
