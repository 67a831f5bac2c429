package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"io/fs"
	"os"
	"strconv"
)

// Env is a set of key/value settings read from an env file. Keys missing
// from the file fall back to the process environment.
type Env map[string]string

// LoadEnv reads envFile with godotenv. A missing file yields an empty Env.
func LoadEnv(envFile string) (Env, error) {
	if envFile == "" {
		return Env{}, nil
	}
	values, err := godotenv.Read(envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return Env{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", envFile, err)
	}
	return values, nil
}

func (e Env) Get(key string) string {
	if value, ok := e[key]; ok {
		return value
	}
	return os.Getenv(key)
}

func (e Env) Lookup(key string) (string, bool) {
	if value, ok := e[key]; ok {
		return value, true
	}
	return os.LookupEnv(key)
}

func (e Env) Bool(key string) (bool, error) {
	value := e.Get(key)
	if value == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func (e Env) Int(key string, fallback int) (int, error) {
	value := e.Get(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// DSN is the go-sql-driver/mysql data source name.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type AppConfig struct {
	LogFile                 string
	LogLevel                string
	LogMaxSizeMB            int
	LogMaxBackups           int
	LogMaxAgeDays           int
	TelegramOutput          bool
	TelegramToken           string
	TelegramChatId          string
	EnableDatabaseRecording bool
	Database                DatabaseConfig
	BinanceAPIKey           string
	BinanceAPISecret        string
	Workers                 int
}

func LoadAppConfig(envFile string) (AppConfig, Env, error) {
	env, err := LoadEnv(envFile)
	if err != nil {
		return AppConfig{}, nil, err
	}
	cfg, err := AppConfigFromEnv(env)
	return cfg, env, err
}

func AppConfigFromEnv(env Env) (AppConfig, error) {
	cfg := AppConfig{
		LogFile:          env.Get("logFile"),
		LogLevel:         env.Get("logLevel"),
		TelegramToken:    env.Get("telegramToken"),
		TelegramChatId:   env.Get("telegramChatId"),
		BinanceAPIKey:    env.Get("apiKey"),
		BinanceAPISecret: env.Get("secretKey"),
		Database: DatabaseConfig{
			Host:     env.Get("databaseHost"),
			Port:     env.Get("databasePort"),
			Name:     env.Get("databaseName"),
			User:     env.Get("databaseUser"),
			Password: env.Get("databasePassword"),
		},
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	var err error
	var errs []error
	if cfg.TelegramOutput, err = env.Bool("telegramOutput"); err != nil {
		errs = append(errs, err)
	}
	if cfg.EnableDatabaseRecording, err = env.Bool("enableDatabaseRecording"); err != nil {
		errs = append(errs, err)
	}
	if cfg.LogMaxSizeMB, err = env.Int("logMaxSizeMB", 100); err != nil {
		errs = append(errs, err)
	}
	if cfg.LogMaxBackups, err = env.Int("logMaxBackups", 5); err != nil {
		errs = append(errs, err)
	}
	if cfg.LogMaxAgeDays, err = env.Int("logMaxAgeDays", 30); err != nil {
		errs = append(errs, err)
	}
	if cfg.Workers, err = env.Int("workers", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.EnableDatabaseRecording && (cfg.Database.Host == "" || cfg.Database.Name == "") {
		errs = append(errs, fmt.Errorf("enableDatabaseRecording set to true but databaseHost or databaseName not found"))
	}
	if err := errors.Join(errs...); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}
