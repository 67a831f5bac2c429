package helpers

import (
	"fmt"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
	tb "gopkg.in/tucnak/telebot.v2"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

type LoggerConfig struct {
	LogFile        string
	LogLevel       string
	MaxSizeMB      int
	MaxBackups     int
	MaxAgeDays     int
	Compress       bool
	TelegramOutput bool
	TelegramToken  string
	TelegramChatId string
}

type FileLogger struct {
	logger         *log.Logger
	telegramOutput bool
	telegramToken  string
	telegramChatId string
	sender         func(message string) error
}

func NewFileLogger() *FileLogger {
	plainFormatter := new(PlainFormatter)
	plainFormatter.TimestampFormat = "2006-01-02 15:04:05"
	plainFormatter.LevelDesc = []string{"PANIC", "FATAL", "ERROR", "WARN", "INFO ", "DEBUG", "TRACE"}

	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(plainFormatter)
	logger.SetLevel(log.InfoLevel)

	return &FileLogger{logger: logger}
}

var Logger = NewFileLogger()

// ConfigureLogger applies cfg to the package logger. A log file is rotated by
// lumberjack and teed with stdout.
func ConfigureLogger(cfg LoggerConfig) error {
	return Logger.Configure(cfg)
}

func (l *FileLogger) Configure(cfg LoggerConfig) error {
	if cfg.LogLevel != "" {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		l.logger.SetLevel(level)
	}

	if cfg.LogFile != "" {
		l.logger.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}))
	}

	if cfg.TelegramOutput {
		if cfg.TelegramToken == "" {
			return fmt.Errorf("telegramOutput set to true but telegramToken parameter not found")
		}
		if cfg.TelegramChatId == "" {
			return fmt.Errorf("telegramOutput set to true but telegramChatId parameter not found")
		}
	}
	l.telegramOutput = cfg.TelegramOutput
	l.telegramToken = cfg.TelegramToken
	l.telegramChatId = cfg.TelegramChatId
	return nil
}

func (l *FileLogger) SetOutput(w io.Writer) {
	l.logger.SetOutput(w)
}

func (l *FileLogger) SetLevel(level log.Level) {
	l.logger.SetLevel(level)
}

func (l *FileLogger) WithFields(fields log.Fields) *log.Entry {
	return l.logger.WithFields(fields)
}

func (l *FileLogger) Errorln(args ...interface{}) {
	l.logger.Errorln(args...)
}

func (l *FileLogger) Fatalln(args ...interface{}) {
	l.logger.Fatalln(args...)
}

func (l *FileLogger) Warnln(args ...interface{}) {
	l.logger.Warnln(args...)
}

func (l *FileLogger) Infoln(args ...interface{}) {
	l.logger.Infoln(args...)
}

func (l *FileLogger) Traceln(args ...interface{}) {
	l.logger.Traceln(args...)
}

func (l *FileLogger) Debugln(args ...interface{}) {
	l.logger.Debugln(args...)
}

// Notify logs a summary line and forwards it to Telegram when enabled.
// Delivery failures are logged, never returned.
func (l *FileLogger) Notify(message string) {
	l.logger.Infoln(message)
	if !l.telegramOutput {
		return
	}
	send := l.sender
	if send == nil {
		send = func(message string) error {
			return sendOnTelegramChannel(message, l.telegramToken, l.telegramChatId)
		}
	}
	if err := send(message); err != nil {
		l.logger.Warnln("telegram notification failed:", err)
	}
}

type PlainFormatter struct {
	TimestampFormat string
	LevelDesc       []string
}

func (f PlainFormatter) Format(entry *log.Entry) ([]byte, error) {
	timestamp := entry.Time.Format(f.TimestampFormat)
	line := fmt.Sprintf("%s %s %s", f.LevelDesc[entry.Level], timestamp, entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for key := range entry.Data {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, key := range keys {
			pairs[i] = fmt.Sprintf("%s=%v", key, entry.Data[key])
		}
		line += " " + strings.Join(pairs, " ")
	}
	return []byte(line + "\n"), nil
}

func sendOnTelegramChannel(message string, token string, chatID string) error {

	b, err := tb.NewBot(tb.Settings{
		Token:  token,
		Poller: &tb.LongPoller{Timeout: 10 * time.Second},
	})

	if err != nil {
		return err
	}

	id, err := b.ChatByID(chatID)
	if err != nil {
		return err
	}
	_, err = b.Send(id, message)
	if err != nil {
		return err
	}

	return nil
}
