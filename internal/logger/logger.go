package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls how the process logger is built.
type Options struct {
	// Name is attached to every entry and used for the log file name.
	Name string
	// Production switches the console to JSON at info level.
	Production bool
	// Dir, when set, also writes JSON entries to <Dir>/<Name>_<yyyymmdd>.log.
	Dir string
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// New creates the structured logger shared by every component.
func New(opts Options) (*zap.Logger, error) {
	level := zap.DebugLevel
	if opts.Production {
		level = zap.InfoLevel
	}

	var consoleEncoder zapcore.Encoder
	if opts.Production {
		consoleEncoder = zapcore.NewJSONEncoder(encoderConfig())
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(encoderConfig())
	}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level),
	}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		logFile := filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.log", opts.Name, time.Now().Format("20060102")))
		fileWriter, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig()),
			zapcore.AddSync(fileWriter),
			level,
		))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	if opts.Name != "" {
		log = log.Named(opts.Name)
	}
	return log, nil
}

// Must is New for process start-up, falling back to a development logger.
func Must(opts Options) *zap.Logger {
	log, err := New(opts)
	if err != nil {
		fallback, _ := zap.NewDevelopment()
		fallback.Warn("falling back to development logger", zap.Error(err))
		return fallback
	}
	return log
}
