// Package observability provides the shared structured logger.
package observability

import (
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// globalLogger stores the global logger instance safely across goroutines.
	globalLogger atomic.Pointer[zap.Logger]
	once         sync.Once
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level to emit ("debug", "info", "warn", "error").
	Level string
	// Format selects the console encoder: "console" or "json".
	Format string
	// LogFile, when set, adds a JSON file sink with rotation.
	LogFile string
	// MaxSizeMB is the rotation threshold for the file sink.
	MaxSizeMB  int
	MaxBackups int
}

// Init sets up the global logger. Safe to call more than once; only the
// first call takes effect.
func Init(cfg Config) {
	once.Do(func() {
		level := zap.NewAtomicLevel()
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level.SetLevel(zap.InfoLevel)
		}

		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		var consoleEncoder zapcore.Encoder
		if cfg.Format == "json" {
			consoleEncoder = zapcore.NewJSONEncoder(encCfg)
		} else {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
			consoleEncoder = zapcore.NewConsoleEncoder(encCfg)
		}

		cores := []zapcore.Core{
			zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level),
		}

		if cfg.LogFile != "" {
			fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
			fileWriter := zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.LogFile,
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
			})
			cores = append(cores, zapcore.NewCore(fileEncoder, fileWriter, level))
		}

		logger := zap.New(zapcore.NewTee(cores...))
		globalLogger.Store(logger)
		zap.ReplaceGlobals(logger)
	})
}

// Logger returns the global logger, initializing a default one if Init has
// not been called. Never returns nil.
func Logger() *zap.Logger {
	if l := globalLogger.Load(); l != nil {
		return l
	}
	Init(Config{Level: "info", Format: "console"})
	return globalLogger.Load()
}
