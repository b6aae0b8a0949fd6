package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iwvelando/debt-dashboard/internal/config"
	"github.com/iwvelando/debt-dashboard/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logLevels = map[string]zapcore.Level{
	"":        zapcore.InfoLevel,
	"debug":   zapcore.DebugLevel,
	"info":    zapcore.InfoLevel,
	"warn":    zapcore.WarnLevel,
	"warning": zapcore.WarnLevel,
	"error":   zapcore.ErrorLevel,
}

// initializeLogger builds the process logger. The --log-level flag wins over
// logging.level; JSON to stderr is the default.
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	name := loggingConfig.Level
	if logLevelOverride != "" {
		name = logLevelOverride
	}
	level, ok := logLevels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", validation.ErrInvalidLogLevel, name)
	}

	encoder, err := newEncoder(loggingConfig.Format)
	if err != nil {
		return nil, err
	}

	sink, err := openSink(loggingConfig.OutputFile)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.AddCaller(), zap.ErrorOutput(sink)), nil
}

func newEncoder(format string) (zapcore.Encoder, error) {
	switch format {
	case "", "json":
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	case "console":
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig), nil
	default:
		return nil, fmt.Errorf("%w: %s", validation.ErrInvalidLogFormat, format)
	}
}

// openSink returns stderr, or the append-mode log file creating its directory.
func openSink(path string) (zapcore.WriteSyncer, error) {
	if path == "" {
		return zapcore.Lock(os.Stderr), nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return zapcore.Lock(file), nil
}
