package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger      *zap.SugaredLogger
	AtomicLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
)

func init() {
	SetLogLevel(StringEnv("LOG_LEVEL", "INFO"))
	logger, err := NewLogger(StringEnv("LOG_FORMAT", "console"))
	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}
	Logger = logger
}

// NewLogger builds a stderr logger bound to AtomicLevel; format is "console" or "json".
func NewLogger(format string) (*zap.SugaredLogger, error) {
	if format != "console" && format != "json" {
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	encoder := zapcore.EncoderConfig{
		MessageKey:     "M",
		LevelKey:       "L",
		TimeKey:        "T",
		NameKey:        "N",
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if format == "json" {
		encoder.MessageKey, encoder.LevelKey, encoder.TimeKey, encoder.NameKey = "msg", "level", "ts", "logger"
		encoder.EncodeLevel = zapcore.LowercaseLevelEncoder
	}
	config := zap.Config{
		Level:            AtomicLevel,
		Encoding:         format,
		EncoderConfig:    encoder,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named("compression-bench").Sugar(), nil
}

// SetLogLevel switches the global level; unparsable values keep the current one.
func SetLogLevel(logLevel string) {
	atomicLevel, err := zap.ParseAtomicLevel(logLevel)
	if err != nil {
		log.Printf("failed to parse log level %q, keep %v: %v", logLevel, AtomicLevel.Level(), err)
		return
	}
	AtomicLevel.SetLevel(atomicLevel.Level())
}

