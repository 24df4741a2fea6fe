package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var decoderLog = zap.NewNop()
var summaryLog = zap.NewNop()

func enableDebugLogging(l *zap.Logger) {
	decoderLog = l
	summaryLog = l
}

func newDebugLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
