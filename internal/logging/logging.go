// Package logging builds the zap loggers used by the CLI.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to w. Debug selects a human-readable
// console encoder at debug level; otherwise JSON at warn level, so that
// only persistence and restore problems are reported.
func New(w io.Writer, debug bool) *zap.Logger {
	var (
		encCfg zapcore.EncoderConfig
		enc    zapcore.Encoder
		level  zapcore.Level
	)
	if debug {
		encCfg = zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(encCfg)
		level = zapcore.DebugLevel
	} else {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
		level = zapcore.WarnLevel
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core)
}
