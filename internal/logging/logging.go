// Package logging provides the structured logger used across the storefront
// layer and its zap-backed implementation.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the structured logging contract. Args are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Nop returns a logger that discards everything.
func Nop() Logger { return noopLogger{} }

// Options configures New.
type Options struct {
	Mode     string // production|development
	Level    string // debug|info|warn|error
	Filename string // optional rotating log file
}

// ZapLogger adapts a zap.SugaredLogger to Logger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZap wraps an existing zap logger.
func NewZap(l *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: l.Sugar()}
}

// New builds a zap logger. With a filename, a JSON core writing to a
// lumberjack rotated file is teed with the console core.
func New(opts Options) (*ZapLogger, error) {
	var zapConfig zap.Config
	if opts.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	if opts.Level != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", opts.Level, err)
		}
		zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	}
	zapConfig.OutputPaths = []string{"stderr"}

	if opts.Filename == "" {
		l, err := zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		return NewZap(l), nil
	}

	rotated := &lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    64,
		MaxBackups: 7,
		MaxAge:     7,
	}
	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotated),
			zapConfig.Level,
		),
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(os.Stderr),
			zapConfig.Level,
		),
	)
	return NewZap(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))), nil
}

// Debug logs msg with key/value args at debug level.
func (z *ZapLogger) Debug(msg string, args ...any) { z.sugar.Debugw(msg, args...) }

// Info logs msg with key/value args at info level.
func (z *ZapLogger) Info(msg string, args ...any) { z.sugar.Infow(msg, args...) }

// Warn logs msg with key/value args at warn level.
func (z *ZapLogger) Warn(msg string, args ...any) { z.sugar.Warnw(msg, args...) }

// Error logs msg with key/value args at error level.
func (z *ZapLogger) Error(msg string, args ...any) { z.sugar.Errorw(msg, args...) }

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error { return z.sugar.Sync() }
