package logging

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogger is a zap-backed logger.
// Debug/Info -> stdout
// Warn/Error/Fatal -> stderr
// Loggers derived through WithFields share one level, so SetLevel on any
// of them applies to all.
type DefaultLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

// NewDefaultLogger creates a console logger, colored when stdout is a terminal
func NewDefaultLogger() *DefaultLogger {
	return newDefaultLogger(os.Stdout, os.Stderr, isTerminal())
}

// NewDefaultLoggerNoColor creates a console logger without colored output
func NewDefaultLoggerNoColor() *DefaultLogger {
	return newDefaultLogger(os.Stdout, os.Stderr, false)
}

// NewStderrLogger sends every level to stderr, keeping stdout free for
// command output
func NewStderrLogger() *DefaultLogger {
	return newDefaultLogger(os.Stderr, os.Stderr, false)
}

// NewLoggerWithCore wraps an arbitrary zap core, e.g. an observer in tests
func NewLoggerWithCore(core zapcore.Core, level Level) *DefaultLogger {
	atomic := zap.NewAtomicLevelAt(toZapLevel(level))
	filtered := &levelFilterCore{Core: core, level: atomic}
	return &DefaultLogger{
		logger: zap.New(filtered),
		level:  atomic,
	}
}

func newDefaultLogger(stdout, stderr zapcore.WriteSyncer, useColors bool) *DefaultLogger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if useColors {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	atomic := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l < zapcore.WarnLevel && atomic.Enabled(l)
	})
	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel && atomic.Enabled(l)
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(stdout), low),
		zapcore.NewCore(encoder.Clone(), zapcore.Lock(stderr), high),
	)

	return &DefaultLogger{
		logger: zap.New(core),
		level:  atomic,
	}
}

// isTerminal checks if stdout is a character device
func isTerminal() bool {
	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil {
		return (fileInfo.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapFields(fields []Fields) []zap.Field {
	var out []zap.Field
	for _, f := range fields {
		for k, v := range f {
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	d.logger.Debug(msg, toZapFields(fields)...)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	d.logger.Info(msg, toZapFields(fields)...)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	d.logger.Warn(msg, toZapFields(fields)...)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.logger.Error(msg, append(toZapFields(fields), zap.Error(err))...)
}

func (d *DefaultLogger) Fatal(err error, msg string, fields ...Fields) {
	d.logger.Fatal(msg, append(toZapFields(fields), zap.Error(err))...)
}

func (d *DefaultLogger) WithFields(fields Fields) Logger {
	return &DefaultLogger{
		logger: d.logger.With(toZapFields([]Fields{fields})...),
		level:  d.level,
	}
}

func (d *DefaultLogger) WithContext(ctx context.Context) Logger {
	if fields, ok := FieldsFromContext(ctx); ok {
		return d.WithFields(fields)
	}
	return d
}

func (d *DefaultLogger) SetLevel(level Level) {
	d.level.SetLevel(toZapLevel(level))
}

// Sync flushes buffered log entries
func (d *DefaultLogger) Sync() error {
	return d.logger.Sync()
}

// levelFilterCore gates an arbitrary core behind an atomic level
type levelFilterCore struct {
	zapcore.Core
	level zap.AtomicLevel
}

func (c *levelFilterCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l) && c.Core.Enabled(l)
}

func (c *levelFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelFilterCore{Core: c.Core.With(fields), level: c.level}
}

func (c *levelFilterCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.level.Enabled(entry.Level) {
		return checked
	}
	return c.Core.Check(entry, checked)
}
