package ui

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	Debug bool
	s     *zap.SugaredLogger
}

type LoggerOptions struct {
	Debug bool
	// File enables a rotated JSON log next to the console output.
	File string
	// Console defaults to stderr.
	Console io.Writer
}

func NewLogger(debug bool) *Logger {
	return NewLoggerWith(LoggerOptions{Debug: debug})
}

func NewLoggerWith(opts LoggerOptions) *Logger {
	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(console), level),
	}

	if strings.TrimSpace(opts.File) != "" {
		w := &lumberjack.Logger{Filename: opts.File, MaxSize: 5, MaxBackups: 3, MaxAge: 28}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(w),
			level,
		))
	}

	return &Logger{
		Debug: opts.Debug,
		s:     zap.New(zapcore.NewTee(cores...)).Sugar(),
	}
}

// NopLogger discards everything.
func NopLogger() *Logger {
	return &Logger{s: zap.NewNop().Sugar()}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.s.Debugf(trimNewline(format), args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.s.Infof(trimNewline(format), args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.s.Warnf(trimNewline(format), args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.s.Errorf(trimNewline(format), args...)
}

func (l *Logger) Sync() {
	_ = l.s.Sync()
}

// zap terminates every entry itself.
func trimNewline(format string) string {
	return strings.TrimSuffix(format, "\n")
}
