package obs

import (
	"go.uber.org/zap"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is a minimal logging interface for observability.
type Logger interface {
	Logf(level Level, format string, args ...interface{})
}

// NopLogger discards all logs.
type NopLogger struct{}

func (NopLogger) Logf(level Level, format string, args ...interface{}) {}

// ZapLogger bridges Logger onto a zap sugared logger.
type ZapLogger struct {
	L   *zap.SugaredLogger
	Min Level
}

// NewZapLogger wraps l, dropping entries below min.
func NewZapLogger(l *zap.Logger, min Level) ZapLogger {
	return ZapLogger{L: l.Sugar(), Min: min}
}

func (z ZapLogger) Logf(level Level, format string, args ...interface{}) {
	if z.L == nil || level < z.Min {
		return
	}
	switch level {
	case Debug:
		z.L.Debugf(format, args...)
	case Info:
		z.L.Infof(format, args...)
	case Warn:
		z.L.Warnf(format, args...)
	default:
		z.L.Errorf(format, args...)
	}
}
