package viewer

import (
	"log"
	"strings"
)

// Logger is injected into the shell for lifecycle logging.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(format string, v ...any) {}
func (NopLogger) Infof(format string, v ...any)  {}
func (NopLogger) Warnf(format string, v ...any)  {}
func (NopLogger) Errorf(format string, v ...any) {}

// Level is a logging threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level. Unknown values mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// StdLogger writes through the standard log package, dropping messages
// below its level.
type StdLogger struct {
	Level Level
}

// NewStdLogger returns a StdLogger for the named level.
func NewStdLogger(level string) *StdLogger {
	return &StdLogger{Level: ParseLevel(level)}
}

func (l *StdLogger) logf(lvl Level, tag, format string, v ...any) {
	if lvl < l.Level {
		return
	}
	log.Printf("viewer: ["+tag+"] "+format, v...)
}

func (l *StdLogger) Debugf(format string, v ...any) { l.logf(LevelDebug, "DEBUG", format, v...) }
func (l *StdLogger) Infof(format string, v ...any)  { l.logf(LevelInfo, "INFO", format, v...) }
func (l *StdLogger) Warnf(format string, v ...any)  { l.logf(LevelWarn, "WARN", format, v...) }
func (l *StdLogger) Errorf(format string, v ...any) { l.logf(LevelError, "ERROR", format, v...) }
