// Package logging is a small level-gated shim over the standard log
// package. It gives the driver loop the same progress-reporting texture
// as the reference stack's PrintInitialization/PrintUpdate/PrintFinal
// methods — prefixed, formatted lines to stderr — without pulling in a
// structured logging dependency the reference stack itself never adopted.
package logging

import (
	"io"
	"log"
	"os"
)

// Level gates which messages a Logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelSilent
)

// Logger writes level-gated, prefixed lines through a *log.Logger.
type Logger struct {
	level Level
	std   *log.Logger
}

// New returns a Logger writing to w at the given level with the given
// line prefix (e.g. "avaflow: ").
func New(w io.Writer, level Level, prefix string) *Logger {
	return &Logger{level: level, std: log.New(w, prefix, log.LstdFlags)}
}

// Default returns a Logger writing to os.Stderr at LevelInfo.
func Default() *Logger {
	return New(os.Stderr, LevelInfo, "avaflow: ")
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.level <= LevelDebug {
		l.std.Printf("DEBUG "+format, args...)
	}
}

func (l *Logger) Infof(format string, args ...interface{}) {
	if l.level <= LevelInfo {
		l.std.Printf("INFO "+format, args...)
	}
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	if l.level <= LevelWarn {
		l.std.Printf("WARN "+format, args...)
	}
}
