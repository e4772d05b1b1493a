// Package logx provides the logging interface used across restmcp and a
// standard-library-backed default implementation.
package logx

import (
	"log"
	"os"
	"sync"
)

// Level controls which messages a logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger is the logging interface consumed by the server packages.
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	SetLevel(level Level)
}

// DefaultLogger writes level-prefixed lines to stderr via the standard log
// package.
type DefaultLogger struct {
	logger *log.Logger
	level  Level
	mu     sync.Mutex
}

// NewDefaultLogger creates a logger writing to stderr at Info level.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(os.Stderr, "[restmcp] ", log.LstdFlags|log.Lmsgprefix),
		level:  LevelInfo,
	}
}

func (l *DefaultLogger) logf(level Level, prefix, format string, v ...interface{}) {
	l.mu.Lock()
	min := l.level
	l.mu.Unlock()
	if level < min {
		return
	}
	l.logger.Printf(prefix+format, v...)
}

func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	l.logf(LevelDebug, "DEBUG: ", format, v...)
}

func (l *DefaultLogger) Info(format string, v ...interface{}) {
	l.logf(LevelInfo, "INFO: ", format, v...)
}

func (l *DefaultLogger) Warn(format string, v ...interface{}) {
	l.logf(LevelWarn, "WARN: ", format, v...)
}

func (l *DefaultLogger) Error(format string, v ...interface{}) {
	l.logf(LevelError, "ERROR: ", format, v...)
}

// SetLevel updates the minimum emitted level.
func (l *DefaultLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

var _ Logger = (*DefaultLogger)(nil)

// Discard is a Logger that drops everything; handy in tests.
type Discard struct{}

func (Discard) Debug(string, ...interface{}) {}
func (Discard) Info(string, ...interface{})  {}
func (Discard) Warn(string, ...interface{})  {}
func (Discard) Error(string, ...interface{}) {}
func (Discard) SetLevel(Level)               {}

var _ Logger = Discard{}
