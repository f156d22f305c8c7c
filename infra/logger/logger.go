// Package logger provides the zerolog-backed implementation of the
// core logging interface used throughout the scheduling pipeline.
package logger

import corelogger "github.com/kilianp07/pumpflow/core/logger"

// Logger is the core logging interface, re-exported so infra packages
// need a single import.
type Logger = corelogger.Logger

// New returns the default Logger for a pipeline component. Output
// format follows the APP_ENV variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}

// NopLogger discards everything. Useful as a test collaborator.
type NopLogger struct{}

var _ Logger = NopLogger{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}
