package rotlog

import (
	"sync"
	"time"
)

// Package-level manager for call sites that want a global. It is created on
// first use and configured by Init.
var (
	defaultMu      sync.Mutex
	defaultManager *Manager
)

// Default returns the package-level manager, creating it with DefaultConfig on first use
func Default() *Manager {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultManager == nil {
		// DefaultConfig always validates
		defaultManager, _ = NewManager(DefaultConfig())
	}
	return defaultManager
}

// Init replaces the package-level manager with one built from cfg and initializes it.
// A previously running package-level manager is shut down first.
func Init(cfg *Config, opts ...Option) error {
	m, err := NewManager(cfg, opts...)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	var shutdownErr error
	if defaultManager != nil {
		shutdownErr = defaultManager.Shutdown()
	}
	defaultManager = m

	return combineErrors(shutdownErr, m.Initialize())
}

// Shutdown stops the package-level manager
func Shutdown(timeout ...time.Duration) error {
	return Default().Shutdown(timeout...)
}

// Flush waits for the package-level manager to write pending events
func Flush(timeout time.Duration) error {
	return Default().Flush(timeout)
}

// Debug logs a message at debug level
func Debug(args ...any) {
	Default().logDepth(0, SeverityDebug, args...)
}

// Info logs a message at info level
func Info(args ...any) {
	Default().logDepth(0, SeverityInfo, args...)
}

// Warn logs a message at warning level
func Warn(args ...any) {
	Default().logDepth(0, SeverityWarning, args...)
}

// Error logs a message at error level
func Error(args ...any) {
	Default().logDepth(0, SeverityError, args...)
}

// Fatal logs a message at fatal level and hands it to the fatal handler
func Fatal(args ...any) {
	Default().logDepth(0, SeverityFatal, args...)
}

// Debugf logs a formatted message at debug level
func Debugf(format string, args ...any) {
	Default().logfDepth(0, SeverityDebug, format, args...)
}

// Infof logs a formatted message at info level
func Infof(format string, args ...any) {
	Default().logfDepth(0, SeverityInfo, format, args...)
}

// Warnf logs a formatted message at warning level
func Warnf(format string, args ...any) {
	Default().logfDepth(0, SeverityWarning, format, args...)
}

// Errorf logs a formatted message at error level
func Errorf(format string, args ...any) {
	Default().logfDepth(0, SeverityError, format, args...)
}

// Fatalf logs a formatted message at fatal level and hands it to the fatal handler
func Fatalf(format string, args ...any) {
	Default().logfDepth(0, SeverityFatal, format, args...)
}
