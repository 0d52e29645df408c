package compat

import (
	"fmt"

	"github.com/lixenwraith/rotlog"
	"github.com/valyala/fasthttp"
)

// FastHTTPAdapter wraps a rotlog.Manager to implement the fasthttp Logger interface
type FastHTTPAdapter struct {
	m             *rotlog.Manager
	defaultLevel  rotlog.Severity
	levelDetector func(string) rotlog.Severity // Function to detect log level from message
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(m *rotlog.Manager, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		m:             m,
		defaultLevel:  rotlog.SeverityInfo,
		levelDetector: rotlog.DetectSeverity,
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the level used when no detector is configured
func WithDefaultLevel(sev rotlog.Severity) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = sev
	}
}

// WithLevelDetector sets a custom function to detect log level from message content.
// A nil detector logs everything at the default level.
func WithLevelDetector(detector func(string) rotlog.Severity) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		level = a.levelDetector(msg)
	}

	a.m.LogDepth(1, level, msg)
}

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)
