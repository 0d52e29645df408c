package compat

import (
	"github.com/lixenwraith/rotlog"
	"github.com/panjf2000/gnet/v2/pkg/logging"
)

// GnetAdapter wraps a rotlog.Manager to implement the gnet logging.Logger interface
type GnetAdapter struct {
	m *rotlog.Manager
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(m *rotlog.Manager) *GnetAdapter {
	return &GnetAdapter{m: m}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.m.LogfDepth(1, rotlog.SeverityDebug, format, args...)
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.m.LogfDepth(1, rotlog.SeverityInfo, format, args...)
}

// Warnf logs at warning level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.m.LogfDepth(1, rotlog.SeverityWarning, format, args...)
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.m.LogfDepth(1, rotlog.SeverityError, format, args...)
}

// Fatalf logs at fatal level; the manager's fatal handler decides whether the process exits
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	a.m.LogfDepth(1, rotlog.SeverityFatal, format, args...)
}

var _ logging.Logger = (*GnetAdapter)(nil)
