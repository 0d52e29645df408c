package rotlog

import (
	"fmt"
	"path/filepath"
	"time"
)

// Record captures one event. It never blocks on I/O and never returns an error.
// Only the base name of file is kept; an empty file is recorded as "unknown".
// Events below the minimum level are dropped with no side effect other than
// the filtered counter. Synchronous sinks (the fatal handler among them) run
// on the calling goroutine after the event is queued, even when the manager
// is not running and the event itself is discarded.
func (m *Manager) Record(sev Severity, file string, line int, function, message string) {
	if sev < m.MinLevel() {
		m.state.filtered.Add(1)
		return
	}

	if san := m.sanitizer.Load(); san != nil {
		message = san.Sanitize(message)
	}

	if file == "" {
		file = "unknown"
	} else {
		file = filepath.Base(file)
	}

	ev := Event{
		Time:        time.Now(),
		Severity:    sev,
		File:        file,
		Line:        line,
		Function:    function,
		Message:     message,
		GoroutineID: goroutineID(),
	}

	if q := m.queue.Load(); q != nil && q.Push(ev) {
		m.state.enqueued.Add(1)
	} else {
		m.state.rejected.Add(1)
	}

	m.dispatchSync(&ev)
}

// dispatchSync runs the synchronous sinks accepting ev
func (m *Manager) dispatchSync(ev *Event) {
	var line []byte
	for _, e := range m.sinks.load() {
		if !e.sync || !e.accepts(ev.Severity) {
			continue
		}
		if line == nil {
			line = append(AppendEvent(nil, ev), '\n')
		}
		if err := e.sink.Emit(ev, line); err != nil {
			e.failed.Add(1)
			m.internalLog("sink '%s' failed: %v\n", e.name, err)
			continue
		}
		e.written.Add(1)
	}
}

// logDepth records args at sev, attributing the event to the caller depth
// frames above the public helper.
func (m *Manager) logDepth(depth int, sev Severity, args ...any) {
	if sev < m.MinLevel() {
		m.state.filtered.Add(1)
		return
	}
	file, line, function := callerInfo(2 + depth)
	m.Record(sev, file, line, function, formatArgs(args))
}

// logfDepth is the printf form of logDepth
func (m *Manager) logfDepth(depth int, sev Severity, format string, args ...any) {
	if sev < m.MinLevel() {
		m.state.filtered.Add(1)
		return
	}
	file, line, function := callerInfo(2 + depth)
	m.Record(sev, file, line, function, fmt.Sprintf(format, args...))
}

// Debug logs a message at debug level
func (m *Manager) Debug(args ...any) {
	m.logDepth(0, SeverityDebug, args...)
}

// Info logs a message at info level
func (m *Manager) Info(args ...any) {
	m.logDepth(0, SeverityInfo, args...)
}

// Warn logs a message at warning level
func (m *Manager) Warn(args ...any) {
	m.logDepth(0, SeverityWarning, args...)
}

// Error logs a message at error level
func (m *Manager) Error(args ...any) {
	m.logDepth(0, SeverityError, args...)
}

// Fatal logs a message at fatal level and hands it to the fatal handler
func (m *Manager) Fatal(args ...any) {
	m.logDepth(0, SeverityFatal, args...)
}

// Debugf logs a formatted message at debug level
func (m *Manager) Debugf(format string, args ...any) {
	m.logfDepth(0, SeverityDebug, format, args...)
}

// Infof logs a formatted message at info level
func (m *Manager) Infof(format string, args ...any) {
	m.logfDepth(0, SeverityInfo, format, args...)
}

// Warnf logs a formatted message at warning level
func (m *Manager) Warnf(format string, args ...any) {
	m.logfDepth(0, SeverityWarning, format, args...)
}

// Errorf logs a formatted message at error level
func (m *Manager) Errorf(format string, args ...any) {
	m.logfDepth(0, SeverityError, format, args...)
}

// Fatalf logs a formatted message at fatal level and hands it to the fatal handler
func (m *Manager) Fatalf(format string, args ...any) {
	m.logfDepth(0, SeverityFatal, format, args...)
}

// LogDepth records a message at sev for wrappers: depth 0 attributes the
// event to the caller of LogDepth, each extra level skips one more frame.
func (m *Manager) LogDepth(depth int, sev Severity, args ...any) {
	m.logDepth(depth, sev, args...)
}

// LogfDepth is the printf form of LogDepth
func (m *Manager) LogfDepth(depth int, sev Severity, format string, args ...any) {
	m.logfDepth(depth, sev, format, args...)
}
