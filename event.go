package rotlog

import (
	"time"
)

// Severity is the ordered importance of a log event
type Severity int

// severityNames holds the label printed in each log line
var severityNames = [...]string{"DEBUG", "INFO", "WARNING", "ERROR", "FATAL"}

// String returns the label used in formatted lines
func (s Severity) String() string {
	if s < SeverityDebug || s > SeverityFatal {
		return "UNKNOWN"
	}
	return severityNames[s]
}

// Valid reports whether s is one of the defined levels
func (s Severity) Valid() bool {
	return s >= SeverityDebug && s <= SeverityFatal
}

// Event is a single log entry. It is created by Record and never modified afterwards.
type Event struct {
	Time        time.Time
	Severity    Severity
	File        string // base name of the source file
	Line        int
	Function    string
	Message     string
	GoroutineID uint64

	// Set only on flush markers
	flushAck chan struct{}
}

// isMarker reports whether the event is an internal control entry
func (e *Event) isMarker() bool {
	return e.flushAck != nil
}
