package rotlog

import (
	"time"
)

// Severity levels, ordered from least to most important
const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityFatal
)

// File naming
const (
	// Extension of every file the logger creates or manages
	logExtension = ".log"
	// Timestamp embedded in active and rotated file names
	fileTimestampLayout = "20060102-150405"
	// Timestamp at the head of every log line
	lineTimestampLayout = "2006-01-02 15:04:05.000"
)

// Storage
const (
	// Size threshold for rotation
	defaultMaxFileSize int64 = 10 * 1024 * 1024
	// Number of *.log files kept in the directory
	defaultMaxFiles int64 = 100
	// Suffix of the directory created by the locator
	logDirSuffix = "-logs"
)

// Timers
const (
	// Bounded wait for the worker to drain on shutdown
	defaultShutdownTimeout = 3 * time.Second
	// Lower bound of a Flush wait
	minWaitTime = 10 * time.Millisecond
)

// Diagnostics
const (
	// Sustained rate of stderr diagnostics
	diagRatePerSecond = 10
	// Burst allowance of stderr diagnostics
	diagBurst = 20
)
