package rotlog

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// callerInfo resolves the source location skip frames above its caller.
func callerInfo(skip int) (file string, line int, function string) {
	pc, path, line, ok := runtime.Caller(skip + 1) // +1 for callerInfo itself
	if !ok {
		return "unknown", 0, "unknown"
	}
	function = "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
	}
	return filepath.Base(path), line, function
}

// goroutinePrefix is the header of every runtime.Stack dump
var goroutinePrefix = []byte("goroutine ")

// goroutineID returns the id of the calling goroutine, parsed from the stack header.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "rotlog: ") {
		format = "rotlog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return errors.Join(err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// ParseSeverity converts a level name or digit to a Severity.
func ParseSeverity(levelStr string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug", "0":
		return SeverityDebug, nil
	case "info", "1":
		return SeverityInfo, nil
	case "warning", "warn", "2":
		return SeverityWarning, nil
	case "error", "critical", "3":
		return SeverityError, nil
	case "fatal", "4":
		return SeverityFatal, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use debug, info, warning, error, fatal)", levelStr)
	}
}

// DetectSeverity guesses a level from free-form message text.
// Used for output of libraries that log without levels. Never returns
// SeverityFatal so captured text cannot trigger the fatal handler.
func DetectSeverity(msg string) Severity {
	msgLower := strings.ToLower(msg)

	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return SeverityError
	}

	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "deprecated") {
		return SeverityWarning
	}

	if strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace") {
		return SeverityDebug
	}

	return SeverityInfo
}
