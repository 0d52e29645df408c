package rotlog

import (
	"bytes"
	"io"
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// The log package has one output, so at most one manager intercepts it
var (
	stdlogMu    sync.Mutex
	stdlogOwner *stdlogHook
)

// stdlogHook redirects the standard library log package into a Manager and
// remembers the previous output settings.
type stdlogHook struct {
	m          *Manager
	prevWriter io.Writer
	prevFlags  int
	prevPrefix string
}

// installStdlogHook points the standard logger at m. It returns nil when
// another manager already holds the hook.
func installStdlogHook(m *Manager) *stdlogHook {
	stdlogMu.Lock()
	defer stdlogMu.Unlock()
	if stdlogOwner != nil {
		return nil
	}

	h := &stdlogHook{
		m:          m,
		prevWriter: log.Writer(),
		prevFlags:  log.Flags(),
		prevPrefix: log.Prefix(),
	}
	// Timestamp and location come from the event itself
	log.SetFlags(0)
	log.SetPrefix("")
	log.SetOutput(h)
	stdlogOwner = h
	return h
}

// restore puts back the previous writer, flags and prefix
func (h *stdlogHook) restore() {
	stdlogMu.Lock()
	defer stdlogMu.Unlock()
	if stdlogOwner != h {
		return
	}
	log.SetOutput(h.prevWriter)
	log.SetFlags(h.prevFlags)
	log.SetPrefix(h.prevPrefix)
	stdlogOwner = nil
}

// Write receives one formatted message from the log package.
// The severity is guessed from the text.
func (h *stdlogHook) Write(p []byte) (int, error) {
	msg := string(bytes.TrimRight(p, "\n"))
	file, line, function := stdlogCaller()
	h.m.Record(DetectSeverity(msg), file, line, function, msg)
	return len(p), nil
}

// stdlogCaller finds the first frame outside the log packages and this hook
func stdlogCaller() (string, int, string) {
	var pcs [16]uintptr
	n := runtime.Callers(3, pcs[:]) // skip runtime.Callers, stdlogCaller, Write
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !isLogPackageFrame(frame.Function) {
			return filepath.Base(frame.File), frame.Line, frame.Function
		}
		if !more {
			break
		}
	}
	return "unknown", 0, "unknown"
}

// isLogPackageFrame reports whether fn belongs to log or log/slog
func isLogPackageFrame(fn string) bool {
	return strings.HasPrefix(fn, "log.") || strings.HasPrefix(fn, "log/slog.")
}
