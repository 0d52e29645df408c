package rotlog

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// diagnostics writes the logger's own failures to a side channel (stderr by
// default), never through the pipeline. Output is throttled so a failing disk
// cannot flood the console.
type diagnostics struct {
	mu         sync.Mutex
	w          io.Writer
	enabled    atomic.Bool
	limiter    *rate.Limiter
	suppressed atomic.Uint64
}

// newDiagnostics creates an enabled diagnostic writer
func newDiagnostics(w io.Writer) *diagnostics {
	d := &diagnostics{
		w:       w,
		limiter: rate.NewLimiter(rate.Limit(diagRatePerSecond), diagBurst),
	}
	d.enabled.Store(true)
	return d
}

// logf writes one "rotlog: " prefixed diagnostic line
func (d *diagnostics) logf(format string, args ...any) {
	if !d.enabled.Load() {
		return
	}
	if !d.limiter.Allow() {
		d.suppressed.Add(1)
		return
	}

	if !strings.HasPrefix(format, "rotlog: ") {
		format = "rotlog: " + format
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if n := d.suppressed.Swap(0); n > 0 {
		fmt.Fprintf(d.w, "rotlog: %d diagnostic messages suppressed\n", n)
	}
	fmt.Fprintf(d.w, format, args...)
}

// internalLog handles writing internal logger diagnostics, if enabled.
func (m *Manager) internalLog(format string, args ...any) {
	m.diag.logf(format, args...)
}
