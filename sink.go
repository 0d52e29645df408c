package rotlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Sink is a destination for formatted log lines. line carries the trailing newline.
// Asynchronous sinks are only called from the worker goroutine; synchronous sinks
// are called on the goroutine that recorded the event and must be safe for concurrent use.
// Sinks added with Manager.RegisterSink own the line they receive and may keep it.
type Sink interface {
	Emit(ev *Event, line []byte) error
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(ev *Event, line []byte) error

// Emit calls f(ev, line)
func (f SinkFunc) Emit(ev *Event, line []byte) error {
	return f(ev, line)
}

// ConsoleSink writes lines to a console stream
type ConsoleSink struct {
	w io.Writer
}

// NewConsoleSink creates a console sink writing to w
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// Emit writes the line as is
func (c *ConsoleSink) Emit(_ *Event, line []byte) error {
	_, err := c.w.Write(line)
	return err
}

// FatalHandler receives FATAL events synchronously, after they were queued.
type FatalHandler func(ev Event)

// DefaultFatalHandler prints the event to stderr and terminates the process.
func DefaultFatalHandler(ev Event) {
	fmt.Fprintln(os.Stderr, FormatEvent(&ev))
	os.Exit(1)
}

// sinkEntry is one registered sink with its dispatch settings
type sinkEntry struct {
	id       uint64
	name     string
	sink     Sink
	minLevel Severity
	sync     bool
	gate     func() bool // optional runtime switch
	ownLine  bool        // receives a private copy of the worker's line buffer

	written atomic.Uint64
	failed  atomic.Uint64
}

// accepts reports whether the entry should receive an event of severity sev
func (e *sinkEntry) accepts(sev Severity) bool {
	if sev < e.minLevel {
		return false
	}
	return e.gate == nil || e.gate()
}

// SinkOption configures a sink registration
type SinkOption func(*sinkEntry)

// WithSinkLevel sets the minimum severity delivered to the sink
func WithSinkLevel(sev Severity) SinkOption {
	return func(e *sinkEntry) {
		e.minLevel = sev
	}
}

// WithSinkName labels the sink in diagnostics
func WithSinkName(name string) SinkOption {
	return func(e *sinkEntry) {
		e.name = name
	}
}

// Synchronous makes the sink run on the recording goroutine right after enqueue
func Synchronous() SinkOption {
	return func(e *sinkEntry) {
		e.sync = true
	}
}

// withOwnLine hands the sink a copy of each line it may retain
func withOwnLine() SinkOption {
	return func(e *sinkEntry) {
		e.ownLine = true
	}
}

// withGate attaches a runtime on/off switch, used by the built-in sinks
func withGate(gate func() bool) SinkOption {
	return func(e *sinkEntry) {
		e.gate = gate
	}
}

// sinkRegistry is a copy-on-write list of sinks
type sinkRegistry struct {
	mu      sync.Mutex
	nextID  uint64
	entries atomic.Pointer[[]*sinkEntry]
}

// add registers s and returns its entry
func (r *sinkRegistry) add(s Sink, opts ...SinkOption) *sinkEntry {
	e := &sinkEntry{sink: s, name: fmt.Sprintf("%T", s)}
	for _, opt := range opts {
		opt(e)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	e.id = r.nextID

	old := r.load()
	entries := make([]*sinkEntry, 0, len(old)+1)
	entries = append(entries, old...)
	entries = append(entries, e)
	r.entries.Store(&entries)
	return e
}

// remove unregisters the entry with the given id
func (r *sinkRegistry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.load()
	entries := make([]*sinkEntry, 0, len(old))
	for _, e := range old {
		if e.id != id {
			entries = append(entries, e)
		}
	}
	r.entries.Store(&entries)
}

// load returns the current snapshot
func (r *sinkRegistry) load() []*sinkEntry {
	if p := r.entries.Load(); p != nil {
		return *p
	}
	return nil
}

// find returns the first entry with the given name
func (r *sinkRegistry) find(name string) *sinkEntry {
	for _, e := range r.load() {
		if e.name == name {
			return e
		}
	}
	return nil
}
