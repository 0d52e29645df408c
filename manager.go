package rotlog

import (
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/rotlog/sanitizer"
)

// Sentinel errors returned by the lifecycle methods
var (
	ErrStopped         = errors.New("rotlog: manager already stopped")
	ErrShutdownTimeout = errors.New("rotlog: worker did not exit within shutdown timeout")
	ErrNotRunning      = errors.New("rotlog: manager not running")
)

// Built-in sink names
const (
	sinkConsole = "console"
	sinkFile    = "file"
	sinkFatal   = "fatal"
)

// Manager is the core struct that owns the pipeline: configuration, queue,
// worker goroutine and sinks. A Manager runs once; after Shutdown it stays stopped.
type Manager struct {
	currentConfig atomic.Value // stores *Config
	state         state
	initMu        sync.Mutex

	queue    atomic.Pointer[EventQueue]
	fileSink atomic.Pointer[FileSink]
	sinks    sinkRegistry

	consoleEntry atomic.Pointer[sinkEntry]
	fileEntry    atomic.Pointer[sinkEntry]

	fatalHandler  atomic.Value // stores FatalHandler
	consoleWriter io.Writer    // overrides console_target when set
	diag          *diagnostics
	sanitizer     atomic.Pointer[sanitizer.Sanitizer]
	directory     atomic.Value // stores string, resolved at Initialize

	workerDone chan struct{}
	heartbeat  *heartbeat
	stdlog     *stdlogHook
}

// Option configures a Manager at construction
type Option func(*Manager)

// WithConsoleWriter sends console output to w instead of stdout/stderr
func WithConsoleWriter(w io.Writer) Option {
	return func(m *Manager) {
		m.consoleWriter = w
	}
}

// WithFatalHandler replaces DefaultFatalHandler
func WithFatalHandler(h FatalHandler) Option {
	return func(m *Manager) {
		if h != nil {
			m.fatalHandler.Store(h)
		}
	}
}

// WithDiagnosticWriter sends the manager's own diagnostics to w instead of stderr
func WithDiagnosticWriter(w io.Writer) Option {
	return func(m *Manager) {
		m.diag = newDiagnostics(w)
	}
}

// NewManager creates a stopped manager from a validated copy of cfg.
// A nil cfg uses DefaultConfig.
func NewManager(cfg *Config, opts ...Option) (*Manager, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, fmtErrorf("invalid configuration: %w", err)
	}

	m := &Manager{}
	m.fatalHandler.Store(FatalHandler(DefaultFatalHandler))
	m.directory.Store("")
	m.state.startTime.Store(time.Time{})
	m.state.workerExited.Store(true)

	for _, opt := range opts {
		opt(m)
	}
	if m.diag == nil {
		m.diag = newDiagnostics(os.Stderr)
	}

	m.storeConfig(cfg.Clone())

	// FATAL events reach the handler on the recording goroutine
	m.sinks.add(SinkFunc(func(ev *Event, _ []byte) error {
		m.getFatalHandler()(*ev)
		return nil
	}), WithSinkName(sinkFatal), WithSinkLevel(SeverityFatal), Synchronous())

	return m, nil
}

// getConfig returns the current configuration (thread-safe)
func (m *Manager) getConfig() *Config {
	return m.currentConfig.Load().(*Config)
}

// storeConfig publishes cfg and the runtime switches derived from it
func (m *Manager) storeConfig(cfg *Config) {
	m.currentConfig.Store(cfg)
	m.state.minLevel.Store(int32(cfg.Level))
	m.state.consoleEnabled.Store(cfg.EnableConsole)
	m.state.fileEnabled.Store(cfg.EnableFile)
	m.diag.enabled.Store(cfg.InternalErrorsToStderr)
	if cfg.Sanitize {
		m.sanitizer.Store(sanitizer.ForPolicy(sanitizer.PolicyLine))
	} else {
		m.sanitizer.Store(nil)
	}
}

// GetConfig returns a copy of current configuration
func (m *Manager) GetConfig() *Config {
	return m.getConfig().Clone()
}

// ApplyConfig replaces the configuration. Before Initialize every key applies.
// While running only level, enable_console, enable_file, sanitize and
// internal_errors_to_stderr may change; other differences are rejected.
func (m *Manager) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}
	if err := cfg.validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	m.initMu.Lock()
	defer m.initMu.Unlock()

	lifecycle := m.state.getLifecycle()
	if lifecycle == StateStopped || lifecycle == StateStopping {
		return ErrStopped
	}

	next := cfg.Clone()
	if lifecycle == StateRunning {
		if key, changed := structuralChange(m.getConfig(), next); changed {
			return fmtErrorf("cannot change '%s' while running", key)
		}
	}

	m.storeConfig(next)
	return nil
}

// structuralChange reports the first key that cannot change after Initialize
func structuralChange(cur, next *Config) (string, bool) {
	switch {
	case cur.Name != next.Name:
		return "name", true
	case cur.Directory != next.Directory:
		return "directory", true
	case cur.ConsoleTarget != next.ConsoleTarget:
		return "console_target", true
	case cur.MaxFileSize != next.MaxFileSize:
		return "max_file_size", true
	case cur.MaxFiles != next.MaxFiles:
		return "max_files", true
	case cur.InterceptStdLog != next.InterceptStdLog:
		return "intercept_stdlog", true
	case cur.HeartbeatIntervalS != next.HeartbeatIntervalS:
		return "heartbeat_interval_s", true
	}
	return "", false
}

// Initialize resolves and prepares the log directory, applies retention and
// starts the worker. Calling it again while running is a no-op.
func (m *Manager) Initialize() error {
	m.initMu.Lock()
	defer m.initMu.Unlock()

	switch m.state.getLifecycle() {
	case StateRunning:
		return nil
	case StateStopping, StateStopped:
		return ErrStopped
	}

	cfg := m.getConfig()

	dir := cfg.Directory
	if dir == "" {
		resolved, err := ResolveLogDir(cfg.Name)
		if err != nil {
			return fmtErrorf("failed to resolve log directory: %w", err)
		}
		dir = resolved
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmtErrorf("failed to create log directory '%s': %w", dir, err)
	}
	if err := probeWritable(dir); err != nil {
		return err
	}

	deleted, err := CleanupLogs(dir, int(cfg.MaxFiles))
	m.state.initialDeletions.Add(uint64(deleted))
	if err != nil {
		m.internalLog("initial retention pass: %v\n", err)
	}

	fs := NewFileSink(dir, cfg.Name, cfg.MaxFileSize, int(cfg.MaxFiles))
	fs.report = m.internalLog
	m.fileSink.Store(fs)
	m.directory.Store(dir)

	console := m.consoleWriter
	if console == nil {
		console = os.Stdout
		if cfg.ConsoleTarget == "stderr" {
			console = os.Stderr
		}
	}
	m.consoleEntry.Store(m.sinks.add(NewConsoleSink(console), WithSinkName(sinkConsole),
		withGate(m.state.consoleEnabled.Load)))
	m.fileEntry.Store(m.sinks.add(fs, WithSinkName(sinkFile),
		withGate(m.state.fileEnabled.Load)))

	q := NewEventQueue()
	m.queue.Store(q)

	if cfg.InterceptStdLog {
		if m.stdlog = installStdlogHook(m); m.stdlog == nil {
			m.internalLog("standard log output already intercepted by another manager, intercept_stdlog ignored\n")
		}
	}

	m.workerDone = make(chan struct{})
	m.state.workerExited.Store(false)
	m.state.workersStarted.Add(1)
	m.state.startTime.Store(time.Now())
	go m.processEvents(q, fs, m.workerDone)

	if cfg.HeartbeatIntervalS > 0 {
		m.heartbeat = m.startHeartbeat(time.Duration(cfg.HeartbeatIntervalS) * time.Second)
	}

	m.state.lifecycle.Store(int32(StateRunning))
	return nil
}

// probeWritable creates and removes a temporary file in dir
func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".rotlog-probe-*")
	if err != nil {
		return fmtErrorf("log directory '%s' is not writable: %w", dir, err)
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return nil
}

// Shutdown stops the worker after it drains the queue, waiting at most
// timeout (default shutdown_timeout_ms). Pending events that were not written
// by then are discarded and ErrShutdownTimeout is returned.
// Calling it on a manager that is not running is a no-op.
func (m *Manager) Shutdown(timeout ...time.Duration) error {
	m.initMu.Lock()
	defer m.initMu.Unlock()

	if !m.state.transition(StateRunning, StateStopping) {
		return nil
	}

	cfg := m.getConfig()
	effectiveTimeout := time.Duration(cfg.ShutdownTimeoutMs) * time.Millisecond
	if len(timeout) > 0 && timeout[0] > 0 {
		effectiveTimeout = timeout[0]
	}

	if m.heartbeat != nil {
		m.heartbeat.stop()
		m.heartbeat = nil
	}
	if m.stdlog != nil {
		m.stdlog.restore()
		m.stdlog = nil
	}

	q := m.queue.Load()
	q.RequestStop()

	var finalErr error
	timer := time.NewTimer(effectiveTimeout)
	defer timer.Stop()

	select {
	case <-m.workerDone:
	case <-timer.C:
		m.state.abandoned.Store(true)
		lost := q.Close()
		m.state.lost.Add(uint64(lost))
		m.internalLog("worker did not exit within %v, %d pending events discarded\n", effectiveTimeout, lost)
		finalErr = fmtErrorf("%w (%v, %d events discarded)", ErrShutdownTimeout, effectiveTimeout, lost)
	}

	m.state.lifecycle.Store(int32(StateStopped))
	return finalErr
}

// Flush waits until every event recorded before the call has been handed to
// the sinks and the log file is synced.
func (m *Manager) Flush(timeout time.Duration) error {
	if m.state.getLifecycle() != StateRunning {
		return ErrNotRunning
	}
	if timeout < minWaitTime {
		timeout = minWaitTime
	}

	ack := make(chan struct{})
	if !m.queue.Load().Push(Event{flushAck: ack}) {
		return ErrNotRunning
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ack:
		return nil
	case <-timer.C:
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}

// SetMinLevel changes the minimum recorded severity
func (m *Manager) SetMinLevel(sev Severity) {
	if !sev.Valid() {
		return
	}
	m.state.minLevel.Store(int32(sev))
}

// MinLevel returns the minimum recorded severity
func (m *Manager) MinLevel() Severity {
	return Severity(m.state.minLevel.Load())
}

// SetConsoleEnabled toggles console output
func (m *Manager) SetConsoleEnabled(enabled bool) {
	m.state.consoleEnabled.Store(enabled)
}

// ConsoleEnabled reports whether console output is on
func (m *Manager) ConsoleEnabled() bool {
	return m.state.consoleEnabled.Load()
}

// SetFileEnabled toggles file output
func (m *Manager) SetFileEnabled(enabled bool) {
	m.state.fileEnabled.Store(enabled)
}

// FileEnabled reports whether file output is on
func (m *Manager) FileEnabled() bool {
	return m.state.fileEnabled.Load()
}

// State returns the lifecycle state
func (m *Manager) State() Lifecycle {
	return m.state.getLifecycle()
}

// Directory returns the resolved log directory, or the configured one before Initialize
func (m *Manager) Directory() string {
	if dir := m.directory.Load().(string); dir != "" {
		return dir
	}
	return m.getConfig().Directory
}

// CurrentLogFile returns the path of the active log file, empty until the first write
func (m *Manager) CurrentLogFile() string {
	if fs := m.fileSink.Load(); fs != nil {
		return fs.Path()
	}
	return ""
}

// CurrentFileSize returns the bytes written to the active log file
func (m *Manager) CurrentFileSize() int64 {
	if fs := m.fileSink.Load(); fs != nil {
		return fs.Size()
	}
	return 0
}

// FileCount returns the number of *.log files in the log directory
func (m *Manager) FileCount() (int, error) {
	dir := m.Directory()
	if dir == "" {
		return 0, ErrNotRunning
	}
	names, err := ListLogFiles(dir)
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// Stats returns a snapshot of the pipeline counters
func (m *Manager) Stats() Stats {
	s := Stats{
		State:     m.state.getLifecycle(),
		Enqueued:  m.state.enqueued.Load(),
		Filtered:  m.state.filtered.Load(),
		Rejected:  m.state.rejected.Load(),
		Processed: m.state.processed.Load(),
		Lost:      m.state.lost.Load(),
		Deletions: m.state.initialDeletions.Load(),
	}
	if e := m.fileEntry.Load(); e != nil {
		s.FileWritten = e.written.Load()
		s.FileDropped = e.failed.Load()
	}
	if e := m.consoleEntry.Load(); e != nil {
		s.ConsoleWritten = e.written.Load()
	}
	if fs := m.fileSink.Load(); fs != nil {
		s.Rotations = fs.Rotations()
		s.Deletions += fs.Deletions()
		s.CurrentFileSize = fs.Size()
	}
	if q := m.queue.Load(); q != nil {
		s.QueueDepth = q.Len()
	}
	if start, ok := m.state.startTime.Load().(time.Time); ok && !start.IsZero() {
		s.Uptime = time.Since(start)
	}
	return s
}

// RegisterSink adds an additional output. Sinks are asynchronous unless
// Synchronous is given. Each call receives its own line slice, so the sink
// may keep it. The returned function removes the sink.
func (m *Manager) RegisterSink(s Sink, opts ...SinkOption) func() {
	e := m.sinks.add(s, append([]SinkOption{withOwnLine()}, opts...)...)
	return func() {
		m.sinks.remove(e.id)
	}
}

// SetFatalHandler installs h for FATAL events and returns the previous handler.
// A nil h restores DefaultFatalHandler.
func (m *Manager) SetFatalHandler(h FatalHandler) FatalHandler {
	if h == nil {
		h = DefaultFatalHandler
	}
	return m.fatalHandler.Swap(h).(FatalHandler)
}

// getFatalHandler loads the current fatal handler
func (m *Manager) getFatalHandler() FatalHandler {
	return m.fatalHandler.Load().(FatalHandler)
}
