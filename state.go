package rotlog

import (
	"sync/atomic"
	"time"
)

// Lifecycle is the run state of a Manager
type Lifecycle int32

const (
	StateUninitialized Lifecycle = iota
	StateRunning
	StateStopping
	StateStopped
)

// String returns the state name
func (s Lifecycle) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// state encapsulates the runtime state of the manager
type state struct {
	lifecycle atomic.Int32 // stores Lifecycle
	minLevel  atomic.Int32 // stores Severity

	consoleEnabled atomic.Bool
	fileEnabled    atomic.Bool

	workersStarted atomic.Int32 // Worker goroutines ever started by this manager
	workerExited   atomic.Bool  // Tracks if the worker goroutine has exited
	abandoned      atomic.Bool  // Set after a shutdown timeout, worker discards its backlog

	startTime atomic.Value // stores time.Time for uptime calculation

	// Statistics
	enqueued         atomic.Uint64 // Events accepted by the queue
	filtered         atomic.Uint64 // Events below the minimum level
	rejected         atomic.Uint64 // Events offered to a closed queue
	processed        atomic.Uint64 // Events taken from the queue by the worker
	lost             atomic.Uint64 // Events discarded by a shutdown timeout
	initialDeletions atomic.Uint64 // Files removed by the cleanup pass at Initialize
	heartbeatSeq     atomic.Uint64 // Heartbeat sequence numbers
}

// Stats is a point-in-time snapshot of pipeline counters
type Stats struct {
	State           Lifecycle
	Enqueued        uint64
	Filtered        uint64
	Rejected        uint64
	Processed       uint64
	FileWritten     uint64
	ConsoleWritten  uint64
	FileDropped     uint64
	Rotations       uint64
	Deletions       uint64
	Lost            uint64
	QueueDepth      int
	CurrentFileSize int64
	Uptime          time.Duration
}

// getLifecycle loads the current state
func (s *state) getLifecycle() Lifecycle {
	return Lifecycle(s.lifecycle.Load())
}

// transition moves from one state to another, reporting success
func (s *state) transition(from, to Lifecycle) bool {
	return s.lifecycle.CompareAndSwap(int32(from), int32(to))
}
