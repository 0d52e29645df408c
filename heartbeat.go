package rotlog

import (
	"fmt"
	"runtime"
	"time"
)

// heartbeat periodically records a statistics event through the pipeline
type heartbeat struct {
	stopCh chan struct{}
	done   chan struct{}
}

// startHeartbeat launches the ticker goroutine
func (m *Manager) startHeartbeat(interval time.Duration) *heartbeat {
	hb := &heartbeat{
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(hb.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.logHeartbeat()
			case <-hb.stopCh:
				return
			}
		}
	}()

	return hb
}

// stop ends the ticker goroutine and waits for it
func (hb *heartbeat) stop() {
	close(hb.stopCh)
	<-hb.done
}

// logHeartbeat records one INFO statistics event
func (m *Manager) logHeartbeat() {
	sequence := m.state.heartbeatSeq.Add(1)
	s := m.Stats()

	msg := fmt.Sprintf(
		"heartbeat sequence=%d uptime_hours=%.2f processed=%d rotations=%d deletions=%d file_dropped=%d lost=%d queue_depth=%d current_file_bytes=%d goroutines=%d",
		sequence,
		s.Uptime.Hours(),
		s.Processed,
		s.Rotations,
		s.Deletions,
		s.FileDropped,
		s.Lost,
		s.QueueDepth,
		s.CurrentFileSize,
		runtime.NumGoroutine(),
	)

	m.Record(SeverityInfo, "heartbeat", 0, "heartbeat", msg)
}
