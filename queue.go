package rotlog

import (
	"sync"
)

// EventQueue is an unbounded FIFO of events with a single consumer.
// Producers append under a short mutex; the consumer takes the whole backlog at once.
type EventQueue struct {
	mu      sync.Mutex
	events  []Event
	stopped bool // stop requested, consumer exits once empty
	closed  bool // no further pushes accepted

	notify chan struct{} // 1-buffered wake-up for the consumer
	stopCh chan struct{}
	once   sync.Once
}

// NewEventQueue creates an empty, open queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{
		notify: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
	}
}

// Push appends ev and wakes the consumer. It never blocks and returns false
// only once the queue is closed.
func (q *EventQueue) Push(ev Event) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.events = append(q.events, ev)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default: // A wake-up is already pending
	}
	return true
}

// WaitAndDrain blocks until events are available or stop was requested, then
// returns the entire backlog in insertion order. An empty result means stop was
// requested with nothing left; the queue is closed in that same step.
func (q *EventQueue) WaitAndDrain() []Event {
	for {
		q.mu.Lock()
		if len(q.events) > 0 {
			batch := q.events
			q.events = nil
			q.mu.Unlock()
			return batch
		}
		if q.stopped {
			q.closed = true
			q.mu.Unlock()
			return nil
		}
		q.mu.Unlock()

		select {
		case <-q.notify:
		case <-q.stopCh:
		}
	}
}

// RequestStop asks the consumer to exit after draining. Safe to call repeatedly.
func (q *EventQueue) RequestStop() {
	q.once.Do(func() {
		q.mu.Lock()
		q.stopped = true
		q.mu.Unlock()
		close(q.stopCh)
	})
}

// Close rejects further pushes and discards the backlog, returning the number
// of events discarded.
func (q *EventQueue) Close() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	lost := len(q.events)
	q.events = nil
	q.closed = true
	return lost
}

// Len returns the current backlog.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Closed reports whether pushes are rejected.
func (q *EventQueue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
