package rotlog

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueueFIFO(t *testing.T) {
	q := NewEventQueue()

	for i := 0; i < 5; i++ {
		require.True(t, q.Push(Event{Line: i}))
	}
	assert.Equal(t, 5, q.Len())

	batch := q.WaitAndDrain()
	require.Len(t, batch, 5)
	for i, ev := range batch {
		assert.Equal(t, i, ev.Line)
	}
	assert.Equal(t, 0, q.Len())
}

func TestEventQueueWaitBlocksUntilPush(t *testing.T) {
	q := NewEventQueue()

	got := make(chan []Event, 1)
	go func() {
		got <- q.WaitAndDrain()
	}()

	select {
	case <-got:
		t.Fatal("WaitAndDrain returned on an empty queue")
	case <-time.After(20 * time.Millisecond):
	}

	q.Push(Event{Message: "wake"})

	select {
	case batch := <-got:
		require.Len(t, batch, 1)
		assert.Equal(t, "wake", batch[0].Message)
	case <-time.After(time.Second):
		t.Fatal("consumer not woken by push")
	}
}

func TestEventQueueStopDrainsFirst(t *testing.T) {
	q := NewEventQueue()
	q.Push(Event{Line: 1})
	q.Push(Event{Line: 2})
	q.RequestStop()
	q.RequestStop() // Safe to repeat

	batch := q.WaitAndDrain()
	assert.Len(t, batch, 2, "pending events are returned before stopping")
	assert.False(t, q.Closed())

	assert.Empty(t, q.WaitAndDrain())
	assert.True(t, q.Closed(), "empty result closes the queue")
	assert.False(t, q.Push(Event{}), "closed queue rejects pushes")
}

func TestEventQueueStopWakesWaiter(t *testing.T) {
	q := NewEventQueue()

	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.Empty(t, q.WaitAndDrain())
	}()

	time.Sleep(10 * time.Millisecond)
	q.RequestStop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not wake the consumer")
	}
}

func TestEventQueueClose(t *testing.T) {
	q := NewEventQueue()
	for i := 0; i < 7; i++ {
		q.Push(Event{})
	}

	assert.Equal(t, 7, q.Close())
	assert.True(t, q.Closed())
	assert.Equal(t, 0, q.Len())
	assert.False(t, q.Push(Event{}))
}

func TestEventQueueConcurrentProducers(t *testing.T) {
	q := NewEventQueue()

	const producers = 16
	const perProducer = 1000

	received := make(chan int)
	go func() {
		n := 0
		for {
			batch := q.WaitAndDrain()
			if len(batch) == 0 {
				received <- n
				return
			}
			n += len(batch)
		}
	}()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(Event{Line: i})
			}
		}()
	}
	wg.Wait()
	q.RequestStop()

	assert.Equal(t, producers*perProducer, <-received)
}
