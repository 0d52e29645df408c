package rotlog

// processEvents is the worker loop. It is the only goroutine that touches the
// file sink and the asynchronous sinks, and it closes the file on exit.
func (m *Manager) processEvents(q *EventQueue, fs *FileSink, done chan struct{}) {
	defer close(done)
	defer m.state.workerExited.Store(true)
	defer func() {
		if err := fs.Close(); err != nil {
			m.internalLog("%v\n", err)
		}
	}()

	buf := make([]byte, 0, 256)

	for {
		batch := q.WaitAndDrain()
		if len(batch) == 0 {
			return
		}

		for i := range batch {
			if m.state.abandoned.Load() {
				m.state.lost.Add(uint64(len(batch) - i))
				return
			}

			ev := &batch[i]
			if ev.isMarker() {
				m.handleFlushRequest(fs, ev.flushAck)
				continue
			}

			buf = AppendEvent(buf[:0], ev)
			buf = append(buf, '\n')
			m.dispatchAsync(ev, buf)
			m.state.processed.Add(1)
		}
	}
}

// dispatchAsync hands one formatted line to every asynchronous sink accepting it.
// line is the worker's reused buffer; built-in sinks write it before returning.
func (m *Manager) dispatchAsync(ev *Event, line []byte) {
	for _, e := range m.sinks.load() {
		if e.sync || !e.accepts(ev.Severity) {
			continue
		}
		out := line
		if e.ownLine {
			out = append([]byte(nil), line...)
		}
		if err := e.sink.Emit(ev, out); err != nil {
			e.failed.Add(1)
			m.internalLog("%s sink dropped event: %v\n", e.name, err)
			continue
		}
		e.written.Add(1)
	}
}

// handleFlushRequest syncs the active file and signals the Flush caller
func (m *Manager) handleFlushRequest(fs *FileSink, ack chan struct{}) {
	if err := fs.Sync(); err != nil {
		m.internalLog("%v\n", err)
	}
	close(ack)
}
