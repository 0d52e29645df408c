package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/rotlog"
)

const logDirectory = "./temp_logs"

// main walks through output combinations and runtime switches on one manager
func main() {
	if err := os.RemoveAll(logDirectory); err != nil {
		fmt.Printf("Warning: could not remove old log directory: %v\n", err)
	}

	fmt.Println("--- rotlog sink walkthrough ---")

	m, err := rotlog.NewBuilder().
		Name("sinks").
		Directory(logDirectory).
		ConsoleTarget("stderr").
		InterceptStdLog(false).
		Build()
	if err != nil {
		fmt.Printf("Fatal: %v\n", err)
		os.Exit(1)
	}

	// Count errors with an extra synchronous sink
	var errorCount atomic.Int64
	unregister := m.RegisterSink(rotlog.SinkFunc(func(ev *rotlog.Event, line []byte) error {
		errorCount.Add(1)
		return nil
	}), rotlog.WithSinkName("error-counter"), rotlog.WithSinkLevel(rotlog.SeverityError), rotlog.Synchronous())

	// Log FATAL instead of exiting
	m.SetFatalHandler(func(ev rotlog.Event) {
		fmt.Printf("  fatal handler: %s\n", ev.Message)
	})

	if err := m.Initialize(); err != nil {
		fmt.Printf("Fatal: %v\n", err)
		os.Exit(1)
	}

	phase(m, "1: file and console")

	m.SetConsoleEnabled(false)
	phase(m, "2: file only")

	m.SetFileEnabled(false)
	m.SetConsoleEnabled(true)
	phase(m, "3: console only")

	m.SetConsoleEnabled(false)
	phase(m, "4: no output (events are processed and dropped)")

	m.SetFileEnabled(true)
	m.SetMinLevel(rotlog.SeverityWarning)
	phase(m, "5: file only, warnings and above")

	m.Fatal("unrecoverable condition")
	unregister()
	m.Error("not counted")

	if err := m.Shutdown(500 * time.Millisecond); err != nil {
		fmt.Printf("  WARNING: shutdown error: %v\n", err)
	}

	s := m.Stats()
	fmt.Printf("\nerrors seen by counter sink: %d\n", errorCount.Load())
	fmt.Printf("file=%d console=%d filtered=%d\n", s.FileWritten, s.ConsoleWritten, s.Filtered)
	fmt.Printf("Check the '%s' directory for log files.\n", logDirectory)
}

// phase logs one event per level and waits for them to be written
func phase(m *rotlog.Manager, name string) {
	fmt.Printf("\n[Phase %s]\n", name)
	m.Debug("phase", name, "debug")
	m.Info("phase", name, "info")
	m.Warn("phase", name, "warning")
	m.Error("phase", name, "error")
	if err := m.Flush(time.Second); err != nil {
		fmt.Printf("  flush: %v\n", err)
	}
}
