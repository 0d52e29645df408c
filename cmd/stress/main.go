package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/rotlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	maxMessageSize = 2000
)

// Example TOML content for the stress run
var tomlContent = `
# Example stress_config.toml
[log]
  level = 0 # Debug
  name = "stress_test"
  directory = "./logs"
  enable_console = false
  max_file_size = 1048576 # Force frequent rotation (1 MiB)
  max_files = 10
  shutdown_timeout_ms = 10000
  intercept_stdlog = true
  heartbeat_interval_s = 2
`

var levels = []rotlog.Severity{
	rotlog.SeverityDebug,
	rotlog.SeverityInfo,
	rotlog.SeverityWarning,
	rotlog.SeverityError,
}

var m *rotlog.Manager

func generateRandomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity
func logBurst(burstID, logsPerBurst int) {
	for i := 0; i < logsPerBurst; i++ {
		sev := levels[rand.Intn(len(levels))]
		msg := generateRandomMessage(rand.Intn(maxMessageSize) + 10)
		m.LogfDepth(0, sev, "bst=%d seq=%d rnd=%d %s", burstID, i, rand.Int63(), msg)
	}
}

// worker goroutine function
func worker(burstChan chan int, wg *sync.WaitGroup, completedBursts *atomic.Int64, logsPerBurst, totalBursts int) {
	defer wg.Done()
	for burstID := range burstChan {
		logBurst(burstID, logsPerBurst)
		completed := completedBursts.Add(1)
		if completed%10 == 0 || completed == int64(totalBursts) {
			fmt.Printf("\rProgress: %d/%d bursts completed", completed, totalBursts)
		}
	}
}

func main() {
	configFile := flag.String("config", "stress_config.toml", "TOML file with a [log] table, created if missing")
	numWorkers := flag.Int("workers", 50, "concurrent logging goroutines")
	totalBursts := flag.Int("bursts", 100, "bursts to submit")
	logsPerBurst := flag.Int("burst-size", 500, "events per burst")
	metricsAddr := flag.String("metrics", "127.0.0.1:9108", "address for the /metrics endpoint, empty disables it")
	flag.Parse()

	fmt.Println("--- rotlog Stress Test ---")

	// --- Setup Config ---
	if _, err := os.Stat(*configFile); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(*configFile, []byte(tomlContent), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write example config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created example config file: %s\n", *configFile)
	}

	cfg, err := rotlog.NewConfigFromFile(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	_ = os.RemoveAll(cfg.Directory) // Clean previous run's directory

	// --- Initialize Manager ---
	m, err = rotlog.NewManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create manager: %v\n", err)
		os.Exit(1)
	}
	if err := m.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize manager: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Manager initialized. Logs will be written to: %s\n", m.Directory())

	// --- Metrics ---
	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(rotlog.NewCollector(m))
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				m.Errorf("metrics endpoint stopped: %v", err)
			}
		}()
		fmt.Printf("Metrics at http://%s/metrics\n", *metricsAddr)
	}

	fmt.Printf("Starting stress test: %d workers, %d bursts, %d logs/burst.\n",
		*numWorkers, *totalBursts, *logsPerBurst)
	fmt.Println("Press Ctrl+C to stop early.")

	// --- Setup Workers and Signal Handling ---
	burstChan := make(chan int, *numWorkers)
	var wg sync.WaitGroup
	completedBursts := atomic.Int64{}
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	stopChan := make(chan struct{})

	go func() {
		<-sigChan
		fmt.Println("\n[Signal Received] Stopping burst generation...")
		close(stopChan)
	}()

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go worker(burstChan, &wg, &completedBursts, *logsPerBurst, *totalBursts)
	}

	// --- Run Test ---
	startTime := time.Now()
	for i := 1; i <= *totalBursts; i++ {
		select {
		case burstChan <- i:
		case <-stopChan:
			fmt.Println("[Signal Received] Halting burst submission.")
			goto endLoop
		}
	}
endLoop:
	close(burstChan)

	fmt.Println("\nWaiting for workers to finish...")
	wg.Wait()
	duration := time.Since(startTime)
	finalCompleted := completedBursts.Load()

	fmt.Printf("\n--- Test Finished ---")
	fmt.Printf("\nCompleted %d/%d bursts in %v\n", finalCompleted, *totalBursts, duration.Round(time.Millisecond))
	if finalCompleted > 0 && duration.Seconds() > 0 {
		logsPerSec := float64(finalCompleted*int64(*logsPerBurst)) / duration.Seconds()
		fmt.Printf("Approximate Logs/sec: %.2f\n", logsPerSec)
	}

	// --- Shutdown Manager ---
	fmt.Println("Shutting down manager...")
	if err := m.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "Manager shutdown error: %v\n", err)
	} else {
		fmt.Println("Manager shutdown complete.")
	}

	s := m.Stats()
	fmt.Printf("enqueued=%d processed=%d rotations=%d deletions=%d lost=%d\n",
		s.Enqueued, s.Processed, s.Rotations, s.Deletions, s.Lost)
	if n, err := m.FileCount(); err == nil {
		fmt.Printf("%d log files remain in '%s'\n", n, m.Directory())
	}
}
