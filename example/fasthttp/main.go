package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lixenwraith/rotlog"
	"github.com/lixenwraith/rotlog/compat"
	"github.com/valyala/fasthttp"
)

var m *rotlog.Manager

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	// Create and configure manager
	var err error
	m, err = rotlog.NewBuilder().
		Name("fasthttp").
		Directory("./logs").
		Level(rotlog.SeverityDebug).
		MaxSizeMB(5).
		MaxFiles(20).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logging: %v\n", err)
		os.Exit(1)
	}
	if err := m.ApplyOverride("sanitize=true"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to apply override: %v\n", err)
		os.Exit(1)
	}
	if err := m.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start logging: %v\n", err)
		os.Exit(1)
	}
	defer m.Shutdown()

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		m,
		compat.WithDefaultLevel(rotlog.SeverityInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	// Configure fasthttp server
	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		// Other server settings
		Name:              "rotlog-example",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	m.Infof("starting server on %s, logs in %s", *addr, m.Directory())
	if err := server.ListenAndServe(*addr); err != nil {
		m.Errorf("server stopped: %v", err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	m.Debugf("%s %s from %s", ctx.Method(), ctx.Path(), ctx.RemoteAddr())
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) rotlog.Severity {
	// fasthttp message patterns
	if strings.Contains(msg, "connection cannot be served") {
		return rotlog.SeverityWarning
	}
	if strings.Contains(msg, "error when serving connection") {
		return rotlog.SeverityError
	}

	// Use default detection
	return rotlog.DetectSeverity(msg)
}
