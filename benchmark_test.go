package rotlog

import (
	"testing"
)

// BenchmarkManagerInfo benchmarks the performance of standard Info logging
func BenchmarkManagerInfo(b *testing.B) {
	m, _, _ := createTestManager(b, func(c *Config) { c.EnableConsole = false })
	defer m.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Info("benchmark message", i)
	}
}

// BenchmarkManagerInfof benchmarks printf-style logging
func BenchmarkManagerInfof(b *testing.B) {
	m, _, _ := createTestManager(b, func(c *Config) { c.EnableConsole = false })
	defer m.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Infof("benchmark message %d key=%s", i, "value")
	}
}

// BenchmarkManagerFiltered benchmarks calls below the minimum level
func BenchmarkManagerFiltered(b *testing.B) {
	m, _, _ := createTestManager(b, func(c *Config) {
		c.EnableConsole = false
		c.Level = int64(SeverityError)
	})
	defer m.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Debug("filtered", i)
	}
}

// BenchmarkManagerRotation benchmarks logging with a small size limit
func BenchmarkManagerRotation(b *testing.B) {
	m, _, _ := createTestManager(b, func(c *Config) {
		c.EnableConsole = false
		c.MaxFileSize = 64 * 1024
		c.MaxFiles = 4
	})
	defer m.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Info("rotating benchmark message", i)
	}
}

// BenchmarkConcurrentLogging benchmarks the manager's performance under concurrent load
func BenchmarkConcurrentLogging(b *testing.B) {
	m, _, _ := createTestManager(b, func(c *Config) { c.EnableConsole = false })
	defer m.Shutdown()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			m.Info("concurrent", i)
			i++
		}
	})
}

// BenchmarkAppendEvent benchmarks line formatting alone
func BenchmarkAppendEvent(b *testing.B) {
	ev := &Event{
		Severity:    SeverityInfo,
		File:        "server.go",
		Line:        42,
		Message:     "request handled",
		GoroutineID: 17,
	}
	buf := make([]byte, 0, 256)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = AppendEvent(buf[:0], ev)
	}
}
