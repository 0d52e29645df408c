package compat

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/rotlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linePattern splits a formatted line into level, file and message
var linePattern = regexp.MustCompile(`^\[[0-9-]{10} [0-9:.]{12}\] \[([A-Z]+)\] \[([^:\]]+):\d+\] \[[0-9A-F]{16}\] (.*)$`)

// createTestCompatBuilder creates a standard setup for compatibility adapter tests
func createTestCompatBuilder(t *testing.T, opts ...rotlog.Option) (*Builder, *rotlog.Manager, string) {
	t.Helper()
	tmpDir := t.TempDir()
	m, err := rotlog.NewBuilder().
		Name("compat").
		Directory(tmpDir).
		LevelString("debug").
		EnableConsole(false).
		InterceptStdLog(false).
		Options(opts...).
		Build()
	require.NoError(t, err)

	require.NoError(t, m.Initialize())

	builder := NewBuilder().WithManager(m)
	return builder, m, tmpDir
}

// readLogLines flushes m and returns the lines of the single log file in dir
func readLogLines(t *testing.T, m *rotlog.Manager, dir string) []string {
	t.Helper()
	require.NoError(t, m.Flush(time.Second))

	names, err := rotlog.ListLogFiles(dir)
	require.NoError(t, err)
	require.Len(t, names, 1)

	f, err := os.Open(filepath.Join(dir, names[0]))
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}

// TestCompatBuilder verifies the compatibility builder can be initialized correctly
func TestCompatBuilder(t *testing.T) {
	t.Run("with existing manager", func(t *testing.T) {
		builder, m, _ := createTestCompatBuilder(t)
		defer m.Shutdown()

		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.NotNil(t, gnetAdapter)
		assert.Same(t, m, gnetAdapter.m)
	})

	t.Run("with config", func(t *testing.T) {
		logCfg := rotlog.DefaultConfig()
		logCfg.Directory = t.TempDir()
		logCfg.EnableConsole = false
		logCfg.InterceptStdLog = false

		builder := NewBuilder().WithConfig(logCfg)
		fasthttpAdapter, err := builder.BuildFastHTTP()
		require.NoError(t, err)
		assert.NotNil(t, fasthttpAdapter)

		m, err := builder.GetManager()
		require.NoError(t, err)
		defer m.Shutdown()
		assert.Equal(t, rotlog.StateRunning, m.State())

		// Later builds reuse the same manager
		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.Same(t, m, gnetAdapter.m)
	})

	t.Run("nil manager", func(t *testing.T) {
		_, err := NewBuilder().WithManager(nil).BuildGnet()
		assert.Error(t, err)
	})
}

// TestGnetAdapter tests the gnet adapter's levels and caller attribution
func TestGnetAdapter(t *testing.T) {
	var fatalCalls atomic.Int32
	builder, m, tmpDir := createTestCompatBuilder(t, rotlog.WithFatalHandler(func(ev rotlog.Event) {
		fatalCalls.Add(1)
	}))
	defer m.Shutdown()

	adapter, err := builder.BuildGnet()
	require.NoError(t, err)

	adapter.Debugf("gnet debug id=%d", 1)
	adapter.Infof("gnet info id=%d", 2)
	adapter.Warnf("gnet warn id=%d", 3)
	adapter.Errorf("gnet error id=%d", 4)
	adapter.Fatalf("gnet fatal id=%d", 5)

	lines := readLogLines(t, m, tmpDir)

	expected := []struct{ level, msg string }{
		{"DEBUG", "gnet debug id=1"},
		{"INFO", "gnet info id=2"},
		{"WARNING", "gnet warn id=3"},
		{"ERROR", "gnet error id=4"},
		{"FATAL", "gnet fatal id=5"},
	}
	require.Len(t, lines, len(expected))

	for i, line := range lines {
		parts := linePattern.FindStringSubmatch(line)
		require.NotNil(t, parts, "unexpected line format: %s", line)
		assert.Equal(t, expected[i].level, parts[1])
		assert.Equal(t, "compat_test.go", parts[2], "caller should be the adapter's caller")
		assert.Equal(t, expected[i].msg, parts[3])
	}
	assert.Equal(t, int32(1), fatalCalls.Load(), "fatal handler should run once")
}

// TestFastHTTPAdapter tests the fasthttp adapter's level detection
func TestFastHTTPAdapter(t *testing.T) {
	builder, m, tmpDir := createTestCompatBuilder(t)
	defer m.Shutdown()

	adapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	testMessages := []string{
		"this is some informational message",
		"a debug message for the developers",
		"warning: something might be wrong",
		"an error occurred while processing",
	}
	for _, msg := range testMessages {
		adapter.Printf("%s", msg)
	}

	lines := readLogLines(t, m, tmpDir)
	expectedLevels := []string{"INFO", "DEBUG", "WARNING", "ERROR"}
	require.Len(t, lines, 4)

	for i, line := range lines {
		parts := linePattern.FindStringSubmatch(line)
		require.NotNil(t, parts, "unexpected line format: %s", line)
		assert.Equal(t, expectedLevels[i], parts[1])
		assert.Equal(t, testMessages[i], parts[3])
	}
}

// TestFastHTTPAdapterOptions tests fixed-level logging without detection
func TestFastHTTPAdapterOptions(t *testing.T) {
	builder, m, tmpDir := createTestCompatBuilder(t)
	defer m.Shutdown()

	adapter, err := builder.BuildFastHTTP(WithLevelDetector(nil), WithDefaultLevel(rotlog.SeverityWarning))
	require.NoError(t, err)

	adapter.Printf("an error that stays at %s", "warning")

	lines := readLogLines(t, m, tmpDir)
	require.Len(t, lines, 1)
	parts := linePattern.FindStringSubmatch(lines[0])
	require.NotNil(t, parts)
	assert.Equal(t, "WARNING", parts[1])
	assert.Equal(t, "an error that stays at warning", parts[3])
}
