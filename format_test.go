package rotlog

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestFormatEvent tests the exact line layout
func TestFormatEvent(t *testing.T) {
	ev := &Event{
		Time:        time.Date(2024, 1, 2, 3, 4, 5, 678_000_000, time.Local),
		Severity:    SeverityWarning,
		File:        "server.go",
		Line:        42,
		Function:    "main.serve",
		Message:     "disk almost full",
		GoroutineID: 0x1A,
	}

	got := FormatEvent(ev)
	assert.Equal(t, "[2024-01-02 03:04:05.678] [WARNING] [server.go:42] [000000000000001A] disk almost full", got)
	assert.False(t, strings.HasSuffix(got, "\n"))

	t.Run("milliseconds truncated not rounded", func(t *testing.T) {
		ev := &Event{Time: time.Date(2024, 1, 2, 3, 4, 5, 999_999_999, time.Local), Severity: SeverityInfo}
		assert.True(t, strings.HasPrefix(FormatEvent(ev), "[2024-01-02 03:04:05.999] [INFO]"))
	})

	t.Run("all levels", func(t *testing.T) {
		for sev, name := range map[Severity]string{
			SeverityDebug:   "DEBUG",
			SeverityInfo:    "INFO",
			SeverityWarning: "WARNING",
			SeverityError:   "ERROR",
			SeverityFatal:   "FATAL",
		} {
			ev := &Event{Severity: sev}
			assert.Contains(t, FormatEvent(ev), "] ["+name+"] [")
		}
		assert.Equal(t, "UNKNOWN", Severity(9).String())
	})

	t.Run("append reuses buffer", func(t *testing.T) {
		buf := []byte("prefix|")
		buf = AppendEvent(buf, ev)
		assert.Equal(t, "prefix|"+FormatEvent(ev), string(buf))
	})
}

func TestAppendHexID(t *testing.T) {
	tests := []struct {
		id       uint64
		expected string
	}{
		{0, "0000000000000000"},
		{1, "0000000000000001"},
		{0xABCDEF, "0000000000ABCDEF"},
		{^uint64(0), "FFFFFFFFFFFFFFFF"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, string(appendHexID(nil, tt.id)))
	}
}

type point struct {
	X, Y int
}

type named string

func (n named) String() string { return "named:" + string(n) }

// TestFormatArgs tests rendering of leveled helper arguments
func TestFormatArgs(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		args     []any
		expected string
	}{
		{"strings joined", []any{"a", "b"}, "a b"},
		{"numbers", []any{1, int64(-2), uint(3), 1.5, float32(0.25)}, "1 -2 3 1.5 0.25"},
		{"bool and nil", []any{true, nil}, "true nil"},
		{"error", []any{errors.New("boom")}, "boom"},
		{"stringer", []any{named("x")}, "named:x"},
		{"duration", []any{1500 * time.Millisecond}, "1.5s"},
		{"time", []any{ts}, "2024-01-01 12:00:00.000"},
		{"bytes as hex", []any{[]byte{0xde, 0xad}}, "dead"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatArgs(tt.args))
		})
	}

	t.Run("composite values use spew", func(t *testing.T) {
		got := formatArgs([]any{&point{X: 1, Y: 2}})
		assert.Contains(t, got, "X:1")
		assert.Contains(t, got, "Y:2")
		assert.NotContains(t, got, "\n")
		assert.NotContains(t, got, "0xc", "pointer addresses are hidden")
	})

	t.Run("sorted map keys", func(t *testing.T) {
		got := formatArgs([]any{map[string]int{"b": 2, "a": 1}})
		assert.Less(t, strings.Index(got, "a:1"), strings.Index(got, "b:2"))
	})
}
