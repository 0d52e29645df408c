package rotlog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticsThrottle(t *testing.T) {
	buf := &lockedBuffer{}
	d := newDiagnostics(buf)

	for i := 0; i < diagBurst+50; i++ {
		d.logf("failure %d\n", i)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.LessOrEqual(t, len(lines), diagBurst+1, "burst allowance bounds the output")
	assert.Equal(t, "rotlog: failure 0", lines[0])
	assert.NotZero(t, d.suppressed.Load())
}

func TestDiagnosticsDisabled(t *testing.T) {
	buf := &lockedBuffer{}
	d := newDiagnostics(buf)
	d.enabled.Store(false)

	d.logf("hidden\n")
	assert.Empty(t, buf.String())
}

func TestInternalErrorsToStderrToggle(t *testing.T) {
	m, _, _ := createTestManager(t, func(c *Config) { c.InternalErrorsToStderr = false })
	defer m.Shutdown()

	diag := m.diag.w.(*lockedBuffer)
	m.internalLog("should not appear\n")
	assert.Empty(t, diag.String())

	cfg := m.GetConfig()
	cfg.InternalErrorsToStderr = true
	assert.NoError(t, m.ApplyConfig(cfg))
	m.internalLog("visible\n")
	assert.Equal(t, "rotlog: visible\n", diag.String())
}
