package rotlog

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLogDir(t *testing.T) {
	app := fmt.Sprintf("rotlog-resolve-%d", os.Getpid())

	dir, err := ResolveLogDir(app)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	assert.Equal(t, app+"-logs", filepath.Base(dir))
	fi, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
	assert.NoError(t, probeWritable(dir))

	// Resolution is stable across calls
	again, err := ResolveLogDir(app)
	require.NoError(t, err)
	assert.Equal(t, dir, again)
}

func TestInitializeResolvesDirectory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Name = fmt.Sprintf("rotlog-init-%d", os.Getpid())
	cfg.InterceptStdLog = false
	cfg.EnableConsole = false

	m, err := NewManager(cfg, WithDiagnosticWriter(&lockedBuffer{}))
	require.NoError(t, err)
	require.NoError(t, m.Initialize())
	t.Cleanup(func() { os.RemoveAll(m.Directory()) })

	assert.Equal(t, cfg.Name+"-logs", filepath.Base(m.Directory()))
	assert.Empty(t, m.GetConfig().Directory, "the configured value is left untouched")
	require.NoError(t, m.Shutdown())
}
