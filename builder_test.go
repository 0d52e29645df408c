package rotlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticProvider struct {
	enabled bool
	level   int
}

func (p staticProvider) LogEnabled() bool { return p.enabled }
func (p staticProvider) LogLevel() int    { return p.level }

func TestBuilder_Build(t *testing.T) {
	t.Run("successful build returns configured manager", func(t *testing.T) {
		tmpDir := t.TempDir()

		m, err := NewBuilder().
			Name("svc").
			Directory(tmpDir).
			LevelString("warning").
			MaxSizeMB(2).
			MaxFiles(7).
			EnableConsole(false).
			ConsoleTarget("stderr").
			ShutdownTimeoutMs(500).
			InterceptStdLog(false).
			Sanitize(true).
			HeartbeatIntervalS(30).
			Build()

		require.NoError(t, err, "Builder.Build() should not return an error on valid config")
		require.NotNil(t, m)
		assert.Equal(t, StateUninitialized, m.State(), "Build does not start the manager")

		cfg := m.GetConfig()
		assert.Equal(t, "svc", cfg.Name)
		assert.Equal(t, tmpDir, cfg.Directory)
		assert.Equal(t, int64(SeverityWarning), cfg.Level)
		assert.Equal(t, int64(2*1024*1024), cfg.MaxFileSize)
		assert.Equal(t, int64(7), cfg.MaxFiles)
		assert.False(t, cfg.EnableConsole)
		assert.Equal(t, "stderr", cfg.ConsoleTarget)
		assert.Equal(t, int64(500), cfg.ShutdownTimeoutMs)
		assert.False(t, cfg.InterceptStdLog)
		assert.True(t, cfg.Sanitize)
		assert.Equal(t, int64(30), cfg.HeartbeatIntervalS)
		assert.Equal(t, SeverityWarning, m.MinLevel())
	})

	t.Run("builder error accumulation", func(t *testing.T) {
		m, err := NewBuilder().
			LevelString("invalid-level-string").
			Directory("/some/dir").
			Build()

		require.Error(t, err, "Build should fail with an invalid level string")
		assert.Contains(t, err.Error(), "invalid level string")
		assert.Nil(t, m)
	})

	t.Run("validation error", func(t *testing.T) {
		m, err := NewBuilder().ConsoleTarget("printer").Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid console_target")
		assert.Nil(t, m)
	})

	t.Run("provider seeds level and file output", func(t *testing.T) {
		m, err := NewBuilder().
			Provider(staticProvider{enabled: false, level: 9}).
			Build()
		require.NoError(t, err)

		assert.Equal(t, SeverityFatal, m.MinLevel(), "level clamped to FATAL")
		assert.False(t, m.FileEnabled())
	})

	t.Run("options are passed through", func(t *testing.T) {
		console := &lockedBuffer{}
		m, err := NewBuilder().
			Directory(t.TempDir()).
			InterceptStdLog(false).
			Options(WithConsoleWriter(console)).
			Build()
		require.NoError(t, err)
		require.NoError(t, m.Initialize())

		m.Info("via builder")
		require.NoError(t, m.Shutdown())
		assert.Contains(t, console.String(), "via builder")
	})
}
