package rotlog

// Builder provides a fluent API for building managers.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg  *Config
	opts []Option
	err  error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new, not yet initialized Manager with the specified configuration.
func (b *Builder) Build() (*Manager, error) {
	if b.err != nil {
		return nil, b.err
	}
	return NewManager(b.cfg, b.opts...)
}

// Level sets the minimum severity.
func (b *Builder) Level(sev Severity) *Builder {
	b.cfg.Level = int64(sev)
	return b
}

// LevelString sets the minimum severity from a name or digit.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	sev, err := ParseSeverity(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = int64(sev)
	return b
}

// Name sets the application name used in file names.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Directory sets the log directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// MaxFileSize sets the rotation threshold in bytes.
func (b *Builder) MaxFileSize(size int64) *Builder {
	b.cfg.MaxFileSize = size
	return b
}

// MaxSizeMB sets the rotation threshold in MiB. Convenience.
func (b *Builder) MaxSizeMB(size int64) *Builder {
	b.cfg.MaxFileSize = size * 1024 * 1024
	return b
}

// MaxFiles sets how many log files retention keeps.
func (b *Builder) MaxFiles(n int64) *Builder {
	b.cfg.MaxFiles = n
	return b
}

// EnableConsole enables mirroring logs to the console.
func (b *Builder) EnableConsole(enable bool) *Builder {
	b.cfg.EnableConsole = enable
	return b
}

// ConsoleTarget selects "stdout" or "stderr".
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b
}

// EnableFile enables file output.
func (b *Builder) EnableFile(enable bool) *Builder {
	b.cfg.EnableFile = enable
	return b
}

// ShutdownTimeoutMs sets the bounded wait for the worker on shutdown.
func (b *Builder) ShutdownTimeoutMs(ms int64) *Builder {
	b.cfg.ShutdownTimeoutMs = ms
	return b
}

// InterceptStdLog routes the standard library log package into the manager.
func (b *Builder) InterceptStdLog(enable bool) *Builder {
	b.cfg.InterceptStdLog = enable
	return b
}

// Sanitize enables message sanitizing.
func (b *Builder) Sanitize(enable bool) *Builder {
	b.cfg.Sanitize = enable
	return b
}

// HeartbeatIntervalS sets the heartbeat interval, 0 disables it.
func (b *Builder) HeartbeatIntervalS(interval int64) *Builder {
	b.cfg.HeartbeatIntervalS = interval
	return b
}

// Provider seeds level and file output from p.
func (b *Builder) Provider(p Provider) *Builder {
	b.cfg.ApplyProvider(p)
	return b
}

// Options appends manager options.
func (b *Builder) Options(opts ...Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// Example usage:
// m, err := rotlog.NewBuilder().
//
//	Name("server").
//	Directory("/var/log/server").
//	LevelString("info").
//	MaxSizeMB(10).
//	Build()
//
// if err == nil && m.Initialize() == nil {
//
//	 defer m.Shutdown()
//	 m.Info("Logger initialized successfully")
//
// }
