package rotlog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all logger configuration values
type Config struct {
	// Basic settings
	Level     int64  `toml:"level"`     // Minimum severity, 0 (debug) to 4 (fatal)
	Name      string `toml:"name"`      // Application name, prefix of log file names
	Directory string `toml:"directory"` // Empty resolves an app-name-derived directory

	// Outputs
	EnableConsole bool   `toml:"enable_console"`
	ConsoleTarget string `toml:"console_target"` // "stdout" or "stderr"
	EnableFile    bool   `toml:"enable_file"`

	// Rotation and retention
	MaxFileSize int64 `toml:"max_file_size"` // Bytes per file before rotation (0=never rotate)
	MaxFiles    int64 `toml:"max_files"`     // *.log files kept in the directory (0=keep all)

	// Lifecycle
	ShutdownTimeoutMs  int64 `toml:"shutdown_timeout_ms"`  // Bounded wait for the worker on shutdown
	InterceptStdLog    bool  `toml:"intercept_stdlog"`     // Route the standard library log package into the pipeline
	Sanitize           bool  `toml:"sanitize"`             // Hex-encode non-printable characters in messages
	HeartbeatIntervalS int64 `toml:"heartbeat_interval_s"` // Periodic statistics event (0=disabled)

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	// Basic settings
	Level:     int64(SeverityDebug),
	Name:      "app",
	Directory: "",

	// Outputs
	EnableConsole: true,
	ConsoleTarget: "stdout",
	EnableFile:    true,

	// Rotation and retention
	MaxFileSize: defaultMaxFileSize,
	MaxFiles:    defaultMaxFiles,

	// Lifecycle
	ShutdownTimeoutMs:  int64(defaultShutdownTimeout.Milliseconds()),
	InterceptStdLog:    true,
	Sanitize:           false,
	HeartbeatIntervalS: 0,

	// Internal error handling
	InternalErrorsToStderr: true,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from the [log] table of a TOML file and returns a validated Config.
// A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("log.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, "log.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides keyed by toml name
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmt.Errorf("failed to apply overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Provider is a read-only source of the initial log settings
type Provider interface {
	LogEnabled() bool
	LogLevel() int
}

// ApplyProvider seeds the minimum level and file output from p.
// The level is clamped to the valid range.
func (c *Config) ApplyProvider(p Provider) {
	level := p.LogLevel()
	if level < int(SeverityDebug) {
		level = int(SeverityDebug)
	}
	if level > int(SeverityFatal) {
		level = int(SeverityFatal)
	}
	c.Level = int64(level)
	c.EnableFile = p.LogEnabled()
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case Severity:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmtErrorf("log name cannot be empty")
	}

	if strings.ContainsAny(c.Name, `/\`) {
		return fmtErrorf("log name cannot contain path separators: %s", c.Name)
	}

	if !Severity(c.Level).Valid() {
		return fmtErrorf("level must be between 0 (debug) and 4 (fatal): %d", c.Level)
	}

	if c.ConsoleTarget != "stdout" && c.ConsoleTarget != "stderr" {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget)
	}

	if c.MaxFileSize < 0 || c.MaxFiles < 0 {
		return fmtErrorf("size and count limits cannot be negative")
	}

	if c.ShutdownTimeoutMs <= 0 {
		return fmtErrorf("shutdown_timeout_ms must be positive: %d", c.ShutdownTimeoutMs)
	}

	if c.HeartbeatIntervalS < 0 {
		return fmtErrorf("heartbeat_interval_s cannot be negative: %d", c.HeartbeatIntervalS)
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
