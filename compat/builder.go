package compat

import (
	"fmt"

	"github.com/lixenwraith/rotlog"
)

// Builder creates gnet and fasthttp adapters sharing one manager.
// It can use an existing *rotlog.Manager or create and start one from a *rotlog.Config.
type Builder struct {
	m      *rotlog.Manager
	logCfg *rotlog.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithManager specifies an existing manager to use for the adapters.
// If this is set WithConfig is ignored.
func (b *Builder) WithManager(m *rotlog.Manager) *Builder {
	if m == nil {
		b.err = fmt.Errorf("rotlog/compat: provided manager cannot be nil")
		return b
	}
	b.m = m
	return b
}

// WithConfig provides a configuration for a new manager.
// This is used only if an existing manager is NOT provided via WithManager.
// If neither is used, a manager with the default configuration is created.
func (b *Builder) WithConfig(cfg *rotlog.Config) *Builder {
	b.logCfg = cfg
	return b
}

// getManager resolves the manager to be used, creating and initializing one if necessary
func (b *Builder) getManager() (*rotlog.Manager, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.m != nil {
		return b.m, nil
	}

	cfg := b.logCfg
	if cfg == nil {
		cfg = rotlog.DefaultConfig()
	}

	m, err := rotlog.NewManager(cfg)
	if err != nil {
		return nil, err
	}
	if err := m.Initialize(); err != nil {
		return nil, err
	}

	// Cache the newly created manager for subsequent builds with this builder
	b.m = m
	return m, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet() (*GnetAdapter, error) {
	m, err := b.getManager()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(m), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	m, err := b.getManager()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(m, opts...), nil
}

// GetManager returns the underlying manager, creating it if needed
func (b *Builder) GetManager() (*rotlog.Manager, error) {
	return b.getManager()
}

// --- Example Usage ---
//
//	m, err := rotlog.NewBuilder().Name("server").LevelString("info").Build()
//	if err != nil { /* handle error */ }
//	if err := m.Initialize(); err != nil { /* handle error */ }
//	defer m.Shutdown()
//
//	builder := compat.NewBuilder().WithManager(m)
//	gnetLogger, _ := builder.BuildGnet()
//	fasthttpLogger, _ := builder.BuildFastHTTP()
//
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	server := &fasthttp.Server{
//		Handler: handler,
//		Logger:  fasthttpLogger,
//	}
//	go server.ListenAndServe(":8080")
