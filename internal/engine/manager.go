package engine

import (
	"fmt"
	"sync"

	"github.com/averycrespi/calculatte-mcp/pkg/calculus"
	"github.com/averycrespi/calculatte-mcp/pkg/types"

	"go.uber.org/zap"
)

var _ types.EngineProvider = &Manager{}

// Manager holds the engine shared by every tool call and swaps it on reconfiguration.
// Calls already running keep the engine they started with.
type Manager struct {
	base   calculus.Config
	engine *calculus.Engine
	logger *zap.Logger
	mu     sync.RWMutex
}

// NewManager creates a manager around an engine built from cfg
func NewManager(cfg calculus.Config, logger *zap.Logger) (*Manager, error) {
	e, err := calculus.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Manager{
		base:   e.Config(),
		engine: e,
		logger: logger,
	}, nil
}

// Engine returns the current engine
func (m *Manager) Engine() *calculus.Engine {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.engine
}

// Config returns the configuration of the current engine
func (m *Manager) Config() calculus.Config {
	return m.Engine().Config()
}

// Reconfigure applies opts on top of the current configuration and installs the result.
// The current engine is left in place when the new configuration is invalid.
func (m *Manager) Reconfigure(opts ...calculus.Option) (*calculus.Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := m.engine.With(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to reconfigure engine: %w", err)
	}

	m.engine = next
	m.logger.Info("Engine reconfigured", zap.Any("config", next.Config()))
	return next, nil
}

// Reset rebuilds the engine from the configuration the manager was created with and
// applies opts on top of it. The current engine is left in place when the result is invalid.
func (m *Manager) Reset(opts ...calculus.Option) (*calculus.Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := calculus.New(m.base, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to reset engine: %w", err)
	}

	m.engine = next
	m.logger.Info("Engine reset", zap.Any("config", next.Config()))
	return next, nil
}
