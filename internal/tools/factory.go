package tools

import (
	"fmt"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/logger"
	"dracor-mcp/internal/tools/adapters"
)

// RegistryFactory creates tool registry instances backed by a library adapter
type RegistryFactory interface {
	CreateRegistry() (ToolRegistry, error)
}

// DefaultRegistryFactory wires registries to the mark3labs adapter
type DefaultRegistryFactory struct {
	config  *config.Config
	logger  *logger.Logger
	adapter adapters.LibraryAdapter
}

// NewRegistryFactory creates a new registry factory instance. The adapter
// is shared across registries so every entity lands on the same MCP server.
func NewRegistryFactory(cfg *config.Config, log *logger.Logger, adapter adapters.LibraryAdapter) RegistryFactory {
	return &DefaultRegistryFactory{
		config:  cfg,
		logger:  log,
		adapter: adapter,
	}
}

// CreateRegistry builds a tool registry attached to the factory's adapter.
func (f *DefaultRegistryFactory) CreateRegistry() (ToolRegistry, error) {
	if f.adapter == nil {
		return nil, fmt.Errorf("no library adapter configured")
	}

	f.logger.Info("creating tool registry", "adapter", "mark3labs")
	return NewDefaultToolRegistryWithAdapter(f.config, f.logger, f.adapter), nil
}
