package resources

import (
	"fmt"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/logger"
	"dracor-mcp/internal/tools/adapters"
)

// ResourceRegistryFactory creates resource registry instances
type ResourceRegistryFactory interface {
	CreateRegistry() (ResourceRegistry, error)
}

// DefaultResourceRegistryFactory wires registries to the mark3labs adapter
type DefaultResourceRegistryFactory struct {
	config  *config.Config
	logger  *logger.Logger
	adapter adapters.LibraryAdapter
}

// NewRegistryFactory creates a new resource registry factory. The adapter
// is shared across registries so every entity lands on the same MCP server.
func NewRegistryFactory(cfg *config.Config, log *logger.Logger, adapter adapters.LibraryAdapter) ResourceRegistryFactory {
	return &DefaultResourceRegistryFactory{
		config:  cfg,
		logger:  log,
		adapter: adapter,
	}
}

// CreateRegistry builds a resource registry attached to the factory's adapter.
func (f *DefaultResourceRegistryFactory) CreateRegistry() (ResourceRegistry, error) {
	if f.adapter == nil {
		return nil, fmt.Errorf("no library adapter configured")
	}

	f.logger.Info("creating resource registry", "adapter", "mark3labs")
	return NewDefaultResourceRegistryWithAdapter(f.config, f.logger, f.adapter), nil
}
