package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"dracor-mcp/internal/mcp"
)

// HandlerFunc adapts a plain function to the mcp.ToolHandler interface
type HandlerFunc func(ctx context.Context, params json.RawMessage) (mcp.ToolResult, error)

// Handle implements mcp.ToolHandler
func (f HandlerFunc) Handle(ctx context.Context, params json.RawMessage) (mcp.ToolResult, error) {
	return f(ctx, params)
}

// Definition declares a single MCP tool: its name, wire schema and the
// handler implementing it. Tool packages expose their surface as a slice
// of definitions which the registration layer turns into factories.
type Definition struct {
	Name         string
	Description  string
	Schema       json.RawMessage
	Capabilities []string
	Handler      HandlerFunc
}

// definitionTool implements mcp.Tool for a Definition
type definitionTool struct {
	def Definition
}

func (t *definitionTool) Name() string {
	return t.def.Name
}

func (t *definitionTool) Description() string {
	return t.def.Description
}

func (t *definitionTool) Parameters() json.RawMessage {
	return t.def.Schema
}

func (t *definitionTool) Handler() mcp.ToolHandler {
	return t.def.Handler
}

// DefinitionFactory implements ToolFactory for a static tool definition
type DefinitionFactory struct {
	def          Definition
	version      string
	requirements map[string]string
}

// NewDefinitionFactory creates a factory producing the tool described by def
func NewDefinitionFactory(def Definition, version string, requirements map[string]string) *DefinitionFactory {
	return &DefinitionFactory{
		def:          def,
		version:      version,
		requirements: requirements,
	}
}

func (f *DefinitionFactory) Name() string {
	return f.def.Name
}

func (f *DefinitionFactory) Description() string {
	return f.def.Description
}

func (f *DefinitionFactory) Version() string {
	return f.version
}

func (f *DefinitionFactory) Capabilities() []string {
	return f.def.Capabilities
}

func (f *DefinitionFactory) Requirements() map[string]string {
	return f.requirements
}

func (f *DefinitionFactory) Create(ctx context.Context, config ToolConfig) (mcp.Tool, error) {
	if !config.Enabled {
		return nil, fmt.Errorf("tool %s is disabled in configuration", f.def.Name)
	}

	if f.def.Handler == nil {
		return nil, fmt.Errorf("tool %s has no handler", f.def.Name)
	}

	return &definitionTool{def: f.def}, nil
}

func (f *DefinitionFactory) Validate(config ToolConfig) error {
	if config.Timeout < 0 {
		return fmt.Errorf("invalid timeout value: %d (must be non-negative)", config.Timeout)
	}

	return nil
}
