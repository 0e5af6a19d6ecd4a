package adapters

import (
	"context"

	"dracor-mcp/internal/mcp"
)

// LibraryAdapter abstracts the underlying MCP library implementation.
// The registries forward their entities through an adapter so the
// business logic never touches the library API directly.
type LibraryAdapter interface {
	// Tool management
	RegisterTool(tool mcp.Tool) error
	UnregisterTool(name string) error
	GetTool(name string) (mcp.Tool, error)
	ListTools() []string

	// Resource management
	RegisterResource(resource mcp.Resource) error
	RegisterResourceTemplate(template mcp.ResourceTemplate) error
	UnregisterResource(uri string) error
	GetResource(uri string) (mcp.Resource, error)
	ListResources() []string

	// Prompt management
	RegisterPrompt(prompt mcp.Prompt) error
	ListPrompts() []string

	// Lifecycle management
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool

	// Health and status
	Health() AdapterHealth
}

// AdapterHealth is the snapshot an adapter reports about itself.
// Details carries implementation specifics such as the transport in use.
type AdapterHealth struct {
	Status        string            `json:"status"`
	Library       string            `json:"library"`
	Version       string            `json:"version"`
	ToolCount     int               `json:"tool_count"`
	ResourceCount int               `json:"resource_count"`
	PromptCount   int               `json:"prompt_count"`
	LastCheck     string            `json:"last_check"`
	Errors        []string          `json:"errors,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}
