package mcp

import (
	"context"
	"encoding/json"
)

// MCPServer is the protocol surface the rest of the application talks to.
// Tools, resources, templates and prompts can be added before Start; Serve
// blocks on the configured transport until the context ends.
type MCPServer interface {
	// Server lifecycle
	Start(ctx context.Context) error
	Serve(ctx context.Context) error
	Stop(ctx context.Context) error

	// Tool, resource and prompt management
	AddTool(tool Tool) error
	AddResource(resource Resource) error
	AddResourceTemplate(template ResourceTemplate) error
	AddPrompt(prompt Prompt) error

	// Server information
	GetImplementation() Implementation
}

type Tool interface {
	Name() string
	Description() string
	Parameters() json.RawMessage // JSON schema
	Handler() ToolHandler
}

type ToolHandler interface {
	Handle(ctx context.Context, params json.RawMessage) (ToolResult, error)
}

type ToolResult interface {
	IsError() bool
	GetContent() []Content
	GetError() error
}

type Resource interface {
	URI() string
	Name() string
	Description() string
	MimeType() string
	Handler() ResourceHandler
}

// ResourceTemplate is a parameterized resource addressed by an RFC 6570
// URI template, e.g. corpora://{corpus_name}.
type ResourceTemplate interface {
	URITemplate() string
	Name() string
	Description() string
	MimeType() string
	Handler() ResourceHandler
}

type ResourceHandler interface {
	Read(ctx context.Context, uri string) (ResourceContent, error)
}

type ResourceContent interface {
	GetContent() []Content
	GetMimeType() string
}

type Prompt interface {
	Name() string
	Description() string
	Arguments() []PromptArgument
	Handler() PromptHandler
}

type PromptArgument struct {
	Name        string
	Description string
	Required    bool
}

type PromptHandler interface {
	Handle(ctx context.Context, args map[string]string) (PromptResult, error)
}

// PromptResult is one rendered prompt: a description and the user message
// text handed to the client.
type PromptResult struct {
	Description string
	Text        string
}

type Content interface {
	Type() string
	GetText() string
}

// Implementation contains server metadata
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
