package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/logger"
)

// Server implements MCPServer on top of mark3labs/mcp-go.
type Server struct {
	impl         Implementation
	instructions string
	logger       *logger.Logger
	config       *config.Config
	mcpServer    *server.MCPServer
	tools        map[string]Tool
	resources    map[string]Resource
	templates    map[string]ResourceTemplate
	prompts      map[string]Prompt
	mu           sync.RWMutex
	running      bool
}

// Option configures a Server before it starts.
type Option func(*Server)

// WithInstructions sets the instructions text advertised to connecting
// clients during initialization.
func WithInstructions(instructions string) Option {
	return func(s *Server) {
		s.instructions = instructions
	}
}

// NewServer creates an unstarted server advertising the given identity
func NewServer(impl Implementation, cfg *config.Config, log *logger.Logger, opts ...Option) MCPServer {
	s := &Server{
		impl:      impl,
		logger:    log,
		config:    cfg,
		tools:     make(map[string]Tool),
		resources: make(map[string]Resource),
		templates: make(map[string]ResourceTemplate),
		prompts:   make(map[string]Prompt),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the mark3labs server and installs everything added so far.
// Tools, resources, templates and prompts added later are installed on the
// fly.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("mcp server already started")
	}

	options := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	}
	if s.instructions != "" {
		options = append(options, server.WithInstructions(s.instructions))
	}

	s.mcpServer = server.NewMCPServer(s.impl.Name, s.impl.Version, options...)

	for _, tool := range s.tools {
		if err := s.installTool(tool); err != nil {
			return fmt.Errorf("installing tool %s: %w", tool.Name(), err)
		}
	}
	for _, resource := range s.resources {
		s.installResource(resource)
	}
	for _, template := range s.templates {
		s.installResourceTemplate(template)
	}
	for _, prompt := range s.prompts {
		s.installPrompt(prompt)
	}

	s.running = true

	s.logger.Info("MCP server started",
		"name", s.impl.Name,
		"version", s.impl.Version,
		"transport", s.config.MCP.Transport,
		"tools", len(s.tools),
		"resources", len(s.resources),
		"resource_templates", len(s.templates),
		"prompts", len(s.prompts),
	)
	return nil
}

// Stop discards the mark3labs instance. A later Start rebuilds it from
// the recorded entities.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.mcpServer = nil
	s.running = false
	s.logger.Info("MCP server stopped")
	return nil
}

// AddTool records a tool and installs it right away when running
func (s *Server) AddTool(tool Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("exposing tool", "name", tool.Name())
	s.tools[tool.Name()] = tool

	if s.running && s.mcpServer != nil {
		return s.installTool(tool)
	}
	return nil
}

// AddResource records a resource and installs it right away when running
func (s *Server) AddResource(resource Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("exposing resource", "uri", resource.URI())
	s.resources[resource.URI()] = resource

	if s.running && s.mcpServer != nil {
		s.installResource(resource)
	}
	return nil
}

func (s *Server) AddResourceTemplate(template ResourceTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("exposing resource template", "uri_template", template.URITemplate())
	s.templates[template.URITemplate()] = template

	if s.running && s.mcpServer != nil {
		s.installResourceTemplate(template)
	}
	return nil
}

func (s *Server) AddPrompt(prompt Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("exposing prompt", "name", prompt.Name())
	s.prompts[prompt.Name()] = prompt

	if s.running && s.mcpServer != nil {
		s.installPrompt(prompt)
	}
	return nil
}

func (s *Server) GetImplementation() Implementation {
	return s.impl
}

// installTool translates a tool to its mark3labs form and registers it
// together with its bridged handler.
func (s *Server) installTool(tool Tool) error {
	options, err := toolOptions(tool)
	if err != nil {
		return err
	}

	s.mcpServer.AddTool(mcp.NewTool(tool.Name(), options...), s.bridgeToolHandler(tool.Handler()))
	return nil
}

// toolOptions translates a tool's JSON schema into mark3labs tool options.
// Property types map to the matching option constructor; unknown types
// fall back to string.
func toolOptions(tool Tool) ([]mcp.ToolOption, error) {
	options := []mcp.ToolOption{
		mcp.WithDescription(tool.Description()),
	}

	if tool.Parameters() == nil {
		return options, nil
	}

	var schema struct {
		Properties map[string]struct {
			Type        string `json:"type"`
			Description string `json:"description"`
		} `json:"properties"`
		Required []string `json:"required"`
	}
	if err := json.Unmarshal(tool.Parameters(), &schema); err != nil {
		return nil, fmt.Errorf("failed to parse tool parameters: %w", err)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := schema.Properties[name]

		var opts []mcp.PropertyOption
		if prop.Description != "" {
			opts = append(opts, mcp.Description(prop.Description))
		}
		if required[name] {
			opts = append(opts, mcp.Required())
		}

		switch prop.Type {
		case "integer", "number":
			options = append(options, mcp.WithNumber(name, opts...))
		case "boolean":
			options = append(options, mcp.WithBoolean(name, opts...))
		case "array":
			options = append(options, mcp.WithArray(name, opts...))
		case "object":
			options = append(options, mcp.WithObject(name, opts...))
		default:
			options = append(options, mcp.WithString(name, opts...))
		}
	}

	return options, nil
}

func (s *Server) installResource(resource Resource) {
	mcpResource := mcp.NewResource(resource.URI(), resource.Name(),
		mcp.WithResourceDescription(resource.Description()),
		mcp.WithMIMEType(resource.MimeType()),
	)
	s.mcpServer.AddResource(mcpResource, s.bridgeResourceHandler(resource.Handler()))
}

// installResourceTemplate registers a parameterized resource template.
// Template reads arrive through the same handler bridge as plain resources,
// with the expanded URI in the request.
func (s *Server) installResourceTemplate(template ResourceTemplate) {
	mcpTemplate := mcp.NewResourceTemplate(template.URITemplate(), template.Name(),
		mcp.WithTemplateDescription(template.Description()),
		mcp.WithTemplateMIMEType(template.MimeType()),
	)
	s.mcpServer.AddResourceTemplate(mcpTemplate, s.bridgeResourceHandler(template.Handler()))
}

func (s *Server) installPrompt(prompt Prompt) {
	options := []mcp.PromptOption{
		mcp.WithPromptDescription(prompt.Description()),
	}
	for _, arg := range prompt.Arguments() {
		argOptions := []mcp.ArgumentOption{
			mcp.ArgumentDescription(arg.Description),
		}
		if arg.Required {
			argOptions = append(argOptions, mcp.RequiredArgument())
		}
		options = append(options, mcp.WithArgument(arg.Name, argOptions...))
	}

	s.mcpServer.AddPrompt(mcp.NewPrompt(prompt.Name(), options...), s.bridgePromptHandler(prompt.Handler()))
}

// bridgeToolHandler wraps a ToolHandler in the callback signature the
// mark3labs server dispatches to. Handler errors become error results, not
// protocol errors, so the client sees them as tool output.
func (s *Server) bridgeToolHandler(handler ToolHandler) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.logger.Info("handling tool call", "name", request.Params.Name)

		var args json.RawMessage
		if arguments := request.GetArguments(); arguments != nil {
			raw, err := json.Marshal(arguments)
			if err != nil {
				s.logger.Error("tool arguments not serializable", "error", err)
				return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
			}
			args = raw
		}

		result, err := handler.Handle(ctx, args)
		if err != nil {
			s.logger.Error("tool call failed", "name", request.Params.Name, "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		if result.IsError() {
			msg := "tool execution failed"
			if resultErr := result.GetError(); resultErr != nil {
				msg = resultErr.Error()
			}
			s.logger.Error("tool returned error", "name", request.Params.Name, "error", msg)
			return mcp.NewToolResultError(msg), nil
		}

		contents := result.GetContent()
		if len(contents) == 0 {
			return mcp.NewToolResultText(""), nil
		}
		return mcp.NewToolResultText(contents[0].GetText()), nil
	}
}

// bridgeResourceHandler wraps a ResourceHandler in the mark3labs read
// callback signature.
func (s *Server) bridgeResourceHandler(handler ResourceHandler) func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		uri := request.Params.URI
		s.logger.Info("handling resource read", "uri", uri)

		content, err := handler.Read(ctx, uri)
		if err != nil {
			s.logger.Error("resource read failed", "uri", uri, "error", err)
			return nil, err
		}

		parts := content.GetContent()
		results := make([]mcp.ResourceContents, 0, len(parts))
		for _, part := range parts {
			results = append(results, mcp.TextResourceContents{
				URI:      uri,
				MIMEType: content.GetMimeType(),
				Text:     part.GetText(),
			})
		}

		// Clients expect at least one contents entry per read.
		if len(results) == 0 {
			results = append(results, mcp.TextResourceContents{
				URI:      uri,
				MIMEType: content.GetMimeType(),
			})
		}

		return results, nil
	}
}

// bridgePromptHandler wraps a PromptHandler in the mark3labs prompt
// callback signature. Rendered prompts come back as a single user message.
func (s *Server) bridgePromptHandler(handler PromptHandler) func(context.Context, mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		s.logger.Info("rendering prompt", "name", request.Params.Name)

		result, err := handler.Handle(ctx, request.Params.Arguments)
		if err != nil {
			s.logger.Error("prompt rendering failed", "name", request.Params.Name, "error", err)
			return nil, err
		}

		return mcp.NewGetPromptResult(result.Description, []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: result.Text,
				},
			},
		}), nil
	}
}

// Serve blocks serving MCP requests on the configured transport until the
// context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.RLock()
	mcpServer := s.mcpServer
	running := s.running
	transport := s.config.MCP.Transport
	addr := s.config.MCP.HTTPAddr
	s.mu.RUnlock()

	if !running || mcpServer == nil {
		return fmt.Errorf("mcp server not started")
	}

	switch transport {
	case config.TransportHTTP:
		return serveStreamableHTTP(ctx, mcpServer, addr, s.logger)
	default:
		return serveStdio(ctx, mcpServer, s.logger)
	}
}
