package adapters

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/logger"
	"dracor-mcp/internal/mcp"
)

// Mark3LabsAdapter bridges the registries to the mark3labs/mcp-go based
// server. All entity registration funnels through the shared mcp.MCPServer
// so tools, resources and prompts end up on one protocol surface.
type Mark3LabsAdapter struct {
	logger    *logger.Logger
	config    *config.Config
	server    mcp.MCPServer
	tools     map[string]mcp.Tool
	resources map[string]mcp.Resource
	prompts   map[string]mcp.Prompt
	mu        sync.RWMutex
	running   bool
	lastCheck time.Time
}

func NewMark3LabsAdapter(cfg *config.Config, log *logger.Logger, server mcp.MCPServer) *Mark3LabsAdapter {
	return &Mark3LabsAdapter{
		logger:    log,
		config:    cfg,
		server:    server,
		tools:     make(map[string]mcp.Tool),
		resources: make(map[string]mcp.Resource),
		prompts:   make(map[string]mcp.Prompt),
		lastCheck: time.Now(),
	}
}

func (a *Mark3LabsAdapter) RegisterTool(tool mcp.Tool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	name := tool.Name()
	a.logger.Debug("mirroring tool onto MCP server", "name", name)

	if _, exists := a.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}

	if err := a.server.AddTool(tool); err != nil {
		return fmt.Errorf("adding tool %q to MCP server: %w", name, err)
	}

	a.tools[name] = tool
	return nil
}

func (a *Mark3LabsAdapter) UnregisterTool(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.tools[name]; !exists {
		return fmt.Errorf("tool %q not registered", name)
	}

	a.logger.Info("dropping tool from adapter", "name", name)
	delete(a.tools, name)

	// mark3labs/mcp-go has no tool removal; the entry disappears when
	// the server instance is rebuilt on the next start

	return nil
}

func (a *Mark3LabsAdapter) GetTool(name string) (mcp.Tool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	tool, exists := a.tools[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not registered", name)
	}

	return tool, nil
}

func (a *Mark3LabsAdapter) ListTools() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, 0, len(a.tools))
	for name := range a.tools {
		names = append(names, name)
	}
	return names
}

func (a *Mark3LabsAdapter) RegisterResource(resource mcp.Resource) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	uri := resource.URI()
	a.logger.Debug("mirroring resource onto MCP server", "uri", uri, "name", resource.Name())

	if _, exists := a.resources[uri]; exists {
		return fmt.Errorf("resource %q already registered", uri)
	}

	if err := a.server.AddResource(resource); err != nil {
		return fmt.Errorf("adding resource %q to MCP server: %w", uri, err)
	}

	a.resources[uri] = resource
	return nil
}

// RegisterResourceTemplate passes a template straight through. Templates
// carry no concrete URI, so the adapter keeps no bookkeeping entry for them.
func (a *Mark3LabsAdapter) RegisterResourceTemplate(template mcp.ResourceTemplate) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.logger.Debug("mirroring resource template onto MCP server",
		"uri_template", template.URITemplate(),
		"name", template.Name(),
	)

	if err := a.server.AddResourceTemplate(template); err != nil {
		return fmt.Errorf("adding resource template %q to MCP server: %w", template.URITemplate(), err)
	}

	return nil
}

func (a *Mark3LabsAdapter) UnregisterResource(uri string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.resources[uri]; !exists {
		return fmt.Errorf("resource %q not registered", uri)
	}

	a.logger.Info("dropping resource from adapter", "uri", uri)
	delete(a.resources, uri)

	// mark3labs/mcp-go has no resource removal; see UnregisterTool

	return nil
}

func (a *Mark3LabsAdapter) GetResource(uri string) (mcp.Resource, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	resource, exists := a.resources[uri]
	if !exists {
		return nil, fmt.Errorf("resource %q not registered", uri)
	}

	return resource, nil
}

func (a *Mark3LabsAdapter) ListResources() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	uris := make([]string, 0, len(a.resources))
	for uri := range a.resources {
		uris = append(uris, uri)
	}
	return uris
}

func (a *Mark3LabsAdapter) RegisterPrompt(prompt mcp.Prompt) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	name := prompt.Name()
	a.logger.Debug("mirroring prompt onto MCP server", "name", name)

	if _, exists := a.prompts[name]; exists {
		return fmt.Errorf("prompt %q already registered", name)
	}

	if err := a.server.AddPrompt(prompt); err != nil {
		return fmt.Errorf("adding prompt %q to MCP server: %w", name, err)
	}

	a.prompts[name] = prompt
	return nil
}

func (a *Mark3LabsAdapter) ListPrompts() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, 0, len(a.prompts))
	for name := range a.prompts {
		names = append(names, name)
	}
	return names
}

func (a *Mark3LabsAdapter) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running {
		return fmt.Errorf("adapter already started")
	}

	if err := a.server.Start(ctx); err != nil {
		return fmt.Errorf("starting MCP server: %w", err)
	}

	a.running = true
	a.lastCheck = time.Now()

	a.logger.Info("mark3labs adapter started")
	return nil
}

func (a *Mark3LabsAdapter) Stop(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.running {
		return nil
	}

	if err := a.server.Stop(ctx); err != nil {
		a.logger.Error("failed to stop MCP server", "error", err)
		return err
	}

	a.running = false

	a.logger.Info("mark3labs adapter stopped")
	return nil
}

func (a *Mark3LabsAdapter) IsRunning() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.running
}

func (a *Mark3LabsAdapter) Health() AdapterHealth {
	a.mu.RLock()
	defer a.mu.RUnlock()

	status := "healthy"
	if !a.running {
		status = "stopped"
	}

	return AdapterHealth{
		Status:        status,
		Library:       "mark3labs",
		Version:       "0.44.0",
		ToolCount:     len(a.tools),
		ResourceCount: len(a.resources),
		PromptCount:   len(a.prompts),
		LastCheck:     a.lastCheck.Format(time.RFC3339),
		Errors:        []string{},
		Details: map[string]string{
			"implementation": "mark3labs/mcp-go",
			"transport":      a.config.MCP.Transport,
		},
	}
}
