package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/logger"
	"dracor-mcp/internal/mcp"
)

type stubServer struct {
	addToolErr     error
	addResourceErr error
	addPromptErr   error
	running        bool
}

func (s *stubServer) Start(ctx context.Context) error {
	s.running = true
	return nil
}

func (s *stubServer) Serve(ctx context.Context) error { return nil }

func (s *stubServer) Stop(ctx context.Context) error {
	s.running = false
	return nil
}

func (s *stubServer) AddTool(tool mcp.Tool) error                         { return s.addToolErr }
func (s *stubServer) AddResource(resource mcp.Resource) error             { return s.addResourceErr }
func (s *stubServer) AddResourceTemplate(tmpl mcp.ResourceTemplate) error { return nil }
func (s *stubServer) AddPrompt(prompt mcp.Prompt) error                   { return s.addPromptErr }

func (s *stubServer) GetImplementation() mcp.Implementation {
	return mcp.Implementation{Name: "stub", Version: "0.0.0"}
}

type stubTool struct{ name string }

func (t stubTool) Name() string                { return t.name }
func (t stubTool) Description() string         { return "stub tool" }
func (t stubTool) Parameters() json.RawMessage { return nil }
func (t stubTool) Handler() mcp.ToolHandler    { return nil }

type stubResource struct{ uri string }

func (r stubResource) URI() string                  { return r.uri }
func (r stubResource) Name() string                 { return "stub resource" }
func (r stubResource) Description() string          { return "stub resource" }
func (r stubResource) MimeType() string             { return "application/json" }
func (r stubResource) Handler() mcp.ResourceHandler { return nil }

type stubPrompt struct{ name string }

func (p stubPrompt) Name() string                    { return p.name }
func (p stubPrompt) Description() string             { return "stub prompt" }
func (p stubPrompt) Arguments() []mcp.PromptArgument { return nil }
func (p stubPrompt) Handler() mcp.PromptHandler      { return nil }

func newTestAdapter(t *testing.T, server mcp.MCPServer) *Mark3LabsAdapter {
	t.Helper()

	log, err := logger.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault() error = %v", err)
	}

	cfg := &config.Config{MCP: config.MCPConfig{Transport: config.TransportStdio}}
	return NewMark3LabsAdapter(cfg, log, server)
}

func TestRegisterTool_RejectsDuplicate(t *testing.T) {
	adapter := newTestAdapter(t, &stubServer{})

	if err := adapter.RegisterTool(stubTool{name: "get_corpora"}); err != nil {
		t.Fatalf("RegisterTool() error = %v", err)
	}

	err := adapter.RegisterTool(stubTool{name: "get_corpora"})
	if err == nil {
		t.Fatal("RegisterTool() accepted a duplicate name")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Errorf("RegisterTool() error = %v, want already registered", err)
	}

	if got := len(adapter.ListTools()); got != 1 {
		t.Errorf("ListTools() length = %d, want 1", got)
	}
}

func TestRegisterTool_ServerFailureNotTracked(t *testing.T) {
	boom := errors.New("add rejected")
	adapter := newTestAdapter(t, &stubServer{addToolErr: boom})

	err := adapter.RegisterTool(stubTool{name: "get_corpora"})
	if !errors.Is(err, boom) {
		t.Fatalf("RegisterTool() error = %v, want wrapped %v", err, boom)
	}

	if got := len(adapter.ListTools()); got != 0 {
		t.Errorf("ListTools() length = %d, want 0 after failed registration", got)
	}
}

func TestUnregisterTool(t *testing.T) {
	adapter := newTestAdapter(t, &stubServer{})

	if err := adapter.RegisterTool(stubTool{name: "get_play_metadata"}); err != nil {
		t.Fatalf("RegisterTool() error = %v", err)
	}

	if err := adapter.UnregisterTool("get_play_metadata"); err != nil {
		t.Fatalf("UnregisterTool() error = %v", err)
	}

	if _, err := adapter.GetTool("get_play_metadata"); err == nil {
		t.Error("GetTool() found a tool after unregistration")
	}

	if err := adapter.UnregisterTool("get_play_metadata"); err == nil {
		t.Error("UnregisterTool() succeeded for an unknown tool")
	}
}

func TestRegisterResource_RejectsDuplicate(t *testing.T) {
	adapter := newTestAdapter(t, &stubServer{})

	if err := adapter.RegisterResource(stubResource{uri: "corpora://"}); err != nil {
		t.Fatalf("RegisterResource() error = %v", err)
	}

	if err := adapter.RegisterResource(stubResource{uri: "corpora://"}); err == nil {
		t.Fatal("RegisterResource() accepted a duplicate URI")
	}

	if got := len(adapter.ListResources()); got != 1 {
		t.Errorf("ListResources() length = %d, want 1", got)
	}
}

func TestStartStop(t *testing.T) {
	server := &stubServer{}
	adapter := newTestAdapter(t, server)
	ctx := context.Background()

	if err := adapter.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !server.running {
		t.Error("Start() did not start the MCP server")
	}
	if err := adapter.Start(ctx); err == nil {
		t.Error("Start() succeeded twice")
	}

	if err := adapter.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if server.running {
		t.Error("Stop() did not stop the MCP server")
	}
	if adapter.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}
}

func TestAdapterHealth(t *testing.T) {
	adapter := newTestAdapter(t, &stubServer{})

	health := adapter.Health()
	if health.Status != "stopped" {
		t.Errorf("Health().Status = %q, want %q before start", health.Status, "stopped")
	}

	if err := adapter.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := adapter.RegisterTool(stubTool{name: "get_corpora"}); err != nil {
		t.Fatalf("RegisterTool() error = %v", err)
	}
	if err := adapter.RegisterPrompt(stubPrompt{name: "character_analysis"}); err != nil {
		t.Fatalf("RegisterPrompt() error = %v", err)
	}

	health = adapter.Health()
	if health.Status != "healthy" {
		t.Errorf("Health().Status = %q, want %q", health.Status, "healthy")
	}
	if health.Library != "mark3labs" {
		t.Errorf("Health().Library = %q, want %q", health.Library, "mark3labs")
	}
	if health.ToolCount != 1 || health.PromptCount != 1 {
		t.Errorf("Health() counts = %d tools, %d prompts, want 1 and 1", health.ToolCount, health.PromptCount)
	}
	if got := health.Details["transport"]; got != config.TransportStdio {
		t.Errorf("Health().Details[transport] = %q, want %q", got, config.TransportStdio)
	}
}
