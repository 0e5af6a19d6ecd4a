package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/logger"
)

type mockTool struct {
	name        string
	description string
	parameters  json.RawMessage
}

func (t *mockTool) Name() string                { return t.name }
func (t *mockTool) Description() string         { return t.description }
func (t *mockTool) Parameters() json.RawMessage { return t.parameters }
func (t *mockTool) Handler() ToolHandler        { return &mockToolHandler{} }

type mockToolHandler struct{}

func (h *mockToolHandler) Handle(ctx context.Context, params json.RawMessage) (ToolResult, error) {
	return NewToolResult(NewTextContent("ok")), nil
}

type mockResource struct {
	uri string
}

func (r *mockResource) URI() string              { return r.uri }
func (r *mockResource) Name() string             { return "corpora" }
func (r *mockResource) Description() string      { return "all corpora" }
func (r *mockResource) MimeType() string         { return "application/json" }
func (r *mockResource) Handler() ResourceHandler { return &mockResourceHandler{} }

type mockResourceHandler struct{}

func (h *mockResourceHandler) Read(ctx context.Context, uri string) (ResourceContent, error) {
	return NewResourceContent("application/json", NewTextContent("{}")), nil
}

type mockTemplate struct{}

func (t *mockTemplate) URITemplate() string      { return "corpora://{corpus_name}" }
func (t *mockTemplate) Name() string             { return "corpus" }
func (t *mockTemplate) Description() string      { return "single corpus" }
func (t *mockTemplate) MimeType() string         { return "application/json" }
func (t *mockTemplate) Handler() ResourceHandler { return &mockResourceHandler{} }

type mockPrompt struct {
	name string
}

func (p *mockPrompt) Name() string        { return p.name }
func (p *mockPrompt) Description() string { return "analysis prompt" }
func (p *mockPrompt) Arguments() []PromptArgument {
	return []PromptArgument{
		{Name: "corpus_name", Description: "corpus identifier", Required: true},
	}
}
func (p *mockPrompt) Handler() PromptHandler { return &mockPromptHandler{} }

type mockPromptHandler struct{}

func (h *mockPromptHandler) Handle(ctx context.Context, args map[string]string) (PromptResult, error) {
	return PromptResult{Description: "prompt", Text: "analyze " + args["corpus_name"]}, nil
}

func newTestServer(t *testing.T) MCPServer {
	t.Helper()
	log, err := logger.NewDefault()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	cfg := &config.Config{
		MCP: config.MCPConfig{
			Name:      "DraCor API v1",
			Transport: config.TransportStdio,
			HTTPAddr:  "127.0.0.1:9000",
			MaxTools:  128,
		},
	}
	return NewServer(Implementation{Name: "dracor-mcp", Version: "1.0.0"}, cfg, log)
}

func TestNewServer(t *testing.T) {
	srv := newTestServer(t)

	impl := srv.GetImplementation()
	if impl.Name != "dracor-mcp" {
		t.Errorf("GetImplementation() name = %q, expected %q", impl.Name, "dracor-mcp")
	}
	if impl.Version != "1.0.0" {
		t.Errorf("GetImplementation() version = %q, expected %q", impl.Version, "1.0.0")
	}
}

func TestServer_StartAndStop(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	if err := srv.AddTool(&mockTool{name: "get_corpora", description: "list corpora"}); err != nil {
		t.Fatalf("AddTool() unexpected error: %v", err)
	}
	if err := srv.AddResource(&mockResource{uri: "corpora://"}); err != nil {
		t.Fatalf("AddResource() unexpected error: %v", err)
	}
	if err := srv.AddResourceTemplate(&mockTemplate{}); err != nil {
		t.Fatalf("AddResourceTemplate() unexpected error: %v", err)
	}
	if err := srv.AddPrompt(&mockPrompt{name: "analyze_play"}); err != nil {
		t.Fatalf("AddPrompt() unexpected error: %v", err)
	}

	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}

	if err := srv.Start(ctx); err == nil {
		t.Error("Start() expected error for second start but got none")
	}

	if err := srv.Stop(ctx); err != nil {
		t.Fatalf("Stop() unexpected error: %v", err)
	}

	if err := srv.Stop(ctx); err != nil {
		t.Errorf("Stop() on stopped server unexpected error: %v", err)
	}
}

func TestServer_AddToolAfterStart(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	defer srv.Stop(ctx)

	if err := srv.AddTool(&mockTool{name: "get_corpus", description: "single corpus"}); err != nil {
		t.Errorf("AddTool() after start unexpected error: %v", err)
	}
}

func TestServer_ServeWithoutStart(t *testing.T) {
	srv := newTestServer(t)

	if err := srv.Serve(context.Background()); err == nil {
		t.Error("Serve() expected error before Start but got none")
	}
}

func TestToolOptions(t *testing.T) {
	tests := []struct {
		name       string
		parameters string
		expected   int
	}{
		{
			name:       "no parameters",
			parameters: "",
			expected:   1,
		},
		{
			name: "typed properties",
			parameters: `{
				"type": "object",
				"properties": {
					"corpus_name": {"type": "string", "description": "corpus identifier"},
					"items_per_page": {"type": "integer", "description": "batch size"},
					"include_metrics": {"type": "boolean"},
					"corpus_metadata": {"type": "object"}
				},
				"required": ["corpus_name"]
			}`,
			expected: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := &mockTool{name: "test", description: "test tool"}
			if tt.parameters != "" {
				tool.parameters = json.RawMessage(tt.parameters)
			}

			options, err := toolOptions(tool)
			if err != nil {
				t.Fatalf("toolOptions() unexpected error: %v", err)
			}
			if len(options) != tt.expected {
				t.Errorf("toolOptions() returned %d options, expected %d", len(options), tt.expected)
			}
		})
	}
}

func TestToolOptions_InvalidSchema(t *testing.T) {
	tool := &mockTool{
		name:       "broken",
		parameters: json.RawMessage("not json"),
	}

	if _, err := toolOptions(tool); err == nil {
		t.Fatal("toolOptions() expected error for invalid schema but got none")
	}
}
