package main

import (
	"testing"
	"time"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/logger"
	"dracor-mcp/internal/server"
)

func newTestServer(t *testing.T) (*server.Server, *logger.Logger) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host: "localhost",
			Port: 0,
		},
		Logger: config.LoggerConfig{
			Service: "dracor-mcp",
			Version: "test",
		},
		MCP: config.MCPConfig{
			Name:      "DraCor API v1",
			Version:   "test",
			Transport: config.TransportStdio,
			HTTPAddr:  "127.0.0.1:9000",
			MaxTools:  config.DefaultMaxTools,
		},
		DraCor: config.DraCorConfig{
			BaseURL: "http://127.0.0.1:9999/api/v1",
			Timeout: 5 * time.Second,
		},
	}

	log, err := logger.NewDefault()
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	srv, err := server.New(cfg, log)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	return srv, log
}

func TestRegisterAllTools(t *testing.T) {
	srv, log := newTestServer(t)

	if err := registerAllTools(srv, log); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list := srv.ToolRegistry().List()
	if len(list) != 47 {
		t.Errorf("expected 47 registered tools, got %d", len(list))
	}

	names := make(map[string]bool, len(list))
	for _, info := range list {
		names[info.Name] = true
	}

	for _, name := range []string{
		"get_corpora",
		"get_play_metadata",
		"get_spoken_text",
		"get_plays_in_corpus_by_author_helper",
		"get_author_info_from_wikidata",
		"dts_entrypoint",
		"get_openapi_specification",
		"add_corpus",
	} {
		if !names[name] {
			t.Errorf("expected tool %s to be registered", name)
		}
	}
}

func TestToolNamesUnique(t *testing.T) {
	srv, _ := newTestServer(t)

	seen := make(map[string]string)
	for _, family := range toolFamilies(srv) {
		for _, def := range family.defs {
			if other, ok := seen[def.Name]; ok {
				t.Errorf("tool %s defined in both %s and %s", def.Name, other, family.name)
			}
			seen[def.Name] = family.name

			if def.Description == "" {
				t.Errorf("tool %s has no description", def.Name)
			}
			if def.Handler == nil {
				t.Errorf("tool %s has no handler", def.Name)
			}
			if len(def.Schema) == 0 {
				t.Errorf("tool %s has no schema", def.Name)
			}
		}
	}
}

func TestRegisterAllResources(t *testing.T) {
	srv, log := newTestServer(t)

	if err := registerAllResources(srv, log); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list := srv.ResourceRegistry().List()
	if len(list) != 2 {
		t.Fatalf("expected 2 registered resources, got %d", len(list))
	}

	uris := make(map[string]bool, len(list))
	for _, info := range list {
		uris[info.URI] = true
	}

	for _, uri := range []string{"corpora://", "registry://"} {
		if !uris[uri] {
			t.Errorf("expected resource %s to be registered", uri)
		}
	}
}

func TestRegisterAllPrompts(t *testing.T) {
	srv, log := newTestServer(t)

	if err := registerAllPrompts(srv, log); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := srv.Adapter().ListPrompts()
	if len(names) != 8 {
		t.Errorf("expected 8 registered prompts, got %d", len(names))
	}
}
