package plays

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"dracor-mcp/internal/tools"
)

func findDefinition(t *testing.T, defs []tools.Definition, name string) tools.Definition {
	t.Helper()
	for _, def := range defs {
		if def.Name == name {
			return def
		}
	}
	t.Fatalf("Definition %q not found", name)
	return tools.Definition{}
}

func TestDefinitions_Catalog(t *testing.T) {
	defs := Definitions(newTestService(t, http.NewServeMux()))

	expected := []string{
		"get_play_metadata",
		"get_play_metrics",
		"get_play_tei",
		"get_play_plaintext",
		"get_play_characters",
		"get_play_network",
		"get_play_character_relations",
		"get_spoken_text",
		"get_spoken_text_by_characters",
		"get_spoken_text_of_single_character",
		"get_stage_directions",
		"get_stage_directions_with_speakers",
		"get_links_to_playdata_helper",
	}

	if len(defs) != len(expected) {
		t.Fatalf("Definitions() returned %d tools, expected %d", len(defs), len(expected))
	}
	for i, name := range expected {
		if defs[i].Name != name {
			t.Errorf("Definitions()[%d] = %q, expected %q", i, defs[i].Name, name)
		}
	}
}

func TestDefinitions_Complete(t *testing.T) {
	for _, def := range Definitions(newTestService(t, http.NewServeMux())) {
		if def.Description == "" {
			t.Errorf("Definition %q has no description", def.Name)
		}
		if def.Handler == nil {
			t.Errorf("Definition %q has no handler", def.Name)
		}

		var schema map[string]interface{}
		if err := json.Unmarshal(def.Schema, &schema); err != nil {
			t.Errorf("Definition %q schema is not valid JSON: %v", def.Name, err)
		}
	}
}

func TestGetPlayTEIHandler_RawText(t *testing.T) {
	tei := `<?xml version="1.0"?><TEI xmlns="http://www.tei-c.org/ns/1.0"></TEI>`
	service := newTestService(t, playMux("/tei", tei))
	def := findDefinition(t, Definitions(service), "get_play_tei")

	raw := json.RawMessage(`{"corpus_name": "ger", "play_name": "lessing-emilia-galotti"}`)
	result, err := def.Handler(context.Background(), raw)
	if err != nil {
		t.Fatalf("Handler() unexpected error: %v", err)
	}
	if result.IsError() {
		t.Fatalf("Handler() returned tool error: %v", result.GetError())
	}

	content := result.GetContent()
	if len(content) != 1 {
		t.Fatalf("Expected single content item, got %d", len(content))
	}
	if content[0].GetText() != tei {
		t.Errorf("get_play_tei content = %q, expected raw XML without a JSON wrapper", content[0].GetText())
	}
}

func TestGetPlayMetadataHandler_MissingPlayName(t *testing.T) {
	service := newTestService(t, http.NewServeMux())
	def := findDefinition(t, Definitions(service), "get_play_metadata")

	result, err := def.Handler(context.Background(), json.RawMessage(`{"corpus_name": "ger"}`))
	if err != nil {
		t.Fatalf("Handler() unexpected error: %v", err)
	}
	if !result.IsError() {
		t.Fatal("Expected tool error for missing play_name, got success")
	}
	if !strings.Contains(result.GetError().Error(), "play_name is required") {
		t.Errorf("Error = %v, expected play_name is required", result.GetError())
	}
}

func TestGetSpokenTextHandler_FilterPassthrough(t *testing.T) {
	service := newTestService(t, playMux("/spoken-text", "text"))
	def := findDefinition(t, Definitions(service), "get_spoken_text")

	raw := json.RawMessage(`{"corpus_name": "ger", "play_name": "lessing-emilia-galotti", "gender": "FEMALE"}`)
	result, err := def.Handler(context.Background(), raw)
	if err != nil {
		t.Fatalf("Handler() unexpected error: %v", err)
	}
	if result.IsError() {
		t.Fatalf("Handler() returned tool error: %v", result.GetError())
	}

	var decoded map[string]string
	if err := json.Unmarshal([]byte(result.GetContent()[0].GetText()), &decoded); err != nil {
		t.Fatalf("Failed to decode result JSON: %v", err)
	}
	if decoded["text"] != "text" {
		t.Errorf("get_spoken_text text = %q, expected response body", decoded["text"])
	}
}

func TestGetSingleCharacterHandler_Unknown(t *testing.T) {
	service := newTestService(t, playMux("/spoken-text-by-character", byCharacterFixture))
	def := findDefinition(t, Definitions(service), "get_spoken_text_of_single_character")

	raw := json.RawMessage(`{"corpus_name": "ger", "play_name": "lessing-emilia-galotti", "character_id": "nathan"}`)
	result, err := def.Handler(context.Background(), raw)
	if err != nil {
		t.Fatalf("Handler() unexpected error: %v", err)
	}
	if !result.IsError() {
		t.Fatal("Expected tool error for unknown character, got success")
	}
	if !strings.Contains(result.GetError().Error(), "nathan") {
		t.Errorf("Error = %v, expected it to name the missing character", result.GetError())
	}
}
