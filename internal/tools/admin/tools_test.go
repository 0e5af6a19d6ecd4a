package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"dracor-mcp/internal/tools"
)

func findDefinition(t *testing.T, definitions []tools.Definition, name string) tools.Definition {
	t.Helper()
	for _, def := range definitions {
		if def.Name == name {
			return def
		}
	}
	t.Fatalf("Definition %q not found", name)
	return tools.Definition{}
}

func TestDefinitions_Catalog(t *testing.T) {
	service := newTestService(t, http.NewServeMux())
	definitions := Definitions(service)

	expected := []string{
		"validate_xml_file",
		"add_corpus",
		"load_corpus_from_repository",
		"add_play_to_corpus",
		"remove_play_from_corpus",
		"remove_corpus",
	}
	if len(definitions) != len(expected) {
		t.Fatalf("Definitions() returned %d tools, expected %d", len(definitions), len(expected))
	}
	for i, name := range expected {
		if definitions[i].Name != name {
			t.Errorf("Definitions()[%d] = %q, expected %q", i, definitions[i].Name, name)
		}
	}
}

func TestDefinitions_Complete(t *testing.T) {
	service := newTestService(t, http.NewServeMux())

	for _, def := range Definitions(service) {
		if def.Description == "" {
			t.Errorf("Definition %q has no description", def.Name)
		}
		if def.Handler == nil {
			t.Errorf("Definition %q has no handler", def.Name)
		}
		if !json.Valid(def.Schema) {
			t.Errorf("Definition %q has invalid input schema", def.Name)
		}
	}
}

func TestValidateXMLHandler(t *testing.T) {
	service := newTestService(t, http.NewServeMux())

	def := findDefinition(t, Definitions(service), "validate_xml_file")
	args, _ := json.Marshal(map[string]string{
		"file_name":    "emilia.xml",
		"file_content": teiFixture,
	})
	result, err := def.Handler(context.Background(), args)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if result.IsError() {
		t.Fatalf("Handler returned tool error: %v", result.GetError())
	}

	var decoded ValidationResult
	if err := json.Unmarshal([]byte(result.GetContent()[0].GetText()), &decoded); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	if !decoded.Valid {
		t.Errorf("Handler valid = false for a well-formed TEI document: %v", decoded.ErrorLog)
	}
}

func TestAddCorpusHandler(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/corpora", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"name": "test"}`))
	})
	service := newTestService(t, mux)

	def := findDefinition(t, Definitions(service), "add_corpus")
	raw := json.RawMessage(`{"corpus_metadata": {"name": "test", "title": "Test Drama Corpus"}}`)
	result, err := def.Handler(context.Background(), raw)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if result.IsError() {
		t.Fatalf("Handler returned tool error: %v", result.GetError())
	}

	var decoded Outcome
	if err := json.Unmarshal([]byte(result.GetContent()[0].GetText()), &decoded); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	if decoded.Status != "Success" || decoded.StatusCode != http.StatusCreated {
		t.Errorf("Handler outcome = %+v, expected a created corpus", decoded)
	}
}

func TestAddCorpusHandler_MissingMetadata(t *testing.T) {
	service := newTestService(t, http.NewServeMux())

	def := findDefinition(t, Definitions(service), "add_corpus")
	result, err := def.Handler(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if !result.IsError() {
		t.Fatal("Handler accepted a request without corpus metadata")
	}
	if !strings.Contains(result.GetError().Error(), "corpus_metadata is required") {
		t.Errorf("Handler error = %v, expected missing metadata message", result.GetError())
	}
}

func TestRemoveCorpusHandler(t *testing.T) {
	var gotMethod string
	mux := http.NewServeMux()
	mux.HandleFunc("/corpora/test", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Write([]byte(`{}`))
	})
	service := newTestService(t, mux)

	def := findDefinition(t, Definitions(service), "remove_corpus")
	result, err := def.Handler(context.Background(), json.RawMessage(`{"corpus_name": "test"}`))
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if result.IsError() {
		t.Fatalf("Handler returned tool error: %v", result.GetError())
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("Handler used method %s, expected DELETE", gotMethod)
	}
}
