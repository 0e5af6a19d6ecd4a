package dts

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
		"dts_entrypoint",
		"get_corpus_via_dts",
		"get_play_via_dts",
		"get_citable_units_via_dts",
		"get_plaintext_of_citable_unit_via_dts",
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

func TestCitableUnitsHandler_DepthDefault(t *testing.T) {
	var gotDown string
	mux := http.NewServeMux()
	mux.HandleFunc("/dts/navigation", func(w http.ResponseWriter, r *http.Request) {
		gotDown = r.URL.Query().Get("down")
		w.Write([]byte(navigationFixture))
	})
	service := newTestService(t, mux)

	def := findDefinition(t, Definitions(service), "get_citable_units_via_dts")
	result, err := def.Handler(context.Background(), json.RawMessage(`{"play_uri": "https://staging.dracor.org/id/ger000088"}`))
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if result.IsError() {
		t.Fatalf("Handler returned tool error: %v", result.GetError())
	}
	if gotDown != "-1" {
		t.Errorf("Handler sent down = %q, expected full depth by default", gotDown)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal([]byte(result.GetContent()[0].GetText()), &decoded); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	if _, ok := decoded["citeable_units"]; !ok {
		t.Error("Handler result missing citeable_units key")
	}
}

func TestCitableUnitTextHandler_MissingRef(t *testing.T) {
	service := newTestService(t, http.NewServeMux())

	def := findDefinition(t, Definitions(service), "get_plaintext_of_citable_unit_via_dts")
	result, err := def.Handler(context.Background(), json.RawMessage(`{"play_uri": "https://staging.dracor.org/id/ger000088"}`))
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if !result.IsError() {
		t.Fatal("Handler accepted a request without a ref")
	}
	if !strings.Contains(result.GetError().Error(), "ref is required") {
		t.Errorf("Handler error = %v, expected missing ref message", result.GetError())
	}
}

func TestEntrypointHandler_RawDocument(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dts", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"dtsVersion": "1-alpha"}`))
	})
	service := newTestService(t, mux)

	def := findDefinition(t, Definitions(service), "dts_entrypoint")
	result, err := def.Handler(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if result.IsError() {
		t.Fatalf("Handler returned tool error: %v", result.GetError())
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal([]byte(result.GetContent()[0].GetText()), &decoded); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	if _, ok := decoded["dtsVersion"]; !ok {
		t.Error("Handler result missing dtsVersion, expected entrypoint document without an envelope")
	}
}
