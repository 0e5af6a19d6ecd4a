package tools

import (
	"encoding/json"
	"testing"
)

func TestParseParams(t *testing.T) {
	params, err := ParseParams(json.RawMessage(`{"corpus_name": "ger", "page": 2}`))
	if err != nil {
		t.Fatalf("ParseParams() unexpected error: %v", err)
	}

	if !params.Has("corpus_name") {
		t.Error("Has(corpus_name) = false, expected true")
	}

	if params.Has("play_name") {
		t.Error("Has(play_name) = true, expected false")
	}
}

func TestParseParams_Empty(t *testing.T) {
	params, err := ParseParams(nil)
	if err != nil {
		t.Fatalf("ParseParams(nil) unexpected error: %v", err)
	}

	if len(params) != 0 {
		t.Errorf("ParseParams(nil) = %v, expected empty params", params)
	}
}

func TestParseParams_Invalid(t *testing.T) {
	_, err := ParseParams(json.RawMessage(`not json`))
	if err == nil {
		t.Fatal("ParseParams() expected error for invalid JSON but got none")
	}
}

func TestParams_String(t *testing.T) {
	params, err := ParseParams(json.RawMessage(`{"corpus_name": "ger", "page": 3}`))
	if err != nil {
		t.Fatalf("ParseParams() unexpected error: %v", err)
	}

	if got := params.String("corpus_name"); got != "ger" {
		t.Errorf("String(corpus_name) = %q, expected %q", got, "ger")
	}

	// numbers coerce to their string form
	if got := params.String("page"); got != "3" {
		t.Errorf("String(page) = %q, expected %q", got, "3")
	}

	if got := params.String("missing"); got != "" {
		t.Errorf("String(missing) = %q, expected empty", got)
	}
}

func TestParams_RequireString(t *testing.T) {
	params, err := ParseParams(json.RawMessage(`{"corpus_name": "ger", "play_name": ""}`))
	if err != nil {
		t.Fatalf("ParseParams() unexpected error: %v", err)
	}

	value, err := params.RequireString("corpus_name")
	if err != nil {
		t.Fatalf("RequireString(corpus_name) unexpected error: %v", err)
	}
	if value != "ger" {
		t.Errorf("RequireString(corpus_name) = %q, expected %q", value, "ger")
	}

	if _, err := params.RequireString("play_name"); err == nil {
		t.Error("RequireString(play_name) expected error for empty value but got none")
	}

	if _, err := params.RequireString("missing"); err == nil {
		t.Error("RequireString(missing) expected error but got none")
	}
}

func TestParams_Int(t *testing.T) {
	params, err := ParseParams(json.RawMessage(`{"page": 2, "items_per_page": "25", "title": "Hamlet"}`))
	if err != nil {
		t.Fatalf("ParseParams() unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		key      string
		fallback int
		expected int
	}{
		{"json number", "page", 1, 2},
		{"string number", "items_per_page", 0, 25},
		{"missing key uses fallback", "year", 7, 7},
		{"non-numeric uses fallback", "title", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := params.Int(tt.key, tt.fallback); got != tt.expected {
				t.Errorf("Int(%s) = %d, expected %d", tt.key, got, tt.expected)
			}
		})
	}
}

func TestParams_RequireInt(t *testing.T) {
	params, err := ParseParams(json.RawMessage(`{"year_start": 1770, "year_end": "1800", "title": "Hamlet"}`))
	if err != nil {
		t.Fatalf("ParseParams() unexpected error: %v", err)
	}

	value, err := params.RequireInt("year_start")
	if err != nil {
		t.Fatalf("RequireInt(year_start) unexpected error: %v", err)
	}
	if value != 1770 {
		t.Errorf("RequireInt(year_start) = %d, expected 1770", value)
	}

	value, err = params.RequireInt("year_end")
	if err != nil {
		t.Fatalf("RequireInt(year_end) unexpected error: %v", err)
	}
	if value != 1800 {
		t.Errorf("RequireInt(year_end) = %d, expected 1800 from string value", value)
	}

	if _, err := params.RequireInt("missing"); err == nil {
		t.Error("RequireInt(missing) expected error but got none")
	}

	if _, err := params.RequireInt("title"); err == nil {
		t.Error("RequireInt(title) expected error for non-numeric value but got none")
	}
}

func TestParams_Bool(t *testing.T) {
	params, err := ParseParams(json.RawMessage(`{"include_metrics": true, "as_string": "true", "title": "Hamlet"}`))
	if err != nil {
		t.Fatalf("ParseParams() unexpected error: %v", err)
	}

	if !params.Bool("include_metrics", false) {
		t.Error("Bool(include_metrics) = false, expected true")
	}

	if !params.Bool("as_string", false) {
		t.Error("Bool(as_string) = false, expected true")
	}

	if !params.Bool("missing", true) {
		t.Error("Bool(missing) = false, expected fallback true")
	}

	if params.Bool("title", false) {
		t.Error("Bool(title) = true, expected fallback false")
	}
}
