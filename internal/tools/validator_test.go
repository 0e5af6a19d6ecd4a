package tools

import (
	"encoding/json"
	"strings"
	"testing"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/logger"
)

func newTestValidator() *ToolValidator {
	cfg := &config.Config{}
	log, _ := logger.NewDefault()
	return NewToolValidator(cfg, log)
}

func TestToolValidator_ValidateName(t *testing.T) {
	validator := newTestValidator()

	tests := []struct {
		name      string
		toolName  string
		wantError bool
	}{
		{"snake case", "get_corpora", false},
		{"trailing digits", "get_play2", false},
		{"single letter", "q", false},
		{"max length", strings.Repeat("a", 64), false},
		{"empty", "", true},
		{"over max length", strings.Repeat("a", 65), true},
		{"uppercase", "GetCorpora", true},
		{"hyphen", "get-corpora", true},
		{"space", "get corpora", true},
		{"leading digit", "2get_corpora", true},
		{"leading underscore", "_get_corpora", true},
		{"punctuation", "get_corpora!", true},
		{"reserved health", "health", true},
		{"reserved tools", "tools", true},
		{"reserved prompts", "prompts", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateName(tt.toolName)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateName(%q) error = %v, wantError %v", tt.toolName, err, tt.wantError)
			}
		})
	}
}

func TestToolValidator_ValidateFactory(t *testing.T) {
	validator := newTestValidator()

	valid := &mockToolFactory{
		name:         "get_corpus_contents",
		description:  "List all plays of a corpus",
		version:      "1.0.0",
		capabilities: []string{"corpus_catalog"},
		requirements: map[string]string{"dracor_api": "v1"},
	}
	if err := validator.ValidateFactory(valid); err != nil {
		t.Fatalf("valid factory rejected: %v", err)
	}

	cases := []struct {
		name    string
		factory *mockToolFactory
	}{
		{
			"bad name",
			&mockToolFactory{
				name:         "Get-Corpora",
				description:  "List corpora",
				version:      "1.0.0",
				capabilities: []string{"corpus_catalog"},
			},
		},
		{
			"empty description",
			&mockToolFactory{
				name:         "get_corpora",
				version:      "1.0.0",
				capabilities: []string{"corpus_catalog"},
			},
		},
		{
			"overlong description",
			&mockToolFactory{
				name:         "get_corpora",
				description:  strings.Repeat("a", 501),
				version:      "1.0.0",
				capabilities: []string{"corpus_catalog"},
			},
		},
		{
			"empty version",
			&mockToolFactory{
				name:         "get_corpora",
				description:  "List corpora",
				capabilities: []string{"corpus_catalog"},
			},
		},
		{
			"non-semver version",
			&mockToolFactory{
				name:         "get_corpora",
				description:  "List corpora",
				version:      "v1",
				capabilities: []string{"corpus_catalog"},
			},
		},
		{
			"no capabilities",
			&mockToolFactory{
				name:        "get_corpora",
				description: "List corpora",
				version:     "1.0.0",
			},
		},
		{
			"empty capability entry",
			&mockToolFactory{
				name:         "get_corpora",
				description:  "List corpora",
				version:      "1.0.0",
				capabilities: []string{"corpus_catalog", ""},
			},
		},
		{
			"empty requirement key",
			&mockToolFactory{
				name:         "get_corpora",
				description:  "List corpora",
				version:      "1.0.0",
				capabilities: []string{"corpus_catalog"},
				requirements: map[string]string{"": "v1"},
			},
		},
		{
			"overlong requirement value",
			&mockToolFactory{
				name:         "get_corpora",
				description:  "List corpora",
				version:      "1.0.0",
				capabilities: []string{"corpus_catalog"},
				requirements: map[string]string{"dracor_api": strings.Repeat("a", 257)},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validator.ValidateFactory(tc.factory); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestToolValidator_ValidateFactory_CollectsAllErrors(t *testing.T) {
	validator := newTestValidator()

	broken := &mockToolFactory{
		name:    "Bad Name",
		version: "one",
	}

	err := validator.ValidateFactory(broken)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	errs, ok := err.(ToolValidationErrors)
	if !ok {
		t.Fatalf("expected ToolValidationErrors, got %T", err)
	}

	// Name pattern, missing description, bad version and missing
	// capabilities must all be reported in one pass.
	if len(errs) < 4 {
		t.Errorf("expected at least 4 errors, got %d: %v", len(errs), errs)
	}
}

func TestToolValidator_ValidateTool(t *testing.T) {
	validator := newTestValidator()

	playSchema := json.RawMessage(`{
		"type": "object",
		"properties": {
			"corpus_name": {"type": "string"},
			"play_name": {"type": "string"}
		},
		"required": ["corpus_name", "play_name"]
	}`)

	valid := &mockTool{
		name:        "get_play_metadata",
		description: "Get metadata of a single play",
		parameters:  playSchema,
		handler:     &mockToolHandler{},
	}
	if err := validator.ValidateTool(valid); err != nil {
		t.Fatalf("valid tool rejected: %v", err)
	}

	if err := validator.ValidateTool(nil); err == nil {
		t.Error("expected error for nil tool, got nil")
	}

	cases := []struct {
		name string
		tool *mockTool
	}{
		{
			"bad name",
			&mockTool{
				name:        "get play metadata",
				description: "Get metadata of a single play",
				parameters:  playSchema,
				handler:     &mockToolHandler{},
			},
		},
		{
			"empty description",
			&mockTool{
				name:       "get_play_metadata",
				parameters: playSchema,
				handler:    &mockToolHandler{},
			},
		},
		{
			"broken schema",
			&mockTool{
				name:        "get_play_metadata",
				description: "Get metadata of a single play",
				parameters:  json.RawMessage(`{not json`),
				handler:     &mockToolHandler{},
			},
		},
		{
			"nil handler",
			&mockTool{
				name:        "get_play_metadata",
				description: "Get metadata of a single play",
				parameters:  playSchema,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validator.ValidateTool(tc.tool); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestToolValidator_ValidateJSONSchema(t *testing.T) {
	validator := newTestValidator()

	tests := []struct {
		name      string
		schema    string
		wantError bool
	}{
		{
			"object with required properties",
			`{"type": "object", "properties": {"corpus_name": {"type": "string"}}, "required": ["corpus_name"]}`,
			false,
		},
		{
			"array property with items",
			`{"type": "object", "properties": {"qids": {"type": "array", "items": {"type": "string"}}}}`,
			false,
		},
		{
			"no top-level type",
			`{"properties": {"page": {"type": "integer"}}}`,
			false,
		},
		{
			"empty object",
			`{}`,
			false,
		},
		{
			"absent schema",
			``,
			false,
		},
		{
			"not JSON",
			`{not json`,
			true,
		},
		{
			"top-level string type",
			`{"type": "string"}`,
			true,
		},
		{
			"top-level array type",
			`{"type": "array", "items": {"type": "string"}}`,
			true,
		},
		{
			"unknown type keyword",
			`{"type": "object", "properties": {"ref": {"type": "citation"}}}`,
			true,
		},
		{
			"numeric type",
			`{"type": "object", "properties": {"ref": {"type": 7}}}`,
			true,
		},
		{
			"properties not an object",
			`{"type": "object", "properties": "corpus_name"}`,
			true,
		},
		{
			"property schema not an object",
			`{"type": "object", "properties": {"corpus_name": "string"}}`,
			true,
		},
		{
			"required not an array",
			`{"type": "object", "properties": {"corpus_name": {"type": "string"}}, "required": "corpus_name"}`,
			true,
		},
		{
			"required entry not a string",
			`{"type": "object", "properties": {"corpus_name": {"type": "string"}}, "required": [7]}`,
			true,
		},
		{
			"required names undeclared property",
			`{"type": "object", "properties": {"corpus_name": {"type": "string"}}, "required": ["play_name"]}`,
			true,
		},
		{
			"items not an object",
			`{"type": "object", "properties": {"qids": {"type": "array", "items": "string"}}}`,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.validateJSONSchema(json.RawMessage(tt.schema))
			if (err != nil) != tt.wantError {
				t.Errorf("validateJSONSchema() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestToolValidator_ValidateToolConfig(t *testing.T) {
	validator := newTestValidator()

	tests := []struct {
		name      string
		config    ToolConfig
		wantError bool
	}{
		{"zero value", ToolConfig{}, false},
		{"default shape", ToolConfig{Enabled: true, Config: map[string]interface{}{}, Timeout: 30}, false},
		{"max timeout", ToolConfig{Enabled: true, Timeout: 3600}, false},
		{"negative timeout", ToolConfig{Enabled: true, Timeout: -1}, true},
		{"timeout over the cap", ToolConfig{Enabled: true, Timeout: 3601}, true},
		{"nil config value allowed", ToolConfig{Enabled: true, Config: map[string]interface{}{"cache": nil}}, false},
		{"empty config key", ToolConfig{Enabled: true, Config: map[string]interface{}{"": "x"}}, true},
		{"overlong config key", ToolConfig{Enabled: true, Config: map[string]interface{}{strings.Repeat("k", 65): "x"}}, true},
		{"overlong config value", ToolConfig{Enabled: true, Config: map[string]interface{}{"blob": strings.Repeat("v", 1025)}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateToolConfig(tt.config)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateToolConfig() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestToolValidationErrors(t *testing.T) {
	var errs ToolValidationErrors

	if errs.HasErrors() {
		t.Error("empty slice reported errors")
	}
	if errs.Error() != "" {
		t.Errorf("empty slice rendered %q", errs.Error())
	}

	errs.Add("name", "Bad Name", "must be lowercase snake_case starting with a letter")

	if !errs.HasErrors() {
		t.Error("expected errors after adding one")
	}
	single := "validation error in field 'name' (value: 'Bad Name'): must be lowercase snake_case starting with a letter"
	if errs.Error() != single {
		t.Errorf("single error rendered %q", errs.Error())
	}

	errs.Add("version", "one", "version must follow semantic versioning (e.g., 1.0.0)")

	rendered := errs.Error()
	if !strings.HasPrefix(rendered, "2 validation errors: ") {
		t.Errorf("expected count prefix, got %q", rendered)
	}
	if !strings.Contains(rendered, "field 'name'") || !strings.Contains(rendered, "field 'version'") {
		t.Errorf("expected both errors in %q", rendered)
	}
	if !strings.Contains(rendered, "; ") {
		t.Errorf("expected errors joined with semicolons in %q", rendered)
	}
}

func TestToolValidationError(t *testing.T) {
	err := ToolValidationError{
		Field:   "parameters",
		Value:   "",
		Message: "top-level schema type must be object",
	}

	expected := "validation error in field 'parameters' (value: ''): top-level schema type must be object"
	if err.Error() != expected {
		t.Errorf("rendered %q, expected %q", err.Error(), expected)
	}
}
