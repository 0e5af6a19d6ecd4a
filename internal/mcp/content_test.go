package mcp

import (
	"errors"
	"strings"
	"testing"
)

func TestNewTextContent(t *testing.T) {
	content := NewTextContent("hello")

	if content.Type() != "text" {
		t.Errorf("Type() = %q, expected %q", content.Type(), "text")
	}
	if content.GetText() != "hello" {
		t.Errorf("GetText() = %q, expected %q", content.GetText(), "hello")
	}
}

func TestNewToolResult(t *testing.T) {
	result := NewToolResult(NewTextContent("data"))

	if result.IsError() {
		t.Error("IsError() = true, expected false for successful result")
	}
	if result.GetError() != nil {
		t.Errorf("GetError() = %v, expected nil", result.GetError())
	}
	if len(result.GetContent()) != 1 {
		t.Fatalf("GetContent() returned %d items, expected 1", len(result.GetContent()))
	}
	if result.GetContent()[0].GetText() != "data" {
		t.Errorf("GetContent() text = %q, expected %q", result.GetContent()[0].GetText(), "data")
	}
}

func TestNewToolError(t *testing.T) {
	testErr := errors.New("request failed")
	result := NewToolError(testErr)

	if !result.IsError() {
		t.Error("IsError() = false, expected true for error result")
	}
	if result.GetError() != testErr {
		t.Errorf("GetError() = %v, expected %v", result.GetError(), testErr)
	}
}

func TestNewToolResultJSON(t *testing.T) {
	result, err := NewToolResultJSON(map[string]string{"corpus": "ger"})
	if err != nil {
		t.Fatalf("NewToolResultJSON() unexpected error: %v", err)
	}

	text := result.GetContent()[0].GetText()
	if !strings.Contains(text, `"corpus":"ger"`) {
		t.Errorf("NewToolResultJSON() text = %q, expected encoded corpus field", text)
	}
}

func TestNewToolResultJSON_UnsupportedValue(t *testing.T) {
	_, err := NewToolResultJSON(make(chan int))
	if err == nil {
		t.Fatal("NewToolResultJSON() expected error for unsupported value but got none")
	}
}

func TestNewResourceContent(t *testing.T) {
	content := NewResourceContent("application/json", NewTextContent("{}"))

	if content.GetMimeType() != "application/json" {
		t.Errorf("GetMimeType() = %q, expected %q", content.GetMimeType(), "application/json")
	}
	if len(content.GetContent()) != 1 {
		t.Fatalf("GetContent() returned %d items, expected 1", len(content.GetContent()))
	}
}

func TestNewResourceContentJSON(t *testing.T) {
	content, err := NewResourceContentJSON([]string{"ger", "rus"})
	if err != nil {
		t.Fatalf("NewResourceContentJSON() unexpected error: %v", err)
	}

	if content.GetMimeType() != "application/json" {
		t.Errorf("GetMimeType() = %q, expected %q", content.GetMimeType(), "application/json")
	}
	if content.GetContent()[0].GetText() != `["ger","rus"]` {
		t.Errorf("GetContent() text = %q, expected JSON array", content.GetContent()[0].GetText())
	}
}
