package mcp

import (
	"encoding/json"
	"fmt"
)

// TextContent carries text payloads: JSON documents, TEI XML, plaintext.
// Everything the DraCor API serves is text of some kind.
type TextContent struct {
	text string
}

func NewTextContent(text string) Content {
	return &TextContent{text: text}
}

func (c *TextContent) Type() string {
	return "text"
}

func (c *TextContent) GetText() string {
	return c.text
}

type toolResult struct {
	content []Content
	error   error
	isError bool
}

func NewToolResult(content ...Content) ToolResult {
	return &toolResult{content: content, isError: false}
}

func NewToolError(err error) ToolResult {
	return &toolResult{error: err, isError: true}
}

// NewToolResultJSON marshals v and wraps it as text content. Tool
// responses are JSON documents unless the endpoint serves raw text.
func NewToolResultJSON(v any) (ToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return NewToolResult(NewTextContent(string(data))), nil
}

func (r *toolResult) IsError() bool {
	return r.isError
}

func (r *toolResult) GetContent() []Content {
	return r.content
}

func (r *toolResult) GetError() error {
	return r.error
}

type resourceContent struct {
	content  []Content
	mimeType string
}

func NewResourceContent(mimeType string, content ...Content) ResourceContent {
	return &resourceContent{
		content:  content,
		mimeType: mimeType,
	}
}

// NewResourceContentJSON marshals v into an application/json resource.
func NewResourceContentJSON(v any) (ResourceContent, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource content: %w", err)
	}
	return NewResourceContent("application/json", NewTextContent(string(data))), nil
}

func (r *resourceContent) GetContent() []Content {
	return r.content
}

func (r *resourceContent) GetMimeType() string {
	return r.mimeType
}
