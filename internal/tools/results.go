package tools

import (
	"dracor-mcp/internal/mcp"
)

// JSONResult marshals v into a successful tool result. A marshal failure
// comes back as a tool error result so the client sees it instead of the
// transport swallowing it.
func JSONResult(v any) (mcp.ToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolError(err), nil
	}
	return result, nil
}

// TextResult wraps raw text, e.g. TEI XML or plaintext, as a successful
// tool result.
func TextResult(text string) (mcp.ToolResult, error) {
	return mcp.NewToolResult(mcp.NewTextContent(text)), nil
}

// ErrorResult wraps err as a tool error result.
func ErrorResult(err error) (mcp.ToolResult, error) {
	return mcp.NewToolError(err), nil
}
