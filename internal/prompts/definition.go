// Package prompts carries the prompt templates guiding dramatic text
// analysis with the DraCor tools.
package prompts

import (
	"context"
	"fmt"

	"dracor-mcp/internal/mcp"
)

// HandlerFunc renders a prompt from the client-supplied arguments.
type HandlerFunc func(ctx context.Context, args map[string]string) (mcp.PromptResult, error)

// Handle implements mcp.PromptHandler
func (f HandlerFunc) Handle(ctx context.Context, args map[string]string) (mcp.PromptResult, error) {
	return f(ctx, args)
}

// Definition declares a single prompt template: its name, the arguments
// the client can fill and the handler rendering the text.
type Definition struct {
	Name        string
	Description string
	Arguments   []mcp.PromptArgument
	Handler     HandlerFunc
}

// definitionPrompt implements mcp.Prompt for a Definition
type definitionPrompt struct {
	def Definition
}

// New wraps a definition into the prompt interface the adapter registers.
func New(def Definition) mcp.Prompt {
	return &definitionPrompt{def: def}
}

func (p *definitionPrompt) Name() string                    { return p.def.Name }
func (p *definitionPrompt) Description() string             { return p.def.Description }
func (p *definitionPrompt) Arguments() []mcp.PromptArgument { return p.def.Arguments }
func (p *definitionPrompt) Handler() mcp.PromptHandler      { return p.def.Handler }

func requireArg(args map[string]string, name string) (string, error) {
	value, ok := args[name]
	if !ok || value == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return value, nil
}
