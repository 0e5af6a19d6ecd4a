package prompts

import (
	"context"
	"testing"

	"dracor-mcp/internal/mcp"
)

func TestNew_PromptView(t *testing.T) {
	def := Definition{
		Name:        "analyze_play",
		Description: "Create a prompt for analyzing a specific play.",
		Arguments: []mcp.PromptArgument{
			{Name: "corpus_name", Description: "Identifier of the corpus", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]string) (mcp.PromptResult, error) {
			return mcp.PromptResult{Description: "prompt", Text: "analyze " + args["corpus_name"]}, nil
		},
	}

	prompt := New(def)

	if prompt.Name() != "analyze_play" {
		t.Errorf("Name() = %q, expected %q", prompt.Name(), "analyze_play")
	}
	if prompt.Description() != def.Description {
		t.Errorf("Description() = %q, expected the definition description", prompt.Description())
	}
	if len(prompt.Arguments()) != 1 || prompt.Arguments()[0].Name != "corpus_name" {
		t.Errorf("Arguments() = %v, expected the definition arguments", prompt.Arguments())
	}

	result, err := prompt.Handler().Handle(context.Background(), map[string]string{"corpus_name": "ger"})
	if err != nil {
		t.Fatalf("Handle() unexpected error: %v", err)
	}
	if result.Text != "analyze ger" {
		t.Errorf("Handle() text = %q, expected the rendered prompt", result.Text)
	}
}
