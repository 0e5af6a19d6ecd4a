package search

import (
	"context"
	"encoding/json"

	"dracor-mcp/internal/mcp"
	"dracor-mcp/internal/tools"
)

// Definitions returns the corpus filter tools backed by service.
func Definitions(service *Service) []tools.Definition {
	return []tools.Definition{
		{
			Name:        "get_plays_in_corpus_by_author_helper",
			Description: "Filter plays in a corpus by author",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"corpus_name": {
						"type": "string",
						"description": "Identifier of a corpus, e.g. ger, rus, als"
					},
					"author_name": {
						"type": "string",
						"description": "Name of an author, e.g. Goethe, Shakespeare. Matching is case sensitive"
					}
				},
				"required": ["corpus_name", "author_name"]
			}`),
			Capabilities: []string{"corpus_search"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				corpusName, err := params.RequireString("corpus_name")
				if err != nil {
					return tools.ErrorResult(err)
				}
				authorName, err := params.RequireString("author_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.ByAuthor(ctx, corpusName, authorName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:        "get_plays_in_corpus_by_title_helper",
			Description: "Filter plays in a corpus by (main) title",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"corpus_name": {
						"type": "string",
						"description": "Identifier of a corpus, e.g. ger, rus, als"
					},
					"title": {
						"type": "string",
						"description": "Title or part of the title of a play. Matching ignores case"
					}
				},
				"required": ["corpus_name", "title"]
			}`),
			Capabilities: []string{"corpus_search"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				corpusName, err := params.RequireString("corpus_name")
				if err != nil {
					return tools.ErrorResult(err)
				}
				title, err := params.RequireString("title")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.ByTitle(ctx, corpusName, title)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:        "get_plays_in_corpus_by_year_normalized",
			Description: "Get plays in a corpus by year normalized",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"corpus_name": {
						"type": "string",
						"description": "Identifier of a corpus, e.g. ger, rus, als"
					},
					"year_start": {
						"type": "integer",
						"description": "Start year of the inclusive range"
					},
					"year_end": {
						"type": "integer",
						"description": "End year of the inclusive range"
					}
				},
				"required": ["corpus_name", "year_start", "year_end"]
			}`),
			Capabilities: []string{"corpus_search"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				corpusName, err := params.RequireString("corpus_name")
				if err != nil {
					return tools.ErrorResult(err)
				}
				yearStart, err := params.RequireInt("year_start")
				if err != nil {
					return tools.ErrorResult(err)
				}
				yearEnd, err := params.RequireInt("year_end")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.ByYearNormalized(ctx, corpusName, yearStart, yearEnd)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
	}
}
