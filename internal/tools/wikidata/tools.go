package wikidata

import (
	"context"
	"encoding/json"

	"dracor-mcp/internal/mcp"
	"dracor-mcp/internal/tools"
)

var qidSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"qid": {
			"type": "string",
			"description": "Wikidata-ID / Q-Number, e.g. Q131412"
		}
	},
	"required": ["qid"]
}`)

// Definitions returns the Wikidata tools backed by service.
func Definitions(service *Service) []tools.Definition {
	return []tools.Definition{
		{
			Name:         "get_plays_with_characters_by_wikidata_id",
			Description:  "Get plays having a character identified by Wikidata ID",
			Schema:       qidSchema,
			Capabilities: []string{"wikidata"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				qid, err := params.RequireString("qid")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.PlaysWithCharacter(ctx, qid)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_author_info_from_wikidata",
			Description:  "Get information about an author from Wikidata",
			Schema:       qidSchema,
			Capabilities: []string{"wikidata"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				qid, err := params.RequireString("qid")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.AuthorInfo(ctx, qid)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:        "get_wikidata_mixnmatch",
			Description: "Wikidata Mix'n'Match DraCor endpoint",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"items_per_page": {
						"type": "integer",
						"description": "Number of items to retrieve in a batch",
						"default": 0
					},
					"page": {
						"type": "integer",
						"description": "Number of the result page to retrieve in a batch request",
						"default": 0
					}
				}
			}`),
			Capabilities: []string{"wikidata"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.Mixnmatch(ctx,
					params.Int("items_per_page", 0),
					params.Int("page", 0))
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
	}
}
