package dts

import (
	"context"
	"encoding/json"

	"dracor-mcp/internal/mcp"
	"dracor-mcp/internal/tools"
)

// Definitions returns the DTS tools backed by service.
func Definitions(service *Service) []tools.Definition {
	return []tools.Definition{
		{
			Name:         "dts_entrypoint",
			Description:  "Get DTS Entrypoint",
			Schema:       json.RawMessage(`{"type": "object", "properties": {}}`),
			Capabilities: []string{"dts"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				entrypoint, err := service.Entrypoint(ctx)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(entrypoint)
			},
		},
		{
			Name:        "get_corpus_via_dts",
			Description: "Get Information on a Corpus via the DTS API",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"corpus_name": {
						"type": "string",
						"description": "Identifier or URI of the corpus, e.g. ger or https://staging.dracor.org/id/ger"
					}
				},
				"required": ["corpus_name"]
			}`),
			Capabilities: []string{"dts"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				corpusName, err := params.RequireString("corpus_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.Corpus(ctx, corpusName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:        "get_play_via_dts",
			Description: "Get Information on a Play via the DTS API",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"play_uri": {
						"type": "string",
						"description": "Identifier/URI of the play, e.g. https://staging.dracor.org/id/ger000088"
					}
				},
				"required": ["play_uri"]
			}`),
			Capabilities: []string{"dts"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				playURI, err := params.RequireString("play_uri")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.Play(ctx, playURI)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:        "get_citable_units_via_dts",
			Description: "Get Information on a Citable Units via the DTS API",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"play_uri": {
						"type": "string",
						"description": "Identifier/URI of the play, e.g. https://staging.dracor.org/id/ger000088"
					},
					"ref": {
						"type": "string",
						"description": "Fragment identifier, e.g. of the first scene of the second act body/div[2]/div[1]"
					},
					"down": {
						"type": "string",
						"description": "Depth to which to retrieve nested citable units, e.g. one level deep 1, all -1",
						"default": "-1"
					}
				},
				"required": ["play_uri"]
			}`),
			Capabilities: []string{"dts"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				playURI, err := params.RequireString("play_uri")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.CitableUnits(ctx, playURI, params.String("ref"), params.String("down"))
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:        "get_plaintext_of_citable_unit_via_dts",
			Description: "Get the text of a Citable Unit",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"play_uri": {
						"type": "string",
						"description": "Identifier/URI of the play, e.g. https://staging.dracor.org/id/ger000088"
					},
					"ref": {
						"type": "string",
						"description": "Fragment identifier, e.g. of the first scene of the second act body/div[2]/div[1]"
					}
				},
				"required": ["play_uri", "ref"]
			}`),
			Capabilities: []string{"dts"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				playURI, err := params.RequireString("play_uri")
				if err != nil {
					return tools.ErrorResult(err)
				}
				ref, err := params.RequireString("ref")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.CitableUnitText(ctx, playURI, ref)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
	}
}
