package corpora

import (
	"context"
	"encoding/json"

	"dracor-mcp/internal/mcp"
	"dracor-mcp/internal/tools"
)

const (
	defaultContentsPerPage = 25
	defaultMetadataPerPage = 50
)

var corpusOnlySchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"corpus_name": {
			"type": "string",
			"description": "Identifier of a corpus, e.g. ger, rus, als"
		}
	},
	"required": ["corpus_name"]
}`)

func pagedSchema(defaultItems, defaultPage int) json.RawMessage {
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"corpus_name": map[string]interface{}{
				"type":        "string",
				"description": "Identifier of a corpus, e.g. ger, rus, als",
			},
			"items_per_page": map[string]interface{}{
				"type":        "integer",
				"description": "Number of items to retrieve in a batch",
				"default":     defaultItems,
			},
			"page": map[string]interface{}{
				"type":        "integer",
				"description": "Number of the result page to retrieve in a batch request",
				"default":     defaultPage,
			},
		},
		"required": []string{"corpus_name"},
	}
	raw, _ := json.Marshal(schema)
	return raw
}

// Definitions returns the corpus catalog tools backed by service.
func Definitions(service *Service) []tools.Definition {
	return []tools.Definition{
		{
			Name:         "get_api_info",
			Description:  "Get information on the DraCor API",
			Schema:       json.RawMessage(`{"type": "object", "properties": {}}`),
			Capabilities: []string{"corpus_catalog"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				result, err := service.APIInfo(ctx)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:        "get_corpora",
			Description: "List all corpora",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"include_metrics": {
						"type": "boolean",
						"description": "Include document and word count metrics per corpus",
						"default": true
					}
				}
			}`),
			Capabilities: []string{"corpus_catalog"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.Corpora(ctx, params.Bool("include_metrics", true))
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_corpus",
			Description:  "Get information on a single corpus",
			Schema:       corpusOnlySchema,
			Capabilities: []string{"corpus_catalog"},
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
			Name:         "get_corpus_metadata",
			Description:  "Get extended metadata of all plays in a corpus",
			Schema:       corpusOnlySchema,
			Capabilities: []string{"corpus_catalog"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				corpusName, err := params.RequireString("corpus_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.CorpusMetadata(ctx, corpusName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_corpus_contents_paged_helper",
			Description:  "Get corpus contents in batches",
			Schema:       pagedSchema(defaultContentsPerPage, 1),
			Capabilities: []string{"corpus_catalog"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				corpusName, err := params.RequireString("corpus_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.ContentsPaged(ctx, corpusName,
					params.Int("items_per_page", defaultContentsPerPage),
					params.Int("page", 1))
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_corpus_metadata_paged_helper",
			Description:  "Get metadata on all plays in a corpus in batches",
			Schema:       pagedSchema(defaultMetadataPerPage, 1),
			Capabilities: []string{"corpus_catalog"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				corpusName, err := params.RequireString("corpus_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.MetadataPaged(ctx, corpusName,
					params.Int("items_per_page", defaultMetadataPerPage),
					params.Int("page", 1))
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_minimal_data_of_plays_of_corpus_helper",
			Description:  "Get a list of plays with main title, identifiers, authors and normalized year in a corpus",
			Schema:       pagedSchema(0, 0),
			Capabilities: []string{"corpus_catalog"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				corpusName, err := params.RequireString("corpus_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.MinimalData(ctx, corpusName,
					params.Int("items_per_page", 0),
					params.Int("page", 0))
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_playnames_in_corpus_helper",
			Description:  "Get identifiers play_name in a corpus",
			Schema:       pagedSchema(0, 0),
			Capabilities: []string{"corpus_catalog"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				corpusName, err := params.RequireString("corpus_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.Playnames(ctx, corpusName,
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
