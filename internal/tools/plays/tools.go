package plays

import (
	"context"
	"encoding/json"

	"dracor-mcp/internal/mcp"
	"dracor-mcp/internal/tools"
)

var playSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"corpus_name": {
			"type": "string",
			"description": "Identifier of a corpus, e.g. ger, rus, als"
		},
		"play_name": {
			"type": "string",
			"description": "Identifier of a play in a corpus, e.g. lessing-emilia-galotti, gogol-revizor"
		}
	},
	"required": ["corpus_name", "play_name"]
}`)

var spokenTextSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"corpus_name": {
			"type": "string",
			"description": "Identifier of a corpus, e.g. ger, rus, als"
		},
		"play_name": {
			"type": "string",
			"description": "Identifier of a play in a corpus, e.g. lessing-emilia-galotti, gogol-revizor"
		},
		"gender": {
			"type": "string",
			"description": "Filter spoken text by gender, values are FEMALE, MALE, UNKNOWN"
		},
		"relation": {
			"type": "string",
			"description": "Filter spoken text by relation, e.g. siblings, friends, spouses, parent_of_active, lover_of_passive"
		},
		"role": {
			"type": "string",
			"description": "Filter spoken text by role of a character"
		}
	},
	"required": ["corpus_name", "play_name"]
}`)

var characterSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"corpus_name": {
			"type": "string",
			"description": "Identifier of a corpus, e.g. ger, rus, als"
		},
		"play_name": {
			"type": "string",
			"description": "Identifier of a play in a corpus, e.g. lessing-emilia-galotti, gogol-revizor"
		},
		"character_id": {
			"type": "string",
			"description": "Identifier of the character, e.g. marinelli"
		}
	},
	"required": ["corpus_name", "play_name", "character_id"]
}`)

// playParams extracts the corpus and play identifiers every play tool
// needs.
func playParams(raw json.RawMessage) (tools.Params, string, string, error) {
	params, err := tools.ParseParams(raw)
	if err != nil {
		return nil, "", "", err
	}

	corpusName, err := params.RequireString("corpus_name")
	if err != nil {
		return nil, "", "", err
	}

	playName, err := params.RequireString("play_name")
	if err != nil {
		return nil, "", "", err
	}

	return params, corpusName, playName, nil
}

// Definitions returns the single-play tools backed by service.
func Definitions(service *Service) []tools.Definition {
	return []tools.Definition{
		{
			Name:         "get_play_metadata",
			Description:  "Get metadata and network metrics of a single play",
			Schema:       playSchema,
			Capabilities: []string{"play_data"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				_, corpusName, playName, err := playParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.Metadata(ctx, corpusName, playName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_play_metrics",
			Description:  "Get network metrics of a single play",
			Schema:       playSchema,
			Capabilities: []string{"play_data"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				_, corpusName, playName, err := playParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.Metrics(ctx, corpusName, playName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_play_tei",
			Description:  "Get TEI-XML of a play in a corpus",
			Schema:       playSchema,
			Capabilities: []string{"play_data", "full_text"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				_, corpusName, playName, err := playParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				tei, err := service.TEI(ctx, corpusName, playName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.TextResult(tei)
			},
		},
		{
			Name:         "get_play_plaintext",
			Description:  "Get plaintext of a play in a corpus",
			Schema:       playSchema,
			Capabilities: []string{"play_data", "full_text"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				_, corpusName, playName, err := playParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				text, err := service.Plaintext(ctx, corpusName, playName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.TextResult(text)
			},
		},
		{
			Name:         "get_play_characters",
			Description:  "Get characters of a play",
			Schema:       playSchema,
			Capabilities: []string{"play_data"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				_, corpusName, playName, err := playParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.Characters(ctx, corpusName, playName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_play_network",
			Description:  "Get the edges of the co-presence network based on a play in a corpus",
			Schema:       playSchema,
			Capabilities: []string{"play_data", "network_analysis"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				_, corpusName, playName, err := playParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				network, err := service.Network(ctx, corpusName, playName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(network)
			},
		},
		{
			Name:         "get_play_character_relations",
			Description:  "Get character relations in a play",
			Schema:       playSchema,
			Capabilities: []string{"play_data", "network_analysis"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				_, corpusName, playName, err := playParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.CharacterRelations(ctx, corpusName, playName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_spoken_text",
			Description:  "Get spoken text of a play (excluding stage directions)",
			Schema:       spokenTextSchema,
			Capabilities: []string{"play_data", "full_text"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, corpusName, playName, err := playParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				filter := SpokenTextFilter{
					Gender:   params.String("gender"),
					Relation: params.String("relation"),
					Role:     params.String("role"),
				}

				result, err := service.SpokenText(ctx, corpusName, playName, filter)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_spoken_text_by_characters",
			Description:  "Get spoken text of each character of a play",
			Schema:       playSchema,
			Capabilities: []string{"play_data", "full_text"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				_, corpusName, playName, err := playParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.SpokenTextByCharacters(ctx, corpusName, playName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_spoken_text_of_single_character",
			Description:  "Get spoken text by a single character of a play",
			Schema:       characterSchema,
			Capabilities: []string{"play_data", "full_text"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, corpusName, playName, err := playParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				characterID, err := params.RequireString("character_id")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.SpokenTextOfCharacter(ctx, corpusName, playName, characterID)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_stage_directions",
			Description:  "Get the text of all stage directions of a play",
			Schema:       playSchema,
			Capabilities: []string{"play_data", "full_text"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				_, corpusName, playName, err := playParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.StageDirections(ctx, corpusName, playName, false)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_stage_directions_with_speakers",
			Description:  "Get the text of all stage directions of a play including speakers",
			Schema:       playSchema,
			Capabilities: []string{"play_data", "full_text"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				_, corpusName, playName, err := playParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.StageDirections(ctx, corpusName, playName, true)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_links_to_playdata_helper",
			Description:  "Download Links for Play data",
			Schema:       playSchema,
			Capabilities: []string{"play_data"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				_, corpusName, playName, err := playParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				return tools.JSONResult(service.PlaydataLinks(corpusName, playName))
			},
		},
	}
}
