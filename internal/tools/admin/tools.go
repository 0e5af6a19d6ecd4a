package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"dracor-mcp/internal/mcp"
	"dracor-mcp/internal/tools"
)

var corpusOnlySchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"corpus_name": {
			"type": "string",
			"description": "Identifier of a corpus, e.g. test"
		}
	},
	"required": ["corpus_name"]
}`)

var playSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"corpus_name": {
			"type": "string",
			"description": "Identifier of a corpus"
		},
		"play_name": {
			"type": "string",
			"description": "Identifier (play_name) of a play in a corpus"
		}
	},
	"required": ["corpus_name", "play_name"]
}`)

// Definitions returns the corpus editing and administration tools
// backed by service.
func Definitions(service *Service) []tools.Definition {
	return []tools.Definition{
		{
			Name:        "validate_xml_file",
			Description: "Validate XML File",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"file_name": {
						"type": "string",
						"description": "Name of the file"
					},
					"file_content": {
						"type": "string",
						"description": "Content of the attached XML file"
					},
					"schema_url": {
						"type": "string",
						"description": "URL of the DraCor Schema. Setting is optional, don't do it if not explicitly stated in the prompt."
					}
				},
				"required": ["file_name", "file_content"]
			}`),
			Capabilities: []string{"editing"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				fileName, err := params.RequireString("file_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				fileContent, err := params.RequireString("file_content")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result := service.ValidateXML(fileName, fileContent, params.String("schema_url"))
				return tools.JSONResult(result)
			},
		},
		{
			Name:        "add_corpus",
			Description: "Add a corpus",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"corpus_metadata": {
						"type": "object",
						"description": "Metadata of the corpus, e.g. {\"name\": \"test\", \"title\": \"Test Drama Corpus\", \"repository\": \"https://github.com/dracor-org/testdracor\"}"
					}
				},
				"required": ["corpus_metadata"]
			}`),
			Capabilities: []string{"administration"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				metadata, ok := params["corpus_metadata"]
				if !ok {
					return tools.ErrorResult(fmt.Errorf("corpus_metadata is required"))
				}

				result, err := service.AddCorpus(ctx, metadata)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "load_corpus_from_repository",
			Description:  "Load corpus from GitHub Repository",
			Schema:       corpusOnlySchema,
			Capabilities: []string{"administration"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				corpusName, err := params.RequireString("corpus_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.LoadCorpus(ctx, corpusName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:        "add_play_to_corpus",
			Description: "Add play",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"corpus_name": {
						"type": "string",
						"description": "Identifier of a corpus"
					},
					"play_name": {
						"type": "string",
						"description": "Identifier (play_name) of a play in a corpus"
					},
					"tei": {
						"type": "string",
						"description": "TEI-XML encoded play"
					}
				},
				"required": ["corpus_name", "play_name", "tei"]
			}`),
			Capabilities: []string{"administration"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				corpusName, err := params.RequireString("corpus_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				playName, err := params.RequireString("play_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				tei, err := params.RequireString("tei")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.AddPlay(ctx, corpusName, playName, tei)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "remove_play_from_corpus",
			Description:  "Remove play from corpus",
			Schema:       playSchema,
			Capabilities: []string{"administration"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				corpusName, err := params.RequireString("corpus_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				playName, err := params.RequireString("play_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.RemovePlay(ctx, corpusName, playName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "remove_corpus",
			Description:  "Remove corpus",
			Schema:       corpusOnlySchema,
			Capabilities: []string{"administration"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				corpusName, err := params.RequireString("corpus_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.RemoveCorpus(ctx, corpusName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
	}
}
