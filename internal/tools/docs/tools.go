package docs

import (
	"context"
	"encoding/json"

	"dracor-mcp/internal/mcp"
	"dracor-mcp/internal/tools"
)

var emptySchema = json.RawMessage(`{"type": "object", "properties": {}}`)

var featureNameSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"feature_name": {
			"type": "string",
			"description": "Name of the feature, e.g. play_name, corpus_num_of_characters_male"
		}
	},
	"required": ["feature_name"]
}`)

// Definitions returns the documentation tools backed by service.
func Definitions(service *Service) []tools.Definition {
	return []tools.Definition{
		{
			Name:         "get_api_feature_list",
			Description:  "Get a list of API features",
			Schema:       emptySchema,
			Capabilities: []string{"documentation"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				result, err := service.FeatureList(ctx)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_api_feature",
			Description:  "Get description of an API feature",
			Schema:       featureNameSchema,
			Capabilities: []string{"documentation"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				featureName, err := params.RequireString("feature_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				result, err := service.Feature(ctx, featureName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(result)
			},
		},
		{
			Name:         "get_openapi_specification",
			Description:  "Get the OpenAPI Specification of the DraCor API",
			Schema:       emptySchema,
			Capabilities: []string{"documentation"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				specification, err := service.OpenAPISpecification(ctx)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.TextResult(specification)
			},
		},
		{
			Name:         "get_table_of_contents_from_odd",
			Description:  "Get a Table of Contents of the DraCor ODD including the Encoding Guidelines",
			Schema:       emptySchema,
			Capabilities: []string{"documentation"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				toc, err := service.TableOfContents(ctx)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.JSONResult(toc)
			},
		},
		{
			Name:        "get_odd_section",
			Description: "Get a section of the ODD",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"section_id": {
						"type": "string",
						"description": "Identifier (xml:id) of the section, see get_table_of_contents_from_odd"
					}
				},
				"required": ["section_id"]
			}`),
			Capabilities: []string{"documentation"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				sectionID, err := params.RequireString("section_id")
				if err != nil {
					return tools.ErrorResult(err)
				}

				section, err := service.OddSection(ctx, sectionID)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.TextResult(section)
			},
		},
		{
			Name:        "get_tei_element_documentation_from_odd",
			Description: "Get documentation of an element from the DraCor ODD",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"element_name": {
						"type": "string",
						"description": "Name of a TEI element, e.g. listPerson"
					}
				},
				"required": ["element_name"]
			}`),
			Capabilities: []string{"documentation"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				elementName, err := params.RequireString("element_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				documentation, err := service.ElementDocumentation(ctx, elementName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.TextResult(documentation)
			},
		},
		{
			Name:        "get_schematron_rule_to_check_api_feature",
			Description: "Get Schematron rule to check for an DraCor API feature",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"feature_name": {
						"type": "string",
						"description": "ID of a DraCor API feature, e.g. play_id"
					}
				},
				"required": ["feature_name"]
			}`),
			Capabilities: []string{"documentation"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				params, err := tools.ParseParams(raw)
				if err != nil {
					return tools.ErrorResult(err)
				}

				featureName, err := params.RequireString("feature_name")
				if err != nil {
					return tools.ErrorResult(err)
				}

				rule, err := service.SchematronRule(ctx, featureName)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.TextResult(rule)
			},
		},
		{
			Name:         "get_dracor_based_research",
			Description:  "Get Research based on DraCor",
			Schema:       emptySchema,
			Capabilities: []string{"documentation"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				research, err := service.Research(ctx)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.TextResult(research)
			},
		},
		{
			Name:         "get_readme_form_dracor_api_github_repo",
			Description:  "Get the DraCor API Readme",
			Schema:       emptySchema,
			Capabilities: []string{"documentation"},
			Handler: func(ctx context.Context, raw json.RawMessage) (mcp.ToolResult, error) {
				readme, err := service.APIReadme(ctx)
				if err != nil {
					return tools.ErrorResult(err)
				}
				return tools.TextResult(readme)
			},
		},
	}
}
