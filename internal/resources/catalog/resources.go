package catalog

import (
	"context"
	"strings"

	"dracor-mcp/internal/mcp"
	"dracor-mcp/internal/resources"
)

// Definitions returns the fixed catalog resources backed by service.
func Definitions(service *Service) []resources.Definition {
	return []resources.Definition{
		{
			URI:          "corpora://",
			Name:         "Available Corpora",
			Description:  "List of all available corpora (collections of plays) via DTS Collection endpoint",
			MimeType:     "application/json",
			Tags:         []string{"corpora", "dts"},
			Capabilities: []string{"read"},
			Handler: func(ctx context.Context, uri string) (mcp.ResourceContent, error) {
				result, err := service.Corpora(ctx)
				if err != nil {
					return nil, err
				}
				return mcp.NewResourceContentJSON(result)
			},
		},
		{
			URI:          "registry://",
			Name:         "DraCor Registry",
			Description:  "All DraCor Corpora registered in the DraCor Registry",
			MimeType:     "application/json",
			Tags:         []string{"corpora", "registry"},
			Capabilities: []string{"read"},
			Handler: func(ctx context.Context, uri string) (mcp.ResourceContent, error) {
				result, err := service.Registry(ctx)
				if err != nil {
					return nil, err
				}
				return mcp.NewResourceContentJSON(result)
			},
		},
	}
}

// CorpusTemplate returns the template resolving corpora://{corpus_name}
// to a single corpus. The handler receives the expanded URI the client
// requested and cuts the corpus name out of it.
func CorpusTemplate(service *Service) resources.TemplateDefinition {
	return resources.TemplateDefinition{
		URITemplate: "corpora://{corpus_name}",
		Name:        "Corpus Information",
		Description: "Information about a specific corpus via the DTS endpoint",
		MimeType:    "application/json",
		Handler: func(ctx context.Context, uri string) (mcp.ResourceContent, error) {
			corpusName := strings.TrimPrefix(uri, "corpora://")
			result, err := service.Corpus(ctx, corpusName)
			if err != nil {
				return nil, err
			}
			return mcp.NewResourceContentJSON(result)
		},
	}
}
