// Package docs answers questions about DraCor itself: the API feature
// ontology, the OpenAPI specification, the ODD with the encoding
// guidelines and the project documents published on GitHub.
package docs

import (
	"context"
	"fmt"

	"github.com/beevik/etree"

	"dracor-mcp/internal/dracor"
)

// Service reads the published DraCor documentation. The ontology and
// ODD are fetched and parsed per call; nothing is cached.
type Service struct {
	client      *dracor.Client
	ontologyURL string
	oddURL      string
	researchURL string
	readmeURL   string
}

// NewService creates a documentation service.
func NewService(client *dracor.Client) *Service {
	return &Service{
		client:      client,
		ontologyURL: dracor.OntologyURL,
		oddURL:      dracor.ODDURL,
		researchURL: dracor.ResearchURL,
		readmeURL:   dracor.APIReadmeURL,
	}
}

// FeatureList returns name, URI and comment of every ontology property
// carrying a feature name.
func (s *Service) FeatureList(ctx context.Context) (map[string][]FeatureSummary, error) {
	graph, err := s.ontology(ctx)
	if err != nil {
		return nil, err
	}

	features := []FeatureSummary{}
	for _, uri := range graph.properties() {
		record := graph.feature(uri)
		if record.FeatureName == nil {
			continue
		}
		features = append(features, FeatureSummary{
			FeatureName: *record.FeatureName,
			URI:         record.URI,
			Comment:     record.Comment,
		})
	}
	return map[string][]FeatureSummary{"features": features}, nil
}

// Feature returns the full ontology record of a single feature. A name
// the ontology does not know yields a record with null fields.
func (s *Service) Feature(ctx context.Context, featureName string) (Feature, error) {
	graph, err := s.ontology(ctx)
	if err != nil {
		return Feature{}, err
	}
	return graph.feature(ontologyNamespace + featureName), nil
}

// OpenAPISpecification fetches the OpenAPI YAML document announced by
// the /info endpoint.
func (s *Service) OpenAPISpecification(ctx context.Context) (string, error) {
	var info struct {
		OpenAPI string `json:"openapi"`
	}
	if err := s.client.GetJSONInto(ctx, s.client.EndpointURL("", "", "", nil), &info); err != nil {
		return "", err
	}
	if info.OpenAPI == "" {
		return "", fmt.Errorf("api info does not announce an openapi document")
	}
	return s.client.GetText(ctx, info.OpenAPI)
}

// TableOfContents returns the section hierarchy of the ODD keyed by
// xml:id.
func (s *Service) TableOfContents(ctx context.Context) (map[string]TOCEntry, error) {
	doc, err := s.odd(ctx)
	if err != nil {
		return nil, err
	}
	return tableOfContents(doc), nil
}

// OddSection returns the serialized XML of the element with the given
// xml:id.
func (s *Service) OddSection(ctx context.Context, sectionID string) (string, error) {
	doc, err := s.odd(ctx)
	if err != nil {
		return "", err
	}

	section := findByXMLID(doc, sectionID)
	if section == nil {
		return "", fmt.Errorf("no element with xml:id %q in the ODD", sectionID)
	}
	return serializeElement(section)
}

// ElementDocumentation returns the serialized elementSpec documenting a
// TEI element.
func (s *Service) ElementDocumentation(ctx context.Context, elementName string) (string, error) {
	doc, err := s.odd(ctx)
	if err != nil {
		return "", err
	}

	spec := findElementSpec(doc, elementName)
	if spec == nil {
		return "", fmt.Errorf("no elementSpec for %q in the ODD", elementName)
	}
	return serializeElement(spec)
}

// SchematronRule returns the constraintSpec checking that an encoded
// document supports an API feature.
func (s *Service) SchematronRule(ctx context.Context, featureName string) (string, error) {
	doc, err := s.odd(ctx)
	if err != nil {
		return "", err
	}

	spec := findConstraintSpec(doc, featureName)
	if spec == nil {
		return "", fmt.Errorf("no api_feature_check constraint for %q in the ODD", featureName)
	}
	return serializeElement(spec)
}

// Research returns the curated list of research based on DraCor.
func (s *Service) Research(ctx context.Context) (string, error) {
	return s.client.GetText(ctx, s.researchURL)
}

// APIReadme returns the README of the dracor-api repository.
func (s *Service) APIReadme(ctx context.Context) (string, error) {
	return s.client.GetText(ctx, s.readmeURL)
}

func (s *Service) ontology(ctx context.Context) (*ontology, error) {
	document, err := s.client.Get(ctx, s.ontologyURL)
	if err != nil {
		return nil, err
	}
	return parseOntology(document)
}

func (s *Service) odd(ctx context.Context) (*etree.Document, error) {
	document, err := s.client.Get(ctx, s.oddURL)
	if err != nil {
		return nil, err
	}
	return parseODD(document)
}
