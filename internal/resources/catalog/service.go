// Package catalog exposes the corpus catalog as MCP resources: the
// corpora held by the connected DraCor instance and the corpora
// registered across instances in the DraCor registry.
package catalog

import (
	"context"
	"encoding/json"
	"net/url"

	"dracor-mcp/internal/dracor"
)

// Service reads the corpus catalog backing the resources.
type Service struct {
	client      *dracor.Client
	registryURL string
}

// NewService creates a catalog service backed by the given client.
func NewService(client *dracor.Client) *Service {
	return &Service{
		client:      client,
		registryURL: dracor.RegistryURL,
	}
}

// Corpora returns the corpora of the connected instance from the DTS
// collection endpoint.
func (s *Service) Corpora(ctx context.Context) (map[string]json.RawMessage, error) {
	var collection struct {
		Member json.RawMessage `json:"member"`
	}
	if err := s.client.GetJSONInto(ctx, s.client.EndpointURL("", "", "dts/collection", nil), &collection); err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"corpora": collection.Member}, nil
}

// Corpus returns a single corpus from the DTS collection endpoint.
func (s *Service) Corpus(ctx context.Context, corpusName string) (map[string]json.RawMessage, error) {
	query := url.Values{"id": []string{corpusName}}
	corpus, err := s.client.GetJSON(ctx, s.client.EndpointURL("", "", "dts/collection", query))
	if err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"corpus": corpus}, nil
}

// Registry returns every corpus registered in the DraCor registry,
// covering all public instances.
func (s *Service) Registry(ctx context.Context) (map[string]json.RawMessage, error) {
	corpora, err := s.client.GetJSON(ctx, s.registryURL)
	if err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"corpora": corpora}, nil
}
