// Package dts implements the Distributed Text Services tools. The DTS
// endpoints address plays by URI and expose the segment structure of a
// play down to single citable units.
package dts

import (
	"context"
	"encoding/json"
	"net/url"

	"dracor-mcp/internal/dracor"
)

// Service answers DTS queries against the DraCor API.
type Service struct {
	client *dracor.Client
}

// NewService creates a DTS service backed by the given client.
func NewService(client *dracor.Client) *Service {
	return &Service{client: client}
}

// Entrypoint returns the DTS entrypoint document: the implemented
// specification version and URI templates for the collection, navigation
// and document endpoints.
func (s *Service) Entrypoint(ctx context.Context) (json.RawMessage, error) {
	return s.client.GetJSON(ctx, s.client.EndpointURL("", "", "dts", nil))
}

// Corpus returns a corpus via the DTS collection endpoint. The corpus
// can be addressed by identifier or full URI.
func (s *Service) Corpus(ctx context.Context, corpusName string) (map[string]json.RawMessage, error) {
	query := url.Values{"id": []string{corpusName}}
	corpus, err := s.client.GetJSON(ctx, s.client.EndpointURL("", "", "dts/collection", query))
	if err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"corpus": corpus}, nil
}

// Play returns a play via the DTS collection endpoint, addressed by its
// URI.
func (s *Service) Play(ctx context.Context, playURI string) (map[string]json.RawMessage, error) {
	query := url.Values{"id": []string{playURI}}
	play, err := s.client.GetJSON(ctx, s.client.EndpointURL("", "", "dts/collection", query))
	if err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"play": play}, nil
}

// CitableUnits returns the citable units of a play from the DTS
// navigation endpoint. With a ref only that segment is expanded, to the
// given depth. Without a ref the whole tree is requested.
func (s *Service) CitableUnits(ctx context.Context, playURI, ref, down string) (map[string]json.RawMessage, error) {
	query := url.Values{"resource": []string{playURI}}
	if ref != "" {
		if down == "" {
			down = "-1"
		}
		query.Set("ref", ref)
		query.Set("down", down)
	} else {
		query.Set("down", "-1")
	}

	var navigation struct {
		Member json.RawMessage `json:"member"`
	}
	if err := s.client.GetJSONInto(ctx, s.client.EndpointURL("", "", "dts/navigation", query), &navigation); err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"citeable_units": navigation.Member}, nil
}

// CitableUnitText returns the plain text of a single citable unit from
// the DTS document endpoint.
func (s *Service) CitableUnitText(ctx context.Context, playURI, ref string) (map[string]string, error) {
	query := url.Values{
		"resource":  []string{playURI},
		"ref":       []string{ref},
		"mediaType": []string{"text/plain"},
	}

	text, err := s.client.GetText(ctx, s.client.EndpointURL("", "", "dts/document", query))
	if err != nil {
		return nil, err
	}
	return map[string]string{"text": text}, nil
}
