// Package wikidata implements the Wikidata lookup tools: plays by
// character Q-number, author info and the Mix'n'Match dump.
package wikidata

import (
	"context"
	"encoding/json"
	"net/url"

	"dracor-mcp/internal/dracor"
)

// Service answers Wikidata-related queries against the DraCor API.
type Service struct {
	client *dracor.Client
}

// NewService creates a Wikidata service backed by the given client.
func NewService(client *dracor.Client) *Service {
	return &Service{client: client}
}

// PagedMixnmatch carries one page of the Mix'n'Match dump.
type PagedMixnmatch struct {
	Pagination dracor.Pagination       `json:"pagination"`
	Data       []dracor.MixnmatchEntry `json:"data"`
}

// PlaysWithCharacter returns the plays that feature a character
// identified by the given Wikidata Q-number.
func (s *Service) PlaysWithCharacter(ctx context.Context, qid string) (map[string]json.RawMessage, error) {
	plays, err := s.client.GetJSON(ctx, s.client.EndpointURL("", "", "character/"+url.PathEscape(qid), nil))
	if err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"plays_with_character": plays}, nil
}

// AuthorInfo returns information about an author identified by the
// given Wikidata Q-number.
func (s *Service) AuthorInfo(ctx context.Context, qid string) (map[string]json.RawMessage, error) {
	author, err := s.client.GetJSON(ctx, s.client.EndpointURL("", "", "wikidata/author/"+url.PathEscape(qid), nil))
	if err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"author": author}, nil
}

// Mixnmatch returns one page of the Wikidata Mix'n'Match dump, parsed
// from the API's CSV form.
func (s *Service) Mixnmatch(ctx context.Context, itemsPerPage, page int) (PagedMixnmatch, error) {
	data, err := s.client.GetText(ctx, s.client.EndpointURL("", "", "wikidata/mixnmatch", nil))
	if err != nil {
		return PagedMixnmatch{}, err
	}

	entries, err := dracor.ParseMixnmatchCSV(data)
	if err != nil {
		return PagedMixnmatch{}, err
	}

	pageEntries, pagination := dracor.Paginate(entries, page, itemsPerPage)
	return PagedMixnmatch{
		Pagination: pagination,
		Data:       pageEntries,
	}, nil
}
