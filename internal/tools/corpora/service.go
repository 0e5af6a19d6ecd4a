// Package corpora implements the corpus catalog tools: API info, the
// list of corpora and per-corpus contents in full, compact and paged
// form.
package corpora

import (
	"context"
	"encoding/json"
	"net/url"

	"dracor-mcp/internal/dracor"
)

// Service answers corpus catalog queries against the DraCor API.
type Service struct {
	client *dracor.Client
}

// NewService creates a corpus catalog service backed by the given client.
func NewService(client *dracor.Client) *Service {
	return &Service{client: client}
}

// PagedPlays carries one page of untouched play objects.
type PagedPlays struct {
	Pagination dracor.Pagination `json:"pagination"`
	Plays      []json.RawMessage `json:"plays"`
}

// PagedMinimalPlays carries one page of compact play records.
type PagedMinimalPlays struct {
	Pagination dracor.Pagination    `json:"pagination"`
	Plays      []dracor.MinimalPlay `json:"plays"`
}

// PagedPlaynames carries one page of play identifiers.
type PagedPlaynames struct {
	Pagination dracor.Pagination `json:"pagination"`
	PlayNames  []string          `json:"play_names"`
}

// APIInfo returns name, version and database info of the API.
func (s *Service) APIInfo(ctx context.Context) (map[string]json.RawMessage, error) {
	info, err := s.client.GetJSON(ctx, s.client.EndpointURL("", "", "", nil))
	if err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"info": info}, nil
}

// Corpora lists all corpora. With metrics each corpus carries its
// document, character and word counts.
func (s *Service) Corpora(ctx context.Context, includeMetrics bool) (map[string]json.RawMessage, error) {
	var query url.Values
	if includeMetrics {
		query = url.Values{"include": []string{"metrics"}}
	}
	corpora, err := s.client.GetJSON(ctx, s.client.EndpointURL("", "", "corpora", query))
	if err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"corpora": corpora}, nil
}

// Corpus returns a single corpus including its play list.
func (s *Service) Corpus(ctx context.Context, corpusName string) (map[string]json.RawMessage, error) {
	corpus, err := s.client.GetJSON(ctx, s.client.EndpointURL(corpusName, "", "", nil))
	if err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"corpus": corpus}, nil
}

// CorpusMetadata returns the extended metadata of all plays in a corpus.
// The API assembles this per play, so large corpora can hit the upstream
// timeout.
func (s *Service) CorpusMetadata(ctx context.Context, corpusName string) (map[string]json.RawMessage, error) {
	metadata, err := s.client.GetJSON(ctx, s.client.EndpointURL(corpusName, "", "metadata", nil))
	if err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"metadata": metadata}, nil
}

// ContentsPaged returns one page of the corpus play list, each play as
// the untouched API object.
func (s *Service) ContentsPaged(ctx context.Context, corpusName string, itemsPerPage, page int) (PagedPlays, error) {
	plays, err := s.corpusPlays(ctx, corpusName)
	if err != nil {
		return PagedPlays{}, err
	}

	pagePlays, pagination := dracor.Paginate(plays, page, itemsPerPage)
	return PagedPlays{
		Pagination: pagination,
		Plays:      dracor.RawPlays(pagePlays),
	}, nil
}

// MetadataPaged returns one page of the corpus metadata list. The full
// list is fetched and sliced locally, which keeps the response small for
// the client but not the work small for the API.
func (s *Service) MetadataPaged(ctx context.Context, corpusName string, itemsPerPage, page int) (PagedPlays, error) {
	var metadata []json.RawMessage
	if err := s.client.GetJSONInto(ctx, s.client.EndpointURL(corpusName, "", "metadata", nil), &metadata); err != nil {
		return PagedPlays{}, err
	}

	items, pagination := dracor.Paginate(metadata, page, itemsPerPage)
	return PagedPlays{
		Pagination: pagination,
		Plays:      items,
	}, nil
}

// MinimalData returns one page of compact play records: identifiers,
// main title, normalized year and author shortnames.
func (s *Service) MinimalData(ctx context.Context, corpusName string, itemsPerPage, page int) (PagedMinimalPlays, error) {
	plays, err := s.corpusPlays(ctx, corpusName)
	if err != nil {
		return PagedMinimalPlays{}, err
	}

	pagePlays, pagination := dracor.Paginate(plays, page, itemsPerPage)
	minimal := make([]dracor.MinimalPlay, 0, len(pagePlays))
	for _, play := range pagePlays {
		minimal = append(minimal, play.Minimal())
	}

	return PagedMinimalPlays{
		Pagination: pagination,
		Plays:      minimal,
	}, nil
}

// Playnames returns one page of play identifiers, the shortest possible
// listing of a corpus.
func (s *Service) Playnames(ctx context.Context, corpusName string, itemsPerPage, page int) (PagedPlaynames, error) {
	plays, err := s.corpusPlays(ctx, corpusName)
	if err != nil {
		return PagedPlaynames{}, err
	}

	names := make([]string, 0, len(plays))
	for _, play := range plays {
		names = append(names, play.Name)
	}

	pageNames, pagination := dracor.Paginate(names, page, itemsPerPage)
	return PagedPlaynames{
		Pagination: pagination,
		PlayNames:  pageNames,
	}, nil
}

func (s *Service) corpusPlays(ctx context.Context, corpusName string) ([]dracor.Play, error) {
	body, err := s.client.Get(ctx, s.client.EndpointURL(corpusName, "", "", nil))
	if err != nil {
		return nil, err
	}
	return dracor.ParseCorpusPlays(body)
}
