// Package search implements the corpus filter tools. The API has no
// server-side search, so each tool fetches the corpus play list and
// filters it locally.
package search

import (
	"context"
	"encoding/json"

	"dracor-mcp/internal/dracor"
)

// Service filters corpus play lists by author, title and year.
type Service struct {
	client *dracor.Client
}

// NewService creates a search service backed by the given client.
func NewService(client *dracor.Client) *Service {
	return &Service{client: client}
}

// ByAuthor returns the plays of a corpus where any author name contains
// authorName. The match is case sensitive.
func (s *Service) ByAuthor(ctx context.Context, corpusName, authorName string) (map[string][]json.RawMessage, error) {
	plays, err := s.corpusPlays(ctx, corpusName)
	if err != nil {
		return nil, err
	}
	return playsResult(dracor.FilterPlaysByAuthor(plays, authorName)), nil
}

// ByTitle returns the plays of a corpus whose main title contains title,
// ignoring case.
func (s *Service) ByTitle(ctx context.Context, corpusName, title string) (map[string][]json.RawMessage, error) {
	plays, err := s.corpusPlays(ctx, corpusName)
	if err != nil {
		return nil, err
	}
	return playsResult(dracor.FilterPlaysByTitle(plays, title)), nil
}

// ByYearNormalized returns the plays of a corpus whose normalized year
// falls into the inclusive range.
func (s *Service) ByYearNormalized(ctx context.Context, corpusName string, yearStart, yearEnd int) (map[string][]json.RawMessage, error) {
	plays, err := s.corpusPlays(ctx, corpusName)
	if err != nil {
		return nil, err
	}
	return playsResult(dracor.FilterPlaysByYear(plays, yearStart, yearEnd)), nil
}

func (s *Service) corpusPlays(ctx context.Context, corpusName string) ([]dracor.Play, error) {
	body, err := s.client.Get(ctx, s.client.EndpointURL(corpusName, "", "", nil))
	if err != nil {
		return nil, err
	}
	return dracor.ParseCorpusPlays(body)
}

func playsResult(plays []dracor.Play) map[string][]json.RawMessage {
	return map[string][]json.RawMessage{"plays": dracor.RawPlays(plays)}
}
