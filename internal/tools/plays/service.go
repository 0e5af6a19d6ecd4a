// Package plays implements the single-play tools: metadata, metrics,
// full text in TEI and plaintext form, characters, the co-presence
// network, character relations, spoken text and stage directions.
package plays

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"dracor-mcp/internal/dracor"
)

// Service answers single-play queries against the DraCor API.
type Service struct {
	client *dracor.Client
}

// NewService creates a play service backed by the given client.
func NewService(client *dracor.Client) *Service {
	return &Service{client: client}
}

// SpokenTextFilter narrows spoken text to characters matching the given
// attributes. Empty fields are left out of the request.
type SpokenTextFilter struct {
	Gender   string
	Relation string
	Role     string
}

// Metadata returns metadata and network metrics of a single play.
func (s *Service) Metadata(ctx context.Context, corpusName, playName string) (map[string]json.RawMessage, error) {
	play, err := s.client.GetJSON(ctx, s.client.EndpointURL(corpusName, playName, "", nil))
	if err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"play": play}, nil
}

// Metrics returns the network metrics of a single play.
func (s *Service) Metrics(ctx context.Context, corpusName, playName string) (map[string]json.RawMessage, error) {
	metrics, err := s.client.GetJSON(ctx, s.client.EndpointURL(corpusName, playName, "metrics", nil))
	if err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"metrics": metrics}, nil
}

// TEI returns the TEI-XML source of a play.
func (s *Service) TEI(ctx context.Context, corpusName, playName string) (string, error) {
	return s.client.GetText(ctx, s.client.EndpointURL(corpusName, playName, "tei", nil))
}

// Plaintext returns the full text of a play as plain text.
func (s *Service) Plaintext(ctx context.Context, corpusName, playName string) (string, error) {
	return s.client.GetText(ctx, s.client.EndpointURL(corpusName, playName, "txt", nil))
}

// Characters returns the characters of a play.
func (s *Service) Characters(ctx context.Context, corpusName, playName string) (map[string]json.RawMessage, error) {
	characters, err := s.client.GetJSON(ctx, s.client.EndpointURL(corpusName, playName, "characters", nil))
	if err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"characters": characters}, nil
}

// Network returns the co-presence network of a play, converted from the
// API's CSV form into nodes and edges.
func (s *Service) Network(ctx context.Context, corpusName, playName string) (dracor.Network, error) {
	data, err := s.client.GetText(ctx, s.client.EndpointURL(corpusName, playName, "networkdata/csv", nil))
	if err != nil {
		return dracor.Network{}, err
	}
	return dracor.ParseNetworkCSV(data)
}

// CharacterRelations returns kinship and other social relations between
// the characters of a play.
func (s *Service) CharacterRelations(ctx context.Context, corpusName, playName string) (map[string][]dracor.Relation, error) {
	data, err := s.client.GetText(ctx, s.client.EndpointURL(corpusName, playName, "relations/csv", nil))
	if err != nil {
		return nil, err
	}

	relations, err := dracor.ParseRelationsCSV(data)
	if err != nil {
		return nil, err
	}
	return map[string][]dracor.Relation{"relations": relations}, nil
}

// SpokenText returns the spoken text of a play, excluding stage
// directions, optionally filtered by character attributes.
func (s *Service) SpokenText(ctx context.Context, corpusName, playName string, filter SpokenTextFilter) (map[string]string, error) {
	query := url.Values{}
	if filter.Gender != "" {
		query.Set("gender", filter.Gender)
	}
	if filter.Relation != "" {
		query.Set("relation", filter.Relation)
	}
	if filter.Role != "" {
		query.Set("role", filter.Role)
	}

	text, err := s.client.GetText(ctx, s.client.EndpointURL(corpusName, playName, "spoken-text", query))
	if err != nil {
		return nil, err
	}
	return map[string]string{"text": text}, nil
}

// SpokenTextByCharacters returns the speech acts of every character of a
// play, grouped by character.
func (s *Service) SpokenTextByCharacters(ctx context.Context, corpusName, playName string) (map[string]json.RawMessage, error) {
	texts, err := s.client.GetJSON(ctx, s.client.EndpointURL(corpusName, playName, "spoken-text-by-character", nil))
	if err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"spoken-texts": texts}, nil
}

// SpokenTextOfCharacter returns the speech acts of a single character,
// picked from the by-character listing.
func (s *Service) SpokenTextOfCharacter(ctx context.Context, corpusName, playName, characterID string) (map[string]json.RawMessage, error) {
	var characters []struct {
		ID   string          `json:"id"`
		Text json.RawMessage `json:"text"`
	}
	if err := s.client.GetJSONInto(ctx, s.client.EndpointURL(corpusName, playName, "spoken-text-by-character", nil), &characters); err != nil {
		return nil, err
	}

	for _, character := range characters {
		if character.ID == characterID {
			return map[string]json.RawMessage{"character-spoken-text": character.Text}, nil
		}
	}

	return nil, fmt.Errorf("no character with id %q in play %s of corpus %s", characterID, playName, corpusName)
}

// StageDirections returns the stage direction text of a play, optionally
// including the speakers of the enclosing speech acts.
func (s *Service) StageDirections(ctx context.Context, corpusName, playName string, withSpeakers bool) (map[string]string, error) {
	method := "stage-directions"
	if withSpeakers {
		method = "stage-directions-with-speakers"
	}

	text, err := s.client.GetText(ctx, s.client.EndpointURL(corpusName, playName, method, nil))
	if err != nil {
		return nil, err
	}
	return map[string]string{"stage-directions": text}, nil
}

// PlaydataLinks returns the frontend tab, external tool and download
// URLs of a play. No request is made; the links are derived from the
// identifiers.
func (s *Service) PlaydataLinks(corpusName, playName string) map[string]dracor.PlayLinks {
	return map[string]dracor.PlayLinks{"urls": s.client.PlayLinks(corpusName, playName)}
}
