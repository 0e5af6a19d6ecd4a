package dracor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Author is the author entry of a play in a corpus response.
type Author struct {
	Name      string `json:"name"`
	Shortname string `json:"shortname"`
}

// Play is one play of a corpus response, decoded just far enough for
// filtering and reshaping. Raw keeps the untouched API object so
// pass-through tools return exactly what the API sent.
type Play struct {
	Name           string
	ID             string
	Title          string
	YearNormalized *int
	Authors        []Author
	Raw            json.RawMessage
}

// MinimalPlay is the compact play record of the minimal-data helper:
// identifiers, main title, normalized year and author shortnames.
type MinimalPlay struct {
	Name           string   `json:"name"`
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	YearNormalized *int     `json:"yearNormalized"`
	Authors        []string `json:"authors"`
}

// ParseCorpusPlays extracts the plays of a corpus response.
func ParseCorpusPlays(body []byte) ([]Play, error) {
	var envelope struct {
		Plays []json.RawMessage `json:"plays"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode corpus response: %w", err)
	}

	plays := make([]Play, 0, len(envelope.Plays))
	for i, raw := range envelope.Plays {
		var fields struct {
			Name           string   `json:"name"`
			ID             string   `json:"id"`
			Title          string   `json:"title"`
			YearNormalized *int     `json:"yearNormalized"`
			Authors        []Author `json:"authors"`
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode play %d of corpus response: %w", i, err)
		}
		plays = append(plays, Play{
			Name:           fields.Name,
			ID:             fields.ID,
			Title:          fields.Title,
			YearNormalized: fields.YearNormalized,
			Authors:        fields.Authors,
			Raw:            raw,
		})
	}

	return plays, nil
}

// Minimal reduces the play to its compact record.
func (p Play) Minimal() MinimalPlay {
	authors := make([]string, 0, len(p.Authors))
	for _, author := range p.Authors {
		authors = append(authors, author.Shortname)
	}
	return MinimalPlay{
		Name:           p.Name,
		ID:             p.ID,
		Title:          p.Title,
		YearNormalized: p.YearNormalized,
		Authors:        authors,
	}
}

// RawPlays returns the untouched API objects of the given plays.
func RawPlays(plays []Play) []json.RawMessage {
	raw := make([]json.RawMessage, 0, len(plays))
	for _, play := range plays {
		raw = append(raw, play.Raw)
	}
	return raw
}

// FilterPlaysByAuthor keeps plays where any author name contains the
// given name. The match is case sensitive, so "Goethe" matches
// "Goethe, Johann Wolfgang" but "goethe" does not.
func FilterPlaysByAuthor(plays []Play, authorName string) []Play {
	matched := []Play{}
	for _, play := range plays {
		for _, author := range play.Authors {
			if strings.Contains(author.Name, authorName) {
				matched = append(matched, play)
				break
			}
		}
	}
	return matched
}

// FilterPlaysByTitle keeps plays whose main title contains the given
// title, ignoring case.
func FilterPlaysByTitle(plays []Play, title string) []Play {
	needle := strings.ToLower(title)
	matched := []Play{}
	for _, play := range plays {
		if strings.Contains(strings.ToLower(play.Title), needle) {
			matched = append(matched, play)
		}
	}
	return matched
}

// FilterPlaysByYear keeps plays whose normalized year falls into the
// inclusive range. Plays without a normalized year are excluded.
func FilterPlaysByYear(plays []Play, yearStart, yearEnd int) []Play {
	matched := []Play{}
	for _, play := range plays {
		if play.YearNormalized == nil {
			continue
		}
		if year := *play.YearNormalized; yearStart <= year && year <= yearEnd {
			matched = append(matched, play)
		}
	}
	return matched
}
