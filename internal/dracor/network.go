package dracor

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Network holds a co-presence network parsed from the API's CSV form.
// Nodes appear in first-seen order.
type Network struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`
}

// Edge is one co-presence edge. Weight keeps the raw CSV value.
type Edge struct {
	Source string `json:"source"`
	Type   string `json:"type"`
	Target string `json:"target"`
	Weight string `json:"weight"`
}

// Relation is one character relation, e.g. odoardo parent_of emilia.
type Relation struct {
	Source string `json:"source"`
	Type   string `json:"type"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// MixnmatchEntry is one row of the Wikidata Mix'n'Match dump. Q is null
// for plays not yet matched to a Wikidata item.
type MixnmatchEntry struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Q     *string `json:"q"`
}

// ParseNetworkCSV converts networkdata CSV (Source,Type,Target,Weight)
// into nodes and edges. The header row is skipped.
func ParseNetworkCSV(data string) (Network, error) {
	network := Network{
		Nodes: []string{},
		Edges: []Edge{},
	}

	rows, err := readCSVRows(data, 4)
	if err != nil {
		return Network{}, fmt.Errorf("network csv: %w", err)
	}

	seen := make(map[string]bool)
	addNode := func(name string) {
		if !seen[name] {
			seen[name] = true
			network.Nodes = append(network.Nodes, name)
		}
	}

	for _, row := range rows {
		addNode(row[0])
		addNode(row[2])
		network.Edges = append(network.Edges, Edge{
			Source: row[0],
			Type:   strings.ToLower(row[1]),
			Target: row[2],
			Weight: row[3],
		})
	}

	return network, nil
}

// ParseRelationsCSV converts relations CSV (Source,Type,Target,Label)
// into a list of character relations. The header row is skipped.
func ParseRelationsCSV(data string) ([]Relation, error) {
	rows, err := readCSVRows(data, 4)
	if err != nil {
		return nil, fmt.Errorf("relations csv: %w", err)
	}

	relations := []Relation{}
	for _, row := range rows {
		relations = append(relations, Relation{
			Source: row[0],
			Type:   strings.ToLower(row[1]),
			Target: row[2],
			Label:  row[3],
		})
	}

	return relations, nil
}

// ParseMixnmatchCSV converts the Mix'n'Match dump CSV (id,name,q) into
// entries. Titles are lowercased; an empty q becomes null.
func ParseMixnmatchCSV(data string) ([]MixnmatchEntry, error) {
	rows, err := readCSVRows(data, 3)
	if err != nil {
		return nil, fmt.Errorf("mixnmatch csv: %w", err)
	}

	entries := []MixnmatchEntry{}
	for _, row := range rows {
		entry := MixnmatchEntry{
			ID:    row[0],
			Title: strings.ToLower(row[1]),
		}
		if row[2] != "" {
			q := row[2]
			entry.Q = &q
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// readCSVRows parses comma-separated data, skips the header row and
// checks that every remaining row has at least minFields fields. Empty
// input yields no rows.
func readCSVRows(data string, minFields int) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if len(row) < minFields {
			return nil, fmt.Errorf("row has %d fields, expected %d", len(row), minFields)
		}
		rows = append(rows, row)
	}

	return rows, nil
}
