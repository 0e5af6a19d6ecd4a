package docs

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/knakk/rdf"
)

// Namespace of the DraCor API ontology. Feature properties live under
// this prefix, e.g. .../v1/play_name.
const ontologyNamespace = "https://dracor.org/ontology/dracor-api/v1/"

const (
	rdfTypeIRI     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	rdfPropertyIRI = "http://www.w3.org/1999/02/22-rdf-syntax-ns#Property"
	rdfsDomainIRI  = "http://www.w3.org/2000/01/rdf-schema#domain"
	rdfsRangeIRI   = "http://www.w3.org/2000/01/rdf-schema#range"
	rdfsLabelIRI   = "http://www.w3.org/2000/01/rdf-schema#label"
	rdfsCommentIRI = "http://www.w3.org/2000/01/rdf-schema#comment"
)

// Feature is the ontology record of a single API feature. Absent values
// serialize as null; repeatable statements keep every value.
type Feature struct {
	URI                    string   `json:"uri"`
	Name                   string   `json:"name"`
	Domain                 []string `json:"domain"`
	Range                  []string `json:"range"`
	Label                  *string  `json:"label"`
	Comment                *string  `json:"comment"`
	FeatureID              *string  `json:"feature_id"`
	FeatureName            *string  `json:"feature_name"`
	ExtractorInAPIModule   *string  `json:"extractor_in_api_module"`
	ExtractorInAPIFunction *string  `json:"extractor_in_api_function"`
	CodeRef                []string `json:"code_ref"`
	XPath                  *string  `json:"xpath"`
	OperationID            []string `json:"operation_id"`
	FieldKey               []string `json:"field_key"`
}

// FeatureSummary is the reduced record used in feature listings.
type FeatureSummary struct {
	FeatureName string  `json:"feature_name"`
	URI         string  `json:"uri"`
	Comment     *string `json:"comment"`
}

// ontology indexes the parsed graph by subject and predicate. Subjects
// keep document order so listings stay stable between calls.
type ontology struct {
	subjects   []string
	statements map[string]map[string][]string
}

func parseOntology(document []byte) (*ontology, error) {
	decoder := rdf.NewTripleDecoder(bytes.NewReader(document), rdf.Turtle)
	triples, err := decoder.DecodeAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse ontology: %w", err)
	}

	graph := &ontology{statements: make(map[string]map[string][]string)}
	for _, triple := range triples {
		subject := triple.Subj.String()
		if _, ok := graph.statements[subject]; !ok {
			graph.statements[subject] = make(map[string][]string)
			graph.subjects = append(graph.subjects, subject)
		}
		predicate := triple.Pred.String()
		graph.statements[subject][predicate] = append(graph.statements[subject][predicate], triple.Obj.String())
	}
	return graph, nil
}

func (o *ontology) objects(subject, predicate string) []string {
	return o.statements[subject][predicate]
}

func (o *ontology) firstObject(subject, predicate string) *string {
	values := o.statements[subject][predicate]
	if len(values) == 0 {
		return nil
	}
	return &values[0]
}

// properties returns the URIs typed rdf:Property in document order. The
// ontology types its feature properties as both owl:DatatypeProperty
// and rdf:Property.
func (o *ontology) properties() []string {
	var uris []string
	for _, subject := range o.subjects {
		for _, kind := range o.objects(subject, rdfTypeIRI) {
			if kind == rdfPropertyIRI {
				uris = append(uris, subject)
				break
			}
		}
	}
	return uris
}

// feature assembles the record of a single property. The name is the
// last path segment of the URI.
func (o *ontology) feature(uri string) Feature {
	name := uri
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		name = uri[idx+1:]
	}

	return Feature{
		URI:                    uri,
		Name:                   name,
		Domain:                 o.objects(uri, rdfsDomainIRI),
		Range:                  o.objects(uri, rdfsRangeIRI),
		Label:                  o.firstObject(uri, rdfsLabelIRI),
		Comment:                o.firstObject(uri, rdfsCommentIRI),
		FeatureID:              o.firstObject(uri, ontologyNamespace+"feature_id"),
		FeatureName:            o.firstObject(uri, ontologyNamespace+"feature_name"),
		ExtractorInAPIModule:   o.firstObject(uri, ontologyNamespace+"extractor_in_api_module"),
		ExtractorInAPIFunction: o.firstObject(uri, ontologyNamespace+"extractor_in_api_function"),
		CodeRef:                o.objects(uri, ontologyNamespace+"code_ref"),
		XPath:                  o.firstObject(uri, ontologyNamespace+"xpath"),
		OperationID:            o.objects(uri, ontologyNamespace+"operation_id"),
		FieldKey:               o.objects(uri, ontologyNamespace+"field_key"),
	}
}
