// Package admin edits a DraCor instance: corpus and play management
// against the eXist-DB backed API, plus a TEI check for files before
// upload. The API accepts these operations only with admin credentials,
// usually against a local instance.
package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/beevik/etree"

	"dracor-mcp/internal/dracor"
)

const (
	statusSuccess = "Success"
	statusFailed  = "Failed"

	teiNamespace = "http://www.tei-c.org/ns/1.0"
)

// Outcome reports how the API answered an administrative request. The
// tools branch on the status code instead of failing, so a conflict or
// a missing corpus comes back with an explanation.
type Outcome struct {
	Status      string          `json:"status"`
	StatusCode  int             `json:"status_code"`
	APIResponse json.RawMessage `json:"api_response,omitempty"`
	Comment     string          `json:"comment,omitempty"`
}

// ValidationResult reports the checks run on an uploaded XML document.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Comment  string   `json:"comment"`
	ErrorLog []string `json:"error_log,omitempty"`
}

// Service performs the administrative operations. The client carries
// the eXist-DB admin credentials and sends them with every request.
type Service struct {
	client    *dracor.Client
	schemaURL string
}

// NewService creates an administration service. The default schema URL
// points at the RelaxNG schema served by the instance's frontend.
func NewService(client *dracor.Client) *Service {
	return &Service{
		client:    client,
		schemaURL: client.FrontendURL() + "/schema.rng",
	}
}

// ValidateXML checks that a document is well-formed XML with a TEI root
// element. There is no RelaxNG validator available, so the result spells
// out that the schema from schemaURL was not applied.
func (s *Service) ValidateXML(fileName, fileContent, schemaURL string) ValidationResult {
	if schemaURL == "" {
		schemaURL = s.schemaURL
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(fileContent); err != nil {
		return ValidationResult{
			Comment:  "The XML is not well-formed. See error log",
			ErrorLog: []string{fmt.Sprintf("%s: %v", fileName, err)},
		}
	}

	root := doc.Root()
	if root == nil {
		return ValidationResult{
			Comment:  "The XML is not well-formed. See error log",
			ErrorLog: []string{fmt.Sprintf("%s: document has no root element", fileName)},
		}
	}

	if root.Tag != "TEI" || root.NamespaceURI() != teiNamespace {
		return ValidationResult{
			Comment: fmt.Sprintf("The XML is well-formed but is not a TEI document. It was not validated against the RelaxNG schema from %s. See error log", schemaURL),
			ErrorLog: []string{
				fmt.Sprintf("%s: root element is <%s> in namespace %q, expected <TEI> in namespace %q",
					fileName, root.Tag, root.NamespaceURI(), teiNamespace),
			},
		}
	}

	return ValidationResult{
		Valid:   true,
		Comment: fmt.Sprintf("The XML is well-formed and has a TEI root element. Structural validation against the RelaxNG schema from %s was not performed.", schemaURL),
	}
}

// AddCorpus creates a corpus from its metadata, e.g. {"name": "test",
// "title": "Test Drama Corpus", "repository": "..."}.
func (s *Service) AddCorpus(ctx context.Context, metadata any) (Outcome, error) {
	response, err := s.client.PostJSON(ctx, s.client.EndpointURL("", "", "corpora", nil), metadata)
	if err != nil {
		return Outcome{}, err
	}

	switch response.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return outcome(response, statusSuccess, "")
	case http.StatusConflict:
		return outcome(response, statusFailed, "Corpus already exists!")
	default:
		return Outcome{Status: statusFailed, StatusCode: response.StatusCode}, nil
	}
}

// LoadCorpus asks the instance to pull the corpus content from its
// GitHub repository. The API schedules the update and answers before
// the data is loaded.
func (s *Service) LoadCorpus(ctx context.Context, corpusName string) (Outcome, error) {
	response, err := s.client.PostJSON(ctx, s.client.EndpointURL(corpusName, "", "", nil), map[string]bool{"load": true})
	if err != nil {
		return Outcome{}, err
	}

	switch response.StatusCode {
	case http.StatusAccepted:
		return outcome(response, statusSuccess, "Corpus update has been scheduled. It may take some time until the data has been loaded.")
	case http.StatusNotFound:
		return outcome(response, statusFailed, fmt.Sprintf("Corpus with the identifier %s does not exist!", corpusName))
	case http.StatusConflict:
		return outcome(response, statusFailed, "Corpus update could not be scheduled. This is the response when another update has not yet finished.")
	default:
		return Outcome{Status: statusFailed, StatusCode: response.StatusCode}, nil
	}
}

// AddPlay uploads the TEI document of a play into a corpus.
func (s *Service) AddPlay(ctx context.Context, corpusName, playName, tei string) (Outcome, error) {
	response, err := s.client.PutXML(ctx, s.client.EndpointURL(corpusName, playName, "tei", nil), tei)
	if err != nil {
		return Outcome{}, err
	}

	switch response.StatusCode {
	case http.StatusOK:
		return Outcome{
			Status:     statusSuccess,
			StatusCode: response.StatusCode,
			Comment:    fmt.Sprintf("Play %s has been added to corpus %s.", playName, corpusName),
		}, nil
	case http.StatusBadRequest:
		return Outcome{
			Status:     statusFailed,
			StatusCode: response.StatusCode,
			Comment:    "The request body is not a valid TEI document or the playname is invalid.",
		}, nil
	case http.StatusNotFound:
		return Outcome{
			Status:     statusFailed,
			StatusCode: response.StatusCode,
			Comment:    fmt.Sprintf("Corpus %s does not exist.", corpusName),
		}, nil
	default:
		return Outcome{Status: statusFailed, StatusCode: response.StatusCode}, nil
	}
}

// RemovePlay deletes a play from a corpus.
func (s *Service) RemovePlay(ctx context.Context, corpusName, playName string) (Outcome, error) {
	response, err := s.client.Delete(ctx, s.client.EndpointURL(corpusName, playName, "", nil))
	if err != nil {
		return Outcome{}, err
	}

	switch response.StatusCode {
	case http.StatusOK:
		return outcome(response, statusSuccess, fmt.Sprintf("Play %s has been removed from corpus %s.", playName, corpusName))
	case http.StatusNotFound:
		return outcome(response, statusFailed, "Play and/or corpus do not exist.")
	default:
		return Outcome{Status: statusFailed, StatusCode: response.StatusCode}, nil
	}
}

// RemoveCorpus deletes a corpus and everything in it.
func (s *Service) RemoveCorpus(ctx context.Context, corpusName string) (Outcome, error) {
	response, err := s.client.Delete(ctx, s.client.EndpointURL(corpusName, "", "", nil))
	if err != nil {
		return Outcome{}, err
	}

	switch response.StatusCode {
	case http.StatusOK:
		return outcome(response, statusSuccess, "")
	case http.StatusNotFound:
		return outcome(response, statusFailed, fmt.Sprintf("Corpus with the identifier %s does not exist!", corpusName))
	default:
		return Outcome{Status: statusFailed, StatusCode: response.StatusCode}, nil
	}
}

// outcome builds an Outcome carrying the decoded API response body.
func outcome(response dracor.Response, status, comment string) (Outcome, error) {
	apiResponse, err := response.JSON()
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Status:      status,
		StatusCode:  response.StatusCode,
		APIResponse: apiResponse,
		Comment:     comment,
	}, nil
}
