package dracor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/logger"
)

// Documents backing the documentation tools. The ontology, ODD, research
// list and registry live in DraCor GitHub repositories, not in the API.
const (
	OntologyURL  = "https://raw.githubusercontent.com/dracor-org/dracor-ontology/refs/heads/main/v1/dracor_api_ontology.ttl"
	ODDURL       = "https://raw.githubusercontent.com/dracor-org/dracor-schema/refs/heads/main/dracor.odd"
	ResearchURL  = "https://raw.githubusercontent.com/dracor-org/dracor-frontend/refs/heads/main/public/doc/research.md"
	APIReadmeURL = "https://raw.githubusercontent.com/dracor-org/dracor-api/refs/heads/main/README.md"
	RegistryURL  = "https://raw.githubusercontent.com/dracor-org/dracor-registry/refs/heads/main/corpora.json"
)

// APIError is returned when the DraCor API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("dracor api: request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("dracor api: request failed with status %d: %s", e.StatusCode, e.Body)
}

// Response carries the raw outcome of an admin call. Admin tools branch on
// the status code (409 exists, 404 missing, 202 scheduled) instead of
// treating it as an error.
type Response struct {
	StatusCode int
	Body       []byte
}

// JSON decodes the response body, tolerating empty bodies.
func (r Response) JSON() (json.RawMessage, error) {
	if len(r.Body) == 0 {
		return nil, nil
	}
	if !json.Valid(r.Body) {
		return nil, fmt.Errorf("dracor api: response body is not valid JSON")
	}
	return json.RawMessage(r.Body), nil
}

// Client is a thin HTTP client for the DraCor API. It issues one request
// per call with no retries or caching; failures surface to the caller.
type Client struct {
	baseURL       string
	frontendURL   string
	adminUser     string
	adminPassword string
	httpClient    *http.Client
	logger        *logger.Logger
}

// New creates a DraCor API client from the given configuration.
func New(cfg config.DraCorConfig, log *logger.Logger) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		frontendURL:   cfg.FrontendBaseURL(),
		adminUser:     cfg.AdminUser,
		adminPassword: cfg.AdminPassword,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		logger: log,
	}
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FrontendURL returns the base URL of the DraCor frontend serving the API.
func (c *Client) FrontendURL() string {
	return c.frontendURL
}

// EndpointURL builds an API URL from corpus, play and method parts:
//
//	(corpus, play, method) -> /corpora/{corpus}/plays/{play}/{method}
//	(corpus, play, "")     -> /corpora/{corpus}/plays/{play}
//	(corpus, "", method)   -> /corpora/{corpus}/{method}
//	(corpus, "", "")       -> /corpora/{corpus}
//	("", "", method)       -> /{method}
//	("", "", "")           -> /info
func (c *Client) EndpointURL(corpus, play, method string, query url.Values) string {
	var path string
	switch {
	case corpus != "" && play != "" && method != "":
		path = fmt.Sprintf("/corpora/%s/plays/%s/%s", url.PathEscape(corpus), url.PathEscape(play), method)
	case corpus != "" && play != "":
		path = fmt.Sprintf("/corpora/%s/plays/%s", url.PathEscape(corpus), url.PathEscape(play))
	case corpus != "" && method != "":
		path = fmt.Sprintf("/corpora/%s/%s", url.PathEscape(corpus), method)
	case corpus != "":
		path = fmt.Sprintf("/corpora/%s", url.PathEscape(corpus))
	case method != "":
		path = "/" + method
	default:
		path = "/info"
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

// PlayAPIURL returns the API URL of a play, with a trailing slash so a
// method segment can be appended directly.
func (c *Client) PlayAPIURL(corpus, play string) string {
	return fmt.Sprintf("%s/corpora/%s/plays/%s/", c.baseURL, url.PathEscape(corpus), url.PathEscape(play))
}

// Get performs a GET request and returns the body. A non-2xx status is
// returned as *APIError.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	body, _, err := c.do(ctx, http.MethodGet, rawURL, nil, "", false)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// GetJSON performs a GET request and returns the body as raw JSON.
func (c *Client) GetJSON(ctx context.Context, rawURL string) (json.RawMessage, error) {
	body, err := c.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("dracor api: response from %s is not valid JSON", rawURL)
	}
	return json.RawMessage(body), nil
}

// GetJSONInto performs a GET request and decodes the body into v.
func (c *Client) GetJSONInto(ctx context.Context, rawURL string, v any) error {
	body, err := c.Get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("dracor api: failed to decode response from %s: %w", rawURL, err)
	}
	return nil
}

// GetText performs a GET request and returns the body as a string.
func (c *Client) GetText(ctx context.Context, rawURL string) (string, error) {
	body, err := c.Get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// PostJSON performs an authenticated POST with a JSON payload. The raw
// response is returned for status-driven handling.
func (c *Client) PostJSON(ctx context.Context, rawURL string, payload any) (Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("dracor api: failed to encode payload: %w", err)
	}

	body, status, err := c.do(ctx, http.MethodPost, rawURL, bytes.NewReader(data), "application/json", true)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return Response{StatusCode: apiErr.StatusCode, Body: []byte(apiErr.Body)}, nil
		}
		return Response{}, err
	}
	return Response{StatusCode: status, Body: body}, nil
}

// PutXML performs an authenticated PUT with an XML payload.
func (c *Client) PutXML(ctx context.Context, rawURL, document string) (Response, error) {
	body, status, err := c.do(ctx, http.MethodPut, rawURL, strings.NewReader(document), "application/xml", true)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return Response{StatusCode: apiErr.StatusCode, Body: []byte(apiErr.Body)}, nil
		}
		return Response{}, err
	}
	return Response{StatusCode: status, Body: body}, nil
}

// Delete performs an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, rawURL string) (Response, error) {
	body, status, err := c.do(ctx, http.MethodDelete, rawURL, nil, "", true)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return Response{StatusCode: apiErr.StatusCode, Body: []byte(apiErr.Body)}, nil
		}
		return Response{}, err
	}
	return Response{StatusCode: status, Body: body}, nil
}

// do performs the request and checks the status. The request ID ties the
// request and response log lines together.
func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, contentType string, authed bool) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, 0, fmt.Errorf("dracor api: failed to build request for %s: %w", rawURL, err)
	}

	req.Header.Set("Accept", "*/*")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		req.SetBasicAuth(c.adminUser, c.adminPassword)
	}

	requestID := uuid.NewString()
	start := time.Now()

	c.logger.Debug("dracor api request",
		"request_id", requestID,
		"method", method,
		"url", rawURL,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("dracor api request failed",
			"request_id", requestID,
			"method", method,
			"url", rawURL,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, 0, fmt.Errorf("dracor api: request to %s failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("dracor api: failed to read response from %s: %w", rawURL, err)
	}

	c.logger.Debug("dracor api response",
		"request_id", requestID,
		"method", method,
		"url", rawURL,
		"status", resp.StatusCode,
		"bytes", len(respBody),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	return respBody, resp.StatusCode, nil
}
