// Package api is the HTTP client for the wikitermbase search and morphology endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wikitermbase/wikiterm/internal/wikiterm"
)

const (
	// DefaultBaseURL is the public wikitermbase deployment.
	DefaultBaseURL = "https://wikitermbase.toolforge.org"

	searchPath           = "/api/v1/search"
	aggregatedSearchPath = "/api/v1/search/aggregated"
	morphPath            = "/morph_analyzer"
)

// StatusError is returned when an endpoint answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
}

// Client talks to a wikitermbase backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a client for baseURL. A zero timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("component", "api"),
	}
}

// searchResponse mirrors /api/v1/search. Results stays raw so a non-array
// value can be told apart from a decoding failure.
type searchResponse struct {
	Results json.RawMessage `json:"results"`
}

type aggregatedResponse struct {
	Groups json.RawMessage `json:"groups"`
}

// Search runs a flat term search.
func (c *Client) Search(ctx context.Context, query string) ([]wikiterm.Occurrence, error) {
	var resp searchResponse
	if err := c.get(ctx, searchPath, query, &resp); err != nil {
		return nil, err
	}

	var results []wikiterm.Occurrence
	if err := decodeArray(resp.Results, &results); err != nil {
		return nil, fmt.Errorf("decoding search results: %w", err)
	}
	return results, nil
}

// SearchAggregated runs a term search grouped by normalized forms.
func (c *Client) SearchAggregated(ctx context.Context, query string) ([]wikiterm.Group, error) {
	var resp aggregatedResponse
	if err := c.get(ctx, aggregatedSearchPath, query, &resp); err != nil {
		return nil, err
	}

	var groups []wikiterm.Group
	if err := decodeArray(resp.Groups, &groups); err != nil {
		return nil, fmt.Errorf("decoding search groups: %w", err)
	}
	return groups, nil
}

// Analyze returns the first morphological analysis of query, or nil when
// the analyzer returned none.
func (c *Client) Analyze(ctx context.Context, query string) (*wikiterm.MorphAnalysis, error) {
	var resp searchResponse
	if err := c.get(ctx, morphPath, query, &resp); err != nil {
		return nil, err
	}

	var analyses []wikiterm.MorphAnalysis
	if err := decodeArray(resp.Results, &analyses); err != nil {
		return nil, fmt.Errorf("decoding morph results: %w", err)
	}
	if len(analyses) == 0 {
		return nil, nil
	}
	return &analyses[0], nil
}

func (c *Client) get(ctx context.Context, path, query string, out any) error {
	reqURL := c.baseURL + path + "?q=" + url.QueryEscape(query)

	c.log.DebugContext(ctx, "request", slog.String("path", path), slog.String("q", query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Endpoint: path, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}

	return nil
}

// decodeArray decodes raw into out only when raw is a JSON array. Missing,
// null, or non-array values leave out empty.
func decodeArray(raw json.RawMessage, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}
	return json.Unmarshal(trimmed, out)
}
