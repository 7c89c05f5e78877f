// Package intelx provides an email source backed by the Intelligence X
// phonebook search.
package intelx

import (
	"breachcheck/pkg/domain"
	"breachcheck/pkg/source"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

const (
	// DefaultBaseURL is the free-tier Intelligence X endpoint.
	DefaultBaseURL = "https://2.intelx.io"
	// Placeholder is the sample key shipped in config; it counts as unset.
	Placeholder = "YOUR_INTELX_API_KEY"
	// DefaultMaxResults caps the phonebook selectors returned per search.
	DefaultMaxResults = 50
)

// Selector is one phonebook hit.
type Selector struct {
	Value    string `json:"selectorvalue"`
	Type     int    `json:"selectortype"`
	TypeName string `json:"selectortypeh"`
}

// Client queries the Intelligence X phonebook API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxResults int
}

// Configured reports whether a usable credential is present.
func (c *Client) Configured() bool {
	key := strings.TrimSpace(c.apiKey)

	return key != "" && key != Placeholder
}

// Info describes the source.
func (c *Client) Info() source.Info {
	return source.Info{
		ID:          domain.SourceIntelX,
		Name:        "Intelligence X",
		Description: "Phonebook search over leaked and public data, free tier available",
		Reliability: source.ReliabilityMedium,
		Free:        true,
		Remote:      true,
	}
}

// Check runs a phonebook search for the email.
func (c *Client) Check(ctx context.Context, email string) domain.SourceResult {
	if !c.Configured() {
		return domain.Failed(domain.SourceIntelX, domain.OutcomeNotConfigured, "Intelligence X API key not configured")
	}

	type searchReq struct {
		Term       string `json:"term"`
		MaxResults int    `json:"maxresults"`
		Media      int    `json:"media"`
		Target     int    `json:"target"`
	}
	b, err := json.Marshal(searchReq{Term: email, MaxResults: c.maxResults, Media: 0, Target: 1})
	if err != nil {
		return domain.Failed(domain.SourceIntelX, domain.OutcomeAPIError, "could not encode request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/phonebook/search", bytes.NewReader(b))
	if err != nil {
		return domain.Failed(domain.SourceIntelX, domain.OutcomeAPIError, "could not create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-key", c.apiKey)

	resp, err := source.Do(c.httpClient, req)
	if err != nil {
		return source.TransportFailure(domain.SourceIntelX, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var data struct {
			Selectors []Selector `json:"selectors"`
		}
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return domain.Failed(domain.SourceIntelX, domain.OutcomeAPIError, "could not decode response: %v", err)
		}
		if len(data.Selectors) == 0 {
			return domain.Clean(domain.SourceIntelX, "email not found in Intelligence X")
		}

		return domain.Found(domain.SourceIntelX, len(data.Selectors), data.Selectors,
			"found %d results in Intelligence X", len(data.Selectors))
	case http.StatusUnauthorized:
		return domain.Failed(domain.SourceIntelX, domain.OutcomeAuthFailed, "Intelligence X API authentication failed")
	case http.StatusPaymentRequired:
		return domain.Failed(domain.SourceIntelX, domain.OutcomeSubscriptionRequired, "Intelligence X credits exhausted")
	case http.StatusTooManyRequests:
		return domain.Failed(domain.SourceIntelX, domain.OutcomeRateLimited, "Intelligence X rate limit exceeded")
	default:
		return domain.Failed(domain.SourceIntelX, domain.OutcomeAPIError,
			"Intelligence X API error: HTTP %d: %s", resp.StatusCode, source.Snippet(resp.Body))
	}
}

// New creates a Client. Empty baseURL and non-positive maxResults fall back
// to the defaults.
func New(httpClient *http.Client, baseURL, apiKey string, maxResults int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		maxResults: maxResults,
	}
}
