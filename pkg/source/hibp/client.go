// Package hibp provides a source.Source backed by the Have I Been Pwned
// breached-account API.
package hibp

import (
	"breachcheck/pkg/domain"
	"breachcheck/pkg/source"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public HIBP v3 API root.
const DefaultBaseURL = "https://haveibeenpwned.com/api/v3"

// Client talks to the breached-account endpoint. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to HIBP
	baseURL    string       // baseURL is the API root without trailing slash
	apiKey     string       // apiKey is sent as hibp-api-key when set
}

// Info describes the source.
func (c *Client) Info() source.Info {
	return source.Info{
		ID:          domain.SourceHIBPAccount,
		Name:        "HIBP Breached Accounts",
		Description: "Rate limited, requires an API key for full access",
		Reliability: source.ReliabilityMedium,
		Free:        true,
		Remote:      true,
	}
}

// Check returns the breaches the email appears in.
func (c *Client) Check(ctx context.Context, email string) domain.SourceResult {
	// https://haveibeenpwned.com/API/v3#BreachesForAccount
	endpoint := c.baseURL + "/breachedaccount/" + url.PathEscape(email) + "?truncateResponse=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Failed(domain.SourceHIBPAccount, domain.OutcomeAPIError, "could not create request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("hibp-api-key", c.apiKey)
	}

	resp, err := source.Do(c.httpClient, req)
	if err != nil {
		return source.TransportFailure(domain.SourceHIBPAccount, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var breaches []domain.Breach
		if err := json.Unmarshal(resp.Body, &breaches); err != nil {
			return domain.Failed(domain.SourceHIBPAccount, domain.OutcomeAPIError, "could not decode response: %v", err)
		}
		if len(breaches) == 0 {
			return domain.Clean(domain.SourceHIBPAccount, "email not found in HIBP")
		}

		return domain.Found(domain.SourceHIBPAccount, len(breaches), breaches,
			"found %d breaches in HIBP", len(breaches))
	case http.StatusNotFound:
		return domain.Clean(domain.SourceHIBPAccount, "email not found in HIBP")
	case http.StatusTooManyRequests:
		return domain.Failed(domain.SourceHIBPAccount, domain.OutcomeRateLimited,
			"HIBP rate limit exceeded, try again later")
	case http.StatusUnauthorized:
		return domain.Failed(domain.SourceHIBPAccount, domain.OutcomeAuthFailed,
			"HIBP API requires a valid API key for this request")
	default:
		return domain.Failed(domain.SourceHIBPAccount, domain.OutcomeAPIError,
			"HIBP API error: HTTP %d", resp.StatusCode)
	}
}

// Ensure Client conforms to the source.Source interface at compile time.
var _ source.Source = (*Client)(nil)

// New constructs a Client. An empty baseURL selects DefaultBaseURL and an
// empty apiKey sends unauthenticated requests.
func New(httpClient *http.Client, baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}
