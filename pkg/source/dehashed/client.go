// Package dehashed provides email and password sources backed by the DeHashed
// v2 search API.
package dehashed

import (
	"breachcheck/pkg/domain"
	"breachcheck/pkg/source"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-faster/jx"
)

const (
	// DefaultBaseURL is the DeHashed API root.
	DefaultBaseURL = "https://api.dehashed.com"
	// Placeholder is the sentinel credential shipped in sample configs.
	Placeholder = "YOUR_DEHASHED_API_KEY"
	// DefaultSize is the number of entries requested per email search.
	DefaultSize = 10

	subscriptionMarker = "subscription"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the API root. Empty selects DefaultBaseURL.
	BaseURL string
	// APIKey is sent in the DeHashed-Api-Key header.
	APIKey string
	// Size limits the number of entries returned by an email search.
	Size int
}

// Client talks to the DeHashed v2 API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	options    Options
}

// Configured reports whether a usable credential is present.
func (c *Client) Configured() bool {
	key := strings.TrimSpace(c.options.APIKey)

	return key != "" && key != Placeholder
}

// HashPassword returns the lower-case hex SHA-256 of the password, the scheme
// the search-password endpoint expects.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))

	return hex.EncodeToString(sum[:])
}

func info() source.Info {
	return source.Info{
		ID:          domain.SourceDeHashed,
		Name:        "DeHashed API v2",
		Description: "Password search works on the free plan, email search requires a subscription",
		Reliability: source.ReliabilityMedium,
		Free:        true,
		Remote:      true,
	}
}

// EmailSource exposes SearchEmail as a source.Source.
func (c *Client) EmailSource() source.Source { return source.New(info(), c.SearchEmail) }

// PasswordSource exposes SearchPassword as a source.Source.
func (c *Client) PasswordSource() source.Source { return source.New(info(), c.SearchPassword) }

func (c *Client) post(ctx context.Context, path string, payload any) (*source.Response, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.options.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err //nolint: wrapcheck
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("DeHashed-Api-Key", c.options.APIKey)

	return source.Do(c.httpClient, req)
}

// SearchEmail looks the email up in the DeHashed search index.
func (c *Client) SearchEmail(ctx context.Context, email string) domain.SourceResult {
	if !c.Configured() {
		return domain.Failed(domain.SourceDeHashed, domain.OutcomeNotConfigured, "DeHashed API not configured")
	}

	type searchReq struct {
		Query string `json:"query"`
		Size  int    `json:"size"`
	}
	resp, err := c.post(ctx, "/v2/search", searchReq{Query: "email:" + email, Size: c.options.Size})
	if err != nil {
		return source.TransportFailure(domain.SourceDeHashed, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var data struct {
			Entries []json.RawMessage `json:"entries"`
			Total   int               `json:"total"`
		}
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return domain.Failed(domain.SourceDeHashed, domain.OutcomeAPIError, "could not decode response: %v", err)
		}
		if len(data.Entries) == 0 {
			return domain.Clean(domain.SourceDeHashed, "email not found in DeHashed")
		}
		total := data.Total
		if total < len(data.Entries) {
			total = len(data.Entries)
		}

		return domain.Found(domain.SourceDeHashed, total, data.Entries, "found %d entries in DeHashed", total)
	case http.StatusUnauthorized:
		if RequiresSubscription(resp.Body) {
			return domain.Failed(domain.SourceDeHashed, domain.OutcomeSubscriptionRequired,
				"DeHashed email search requires a paid subscription")
		}

		return domain.Failed(domain.SourceDeHashed, domain.OutcomeAuthFailed, "DeHashed API authentication failed")
	default:
		return c.failure(resp, "DeHashed API error")
	}
}

// SearchPassword looks the SHA-256 of the password up in DeHashed.
func (c *Client) SearchPassword(ctx context.Context, password string) domain.SourceResult {
	if !c.Configured() {
		return domain.Failed(domain.SourceDeHashed, domain.OutcomeNotConfigured, "DeHashed API not configured")
	}

	type searchPasswordReq struct {
		Hash string `json:"sha256_hashed_password"`
	}
	resp, err := c.post(ctx, "/v2/search-password", searchPasswordReq{Hash: HashPassword(password)})
	if err != nil {
		return source.TransportFailure(domain.SourceDeHashed, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var data struct {
			ResultsFound int `json:"results_found"`
		}
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return domain.Failed(domain.SourceDeHashed, domain.OutcomeAPIError, "could not decode response: %v", err)
		}
		if data.ResultsFound <= 0 {
			return domain.Clean(domain.SourceDeHashed, "password not found in DeHashed")
		}

		return domain.Found(domain.SourceDeHashed, data.ResultsFound, nil,
			"password found in %d DeHashed entries", data.ResultsFound)
	case http.StatusUnauthorized:
		if RequiresSubscription(resp.Body) {
			return domain.Failed(domain.SourceDeHashed, domain.OutcomeSubscriptionRequired,
				"DeHashed password search requires a paid subscription")
		}

		return domain.Failed(domain.SourceDeHashed, domain.OutcomeAuthFailed, "DeHashed API authentication failed")
	default:
		return c.failure(resp, "DeHashed password API error")
	}
}

func (c *Client) failure(resp *source.Response, prefix string) domain.SourceResult {
	if resp.StatusCode == http.StatusTooManyRequests {
		return domain.Failed(domain.SourceDeHashed, domain.OutcomeRateLimited, "DeHashed rate limit exceeded")
	}

	return domain.Failed(domain.SourceDeHashed, domain.OutcomeAPIError,
		"%s: HTTP %d: %s", prefix, resp.StatusCode, source.Snippet(resp.Body))
}

// RequiresSubscription reports whether a 401 body says the plan does not
// cover the request. JSON bodies are probed on their error/message fields,
// anything else falls back to a plain substring match.
func RequiresSubscription(body []byte) bool {
	matched := false
	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if d.Next() != jx.String || (key != "error" && key != "message") {
			return d.Skip()
		}
		v, err := d.Str()
		if err != nil {
			return err
		}
		if strings.Contains(strings.ToLower(v), subscriptionMarker) {
			matched = true
		}

		return nil
	})
	if err != nil {
		return bytes.Contains(bytes.ToLower(body), []byte(subscriptionMarker))
	}

	return matched
}

// New constructs a Client.
func New(httpClient *http.Client, options Options) *Client {
	if options.BaseURL == "" {
		options.BaseURL = DefaultBaseURL
	}
	options.BaseURL = strings.TrimRight(options.BaseURL, "/")
	if options.Size <= 0 {
		options.Size = DefaultSize
	}

	return &Client{
		httpClient: httpClient,
		options:    options,
	}
}
