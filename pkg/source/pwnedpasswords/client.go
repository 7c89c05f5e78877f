// Package pwnedpasswords provides a source.Source backed by the HIBP Pwned
// Passwords range API. Only the first PrefixLength characters of the
// password's SHA-1 hash ever leave the process (k-anonymity).
package pwnedpasswords

import (
	"breachcheck/pkg/domain"
	"breachcheck/pkg/source"
	"bufio"
	"bytes"
	"context"
	"crypto/sha1" //nolint: gosec
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultBaseURL is the public Pwned Passwords endpoint.
	DefaultBaseURL = "https://api.pwnedpasswords.com"
	// PrefixLength is the number of hash characters sent upstream.
	PrefixLength = 5
)

// Client queries the range API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the range API
	baseURL    string       // baseURL is the API root without trailing slash
}

// HashPassword returns the upper-case hex SHA-1 of the password split into the
// prefix sent upstream and the suffix matched locally.
func HashPassword(password string) (prefix, suffix string) {
	sum := sha1.Sum([]byte(password)) //nolint: gosec
	h := strings.ToUpper(hex.EncodeToString(sum[:]))

	return h[:PrefixLength], h[PrefixLength:]
}

// ParseRange scans a range response made of "SUFFIX:COUNT" lines and returns
// the count for the given suffix. ok is false when the suffix is absent.
func ParseRange(body []byte, suffix string) (count int, ok bool, err error) {
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		hashSuffix, rawCount, found := strings.Cut(line, ":")
		if !found || !strings.EqualFold(hashSuffix, suffix) {
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(rawCount))
		if err != nil {
			return 0, false, fmt.Errorf("could not parse count %q: %w", rawCount, err)
		}

		return n, true, nil
	}
	if err := sc.Err(); err != nil {
		return 0, false, fmt.Errorf("could not scan range response: %w", err)
	}

	return 0, false, nil
}

// Info describes the source.
func (c *Client) Info() source.Info {
	return source.Info{
		ID:          domain.SourcePwnedPasswords,
		Name:        "HIBP Pwned Passwords",
		Description: "Checks password exposure using k-anonymity range queries",
		Reliability: source.ReliabilityHigh,
		Free:        true,
		Remote:      true,
	}
}

// Check looks the password up in the range API.
func (c *Client) Check(ctx context.Context, password string) domain.SourceResult {
	// https://haveibeenpwned.com/API/v3#SearchingPwnedPasswordsByRange
	prefix, suffix := HashPassword(password)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/range/"+prefix, nil)
	if err != nil {
		return domain.Failed(domain.SourcePwnedPasswords, domain.OutcomeAPIError, "could not create request: %v", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := source.Do(c.httpClient, req)
	if err != nil {
		return source.TransportFailure(domain.SourcePwnedPasswords, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Failed(domain.SourcePwnedPasswords, domain.OutcomeAPIError,
			"pwned passwords API error: HTTP %d", resp.StatusCode)
	}

	count, ok, err := ParseRange(resp.Body, suffix)
	if err != nil {
		return domain.Failed(domain.SourcePwnedPasswords, domain.OutcomeAPIError, "could not decode response: %v", err)
	}
	// padded responses carry fake suffixes with a zero count
	if !ok || count == 0 {
		return domain.Clean(domain.SourcePwnedPasswords, "password not found in any known breach")
	}

	return domain.Found(domain.SourcePwnedPasswords, count, nil, "password seen %d times in known breaches", count)
}

// Ensure Client conforms to the source.Source interface at compile time.
var _ source.Source = (*Client)(nil)

// New constructs a Client using the provided http.Client. An empty baseURL
// selects DefaultBaseURL.
func New(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}
