package source

import (
	"breachcheck/pkg/domain"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

// MaxBodySnippet is how many characters of an unexpected response body are
// kept in a result message for diagnostics.
const MaxBodySnippet = 200

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Do sends the request with the given client and reads the whole body.
// Any error returned is a transport error: connection failures, timeouts and
// body read failures are not distinguished.
func Do(client *http.Client, req *http.Request) (*Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: b}, nil
}

// TransportFailure converts a failed round trip into a transport_error result.
func TransportFailure(id domain.SourceID, err error) domain.SourceResult {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.Failed(id, domain.OutcomeTransportError, "%s request timed out", id)
	}

	return domain.Failed(id, domain.OutcomeTransportError, "%s request failed: %v", id, err)
}

// Snippet returns the first MaxBodySnippet characters of the body, trimmed.
func Snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return "no response body"
	}
	if r := []rune(s); len(r) > MaxBodySnippet {
		return string(r[:MaxBodySnippet])
	}

	return s
}
