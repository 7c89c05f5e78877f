package source_test

import (
	"breachcheck/pkg/domain"
	"breachcheck/pkg/source"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestDo(t *testing.T) {
	client := &http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		h := http.Header{}
		h.Set("X-Test", "1")

		return &http.Response{StatusCode: http.StatusAccepted, Header: h, Body: io.NopCloser(strings.NewReader("body"))}, nil
	})}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "https://example.com", nil)
	require.NoError(t, err)

	resp, err := source.Do(client, req)
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.Equal(t, "1", resp.Header.Get("X-Test"))
	require.Equal(t, "body", string(resp.Body))
}

func TestTransportFailure(t *testing.T) {
	res := source.TransportFailure(domain.SourceHIBPAccount, fmt.Errorf("wrapped: %w", context.DeadlineExceeded))
	require.Equal(t, domain.OutcomeTransportError, res.Outcome)
	require.Equal(t, domain.SourceHIBPAccount, res.Source)
	require.Contains(t, res.Message, "timed out")

	res = source.TransportFailure(domain.SourceIntelX, errors.New("no route to host"))
	require.Equal(t, domain.OutcomeTransportError, res.Outcome)
	require.Contains(t, res.Message, "no route to host")
}

func TestSnippet(t *testing.T) {
	require.Equal(t, "no response body", source.Snippet([]byte("  ")))
	require.Equal(t, "oops", source.Snippet([]byte(" oops\n")))
	require.Len(t, []rune(source.Snippet([]byte(strings.Repeat("é", 300)))), source.MaxBodySnippet)
}

func TestNew(t *testing.T) {
	info := source.Info{ID: domain.SourceDeHashed, Remote: true}
	s := source.New(info, func(_ context.Context, subject string) domain.SourceResult {
		return domain.Clean(domain.SourceDeHashed, "checked %s", subject)
	})

	require.Equal(t, info, s.Info())
	require.Equal(t, "checked pw", s.Check(context.Background(), "pw").Message)
}
