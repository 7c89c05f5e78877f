package hibp_test

import (
	"breachcheck/pkg/domain"
	"breachcheck/pkg/source/hibp"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestClient_Check_found(t *testing.T) {
	c := hibp.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "haveibeenpwned.com", r.URL.Host)
		require.Equal(t, "/api/v3/breachedaccount/a@x.com", r.URL.Path)
		require.Equal(t, "false", r.URL.Query().Get("truncateResponse"))
		require.Equal(t, "secret", r.Header.Get("hibp-api-key"))

		return respond(http.StatusOK, `[{"Name":"LinkedIn","Domain":"linkedin.com"},{"Name":"Adobe","Domain":"adobe.com"}]`), nil
	})}, "", "secret")

	res := c.Check(context.Background(), "a@x.com")
	require.Equal(t, domain.SourceHIBPAccount, res.Source)
	require.Equal(t, domain.OutcomeFound, res.Outcome)
	require.Equal(t, 2, res.MatchCount)

	breaches, ok := res.Detail.([]domain.Breach)
	require.True(t, ok)
	require.Equal(t, "LinkedIn", breaches[0].Name)
}

func TestClient_Check_withoutKey(t *testing.T) {
	c := hibp.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		_, ok := r.Header["Hibp-Api-Key"]
		require.False(t, ok)

		return respond(http.StatusUnauthorized, ""), nil
	})}, "", "")

	res := c.Check(context.Background(), "a@x.com")
	require.Equal(t, domain.OutcomeAuthFailed, res.Outcome)
}

func TestClient_Check_statuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   domain.Outcome
	}{
		{"not found", http.StatusNotFound, "", domain.OutcomeClean},
		{"empty list", http.StatusOK, "[]", domain.OutcomeClean},
		{"rate limited", http.StatusTooManyRequests, "", domain.OutcomeRateLimited},
		{"unauthorized", http.StatusUnauthorized, "", domain.OutcomeAuthFailed},
		{"server error", http.StatusInternalServerError, "", domain.OutcomeAPIError},
		{"bad payload", http.StatusOK, "{", domain.OutcomeAPIError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := hibp.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
				return respond(tt.status, tt.body), nil
			})}, "", "k")

			res := c.Check(context.Background(), "a@x.com")
			require.Equal(t, tt.want, res.Outcome)
			require.False(t, res.Found())
			require.Zero(t, res.MatchCount)
		})
	}
}

func TestClient_Check_transportError(t *testing.T) {
	c := hibp.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("dns failure")
	})}, "", "k")

	res := c.Check(context.Background(), "a@x.com")
	require.Equal(t, domain.OutcomeTransportError, res.Outcome)
}
