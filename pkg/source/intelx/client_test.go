package intelx_test

import (
	"breachcheck/pkg/domain"
	"breachcheck/pkg/source/intelx"
	"context"
	"encoding/json"
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

func newTestClient(fn rtFunc) *intelx.Client {
	return intelx.New(&http.Client{Transport: fn}, "", "test-key", 0)
}

func TestClient_Check_found(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "2.intelx.io", r.URL.Host)
		require.Equal(t, "/phonebook/search", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("x-key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@x.com", body["term"])
		require.EqualValues(t, intelx.DefaultMaxResults, body["maxresults"])
		require.EqualValues(t, 1, body["target"])

		return respond(http.StatusOK, `{"selectors":[{"selectorvalue":"a@x.com","selectortype":1,"selectortypeh":"Email Address"}]}`), nil
	})

	res := c.Check(context.Background(), "a@x.com")
	require.Equal(t, domain.SourceIntelX, res.Source)
	require.Equal(t, domain.OutcomeFound, res.Outcome)
	require.Equal(t, 1, res.MatchCount)

	selectors, ok := res.Detail.([]intelx.Selector)
	require.True(t, ok)
	require.Equal(t, "Email Address", selectors[0].TypeName)
}

func TestClient_Check_statuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   domain.Outcome
	}{
		{"no selectors", http.StatusOK, `{"selectors":[]}`, domain.OutcomeClean},
		{"unauthorized", http.StatusUnauthorized, "", domain.OutcomeAuthFailed},
		{"credits", http.StatusPaymentRequired, "", domain.OutcomeSubscriptionRequired},
		{"rate limited", http.StatusTooManyRequests, "", domain.OutcomeRateLimited},
		{"server error", http.StatusInternalServerError, "boom", domain.OutcomeAPIError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(func(r *http.Request) (*http.Response, error) {
				return respond(tt.status, tt.body), nil
			})

			require.Equal(t, tt.want, c.Check(context.Background(), "a@x.com").Outcome)
		})
	}
}

func TestClient_Check_notConfigured(t *testing.T) {
	calls := 0
	c := intelx.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++

		return nil, errors.New("unreachable")
	})}, "", intelx.Placeholder, 10)

	require.False(t, c.Configured())
	require.Equal(t, domain.OutcomeNotConfigured, c.Check(context.Background(), "a@x.com").Outcome)
	require.Zero(t, calls)
}

func TestClient_Check_transportError(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("unreachable")
	})

	require.Equal(t, domain.OutcomeTransportError, c.Check(context.Background(), "a@x.com").Outcome)
}
