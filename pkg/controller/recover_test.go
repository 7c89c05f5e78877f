package controller_test

import (
	"breachcheck/pkg/controller"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithRecover(t *testing.T) {
	h := controller.WithRecover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("adapter exploded")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body controller.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "internal server error", body.Error)
}

func TestWithRecover_AbortHandlerPropagates(t *testing.T) {
	h := controller.WithRecover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	require.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
