package controller

import (
	"breachcheck/pkg/logger"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// WithRecover returns a middleware that turns a panic in the downstream
// handler into a JSON 500. http.ErrAbortHandler is re-raised.
func WithRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler { //nolint: errorlint
				panic(p)
			}

			logger.Error(r.Context(), "recovered from handler panic",
				zap.Any("panic", p),
				zap.ByteString("stack", debug.Stack()))
			WriteError(w, r, http.StatusInternalServerError, "internal server error")
		}()

		next.ServeHTTP(w, r)
	})
}
