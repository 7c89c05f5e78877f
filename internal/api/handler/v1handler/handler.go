// Package v1handler implements the JSON endpoints under /api.
package v1handler

import (
	"breachcheck/internal/breach"
	"breachcheck/pkg/controller"
	"breachcheck/pkg/corpus"
	"breachcheck/pkg/domain"
	"breachcheck/pkg/logger"
	"breachcheck/pkg/serrors"
	"breachcheck/pkg/source"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Version is reported by the status endpoints.
const Version = "2.0.0"

// maxBodyBytes bounds request bodies; every request is a tiny JSON object.
const maxBodyBytes = 64 << 10

// CorpusStats reports on the local corpus.
type CorpusStats interface {
	Stats() (corpus.Stats, error)
}

type Deps struct {
	Checker   breach.Checker
	Gate      *breach.Gate
	Sources   []source.Info
	Corpus    CorpusStats
	Catalogue []domain.CatalogueEntry
	StartedAt time.Time
}

type Handler struct {
	deps     Deps
	requests metric.Int64Counter
	now      func() time.Time
}

func New(deps Deps, mp metric.MeterProvider) (*Handler, error) {
	requests, err := mp.Meter("breachcheck/internal/api/handler/v1handler").Int64Counter(
		"breachcheck.api.checks",
		metric.WithDescription("Number of check requests by endpoint and verdict."),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create request counter: %w", err)
	}

	return &Handler{
		deps:     deps,
		requests: requests,
		now:      time.Now,
	}, nil
}

// Routes registers the endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/check-account", h.CheckAccount)
	r.Post("/check-password", h.CheckPassword)
	r.Post("/comprehensive-check", h.ComprehensiveCheck)
	r.Post("/notify", h.Notify)
	r.Get("/status", h.Status)
	r.Get("/sources", h.SourceList)
	r.Get("/stats", h.StatsReport)
	r.Get("/breaches", h.Breaches)
}

// NewError logs err and writes the matching error envelope. Internal failures
// get a generic message.
func (h *Handler) NewError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	status := serrors.StatusCode(err)
	if serrors.KindOf(err) == nil && errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}

	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
		controller.WriteError(w, r, status, http.StatusText(status))

		return
	}

	logger.Debug(ctx, "request rejected", zap.Error(err))
	controller.WriteError(w, r, status, err.Error())
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	controller.WriteError(w, r, http.StatusNotFound, "endpoint not found")
}

// MethodNotAllowed answers known routes called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	controller.WriteError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return serrors.With(serrors.ErrBadRequest, "request body is required")
		}

		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid JSON body")
	}

	return nil
}

func (h *Handler) count(ctx context.Context, endpoint string, found bool) {
	h.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.Bool("found", found),
	))
}
