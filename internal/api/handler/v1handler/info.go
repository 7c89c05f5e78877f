package v1handler

import (
	"breachcheck/internal/breach"
	"breachcheck/pkg/controller"
	"breachcheck/pkg/corpus"
	"breachcheck/pkg/domain"
	"breachcheck/pkg/logger"
	"breachcheck/pkg/source"
	"net/http"
	"runtime"
	"time"

	"go.uber.org/zap"
)

type SystemInfo struct {
	AppVersion    string  `json:"app_version"`
	GoVersion     string  `json:"go_version"`
	UptimeSeconds float64 `json:"uptime"`
}

type StatusResponse struct {
	breach.Validation
	Stats  domain.RunningStats `json:"stats"`
	System SystemInfo          `json:"system"`
}

func (h *Handler) system() SystemInfo {
	return SystemInfo{
		AppVersion:    Version,
		GoVersion:     runtime.Version(),
		UptimeSeconds: h.now().Sub(h.deps.StartedAt).Seconds(),
	}
}

// Status reports configuration validity, per-source availability and the
// running counters.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	controller.WriteJSON(w, r, http.StatusOK, StatusResponse{
		Validation: h.deps.Gate.Validation(),
		Stats:      h.deps.Checker.Stats(),
		System:     h.system(),
	})
}

type SourceView struct {
	source.Info
	Status breach.GateStatus `json:"status"`
}

// SourceList describes every source keyed by id.
func (h *Handler) SourceList(w http.ResponseWriter, r *http.Request) {
	out := make(map[domain.SourceID]SourceView, len(h.deps.Sources))
	for _, info := range h.deps.Sources {
		v := SourceView{Info: info, Status: breach.StatusNotConfigured}
		if e, ok := h.deps.Gate.Entry(info.ID); ok {
			v.Status = e.Status
		}
		out[info.ID] = v
	}

	controller.WriteJSON(w, r, http.StatusOK, out)
}

type LocalDatabaseStats struct {
	*corpus.Stats
	Error string `json:"error,omitempty"`
}

type StatsResponse struct {
	System        StatusResponse     `json:"system"`
	LocalDatabase LocalDatabaseStats `json:"local_database"`
	LastUpdated   time.Time          `json:"last_updated"`
}

// StatsReport combines the status report with corpus statistics. A missing
// corpus is reported inline rather than failing the request.
func (h *Handler) StatsReport(w http.ResponseWriter, r *http.Request) {
	out := StatsResponse{
		System: StatusResponse{
			Validation: h.deps.Gate.Validation(),
			Stats:      h.deps.Checker.Stats(),
			System:     h.system(),
		},
		LastUpdated: h.now().UTC(),
	}

	st, err := h.deps.Corpus.Stats()
	if err != nil {
		logger.Debug(r.Context(), "could not read corpus stats", zap.Error(err))
		out.LocalDatabase.Error = err.Error()
	} else {
		out.LocalDatabase.Stats = &st
	}

	controller.WriteJSON(w, r, http.StatusOK, out)
}

// Breaches lists the sample catalogue.
func (h *Handler) Breaches(w http.ResponseWriter, r *http.Request) {
	controller.WriteJSON(w, r, http.StatusOK, h.deps.Catalogue)
}
