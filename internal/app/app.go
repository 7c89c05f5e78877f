// Package app builds the process-wide context object: configuration, the
// shared outbound HTTP client, the availability gate, the corpus, the
// aggregator and its running stats.
package app

import (
	"breachcheck/internal/breach"
	"breachcheck/internal/catalogue"
	"breachcheck/internal/config"
	"breachcheck/pkg/corpus"
	"breachcheck/pkg/domain"
	"breachcheck/pkg/logger"
	"breachcheck/pkg/metrics"
	"breachcheck/pkg/source"
	"breachcheck/pkg/source/dehashed"
	"breachcheck/pkg/source/hibp"
	"breachcheck/pkg/source/intelx"
	"breachcheck/pkg/source/localdb"
	"breachcheck/pkg/source/pwnedpasswords"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// App is created once at process start and closed at shutdown.
type App struct {
	Config     *config.Config
	HTTPClient *http.Client
	Corpus     *corpus.File
	Gate       *breach.Gate
	Stats      *breach.Stats
	Checker    breach.Checker
	// Sources lists the metadata of every distinct source in query order.
	Sources   []source.Info
	Catalogue []domain.CatalogueEntry
	StartedAt time.Time
}

// userAgentTransport stamps every outbound request with a fixed User-Agent.
type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t userAgentTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if t.userAgent != "" && r.Header.Get("User-Agent") == "" {
		r = r.Clone(r.Context())
		r.Header.Set("User-Agent", t.userAgent)
	}

	return t.next.RoundTrip(r) //nolint: wrapcheck
}

// NewHTTPClient returns the client shared by every remote source.
func NewHTTPClient(timeout time.Duration, userAgent string) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: userAgentTransport{
			next:      http.DefaultTransport.(*http.Transport).Clone(), //nolint: forcetypeassert
			userAgent: userAgent,
		},
	}
}

// Requirements maps the configuration onto gate requirements, one per source id.
func Requirements(cfg *config.Config) []breach.Requirement {
	return []breach.Requirement{
		{
			Source:     domain.SourceLocalDB,
			CorpusPath: cfg.LocalDB.Path,
			Enabled:    cfg.LocalDB.Enabled,
		},
		{
			Source:             domain.SourceHIBPAccount,
			Enabled:            cfg.HIBP.Enabled,
			CredentialOptional: true,
		},
		{
			Source:      domain.SourceDeHashed,
			Enabled:     cfg.DeHashed.Enabled,
			Credential:  cfg.DeHashed.APIKey,
			Placeholder: dehashed.Placeholder,
		},
		{
			Source:      domain.SourceIntelX,
			Enabled:     cfg.IntelX.Enabled,
			Credential:  cfg.IntelX.APIKey,
			Placeholder: intelx.Placeholder,
		},
		{
			Source:   domain.SourcePwnedPasswords,
			AlwaysOn: true,
		},
	}
}

// New wires the application. reg may be nil, in which case no source metrics
// are collected.
func New(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*App, error) {
	a := &App{
		Config:     cfg,
		HTTPClient: NewHTTPClient(cfg.Sources.RequestTimeout, cfg.Sources.UserAgent),
		Corpus:     corpus.Open(cfg.LocalDB.Path, cfg.LocalDB.CaseSensitive),
		Gate:       breach.EvaluateGate(Requirements(cfg)...),
		Stats:      breach.NewStats(),
		StartedAt:  time.Now().UTC(),
	}

	for _, e := range a.Gate.Entries() {
		if !e.Available {
			logger.Warn(ctx, "breach source unavailable",
				zap.String("source", string(e.Source)),
				zap.String("status", string(e.Status)))
		}
	}

	var sourceMetrics *metrics.SourceMetrics
	if reg != nil {
		m, err := metrics.NewSourceMetrics(reg)
		if err != nil {
			return nil, fmt.Errorf("could not create metrics: %w", err)
		}
		sourceMetrics = m
	}

	hibpClient := hibp.New(a.HTTPClient, cfg.HIBP.BaseURL, cfg.HIBP.APIKey)
	dehashedClient := dehashed.New(a.HTTPClient, dehashed.Options{
		BaseURL: cfg.DeHashed.BaseURL,
		APIKey:  cfg.DeHashed.APIKey,
		Size:    cfg.DeHashed.Size,
	})
	intelxClient := intelx.New(a.HTTPClient, cfg.IntelX.BaseURL, cfg.IntelX.APIKey, cfg.IntelX.MaxResults)
	pwnedClient := pwnedpasswords.New(a.HTTPClient, cfg.PwnedPasswords.BaseURL)

	emailSources := []source.Source{
		localdb.New(a.Corpus),
		hibpClient,
		dehashedClient.EmailSource(),
		intelxClient,
	}
	passwordSources := []source.Source{
		pwnedClient,
		dehashedClient.PasswordSource(),
	}

	seen := make(map[domain.SourceID]struct{})
	for _, s := range append(append([]source.Source{}, emailSources...), passwordSources...) {
		info := s.Info()
		if _, ok := seen[info.ID]; ok {
			continue
		}
		seen[info.ID] = struct{}{}
		a.Sources = append(a.Sources, info)
	}

	checker, err := breach.New(breach.Deps{
		Gate:            a.Gate,
		EmailSources:    emailSources,
		PasswordSources: passwordSources,
		Stats:           a.Stats,
		Metrics:         sourceMetrics,
		Learner:         a.Corpus,
	}, breach.NewOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("could not create checker: %w", err)
	}
	a.Checker = checker

	a.Catalogue, err = catalogue.Load()
	if err != nil {
		return nil, err
	}

	return a, nil
}

// Close releases the shared outbound connections.
func (a *App) Close() {
	a.HTTPClient.CloseIdleConnections()
}
