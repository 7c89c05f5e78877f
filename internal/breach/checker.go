package breach

import (
	"breachcheck/internal/config"
	"breachcheck/pkg/domain"
	"breachcheck/pkg/logger"
	"breachcheck/pkg/metrics"
	"breachcheck/pkg/serrors"
	"breachcheck/pkg/source"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configure how sources are scheduled.
type Options struct {
	// Parallel fans sources out concurrently, each remote source paced by its
	// own limiter. Otherwise sources run one after another with Delay between
	// consecutive remote calls.
	Parallel bool
	// Delay is the minimum spacing between two calls to a remote source.
	Delay time.Duration
	// AutoLearn appends emails confirmed by a remote source to the local corpus.
	AutoLearn bool
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Parallel:  cfg.Sources.Parallel,
		Delay:     cfg.Sources.Delay,
		AutoLearn: cfg.LocalDB.Enabled && cfg.LocalDB.AutoLearn,
	}
}

// Deps are the collaborators of a Checker. Metrics and Learner may be nil.
type Deps struct {
	Gate            *Gate
	EmailSources    []source.Source
	PasswordSources []source.Source
	Stats           *Stats
	Metrics         *metrics.SourceMetrics
	Learner         Learner
}

type checker struct {
	options         Options
	gate            *Gate
	emailSources    []source.Source
	passwordSources []source.Source
	pacer           *Pacer
	stats           *Stats
	metrics         *metrics.SourceMetrics
	learner         Learner
	tracer          trace.Tracer
	now             func() time.Time
}

// CheckEmail queries every email source and records the outcome in the
// running stats.
func (c *checker) CheckEmail(ctx context.Context, email string) (*domain.AggregatedCheck, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "email is required")
	}

	res, err := c.run(ctx, domain.SubjectEmail, email, c.emailSources)
	if err != nil {
		return nil, fmt.Errorf("could not check email: %w", err)
	}
	c.stats.Record(res.Summary.Found)
	c.learn(ctx, email, res.Sources)

	return res, nil
}

// CheckPassword queries every password source. Password checks do not touch
// the running stats.
func (c *checker) CheckPassword(ctx context.Context, password string) (*domain.AggregatedCheck, error) {
	if password == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "password is required")
	}

	res, err := c.run(ctx, domain.SubjectPassword, password, c.passwordSources)
	if err != nil {
		return nil, fmt.Errorf("could not check password: %w", err)
	}

	return res, nil
}

// Comprehensive checks the email, then the password when one is given, and
// grades the combination.
func (c *checker) Comprehensive(ctx context.Context, email, password string) (*domain.ComprehensiveCheck, error) {
	emailCheck, err := c.CheckEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	out := &domain.ComprehensiveCheck{
		Email:      strings.TrimSpace(email),
		Timestamp:  c.now().UTC(),
		EmailCheck: *emailCheck,
	}

	var passwordVerdict *domain.Verdict
	if password != "" {
		passwordCheck, err := c.CheckPassword(ctx, password)
		if err != nil {
			return nil, err
		}
		out.PasswordCheck = passwordCheck
		passwordVerdict = &passwordCheck.Summary
	}
	out.Overall = Overall(emailCheck.Summary, passwordVerdict)

	return out, nil
}

func (c *checker) Stats() domain.RunningStats {
	return c.stats.Snapshot()
}

func (c *checker) run(ctx context.Context,
	kind domain.SubjectKind,
	subject string,
	sources []source.Source) (*domain.AggregatedCheck, error) {
	ctx, span := c.tracer.Start(ctx, "breach.check", trace.WithAttributes(attribute.String("subject_kind", string(kind))))
	defer span.End()

	var (
		results domain.SourceResults
		err     error
	)
	if c.options.Parallel {
		results, err = c.runParallel(ctx, subject, sources)
	} else {
		results, err = c.runSequential(ctx, subject, sources)
	}
	if err != nil {
		return nil, err
	}

	summary := Summarize(results)
	span.SetAttributes(attribute.Bool("found", summary.Found))

	return &domain.AggregatedCheck{
		SubjectKind: kind,
		Timestamp:   c.now().UTC(),
		Sources:     results,
		Summary:     summary,
	}, nil
}

func (c *checker) runSequential(ctx context.Context,
	subject string,
	sources []source.Source) (domain.SourceResults, error) {
	results := make(domain.SourceResults, len(sources))
	calledRemote := false
	for i, src := range sources {
		info := src.Info()
		if !c.gate.Available(info.ID) {
			results[i] = c.skipped(info.ID)

			continue
		}

		if info.Remote {
			if calledRemote {
				if err := c.pacer.Pause(ctx); err != nil {
					return nil, err
				}
			}
			calledRemote = true
		}
		results[i] = c.invoke(ctx, src, subject)
	}

	return results, nil
}

func (c *checker) runParallel(ctx context.Context,
	subject string,
	sources []source.Source) (domain.SourceResults, error) {
	results := make(domain.SourceResults, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		info := src.Info()
		if !c.gate.Available(info.ID) {
			results[i] = c.skipped(info.ID)

			continue
		}

		g.Go(func() error {
			if info.Remote {
				if err := c.pacer.Wait(gctx, info.ID); err != nil {
					return err
				}
			}
			results[i] = c.invoke(gctx, src, subject)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("could not run sources: %w", err)
	}

	return results, nil
}

func (c *checker) skipped(id domain.SourceID) domain.SourceResult {
	msg := string(id) + " not configured"
	if e, ok := c.gate.Entry(id); ok && e.Warning != "" {
		msg = e.Warning
	}

	return domain.Failed(id, domain.OutcomeNotConfigured, "%s", msg)
}

// invoke runs one source in isolation: a panic becomes an api_error result.
func (c *checker) invoke(ctx context.Context, src source.Source, subject string) (res domain.SourceResult) {
	id := src.Info().ID
	ctx, span := c.tracer.Start(ctx, "source.check", trace.WithAttributes(attribute.String("source", string(id))))
	ctx = logger.WithFields(ctx, zap.String("source", string(id)))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "source check panicked", zap.Any("panic", r))
			res = domain.Failed(id, domain.OutcomeAPIError, "%s check failed unexpectedly", id)
		}
		res.Source = id

		took := time.Since(start)
		span.SetAttributes(attribute.String("outcome", string(res.Outcome)))
		span.End()
		c.metrics.Observe(string(id), string(res.Outcome), took)
		logger.Debug(ctx, "source checked",
			zap.String("outcome", string(res.Outcome)),
			zap.Int("count", res.MatchCount),
			zap.Duration("latency", took))
	}()

	return src.Check(ctx, subject)
}

// learn appends the email to the corpus when a remote source confirmed it.
func (c *checker) learn(ctx context.Context, email string, results domain.SourceResults) {
	if !c.options.AutoLearn || c.learner == nil {
		return
	}

	confirmed := slices.ContainsFunc(results, func(r domain.SourceResult) bool {
		return r.Found() && r.Source != domain.SourceLocalDB
	})
	if !confirmed {
		return
	}

	added, err := c.learner.AppendIfAbsent(email)
	if err != nil {
		logger.Warn(ctx, "could not add confirmed email to local corpus", zap.Error(err))

		return
	}
	if added {
		logger.Info(ctx, "added confirmed email to local corpus")
	}
}

// order puts local sources first, keeping the relative order otherwise.
func order(sources []source.Source) []source.Source {
	out := slices.Clone(sources)
	slices.SortStableFunc(out, func(a, b source.Source) int {
		ar, br := a.Info().Remote, b.Info().Remote
		switch {
		case ar == br:
			return 0
		case !ar:
			return -1
		default:
			return 1
		}
	})

	return out
}

func uniqueIDs(sources []source.Source) error {
	seen := make(map[domain.SourceID]struct{}, len(sources))
	for _, s := range sources {
		id := s.Info().ID
		if _, ok := seen[id]; ok {
			return fmt.Errorf("duplicate source %q", id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// New creates a Checker. Sources of each subject kind must have distinct ids.
func New(deps Deps, options Options) (Checker, error) {
	if deps.Gate == nil {
		return nil, errors.New("gate is required")
	}
	for _, list := range [][]source.Source{deps.EmailSources, deps.PasswordSources} {
		if err := uniqueIDs(list); err != nil {
			return nil, err
		}
	}

	stats := deps.Stats
	if stats == nil {
		stats = NewStats()
	}

	return &checker{
		options:         options,
		gate:            deps.Gate,
		emailSources:    order(deps.EmailSources),
		passwordSources: order(deps.PasswordSources),
		pacer:           NewPacer(options.Delay),
		stats:           stats,
		metrics:         deps.Metrics,
		learner:         deps.Learner,
		tracer:          otel.Tracer("breachcheck/internal/breach"),
		now:             time.Now,
	}, nil
}
