package domain

import "time"

// SubjectKind says whether a check was run for an email or a password.
type SubjectKind string

const (
	SubjectEmail    SubjectKind = "email"
	SubjectPassword SubjectKind = "password"
)

// RiskLevel grades how exposed the checked subjects are.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Verdict is the reconciled decision derived from a set of per-source results.
// It is never mutated on its own; it is always recomputed from the results.
type Verdict struct {
	// Found is true iff at least one source reported the subject as found.
	Found bool `json:"found"`
	// TotalMatches sums MatchCount over the sources that found the subject.
	TotalMatches int `json:"total_matches"`
	// SourcesChecked is the number of per-source results.
	SourcesChecked int `json:"sources_checked"`
	// SourcesSuccessful counts results with an answered outcome.
	SourcesSuccessful int `json:"sources_successful"`
	// SourcesFailed counts results with an error-class outcome.
	SourcesFailed int `json:"sources_failed"`
	// RiskLevel grades the subject.
	RiskLevel RiskLevel `json:"risk_level"`
	// Recommendations are deduplicated advisory strings.
	Recommendations []string `json:"recommendations"`
}

// AggregatedCheck is the result of checking one subject across all sources.
// It is built fresh for every request and never persisted.
type AggregatedCheck struct {
	SubjectKind SubjectKind   `json:"subject_kind"`
	Timestamp   time.Time     `json:"timestamp"`
	Sources     SourceResults `json:"sources"`
	Summary     Verdict       `json:"summary"`
}

// OverallVerdict combines the email and password verdicts of a
// comprehensive check.
type OverallVerdict struct {
	RiskLevel       RiskLevel `json:"risk_level"`
	ActionRequired  bool      `json:"action_required"`
	EmailFound      bool      `json:"email_found"`
	PasswordFound   bool      `json:"password_found"`
	Recommendations []string  `json:"recommendations"`
}

// ComprehensiveCheck is the combined result of an email check and an
// optional password check.
type ComprehensiveCheck struct {
	Email         string           `json:"email"`
	Timestamp     time.Time        `json:"timestamp"`
	EmailCheck    AggregatedCheck  `json:"email_check"`
	PasswordCheck *AggregatedCheck `json:"password_check,omitempty"`
	Overall       OverallVerdict   `json:"overall"`
}

// RunningStats are process lifetime counters of completed email checks.
// FailedChecks counts checks that completed without finding a breach.
type RunningStats struct {
	TotalChecks      int64      `json:"total_checks"`
	SuccessfulChecks int64      `json:"successful_checks"`
	FailedChecks     int64      `json:"failed_checks"`
	// LastCheckAt is nil until the first check completes.
	LastCheckAt      *time.Time `json:"last_check_at"`
}
