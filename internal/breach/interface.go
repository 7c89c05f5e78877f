// Package breach aggregates per-source lookups into one verdict per subject.
package breach

import (
	"breachcheck/pkg/domain"
	"context"
)

//go:generate mockgen -package mockbreach -source=interface.go -destination=mock/mockbreach.go *
type Checker interface {
	CheckEmail(ctx context.Context, email string) (*domain.AggregatedCheck, error)
	CheckPassword(ctx context.Context, password string) (*domain.AggregatedCheck, error)
	Comprehensive(ctx context.Context, email, password string) (*domain.ComprehensiveCheck, error)
	Stats() domain.RunningStats
}

// Learner records identifiers confirmed as breached.
type Learner interface {
	AppendIfAbsent(identifier string) (bool, error)
}
