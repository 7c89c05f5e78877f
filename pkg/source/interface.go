// Package source defines the contract every breach data source fulfills and
// the static metadata describing a source.
package source

import (
	"breachcheck/pkg/domain"
	"context"
)

// Reliability is a coarse tier shown to users next to a source.
type Reliability string

const (
	ReliabilityHigh    Reliability = "high"
	ReliabilityMedium  Reliability = "medium"
	ReliabilityUnknown Reliability = "unknown"
)

// Info is static, descriptive metadata about a source.
type Info struct {
	ID          domain.SourceID `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Reliability Reliability     `json:"reliability"`
	Free        bool            `json:"free"`
	// Remote is true when checking the source costs a network round trip.
	// Remote sources are queried after local ones and are paced.
	Remote bool `json:"remote"`
}

// Source is the abstraction over one breach data provider.
//
//go:generate mockgen -package mocksource -source=interface.go -destination=mock/mocksource.go *
type Source interface {
	// Info returns the source metadata.
	Info() Info
	// Check looks the subject up. It never fails: transport, status and parse
	// errors are reported through an error-class outcome of the result.
	Check(ctx context.Context, subject string) domain.SourceResult
}

// CheckFunc is the signature of a single lookup.
type CheckFunc func(ctx context.Context, subject string) domain.SourceResult

type funcSource struct {
	info Info
	fn   CheckFunc
}

func (f funcSource) Info() Info { return f.info }

func (f funcSource) Check(ctx context.Context, subject string) domain.SourceResult {
	return f.fn(ctx, subject)
}

// New adapts a CheckFunc into a Source. Clients that serve several subject
// kinds (e.g. email and password search) expose one Source per kind this way.
func New(info Info, fn CheckFunc) Source {
	return funcSource{info: info, fn: fn}
}
