package breach

import (
	"breachcheck/pkg/domain"
	"sync"
	"time"
)

// Stats holds the process-wide running counters. Safe for concurrent use.
type Stats struct {
	mu    sync.Mutex
	stats domain.RunningStats
	now   func() time.Time
}

// Record counts one completed email check. A found breach is a
// "successful" check, anything else a "failed" one.
func (s *Stats) Record(breachFound bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.TotalChecks++
	if breachFound {
		s.stats.SuccessfulChecks++
	} else {
		s.stats.FailedChecks++
	}
	t := s.now().UTC()
	s.stats.LastCheckAt = &t
}

// Snapshot returns a copy of the counters.
func (s *Stats) Snapshot() domain.RunningStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.stats
	if out.LastCheckAt != nil {
		t := *out.LastCheckAt
		out.LastCheckAt = &t
	}

	return out
}

func NewStats() *Stats {
	return &Stats{now: time.Now}
}
