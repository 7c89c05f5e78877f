package domain

import (
	"encoding/json"
	"fmt"

	"github.com/go-faster/jx"
)

// SourceID identifies a breach data source.
type SourceID string

const (
	// SourceLocalDB is the flat file of known-breached identifiers.
	SourceLocalDB SourceID = "local_db"
	// SourceHIBPAccount is the HIBP breached-account lookup.
	SourceHIBPAccount SourceID = "hibp_api"
	// SourceDeHashed is the DeHashed v2 search API.
	SourceDeHashed SourceID = "dehashed"
	// SourceIntelX is the Intelligence X phonebook search.
	SourceIntelX SourceID = "intelx"
	// SourcePwnedPasswords is the HIBP Pwned Passwords range API.
	SourcePwnedPasswords SourceID = "hibp_passwords"
)

// Outcome is the normalized result category of querying one source.
// Exactly one outcome applies to a SourceResult.
type Outcome string

const (
	// OutcomeFound means the subject was present in the source's corpus.
	OutcomeFound Outcome = "found"
	// OutcomeClean means the source answered and the subject was absent.
	OutcomeClean Outcome = "clean"
	// OutcomeNotConfigured means the source is disabled or missing its credential.
	OutcomeNotConfigured Outcome = "not_configured"
	// OutcomeRateLimited means the upstream rejected the call with a rate limit.
	OutcomeRateLimited Outcome = "rate_limited"
	// OutcomeAuthFailed means the upstream rejected the credential.
	OutcomeAuthFailed Outcome = "auth_failed"
	// OutcomeSubscriptionRequired means the credential's plan does not cover the query.
	OutcomeSubscriptionRequired Outcome = "subscription_required"
	// OutcomeAPIError means the upstream answered with an unexpected status or payload.
	OutcomeAPIError Outcome = "api_error"
	// OutcomeTransportError means the call failed on the network or timed out.
	OutcomeTransportError Outcome = "transport_error"
)

// Answered reports whether the outcome is a real answer (found or clean)
// rather than a failure.
func (o Outcome) Answered() bool {
	return o == OutcomeFound || o == OutcomeClean
}

// SourceResult is the normalized outcome of querying one source.
type SourceResult struct {
	// Source is the id of the source that produced this result.
	Source SourceID `json:"source"`
	// Outcome is the result category.
	Outcome Outcome `json:"status"`
	// MatchCount is how many times the subject appeared in the source's corpus.
	// It is 0 for clean and error outcomes.
	MatchCount int `json:"count"`
	// Detail is an opaque, source specific payload kept for display only.
	Detail any `json:"detail,omitempty"`
	// Message is a human readable explanation.
	Message string `json:"message"`
}

// Found reports whether the source found the subject.
func (r SourceResult) Found() bool { return r.Outcome == OutcomeFound }

// MarshalJSON adds the derived "found" flag used by the front end.
func (r SourceResult) MarshalJSON() ([]byte, error) {
	type plain SourceResult

	return json.Marshal(struct {
		plain
		Found bool `json:"found"`
	}{plain: plain(r), Found: r.Found()})
}

// Found builds a found result.
func Found(source SourceID, count int, detail any, msgFmt string, args ...any) SourceResult {
	return SourceResult{
		Source:     source,
		Outcome:    OutcomeFound,
		MatchCount: count,
		Detail:     detail,
		Message:    fmt.Sprintf(msgFmt, args...),
	}
}

// Clean builds a clean result.
func Clean(source SourceID, msgFmt string, args ...any) SourceResult {
	return SourceResult{Source: source, Outcome: OutcomeClean, Message: fmt.Sprintf(msgFmt, args...)}
}

// Failed builds a result carrying an error-class outcome.
func Failed(source SourceID, outcome Outcome, msgFmt string, args ...any) SourceResult {
	return SourceResult{Source: source, Outcome: outcome, Message: fmt.Sprintf(msgFmt, args...)}
}

// SourceResults is an ordered collection of per-source results. Order is the
// order in which sources were queried and ids are unique.
type SourceResults []SourceResult

// Get returns the result for the given source id.
func (rs SourceResults) Get(id SourceID) (SourceResult, bool) {
	for _, r := range rs {
		if r.Source == id {
			return r, true
		}
	}

	return SourceResult{}, false
}

// MarshalJSON encodes the results as an object keyed by source id, keeping
// the query order of the keys.
func (rs SourceResults) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	e.ObjStart()
	for _, r := range rs {
		b, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("could not encode %s result: %w", r.Source, err)
		}
		e.FieldStart(string(r.Source))
		e.Raw(b)
	}
	e.ObjEnd()

	return e.Bytes(), nil
}

// UnmarshalJSON decodes the object form produced by MarshalJSON, preserving
// key order.
func (rs *SourceResults) UnmarshalJSON(data []byte) error {
	out := SourceResults{}
	d := jx.DecodeBytes(data)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		raw, err := d.Raw()
		if err != nil {
			return fmt.Errorf("could not read %s result: %w", key, err)
		}
		var r SourceResult
		if err := json.Unmarshal(raw, &r); err != nil {
			return fmt.Errorf("could not decode %s result: %w", key, err)
		}
		r.Source = SourceID(key)
		out = append(out, r)

		return nil
	}); err != nil {
		return fmt.Errorf("could not decode source results: %w", err)
	}
	*rs = out

	return nil
}
