package breach

import (
	"breachcheck/pkg/domain"
	"os"
	"strings"
)

// GateStatus is the availability label reported for a source.
type GateStatus string

const (
	StatusAvailable     GateStatus = "available"
	StatusConfigured    GateStatus = "configured"
	StatusNotConfigured GateStatus = "not_configured"
	StatusDisabled      GateStatus = "disabled"
	StatusMissing       GateStatus = "missing"
)

// Requirement describes what a source needs before it may be invoked.
type Requirement struct {
	Source domain.SourceID
	// AlwaysOn sources need neither a flag nor a credential.
	AlwaysOn bool
	// CorpusPath marks a corpus-backed source, gated on the file being present.
	CorpusPath string
	Enabled    bool
	// CredentialOptional sources only need the enabled flag.
	CredentialOptional bool
	Credential         string
	// Placeholder is the sentinel credential value shipped in sample configs.
	Placeholder string
}

// GateEntry is the cached availability of one source.
type GateEntry struct {
	Source    domain.SourceID `json:"source"`
	Status    GateStatus      `json:"status"`
	Available bool            `json:"available"`
	Warning   string          `json:"warning,omitempty"`
}

func evaluate(req Requirement) GateEntry {
	e := GateEntry{Source: req.Source}
	switch {
	case req.AlwaysOn:
		e.Status, e.Available = StatusAvailable, true
	case req.CorpusPath != "":
		switch {
		case !req.Enabled:
			e.Status, e.Warning = StatusDisabled, "local breach corpus disabled"
		case !fileExists(req.CorpusPath):
			e.Status, e.Warning = StatusMissing, "local breach corpus not found"
		default:
			e.Status, e.Available = StatusAvailable, true
		}
	case !req.Enabled:
		e.Status, e.Warning = StatusDisabled, string(req.Source)+" disabled"
	case req.CredentialOptional:
		e.Status, e.Available = StatusAvailable, true
	default:
		cred := strings.TrimSpace(req.Credential)
		if cred == "" || cred == req.Placeholder {
			e.Status, e.Warning = StatusNotConfigured, string(req.Source)+" API key not configured"
		} else {
			e.Status, e.Available = StatusConfigured, true
		}
	}

	return e
}

func fileExists(path string) bool {
	st, err := os.Stat(path)

	return err == nil && !st.IsDir()
}

// Gate caches per-source availability. It is computed once when the
// configuration is loaded and never re-probes.
type Gate struct {
	order   []domain.SourceID
	entries map[domain.SourceID]GateEntry
}

// EvaluateGate applies the availability rules to every requirement. A source
// listed twice keeps its first evaluation.
func EvaluateGate(reqs ...Requirement) *Gate {
	g := &Gate{entries: make(map[domain.SourceID]GateEntry, len(reqs))}
	for _, req := range reqs {
		if _, ok := g.entries[req.Source]; ok {
			continue
		}
		g.order = append(g.order, req.Source)
		g.entries[req.Source] = evaluate(req)
	}

	return g
}

// Available reports whether the source may be invoked. Unknown sources are
// unavailable.
func (g *Gate) Available(id domain.SourceID) bool {
	return g.entries[id].Available
}

// Entry returns the cached entry for the source.
func (g *Gate) Entry(id domain.SourceID) (GateEntry, bool) {
	e, ok := g.entries[id]

	return e, ok
}

// Entries returns all entries in evaluation order.
func (g *Gate) Entries() []GateEntry {
	out := make([]GateEntry, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.entries[id])
	}

	return out
}

// Validation is the configuration health report served on the status endpoint.
type Validation struct {
	Valid     bool                           `json:"valid"`
	Errors    []string                       `json:"errors"`
	Warnings  []string                       `json:"warnings"`
	APIStatus map[domain.SourceID]GateStatus `json:"api_status"`
}

// Validation summarizes the gate. The configuration is invalid only when no
// source at all can be invoked; unavailable sources are warnings.
func (g *Gate) Validation() Validation {
	v := Validation{
		Errors:    []string{},
		Warnings:  []string{},
		APIStatus: make(map[domain.SourceID]GateStatus, len(g.order)),
	}
	available := 0
	for _, e := range g.Entries() {
		v.APIStatus[e.Source] = e.Status
		if e.Available {
			available++
		} else if e.Warning != "" {
			v.Warnings = append(v.Warnings, e.Warning)
		}
	}
	if available == 0 {
		v.Errors = append(v.Errors, "no breach source is available")
	}
	v.Valid = len(v.Errors) == 0

	return v
}
