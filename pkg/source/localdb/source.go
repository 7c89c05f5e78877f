// Package localdb exposes the local corpus as a source.Source.
package localdb

import (
	"breachcheck/pkg/corpus"
	"breachcheck/pkg/domain"
	"breachcheck/pkg/source"
	"context"
	"errors"
)

// Source answers email checks from the local corpus.
type Source struct {
	file *corpus.File
}

// Info describes the source.
func (s *Source) Info() source.Info {
	return source.Info{
		ID:          domain.SourceLocalDB,
		Name:        "Local Database",
		Description: "Locally maintained list of known-breached accounts",
		Reliability: source.ReliabilityUnknown,
		Free:        true,
	}
}

// Check counts the corpus lines matching the email. A missing corpus is an
// api_error since absence of data says nothing about the subject.
func (s *Source) Check(_ context.Context, email string) domain.SourceResult {
	n, err := s.file.Count(email)
	switch {
	case errors.Is(err, corpus.ErrMissing):
		return domain.Failed(domain.SourceLocalDB, domain.OutcomeAPIError, "local breach corpus not found: %s", s.file.Path())
	case err != nil:
		return domain.Failed(domain.SourceLocalDB, domain.OutcomeAPIError, "could not check local corpus: %v", err)
	case n == 0:
		return domain.Clean(domain.SourceLocalDB, "email not found in local corpus")
	default:
		return domain.Found(domain.SourceLocalDB, n, nil, "email found in local corpus")
	}
}

// New wraps the corpus file as a source.
func New(file *corpus.File) *Source {
	return &Source{file: file}
}
