package main

import (
	"breachcheck/internal/api/handler/v1handler"
	"breachcheck/internal/app"
)

func apiDeps(a *app.App) v1handler.Deps {
	return v1handler.Deps{
		Checker:   a.Checker,
		Gate:      a.Gate,
		Sources:   a.Sources,
		Corpus:    a.Corpus,
		Catalogue: a.Catalogue,
		StartedAt: a.StartedAt,
	}
}
