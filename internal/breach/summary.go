package breach

import "breachcheck/pkg/domain"

// Advisory sets, selected solely on whether any source found the subject.
var (
	foundRecommendations = []string{ //nolint: gochecknoglobals
		"Change the password on every account that used these credentials",
		"Enable two-factor authentication wherever it is offered",
		"Use a password manager to generate unique passwords",
		"Watch your accounts and statements for suspicious activity",
	}
	cleanRecommendations = []string{ //nolint: gochecknoglobals
		"Keep using strong, unique passwords",
		"Enable two-factor authentication wherever it is offered",
		"Check again periodically, new breaches surface regularly",
	}
)

// Recommendations returns a copy of the advisory set for the given verdict.
func Recommendations(found bool) []string {
	if found {
		return append([]string(nil), foundRecommendations...)
	}

	return append([]string(nil), cleanRecommendations...)
}

// Summarize reduces per-source results to a verdict. It is pure.
func Summarize(results domain.SourceResults) domain.Verdict {
	v := domain.Verdict{SourcesChecked: len(results)}
	for _, r := range results {
		if r.Outcome.Answered() {
			v.SourcesSuccessful++
		} else {
			v.SourcesFailed++
		}
		if r.Found() {
			v.Found = true
			v.TotalMatches += r.MatchCount
		}
	}

	v.RiskLevel = domain.RiskLow
	if v.Found {
		v.RiskLevel = domain.RiskMedium
	}
	v.Recommendations = Recommendations(v.Found)

	return v
}

// MergeRecommendations concatenates the sets dropping repeats, first
// occurrence wins.
func MergeRecommendations(sets ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, set := range sets {
		for _, rec := range set {
			if _, ok := seen[rec]; ok {
				continue
			}
			seen[rec] = struct{}{}
			out = append(out, rec)
		}
	}

	return out
}

// Overall combines the email verdict with the optional password verdict.
func Overall(email domain.Verdict, password *domain.Verdict) domain.OverallVerdict {
	o := domain.OverallVerdict{EmailFound: email.Found}
	sets := [][]string{email.Recommendations}
	if password != nil {
		o.PasswordFound = password.Found
		sets = append(sets, password.Recommendations)
	}

	switch {
	case o.EmailFound && o.PasswordFound:
		o.RiskLevel = domain.RiskHigh
	case o.EmailFound || o.PasswordFound:
		o.RiskLevel = domain.RiskMedium
	default:
		o.RiskLevel = domain.RiskLow
	}
	o.ActionRequired = o.RiskLevel != domain.RiskLow
	o.Recommendations = MergeRecommendations(sets...)

	return o
}
