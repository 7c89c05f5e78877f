package v1handler

import (
	"breachcheck/pkg/controller"
	"breachcheck/pkg/domain"
	"breachcheck/pkg/serrors"
	"net/http"
	"strings"
	"time"
)

type CheckAccountRequest struct {
	Account string `json:"account"`
}

// BreachHit is one source that found the account.
type BreachHit struct {
	Source domain.SourceID     `json:"source"`
	Data   domain.SourceResult `json:"data"`
}

type CheckAccountResponse struct {
	Found     bool                 `json:"found"`
	Breaches  []BreachHit          `json:"breaches"`
	Sources   domain.SourceResults `json:"sources"`
	Summary   domain.Verdict       `json:"summary"`
	Timestamp time.Time            `json:"timestamp"`
}

func (h *Handler) CheckAccount(w http.ResponseWriter, r *http.Request) {
	var req CheckAccountRequest
	if err := decode(w, r, &req); err != nil {
		h.NewError(w, r, err)

		return
	}
	account := strings.TrimSpace(req.Account)
	if account == "" {
		h.NewError(w, r, serrors.With(serrors.ErrBadRequest, "account must not be empty"))

		return
	}

	res, err := h.deps.Checker.CheckEmail(r.Context(), account)
	if err != nil {
		h.NewError(w, r, err)

		return
	}
	h.count(r.Context(), "check-account", res.Summary.Found)

	out := CheckAccountResponse{
		Found:     res.Summary.Found,
		Breaches:  []BreachHit{},
		Sources:   res.Sources,
		Summary:   res.Summary,
		Timestamp: res.Timestamp,
	}
	for _, s := range res.Sources {
		if s.Found() {
			out.Breaches = append(out.Breaches, BreachHit{Source: s.Source, Data: s})
		}
	}

	controller.WriteJSON(w, r, http.StatusOK, out)
}

type CheckPasswordRequest struct {
	Password string `json:"password"`
}

// CheckPasswordResponse lifts pwned, count and message from the Pwned
// Passwords result for the front end.
type CheckPasswordResponse struct {
	Pwned     bool                 `json:"pwned"`
	Count     int                  `json:"count"`
	Message   string               `json:"message"`
	Sources   domain.SourceResults `json:"sources"`
	Summary   domain.Verdict       `json:"summary"`
	Timestamp time.Time            `json:"timestamp"`
}

func (h *Handler) CheckPassword(w http.ResponseWriter, r *http.Request) {
	var req CheckPasswordRequest
	if err := decode(w, r, &req); err != nil {
		h.NewError(w, r, err)

		return
	}
	password := strings.TrimSpace(req.Password)
	if password == "" {
		h.NewError(w, r, serrors.With(serrors.ErrBadRequest, "password must not be empty"))

		return
	}

	res, err := h.deps.Checker.CheckPassword(r.Context(), password)
	if err != nil {
		h.NewError(w, r, err)

		return
	}
	h.count(r.Context(), "check-password", res.Summary.Found)

	out := CheckPasswordResponse{
		Message:   "password check completed",
		Sources:   res.Sources,
		Summary:   res.Summary,
		Timestamp: res.Timestamp,
	}
	if pp, ok := res.Sources.Get(domain.SourcePwnedPasswords); ok {
		out.Pwned = pp.Found()
		out.Count = pp.MatchCount
		out.Message = pp.Message
	}

	controller.WriteJSON(w, r, http.StatusOK, out)
}

type ComprehensiveCheckRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) ComprehensiveCheck(w http.ResponseWriter, r *http.Request) {
	var req ComprehensiveCheckRequest
	if err := decode(w, r, &req); err != nil {
		h.NewError(w, r, err)

		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		h.NewError(w, r, serrors.With(serrors.ErrBadRequest, "email must not be empty"))

		return
	}

	res, err := h.deps.Checker.Comprehensive(r.Context(), email, strings.TrimSpace(req.Password))
	if err != nil {
		h.NewError(w, r, err)

		return
	}
	h.count(r.Context(), "comprehensive-check", res.Overall.ActionRequired)

	controller.WriteJSON(w, r, http.StatusOK, res)
}

type NotifyRequest struct {
	Target  string `json:"target"`
	Contact string `json:"contact"`
}

type NotifyResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Notify acknowledges a breach notification subscription. Nothing is stored.
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	var req NotifyRequest
	if err := decode(w, r, &req); err != nil {
		h.NewError(w, r, err)

		return
	}
	target := strings.TrimSpace(req.Target)
	if target == "" {
		h.NewError(w, r, serrors.With(serrors.ErrBadRequest, "target must not be empty"))

		return
	}

	controller.WriteJSON(w, r, http.StatusOK, NotifyResponse{
		Success:   true,
		Message:   "subscription for \"" + target + "\" added",
		Timestamp: h.now().UTC(),
	})
}
