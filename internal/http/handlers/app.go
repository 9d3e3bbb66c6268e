// Package handlers contains the HTTP endpoints of the doubt-solving API.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/quota"
)

// SolveService is the slice of the solver the handlers need.
type SolveService interface {
	Solve(ctx context.Context, question string, subject domain.Subject) (*domain.DoubtSolution, error)
	Simplify(ctx context.Context, solutionText string, subject domain.Subject) (string, error)
}

// GoogleVerifier validates Google ID tokens.
type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (domain.GoogleProfile, error)
}

type App struct {
	Logger       zerolog.Logger
	Users        domain.UserRepository
	Doubts       domain.DoubtRepository
	Usage        domain.UsageRepository
	Solver       SolveService
	Verifier     GoogleVerifier
	JWTSecret    string
	SolveTimeout time.Duration
	QuotaLoc     *time.Location
	Now          func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) today() string {
	return quota.Today(a.now(), a.QuotaLoc)
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

// recordUsage appends an analytics event; failures are logged and swallowed
// so analytics can never break a request.
func (a *App) recordUsage(ctx context.Context, ev domain.UsageEvent) {
	if a.Usage == nil {
		return
	}
	ev.Country = middleware.CountryFromContext(ctx)
	if err := a.Usage.Insert(ctx, ev); err != nil {
		a.Logger.Warn().Err(err).Str("event", ev.EventType).Msg("usage event insert failed")
	}
}
