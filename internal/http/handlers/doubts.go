package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/quota"
)

type createDoubtRequest struct {
	Question string `json:"question"`
	Subject  string `json:"subject"`
}

type doubtDTO struct {
	ID           string          `json:"id"`
	Question     string          `json:"question"`
	Subject      string          `json:"subject"`
	Solution     json.RawMessage `json:"solution"`
	IsBookmarked bool            `json:"isBookmarked"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type createDoubtResponse struct {
	Doubt           doubtDTO              `json:"doubt"`
	Solution        *domain.DoubtSolution `json:"solution"`
	Error           string                `json:"error,omitempty"`
	DoubtsRemaining *int                  `json:"doubtsRemaining"`
}

func toDoubtDTO(d *domain.Doubt) doubtDTO {
	dto := doubtDTO{
		ID:           d.ID,
		Question:     d.Question,
		Subject:      string(d.Subject),
		IsBookmarked: d.IsBookmarked,
		CreatedAt:    d.CreatedAt,
	}
	if d.Solution != nil {
		dto.Solution = json.RawMessage(*d.Solution)
	}
	return dto
}

// CreateDoubt validates the question, reserves a quota slot, persists the
// doubt and runs the solve. Quota is consumed when the doubt is accepted,
// before the provider call; a failed solve does not refund it. Solve
// failures still return 200 with the saved doubt and an error tag so the
// client can show the question as pending.
func (a *App) CreateDoubt(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)

	var req createDoubtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", message(r.Context(), "invalid_payload"))
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		a.error(w, http.StatusBadRequest, "validation_error", message(r.Context(), "question_required"))
		return
	}
	subject, err := domain.ParseSubject(req.Subject)
	if err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", message(r.Context(), "unknown_subject"))
		return
	}

	user, err := a.Users.GetByID(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", message(r.Context(), "user_not_found"))
		return
	}

	today := a.today()
	decision := quota.CheckAndReserve(quota.StateOf(user), today)
	if !decision.Allowed {
		a.error(w, http.StatusForbidden, "quota_exceeded", message(r.Context(), "quota_exceeded"))
		return
	}

	doubt, err := a.Doubts.Create(r.Context(), userID, question, subject)
	if err != nil {
		a.Logger.Error().Err(err).Msg("create doubt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save doubt")
		return
	}

	if _, err := a.Users.CommitDoubtUsage(r.Context(), userID, today); err != nil {
		// The doubt is already saved; losing one counter tick beats failing
		// the request.
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("commit doubt usage failed")
	}

	solveCtx, cancel := context.WithTimeout(r.Context(), a.SolveTimeout)
	defer cancel()
	start := a.now()
	solution, solveErr := a.Solver.Solve(solveCtx, question, subject)
	a.recordUsage(r.Context(), domain.UsageEvent{
		UserID:    userID,
		DoubtID:   &doubt.ID,
		EventType: "DOUBT_SOLVE",
		Success:   solveErr == nil,
		LatencyMS: int(time.Since(start).Milliseconds()),
	})

	if solveErr != nil {
		tag := "ai_provider_error"
		if errors.Is(solveErr, domain.ErrMalformedResponse) {
			tag = "malformed_response"
		}
		a.json(w, http.StatusOK, createDoubtResponse{
			Doubt:           toDoubtDTO(doubt),
			Error:           tag,
			DoubtsRemaining: decision.Remaining,
		})
		return
	}

	serialized, err := json.Marshal(solution)
	if err != nil {
		a.Logger.Error().Err(err).Msg("serialize solution failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to store solution")
		return
	}
	if err := a.Doubts.AttachSolution(r.Context(), doubt.ID, userID, string(serialized)); err != nil {
		a.Logger.Error().Err(err).Str("doubt_id", doubt.ID).Msg("attach solution failed")
	}
	text := string(serialized)
	doubt.Solution = &text

	a.json(w, http.StatusOK, createDoubtResponse{
		Doubt:           toDoubtDTO(doubt),
		Solution:        solution,
		DoubtsRemaining: decision.Remaining,
	})
}

// ListDoubts returns the user's doubts, newest first.
func (a *App) ListDoubts(w http.ResponseWriter, r *http.Request) {
	doubts, err := a.Doubts.ListByUser(r.Context(), a.currentUserID(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("list doubts failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load doubts")
		return
	}
	a.json(w, http.StatusOK, doubtListDTO(doubts))
}

// ListBookmarkedDoubts returns only the user's bookmarked doubts.
func (a *App) ListBookmarkedDoubts(w http.ResponseWriter, r *http.Request) {
	doubts, err := a.Doubts.ListBookmarked(r.Context(), a.currentUserID(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("list bookmarked doubts failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load doubts")
		return
	}
	a.json(w, http.StatusOK, doubtListDTO(doubts))
}

func doubtListDTO(doubts []domain.Doubt) []doubtDTO {
	out := make([]doubtDTO, 0, len(doubts))
	for i := range doubts {
		out = append(out, toDoubtDTO(&doubts[i]))
	}
	return out
}

type updateDoubtRequest struct {
	IsBookmarked *bool `json:"isBookmarked"`
}

// UpdateDoubt toggles the bookmark flag. Only isBookmarked is writable.
func (a *App) UpdateDoubt(w http.ResponseWriter, r *http.Request) {
	var req updateDoubtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", message(r.Context(), "invalid_payload"))
		return
	}
	if req.IsBookmarked == nil {
		a.error(w, http.StatusBadRequest, "validation_error", message(r.Context(), "bookmark_required"))
		return
	}
	doubt, err := a.Doubts.SetBookmark(r.Context(), chi.URLParam(r, "id"), a.currentUserID(r), *req.IsBookmarked)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", message(r.Context(), "doubt_not_found"))
			return
		}
		a.Logger.Error().Err(err).Msg("update doubt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update doubt")
		return
	}
	a.json(w, http.StatusOK, toDoubtDTO(doubt))
}

type simplifyResponse struct {
	Simplified string `json:"simplified"`
}

// SimplifyDoubt rephrases an existing solution in plainer language. It does
// not consume quota and does not modify the stored solution.
func (a *App) SimplifyDoubt(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	doubt, err := a.Doubts.GetForUser(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", message(r.Context(), "doubt_not_found"))
			return
		}
		a.Logger.Error().Err(err).Msg("load doubt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load doubt")
		return
	}
	if doubt.Solution == nil {
		a.error(w, http.StatusNotFound, "not_found", message(r.Context(), "solution_missing"))
		return
	}

	solveCtx, cancel := context.WithTimeout(r.Context(), a.SolveTimeout)
	defer cancel()
	start := a.now()
	simplified, err := a.Solver.Simplify(solveCtx, *doubt.Solution, doubt.Subject)
	a.recordUsage(r.Context(), domain.UsageEvent{
		UserID:    userID,
		DoubtID:   &doubt.ID,
		EventType: "DOUBT_SIMPLIFY",
		Success:   err == nil,
		LatencyMS: int(time.Since(start).Milliseconds()),
	})
	if err != nil {
		tag := "ai_provider_error"
		if errors.Is(err, domain.ErrMalformedResponse) {
			tag = "malformed_response"
		}
		a.error(w, http.StatusBadGateway, tag, message(r.Context(), "provider_failed"))
		return
	}
	a.json(w, http.StatusOK, simplifyResponse{Simplified: simplified})
}
