package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"server/internal/domain"
	"server/internal/quota"
)

type updateSubscriptionRequest struct {
	Subscription string `json:"subscription"`
}

// UpdateSubscription switches the caller's tier. Role changes are not
// possible here; those go through the operator CLI.
func (a *App) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	var req updateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", message(r.Context(), "invalid_payload"))
		return
	}
	tier, err := domain.ParseSubscription(req.Subscription)
	if err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", message(r.Context(), "invalid_tier"))
		return
	}
	user, err := a.Users.UpdateSubscription(r.Context(), a.currentUserID(r), tier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", message(r.Context(), "user_not_found"))
			return
		}
		a.Logger.Error().Err(err).Msg("update subscription failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update subscription")
		return
	}
	a.json(w, http.StatusOK, a.userDTO(user))
}

type userStatsResponse struct {
	TotalDoubts     int    `json:"totalDoubts"`
	Bookmarked      int    `json:"bookmarked"`
	DoubtsUsedToday int    `json:"doubtsUsedToday"`
	DoubtsRemaining *int   `json:"doubtsRemaining"`
	Subscription    string `json:"subscription"`
}

// UserStats returns lifetime counts plus today's quota snapshot.
func (a *App) UserStats(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	user, err := a.Users.GetByID(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", message(r.Context(), "user_not_found"))
		return
	}
	total, bookmarked, err := a.Doubts.CountForUser(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("count doubts failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	tier := string(user.Subscription)
	if user.Role == domain.UserRoleAdmin {
		tier = "admin"
	}
	today := a.today()
	a.json(w, http.StatusOK, userStatsResponse{
		TotalDoubts:     total,
		Bookmarked:      bookmarked,
		DoubtsUsedToday: quota.EffectiveUsed(quota.StateOf(user), today),
		DoubtsRemaining: quota.Remaining(quota.StateOf(user), today),
		Subscription:    tier,
	})
}
