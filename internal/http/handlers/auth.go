package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/quota"
)

type googleVerifyRequest struct {
	IDToken string `json:"idToken"`
}

type googleVerifyResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type userDTO struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Picture         string `json:"picture,omitempty"`
	Subscription    string `json:"subscription"`
	DoubtsUsedToday int    `json:"doubtsUsedToday"`
	DoubtsRemaining *int   `json:"doubtsRemaining"`
}

func (a *App) userDTO(u *domain.User) userDTO {
	tier := string(u.Subscription)
	if u.Role == domain.UserRoleAdmin {
		tier = "admin"
	}
	today := a.today()
	return userDTO{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Picture:         u.Picture,
		Subscription:    tier,
		DoubtsUsedToday: quota.EffectiveUsed(quota.StateOf(u), today),
		DoubtsRemaining: quota.Remaining(quota.StateOf(u), today),
	}
}

// AuthGoogleVerify exchanges a Google ID token for a session token, creating
// or refreshing the user row along the way.
func (a *App) AuthGoogleVerify(w http.ResponseWriter, r *http.Request) {
	var req googleVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", message(r.Context(), "invalid_payload"))
		return
	}
	if req.IDToken == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "idToken required")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	profile, err := a.Verifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		a.Logger.Error().Err(err).Msg("google verify failed")
		a.error(w, http.StatusUnauthorized, "unauthorized", message(r.Context(), "invalid_google"))
		return
	}
	user, err := a.Users.UpsertByGoogleSub(r.Context(), profile)
	if err != nil {
		a.Logger.Error().Err(err).Msg("upsert user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to persist user")
		return
	}
	token, err := middleware.SignSession(a.JWTSecret, user.ID, string(user.Subscription), string(user.Role), 24*time.Hour)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign session failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, googleVerifyResponse{Token: token, User: a.userDTO(user)})
}

// Me returns the authenticated user's profile and quota snapshot.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	user, err := a.Users.GetByID(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", message(r.Context(), "user_not_found"))
		return
	}
	a.json(w, http.StatusOK, a.userDTO(user))
}
