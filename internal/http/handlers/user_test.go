package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"server/internal/domain"
)

func TestUpdateSubscriptionUpgrades(t *testing.T) {
	users := &fakeUserRepo{user: freeUser()}
	app := newTestApp(users, &fakeDoubtRepo{}, &fakeUsageRepo{}, &fakeSolver{})

	req := httptest.NewRequest(http.MethodPatch, "/v1/user/subscription", strings.NewReader(`{"subscription":"pro"}`))
	rec := serve(app, "u1", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var dto userDTO
	if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if dto.Subscription != "pro" {
		t.Fatalf("subscription = %q, want pro", dto.Subscription)
	}
	if dto.DoubtsRemaining != nil {
		t.Fatalf("doubtsRemaining = %v, want null after upgrade", *dto.DoubtsRemaining)
	}
}

func TestUpdateSubscriptionRejectsUnknownTier(t *testing.T) {
	app := newTestApp(&fakeUserRepo{user: freeUser()}, &fakeDoubtRepo{}, &fakeUsageRepo{}, &fakeSolver{})

	for _, tier := range []string{"admin", "platinum", ""} {
		req := httptest.NewRequest(http.MethodPatch, "/v1/user/subscription", strings.NewReader(`{"subscription":"`+tier+`"}`))
		if rec := serve(app, "u1", req); rec.Code != http.StatusBadRequest {
			t.Fatalf("tier %q: status = %d, want 400", tier, rec.Code)
		}
	}
}

func TestUserStatsSnapshot(t *testing.T) {
	user := freeUser()
	user.DoubtsUsedToday = 2
	user.LastDoubtDate = "2025-03-10"
	doubts := &fakeDoubtRepo{}
	app := newTestApp(&fakeUserRepo{user: user}, doubts, &fakeUsageRepo{}, &fakeSolver{})

	first, _ := doubts.Create(t.Context(), "u1", "first", domain.SubjectMaths)
	if _, err := doubts.Create(t.Context(), "u1", "second", domain.SubjectPhysics); err != nil {
		t.Fatalf("seed doubt: %v", err)
	}
	if _, err := doubts.SetBookmark(t.Context(), first.ID, "u1", true); err != nil {
		t.Fatalf("bookmark: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/user/stats", nil)
	rec := serve(app, "u1", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp userStatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalDoubts != 2 || resp.Bookmarked != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", resp.TotalDoubts, resp.Bookmarked)
	}
	if resp.DoubtsUsedToday != 2 {
		t.Fatalf("doubtsUsedToday = %d, want 2", resp.DoubtsUsedToday)
	}
	if resp.DoubtsRemaining == nil || *resp.DoubtsRemaining != 3 {
		t.Fatalf("doubtsRemaining = %v, want 3", resp.DoubtsRemaining)
	}
	if resp.Subscription != "free" {
		t.Fatalf("subscription = %q, want free", resp.Subscription)
	}
}

func TestUserStatsStaleCounterReadsAsZero(t *testing.T) {
	user := freeUser()
	user.DoubtsUsedToday = 5
	user.LastDoubtDate = "2025-03-01"
	app := newTestApp(&fakeUserRepo{user: user}, &fakeDoubtRepo{}, &fakeUsageRepo{}, &fakeSolver{})

	req := httptest.NewRequest(http.MethodGet, "/v1/user/stats", nil)
	rec := serve(app, "u1", req)
	var resp userStatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.DoubtsUsedToday != 0 {
		t.Fatalf("doubtsUsedToday = %d, want 0 for a stale date", resp.DoubtsUsedToday)
	}
	if resp.DoubtsRemaining == nil || *resp.DoubtsRemaining != 5 {
		t.Fatalf("doubtsRemaining = %v, want 5", resp.DoubtsRemaining)
	}
}

func TestUserStatsAdminShowsAdminTier(t *testing.T) {
	user := freeUser()
	user.Role = domain.UserRoleAdmin
	app := newTestApp(&fakeUserRepo{user: user}, &fakeDoubtRepo{}, &fakeUsageRepo{}, &fakeSolver{})

	req := httptest.NewRequest(http.MethodGet, "/v1/user/stats", nil)
	rec := serve(app, "u1", req)
	var resp userStatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Subscription != "admin" {
		t.Fatalf("subscription = %q, want admin", resp.Subscription)
	}
	if resp.DoubtsRemaining != nil {
		t.Fatalf("doubtsRemaining = %v, want null for admin", *resp.DoubtsRemaining)
	}
}

func TestMeReturnsProfile(t *testing.T) {
	app := newTestApp(&fakeUserRepo{user: freeUser()}, &fakeDoubtRepo{}, &fakeUsageRepo{}, &fakeSolver{})

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/user", nil)
	rec := serve(app, "u1", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var dto userDTO
	if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if dto.ID != "u1" || dto.Email != "asha@example.com" {
		t.Fatalf("profile = %+v", dto)
	}
	if dto.DoubtsRemaining == nil || *dto.DoubtsRemaining != 5 {
		t.Fatalf("doubtsRemaining = %v, want 5", dto.DoubtsRemaining)
	}
}
