package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSessionRoundTrip(t *testing.T) {
	token, err := SignSession("secret", "user-1", "free", "user", time.Hour)
	if err != nil {
		t.Fatalf("SignSession returned error: %v", err)
	}
	claims, err := VerifySession("secret", token)
	if err != nil {
		t.Fatalf("VerifySession returned error: %v", err)
	}
	if claims.Subject != "user-1" || claims.Tier != "free" || claims.Role != "user" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestVerifySessionRejectsWrongSecret(t *testing.T) {
	token, err := SignSession("secret", "user-1", "free", "user", time.Hour)
	if err != nil {
		t.Fatalf("SignSession returned error: %v", err)
	}
	if _, err := VerifySession("other", token); err == nil {
		t.Fatal("VerifySession accepted token signed with a different secret")
	}
}

func TestVerifySessionRejectsExpired(t *testing.T) {
	token, err := SignSession("secret", "user-1", "free", "user", -time.Minute)
	if err != nil {
		t.Fatalf("SignSession returned error: %v", err)
	}
	if _, err := VerifySession("secret", token); err == nil {
		t.Fatal("VerifySession accepted expired token")
	}
}

func TestAuthJWTInjectsUserID(t *testing.T) {
	token, err := SignSession("secret", "user-9", "pro", "user", time.Hour)
	if err != nil {
		t.Fatalf("SignSession returned error: %v", err)
	}

	var got string
	handler := AuthJWT("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got != "user-9" {
		t.Fatalf("UserIDFromContext = %q, want %q", got, "user-9")
	}
}

func TestAuthJWTRejectsMissingHeader(t *testing.T) {
	handler := AuthJWT("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/user/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
