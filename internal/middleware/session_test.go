package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avelar/todovault/internal/auth"
	"github.com/avelar/todovault/internal/request"
	"go.uber.org/zap"
)

func TestSessionMiddleware_MissingToken(t *testing.T) {
	t.Parallel()

	issuer := auth.NewSessionIssuer("test-secret", "")
	handler := Session(issuer, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["error"] != "Missing session token" {
		t.Errorf("unexpected error message: %q", body["error"])
	}
}

func TestSessionMiddleware_InvalidToken(t *testing.T) {
	t.Parallel()

	issuer := auth.NewSessionIssuer("test-secret", "")
	handler := Session(issuer, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["error"] != "Invalid or expired session" {
		t.Errorf("unexpected error message: %q", body["error"])
	}
}

func TestSessionMiddleware_ValidTokenThreadsClaims(t *testing.T) {
	t.Parallel()

	issuer := auth.NewSessionIssuer("test-secret", "")
	token := sessionTokenForTest(t, issuer)

	reached := false
	handler := Session(issuer, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		claims := request.SessionFromContext(r)
		if claims == nil {
			t.Fatal("expected session claims in context")
		}
		if claims.Email != "alice@x.com" {
			t.Errorf("expected email alice@x.com, got %s", claims.Email)
		}
		w.WriteHeader(http.StatusOK)
	}))

	// Bearer header works the same as the cookie
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !reached {
		t.Fatal("handler was not reached")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}
