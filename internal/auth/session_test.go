package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/avelar/todovault/internal/models"
	"github.com/google/uuid"
)

func testIdentity() *models.Identity {
	return &models.Identity{
		ID:    uuid.New(),
		Email: "alice@x.com",
		Name:  "Alice",
	}
}

func TestSessionIssuer_IssueAndVerify(t *testing.T) {
	t.Parallel()

	issuer := NewSessionIssuer("test-secret", "")
	identity := testIdentity()

	token, err := issuer.Issue(identity, "google")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// id and provider are written once at issuance and travel unchanged
	if claims.Subject != identity.ID.String() {
		t.Errorf("expected subject %s, got %s", identity.ID, claims.Subject)
	}
	if claims.Provider != "google" {
		t.Errorf("expected provider google, got %q", claims.Provider)
	}
	if claims.Email != identity.Email {
		t.Errorf("expected email %s, got %s", identity.Email, claims.Email)
	}

	user, err := ProjectUser(claims)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != identity.ID {
		t.Errorf("expected projected id %s, got %s", identity.ID, user.ID)
	}
	if user.Provider != "google" {
		t.Errorf("expected projected provider google, got %q", user.Provider)
	}
}

func TestSessionIssuer_Lifetime(t *testing.T) {
	t.Parallel()

	issuer := NewSessionIssuer("test-secret", "")
	token, err := issuer.Issue(testIdentity(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != 30*24*time.Hour {
		t.Errorf("expected 30 day lifetime, got %v", lifetime)
	}
}

func TestSessionIssuer_MissingSecretIsFatalToIssuance(t *testing.T) {
	t.Parallel()

	issuer := NewSessionIssuer("", "")

	_, err := issuer.Issue(testIdentity(), "")
	if !errors.Is(err, ErrNoSigningKey) {
		t.Fatalf("expected ErrNoSigningKey, got %v", err)
	}
}

func TestSessionIssuer_RejectsTamperedToken(t *testing.T) {
	t.Parallel()

	issuer := NewSessionIssuer("test-secret", "")
	token, err := issuer.Issue(testIdentity(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewSessionIssuer("different-secret", "")
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	if _, err := issuer.Verify(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestSessionIssuer_ExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	issuer := NewSessionIssuer("test-secret", "")
	issuer.lifetime = -1 * time.Hour

	token, err := issuer.Issue(testIdentity(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestSessionIssuer_LegacySecretAcceptedForVerification(t *testing.T) {
	t.Parallel()

	legacy := NewSessionIssuer("old-secret", "")
	token, err := legacy.Issue(testIdentity(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rotated := NewSessionIssuer("new-secret", "old-secret")
	if _, err := rotated.Verify(token); err != nil {
		t.Fatalf("token under legacy secret should verify, got %v", err)
	}

	// But new tokens are signed with the primary secret only
	fresh, err := rotated.Issue(testIdentity(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := legacy.Verify(fresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken under old secret, got %v", err)
	}
}
