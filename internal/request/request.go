package request

import (
	"context"
	"net/http"
	"strings"

	"github.com/avelar/todovault/internal/models"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionCookieName is the cookie the session token travels in for browser
// clients. API clients may send the token as a bearer header instead.
const SessionCookieName = "todovault_session"

// ClientIP extracts the client IP from the request, respecting X-Forwarded-For and X-Real-IP.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return r.RemoteAddr
}

// SessionToken extracts the raw session token from the request: the session
// cookie first, then an Authorization bearer header. Empty when absent.
func SessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}

	return ""
}

// WithSession returns a context with the verified session claims attached.
func WithSession(ctx context.Context, claims *models.SessionClaims) context.Context {
	return context.WithValue(ctx, sessionContextKey, claims)
}

// SessionFromContext returns the session claims from the request context,
// or nil if missing or wrong type.
func SessionFromContext(r *http.Request) *models.SessionClaims {
	claims, _ := r.Context().Value(sessionContextKey).(*models.SessionClaims)
	return claims
}
