package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/avelar/todovault/internal/auth"
	"github.com/avelar/todovault/internal/request"
	"go.uber.org/zap"
)

// Session creates authentication middleware for API routes. The token is
// read once at this boundary, verified against its signature only, and the
// resulting claims are threaded through the request context. No account
// store lookup happens per request.
func Session(issuer *auth.SessionIssuer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := request.SessionToken(r)
			if token == "" {
				respondUnauthorized(w, logger, "Missing session token")
				return
			}

			claims, err := issuer.Verify(token)
			if err != nil {
				logger.Debug("session_verification_failed",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				respondUnauthorized(w, logger, "Invalid or expired session")
				return
			}

			ctx := request.WithSession(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func respondUnauthorized(w http.ResponseWriter, logger *zap.Logger, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		logger.Error("failed_to_encode_error_response", zap.Error(err))
	}
}
