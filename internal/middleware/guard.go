package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/avelar/todovault/internal/auth"
	"github.com/avelar/todovault/internal/request"
	"go.uber.org/zap"
)

const (
	// SignInPath is the designated unauthenticated entry point
	SignInPath = "/signin"
	// SignUpPath is the registration page
	SignUpPath = "/signup"
	// TodoListPath is where authenticated users land
	TodoListPath = "/todolist"
	// CallbackParam carries the originally requested path through sign-in
	CallbackParam = "callbackUrl"
)

// protectedPrefixes require a valid session, matched by prefix
var protectedPrefixes = []string{TodoListPath, "/profile", "/home"}

// skipPrefixes bypass the guard entirely: the auth API and static assets
var skipPrefixes = []string{"/auth", "/static/", "/fonts/"}

// skipExact are static files the guard never inspects
var skipExact = []string{"/favicon.ico", "/sitemap.xml"}

// RouteGuard decides, ahead of page handling, whether the caller holds a
// valid session and redirects accordingly. It is stateless per request and
// consults only the token's signature and expiry, never the account store.
type RouteGuard struct {
	issuer *auth.SessionIssuer
	logger *zap.Logger
}

// NewRouteGuard creates a route guard backed by the given session issuer
func NewRouteGuard(issuer *auth.SessionIssuer, logger *zap.Logger) *RouteGuard {
	return &RouteGuard{issuer: issuer, logger: logger}
}

// Middleware returns the guard as a mux middleware
func (g *RouteGuard) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			if g.skip(path) {
				next.ServeHTTP(w, r)
				return
			}

			if !g.authenticated(r) {
				g.serveUnauthenticated(w, r, next, path)
				return
			}

			// Authenticated users have no business on the auth pages
			if path == SignInPath || path == SignUpPath {
				http.Redirect(w, r, TodoListPath, http.StatusTemporaryRedirect)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (g *RouteGuard) serveUnauthenticated(w http.ResponseWriter, r *http.Request, next http.Handler, path string) {
	// Public pages and the auth API pass through unchanged
	if path == "/" || path == SignInPath || path == SignUpPath {
		next.ServeHTTP(w, r)
		return
	}

	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			signin := url.URL{Path: SignInPath}
			q := signin.Query()
			q.Set(CallbackParam, path)
			signin.RawQuery = q.Encode()
			http.Redirect(w, r, signin.String(), http.StatusTemporaryRedirect)
			return
		}
	}

	// Everything else is implicitly public
	next.ServeHTTP(w, r)
}

func (g *RouteGuard) skip(path string) bool {
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	for _, exact := range skipExact {
		if path == exact {
			return true
		}
	}
	return false
}

func (g *RouteGuard) authenticated(r *http.Request) bool {
	token := request.SessionToken(r)
	if token == "" {
		return false
	}

	if _, err := g.issuer.Verify(token); err != nil {
		g.logger.Debug("guard_rejected_token",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		return false
	}

	return true
}
