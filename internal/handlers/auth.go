package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avelar/todovault/internal/auth"
	"github.com/avelar/todovault/internal/database"
	"github.com/avelar/todovault/internal/middleware"
	"github.com/avelar/todovault/internal/models"
	"github.com/avelar/todovault/internal/request"
	"github.com/avelar/todovault/internal/validation"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	stateCookieName    = "todovault_oauth_state"
	callbackCookieName = "todovault_oauth_callback"
	stateCookieMaxAge  = 10 * 60 // seconds
)

// AuthHandler handles registration and sign-in requests
type AuthHandler struct {
	accounts database.AccountStore
	verifier *auth.CredentialVerifier
	sessions *auth.SessionIssuer
	google   *auth.GoogleAuthenticator
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accounts database.AccountStore, verifier *auth.CredentialVerifier, sessions *auth.SessionIssuer, google *auth.GoogleAuthenticator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		verifier: verifier,
		sessions: sessions,
		google:   google,
		logger:   logger,
	}
}

// RegisterRoutes registers auth routes on the given router.
// The router should already have the /auth prefix.
func (h *AuthHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/logout", h.Logout).Methods("POST")
	r.HandleFunc("/google/login", h.GoogleLogin).Methods("GET")
	r.HandleFunc("/google/callback", h.GoogleCallback).Methods("GET")
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50,person_name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=10,password_strength"`
}

// LoginRequest represents a credential sign-in request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisteredUser is the safe projection returned after registration
type RegisteredUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Register creates a new credential account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, validation.ValidationMessage(err))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed_to_hash_password", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	name := validation.SanitizeText(req.Name)
	account := &models.Account{
		ID:           uuid.New(),
		Name:         &name,
		Email:        req.Email,
		PasswordHash: &hash,
	}

	ctx := r.Context()
	if err := h.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			respondError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		h.logger.Error("failed_to_create_account", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user": RegisteredUser{
			ID:        account.ID,
			Name:      name,
			Email:     account.Email,
			CreatedAt: account.CreatedAt,
		},
	})
}

// Login verifies credentials and establishes a session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	identity, err := h.verifier.Verify(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// One generic message regardless of which factor was wrong
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("credential_verification_failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	token, err := h.sessions.Issue(identity, "")
	if err != nil {
		h.logger.Error("session_issuance_failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to establish session")
		return
	}

	h.setSessionCookie(w, r, token)
	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  identity,
	})
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; there is no revocation list.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     request.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}

// Me returns the session's user projection
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := request.SessionFromContext(r)
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "No active session")
		return
	}

	user, err := auth.ProjectUser(claims)
	if err != nil {
		h.logger.Error("failed_to_project_session_user", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// GoogleLogin redirects the browser to the Google consent page
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.google == nil || !h.google.Configured() {
		respondError(w, http.StatusInternalServerError, "Google sign-in is not configured")
		return
	}

	state, err := randomState()
	if err != nil {
		h.logger.Error("failed_to_generate_oauth_state", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	secure := r.TLS != nil
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   stateCookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})

	if callback := r.URL.Query().Get(middleware.CallbackParam); safeCallbackPath(callback) {
		http.SetCookie(w, &http.Cookie{
			Name:     callbackCookieName,
			Value:    callback,
			Path:     "/auth/google",
			MaxAge:   stateCookieMaxAge,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	http.Redirect(w, r, h.google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback completes the Google sign-in: the confirmed identity is
// linked to an account, a session is issued, and the browser is sent to the
// todo list (or the originally requested page).
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.google == nil || !h.google.Configured() {
		respondError(w, http.StatusInternalServerError, "Google sign-in is not configured")
		return
	}

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Warn("google_signin_denied", zap.String("error", errParam))
		http.Redirect(w, r, middleware.SignInPath, http.StatusTemporaryRedirect)
		return
	}

	state := r.URL.Query().Get("state")
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || state == "" || stateCookie.Value != state {
		respondError(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "Missing authorization code")
		return
	}

	ctx := r.Context()
	profile, err := h.google.Exchange(ctx, code)
	if err != nil {
		h.logger.Error("google_code_exchange_failed", zap.Error(err))
		respondError(w, http.StatusUnauthorized, "Google sign-in failed")
		return
	}

	identity, err := h.google.Link(ctx, profile)
	if err != nil {
		// A store failure here must reject the whole sign-in
		h.logger.Error("google_account_link_failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Google sign-in failed")
		return
	}

	token, err := h.sessions.Issue(identity, auth.GoogleProviderName)
	if err != nil {
		h.logger.Error("session_issuance_failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to establish session")
		return
	}

	h.setSessionCookie(w, r, token)

	target := middleware.TodoListPath
	if cb, err := r.Cookie(callbackCookieName); err == nil && safeCallbackPath(cb.Value) {
		target = cb.Value
	}
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     request.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionLifetime / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeCallbackPath accepts only same-site absolute paths as redirect targets
func safeCallbackPath(path string) bool {
	return strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//")
}

func randomState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
