package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelar/todovault/internal/database"
	"github.com/avelar/todovault/internal/models"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// GoogleProviderName is the provider tag stored on OAuth-linked accounts
	GoogleProviderName = "google"

	googleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"
)

// Google accepts both issuer spellings in its ID tokens
var googleIssuers = []string{"https://accounts.google.com", "accounts.google.com"}

// GoogleProfile is the identity Google confirms during sign-in
type GoogleProfile struct {
	Email string
	Name  string
	Image string
}

// GoogleAuthenticator drives the Google OAuth code flow and links the
// confirmed identity to an account record keyed by email.
type GoogleAuthenticator struct {
	config   *oauth2.Config
	jwks     *JWKSManager
	accounts database.AccountStore
}

// NewGoogleAuthenticator creates a Google authenticator. redirectURL is the
// absolute callback URL served by this API.
func NewGoogleAuthenticator(clientID, clientSecret, redirectURL string, jwks *JWKSManager, accounts database.AccountStore) *GoogleAuthenticator {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	return &GoogleAuthenticator{
		config:   config,
		jwks:     jwks,
		accounts: accounts,
	}
}

// Configured reports whether Google sign-in has client credentials
func (g *GoogleAuthenticator) Configured() bool {
	return g.config.ClientID != "" && g.config.ClientSecret != ""
}

// AuthCodeURL returns the Google consent page URL for the given state
func (g *GoogleAuthenticator) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for tokens and verifies the ID
// token against Google's published signing keys. It returns the confirmed
// profile; nothing is persisted here.
func (g *GoogleAuthenticator) Exchange(ctx context.Context, code string) (*GoogleProfile, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("token response missing id_token")
	}

	return g.verifyIDToken(ctx, rawIDToken)
}

func (g *GoogleAuthenticator) verifyIDToken(ctx context.Context, rawIDToken string) (*GoogleProfile, error) {
	keys, err := g.jwks.GetJWKS(ctx, googleJWKSURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google JWKS: %w", err)
	}

	parsed, err := jwt.Parse([]byte(rawIDToken),
		jwt.WithKeySet(keys),
		jwt.WithValidate(true),
		jwt.WithAudience(g.config.ClientID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse/verify ID token: %w", err)
	}

	issuerOK := false
	for _, iss := range googleIssuers {
		if parsed.Issuer() == iss {
			issuerOK = true
			break
		}
	}
	if !issuerOK {
		return nil, fmt.Errorf("ID token issuer mismatch: got %q", parsed.Issuer())
	}

	profile := &GoogleProfile{}
	if email, ok := parsed.Get("email"); ok {
		if emailStr, ok := email.(string); ok {
			profile.Email = emailStr
		}
	}
	if name, ok := parsed.Get("name"); ok {
		if nameStr, ok := name.(string); ok {
			profile.Name = nameStr
		}
	}
	if picture, ok := parsed.Get("picture"); ok {
		if pictureStr, ok := picture.(string); ok {
			profile.Image = pictureStr
		}
	}

	if profile.Email == "" {
		return nil, errors.New("ID token missing email claim")
	}

	return profile, nil
}

// Link finds or creates the account for a confirmed Google profile and
// returns the identity with the account id attached. An existing account is
// reused as-is; only a store failure rejects the sign-in.
func (g *GoogleAuthenticator) Link(ctx context.Context, profile *GoogleProfile) (*models.Identity, error) {
	existing, err := g.accounts.GetByEmail(ctx, profile.Email)
	if err == nil {
		return accountIdentity(existing), nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	provider := GoogleProviderName
	account := &models.Account{
		ID:       uuid.New(),
		Email:    profile.Email,
		Provider: &provider,
	}
	if profile.Name != "" {
		name := profile.Name
		account.Name = &name
	}
	if profile.Image != "" {
		image := profile.Image
		account.Image = &image
	}

	if err := g.accounts.Create(ctx, account); err != nil {
		// A concurrent first sign-in may have created the account between
		// the lookup and the insert; the committed row wins. One re-read,
		// then give up.
		if errors.Is(err, database.ErrDuplicateEmail) {
			winner, lookupErr := g.accounts.GetByEmail(ctx, profile.Email)
			if lookupErr != nil {
				return nil, fmt.Errorf("failed to resolve concurrently created account: %w", lookupErr)
			}
			return accountIdentity(winner), nil
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &models.Identity{ID: account.ID, Email: account.Email, Name: profile.Name}, nil
}

func accountIdentity(account *models.Account) *models.Identity {
	identity := &models.Identity{ID: account.ID, Email: account.Email}
	if account.Name != nil {
		identity.Name = *account.Name
	}
	return identity
}
