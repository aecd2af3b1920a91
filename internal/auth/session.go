package auth

import (
	"fmt"
	"time"

	"github.com/avelar/todovault/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionLifetime is the fixed session duration. Sessions are not
	// refreshed on activity and there is no revocation list; expiry is the
	// only termination mechanism.
	SessionLifetime = 30 * 24 * time.Hour

	// TokenIssuer is the "iss" claim embedded in every issued session token
	TokenIssuer = "todovault"
)

// SessionIssuer mints and verifies HMAC-SHA256 session tokens. The user id
// and provider are written into the claims exactly once, at issuance;
// verification hands them back unchanged.
//
// A legacy secret, when configured, is accepted for verification only, so
// sessions issued under a rotated-out secret keep working until they expire.
type SessionIssuer struct {
	secret       []byte
	legacySecret []byte
	lifetime     time.Duration
}

// NewSessionIssuer creates a session issuer. An empty secret is allowed at
// construction; Issue fails with ErrNoSigningKey when it is used.
func NewSessionIssuer(secret, legacySecret string) *SessionIssuer {
	return &SessionIssuer{
		secret:       []byte(secret),
		legacySecret: []byte(legacySecret),
		lifetime:     SessionLifetime,
	}
}

// Issue composes a signed session token for an authenticated identity.
// The provider is empty for credential sign-ins.
func (s *SessionIssuer) Issue(identity *models.Identity, provider string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNoSigningKey
	}

	now := time.Now()
	claims := &models.SessionClaims{
		Email:    identity.Email,
		Name:     identity.Name,
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Verify validates a session token and returns its claims. The signature is
// the sole proof of identity; the account store is not consulted. Any
// validation failure is normalised to ErrInvalidToken.
func (s *SessionIssuer) Verify(tokenString string) (*models.SessionClaims, error) {
	claims, err := s.parseWithKey(tokenString, s.secret)
	if err != nil && len(s.legacySecret) > 0 {
		claims, err = s.parseWithKey(tokenString, s.legacySecret)
	}
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *SessionIssuer) parseWithKey(tokenString string, key []byte) (*models.SessionClaims, error) {
	if len(key) == 0 {
		return nil, ErrNoSigningKey
	}

	claims := &models.SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	}, jwt.WithIssuer(TokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// ProjectUser projects the token claims back onto the user representation a
// session consumer sees. The id and provider come straight from the token.
func ProjectUser(claims *models.SessionClaims) (*models.SessionUser, error) {
	id, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}

	return &models.SessionUser{
		ID:       id,
		Email:    claims.Email,
		Name:     claims.Name,
		Provider: claims.Provider,
	}, nil
}
