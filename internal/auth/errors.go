package auth

import "errors"

var (
	// ErrInvalidCredentials covers every credential sign-in failure: unknown
	// email, account without a stored hash, or wrong password. Callers must
	// not reveal which factor failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoSigningKey indicates the session signing secret is not configured.
	// Token issuance fails and no session is established.
	ErrNoSigningKey = errors.New("session signing key not configured")

	// ErrInvalidToken covers every session token validation failure: bad
	// signature, expiry, malformed claims.
	ErrInvalidToken = errors.New("session token is expired or invalid")
)
