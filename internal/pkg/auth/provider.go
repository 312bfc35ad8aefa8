package auth

import (
	"context"
	"errors"
	"time"
)

// Identity errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrRevokedToken  = errors.New("token revoked")
	ErrInvalidFormat = errors.New("invalid token format")
)

// Identity is the verified caller behind an ID token or session cookie
type Identity struct {
	UID      string
	Email    string
	Role     string // cached role claim, empty when the provider carries none
	AuthTime time.Time
	IssuedAt time.Time
}

// CreatedAt picks the best issuance time for a first-time profile
func (i *Identity) CreatedAt(now time.Time) time.Time {
	switch {
	case !i.AuthTime.IsZero():
		return i.AuthTime
	case !i.IssuedAt.IsZero():
		return i.IssuedAt
	default:
		return now
	}
}

// IdentityProvider verifies identity credentials and manages session cookies
type IdentityProvider interface {
	// VerifyIDToken validates a freshly issued identity credential
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
	// CreateSessionCookie exchanges a verified ID token for a session cookie value
	CreateSessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	// VerifySessionCookie validates a session cookie value
	VerifySessionCookie(ctx context.Context, cookie string) (*Identity, error)
	// CreateUser provisions a password account and returns its uid
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	// SetRole stores the role as a custom claim on the account
	SetRole(ctx context.Context, uid, role string) error
}
