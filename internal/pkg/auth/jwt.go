package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTConfig defines settings for the local identity provider
type JWTConfig struct {
	// SessionSecret signs session cookies
	SessionSecret string
	// IDTokenSecret signs and verifies ID tokens
	IDTokenSecret string
	// TokenIssuer is the iss claim of both token kinds
	TokenIssuer string
}

// Claims defines the content of local ID tokens and session cookies
type Claims struct {
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	AuthTime int64  `json:"auth_time,omitempty"`
	jwt.RegisteredClaims
}

const sessionAudience = "session"

// JWTProvider is an IdentityProvider backed by HS256 tokens.
// It suits local development and tests where no hosted identity service is available.
type JWTProvider struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTProvider creates a new local identity provider
func NewJWTProvider(config JWTConfig) *JWTProvider {
	return &JWTProvider{
		config: config,
		now:    time.Now,
	}
}

// IssueIDToken mints an ID token as the hosted provider would after sign-in
func (p *JWTProvider) IssueIDToken(uid, email string, ttl time.Duration) (string, error) {
	now := p.now()
	claims := &Claims{
		Email:    email,
		AuthTime: now.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			Issuer:    p.config.TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(p.config.IDTokenSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign ID token: %w", err)
	}
	return token, nil
}

// VerifyIDToken validates an ID token signed with the ID token secret
func (p *JWTProvider) VerifyIDToken(_ context.Context, idToken string) (*Identity, error) {
	claims, err := p.parse(idToken, p.config.IDTokenSecret)
	if err != nil {
		return nil, err
	}
	if len(claims.Audience) > 0 {
		// session cookies must not be accepted where an ID token is expected
		return nil, ErrInvalidToken
	}
	return claims.identity(), nil
}

// CreateSessionCookie verifies idToken and mints a session cookie carrying the same identity
func (p *JWTProvider) CreateSessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	id, err := p.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}

	now := p.now()
	claims := &Claims{
		Email:    id.Email,
		Role:     id.Role,
		AuthTime: id.AuthTime.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UID,
			Issuer:    p.config.TokenIssuer,
			Audience:  jwt.ClaimStrings{sessionAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			ID:        uuid.New().String(),
		},
	}
	cookie, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(p.config.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session cookie: %w", err)
	}
	return cookie, nil
}

// VerifySessionCookie validates a session cookie signed with the session secret
func (p *JWTProvider) VerifySessionCookie(_ context.Context, cookie string) (*Identity, error) {
	claims, err := p.parse(cookie, p.config.SessionSecret, jwt.WithAudience(sessionAudience))
	if err != nil {
		return nil, err
	}
	return claims.identity(), nil
}

// CreateUser allocates a uid; the local provider keeps no credential store
func (p *JWTProvider) CreateUser(_ context.Context, email, password, _ string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", fmt.Errorf("email and password are required")
	}
	return uuid.New().String(), nil
}

// SetRole is a no-op: roles live in the profile store for the local provider
func (p *JWTProvider) SetRole(_ context.Context, _, _ string) error {
	return nil
}

func (p *JWTProvider) parse(tokenString, secret string, opts ...jwt.ParserOption) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidFormat
	}

	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(p.config.TokenIssuer),
		jwt.WithTimeFunc(p.now),
	)
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrInvalidFormat
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (c *Claims) identity() *Identity {
	id := &Identity{
		UID:   c.Subject,
		Email: c.Email,
		Role:  c.Role,
	}
	if c.AuthTime > 0 {
		id.AuthTime = time.Unix(c.AuthTime, 0).UTC()
	}
	if c.IssuedAt != nil {
		id.IssuedAt = c.IssuedAt.Time.UTC()
	}
	return id
}
