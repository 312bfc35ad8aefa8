package auth

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseConfig defines settings for the hosted identity provider
type FirebaseConfig struct {
	ProjectID string
	// CredentialsFile is a service account JSON; empty uses application default credentials
	CredentialsFile string
}

// FirebaseProvider is an IdentityProvider backed by Firebase Authentication
type FirebaseProvider struct {
	client *fbauth.Client
}

// NewFirebaseProvider initializes the admin SDK auth client
func NewFirebaseProvider(ctx context.Context, config FirebaseConfig) (*FirebaseProvider, error) {
	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: config.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	return &FirebaseProvider{client: client}, nil
}

func (p *FirebaseProvider) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	if idToken == "" {
		return nil, ErrInvalidFormat
	}
	token, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		if fbauth.IsIDTokenExpired(err) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return identityFromToken(token), nil
}

func (p *FirebaseProvider) CreateSessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	cookie, err := p.client.SessionCookie(ctx, idToken, expiresIn)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return cookie, nil
}

func (p *FirebaseProvider) VerifySessionCookie(ctx context.Context, cookie string) (*Identity, error) {
	if cookie == "" {
		return nil, ErrInvalidFormat
	}
	token, err := p.client.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	if err != nil {
		switch {
		case fbauth.IsSessionCookieRevoked(err):
			return nil, ErrRevokedToken
		case fbauth.IsSessionCookieExpired(err):
			return nil, ErrExpiredToken
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}
	return identityFromToken(token), nil
}

func (p *FirebaseProvider) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&fbauth.UserToCreate{}).Email(email).Password(password)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}
	user, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to create firebase user: %w", err)
	}
	return user.UID, nil
}

func (p *FirebaseProvider) SetRole(ctx context.Context, uid, role string) error {
	if err := p.client.SetCustomUserClaims(ctx, uid, map[string]interface{}{"role": role}); err != nil {
		return fmt.Errorf("failed to set role claim: %w", err)
	}
	return nil
}

func identityFromToken(token *fbauth.Token) *Identity {
	id := &Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		id.Email = email
	}
	if role, ok := token.Claims["role"].(string); ok {
		id.Role = role
	}
	if token.AuthTime > 0 {
		id.AuthTime = time.Unix(token.AuthTime, 0).UTC()
	}
	if token.IssuedAt > 0 {
		id.IssuedAt = time.Unix(token.IssuedAt, 0).UTC()
	}
	return id
}
