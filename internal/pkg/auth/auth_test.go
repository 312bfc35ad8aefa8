package auth

import (
	"context"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider() *JWTProvider {
	return NewJWTProvider(JWTConfig{
		SessionSecret: "session-secret",
		IDTokenSecret: "id-token-secret",
		TokenIssuer:   "careerportal.test",
	})
}

func TestSessionCookieRoundTrip(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	idToken, err := p.IssueIDToken("uid-1", "ada@school.edu", time.Hour)
	require.NoError(t, err)

	id, err := p.VerifyIDToken(ctx, idToken)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", id.UID)
	assert.Equal(t, "ada@school.edu", id.Email)
	assert.False(t, id.AuthTime.IsZero())

	cookie, err := p.CreateSessionCookie(ctx, idToken, 5*24*time.Hour)
	require.NoError(t, err)

	session, err := p.VerifySessionCookie(ctx, cookie)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", session.UID)
	assert.Equal(t, "ada@school.edu", session.Email)
	assert.Equal(t, id.AuthTime, session.AuthTime)
}

func TestIDTokenIsNotASessionCookie(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	idToken, err := p.IssueIDToken("uid-1", "", time.Hour)
	require.NoError(t, err)

	_, err = p.VerifySessionCookie(ctx, idToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionCookieIsNotAnIDToken(t *testing.T) {
	p := NewJWTProvider(JWTConfig{SessionSecret: "same", IDTokenSecret: "same", TokenIssuer: "careerportal.test"})
	ctx := context.Background()

	idToken, err := p.IssueIDToken("uid-1", "", time.Hour)
	require.NoError(t, err)
	cookie, err := p.CreateSessionCookie(ctx, idToken, time.Hour)
	require.NoError(t, err)

	_, err = p.VerifyIDToken(ctx, cookie)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredSessionCookie(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	idToken, err := p.IssueIDToken("uid-1", "", time.Hour)
	require.NoError(t, err)
	cookie, err := p.CreateSessionCookie(ctx, idToken, time.Minute)
	require.NoError(t, err)

	p.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = p.VerifySessionCookie(ctx, cookie)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	_, err := p.VerifySessionCookie(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = p.VerifySessionCookie(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	other := NewJWTProvider(JWTConfig{SessionSecret: "other", IDTokenSecret: "other", TokenIssuer: "careerportal.test"})
	idToken, err := other.IssueIDToken("uid-1", "", time.Hour)
	require.NoError(t, err)
	_, err = p.VerifyIDToken(ctx, idToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIdentityCreatedAt(t *testing.T) {
	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	auth := now.Add(-time.Hour)
	issued := now.Add(-time.Minute)

	assert.Equal(t, auth, (&Identity{AuthTime: auth, IssuedAt: issued}).CreatedAt(now))
	assert.Equal(t, issued, (&Identity{IssuedAt: issued}).CreatedAt(now))
	assert.Equal(t, now, (&Identity{}).CreatedAt(now))
}

func TestCheckSecret(t *testing.T) {
	hash, err := HashSecret("let-me-in")
	require.NoError(t, err)

	assert.True(t, CheckSecret(hash, "let-me-in"))
	assert.False(t, CheckSecret(hash, "wrong"))
	assert.False(t, CheckSecret("", "let-me-in"))
	assert.False(t, CheckSecret(hash, ""))
}

func TestIdentityFromFirebaseToken(t *testing.T) {
	id := identityFromToken(&fbauth.Token{
		UID:      "fb-uid",
		AuthTime: 1700000000,
		IssuedAt: 1700000100,
		Claims:   map[string]interface{}{"email": "grace@school.edu", "role": "career_office"},
	})

	assert.Equal(t, "fb-uid", id.UID)
	assert.Equal(t, "grace@school.edu", id.Email)
	assert.Equal(t, "career_office", id.Role)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), id.AuthTime)
}
