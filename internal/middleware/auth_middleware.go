package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
	"github.com/yigit/careerportal/internal/pkg/auth"
)

const identityKey = "identity"

// AuthMiddleware resolves the session cookie into a caller identity
type AuthMiddleware struct {
	provider   auth.IdentityProvider
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(provider auth.IdentityProvider, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		provider:   provider,
		cookieName: cookieName,
	}
}

func (m *AuthMiddleware) verify(c *gin.Context) (*auth.Identity, error) {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	identity, err := m.provider.VerifySessionCookie(c.Request.Context(), cookie)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return identity, nil
}

// SessionAuth rejects requests without a valid session cookie with 401
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.verify(c)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalSession attaches the caller identity when a valid session cookie is present
func (m *AuthMiddleware) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, err := m.verify(c); err == nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity attached by the session middleware, or nil
func CurrentIdentity(c *gin.Context) *auth.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, _ := value.(*auth.Identity)
	return identity
}
