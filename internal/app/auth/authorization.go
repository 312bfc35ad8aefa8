package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/app/repositories"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
	pkgauth "github.com/yigit/careerportal/internal/pkg/auth"
)

// AuthorizationService resolves caller roles and enforces resource ownership
type AuthorizationService struct {
	profiles repositories.ProfileStore
	logger   zerolog.Logger
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(profiles repositories.ProfileStore, logger zerolog.Logger) *AuthorizationService {
	return &AuthorizationService{
		profiles: profiles,
		logger:   logger.With().Str("component", "authorization").Logger(),
	}
}

// ResolveRole returns the caller's role: the stored profile role first, then the
// role claim cached on the credential, then student.
func (s *AuthorizationService) ResolveRole(ctx context.Context, identity *pkgauth.Identity) (models.RoleType, error) {
	if identity == nil {
		return "", apperrors.ErrUnauthenticated
	}

	profile, err := s.profiles.Get(ctx, identity.UID)
	switch {
	case err == nil && profile.Role.IsValid():
		return profile.Role, nil
	case err != nil && !errors.Is(err, apperrors.ErrResourceNotFound):
		s.logger.Error().Err(err).Str("uid", identity.UID).Msg("Error loading profile for role resolution")
		return "", err
	}

	if claim := models.RoleType(identity.Role); claim.IsValid() {
		return claim, nil
	}
	return models.RoleStudent, nil
}

// IsCareerOffice reports whether the caller resolves to the career office role
func (s *AuthorizationService) IsCareerOffice(ctx context.Context, identity *pkgauth.Identity) (bool, error) {
	role, err := s.ResolveRole(ctx, identity)
	if err != nil {
		return false, err
	}
	return role == models.RoleCareerOffice, nil
}

// RequireCareerOffice fails with ErrPermissionDenied unless the caller is career office
func (s *AuthorizationService) RequireCareerOffice(ctx context.Context, identity *pkgauth.Identity) error {
	ok, err := s.IsCareerOffice(ctx, identity)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Debug().Str("uid", identity.UID).Msg("Career office role required")
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateApplicationOwnership fails with ErrPermissionDenied when app is absent or owned by someone else.
// Absence is reported as forbidden so callers cannot probe for other users' ids.
func (s *AuthorizationService) ValidateApplicationOwnership(app *models.Application, identity *pkgauth.Identity) error {
	if identity == nil {
		return apperrors.ErrUnauthenticated
	}
	if app == nil || app.UserID != identity.UID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// CanViewApplication allows the owner and the career office
func (s *AuthorizationService) CanViewApplication(ctx context.Context, app *models.Application, identity *pkgauth.Identity) error {
	if err := s.ValidateApplicationOwnership(app, identity); err == nil {
		return nil
	}
	return s.RequireCareerOffice(ctx, identity)
}
