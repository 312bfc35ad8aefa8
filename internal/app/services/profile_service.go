package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/app/repositories"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
	pkgauth "github.com/yigit/careerportal/internal/pkg/auth"
	"github.com/yigit/careerportal/internal/pkg/helpers"
)

// ProfileService defines the interface for caller profile operations
type ProfileService interface {
	// CurrentUser returns the caller's profile, or nil on any failure
	CurrentUser(ctx context.Context, caller *pkgauth.Identity) *models.Profile
	// GetProfile returns the caller's profile, or nil when none is stored
	GetProfile(ctx context.Context, caller *pkgauth.Identity) (*models.Profile, error)
	UpdateProfile(ctx context.Context, caller *pkgauth.Identity, patch models.ProfilePatch) (*models.Profile, error)
}

type profileServiceImpl struct {
	profiles repositories.ProfileStore
	clock    helpers.Clock
	logger   zerolog.Logger
}

// NewProfileService creates a new profile service instance
func NewProfileService(profiles repositories.ProfileStore, clock helpers.Clock, logger zerolog.Logger) ProfileService {
	return &profileServiceImpl{
		profiles: profiles,
		clock:    clock,
		logger:   logger.With().Str("service", "profiles").Logger(),
	}
}

func (s *profileServiceImpl) CurrentUser(ctx context.Context, caller *pkgauth.Identity) *models.Profile {
	if caller == nil {
		return nil
	}
	profile, err := s.profiles.Get(ctx, caller.UID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Warn().Err(err).Str("uid", caller.UID).Msg("Could not load current user")
		}
		return nil
	}
	return profile
}

func (s *profileServiceImpl) GetProfile(ctx context.Context, caller *pkgauth.Identity) (*models.Profile, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	profile, err := s.profiles.Get(ctx, caller.UID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileServiceImpl) UpdateProfile(ctx context.Context, caller *pkgauth.Identity, patch models.ProfilePatch) (*models.Profile, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	// role and email are never editable here
	patch.Role = nil
	patch.Email = nil

	profile, err := s.profiles.Upsert(ctx, caller.UID, patch, caller.CreatedAt(s.clock()))
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("uid", caller.UID).Msg("Profile updated")
	return profile, nil
}
