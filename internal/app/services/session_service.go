package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/app/repositories"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
	pkgauth "github.com/yigit/careerportal/internal/pkg/auth"
	"github.com/yigit/careerportal/internal/pkg/helpers"
)

// SessionService defines the interface for session lifecycle operations
type SessionService interface {
	// CreateSession verifies idToken, returns a session cookie value and upserts the optional seed
	CreateSession(ctx context.Context, idToken string, seed *models.ProfilePatch) (string, error)
	// RegisterAdmin provisions a career office account
	RegisterAdmin(ctx context.Context, input RegisterAdminInput, adminSecret string) (*models.Profile, error)
	// MaxAge is the lifetime of issued session cookies
	MaxAge() time.Duration
}

// RegisterAdminInput carries the account to provision
type RegisterAdminInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// SessionConfig holds the settings the session service needs from configuration
type SessionConfig struct {
	MaxAge          time.Duration
	Production      bool
	AdminSecretHash string
}

type sessionServiceImpl struct {
	provider pkgauth.IdentityProvider
	profiles repositories.ProfileStore
	config   SessionConfig
	clock    helpers.Clock
	logger   zerolog.Logger
}

// NewSessionService creates a new session service instance
func NewSessionService(
	provider pkgauth.IdentityProvider,
	profiles repositories.ProfileStore,
	config SessionConfig,
	clock helpers.Clock,
	logger zerolog.Logger,
) SessionService {
	return &sessionServiceImpl{
		provider: provider,
		profiles: profiles,
		config:   config,
		clock:    clock,
		logger:   logger.With().Str("service", "sessions").Logger(),
	}
}

func (s *sessionServiceImpl) MaxAge() time.Duration {
	return s.config.MaxAge
}

func (s *sessionServiceImpl) CreateSession(ctx context.Context, idToken string, seed *models.ProfilePatch) (string, error) {
	identity, err := s.provider.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Debug().Err(err).Msg("ID token rejected")
		return "", apperrors.ErrUnauthenticated
	}

	cookie, err := s.provider.CreateSessionCookie(ctx, idToken, s.config.MaxAge)
	if err != nil {
		s.logger.Warn().Err(err).Str("uid", identity.UID).Msg("Session cookie could not be minted")
		return "", apperrors.ErrUnauthenticated
	}

	if seed != nil {
		patch, err := s.seedPatch(ctx, identity.UID, *seed)
		if err != nil {
			return "", err
		}
		if patch.Email == nil && identity.Email != "" {
			email := identity.Email
			patch.Email = &email
		}
		if _, err := s.profiles.Upsert(ctx, identity.UID, patch, identity.CreatedAt(s.clock())); err != nil {
			return "", fmt.Errorf("error saving profile: %w", err)
		}
	}

	s.logger.Info().Str("uid", identity.UID).Bool("seeded", seed != nil).Msg("Session created")
	return cookie, nil
}

// seedPatch keeps a seed role only for a first sign-in, and only student or graduate.
// An existing profile keeps its role; career office is granted through provisioning.
func (s *sessionServiceImpl) seedPatch(ctx context.Context, uid string, seed models.ProfilePatch) (models.ProfilePatch, error) {
	if seed.Role == nil {
		return seed, nil
	}
	if *seed.Role != models.RoleStudent && *seed.Role != models.RoleGraduate {
		seed.Role = nil
		return seed, nil
	}

	_, err := s.profiles.Get(ctx, uid)
	switch {
	case err == nil:
		s.logger.Debug().Str("uid", uid).Msg("Ignoring seed role for existing profile")
		seed.Role = nil
	case !errors.Is(err, apperrors.ErrProfileNotFound):
		return seed, fmt.Errorf("error loading profile: %w", err)
	}
	return seed, nil
}

func (s *sessionServiceImpl) RegisterAdmin(ctx context.Context, input RegisterAdminInput, adminSecret string) (*models.Profile, error) {
	if s.config.Production && !pkgauth.CheckSecret(s.config.AdminSecretHash, adminSecret) {
		s.logger.Warn().Str("email", input.Email).Msg("Admin registration rejected")
		return nil, apperrors.ErrPermissionDenied
	}

	displayName := models.FullName(input.FirstName, input.LastName)
	uid, err := s.provider.CreateUser(ctx, input.Email, input.Password, displayName)
	if err != nil {
		return nil, fmt.Errorf("error creating account: %w", err)
	}
	if err := s.provider.SetRole(ctx, uid, string(models.RoleCareerOffice)); err != nil {
		return nil, fmt.Errorf("error assigning role: %w", err)
	}

	role := models.RoleCareerOffice
	email := strings.TrimSpace(input.Email)
	patch := models.ProfilePatch{Email: &email, Role: &role}
	if input.FirstName != "" || input.LastName != "" {
		patch.FirstName = &input.FirstName
		patch.LastName = &input.LastName
	}

	profile, err := s.profiles.Upsert(ctx, uid, patch, s.clock().UTC())
	if err != nil {
		return nil, fmt.Errorf("error saving profile: %w", err)
	}

	s.logger.Info().Str("uid", uid).Str("email", email).Msg("Career office account provisioned")
	return profile, nil
}
