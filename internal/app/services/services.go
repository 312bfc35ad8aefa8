package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/careerportal/internal/app/auth"
	"github.com/yigit/careerportal/internal/app/repositories"
	"github.com/yigit/careerportal/internal/config"
	pkgauth "github.com/yigit/careerportal/internal/pkg/auth"
	"github.com/yigit/careerportal/internal/pkg/filestorage"
	"github.com/yigit/careerportal/internal/pkg/helpers"
)

// Services holds all the service instances
type Services struct {
	Authorization *auth.AuthorizationService
	Jobs          JobService
	Applications  ApplicationService
	Profiles      ProfileService
	Sessions      SessionService
}

// NewServices wires every service from configuration and its collaborators
func NewServices(
	cfg *config.Config,
	repos *repositories.Repositories,
	provider pkgauth.IdentityProvider,
	storage filestorage.FileStorage,
	clock helpers.Clock,
	logger zerolog.Logger,
) *Services {
	authz := auth.NewAuthorizationService(repos.Profiles, logger)
	sessionConfig := SessionConfig{
		MaxAge:          cfg.SessionMaxAge(),
		Production:      cfg.IsProduction(),
		AdminSecretHash: cfg.Auth.AdminSecretHash,
	}

	return &Services{
		Authorization: authz,
		Jobs:          NewJobService(repos.Jobs, repos.Sequences, authz, cfg.Jobs.PublicWrite, clock, logger),
		Applications:  NewApplicationService(repos.Applications, repos.Jobs, repos.Sequences, authz, storage, cfg.Resume.MaxBytes, clock, logger),
		Profiles:      NewProfileService(repos.Profiles, clock, logger),
		Sessions:      NewSessionService(provider, repos.Profiles, sessionConfig, clock, logger),
	}
}
