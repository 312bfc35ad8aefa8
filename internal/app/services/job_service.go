package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/careerportal/internal/app/auth"
	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/app/repositories"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
	pkgauth "github.com/yigit/careerportal/internal/pkg/auth"
	"github.com/yigit/careerportal/internal/pkg/helpers"
)

// JobService defines the interface for job posting operations
type JobService interface {
	ListJobs(ctx context.Context) ([]*models.Job, error)
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	CreateJob(ctx context.Context, caller *pkgauth.Identity, job *models.Job) (*models.Job, error)
	UpdateJob(ctx context.Context, caller *pkgauth.Identity, id int64, patch models.JobPatch) (*models.Job, error)
	DeleteJob(ctx context.Context, caller *pkgauth.Identity, id int64) error
}

// jobServiceImpl implements the JobService interface
type jobServiceImpl struct {
	jobs        repositories.JobStore
	sequences   repositories.SequenceAllocator
	authz       *auth.AuthorizationService
	publicWrite bool
	clock       helpers.Clock
	logger      zerolog.Logger
}

// NewJobService creates a new job service instance.
// With publicWrite set, mutations skip the career office check.
func NewJobService(
	jobs repositories.JobStore,
	sequences repositories.SequenceAllocator,
	authz *auth.AuthorizationService,
	publicWrite bool,
	clock helpers.Clock,
	logger zerolog.Logger,
) JobService {
	return &jobServiceImpl{
		jobs:        jobs,
		sequences:   sequences,
		authz:       authz,
		publicWrite: publicWrite,
		clock:       clock,
		logger:      logger.With().Str("service", "jobs").Logger(),
	}
}

func (s *jobServiceImpl) authorizeWrite(ctx context.Context, caller *pkgauth.Identity) error {
	if s.publicWrite {
		return nil
	}
	if caller == nil {
		return apperrors.ErrUnauthenticated
	}
	return s.authz.RequireCareerOffice(ctx, caller)
}

// ListJobs returns every posting ordered by id
func (s *jobServiceImpl) ListJobs(ctx context.Context) ([]*models.Job, error) {
	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving jobs: %w", err)
	}
	return jobs, nil
}

// GetJob retrieves a posting by id
func (s *jobServiceImpl) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// CreateJob allocates the next job id and stores the posting
func (s *jobServiceImpl) CreateJob(ctx context.Context, caller *pkgauth.Identity, job *models.Job) (*models.Job, error) {
	if err := s.authorizeWrite(ctx, caller); err != nil {
		return nil, err
	}

	if job.Status == "" {
		job.Status = models.JobStatusActive
	}
	if job.PostedDate == "" {
		job.PostedDate = helpers.FormatDate(s.clock())
	}
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	job.ApplicationsCount = 0

	id, err := s.sequences.Next(ctx, models.CollectionJobs)
	if err != nil {
		return nil, err
	}
	job.ID = id

	if err := s.jobs.Create(ctx, job); err != nil {
		s.logger.Error().Err(err).Int64("jobID", id).Msg("Failed to create job, id abandoned")
		return nil, err
	}

	s.logger.Info().Int64("jobID", id).Str("title", job.Title).Msg("Job created")
	return job, nil
}

// UpdateJob writes the supplied fields of the posting identified by the path id
func (s *jobServiceImpl) UpdateJob(ctx context.Context, caller *pkgauth.Identity, id int64, patch models.JobPatch) (*models.Job, error) {
	if err := s.authorizeWrite(ctx, caller); err != nil {
		return nil, err
	}
	return s.jobs.Update(ctx, id, patch)
}

// DeleteJob removes a posting
func (s *jobServiceImpl) DeleteJob(ctx context.Context, caller *pkgauth.Identity, id int64) error {
	if err := s.authorizeWrite(ctx, caller); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("jobID", id).Msg("Job deleted")
	return nil
}
