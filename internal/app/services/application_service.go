package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/careerportal/internal/app/auth"
	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/app/repositories"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
	pkgauth "github.com/yigit/careerportal/internal/pkg/auth"
	"github.com/yigit/careerportal/internal/pkg/filestorage"
	"github.com/yigit/careerportal/internal/pkg/helpers"
)

// ResumeFile locates a stored resume for download
type ResumeFile struct {
	Path     string
	FileName string
}

// ApplicationService defines the interface for job application operations
type ApplicationService interface {
	ListApplications(ctx context.Context, caller *pkgauth.Identity) ([]*models.Application, error)
	GetApplication(ctx context.Context, caller *pkgauth.Identity, id int64) (*models.Application, error)
	CreateApplication(ctx context.Context, caller *pkgauth.Identity, app *models.Application, resume *models.ResumeUpload) (*models.Application, error)
	UpdateApplication(ctx context.Context, caller *pkgauth.Identity, id int64, patch models.ApplicationPatch) (*models.Application, error)
	UpdateApplicationStatus(ctx context.Context, caller *pkgauth.Identity, id int64, status models.ApplicationStatus) (*models.Application, error)
	DeleteApplication(ctx context.Context, caller *pkgauth.Identity, id int64) error
	GetResume(ctx context.Context, caller *pkgauth.Identity, id int64) (*ResumeFile, error)
}

// applicationServiceImpl implements the ApplicationService interface
type applicationServiceImpl struct {
	apps           repositories.ApplicationStore
	jobs           repositories.JobStore
	sequences      repositories.SequenceAllocator
	authz          *auth.AuthorizationService
	storage        filestorage.FileStorage
	maxResumeBytes int64
	clock          helpers.Clock
	logger         zerolog.Logger
}

// NewApplicationService creates a new application service instance
func NewApplicationService(
	apps repositories.ApplicationStore,
	jobs repositories.JobStore,
	sequences repositories.SequenceAllocator,
	authz *auth.AuthorizationService,
	storage filestorage.FileStorage,
	maxResumeBytes int64,
	clock helpers.Clock,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationServiceImpl{
		apps:           apps,
		jobs:           jobs,
		sequences:      sequences,
		authz:          authz,
		storage:        storage,
		maxResumeBytes: maxResumeBytes,
		clock:          clock,
		logger:         logger.With().Str("service", "applications").Logger(),
	}
}

func resumeDir(id int64) string {
	return fmt.Sprintf("resumes/%d", id)
}

func resumeURL(id int64) string {
	return fmt.Sprintf("/applications/%d/resume", id)
}

// decodeResume accepts plain base64 or a data URL and enforces the size limit
func decodeResume(data string, maxBytes int64) ([]byte, error) {
	data = strings.TrimSpace(data)
	if strings.HasPrefix(data, "data:") {
		comma := strings.IndexByte(data, ',')
		if comma < 0 || !strings.HasSuffix(data[:comma], ";base64") {
			return nil, apperrors.NewBadRequestError("Resume must be base64 encoded")
		}
		data = data[comma+1:]
	}

	if int64(base64.StdEncoding.DecodedLen(len(data))) > maxBytes+2 {
		return nil, apperrors.NewCustomError(apperrors.ErrPayloadTooLarge, fmt.Sprintf("Resume exceeds %d bytes", maxBytes))
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Resume must be base64 encoded")
	}
	if int64(len(decoded)) > maxBytes {
		return nil, apperrors.NewCustomError(apperrors.ErrPayloadTooLarge, fmt.Sprintf("Resume exceeds %d bytes", maxBytes))
	}
	return decoded, nil
}

// checkStatus validates a status the caller wants to set
func (s *applicationServiceImpl) checkStatus(ctx context.Context, caller *pkgauth.Identity, status models.ApplicationStatus) error {
	if status.IsOwnerStatus() {
		return nil
	}
	if !status.IsValid() {
		return apperrors.ErrInvalidStatus
	}
	office, err := s.authz.IsCareerOffice(ctx, caller)
	if err != nil {
		return err
	}
	if !office {
		return apperrors.ErrInvalidStatus
	}
	return nil
}

// ListApplications returns all applications to the career office, otherwise only the caller's own
func (s *applicationServiceImpl) ListApplications(ctx context.Context, caller *pkgauth.Identity) ([]*models.Application, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	office, err := s.authz.IsCareerOffice(ctx, caller)
	if err != nil {
		return nil, err
	}

	owner := caller.UID
	if office {
		owner = ""
	}
	apps, err := s.apps.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("error retrieving applications: %w", err)
	}
	helpers.SortByID(apps, func(a *models.Application) int64 { return a.ID })
	return apps, nil
}

// GetApplication returns an application to its owner or the career office
func (s *applicationServiceImpl) GetApplication(ctx context.Context, caller *pkgauth.Identity, id int64) (*models.Application, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanViewApplication(ctx, app, caller); err != nil {
		return nil, err
	}
	return app, nil
}

// CreateApplication stores a new application owned by the caller, dated today
func (s *applicationServiceImpl) CreateApplication(ctx context.Context, caller *pkgauth.Identity, app *models.Application, resume *models.ResumeUpload) (*models.Application, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	if app.Status == "" {
		app.Status = models.StatusApplied
	}
	if err := s.checkStatus(ctx, caller, app.Status); err != nil {
		return nil, err
	}

	var resumeData []byte
	if resume != nil && resume.Data != "" {
		decoded, err := decodeResume(resume.Data, s.maxResumeBytes)
		if err != nil {
			return nil, err
		}
		resumeData = decoded
	}

	id, err := s.sequences.Next(ctx, models.CollectionApplications)
	if err != nil {
		return nil, err
	}
	app.ID = id
	app.UserID = caller.UID
	app.Date = helpers.FormatDate(s.clock())
	app.ResumeFileName = ""
	app.ResumeURL = ""

	if resume != nil {
		app.ResumeFileName = resume.FileName
		if resumeData != nil {
			if app.ResumeFileName == "" {
				app.ResumeFileName = "resume"
			}
			if _, err := s.storage.SaveBytes(resumeDir(id), app.ResumeFileName, resumeData); err != nil {
				return nil, fmt.Errorf("error storing resume: %w", err)
			}
			app.ResumeURL = resumeURL(id)
		}
	}

	if err := s.apps.Create(ctx, app); err != nil {
		s.logger.Error().Err(err).Int64("applicationID", id).Msg("Failed to create application, id abandoned")
		if app.ResumeURL != "" {
			_ = s.storage.DeleteDir(resumeDir(id))
		}
		return nil, err
	}

	if app.JobID > 0 {
		if err := s.jobs.AdjustApplicationsCount(ctx, app.JobID, 1); err != nil {
			s.logger.Warn().Err(err).Int64("jobID", app.JobID).Msg("Could not increment applications count")
		}
	}

	s.logger.Info().Int64("applicationID", id).Str("uid", caller.UID).Int64("jobID", app.JobID).Msg("Application created")
	return app, nil
}

// loadOwned fetches an application and checks the caller owns it. Missing applications are forbidden.
func (s *applicationServiceImpl) loadOwned(ctx context.Context, caller *pkgauth.Identity, id int64) (*models.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}
	if err := s.authz.ValidateApplicationOwnership(app, caller); err != nil {
		return nil, err
	}
	return app, nil
}

// UpdateApplication merges the whitelisted fields into the caller's own application
func (s *applicationServiceImpl) UpdateApplication(ctx context.Context, caller *pkgauth.Identity, id int64, patch models.ApplicationPatch) (*models.Application, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if _, err := s.loadOwned(ctx, caller, id); err != nil {
		return nil, err
	}
	if patch.Status != nil {
		if err := s.checkStatus(ctx, caller, *patch.Status); err != nil {
			return nil, err
		}
	}

	updated, err := s.apps.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateApplicationStatus lets the career office move any application to any known status
func (s *applicationServiceImpl) UpdateApplicationStatus(ctx context.Context, caller *pkgauth.Identity, id int64, status models.ApplicationStatus) (*models.Application, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.authz.RequireCareerOffice(ctx, caller); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	updated, err := s.apps.Update(ctx, id, models.ApplicationPatch{Status: &status})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("applicationID", id).Str("status", string(status)).Str("by", caller.UID).Msg("Application status changed")
	return updated, nil
}

// DeleteApplication removes the caller's own application and its stored resume
func (s *applicationServiceImpl) DeleteApplication(ctx context.Context, caller *pkgauth.Identity, id int64) error {
	if caller == nil {
		return apperrors.ErrUnauthenticated
	}
	app, err := s.loadOwned(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.apps.Delete(ctx, id); err != nil {
		return err
	}

	if app.ResumeURL != "" {
		if err := s.storage.DeleteDir(resumeDir(id)); err != nil {
			s.logger.Warn().Err(err).Int64("applicationID", id).Msg("Could not remove stored resume")
		}
	}
	if app.JobID > 0 {
		if err := s.jobs.AdjustApplicationsCount(ctx, app.JobID, -1); err != nil {
			s.logger.Warn().Err(err).Int64("jobID", app.JobID).Msg("Could not decrement applications count")
		}
	}

	s.logger.Info().Int64("applicationID", id).Str("uid", caller.UID).Msg("Application deleted")
	return nil
}

// GetResume locates the stored resume of an application the caller may view
func (s *applicationServiceImpl) GetResume(ctx context.Context, caller *pkgauth.Identity, id int64) (*ResumeFile, error) {
	app, err := s.GetApplication(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if app.ResumeURL == "" {
		return nil, apperrors.ErrResumeNotFound
	}

	path, err := s.storage.GetFullPath(resumeDir(id) + "/" + filestorage.SanitizeFilename(app.ResumeFileName))
	if err != nil {
		if errors.Is(err, filestorage.ErrFileNotFound) {
			return nil, apperrors.ErrResumeNotFound
		}
		return nil, err
	}
	return &ResumeFile{Path: path, FileName: app.ResumeFileName}, nil
}
