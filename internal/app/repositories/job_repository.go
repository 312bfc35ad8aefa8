package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
	"github.com/yigit/careerportal/internal/pkg/dberrors"
	"github.com/yigit/careerportal/internal/pkg/logger"
)

var jobColumns = []string{
	"id", "title", "company", "location", "type", "salary", "posted_date", "deadline",
	"status", "description", "requirements", "featured", "applications_count",
}

// JobRepository handles job posting database operations
type JobRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// List retrieves all job postings ordered by id
func (r *JobRepository) List(ctx context.Context) ([]*models.Job, error) {
	sql, args, err := r.sb.Select(jobColumns...).
		From(models.CollectionJobs).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list jobs SQL")
		return nil, fmt.Errorf("failed to build list jobs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list jobs query")
		return nil, fmt.Errorf("error querying jobs: %w", err)
	}

	jobs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.Job])
	if err != nil {
		logger.Error().Err(err).Msg("Error scanning job rows")
		return nil, fmt.Errorf("error scanning job rows: %w", err)
	}
	return jobs, nil
}

// Count returns the number of stored job postings
func (r *JobRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From(models.CollectionJobs).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count jobs query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting jobs: %w", err)
	}
	return count, nil
}

// GetByID retrieves a job posting by id
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	sql, args, err := r.sb.Select(jobColumns...).
		From(models.CollectionJobs).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get job SQL")
		return nil, fmt.Errorf("failed to build get job query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("jobID", id).Msg("Error executing get job query")
		return nil, fmt.Errorf("error getting job by ID: %w", err)
	}

	job, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Job])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		logger.Error().Err(err).Int64("jobID", id).Msg("Error scanning job row")
		return nil, fmt.Errorf("error getting job by ID: %w", err)
	}
	return job, nil
}

// Create inserts a job posting whose id was already allocated
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.Requirements == nil {
		job.Requirements = []string{}
	}

	sql, args, err := r.sb.Insert(models.CollectionJobs).
		Columns(jobColumns...).
		Values(job.ID, job.Title, job.Company, job.Location, job.Type, job.Salary, job.PostedDate,
			job.Deadline, job.Status, job.Description, job.Requirements, job.Featured, job.ApplicationsCount).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create job SQL")
		return fmt.Errorf("failed to build create job query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.NewCustomError(apperrors.ErrConflict, fmt.Sprintf("Job %d already exists", job.ID))
		}
		logger.Error().Err(err).Int64("jobID", job.ID).Msg("Error executing create job query")
		return fmt.Errorf("error creating job: %w", err)
	}
	return nil
}

// jobPatchColumns maps the supplied patch fields to their column values
func jobPatchColumns(patch models.JobPatch) map[string]interface{} {
	set := map[string]interface{}{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Company != nil {
		set["company"] = *patch.Company
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.Salary != nil {
		set["salary"] = *patch.Salary
	}
	if patch.PostedDate != nil {
		set["posted_date"] = *patch.PostedDate
	}
	if patch.Deadline != nil {
		set["deadline"] = *patch.Deadline
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Requirements != nil {
		reqs := *patch.Requirements
		if reqs == nil {
			reqs = []string{}
		}
		set["requirements"] = reqs
	}
	if patch.Featured != nil {
		set["featured"] = *patch.Featured
	}
	return set
}

// Update writes only the supplied fields and returns the stored posting
func (r *JobRepository) Update(ctx context.Context, id int64, patch models.JobPatch) (*models.Job, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	sql, args, err := r.sb.Update(models.CollectionJobs).
		SetMap(jobPatchColumns(patch)).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(jobColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update job SQL")
		return nil, fmt.Errorf("failed to build update job query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("jobID", id).Msg("Error executing update job query")
		return nil, fmt.Errorf("error updating job: %w", err)
	}

	job, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Job])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		logger.Error().Err(err).Int64("jobID", id).Msg("Error scanning updated job row")
		return nil, fmt.Errorf("error updating job: %w", err)
	}
	return job, nil
}

// Delete removes a job posting
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete(models.CollectionJobs).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete job SQL")
		return fmt.Errorf("failed to build delete job query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("jobID", id).Msg("Error executing delete job query")
		return fmt.Errorf("error deleting job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// AdjustApplicationsCount moves the applications counter by delta, never below zero
func (r *JobRepository) AdjustApplicationsCount(ctx context.Context, id int64, delta int64) error {
	sql, args, err := r.sb.Update(models.CollectionJobs).
		Set("applications_count", squirrel.Expr("GREATEST(applications_count + ?, 0)", delta)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build applications count query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("jobID", id).Int64("delta", delta).Msg("Error adjusting applications count")
		return fmt.Errorf("error adjusting applications count: %w", err)
	}
	return nil
}
