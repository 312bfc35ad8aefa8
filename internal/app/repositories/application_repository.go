package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
	"github.com/yigit/careerportal/internal/pkg/dberrors"
	"github.com/yigit/careerportal/internal/pkg/logger"
)

var applicationColumns = []string{
	"id", "user_id", "job_id", "job_title", "company", "status", "date", "resume_file_name", "resume_url",
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

// ApplicationRepository handles job application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ApplicationRepository) listQuery(userID string) squirrel.SelectBuilder {
	query := r.sb.Select(applicationColumns...).
		From(models.CollectionApplications).
		OrderBy("id ASC")
	if userID != "" {
		query = query.Where(squirrel.Eq{"user_id": userID})
	}
	return query
}

// List retrieves applications, optionally restricted to one user
func (r *ApplicationRepository) List(ctx context.Context, userID string) ([]*models.Application, error) {
	sql, args, err := r.listQuery(userID).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list applications SQL")
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error executing list applications query")
		return nil, fmt.Errorf("error querying applications: %w", err)
	}

	apps, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.Application])
	if err != nil {
		logger.Error().Err(err).Msg("Error scanning application rows")
		return nil, fmt.Errorf("error scanning application rows: %w", err)
	}
	return apps, nil
}

// GetByID retrieves an application by id
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	sql, args, err := r.sb.Select(applicationColumns...).
		From(models.CollectionApplications).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get application SQL")
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error executing get application query")
		return nil, fmt.Errorf("error getting application by ID: %w", err)
	}

	app, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Application])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error scanning application row")
		return nil, fmt.Errorf("error getting application by ID: %w", err)
	}
	return app, nil
}

// Create inserts an application whose id was already allocated
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	sql, args, err := r.sb.Insert(models.CollectionApplications).
		Columns(applicationColumns...).
		Values(app.ID, app.UserID, app.JobID, app.JobTitle, app.Company, app.Status, app.Date,
			app.ResumeFileName, app.ResumeURL).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create application SQL")
		return fmt.Errorf("failed to build create application query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.NewCustomError(apperrors.ErrConflict, fmt.Sprintf("Application %d already exists", app.ID))
		}
		logger.Error().Err(err).Int64("applicationID", app.ID).Msg("Error executing create application query")
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

func applicationPatchColumns(patch models.ApplicationPatch) map[string]interface{} {
	set := map[string]interface{}{}
	if patch.JobTitle != nil {
		set["job_title"] = *patch.JobTitle
	}
	if patch.Company != nil {
		set["company"] = *patch.Company
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	return set
}

// Update writes only the supplied whitelisted fields and returns the stored application
func (r *ApplicationRepository) Update(ctx context.Context, id int64, patch models.ApplicationPatch) (*models.Application, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	sql, args, err := r.sb.Update(models.CollectionApplications).
		SetMap(applicationPatchColumns(patch)).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(applicationColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update application SQL")
		return nil, fmt.Errorf("failed to build update application query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error executing update application query")
		return nil, fmt.Errorf("error updating application: %w", err)
	}

	app, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Application])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error scanning updated application row")
		return nil, fmt.Errorf("error updating application: %w", err)
	}
	return app, nil
}

// Delete removes an application
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete(models.CollectionApplications).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete application SQL")
		return fmt.Errorf("failed to build delete application query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error executing delete application query")
		return fmt.Errorf("error deleting application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}
