package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/db"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
	"github.com/yigit/careerportal/internal/pkg/helpers"
	"github.com/yigit/careerportal/internal/pkg/logger"
)

var profileColumns = []string{
	"id", "email", "role", "first_name", "last_name", "full_name", "phone", "student_id",
	"major", "graduation_year", "bio", "linkedin_url", "created_at", "updated_at",
}

// ProfileRepository handles caller profile database operations
type ProfileRepository struct {
	db    *pgxpool.Pool
	sb    squirrel.StatementBuilderType
	clock helpers.Clock
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool, clock helpers.Clock) *ProfileRepository {
	return &ProfileRepository{
		db:    db,
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		clock: clock,
	}
}

// Get retrieves a profile by identity uid
func (r *ProfileRepository) Get(ctx context.Context, id string) (*models.Profile, error) {
	return r.get(ctx, r.db, id, false)
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *ProfileRepository) get(ctx context.Context, q queryer, id string, forUpdate bool) (*models.Profile, error) {
	query := r.sb.Select(profileColumns...).
		From(models.CollectionUsers).
		Where(squirrel.Eq{"id": id}).
		Limit(1)
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get profile SQL")
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", id).Msg("Error executing get profile query")
		return nil, fmt.Errorf("error getting profile: %w", err)
	}

	profile, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Profile])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Str("userID", id).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error getting profile: %w", err)
	}
	if profile.Role == "" {
		profile.Role = models.RoleStudent
	}
	return profile, nil
}

// profileUpsertQuery inserts the merged profile, and on conflict overwrites only the supplied columns
func (r *ProfileRepository) profileUpsertQuery(merged *models.Profile, patch models.ProfilePatch) (string, []interface{}, error) {
	updates := []string{"updated_at = EXCLUDED.updated_at"}
	touched := []struct {
		set    bool
		column string
	}{
		{patch.Email != nil, "email"},
		{patch.Role != nil, "role"},
		{patch.FirstName != nil, "first_name"},
		{patch.LastName != nil, "last_name"},
		{patch.TouchesName(), "full_name"},
		{patch.Phone != nil, "phone"},
		{patch.StudentID != nil, "student_id"},
		{patch.Major != nil, "major"},
		{patch.GraduationYear != nil, "graduation_year"},
		{patch.Bio != nil, "bio"},
		{patch.LinkedInURL != nil, "linkedin_url"},
	}
	for _, c := range touched {
		if c.set {
			updates = append(updates, c.column+" = EXCLUDED."+c.column)
		}
	}

	return r.sb.Insert(models.CollectionUsers).
		Columns(profileColumns...).
		Values(merged.ID, merged.Email, merged.Role, merged.FirstName, merged.LastName, merged.FullName,
			merged.Phone, merged.StudentID, merged.Major, merged.GraduationYear, merged.Bio,
			merged.LinkedInURL, merged.CreatedAt, merged.UpdatedAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + joinColumns(updates) + " RETURNING " + joinColumns(profileColumns)).
		ToSql()
}

// Upsert merges patch into the stored profile inside a transaction
func (r *ProfileRepository) Upsert(ctx context.Context, id string, patch models.ProfilePatch, createdAt time.Time) (*models.Profile, error) {
	var profile *models.Profile
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		merged, err := r.get(ctx, tx, id, true)
		if err != nil {
			if !errors.Is(err, apperrors.ErrProfileNotFound) {
				return err
			}
			merged = &models.Profile{ID: id, Role: models.RoleStudent, CreatedAt: createdAt}
		}
		patch.Apply(merged)
		merged.UpdatedAt = r.clock().UTC()

		sql, args, err := r.profileUpsertQuery(merged, patch)
		if err != nil {
			logger.Error().Err(err).Msg("Error building upsert profile SQL")
			return fmt.Errorf("failed to build upsert profile query: %w", err)
		}

		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Str("userID", id).Msg("Error executing upsert profile query")
			return fmt.Errorf("error upserting profile: %w", err)
		}
		profile, err = pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Profile])
		if err != nil {
			logger.Error().Err(err).Str("userID", id).Msg("Error scanning upserted profile row")
			return fmt.Errorf("error upserting profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}
