package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/pkg/logger"
)

// sequencedCollections lists the tables whose ids come from the counters table
var sequencedCollections = map[string]bool{
	models.CollectionJobs:         true,
	models.CollectionApplications: true,
}

// SequenceRepository allocates ids from the counters table
type SequenceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSequenceRepository creates a new SequenceRepository
func NewSequenceRepository(db *pgxpool.Pool) *SequenceRepository {
	return &SequenceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// nextIDQuery builds the single-statement counter advance for collection.
// The first call seeds the counter from MAX(id) so rows created before the counter existed are respected.
func (r *SequenceRepository) nextIDQuery(collection string) (string, []interface{}, error) {
	if !sequencedCollections[collection] {
		return "", nil, fmt.Errorf("collection %q has no id sequence", collection)
	}

	seed := fmt.Sprintf("COALESCE((SELECT MAX(id) FROM %s), 0) + 1", pgx.Identifier{collection}.Sanitize())
	return r.sb.Insert("counters").
		Columns("name", "value").
		Values(collection, squirrel.Expr(seed)).
		Suffix("ON CONFLICT (name) DO UPDATE SET value = counters.value + 1 RETURNING value").
		ToSql()
}

// Next returns the next id for collection. Ids are never reused.
func (r *SequenceRepository) Next(ctx context.Context, collection string) (int64, error) {
	sql, args, err := r.nextIDQuery(collection)
	if err != nil {
		logger.Error().Err(err).Str("collection", collection).Msg("Error building next id SQL")
		return 0, fmt.Errorf("failed to build next id query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("collection", collection).Msg("Error allocating id")
		return 0, fmt.Errorf("error allocating id for %s: %w", collection, err)
	}
	return id, nil
}
