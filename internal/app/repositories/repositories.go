package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/pkg/helpers"
)

// SequenceAllocator hands out increasing numeric ids per collection
type SequenceAllocator interface {
	Next(ctx context.Context, collection string) (int64, error)
}

// JobStore persists job postings
type JobStore interface {
	List(ctx context.Context) ([]*models.Job, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, id int64, patch models.JobPatch) (*models.Job, error)
	Delete(ctx context.Context, id int64) error
	// AdjustApplicationsCount adds delta to the counter, flooring at zero. A missing job is not an error.
	AdjustApplicationsCount(ctx context.Context, id int64, delta int64) error
}

// ApplicationStore persists job applications
type ApplicationStore interface {
	// List returns every application when userID is empty, otherwise only that user's
	List(ctx context.Context, userID string) ([]*models.Application, error)
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	Create(ctx context.Context, app *models.Application) error
	Update(ctx context.Context, id int64, patch models.ApplicationPatch) (*models.Application, error)
	Delete(ctx context.Context, id int64) error
}

// ProfileStore persists caller profiles keyed by identity uid
type ProfileStore interface {
	Get(ctx context.Context, id string) (*models.Profile, error)
	// Upsert merges patch into the stored profile, creating it with createdAt when absent
	Upsert(ctx context.Context, id string, patch models.ProfilePatch, createdAt time.Time) (*models.Profile, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Sequences    SequenceAllocator
	Jobs         JobStore
	Applications ApplicationStore
	Profiles     ProfileStore
}

// NewRepositories initializes the Postgres-backed repositories
func NewRepositories(db *pgxpool.Pool, clock helpers.Clock) *Repositories {
	return &Repositories{
		Sequences:    NewSequenceRepository(db),
		Jobs:         NewJobRepository(db),
		Applications: NewApplicationRepository(db),
		Profiles:     NewProfileRepository(db, clock),
	}
}
