package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
)

func TestSequenceAllocatorConcurrentIDsAreUnique(t *testing.T) {
	alloc := NewSequenceAllocator()
	ctx := context.Background()

	const workers = 50
	ids := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := alloc.Next(ctx, models.CollectionApplications)
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)

	next, err := alloc.Next(ctx, models.CollectionJobs)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
}

func TestJobStoreApplicationsCountFloorsAtZero(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &models.Job{ID: 1, Title: "Intern"}))

	require.NoError(t, store.AdjustApplicationsCount(ctx, 1, 1))
	require.NoError(t, store.AdjustApplicationsCount(ctx, 1, -1))
	require.NoError(t, store.AdjustApplicationsCount(ctx, 1, -1))
	require.NoError(t, store.AdjustApplicationsCount(ctx, 99, 1))

	job, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), job.ApplicationsCount)
}

func TestJobStoreReturnsCopies(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &models.Job{ID: 1, Requirements: []string{"Go"}}))

	job, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	job.Requirements[0] = "Rust"

	again, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, again.Requirements)
}

func TestJobStoreDeleteMissing(t *testing.T) {
	store := NewJobStore()
	err := store.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestApplicationStoreListFiltersAndSorts(t *testing.T) {
	store := NewApplicationStore()
	ctx := context.Background()
	for _, app := range []*models.Application{
		{ID: 3, UserID: "a"},
		{ID: 1, UserID: "b"},
		{ID: 2, UserID: "a"},
	} {
		require.NoError(t, store.Create(ctx, app))
	}

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{all[0].ID, all[1].ID, all[2].ID})

	mine, err := store.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, int64(2), mine[0].ID)
	assert.Equal(t, int64(3), mine[1].ID)
}

func TestProfileStoreUpsertMerges(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	store := NewProfileStore(func() time.Time { return now })
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	first, last := "Ada", "Lovelace"
	p, err := store.Upsert(ctx, "uid-1", models.ProfilePatch{FirstName: &first, LastName: &last}, created)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", p.FullName)
	assert.Equal(t, models.RoleStudent, p.Role)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)

	now = now.Add(time.Hour)
	major := "CS"
	p, err = store.Upsert(ctx, "uid-1", models.ProfilePatch{Major: &major}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", p.FullName)
	assert.Equal(t, "CS", p.Major)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, time.Date(2026, 10, 15, 10, 30, 0, 0, time.UTC), p.UpdatedAt)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
