package seed

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/careerportal/internal/app/repositories/memory"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
}

func TestCreateDefaultDataSeedsEmptyCatalogOnce(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories(fixedClock)

	require.NoError(t, CreateDefaultData(ctx, repos, fixedClock, zerolog.Nop()))
	jobs, err := repos.Jobs.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, int64(1), jobs[0].ID)
	assert.Equal(t, "2026-10-15", jobs[0].PostedDate)

	require.NoError(t, CreateDefaultData(ctx, repos, fixedClock, zerolog.Nop()))
	count, err := repos.Jobs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
