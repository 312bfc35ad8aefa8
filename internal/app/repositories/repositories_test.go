package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/careerportal/internal/app/models"
)

func TestNextIDQuery(t *testing.T) {
	repo := NewSequenceRepository(nil)

	sql, args, err := repo.nextIDQuery(models.CollectionJobs)
	require.NoError(t, err)
	assert.Equal(t,
		`INSERT INTO counters (name,value) VALUES ($1,COALESCE((SELECT MAX(id) FROM "jobs"), 0) + 1) `+
			`ON CONFLICT (name) DO UPDATE SET value = counters.value + 1 RETURNING value`,
		sql)
	assert.Equal(t, []interface{}{"jobs"}, args)
}

func TestNextIDQueryRejectsUnknownCollection(t *testing.T) {
	repo := NewSequenceRepository(nil)

	_, _, err := repo.nextIDQuery("users; DROP TABLE jobs")
	assert.Error(t, err)
}

func TestApplicationListQuery(t *testing.T) {
	repo := NewApplicationRepository(nil)

	sql, args, err := repo.listQuery("").ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)

	sql, args, err = repo.listQuery("uid-1").ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE user_id = $1 ORDER BY id ASC")
	assert.Equal(t, []interface{}{"uid-1"}, args)
}

func TestJobPatchColumnsOnlySupplied(t *testing.T) {
	title := "Data Analyst"
	featured := false
	set := jobPatchColumns(models.JobPatch{Title: &title, Featured: &featured})

	assert.Equal(t, map[string]interface{}{"title": "Data Analyst", "featured": false}, set)
}

func TestApplicationPatchColumns(t *testing.T) {
	status := models.StatusInterview
	set := applicationPatchColumns(models.ApplicationPatch{Status: &status})

	assert.Equal(t, map[string]interface{}{"status": models.StatusInterview}, set)
}

func TestProfileUpsertQueryUpdatesOnlySuppliedColumns(t *testing.T) {
	repo := NewProfileRepository(nil, time.Now)
	first := "Ada"
	patch := models.ProfilePatch{FirstName: &first}
	merged := &models.Profile{ID: "uid-1", Role: models.RoleStudent, FirstName: "Ada", FullName: "Ada", CreatedAt: time.Now()}

	sql, args, err := repo.profileUpsertQuery(merged, patch)
	require.NoError(t, err)
	assert.Contains(t, sql, "ON CONFLICT (id) DO UPDATE SET updated_at = EXCLUDED.updated_at, first_name = EXCLUDED.first_name, full_name = EXCLUDED.full_name RETURNING")
	assert.NotContains(t, sql, "major = EXCLUDED.major")
	assert.Len(t, args, len(profileColumns))
}
