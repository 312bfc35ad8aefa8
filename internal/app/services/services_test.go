package services

import (
	"context"
	"encoding/base64"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/careerportal/internal/app/auth"
	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/app/repositories"
	"github.com/yigit/careerportal/internal/app/repositories/memory"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
	pkgauth "github.com/yigit/careerportal/internal/pkg/auth"
	"github.com/yigit/careerportal/internal/pkg/filestorage"
)

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type fixture struct {
	repos    *repositories.Repositories
	authz    *auth.AuthorizationService
	storage  *filestorage.LocalStorage
	provider *pkgauth.JWTProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	storage, err := filestorage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repos := memory.NewRepositories(fixedClock)
	provider := pkgauth.NewJWTProvider(pkgauth.JWTConfig{
		SessionSecret: "session-secret",
		IDTokenSecret: "id-token-secret",
		TokenIssuer:   "careerportal.test",
	})
	return &fixture{
		repos:    repos,
		authz:    auth.NewAuthorizationService(repos.Profiles, zerolog.Nop()),
		storage:  storage,
		provider: provider,
	}
}

func (f *fixture) jobs(publicWrite bool) JobService {
	return NewJobService(f.repos.Jobs, f.repos.Sequences, f.authz, publicWrite, fixedClock, zerolog.Nop())
}

func (f *fixture) applications(maxBytes int64) ApplicationService {
	return NewApplicationService(f.repos.Applications, f.repos.Jobs, f.repos.Sequences, f.authz, f.storage, maxBytes, fixedClock, zerolog.Nop())
}

func (f *fixture) sessions(cfg SessionConfig) SessionService {
	return NewSessionService(f.provider, f.repos.Profiles, cfg, fixedClock, zerolog.Nop())
}

func (f *fixture) careerOffice(t *testing.T, uid string) *pkgauth.Identity {
	t.Helper()
	role := models.RoleCareerOffice
	_, err := f.repos.Profiles.Upsert(context.Background(), uid, models.ProfilePatch{Role: &role}, fixedNow)
	require.NoError(t, err)
	return &pkgauth.Identity{UID: uid}
}

func TestCreateJobAssignsSequentialIDsAndDefaults(t *testing.T) {
	f := newFixture(t)
	svc := f.jobs(false)
	office := f.careerOffice(t, "office")
	ctx := context.Background()

	first, err := svc.CreateJob(ctx, office, &models.Job{Title: "X", Company: "Y"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, models.JobStatusActive, first.Status)
	assert.Equal(t, "2026-10-15", first.PostedDate)
	assert.Equal(t, []string{}, first.Requirements)

	second, err := svc.CreateJob(ctx, office, &models.Job{Title: "Z", Company: "W", Status: models.JobStatusDraft})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, models.JobStatusDraft, second.Status)
}

func TestJobIDsAreNotReusedAfterDelete(t *testing.T) {
	f := newFixture(t)
	svc := f.jobs(true)
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, nil, &models.Job{Title: "X", Company: "Y"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteJob(ctx, nil, job.ID))

	next, err := svc.CreateJob(ctx, nil, &models.Job{Title: "X", Company: "Y"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID)
}

func TestJobWritesRequireCareerOffice(t *testing.T) {
	f := newFixture(t)
	svc := f.jobs(false)
	ctx := context.Background()

	_, err := svc.CreateJob(ctx, nil, &models.Job{Title: "X", Company: "Y"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	student := &pkgauth.Identity{UID: "student"}
	_, err = svc.CreateJob(ctx, student, &models.Job{Title: "X", Company: "Y"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.DeleteJob(ctx, student, 1), apperrors.ErrPermissionDenied)
}

func TestUpdateJobWritesOnlySuppliedFields(t *testing.T) {
	f := newFixture(t)
	svc := f.jobs(true)
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, nil, &models.Job{Title: "X", Company: "Y", Location: "Remote"})
	require.NoError(t, err)

	title := "X2"
	updated, err := svc.UpdateJob(ctx, nil, job.ID, models.JobPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "X2", updated.Title)
	assert.Equal(t, "Remote", updated.Location)
	assert.Equal(t, job.ID, updated.ID)

	_, err = svc.UpdateJob(ctx, nil, 99, models.JobPatch{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCreateApplicationForcesOwnerAndDate(t *testing.T) {
	f := newFixture(t)
	svc := f.applications(1024)
	ctx := context.Background()
	caller := &pkgauth.Identity{UID: "ada"}

	app, err := svc.CreateApplication(ctx, caller, &models.Application{UserID: "mallory", Date: "1999-01-01", JobTitle: "Intern"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), app.ID)
	assert.Equal(t, "ada", app.UserID)
	assert.Equal(t, "2026-10-15", app.Date)
	assert.Equal(t, models.StatusApplied, app.Status)
}

func TestCreateApplicationRejectsUnknownAndOfficeStatuses(t *testing.T) {
	f := newFixture(t)
	svc := f.applications(1024)
	ctx := context.Background()
	caller := &pkgauth.Identity{UID: "ada"}

	_, err := svc.CreateApplication(ctx, caller, &models.Application{Status: "Hired"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateApplication(ctx, caller, &models.Application{Status: models.StatusForwarded}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateApplicationStoresResumeAndCountsJob(t *testing.T) {
	f := newFixture(t)
	svc := f.applications(1024)
	ctx := context.Background()
	caller := &pkgauth.Identity{UID: "ada"}
	require.NoError(t, f.repos.Jobs.Create(ctx, &models.Job{ID: 7, Title: "Intern"}))

	data := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 resume"))
	app, err := svc.CreateApplication(ctx, caller, &models.Application{JobID: 7}, &models.ResumeUpload{FileName: "cv.pdf", Data: data})
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", app.ResumeFileName)
	assert.Equal(t, "/applications/1/resume", app.ResumeURL)

	job, err := f.repos.Jobs.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), job.ApplicationsCount)

	resume, err := svc.GetResume(ctx, caller, app.ID)
	require.NoError(t, err)
	content, err := os.ReadFile(resume.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 resume", string(content))

	require.NoError(t, svc.DeleteApplication(ctx, caller, app.ID))
	_, err = os.Stat(resume.Path)
	assert.True(t, os.IsNotExist(err))

	job, err = f.repos.Jobs.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), job.ApplicationsCount)
}

func TestCreateApplicationWithMissingJobIsAccepted(t *testing.T) {
	f := newFixture(t)
	svc := f.applications(1024)

	app, err := svc.CreateApplication(context.Background(), &pkgauth.Identity{UID: "ada"}, &models.Application{JobID: 404}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(404), app.JobID)
}

func TestCreateApplicationRejectsOversizedResume(t *testing.T) {
	f := newFixture(t)
	svc := f.applications(16)
	ctx := context.Background()

	data := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("a", 64)))
	_, err := svc.CreateApplication(ctx, &pkgauth.Identity{UID: "ada"}, &models.Application{}, &models.ResumeUpload{FileName: "cv.pdf", Data: data})
	assert.ErrorIs(t, err, apperrors.ErrPayloadTooLarge)

	_, err = svc.CreateApplication(ctx, &pkgauth.Identity{UID: "ada"}, &models.Application{}, &models.ResumeUpload{FileName: "cv.pdf", Data: "***"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	apps, err := f.repos.Applications.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestUpdateApplicationOwnership(t *testing.T) {
	f := newFixture(t)
	svc := f.applications(1024)
	ctx := context.Background()
	owner := &pkgauth.Identity{UID: "owner"}

	app, err := svc.CreateApplication(ctx, owner, &models.Application{JobTitle: "Intern"}, nil)
	require.NoError(t, err)

	offer := models.StatusOffer
	_, err = svc.UpdateApplication(ctx, &pkgauth.Identity{UID: "other"}, app.ID, models.ApplicationPatch{Status: &offer})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.UpdateApplication(ctx, owner, 999, models.ApplicationPatch{Status: &offer})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	unchanged, err := f.repos.Applications.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, unchanged.Status)
	assert.Equal(t, "owner", unchanged.UserID)

	updated, err := svc.UpdateApplication(ctx, owner, app.ID, models.ApplicationPatch{Status: &offer})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOffer, updated.Status)
	assert.Equal(t, "owner", updated.UserID)

	assert.ErrorIs(t, svc.DeleteApplication(ctx, &pkgauth.Identity{UID: "other"}, app.ID), apperrors.ErrPermissionDenied)
}

func TestListApplicationsByRole(t *testing.T) {
	f := newFixture(t)
	svc := f.applications(1024)
	ctx := context.Background()

	for _, uid := range []string{"a", "b", "a"} {
		_, err := svc.CreateApplication(ctx, &pkgauth.Identity{UID: uid}, &models.Application{}, nil)
		require.NoError(t, err)
	}

	mine, err := svc.ListApplications(ctx, &pkgauth.Identity{UID: "a"})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, int64(1), mine[0].ID)
	assert.Equal(t, int64(3), mine[1].ID)

	all, err := svc.ListApplications(ctx, f.careerOffice(t, "office"))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.ListApplications(ctx, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestUpdateApplicationStatusByCareerOffice(t *testing.T) {
	f := newFixture(t)
	svc := f.applications(1024)
	ctx := context.Background()
	owner := &pkgauth.Identity{UID: "owner"}

	app, err := svc.CreateApplication(ctx, owner, &models.Application{}, nil)
	require.NoError(t, err)

	_, err = svc.UpdateApplicationStatus(ctx, owner, app.ID, models.StatusForwarded)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	office := f.careerOffice(t, "office")
	updated, err := svc.UpdateApplicationStatus(ctx, office, app.ID, models.StatusForwarded)
	require.NoError(t, err)
	assert.Equal(t, models.StatusForwarded, updated.Status)

	_, err = svc.UpdateApplicationStatus(ctx, office, app.ID, "Hired")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.UpdateApplicationStatus(ctx, office, 999, models.StatusOfferExtended)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	viewed, err := svc.GetApplication(ctx, office, app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.ID, viewed.ID)
}

func TestCreateSessionSeedsProfileWithoutPrivilegedRole(t *testing.T) {
	f := newFixture(t)
	svc := f.sessions(SessionConfig{MaxAge: time.Hour})
	ctx := context.Background()

	idToken, err := f.provider.IssueIDToken("uid-1", "ada@school.edu", time.Hour)
	require.NoError(t, err)

	first, last := "Ada", "Lovelace"
	office := models.RoleCareerOffice
	cookie, err := svc.CreateSession(ctx, idToken, &models.ProfilePatch{FirstName: &first, LastName: &last, Role: &office})
	require.NoError(t, err)
	assert.NotEmpty(t, cookie)

	profile, err := f.repos.Profiles.Get(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, profile.Role)
	assert.Equal(t, "Ada Lovelace", profile.FullName)
	assert.Equal(t, "ada@school.edu", profile.Email)

	identity, err := f.provider.VerifySessionCookie(ctx, cookie)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", identity.UID)
}

func TestCreateSessionSeedRoleOnlyOnFirstSignIn(t *testing.T) {
	f := newFixture(t)
	svc := f.sessions(SessionConfig{MaxAge: time.Hour})
	ctx := context.Background()
	graduate, student := models.RoleGraduate, models.RoleStudent

	idToken, err := f.provider.IssueIDToken("uid-1", "ada@school.edu", time.Hour)
	require.NoError(t, err)
	_, err = svc.CreateSession(ctx, idToken, &models.ProfilePatch{Role: &graduate})
	require.NoError(t, err)
	_, err = svc.CreateSession(ctx, idToken, &models.ProfilePatch{Role: &student})
	require.NoError(t, err)

	profile, err := f.repos.Profiles.Get(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleGraduate, profile.Role)

	f.careerOffice(t, "uid-2")
	idToken, err = f.provider.IssueIDToken("uid-2", "office@school.edu", time.Hour)
	require.NoError(t, err)
	major := "Career Services"
	_, err = svc.CreateSession(ctx, idToken, &models.ProfilePatch{Role: &student, Major: &major})
	require.NoError(t, err)

	profile, err = f.repos.Profiles.Get(ctx, "uid-2")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCareerOffice, profile.Role)
	assert.Equal(t, "Career Services", profile.Major)
}

func TestCreateSessionRejectsBadToken(t *testing.T) {
	f := newFixture(t)
	svc := f.sessions(SessionConfig{MaxAge: time.Hour})

	_, err := svc.CreateSession(context.Background(), "garbage", nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestRegisterAdminGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hash, err := pkgauth.HashSecret("s3cret")
	require.NoError(t, err)
	svc := f.sessions(SessionConfig{MaxAge: time.Hour, Production: true, AdminSecretHash: hash})
	input := RegisterAdminInput{Email: "office@school.edu", Password: "password", FirstName: "Career", LastName: "Office"}

	_, err = svc.RegisterAdmin(ctx, input, "wrong")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	profile, err := svc.RegisterAdmin(ctx, input, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCareerOffice, profile.Role)
	assert.Equal(t, "Career Office", profile.FullName)
	assert.Equal(t, fixedNow, profile.CreatedAt)

	dev := f.sessions(SessionConfig{MaxAge: time.Hour})
	_, err = dev.RegisterAdmin(ctx, input, "")
	assert.NoError(t, err)
}

func TestProfileUpdateKeepsRoleAndEmail(t *testing.T) {
	f := newFixture(t)
	svc := NewProfileService(f.repos.Profiles, fixedClock, zerolog.Nop())
	ctx := context.Background()
	caller := f.careerOffice(t, "office")

	email := "evil@example.com"
	student := models.RoleStudent
	major := "CS"
	profile, err := svc.UpdateProfile(ctx, caller, models.ProfilePatch{Email: &email, Role: &student, Major: &major})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCareerOffice, profile.Role)
	assert.Empty(t, profile.Email)
	assert.Equal(t, "CS", profile.Major)

	missing, err := svc.GetProfile(ctx, &pkgauth.Identity{UID: "nobody"})
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.Nil(t, svc.CurrentUser(ctx, nil))
}
