package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/app/repositories/memory"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
	pkgauth "github.com/yigit/careerportal/internal/pkg/auth"
)

func newService(t *testing.T) (*AuthorizationService, *memory.ProfileStore) {
	t.Helper()
	profiles := memory.NewProfileStore(time.Now)
	return NewAuthorizationService(profiles, zerolog.Nop()), profiles
}

func setRole(t *testing.T, profiles *memory.ProfileStore, uid string, role models.RoleType) {
	t.Helper()
	_, err := profiles.Upsert(context.Background(), uid, models.ProfilePatch{Role: &role}, time.Now())
	require.NoError(t, err)
}

func TestResolveRolePrecedence(t *testing.T) {
	svc, profiles := newService(t)
	ctx := context.Background()

	role, err := svc.ResolveRole(ctx, &pkgauth.Identity{UID: "nobody"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, role)

	role, err = svc.ResolveRole(ctx, &pkgauth.Identity{UID: "nobody", Role: "career_office"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCareerOffice, role)

	setRole(t, profiles, "grad", models.RoleGraduate)
	role, err = svc.ResolveRole(ctx, &pkgauth.Identity{UID: "grad", Role: "career_office"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleGraduate, role)

	_, err = svc.ResolveRole(ctx, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestRequireCareerOffice(t *testing.T) {
	svc, profiles := newService(t)
	ctx := context.Background()
	setRole(t, profiles, "office", models.RoleCareerOffice)

	assert.NoError(t, svc.RequireCareerOffice(ctx, &pkgauth.Identity{UID: "office"}))
	assert.ErrorIs(t, svc.RequireCareerOffice(ctx, &pkgauth.Identity{UID: "student"}), apperrors.ErrPermissionDenied)
}

func TestValidateApplicationOwnership(t *testing.T) {
	svc, _ := newService(t)
	owner := &pkgauth.Identity{UID: "owner"}
	app := &models.Application{ID: 5, UserID: "owner"}

	assert.NoError(t, svc.ValidateApplicationOwnership(app, owner))
	assert.ErrorIs(t, svc.ValidateApplicationOwnership(app, &pkgauth.Identity{UID: "other"}), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.ValidateApplicationOwnership(nil, owner), apperrors.ErrPermissionDenied)
}

func TestCanViewApplication(t *testing.T) {
	svc, profiles := newService(t)
	ctx := context.Background()
	setRole(t, profiles, "office", models.RoleCareerOffice)
	app := &models.Application{ID: 1, UserID: "owner"}

	assert.NoError(t, svc.CanViewApplication(ctx, app, &pkgauth.Identity{UID: "owner"}))
	assert.NoError(t, svc.CanViewApplication(ctx, app, &pkgauth.Identity{UID: "office"}))
	assert.ErrorIs(t, svc.CanViewApplication(ctx, app, &pkgauth.Identity{UID: "other"}), apperrors.ErrPermissionDenied)
}
