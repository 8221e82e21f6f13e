package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citylingua/citylingua/modules/core/services"
	"github.com/citylingua/citylingua/pkg/itf"
	"github.com/citylingua/citylingua/pkg/serrors"
)

func setupCities(t *testing.T) (*itf.TestEnvironment, *services.CityService) {
	t.Helper()
	env := itf.NewTestContext().Build(t)
	access := services.NewAccessService(env.Store.Accounts(), env.Store.Grants(), env.Tx, env.Bus)
	svc := services.NewCityService(env.Store.Cities(), env.Store.Accounts(), env.Store.Grants(), env.Tx, access, env.Bus)
	return env, svc
}

func TestCityCreateRequiresSuperuser(t *testing.T) {
	env, svc := setupCities(t)

	_, err := svc.Create(env.As(env.Admin), "rotterdam", "Rotterdam")
	assert.True(t, serrors.IsKind(err, serrors.KindDenied), "tenant admins cannot provision tenants")

	c, err := svc.Create(env.As(env.Superuser), "rotterdam", "Rotterdam")
	require.NoError(t, err)
	assert.Equal(t, "rotterdam", c.Slug())
}

func TestCityCreateSlugConflict(t *testing.T) {
	env, svc := setupCities(t)
	ctx := env.As(env.Superuser)

	_, err := svc.Create(ctx, env.City.Slug(), "Duplicate")
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.KindConflict))
}

func TestCityArchiveIsIdempotent(t *testing.T) {
	env, svc := setupCities(t)
	ctx := env.As(env.Superuser)

	first, err := svc.Archive(ctx, env.City.ID())
	require.NoError(t, err)
	require.True(t, first.IsArchived())

	second, err := svc.Archive(ctx, env.City.ID())
	require.NoError(t, err)
	assert.Equal(t, first.ArchivedAt(), second.ArchivedAt(), "re-archiving keeps the original timestamp")
}

func TestCityListVisibleScopedByGrants(t *testing.T) {
	env, svc := setupCities(t)

	visible, err := svc.ListVisible(env.As(env.Superuser))
	require.NoError(t, err)
	assert.Len(t, visible, 2, "superusers see every city")

	visible, err = svc.ListVisible(env.As(env.Operator))
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, env.City.ID(), visible[0].ID())

	visible, err = svc.ListVisible(env.As(env.Stranger))
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestCityGetByIDRequiresMembership(t *testing.T) {
	env, svc := setupCities(t)

	_, err := svc.GetByID(env.As(env.Operator), env.OtherCity.ID())
	assert.True(t, serrors.IsKind(err, serrors.KindDenied))

	c, err := svc.GetByID(env.As(env.Operator), env.City.ID())
	require.NoError(t, err)
	assert.Equal(t, env.City.ID(), c.ID())
}
