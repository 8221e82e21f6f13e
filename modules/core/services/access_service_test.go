package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citylingua/citylingua/modules/core/domain/entities/grant"
	"github.com/citylingua/citylingua/modules/core/services"
	"github.com/citylingua/citylingua/pkg/itf"
	"github.com/citylingua/citylingua/pkg/serrors"
)

func setupAccess(t *testing.T) (*itf.TestEnvironment, *services.AccessService) {
	t.Helper()
	env := itf.NewTestContext().Build(t)
	svc := services.NewAccessService(env.Store.Accounts(), env.Store.Grants(), env.Tx, env.Bus)
	return env, svc
}

func TestCanActRoleOrdinals(t *testing.T) {
	env, svc := setupAccess(t)
	ctx := env.As(env.Superuser)

	cases := []struct {
		name      string
		principal string
		required  grant.Role
		want      bool
	}{
		{"operator acts as operator", "operator", grant.RoleOperator, true},
		{"operator cannot act as admin", "operator", grant.RoleAdmin, false},
		{"admin acts as operator", "admin", grant.RoleOperator, true},
		{"admin acts as admin", "admin", grant.RoleAdmin, true},
		{"stranger denied everywhere", "stranger", grant.RoleOperator, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			principalID := env.Operator.ID()
			switch tc.principal {
			case "admin":
				principalID = env.Admin.ID()
			case "stranger":
				principalID = env.Stranger.ID()
			}
			allowed, err := svc.CanAct(ctx, principalID, env.City.ID(), tc.required)
			require.NoError(t, err)
			assert.Equal(t, tc.want, allowed)
		})
	}
}

func TestCanActSuperuserEverywhere(t *testing.T) {
	env, svc := setupAccess(t)
	ctx := env.As(env.Superuser)

	for _, cityID := range []uuid.UUID{env.City.ID(), env.OtherCity.ID()} {
		allowed, err := svc.CanAct(ctx, env.Superuser.ID(), cityID, grant.RoleAdmin)
		require.NoError(t, err)
		assert.True(t, allowed, "superuser passes without any grant row")
	}
}

func TestCanActGrantsDoNotCrossCities(t *testing.T) {
	env, svc := setupAccess(t)
	ctx := env.As(env.Superuser)

	allowed, err := svc.CanAct(ctx, env.Admin.ID(), env.OtherCity.ID(), grant.RoleOperator)
	require.NoError(t, err)
	assert.False(t, allowed, "an admin of one city is a stranger in another")
}

func TestRequireRoleDenialIsStructured(t *testing.T) {
	env, svc := setupAccess(t)

	err := svc.RequireRole(env.As(env.Stranger), env.City.ID(), grant.RoleOperator)
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.KindDenied))

	err = svc.RequireRole(env.Anonymous(), env.City.ID(), grant.RoleOperator)
	assert.True(t, serrors.IsKind(err, serrors.KindDenied), "missing principal is a denial, not an infrastructure error")
}

func TestGrantRequiresAdmin(t *testing.T) {
	env, svc := setupAccess(t)

	_, err := svc.Grant(env.As(env.Operator), env.City.ID(), env.Stranger.ID(), grant.RoleOperator)
	assert.True(t, serrors.IsKind(err, serrors.KindDenied))

	g, err := svc.Grant(env.As(env.Admin), env.City.ID(), env.Stranger.ID(), grant.RoleOperator)
	require.NoError(t, err)
	assert.Equal(t, grant.RoleOperator, g.Role())
}

func TestGrantReplacesExistingRole(t *testing.T) {
	env, svc := setupAccess(t)
	ctx := env.As(env.Superuser)

	_, err := svc.Grant(ctx, env.City.ID(), env.Stranger.ID(), grant.RoleOperator)
	require.NoError(t, err)
	g, err := svc.Grant(ctx, env.City.ID(), env.Stranger.ID(), grant.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, grant.RoleAdmin, g.Role())

	grants, err := svc.ListGrants(ctx, env.City.ID())
	require.NoError(t, err)
	for _, existing := range grants {
		if existing.AccountID() == env.Stranger.ID() {
			assert.Equal(t, grant.RoleAdmin, existing.Role(), "one grant per pair, role replaced")
		}
	}
}

func TestGrantRejectsInvalidRole(t *testing.T) {
	env, svc := setupAccess(t)

	_, err := svc.Grant(env.As(env.Superuser), env.City.ID(), env.Stranger.ID(), grant.Role("superuser"))
	assert.True(t, serrors.IsKind(err, serrors.KindValidation), "superuser is not a grantable role")
}

func TestRevokeIsIdempotent(t *testing.T) {
	env, svc := setupAccess(t)
	ctx := env.As(env.Admin)

	require.NoError(t, svc.Revoke(ctx, env.City.ID(), env.Stranger.ID()))
	require.NoError(t, svc.Revoke(ctx, env.City.ID(), env.Stranger.ID()))
}

func TestRoleInSuperuserReportsAdmin(t *testing.T) {
	env, svc := setupAccess(t)

	role, err := svc.RoleIn(env.As(env.Superuser), env.City.ID())
	require.NoError(t, err)
	assert.Equal(t, grant.RoleAdmin, role)

	role, err = svc.RoleIn(env.As(env.Operator), env.City.ID())
	require.NoError(t, err)
	assert.Equal(t, grant.RoleOperator, role)
}
