package grant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/citylingua/citylingua/modules/core/domain/entities/grant"
)

func TestRoleSatisfies(t *testing.T) {
	cases := []struct {
		name     string
		have     grant.Role
		required grant.Role
		want     bool
	}{
		{"operator satisfies operator", grant.RoleOperator, grant.RoleOperator, true},
		{"operator does not satisfy admin", grant.RoleOperator, grant.RoleAdmin, false},
		{"admin satisfies operator", grant.RoleAdmin, grant.RoleOperator, true},
		{"admin satisfies admin", grant.RoleAdmin, grant.RoleAdmin, true},
		{"unknown role satisfies nothing", grant.Role("viewer"), grant.RoleOperator, false},
		{"nothing satisfies unknown role", grant.RoleAdmin, grant.Role("viewer"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.have.Satisfies(tc.required))
		})
	}
}

// If a role satisfies admin it must satisfy operator as well; failing operator
// implies failing admin.
func TestRoleMonotonicity(t *testing.T) {
	for _, role := range []grant.Role{grant.RoleOperator, grant.RoleAdmin, grant.Role("bogus")} {
		if role.Satisfies(grant.RoleAdmin) {
			assert.True(t, role.Satisfies(grant.RoleOperator), "role %s", role)
		}
		if !role.Satisfies(grant.RoleOperator) {
			assert.False(t, role.Satisfies(grant.RoleAdmin), "role %s", role)
		}
	}
}

func TestSuperuserSatisfiesEverything(t *testing.T) {
	assert.True(t, grant.SuperuserSatisfies(grant.RoleOperator))
	assert.True(t, grant.SuperuserSatisfies(grant.RoleAdmin))
	assert.False(t, grant.SuperuserSatisfies(grant.Role("bogus")))
}

func TestNewRole(t *testing.T) {
	role, err := grant.NewRole("admin")
	assert.NoError(t, err)
	assert.Equal(t, grant.RoleAdmin, role)

	_, err = grant.NewRole("superuser")
	assert.Error(t, err, "superuser is a global attribute, not a grantable role")
}
