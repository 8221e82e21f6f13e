package grant

import (
	"github.com/citylingua/citylingua/pkg/serrors"
)

// Role is a tenant-scoped role. The hierarchy is fixed and small, so role
// comparison is an ordinal lookup rather than an inheritance chain.
type Role string

const (
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

// ordinal positions; superuser sits above every grantable role but is a
// global account attribute, never stored in a grant row.
var ordinals = map[Role]int{
	RoleOperator: 1,
	RoleAdmin:    2,
}

const superuserOrdinal = 3

func NewRole(value string) (Role, error) {
	role := Role(value)
	if !role.IsValid() {
		return "", serrors.Validation("ROLE_INVALID", "role must be operator or admin", "role")
	}
	return role, nil
}

func (r Role) IsValid() bool {
	_, ok := ordinals[r]
	return ok
}

// Satisfies reports whether a holder of r meets the given requirement.
// Unknown roles never satisfy anything.
func (r Role) Satisfies(required Role) bool {
	have, ok := ordinals[r]
	if !ok {
		return false
	}
	want, ok := ordinals[required]
	if !ok {
		return false
	}
	return have >= want
}

// SuperuserSatisfies reports whether the global superuser role meets the
// requirement. It always does for valid roles; kept explicit so the ordinal
// table stays the single source of truth.
func SuperuserSatisfies(required Role) bool {
	want, ok := ordinals[required]
	if !ok {
		return false
	}
	return superuserOrdinal >= want
}
