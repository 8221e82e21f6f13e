package account

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/citylingua/citylingua/pkg/serrors"
)

// GlobalRole is the only role that is not tenant-scoped.
type GlobalRole string

const (
	GlobalRoleNone      GlobalRole = "none"
	GlobalRoleSuperuser GlobalRole = "superuser"
)

func NewGlobalRole(value string) (GlobalRole, error) {
	role := GlobalRole(value)
	switch role {
	case GlobalRoleNone, GlobalRoleSuperuser:
		return role, nil
	}
	return "", serrors.Validation("GLOBAL_ROLE_INVALID", "global role must be none or superuser", "global_role")
}

// Account is a global principal identity. Accounts are not tenant-owned;
// tenant membership is expressed through role grants.
type Account struct {
	id          uuid.UUID
	email       string
	displayName string
	globalRole  GlobalRole
	createdAt   time.Time
	updatedAt   time.Time
}

type Option func(*Account)

func WithID(id uuid.UUID) Option {
	return func(a *Account) {
		a.id = id
	}
}

func WithGlobalRole(role GlobalRole) Option {
	return func(a *Account) {
		a.globalRole = role
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(a *Account) {
		a.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(a *Account) {
		a.updatedAt = updatedAt
	}
}

func New(email, displayName string, opts ...Option) *Account {
	a := &Account{
		id:          uuid.New(),
		email:       strings.ToLower(strings.TrimSpace(email)),
		displayName: strings.TrimSpace(displayName),
		globalRole:  GlobalRoleNone,
		createdAt:   time.Now(),
		updatedAt:   time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Account) ID() uuid.UUID          { return a.id }
func (a *Account) Email() string          { return a.email }
func (a *Account) DisplayName() string    { return a.displayName }
func (a *Account) GlobalRole() GlobalRole { return a.globalRole }
func (a *Account) CreatedAt() time.Time   { return a.createdAt }
func (a *Account) UpdatedAt() time.Time   { return a.updatedAt }

func (a *Account) IsSuperuser() bool {
	return a.globalRole == GlobalRoleSuperuser
}

// SetGlobalRole returns a copy with the new global role.
func (a *Account) SetGlobalRole(role GlobalRole) *Account {
	clone := *a
	clone.globalRole = role
	clone.updatedAt = time.Now()
	return &clone
}
