package grant

import (
	"time"

	"github.com/google/uuid"
)

// RoleGrant assigns a role to an account within one city. At most one grant
// exists per (city, account) pair; granting again replaces the role.
type RoleGrant struct {
	cityID    uuid.UUID
	accountID uuid.UUID
	role      Role
	createdAt time.Time
}

type Option func(*RoleGrant)

func WithCreatedAt(createdAt time.Time) Option {
	return func(g *RoleGrant) {
		g.createdAt = createdAt
	}
}

func New(cityID, accountID uuid.UUID, role Role, opts ...Option) *RoleGrant {
	g := &RoleGrant{
		cityID:    cityID,
		accountID: accountID,
		role:      role,
		createdAt: time.Now(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *RoleGrant) CityID() uuid.UUID    { return g.cityID }
func (g *RoleGrant) AccountID() uuid.UUID { return g.accountID }
func (g *RoleGrant) Role() Role           { return g.role }
func (g *RoleGrant) CreatedAt() time.Time { return g.createdAt }
