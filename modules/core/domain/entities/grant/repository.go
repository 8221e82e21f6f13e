package grant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var ErrGrantNotFound = fmt.Errorf("role grant not found")

type Repository interface {
	// GetForAccount is the privileged grant lookup every authorization
	// decision builds on. Implementations must answer it with a single
	// direct query that is never routed back through row predicates which
	// themselves depend on grants.
	GetForAccount(ctx context.Context, cityID, accountID uuid.UUID) (*RoleGrant, error)
	ListForCity(ctx context.Context, cityID uuid.UUID) ([]*RoleGrant, error)
	ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*RoleGrant, error)
	// Upsert inserts the grant or replaces the role of an existing one.
	Upsert(ctx context.Context, g *RoleGrant) (*RoleGrant, error)
	Delete(ctx context.Context, cityID, accountID uuid.UUID) error
}
