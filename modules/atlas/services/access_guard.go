package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/core/domain/entities/grant"
)

// AccessGuard is the slice of the core authorization engine the atlas
// services need. Every read and write entrypoint calls it before touching
// storage; denial arrives as a structured error, never as a transaction
// abort.
type AccessGuard interface {
	RequireRole(ctx context.Context, cityID uuid.UUID, required grant.Role) error
}
