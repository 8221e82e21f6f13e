package city

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var ErrCityNotFound = fmt.Errorf("city not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*City, error)
	GetBySlug(ctx context.Context, slug string) (*City, error)
	GetAll(ctx context.Context) ([]*City, error)
	// GetByIDs returns the cities matching ids, skipping unknown ones.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*City, error)
	Create(ctx context.Context, c *City) (*City, error)
	Update(ctx context.Context, c *City) (*City, error)
}
