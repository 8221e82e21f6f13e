package language

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var ErrLanguageNotFound = fmt.Errorf("language not found")

type FindParams struct {
	Status Status
	Limit  int
	Offset int
}

// Repository methods take the city explicitly: every query must carry the
// tenant filter derived from the caller's resolved scope.
type Repository interface {
	GetByID(ctx context.Context, cityID, id uuid.UUID) (*Language, error)
	GetBySlug(ctx context.Context, cityID uuid.UUID, slug string) (*Language, error)
	List(ctx context.Context, cityID uuid.UUID, params *FindParams) ([]*Language, error)
	Create(ctx context.Context, l *Language) (*Language, error)
	Update(ctx context.Context, l *Language) (*Language, error)
	Delete(ctx context.Context, cityID, id uuid.UUID) error
}
