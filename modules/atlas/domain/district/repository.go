package district

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var ErrDistrictNotFound = fmt.Errorf("district not found")

type Repository interface {
	GetByID(ctx context.Context, cityID, id uuid.UUID) (*District, error)
	GetBySlug(ctx context.Context, cityID uuid.UUID, slug string) (*District, error)
	List(ctx context.Context, cityID uuid.UUID) ([]*District, error)
	Create(ctx context.Context, d *District) (*District, error)
	Update(ctx context.Context, d *District) (*District, error)
	Delete(ctx context.Context, cityID, id uuid.UUID) error
	// CountByPrimaryLanguage reports how many districts reference the given
	// language; used to size referential-block errors.
	CountByPrimaryLanguage(ctx context.Context, cityID, languageID uuid.UUID) (int, error)
}
