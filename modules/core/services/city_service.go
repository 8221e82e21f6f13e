package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/core/domain/entities/account"
	"github.com/citylingua/citylingua/modules/core/domain/entities/city"
	"github.com/citylingua/citylingua/modules/core/domain/entities/grant"
	"github.com/citylingua/citylingua/pkg/composables"
	"github.com/citylingua/citylingua/pkg/eventbus"
	"github.com/citylingua/citylingua/pkg/repo"
	"github.com/citylingua/citylingua/pkg/serrors"
)

type CityCreatedEvent struct {
	Result *city.City
}

type CityArchivedEvent struct {
	Result *city.City
}

type CityService struct {
	cities    city.Repository
	accounts  account.Repository
	grants    grant.Repository
	tx        repo.Transactor
	access    *AccessService
	publisher eventbus.EventBus
}

func NewCityService(
	cities city.Repository,
	accounts account.Repository,
	grants grant.Repository,
	tx repo.Transactor,
	access *AccessService,
	publisher eventbus.EventBus,
) *CityService {
	return &CityService{
		cities:    cities,
		accounts:  accounts,
		grants:    grants,
		tx:        tx,
		access:    access,
		publisher: publisher,
	}
}

// Create provisions a new tenant. Platform operators only.
func (s *CityService) Create(ctx context.Context, slug, name string) (*city.City, error) {
	if err := s.access.RequireSuperuser(ctx); err != nil {
		return nil, err
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, serrors.Validation("SLUG_EMPTY", "slug must not be empty", "slug")
	}
	if strings.TrimSpace(name) == "" {
		return nil, serrors.Validation("NAME_EMPTY", "name must not be empty", "name")
	}

	var created *city.City
	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		c, err := s.cities.Create(txCtx, city.New(slug, name))
		if err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, mapPgError(err)
	}

	s.publisher.Publish(&CityCreatedEvent{Result: created})
	return created, nil
}

// Archive soft-archives the city. Cities are never physically deleted.
func (s *CityService) Archive(ctx context.Context, id uuid.UUID) (*city.City, error) {
	if err := s.access.RequireSuperuser(ctx); err != nil {
		return nil, err
	}

	var archived *city.City
	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		c, err := s.cities.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		archived, err = s.cities.Update(txCtx, c.Archive())
		return err
	})
	if err != nil {
		if errors.Is(err, city.ErrCityNotFound) {
			return nil, serrors.NotFound("CITY_NOT_FOUND", "city not found")
		}
		return nil, mapPgError(err)
	}

	s.publisher.Publish(&CityArchivedEvent{Result: archived})
	return archived, nil
}

func (s *CityService) GetByID(ctx context.Context, id uuid.UUID) (*city.City, error) {
	if err := s.access.RequireRole(ctx, id, grant.RoleOperator); err != nil {
		return nil, err
	}
	c, err := s.cities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, city.ErrCityNotFound) {
			return nil, serrors.NotFound("CITY_NOT_FOUND", "city not found")
		}
		return nil, mapPgError(err)
	}
	return c, nil
}

// ListVisible returns the cities the principal may work in: all of them for
// superusers, otherwise the ones a grant exists for.
func (s *CityService) ListVisible(ctx context.Context) ([]*city.City, error) {
	principalID, err := composables.UsePrincipalID(ctx)
	if err != nil {
		return nil, ErrAccessDenied
	}
	principal, err := s.accounts.GetByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, mapPgError(err)
	}
	if principal.IsSuperuser() {
		cities, err := s.cities.GetAll(ctx)
		if err != nil {
			return nil, mapPgError(err)
		}
		return cities, nil
	}

	grants, err := s.grants.ListForAccount(ctx, principalID)
	if err != nil {
		return nil, mapPgError(err)
	}
	cityIDs := make([]uuid.UUID, 0, len(grants))
	for _, g := range grants {
		cityIDs = append(cityIDs, g.CityID())
	}
	cities, err := s.cities.GetByIDs(ctx, cityIDs)
	if err != nil {
		return nil, mapPgError(err)
	}
	return cities, nil
}
