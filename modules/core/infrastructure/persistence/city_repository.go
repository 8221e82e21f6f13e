package persistence

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/core/domain/entities/city"
	"github.com/citylingua/citylingua/modules/core/infrastructure/persistence/models"
	"github.com/citylingua/citylingua/pkg/composables"
)

const cityFindQuery = `SELECT id, slug, name, archived_at, created_at, updated_at FROM cities`

type CityRepository struct{}

func NewCityRepository() city.Repository {
	return &CityRepository{}
}

func (r *CityRepository) queryCities(ctx context.Context, query string, args ...any) ([]*city.City, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying cities")
	}
	defer rows.Close()

	cities := make([]*city.City, 0)
	for rows.Next() {
		var dbCity models.City
		if err := rows.Scan(
			&dbCity.ID,
			&dbCity.Slug,
			&dbCity.Name,
			&dbCity.ArchivedAt,
			&dbCity.CreatedAt,
			&dbCity.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scanning city")
		}
		domainCity, err := toDomainCity(&dbCity)
		if err != nil {
			return nil, err
		}
		cities = append(cities, domainCity)
	}
	return cities, rows.Err()
}

func (r *CityRepository) GetByID(ctx context.Context, id uuid.UUID) (*city.City, error) {
	cities, err := r.queryCities(ctx, cityFindQuery+" WHERE id = $1", id.String())
	if err != nil {
		return nil, err
	}
	if len(cities) == 0 {
		return nil, city.ErrCityNotFound
	}
	return cities[0], nil
}

func (r *CityRepository) GetBySlug(ctx context.Context, slug string) (*city.City, error) {
	cities, err := r.queryCities(ctx, cityFindQuery+" WHERE slug = $1", slug)
	if err != nil {
		return nil, err
	}
	if len(cities) == 0 {
		return nil, city.ErrCityNotFound
	}
	return cities[0], nil
}

func (r *CityRepository) GetAll(ctx context.Context) ([]*city.City, error) {
	return r.queryCities(ctx, cityFindQuery+" ORDER BY slug")
}

func (r *CityRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*city.City, error) {
	if len(ids) == 0 {
		return []*city.City{}, nil
	}
	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}
	return r.queryCities(ctx, cityFindQuery+" WHERE id = ANY($1) ORDER BY slug", idStrings)
}

func (r *CityRepository) Create(ctx context.Context, c *city.City) (*city.City, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO cities (id, slug, name, archived_at, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID().String(),
		c.Slug(),
		c.Name(),
		archivedAtValue(c),
		c.CreatedAt(),
		c.UpdatedAt(),
	); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, c.ID())
}

func (r *CityRepository) Update(ctx context.Context, c *city.City) (*city.City, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		`UPDATE cities SET slug = $1, name = $2, archived_at = $3, updated_at = $4 WHERE id = $5`,
		c.Slug(),
		c.Name(),
		archivedAtValue(c),
		c.UpdatedAt(),
		c.ID().String(),
	); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, c.ID())
}

func archivedAtValue(c *city.City) sql.NullTime {
	if c.ArchivedAt() == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *c.ArchivedAt(), Valid: true}
}
