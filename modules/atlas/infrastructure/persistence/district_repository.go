package persistence

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/atlas/domain/district"
	"github.com/citylingua/citylingua/modules/atlas/infrastructure/persistence/models"
	"github.com/citylingua/citylingua/pkg/composables"
)

const districtFindQuery = `SELECT id, city_id, slug, primary_language_id, display_order, created_at, updated_at FROM districts`

type DistrictRepository struct{}

func NewDistrictRepository() district.Repository {
	return &DistrictRepository{}
}

func (r *DistrictRepository) queryDistricts(ctx context.Context, query string, args ...any) ([]*district.District, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying districts")
	}
	defer rows.Close()

	districts := make([]*district.District, 0)
	for rows.Next() {
		var dbDistrict models.District
		if err := rows.Scan(
			&dbDistrict.ID,
			&dbDistrict.CityID,
			&dbDistrict.Slug,
			&dbDistrict.PrimaryLanguageID,
			&dbDistrict.DisplayOrder,
			&dbDistrict.CreatedAt,
			&dbDistrict.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scanning district")
		}
		domainDistrict, err := toDomainDistrict(&dbDistrict)
		if err != nil {
			return nil, err
		}
		districts = append(districts, domainDistrict)
	}
	return districts, rows.Err()
}

func (r *DistrictRepository) GetByID(ctx context.Context, cityID, id uuid.UUID) (*district.District, error) {
	districts, err := r.queryDistricts(
		ctx,
		districtFindQuery+" WHERE city_id = $1 AND id = $2",
		cityID.String(),
		id.String(),
	)
	if err != nil {
		return nil, err
	}
	if len(districts) == 0 {
		return nil, district.ErrDistrictNotFound
	}
	return districts[0], nil
}

func (r *DistrictRepository) GetBySlug(ctx context.Context, cityID uuid.UUID, slug string) (*district.District, error) {
	districts, err := r.queryDistricts(
		ctx,
		districtFindQuery+" WHERE city_id = $1 AND slug = $2",
		cityID.String(),
		slug,
	)
	if err != nil {
		return nil, err
	}
	if len(districts) == 0 {
		return nil, district.ErrDistrictNotFound
	}
	return districts[0], nil
}

func (r *DistrictRepository) List(ctx context.Context, cityID uuid.UUID) ([]*district.District, error) {
	return r.queryDistricts(
		ctx,
		districtFindQuery+" WHERE city_id = $1 ORDER BY display_order, slug",
		cityID.String(),
	)
}

func (r *DistrictRepository) Create(ctx context.Context, d *district.District) (*district.District, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO districts (id, city_id, slug, primary_language_id, display_order, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID().String(),
		d.CityID().String(),
		d.Slug(),
		primaryLanguageValue(d),
		d.DisplayOrder(),
		d.CreatedAt(),
		d.UpdatedAt(),
	); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, d.CityID(), d.ID())
}

func (r *DistrictRepository) Update(ctx context.Context, d *district.District) (*district.District, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		`UPDATE districts SET slug = $1, primary_language_id = $2, display_order = $3, updated_at = $4
		 WHERE city_id = $5 AND id = $6`,
		d.Slug(),
		primaryLanguageValue(d),
		d.DisplayOrder(),
		d.UpdatedAt(),
		d.CityID().String(),
		d.ID().String(),
	); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, d.CityID(), d.ID())
}

func (r *DistrictRepository) Delete(ctx context.Context, cityID, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(
		ctx,
		`DELETE FROM districts WHERE city_id = $1 AND id = $2`,
		cityID.String(),
		id.String(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return district.ErrDistrictNotFound
	}
	return nil
}

func (r *DistrictRepository) CountByPrimaryLanguage(ctx context.Context, cityID, languageID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int
	if err := tx.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM districts WHERE city_id = $1 AND primary_language_id = $2`,
		cityID.String(),
		languageID.String(),
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "counting districts by primary language")
	}
	return count, nil
}

func primaryLanguageValue(d *district.District) sql.NullString {
	if d.PrimaryLanguageID() == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.PrimaryLanguageID().String(), Valid: true}
}
