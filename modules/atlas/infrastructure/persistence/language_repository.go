package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/atlas/domain/language"
	"github.com/citylingua/citylingua/modules/atlas/infrastructure/persistence/models"
	"github.com/citylingua/citylingua/pkg/composables"
)

const languageFindQuery = `SELECT id, city_id, slug, native_name, status, display_order, created_at, updated_at FROM languages`

type LanguageRepository struct{}

func NewLanguageRepository() language.Repository {
	return &LanguageRepository{}
}

func (r *LanguageRepository) queryLanguages(ctx context.Context, query string, args ...any) ([]*language.Language, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying languages")
	}
	defer rows.Close()

	languages := make([]*language.Language, 0)
	for rows.Next() {
		var dbLanguage models.Language
		if err := rows.Scan(
			&dbLanguage.ID,
			&dbLanguage.CityID,
			&dbLanguage.Slug,
			&dbLanguage.NativeName,
			&dbLanguage.Status,
			&dbLanguage.DisplayOrder,
			&dbLanguage.CreatedAt,
			&dbLanguage.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scanning language")
		}
		domainLanguage, err := toDomainLanguage(&dbLanguage)
		if err != nil {
			return nil, err
		}
		languages = append(languages, domainLanguage)
	}
	return languages, rows.Err()
}

func (r *LanguageRepository) GetByID(ctx context.Context, cityID, id uuid.UUID) (*language.Language, error) {
	languages, err := r.queryLanguages(
		ctx,
		languageFindQuery+" WHERE city_id = $1 AND id = $2",
		cityID.String(),
		id.String(),
	)
	if err != nil {
		return nil, err
	}
	if len(languages) == 0 {
		return nil, language.ErrLanguageNotFound
	}
	return languages[0], nil
}

func (r *LanguageRepository) GetBySlug(ctx context.Context, cityID uuid.UUID, slug string) (*language.Language, error) {
	languages, err := r.queryLanguages(
		ctx,
		languageFindQuery+" WHERE city_id = $1 AND slug = $2",
		cityID.String(),
		slug,
	)
	if err != nil {
		return nil, err
	}
	if len(languages) == 0 {
		return nil, language.ErrLanguageNotFound
	}
	return languages[0], nil
}

func (r *LanguageRepository) List(ctx context.Context, cityID uuid.UUID, params *language.FindParams) ([]*language.Language, error) {
	query := languageFindQuery + " WHERE city_id = $1"
	args := []any{cityID.String()}
	if params != nil && params.Status != "" {
		args = append(args, string(params.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY display_order, slug"
	if params != nil && params.Limit > 0 {
		args = append(args, params.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if params != nil && params.Offset > 0 {
		args = append(args, params.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return r.queryLanguages(ctx, query, args...)
}

func (r *LanguageRepository) Create(ctx context.Context, l *language.Language) (*language.Language, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO languages (id, city_id, slug, native_name, status, display_order, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID().String(),
		l.CityID().String(),
		l.Slug(),
		l.NativeName(),
		string(l.Status()),
		l.DisplayOrder(),
		l.CreatedAt(),
		l.UpdatedAt(),
	); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, l.CityID(), l.ID())
}

func (r *LanguageRepository) Update(ctx context.Context, l *language.Language) (*language.Language, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		`UPDATE languages SET slug = $1, native_name = $2, status = $3, display_order = $4, updated_at = $5
		 WHERE city_id = $6 AND id = $7`,
		l.Slug(),
		l.NativeName(),
		string(l.Status()),
		l.DisplayOrder(),
		l.UpdatedAt(),
		l.CityID().String(),
		l.ID().String(),
	); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, l.CityID(), l.ID())
}

func (r *LanguageRepository) Delete(ctx context.Context, cityID, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(
		ctx,
		`DELETE FROM languages WHERE city_id = $1 AND id = $2`,
		cityID.String(),
		id.String(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return language.ErrLanguageNotFound
	}
	return nil
}
