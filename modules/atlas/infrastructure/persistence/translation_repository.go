package persistence

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/atlas/domain/translation"
	"github.com/citylingua/citylingua/modules/atlas/infrastructure/persistence/models"
	"github.com/citylingua/citylingua/pkg/composables"
)

type TranslationRepository struct{}

func NewTranslationRepository() translation.Repository {
	return &TranslationRepository{}
}

func (r *TranslationRepository) ListFor(ctx context.Context, entityID uuid.UUID) (translation.Set, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(
		ctx,
		`SELECT entity_id, locale, name, description FROM entity_translations WHERE entity_id = $1`,
		entityID.String(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying translations")
	}
	defer rows.Close()

	set := make(translation.Set)
	for rows.Next() {
		var dbTranslation models.EntityTranslation
		if err := rows.Scan(
			&dbTranslation.EntityID,
			&dbTranslation.Locale,
			&dbTranslation.Name,
			&dbTranslation.Description,
		); err != nil {
			return nil, errors.Wrap(err, "scanning translation")
		}
		set[dbTranslation.Locale] = translation.Record{
			Locale:      dbTranslation.Locale,
			Name:        dbTranslation.Name,
			Description: dbTranslation.Description.String,
		}
	}
	return set, rows.Err()
}

// Replace deletes every record for the entity and reinserts the supplied set
// inside the caller's transaction. Statement order matters: the delete must
// land before the inserts so an omitted locale disappears and a kept locale
// does not collide with itself.
func (r *TranslationRepository) Replace(ctx context.Context, entityID uuid.UUID, set translation.Set) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(
		ctx,
		`DELETE FROM entity_translations WHERE entity_id = $1`,
		entityID.String(),
	); err != nil {
		return err
	}
	for _, locale := range set.Locales() {
		record := set[locale]
		var description sql.NullString
		if record.Description != "" {
			description = sql.NullString{String: record.Description, Valid: true}
		}
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO entity_translations (entity_id, locale, name, description) VALUES ($1, $2, $3, $4)`,
			entityID.String(),
			record.Locale,
			record.Name,
			description,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *TranslationRepository) DeleteFor(ctx context.Context, entityID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(
		ctx,
		`DELETE FROM entity_translations WHERE entity_id = $1`,
		entityID.String(),
	)
	return err
}
