package persistence

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/atlas/domain/classification"
	"github.com/citylingua/citylingua/modules/atlas/infrastructure/persistence/models"
	"github.com/citylingua/citylingua/pkg/composables"
)

const (
	classificationTypeFindQuery = `SELECT id, city_id, slug, required, allow_multiple, used_for_filtering, used_for_rendering_style, display_order, created_at, updated_at FROM classification_types`
	// Values are scoped to the tenant through their owning type.
	classificationValueFindQuery = `
		SELECT v.id, v.type_id, v.slug, v.color, v.icon_reference, v.icon_scale, v.display_order, v.created_at, v.updated_at
		FROM classification_values v
		JOIN classification_types t ON t.id = v.type_id`
	assignmentFindQuery = `SELECT city_id, entity_id, value_id, assigned_at FROM classification_assignments`
)

type ClassificationRepository struct{}

func NewClassificationRepository() classification.Repository {
	return &ClassificationRepository{}
}

func (r *ClassificationRepository) queryTypes(ctx context.Context, query string, args ...any) ([]*classification.Type, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying classification types")
	}
	defer rows.Close()

	types := make([]*classification.Type, 0)
	for rows.Next() {
		var dbType models.ClassificationType
		if err := rows.Scan(
			&dbType.ID,
			&dbType.CityID,
			&dbType.Slug,
			&dbType.Required,
			&dbType.AllowMultiple,
			&dbType.UsedForFiltering,
			&dbType.UsedForRenderingStyle,
			&dbType.DisplayOrder,
			&dbType.CreatedAt,
			&dbType.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scanning classification type")
		}
		domainType, err := toDomainClassificationType(&dbType)
		if err != nil {
			return nil, err
		}
		types = append(types, domainType)
	}
	return types, rows.Err()
}

func (r *ClassificationRepository) GetTypeByID(ctx context.Context, cityID, id uuid.UUID) (*classification.Type, error) {
	types, err := r.queryTypes(
		ctx,
		classificationTypeFindQuery+" WHERE city_id = $1 AND id = $2",
		cityID.String(),
		id.String(),
	)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, classification.ErrTypeNotFound
	}
	return types[0], nil
}

func (r *ClassificationRepository) GetTypeBySlug(ctx context.Context, cityID uuid.UUID, slug string) (*classification.Type, error) {
	types, err := r.queryTypes(
		ctx,
		classificationTypeFindQuery+" WHERE city_id = $1 AND slug = $2",
		cityID.String(),
		slug,
	)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, classification.ErrTypeNotFound
	}
	return types[0], nil
}

func (r *ClassificationRepository) ListTypes(ctx context.Context, cityID uuid.UUID) ([]*classification.Type, error) {
	return r.queryTypes(
		ctx,
		classificationTypeFindQuery+" WHERE city_id = $1 ORDER BY display_order, slug",
		cityID.String(),
	)
}

func (r *ClassificationRepository) CreateType(ctx context.Context, t *classification.Type) (*classification.Type, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO classification_types (id, city_id, slug, required, allow_multiple, used_for_filtering, used_for_rendering_style, display_order, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID().String(),
		t.CityID().String(),
		t.Slug(),
		t.Required(),
		t.AllowMultiple(),
		t.UsedForFiltering(),
		t.UsedForRenderingStyle(),
		t.DisplayOrder(),
		t.CreatedAt(),
		t.UpdatedAt(),
	); err != nil {
		return nil, err
	}
	return r.GetTypeByID(ctx, t.CityID(), t.ID())
}

func (r *ClassificationRepository) UpdateType(ctx context.Context, t *classification.Type) (*classification.Type, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		`UPDATE classification_types
		 SET slug = $1, required = $2, allow_multiple = $3, used_for_filtering = $4, used_for_rendering_style = $5, display_order = $6, updated_at = $7
		 WHERE city_id = $8 AND id = $9`,
		t.Slug(),
		t.Required(),
		t.AllowMultiple(),
		t.UsedForFiltering(),
		t.UsedForRenderingStyle(),
		t.DisplayOrder(),
		t.UpdatedAt(),
		t.CityID().String(),
		t.ID().String(),
	); err != nil {
		return nil, err
	}
	return r.GetTypeByID(ctx, t.CityID(), t.ID())
}

func (r *ClassificationRepository) DeleteType(ctx context.Context, cityID, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(
		ctx,
		`DELETE FROM classification_types WHERE city_id = $1 AND id = $2`,
		cityID.String(),
		id.String(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return classification.ErrTypeNotFound
	}
	return nil
}

func (r *ClassificationRepository) queryValues(ctx context.Context, query string, args ...any) ([]*classification.Value, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying classification values")
	}
	defer rows.Close()

	values := make([]*classification.Value, 0)
	for rows.Next() {
		var dbValue models.ClassificationValue
		if err := rows.Scan(
			&dbValue.ID,
			&dbValue.TypeID,
			&dbValue.Slug,
			&dbValue.Color,
			&dbValue.IconReference,
			&dbValue.IconScale,
			&dbValue.DisplayOrder,
			&dbValue.CreatedAt,
			&dbValue.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scanning classification value")
		}
		domainValue, err := toDomainClassificationValue(&dbValue)
		if err != nil {
			return nil, err
		}
		values = append(values, domainValue)
	}
	return values, rows.Err()
}

func (r *ClassificationRepository) GetValueByID(ctx context.Context, cityID, id uuid.UUID) (*classification.Value, error) {
	values, err := r.queryValues(
		ctx,
		classificationValueFindQuery+" WHERE t.city_id = $1 AND v.id = $2",
		cityID.String(),
		id.String(),
	)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, classification.ErrValueNotFound
	}
	return values[0], nil
}

func (r *ClassificationRepository) ListValues(ctx context.Context, cityID, typeID uuid.UUID) ([]*classification.Value, error) {
	return r.queryValues(
		ctx,
		classificationValueFindQuery+" WHERE t.city_id = $1 AND v.type_id = $2 ORDER BY v.display_order, v.slug",
		cityID.String(),
		typeID.String(),
	)
}

func (r *ClassificationRepository) CreateValue(ctx context.Context, cityID uuid.UUID, v *classification.Value) (*classification.Value, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO classification_values (id, type_id, slug, color, icon_reference, icon_scale, display_order, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		v.ID().String(),
		v.TypeID().String(),
		v.Slug(),
		v.Color(),
		iconReferenceValue(v),
		v.IconScale(),
		v.DisplayOrder(),
		v.CreatedAt(),
		v.UpdatedAt(),
	); err != nil {
		return nil, err
	}
	return r.GetValueByID(ctx, cityID, v.ID())
}

func (r *ClassificationRepository) UpdateValue(ctx context.Context, cityID uuid.UUID, v *classification.Value) (*classification.Value, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		`UPDATE classification_values SET slug = $1, color = $2, icon_reference = $3, icon_scale = $4, display_order = $5, updated_at = $6
		 WHERE id = $7`,
		v.Slug(),
		v.Color(),
		iconReferenceValue(v),
		v.IconScale(),
		v.DisplayOrder(),
		v.UpdatedAt(),
		v.ID().String(),
	); err != nil {
		return nil, err
	}
	return r.GetValueByID(ctx, cityID, v.ID())
}

func (r *ClassificationRepository) DeleteValue(ctx context.Context, cityID, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(
		ctx,
		`DELETE FROM classification_values v
		 USING classification_types t
		 WHERE v.type_id = t.id AND t.city_id = $1 AND v.id = $2`,
		cityID.String(),
		id.String(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return classification.ErrValueNotFound
	}
	return nil
}

func (r *ClassificationRepository) ListAssignments(ctx context.Context, cityID, entityID uuid.UUID) ([]*classification.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(
		ctx,
		assignmentFindQuery+" WHERE city_id = $1 AND entity_id = $2 ORDER BY assigned_at",
		cityID.String(),
		entityID.String(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying classification assignments")
	}
	defer rows.Close()

	assignments := make([]*classification.Assignment, 0)
	for rows.Next() {
		var dbAssignment models.ClassificationAssignment
		if err := rows.Scan(
			&dbAssignment.CityID,
			&dbAssignment.EntityID,
			&dbAssignment.ValueID,
			&dbAssignment.AssignedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scanning classification assignment")
		}
		domainAssignment, err := toDomainAssignment(&dbAssignment)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, domainAssignment)
	}
	return assignments, rows.Err()
}

func (r *ClassificationRepository) ListAssignedTypeIDs(ctx context.Context, cityID, entityID uuid.UUID) ([]uuid.UUID, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(
		ctx,
		`SELECT DISTINCT v.type_id
		 FROM classification_assignments a
		 JOIN classification_values v ON v.id = a.value_id
		 WHERE a.city_id = $1 AND a.entity_id = $2`,
		cityID.String(),
		entityID.String(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying assigned type ids")
	}
	defer rows.Close()

	typeIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrap(err, "scanning assigned type id")
		}
		typeID, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.Wrap(err, "parsing assigned type id")
		}
		typeIDs = append(typeIDs, typeID)
	}
	return typeIDs, rows.Err()
}

func (r *ClassificationRepository) CreateAssignment(ctx context.Context, cityID uuid.UUID, a *classification.Assignment) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(
		ctx,
		`INSERT INTO classification_assignments (city_id, entity_id, value_id, assigned_at) VALUES ($1, $2, $3, $4)`,
		cityID.String(),
		a.EntityID().String(),
		a.ValueID().String(),
		a.AssignedAt(),
	)
	return err
}

func (r *ClassificationRepository) DeleteAssignment(ctx context.Context, cityID, entityID, valueID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(
		ctx,
		`DELETE FROM classification_assignments WHERE city_id = $1 AND entity_id = $2 AND value_id = $3`,
		cityID.String(),
		entityID.String(),
		valueID.String(),
	)
	return err
}

func (r *ClassificationRepository) DeleteAssignmentsOfType(ctx context.Context, cityID, entityID, typeID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(
		ctx,
		`DELETE FROM classification_assignments a
		 USING classification_values v
		 WHERE a.value_id = v.id AND a.city_id = $1 AND a.entity_id = $2 AND v.type_id = $3`,
		cityID.String(),
		entityID.String(),
		typeID.String(),
	)
	return err
}

func (r *ClassificationRepository) DeleteAssignmentsForEntity(ctx context.Context, cityID, entityID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(
		ctx,
		`DELETE FROM classification_assignments WHERE city_id = $1 AND entity_id = $2`,
		cityID.String(),
		entityID.String(),
	)
	return err
}

func (r *ClassificationRepository) CountAssignmentsForValue(ctx context.Context, valueID uuid.UUID) (int, error) {
	return r.countRows(ctx, `SELECT COUNT(*) FROM classification_assignments WHERE value_id = $1`, valueID.String())
}

func (r *ClassificationRepository) CountAssignmentsForType(ctx context.Context, typeID uuid.UUID) (int, error) {
	return r.countRows(
		ctx,
		`SELECT COUNT(*) FROM classification_assignments a JOIN classification_values v ON v.id = a.value_id WHERE v.type_id = $1`,
		typeID.String(),
	)
}

func (r *ClassificationRepository) CountValuesForType(ctx context.Context, typeID uuid.UUID) (int, error) {
	return r.countRows(ctx, `SELECT COUNT(*) FROM classification_values WHERE type_id = $1`, typeID.String())
}

func (r *ClassificationRepository) countRows(ctx context.Context, query string, args ...any) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "counting rows")
	}
	return count, nil
}

func iconReferenceValue(v *classification.Value) sql.NullString {
	if v.IconReference() == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v.IconReference(), Valid: true}
}
