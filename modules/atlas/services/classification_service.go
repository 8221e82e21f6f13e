package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/atlas/domain/classification"
	"github.com/citylingua/citylingua/modules/core/domain/entities/grant"
	"github.com/citylingua/citylingua/pkg/eventbus"
	"github.com/citylingua/citylingua/pkg/repo"
	"github.com/citylingua/citylingua/pkg/serrors"
)

type ClassificationTypeCreatedEvent struct {
	Result *classification.Type
}

type ClassificationTypeUpdatedEvent struct {
	Result *classification.Type
}

type ClassificationTypeDeletedEvent struct {
	CityID uuid.UUID
	ID     uuid.UUID
}

type ClassificationValueCreatedEvent struct {
	Result *classification.Value
}

type ClassificationValueUpdatedEvent struct {
	Result *classification.Value
}

type ClassificationValueDeletedEvent struct {
	CityID uuid.UUID
	ID     uuid.UUID
}

type EntityClassifiedEvent struct {
	CityID   uuid.UUID
	EntityID uuid.UUID
	ValueID  uuid.UUID
}

type EntityUnclassifiedEvent struct {
	CityID   uuid.UUID
	EntityID uuid.UUID
	ValueID  uuid.UUID
}

type TypeWrite struct {
	Slug                  string
	Required              bool
	AllowMultiple         bool
	UsedForFiltering      bool
	UsedForRenderingStyle bool
	DisplayOrder          int
}

type ValueWrite struct {
	Slug          string
	Color         string
	IconReference string
	IconScale     float64
	DisplayOrder  int
}

// ClassificationService owns the taxonomy: the axes a city classifies its
// content by, the values on each axis, and the entity-to-value assignments.
// Schema changes (types, values) are admin operations; assignments are
// regular content edits open to operators.
type ClassificationService struct {
	repo      classification.Repository
	tx        repo.Transactor
	access    AccessGuard
	publisher eventbus.EventBus
}

func NewClassificationService(
	repository classification.Repository,
	tx repo.Transactor,
	access AccessGuard,
	publisher eventbus.EventBus,
) *ClassificationService {
	return &ClassificationService{
		repo:      repository,
		tx:        tx,
		access:    access,
		publisher: publisher,
	}
}

func (s *ClassificationService) DefineType(ctx context.Context, cityID uuid.UUID, data TypeWrite) (*classification.Type, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleAdmin); err != nil {
		return nil, err
	}
	data.Slug = strings.ToLower(strings.TrimSpace(data.Slug))
	if data.Slug == "" {
		return nil, serrors.Validation("SLUG_EMPTY", "slug must not be empty", "slug")
	}

	var created *classification.Type
	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.CreateType(txCtx, classification.NewType(
			cityID,
			data.Slug,
			classification.TypeWithRequired(data.Required),
			classification.TypeWithAllowMultiple(data.AllowMultiple),
			classification.TypeWithUsedForFiltering(data.UsedForFiltering),
			classification.TypeWithUsedForRenderingStyle(data.UsedForRenderingStyle),
			classification.TypeWithDisplayOrder(data.DisplayOrder),
		))
		return err
	})
	if err != nil {
		return nil, mapPgError(err)
	}

	s.publisher.Publish(&ClassificationTypeCreatedEvent{Result: created})
	return created, nil
}

// UpdateType changes the flags of an existing axis. Removing the required
// flag grandfathers already-published entities; narrowing allow_multiple
// leaves existing assignments untouched and applies only to future Assign
// calls.
func (s *ClassificationService) UpdateType(ctx context.Context, cityID, id uuid.UUID, data TypeWrite) (*classification.Type, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleAdmin); err != nil {
		return nil, err
	}

	var updated *classification.Type
	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		t, err := s.repo.GetTypeByID(txCtx, cityID, id)
		if err != nil {
			return err
		}
		t = t.SetFlags(data.Required, data.AllowMultiple, data.UsedForFiltering, data.UsedForRenderingStyle).
			SetDisplayOrder(data.DisplayOrder)
		updated, err = s.repo.UpdateType(txCtx, t)
		return err
	})
	if err != nil {
		if errors.Is(err, classification.ErrTypeNotFound) {
			return nil, serrors.NotFound("TYPE_NOT_FOUND", "classification type not found")
		}
		return nil, mapPgError(err)
	}

	s.publisher.Publish(&ClassificationTypeUpdatedEvent{Result: updated})
	return updated, nil
}

// DeleteType refuses while values or assignments still depend on the type;
// the error reports how many dependents stand in the way.
func (s *ClassificationService) DeleteType(ctx context.Context, cityID, id uuid.UUID) error {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleAdmin); err != nil {
		return err
	}

	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetTypeByID(txCtx, cityID, id); err != nil {
			return err
		}
		values, err := s.repo.CountValuesForType(txCtx, id)
		if err != nil {
			return err
		}
		if values > 0 {
			return serrors.Referential(
				"TYPE_IN_USE",
				fmt.Sprintf("cannot delete: referenced by %d dependents", values),
				values,
			)
		}
		assignments, err := s.repo.CountAssignmentsForType(txCtx, id)
		if err != nil {
			return err
		}
		if assignments > 0 {
			return serrors.Referential(
				"TYPE_IN_USE",
				fmt.Sprintf("cannot delete: referenced by %d dependents", assignments),
				assignments,
			)
		}
		return s.repo.DeleteType(txCtx, cityID, id)
	})
	if err != nil {
		if errors.Is(err, classification.ErrTypeNotFound) {
			return serrors.NotFound("TYPE_NOT_FOUND", "classification type not found")
		}
		return mapPgError(err)
	}

	s.publisher.Publish(&ClassificationTypeDeletedEvent{CityID: cityID, ID: id})
	return nil
}

func (s *ClassificationService) ListTypes(ctx context.Context, cityID uuid.UUID) ([]*classification.Type, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return nil, err
	}
	types, err := s.repo.ListTypes(ctx, cityID)
	if err != nil {
		return nil, mapPgError(err)
	}
	return types, nil
}

func (s *ClassificationService) DefineValue(ctx context.Context, cityID, typeID uuid.UUID, data ValueWrite) (*classification.Value, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleAdmin); err != nil {
		return nil, err
	}
	data.Slug = strings.ToLower(strings.TrimSpace(data.Slug))
	if data.Slug == "" {
		return nil, serrors.Validation("SLUG_EMPTY", "slug must not be empty", "slug")
	}

	var created *classification.Value
	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetTypeByID(txCtx, cityID, typeID); err != nil {
			return err
		}
		v, err := classification.NewValue(
			typeID,
			data.Slug,
			data.Color,
			data.IconScale,
			classification.ValueWithIconReference(data.IconReference),
			classification.ValueWithDisplayOrder(data.DisplayOrder),
		)
		if err != nil {
			return err
		}
		created, err = s.repo.CreateValue(txCtx, cityID, v)
		return err
	})
	if err != nil {
		if errors.Is(err, classification.ErrTypeNotFound) {
			return nil, serrors.NotFound("TYPE_NOT_FOUND", "classification type not found")
		}
		return nil, mapPgError(err)
	}

	s.publisher.Publish(&ClassificationValueCreatedEvent{Result: created})
	return created, nil
}

func (s *ClassificationService) UpdateValue(ctx context.Context, cityID, id uuid.UUID, data ValueWrite) (*classification.Value, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleAdmin); err != nil {
		return nil, err
	}

	var updated *classification.Value
	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		v, err := s.repo.GetValueByID(txCtx, cityID, id)
		if err != nil {
			return err
		}
		v, err = v.SetStyling(data.Color, data.IconReference, data.IconScale)
		if err != nil {
			return err
		}
		updated, err = s.repo.UpdateValue(txCtx, cityID, v.SetDisplayOrder(data.DisplayOrder))
		return err
	})
	if err != nil {
		if errors.Is(err, classification.ErrValueNotFound) {
			return nil, serrors.NotFound("VALUE_NOT_FOUND", "classification value not found")
		}
		return nil, mapPgError(err)
	}

	s.publisher.Publish(&ClassificationValueUpdatedEvent{Result: updated})
	return updated, nil
}

func (s *ClassificationService) DeleteValue(ctx context.Context, cityID, id uuid.UUID) error {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleAdmin); err != nil {
		return err
	}

	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetValueByID(txCtx, cityID, id); err != nil {
			return err
		}
		assignments, err := s.repo.CountAssignmentsForValue(txCtx, id)
		if err != nil {
			return err
		}
		if assignments > 0 {
			return serrors.Referential(
				"VALUE_IN_USE",
				fmt.Sprintf("cannot delete: referenced by %d dependents", assignments),
				assignments,
			)
		}
		return s.repo.DeleteValue(txCtx, cityID, id)
	})
	if err != nil {
		if errors.Is(err, classification.ErrValueNotFound) {
			return serrors.NotFound("VALUE_NOT_FOUND", "classification value not found")
		}
		return mapPgError(err)
	}

	s.publisher.Publish(&ClassificationValueDeletedEvent{CityID: cityID, ID: id})
	return nil
}

func (s *ClassificationService) ListValues(ctx context.Context, cityID, typeID uuid.UUID) ([]*classification.Value, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return nil, err
	}
	values, err := s.repo.ListValues(ctx, cityID, typeID)
	if err != nil {
		return nil, mapPgError(err)
	}
	return values, nil
}

// Assign attaches a value to an entity. On single-cardinality types the new
// assignment replaces whatever the entity held on that axis, atomically; on
// multi-cardinality types a duplicate pair is a conflict.
func (s *ClassificationService) Assign(ctx context.Context, cityID, entityID, valueID uuid.UUID) error {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return err
	}

	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		v, err := s.repo.GetValueByID(txCtx, cityID, valueID)
		if err != nil {
			return err
		}
		t, err := s.repo.GetTypeByID(txCtx, cityID, v.TypeID())
		if err != nil {
			return err
		}
		if !t.AllowMultiple() {
			if err := s.repo.DeleteAssignmentsOfType(txCtx, cityID, entityID, t.ID()); err != nil {
				return err
			}
		}
		return s.repo.CreateAssignment(txCtx, cityID, classification.NewAssignment(entityID, valueID))
	})
	if err != nil {
		if errors.Is(err, classification.ErrValueNotFound) {
			return serrors.NotFound("VALUE_NOT_FOUND", "classification value not found")
		}
		if errors.Is(err, classification.ErrTypeNotFound) {
			return serrors.NotFound("TYPE_NOT_FOUND", "classification type not found")
		}
		return mapPgError(err)
	}

	s.publisher.Publish(&EntityClassifiedEvent{CityID: cityID, EntityID: entityID, ValueID: valueID})
	return nil
}

// Unassign is idempotent: detaching an absent assignment succeeds silently.
func (s *ClassificationService) Unassign(ctx context.Context, cityID, entityID, valueID uuid.UUID) error {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return err
	}
	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.DeleteAssignment(txCtx, cityID, entityID, valueID)
	})
	if err != nil {
		return mapPgError(err)
	}
	s.publisher.Publish(&EntityUnclassifiedEvent{CityID: cityID, EntityID: entityID, ValueID: valueID})
	return nil
}

func (s *ClassificationService) ListAssignments(ctx context.Context, cityID, entityID uuid.UUID) ([]*classification.Assignment, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return nil, err
	}
	assignments, err := s.repo.ListAssignments(ctx, cityID, entityID)
	if err != nil {
		return nil, mapPgError(err)
	}
	return assignments, nil
}

// ValidateCompleteness reports the required types the entity has no
// assignment for. An empty result means the entity may be published.
func (s *ClassificationService) ValidateCompleteness(ctx context.Context, cityID, entityID uuid.UUID) ([]*classification.Type, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return nil, err
	}
	types, err := s.repo.ListTypes(ctx, cityID)
	if err != nil {
		return nil, mapPgError(err)
	}
	assigned, err := s.repo.ListAssignedTypeIDs(ctx, cityID, entityID)
	if err != nil {
		return nil, mapPgError(err)
	}
	return classification.MissingRequiredTypes(types, assigned), nil
}
