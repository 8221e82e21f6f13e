package classification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrTypeNotFound  = fmt.Errorf("classification type not found")
	ErrValueNotFound = fmt.Errorf("classification value not found")
)

type Repository interface {
	GetTypeByID(ctx context.Context, cityID, id uuid.UUID) (*Type, error)
	GetTypeBySlug(ctx context.Context, cityID uuid.UUID, slug string) (*Type, error)
	ListTypes(ctx context.Context, cityID uuid.UUID) ([]*Type, error)
	CreateType(ctx context.Context, t *Type) (*Type, error)
	UpdateType(ctx context.Context, t *Type) (*Type, error)
	// DeleteType must fail with a referential error while values or
	// assignments still reference the type; dependents are never cascaded.
	DeleteType(ctx context.Context, cityID, id uuid.UUID) error

	GetValueByID(ctx context.Context, cityID, id uuid.UUID) (*Value, error)
	ListValues(ctx context.Context, cityID, typeID uuid.UUID) ([]*Value, error)
	CreateValue(ctx context.Context, cityID uuid.UUID, v *Value) (*Value, error)
	UpdateValue(ctx context.Context, cityID uuid.UUID, v *Value) (*Value, error)
	DeleteValue(ctx context.Context, cityID, id uuid.UUID) error

	ListAssignments(ctx context.Context, cityID, entityID uuid.UUID) ([]*Assignment, error)
	// ListAssignedTypeIDs returns the distinct type ids the entity holds at
	// least one assignment for; the completeness check is built on it.
	ListAssignedTypeIDs(ctx context.Context, cityID, entityID uuid.UUID) ([]uuid.UUID, error)
	CreateAssignment(ctx context.Context, cityID uuid.UUID, a *Assignment) error
	// DeleteAssignment is idempotent: removing an absent assignment is not
	// an error.
	DeleteAssignment(ctx context.Context, cityID, entityID, valueID uuid.UUID) error
	// DeleteAssignmentsOfType removes every assignment of the entity whose
	// value belongs to the given type (the single-cardinality replace rule).
	DeleteAssignmentsOfType(ctx context.Context, cityID, entityID, typeID uuid.UUID) error
	DeleteAssignmentsForEntity(ctx context.Context, cityID, entityID uuid.UUID) error
	CountAssignmentsForValue(ctx context.Context, valueID uuid.UUID) (int, error)
	CountAssignmentsForType(ctx context.Context, typeID uuid.UUID) (int, error)
	CountValuesForType(ctx context.Context, typeID uuid.UUID) (int, error)
}
