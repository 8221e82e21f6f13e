// Package classification implements the per-tenant taxonomy engine: each city
// defines its own classification axes (types), the values on each axis, and
// the assignment of values to content entities.
package classification

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type is one classification axis (e.g. "Endangerment Status").
type Type struct {
	id                    uuid.UUID
	cityID                uuid.UUID
	slug                  string
	required              bool
	allowMultiple         bool
	usedForFiltering      bool
	usedForRenderingStyle bool
	displayOrder          int
	createdAt             time.Time
	updatedAt             time.Time
}

type TypeOption func(*Type)

func TypeWithID(id uuid.UUID) TypeOption {
	return func(t *Type) {
		t.id = id
	}
}

func TypeWithRequired(required bool) TypeOption {
	return func(t *Type) {
		t.required = required
	}
}

func TypeWithAllowMultiple(allowMultiple bool) TypeOption {
	return func(t *Type) {
		t.allowMultiple = allowMultiple
	}
}

func TypeWithUsedForFiltering(used bool) TypeOption {
	return func(t *Type) {
		t.usedForFiltering = used
	}
}

func TypeWithUsedForRenderingStyle(used bool) TypeOption {
	return func(t *Type) {
		t.usedForRenderingStyle = used
	}
}

func TypeWithDisplayOrder(order int) TypeOption {
	return func(t *Type) {
		t.displayOrder = order
	}
}

func TypeWithCreatedAt(createdAt time.Time) TypeOption {
	return func(t *Type) {
		t.createdAt = createdAt
	}
}

func TypeWithUpdatedAt(updatedAt time.Time) TypeOption {
	return func(t *Type) {
		t.updatedAt = updatedAt
	}
}

func NewType(cityID uuid.UUID, slug string, opts ...TypeOption) *Type {
	t := &Type{
		id:        uuid.New(),
		cityID:    cityID,
		slug:      strings.ToLower(strings.TrimSpace(slug)),
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Type) ID() uuid.UUID               { return t.id }
func (t *Type) CityID() uuid.UUID           { return t.cityID }
func (t *Type) Slug() string                { return t.slug }
func (t *Type) Required() bool              { return t.required }
func (t *Type) AllowMultiple() bool         { return t.allowMultiple }
func (t *Type) UsedForFiltering() bool      { return t.usedForFiltering }
func (t *Type) UsedForRenderingStyle() bool { return t.usedForRenderingStyle }
func (t *Type) DisplayOrder() int           { return t.displayOrder }
func (t *Type) CreatedAt() time.Time        { return t.createdAt }
func (t *Type) UpdatedAt() time.Time        { return t.updatedAt }

// SetFlags returns a copy with new cardinality/requiredness flags. Narrowing
// allow_multiple does not prune existing assignments; the single-cardinality
// rule applies to subsequent Assign calls only.
func (t *Type) SetFlags(required, allowMultiple, usedForFiltering, usedForRenderingStyle bool) *Type {
	clone := *t
	clone.required = required
	clone.allowMultiple = allowMultiple
	clone.usedForFiltering = usedForFiltering
	clone.usedForRenderingStyle = usedForRenderingStyle
	clone.updatedAt = time.Now()
	return &clone
}

func (t *Type) SetDisplayOrder(order int) *Type {
	clone := *t
	clone.displayOrder = order
	clone.updatedAt = time.Now()
	return &clone
}
