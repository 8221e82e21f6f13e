package classification

import (
	"time"

	"github.com/google/uuid"
)

// Assignment joins a content entity to a classification value. The pair is
// unique; re-assigning the same value to the same entity is a conflict on
// multi-cardinality types and a replace on single-cardinality ones.
type Assignment struct {
	entityID   uuid.UUID
	valueID    uuid.UUID
	assignedAt time.Time
}

func NewAssignment(entityID, valueID uuid.UUID) *Assignment {
	return &Assignment{
		entityID:   entityID,
		valueID:    valueID,
		assignedAt: time.Now(),
	}
}

func AssignmentWithAssignedAt(a *Assignment, assignedAt time.Time) *Assignment {
	clone := *a
	clone.assignedAt = assignedAt
	return &clone
}

func (a *Assignment) EntityID() uuid.UUID   { return a.entityID }
func (a *Assignment) ValueID() uuid.UUID    { return a.valueID }
func (a *Assignment) AssignedAt() time.Time { return a.assignedAt }
