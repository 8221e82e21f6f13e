package classification

import "github.com/google/uuid"

// MissingRequiredTypes returns the required types the entity holds no
// assignment for. Requiredness is evaluated against the types' current flags
// only: entities that predate a flag change are grandfathered, and flipping
// required off immediately stops the type from being reported.
func MissingRequiredTypes(types []*Type, assignedTypeIDs []uuid.UUID) []*Type {
	assigned := make(map[uuid.UUID]struct{}, len(assignedTypeIDs))
	for _, id := range assignedTypeIDs {
		assigned[id] = struct{}{}
	}
	missing := make([]*Type, 0)
	for _, t := range types {
		if !t.Required() {
			continue
		}
		if _, ok := assigned[t.ID()]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}
