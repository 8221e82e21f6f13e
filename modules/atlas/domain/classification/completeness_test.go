package classification_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/citylingua/citylingua/modules/atlas/domain/classification"
)

func TestMissingRequiredTypes(t *testing.T) {
	cityID := uuid.New()
	status := classification.NewType(cityID, "endangerment-status", classification.TypeWithRequired(true))
	family := classification.NewType(cityID, "language-family", classification.TypeWithRequired(true))
	script := classification.NewType(cityID, "script") // optional

	types := []*classification.Type{status, family, script}

	missing := classification.MissingRequiredTypes(types, nil)
	assert.Len(t, missing, 2)

	missing = classification.MissingRequiredTypes(types, []uuid.UUID{status.ID()})
	assert.Len(t, missing, 1)
	assert.Equal(t, family.ID(), missing[0].ID())

	missing = classification.MissingRequiredTypes(types, []uuid.UUID{status.ID(), family.ID()})
	assert.Empty(t, missing)
}

func TestMissingRequiredTypesGrandfathersFlagRemoval(t *testing.T) {
	cityID := uuid.New()
	status := classification.NewType(cityID, "endangerment-status", classification.TypeWithRequired(true))

	missing := classification.MissingRequiredTypes([]*classification.Type{status}, nil)
	assert.Len(t, missing, 1)

	relaxed := status.SetFlags(false, status.AllowMultiple(), status.UsedForFiltering(), status.UsedForRenderingStyle())
	missing = classification.MissingRequiredTypes([]*classification.Type{relaxed}, nil)
	assert.Empty(t, missing, "removing required stops the type from being reported")
}
