package classification_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citylingua/citylingua/modules/atlas/domain/classification"
	"github.com/citylingua/citylingua/pkg/serrors"
)

func TestNewValueValidation(t *testing.T) {
	typeID := uuid.New()

	v, err := classification.NewValue(typeID, "Critically-Endangered", "#D6452A", 1.5)
	require.NoError(t, err)
	assert.Equal(t, "critically-endangered", v.Slug())
	assert.Equal(t, "#d6452a", v.Color())

	_, err = classification.NewValue(typeID, "x", "red", 1.0)
	require.Error(t, err)
	assert.True(t, serrors.IsKind(err, serrors.KindValidation))

	_, err = classification.NewValue(typeID, "x", "#12345", 1.0)
	assert.Error(t, err, "five hex digits is not a color token")

	_, err = classification.NewValue(typeID, "x", "#ffffff", 0.1)
	require.Error(t, err)
	se, ok := serrors.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "icon_scale", se.Field)

	_, err = classification.NewValue(typeID, "x", "#fff", 4.0)
	assert.NoError(t, err, "short form and boundary scale are valid")
}

func TestSetStylingValidation(t *testing.T) {
	v, err := classification.NewValue(uuid.New(), "x", "#ffffff", 1)
	require.NoError(t, err)

	_, err = v.SetStyling("#gggggg", "icon.svg", 1)
	assert.Error(t, err)

	updated, err := v.SetStyling("#00FF00", "icon.svg", 2)
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", updated.Color())
	assert.Equal(t, "icon.svg", updated.IconReference())
}
