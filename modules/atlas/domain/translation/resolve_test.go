package translation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citylingua/citylingua/modules/atlas/domain/translation"
)

func set(t *testing.T, records map[string]translation.Record) translation.Set {
	t.Helper()
	s, err := translation.NewSet(records)
	require.NoError(t, err)
	return s
}

func TestResolveDisplayName(t *testing.T) {
	s := set(t, map[string]translation.Record{
		"en": {Name: "Dutch"},
		"nl": {Name: "Nederlands"},
	})

	assert.Equal(t, "Nederlands", translation.ResolveDisplayName(s, "nl", "en", "Nederlands"))
	assert.Equal(t, "Dutch", translation.ResolveDisplayName(s, "fr", "en", "Nederlands"), "falls back to default locale")
	assert.Equal(t, "Nederlands", translation.ResolveDisplayName(nil, "fr", "en", "Nederlands"), "falls back to invariant name")
	assert.Equal(t, translation.Untranslated, translation.ResolveDisplayName(nil, "fr", "en", ""), "sentinel when nothing exists")
}

func TestNewSetSkipsEmptyNames(t *testing.T) {
	s := set(t, map[string]translation.Record{
		"en": {Name: "Dutch"},
		"fr": {Name: "   "},
	})
	assert.Equal(t, []string{"en"}, s.Locales())
}

func TestNewSetRejectsUnknownLocale(t *testing.T) {
	_, err := translation.NewSet(map[string]translation.Record{
		"not-a-locale!": {Name: "x"},
	})
	require.Error(t, err)
}

func TestValidateLocale(t *testing.T) {
	assert.NoError(t, translation.ValidateLocale("en"))
	assert.NoError(t, translation.ValidateLocale("pt-BR"))
	assert.Error(t, translation.ValidateLocale(""))
	assert.Error(t, translation.ValidateLocale("??"))
}
