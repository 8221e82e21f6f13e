// Package translation holds the per-locale translated fields shared by every
// translatable entity. A translation record is owned exclusively by its parent
// entity and lives and dies with it.
package translation

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/citylingua/citylingua/pkg/serrors"
)

type Record struct {
	Locale      string
	Name        string
	Description string
}

// Set maps locale code to record. At most one record per locale is enforced
// both here (map key) and by the per-locale uniqueness constraint in storage.
type Set map[string]Record

// NewSet normalizes the input: locale codes are validated, records with an
// empty name are skipped (an entity with zero translations is a valid
// bootstrapping state).
func NewSet(records map[string]Record) (Set, error) {
	set := make(Set, len(records))
	for locale, record := range records {
		locale = strings.TrimSpace(locale)
		if err := ValidateLocale(locale); err != nil {
			return nil, err
		}
		if strings.TrimSpace(record.Name) == "" {
			continue
		}
		set[locale] = Record{
			Locale:      locale,
			Name:        strings.TrimSpace(record.Name),
			Description: strings.TrimSpace(record.Description),
		}
	}
	return set, nil
}

func ValidateLocale(locale string) error {
	if locale == "" {
		return serrors.Validation("LOCALE_EMPTY", "locale code must not be empty", "locale")
	}
	if _, err := language.Parse(locale); err != nil {
		return serrors.Validation("LOCALE_INVALID", "unknown locale code: "+locale, "translations."+locale)
	}
	return nil
}

func (s Set) Locales() []string {
	locales := make([]string, 0, len(s))
	for locale := range s {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

type Repository interface {
	ListFor(ctx context.Context, entityID uuid.UUID) (Set, error)
	// Replace deletes every record for the entity, then inserts the supplied
	// set. Omitting a locale therefore deletes its translation; there is no
	// diffing or upserting.
	Replace(ctx context.Context, entityID uuid.UUID, set Set) error
	DeleteFor(ctx context.Context, entityID uuid.UUID) error
}
