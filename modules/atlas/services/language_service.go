package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/atlas/domain/classification"
	"github.com/citylingua/citylingua/modules/atlas/domain/language"
	"github.com/citylingua/citylingua/modules/atlas/domain/translation"
	"github.com/citylingua/citylingua/modules/core/domain/entities/grant"
	"github.com/citylingua/citylingua/pkg/configuration"
	"github.com/citylingua/citylingua/pkg/eventbus"
	"github.com/citylingua/citylingua/pkg/repo"
	"github.com/citylingua/citylingua/pkg/serrors"
)

type LanguageCreatedEvent struct {
	Result *language.Language
}

type LanguageUpdatedEvent struct {
	Result *language.Language
}

type LanguageDeletedEvent struct {
	CityID uuid.UUID
	ID     uuid.UUID
}

type LanguagePublishedEvent struct {
	Result *language.Language
}

// LanguageWrite carries the core fields and the full translation set for a
// create or update. The translation set is authoritative: locales omitted
// from an update are deleted.
type LanguageWrite struct {
	Slug         string
	NativeName   string
	DisplayOrder int
	Translations map[string]translation.Record
}

// LanguageView is a language joined with its translations and the display
// name resolved for the requested locale.
type LanguageView struct {
	Language     *language.Language
	Translations translation.Set
	DisplayName  string
}

type LanguageService struct {
	languages       language.Repository
	translations    translation.Repository
	classifications classification.Repository
	districts       DistrictCounter
	tx              repo.Transactor
	access          AccessGuard
	publisher       eventbus.EventBus
}

// DistrictCounter is the slice of the district repository the language
// delete path needs to size referential-block errors.
type DistrictCounter interface {
	CountByPrimaryLanguage(ctx context.Context, cityID, languageID uuid.UUID) (int, error)
}

func NewLanguageService(
	languages language.Repository,
	translations translation.Repository,
	classifications classification.Repository,
	districts DistrictCounter,
	tx repo.Transactor,
	access AccessGuard,
	publisher eventbus.EventBus,
) *LanguageService {
	return &LanguageService{
		languages:       languages,
		translations:    translations,
		classifications: classifications,
		districts:       districts,
		tx:              tx,
		access:          access,
		publisher:       publisher,
	}
}

// CreateWithTranslations inserts the core row and one translation record per
// supplied locale in a single transaction. A slug conflict aborts the whole
// unit: no translation rows survive a failed create.
func (s *LanguageService) CreateWithTranslations(ctx context.Context, cityID uuid.UUID, data LanguageWrite) (*language.Language, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return nil, err
	}
	set, err := validateLanguageWrite(&data)
	if err != nil {
		return nil, err
	}

	var created *language.Language
	err = s.tx.InTx(ctx, func(txCtx context.Context) error {
		l, err := s.languages.Create(txCtx, language.New(
			cityID,
			data.Slug,
			data.NativeName,
			language.WithDisplayOrder(data.DisplayOrder),
		))
		if err != nil {
			return err
		}
		if err := s.translations.Replace(txCtx, l.ID(), set); err != nil {
			return err
		}
		created = l
		return nil
	})
	if err != nil {
		return nil, mapPgError(err)
	}

	s.publisher.Publish(&LanguageCreatedEvent{Result: created})
	return created, nil
}

// UpdateWithTranslations updates the core row and replaces the entire
// translation set. Concurrent updates race; the later commit wins wholesale.
func (s *LanguageService) UpdateWithTranslations(ctx context.Context, cityID, id uuid.UUID, data LanguageWrite) (*language.Language, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return nil, err
	}
	set, err := validateLanguageWrite(&data)
	if err != nil {
		return nil, err
	}

	var updated *language.Language
	err = s.tx.InTx(ctx, func(txCtx context.Context) error {
		l, err := s.languages.GetByID(txCtx, cityID, id)
		if err != nil {
			return err
		}
		l = l.SetSlug(data.Slug).SetNativeName(data.NativeName).SetDisplayOrder(data.DisplayOrder)
		updated, err = s.languages.Update(txCtx, l)
		if err != nil {
			return err
		}
		return s.translations.Replace(txCtx, id, set)
	})
	if err != nil {
		if errors.Is(err, language.ErrLanguageNotFound) {
			return nil, serrors.NotFound("LANGUAGE_NOT_FOUND", "language not found")
		}
		return nil, mapPgError(err)
	}

	s.publisher.Publish(&LanguageUpdatedEvent{Result: updated})
	return updated, nil
}

// Get resolves the display name for the requested locale, falling back to
// the configured default locale, then the native self-name.
func (s *LanguageService) Get(ctx context.Context, cityID, id uuid.UUID, locale string) (*LanguageView, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return nil, err
	}
	l, err := s.languages.GetByID(ctx, cityID, id)
	if err != nil {
		if errors.Is(err, language.ErrLanguageNotFound) {
			return nil, serrors.NotFound("LANGUAGE_NOT_FOUND", "language not found")
		}
		return nil, mapPgError(err)
	}
	set, err := s.translations.ListFor(ctx, id)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &LanguageView{
		Language:     l,
		Translations: set,
		DisplayName:  translation.ResolveDisplayName(set, locale, configuration.Use().DefaultLocale, l.NativeName()),
	}, nil
}

func (s *LanguageService) List(ctx context.Context, cityID uuid.UUID, params *language.FindParams) ([]*language.Language, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return nil, err
	}
	languages, err := s.languages.List(ctx, cityID, params)
	if err != nil {
		return nil, mapPgError(err)
	}
	return languages, nil
}

// Delete removes the language and cascades its translation records. Rows in
// other tables pointing at the language block the delete; the caller must
// unassign classifications and detach districts first.
func (s *LanguageService) Delete(ctx context.Context, cityID, id uuid.UUID) error {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return err
	}

	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		if _, err := s.languages.GetByID(txCtx, cityID, id); err != nil {
			return err
		}
		assignments, err := s.classifications.ListAssignments(txCtx, cityID, id)
		if err != nil {
			return err
		}
		if len(assignments) > 0 {
			return serrors.Referential(
				"LANGUAGE_CLASSIFIED",
				fmt.Sprintf("cannot delete: referenced by %d dependents", len(assignments)),
				len(assignments),
			)
		}
		referencing, err := s.districts.CountByPrimaryLanguage(txCtx, cityID, id)
		if err != nil {
			return err
		}
		if referencing > 0 {
			return serrors.Referential(
				"LANGUAGE_IN_USE",
				fmt.Sprintf("cannot delete: referenced by %d dependents", referencing),
				referencing,
			)
		}
		if err := s.translations.DeleteFor(txCtx, id); err != nil {
			return err
		}
		return s.languages.Delete(txCtx, cityID, id)
	})
	if err != nil {
		if errors.Is(err, language.ErrLanguageNotFound) {
			return serrors.NotFound("LANGUAGE_NOT_FOUND", "language not found")
		}
		return mapPgError(err)
	}

	s.publisher.Publish(&LanguageDeletedEvent{CityID: cityID, ID: id})
	return nil
}

// Publish transitions the language from draft to published, gated on the
// completeness of its required classifications. Draft saves are never gated.
func (s *LanguageService) Publish(ctx context.Context, cityID, id uuid.UUID) (*language.Language, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return nil, err
	}

	var published *language.Language
	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		l, err := s.languages.GetByID(txCtx, cityID, id)
		if err != nil {
			return err
		}
		types, err := s.classifications.ListTypes(txCtx, cityID)
		if err != nil {
			return err
		}
		assignedTypeIDs, err := s.classifications.ListAssignedTypeIDs(txCtx, cityID, id)
		if err != nil {
			return err
		}
		if missing := classification.MissingRequiredTypes(types, assignedTypeIDs); len(missing) > 0 {
			slugs := make([]string, 0, len(missing))
			for _, t := range missing {
				slugs = append(slugs, t.Slug())
			}
			return serrors.Validation(
				"CLASSIFICATION_INCOMPLETE",
				"missing required classifications: "+strings.Join(slugs, ", "),
				"classifications",
			)
		}
		published, err = s.languages.Update(txCtx, l.SetStatus(language.StatusPublished))
		return err
	})
	if err != nil {
		if errors.Is(err, language.ErrLanguageNotFound) {
			return nil, serrors.NotFound("LANGUAGE_NOT_FOUND", "language not found")
		}
		return nil, mapPgError(err)
	}

	s.publisher.Publish(&LanguagePublishedEvent{Result: published})
	return published, nil
}

func validateLanguageWrite(data *LanguageWrite) (translation.Set, error) {
	data.Slug = strings.ToLower(strings.TrimSpace(data.Slug))
	if data.Slug == "" {
		return nil, serrors.Validation("SLUG_EMPTY", "slug must not be empty", "slug")
	}
	return translation.NewSet(data.Translations)
}
