package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/atlas/domain/classification"
	"github.com/citylingua/citylingua/modules/atlas/domain/district"
	"github.com/citylingua/citylingua/modules/atlas/domain/language"
	"github.com/citylingua/citylingua/modules/atlas/domain/translation"
	"github.com/citylingua/citylingua/modules/core/domain/entities/grant"
	"github.com/citylingua/citylingua/pkg/configuration"
	"github.com/citylingua/citylingua/pkg/eventbus"
	"github.com/citylingua/citylingua/pkg/repo"
	"github.com/citylingua/citylingua/pkg/serrors"
)

type DistrictCreatedEvent struct {
	Result *district.District
}

type DistrictUpdatedEvent struct {
	Result *district.District
}

type DistrictDeletedEvent struct {
	CityID uuid.UUID
	ID     uuid.UUID
}

type DistrictWrite struct {
	Slug              string
	PrimaryLanguageID *uuid.UUID
	DisplayOrder      int
	Translations      map[string]translation.Record
}

type DistrictView struct {
	District     *district.District
	Translations translation.Set
	DisplayName  string
}

type DistrictService struct {
	districts       district.Repository
	languages       language.Repository
	translations    translation.Repository
	classifications classification.Repository
	tx              repo.Transactor
	access          AccessGuard
	publisher       eventbus.EventBus
}

func NewDistrictService(
	districts district.Repository,
	languages language.Repository,
	translations translation.Repository,
	classifications classification.Repository,
	tx repo.Transactor,
	access AccessGuard,
	publisher eventbus.EventBus,
) *DistrictService {
	return &DistrictService{
		districts:       districts,
		languages:       languages,
		translations:    translations,
		classifications: classifications,
		tx:              tx,
		access:          access,
		publisher:       publisher,
	}
}

func (s *DistrictService) CreateWithTranslations(ctx context.Context, cityID uuid.UUID, data DistrictWrite) (*district.District, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return nil, err
	}
	set, err := validateDistrictWrite(&data)
	if err != nil {
		return nil, err
	}

	var created *district.District
	err = s.tx.InTx(ctx, func(txCtx context.Context) error {
		if err := s.checkPrimaryLanguage(txCtx, cityID, data.PrimaryLanguageID); err != nil {
			return err
		}
		d, err := s.districts.Create(txCtx, district.New(
			cityID,
			data.Slug,
			district.WithPrimaryLanguageID(data.PrimaryLanguageID),
			district.WithDisplayOrder(data.DisplayOrder),
		))
		if err != nil {
			return err
		}
		if err := s.translations.Replace(txCtx, d.ID(), set); err != nil {
			return err
		}
		created = d
		return nil
	})
	if err != nil {
		return nil, mapPgError(err)
	}

	s.publisher.Publish(&DistrictCreatedEvent{Result: created})
	return created, nil
}

func (s *DistrictService) UpdateWithTranslations(ctx context.Context, cityID, id uuid.UUID, data DistrictWrite) (*district.District, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return nil, err
	}
	set, err := validateDistrictWrite(&data)
	if err != nil {
		return nil, err
	}

	var updated *district.District
	err = s.tx.InTx(ctx, func(txCtx context.Context) error {
		d, err := s.districts.GetByID(txCtx, cityID, id)
		if err != nil {
			return err
		}
		if err := s.checkPrimaryLanguage(txCtx, cityID, data.PrimaryLanguageID); err != nil {
			return err
		}
		d = d.SetSlug(data.Slug).
			SetPrimaryLanguageID(data.PrimaryLanguageID).
			SetDisplayOrder(data.DisplayOrder)
		updated, err = s.districts.Update(txCtx, d)
		if err != nil {
			return err
		}
		return s.translations.Replace(txCtx, id, set)
	})
	if err != nil {
		if errors.Is(err, district.ErrDistrictNotFound) {
			return nil, serrors.NotFound("DISTRICT_NOT_FOUND", "district not found")
		}
		return nil, mapPgError(err)
	}

	s.publisher.Publish(&DistrictUpdatedEvent{Result: updated})
	return updated, nil
}

func (s *DistrictService) Get(ctx context.Context, cityID, id uuid.UUID, locale string) (*DistrictView, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return nil, err
	}
	d, err := s.districts.GetByID(ctx, cityID, id)
	if err != nil {
		if errors.Is(err, district.ErrDistrictNotFound) {
			return nil, serrors.NotFound("DISTRICT_NOT_FOUND", "district not found")
		}
		return nil, mapPgError(err)
	}
	set, err := s.translations.ListFor(ctx, id)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &DistrictView{
		District:     d,
		Translations: set,
		DisplayName:  translation.ResolveDisplayName(set, locale, configuration.Use().DefaultLocale, d.Slug()),
	}, nil
}

func (s *DistrictService) List(ctx context.Context, cityID uuid.UUID) ([]*district.District, error) {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return nil, err
	}
	districts, err := s.districts.List(ctx, cityID)
	if err != nil {
		return nil, mapPgError(err)
	}
	return districts, nil
}

// Delete removes the district and cascades its translation records. Live
// classification assignments block the delete; removing the row anyway would
// strand assignment rows that keep their value undeletable forever.
func (s *DistrictService) Delete(ctx context.Context, cityID, id uuid.UUID) error {
	if err := s.access.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return err
	}

	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		if _, err := s.districts.GetByID(txCtx, cityID, id); err != nil {
			return err
		}
		assignments, err := s.classifications.ListAssignments(txCtx, cityID, id)
		if err != nil {
			return err
		}
		if len(assignments) > 0 {
			return serrors.Referential(
				"DISTRICT_CLASSIFIED",
				fmt.Sprintf("cannot delete: referenced by %d dependents", len(assignments)),
				len(assignments),
			)
		}
		if err := s.translations.DeleteFor(txCtx, id); err != nil {
			return err
		}
		return s.districts.Delete(txCtx, cityID, id)
	})
	if err != nil {
		if errors.Is(err, district.ErrDistrictNotFound) {
			return serrors.NotFound("DISTRICT_NOT_FOUND", "district not found")
		}
		return mapPgError(err)
	}

	s.publisher.Publish(&DistrictDeletedEvent{CityID: cityID, ID: id})
	return nil
}

// checkPrimaryLanguage rejects a reference to a language outside the
// district's own city.
func (s *DistrictService) checkPrimaryLanguage(ctx context.Context, cityID uuid.UUID, languageID *uuid.UUID) error {
	if languageID == nil {
		return nil
	}
	if _, err := s.languages.GetByID(ctx, cityID, *languageID); err != nil {
		if errors.Is(err, language.ErrLanguageNotFound) {
			return serrors.Validation("PRIMARY_LANGUAGE_UNKNOWN", "primary language does not exist in this city", "primary_language_id")
		}
		return err
	}
	return nil
}

func validateDistrictWrite(data *DistrictWrite) (translation.Set, error) {
	data.Slug = strings.ToLower(strings.TrimSpace(data.Slug))
	if data.Slug == "" {
		return nil, serrors.Validation("SLUG_EMPTY", "slug must not be empty", "slug")
	}
	return translation.NewSet(data.Translations)
}
