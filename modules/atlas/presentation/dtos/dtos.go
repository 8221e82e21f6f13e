package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/atlas/domain/classification"
	"github.com/citylingua/citylingua/modules/atlas/domain/district"
	"github.com/citylingua/citylingua/modules/atlas/domain/language"
	"github.com/citylingua/citylingua/modules/atlas/domain/translation"
	"github.com/citylingua/citylingua/modules/atlas/services"
	"github.com/citylingua/citylingua/pkg/serrors"
)

type TranslationDTO struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=4000"`
}

func toRecords(in map[string]TranslationDTO) map[string]translation.Record {
	out := make(map[string]translation.Record, len(in))
	for locale, dto := range in {
		out[locale] = translation.Record{Locale: locale, Name: dto.Name, Description: dto.Description}
	}
	return out
}

type LanguageWriteDTO struct {
	Slug         string                    `json:"slug" validate:"required,max=64"`
	NativeName   string                    `json:"native_name" validate:"required,max=255"`
	DisplayOrder int                       `json:"display_order"`
	Translations map[string]TranslationDTO `json:"translations" validate:"dive"`
}

func (d *LanguageWriteDTO) ToWrite() services.LanguageWrite {
	return services.LanguageWrite{
		Slug:         d.Slug,
		NativeName:   d.NativeName,
		DisplayOrder: d.DisplayOrder,
		Translations: toRecords(d.Translations),
	}
}

type DistrictWriteDTO struct {
	Slug              string                    `json:"slug" validate:"required,max=64"`
	PrimaryLanguageID *string                   `json:"primary_language_id" validate:"omitempty,uuid"`
	DisplayOrder      int                       `json:"display_order"`
	Translations      map[string]TranslationDTO `json:"translations" validate:"dive"`
}

func (d *DistrictWriteDTO) ToWrite() (services.DistrictWrite, error) {
	out := services.DistrictWrite{
		Slug:         d.Slug,
		DisplayOrder: d.DisplayOrder,
		Translations: toRecords(d.Translations),
	}
	if d.PrimaryLanguageID != nil {
		id, err := uuid.Parse(*d.PrimaryLanguageID)
		if err != nil {
			return out, serrors.Validation("PRIMARY_LANGUAGE_INVALID", "primary language id is not a valid uuid", "primary_language_id")
		}
		out.PrimaryLanguageID = &id
	}
	return out, nil
}

type TypeWriteDTO struct {
	Slug                  string `json:"slug" validate:"required,max=64"`
	Required              bool   `json:"required"`
	AllowMultiple         bool   `json:"allow_multiple"`
	UsedForFiltering      bool   `json:"used_for_filtering"`
	UsedForRenderingStyle bool   `json:"used_for_rendering_style"`
	DisplayOrder          int    `json:"display_order"`
}

func (d *TypeWriteDTO) ToWrite() services.TypeWrite {
	return services.TypeWrite{
		Slug:                  d.Slug,
		Required:              d.Required,
		AllowMultiple:         d.AllowMultiple,
		UsedForFiltering:      d.UsedForFiltering,
		UsedForRenderingStyle: d.UsedForRenderingStyle,
		DisplayOrder:          d.DisplayOrder,
	}
}

type ValueWriteDTO struct {
	Slug          string  `json:"slug" validate:"required,max=64"`
	Color         string  `json:"color" validate:"required"`
	IconReference string  `json:"icon_reference" validate:"max=255"`
	IconScale     float64 `json:"icon_scale" validate:"required"`
	DisplayOrder  int     `json:"display_order"`
}

func (d *ValueWriteDTO) ToWrite() services.ValueWrite {
	return services.ValueWrite{
		Slug:          d.Slug,
		Color:         d.Color,
		IconReference: d.IconReference,
		IconScale:     d.IconScale,
		DisplayOrder:  d.DisplayOrder,
	}
}

type AssignDTO struct {
	ValueID string `json:"value_id" validate:"required,uuid"`
}

type TranslationResponse struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func newTranslationsResponse(set translation.Set) map[string]TranslationResponse {
	out := make(map[string]TranslationResponse, len(set))
	for locale, record := range set {
		out[locale] = TranslationResponse{Name: record.Name, Description: record.Description}
	}
	return out
}

type LanguageResponse struct {
	ID           string                         `json:"id"`
	CityID       string                         `json:"city_id"`
	Slug         string                         `json:"slug"`
	NativeName   string                         `json:"native_name"`
	Status       string                         `json:"status"`
	DisplayOrder int                            `json:"display_order"`
	DisplayName  string                         `json:"display_name,omitempty"`
	Translations map[string]TranslationResponse `json:"translations,omitempty"`
	CreatedAt    time.Time                      `json:"created_at"`
}

func NewLanguageResponse(l *language.Language) *LanguageResponse {
	return &LanguageResponse{
		ID:           l.ID().String(),
		CityID:       l.CityID().String(),
		Slug:         l.Slug(),
		NativeName:   l.NativeName(),
		Status:       string(l.Status()),
		DisplayOrder: l.DisplayOrder(),
		CreatedAt:    l.CreatedAt(),
	}
}

func NewLanguageViewResponse(view *services.LanguageView) *LanguageResponse {
	out := NewLanguageResponse(view.Language)
	out.DisplayName = view.DisplayName
	out.Translations = newTranslationsResponse(view.Translations)
	return out
}

func NewLanguageListResponse(languages []*language.Language) []*LanguageResponse {
	out := make([]*LanguageResponse, 0, len(languages))
	for _, l := range languages {
		out = append(out, NewLanguageResponse(l))
	}
	return out
}

type DistrictResponse struct {
	ID                string                         `json:"id"`
	CityID            string                         `json:"city_id"`
	Slug              string                         `json:"slug"`
	PrimaryLanguageID *string                        `json:"primary_language_id,omitempty"`
	DisplayOrder      int                            `json:"display_order"`
	DisplayName       string                         `json:"display_name,omitempty"`
	Translations      map[string]TranslationResponse `json:"translations,omitempty"`
	CreatedAt         time.Time                      `json:"created_at"`
}

func NewDistrictResponse(d *district.District) *DistrictResponse {
	out := &DistrictResponse{
		ID:           d.ID().String(),
		CityID:       d.CityID().String(),
		Slug:         d.Slug(),
		DisplayOrder: d.DisplayOrder(),
		CreatedAt:    d.CreatedAt(),
	}
	if id := d.PrimaryLanguageID(); id != nil {
		s := id.String()
		out.PrimaryLanguageID = &s
	}
	return out
}

func NewDistrictViewResponse(view *services.DistrictView) *DistrictResponse {
	out := NewDistrictResponse(view.District)
	out.DisplayName = view.DisplayName
	out.Translations = newTranslationsResponse(view.Translations)
	return out
}

func NewDistrictListResponse(districts []*district.District) []*DistrictResponse {
	out := make([]*DistrictResponse, 0, len(districts))
	for _, d := range districts {
		out = append(out, NewDistrictResponse(d))
	}
	return out
}

type TypeResponse struct {
	ID                    string    `json:"id"`
	CityID                string    `json:"city_id"`
	Slug                  string    `json:"slug"`
	Required              bool      `json:"required"`
	AllowMultiple         bool      `json:"allow_multiple"`
	UsedForFiltering      bool      `json:"used_for_filtering"`
	UsedForRenderingStyle bool      `json:"used_for_rendering_style"`
	DisplayOrder          int       `json:"display_order"`
	CreatedAt             time.Time `json:"created_at"`
}

func NewTypeResponse(t *classification.Type) *TypeResponse {
	return &TypeResponse{
		ID:                    t.ID().String(),
		CityID:                t.CityID().String(),
		Slug:                  t.Slug(),
		Required:              t.Required(),
		AllowMultiple:         t.AllowMultiple(),
		UsedForFiltering:      t.UsedForFiltering(),
		UsedForRenderingStyle: t.UsedForRenderingStyle(),
		DisplayOrder:          t.DisplayOrder(),
		CreatedAt:             t.CreatedAt(),
	}
}

func NewTypeListResponse(types []*classification.Type) []*TypeResponse {
	out := make([]*TypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, NewTypeResponse(t))
	}
	return out
}

type ValueResponse struct {
	ID            string    `json:"id"`
	TypeID        string    `json:"type_id"`
	Slug          string    `json:"slug"`
	Color         string    `json:"color"`
	IconReference string    `json:"icon_reference,omitempty"`
	IconScale     float64   `json:"icon_scale"`
	DisplayOrder  int       `json:"display_order"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewValueResponse(v *classification.Value) *ValueResponse {
	return &ValueResponse{
		ID:            v.ID().String(),
		TypeID:        v.TypeID().String(),
		Slug:          v.Slug(),
		Color:         v.Color(),
		IconReference: v.IconReference(),
		IconScale:     v.IconScale(),
		DisplayOrder:  v.DisplayOrder(),
		CreatedAt:     v.CreatedAt(),
	}
}

func NewValueListResponse(values []*classification.Value) []*ValueResponse {
	out := make([]*ValueResponse, 0, len(values))
	for _, v := range values {
		out = append(out, NewValueResponse(v))
	}
	return out
}

type AssignmentResponse struct {
	EntityID   string    `json:"entity_id"`
	ValueID    string    `json:"value_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

func NewAssignmentListResponse(assignments []*classification.Assignment) []*AssignmentResponse {
	out := make([]*AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, &AssignmentResponse{
			EntityID:   a.EntityID().String(),
			ValueID:    a.ValueID().String(),
			AssignedAt: a.AssignedAt(),
		})
	}
	return out
}
