package district

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// District is a geographic subdivision of a city. It may name a primary
// language, which blocks that language from deletion while the reference
// stands.
type District struct {
	id                uuid.UUID
	cityID            uuid.UUID
	slug              string
	primaryLanguageID *uuid.UUID
	displayOrder      int
	createdAt         time.Time
	updatedAt         time.Time
}

type Option func(*District)

func WithID(id uuid.UUID) Option {
	return func(d *District) {
		d.id = id
	}
}

func WithPrimaryLanguageID(id *uuid.UUID) Option {
	return func(d *District) {
		d.primaryLanguageID = id
	}
}

func WithDisplayOrder(order int) Option {
	return func(d *District) {
		d.displayOrder = order
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(d *District) {
		d.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(d *District) {
		d.updatedAt = updatedAt
	}
}

func New(cityID uuid.UUID, slug string, opts ...Option) *District {
	d := &District{
		id:        uuid.New(),
		cityID:    cityID,
		slug:      strings.ToLower(strings.TrimSpace(slug)),
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *District) ID() uuid.UUID                 { return d.id }
func (d *District) CityID() uuid.UUID             { return d.cityID }
func (d *District) Slug() string                  { return d.slug }
func (d *District) PrimaryLanguageID() *uuid.UUID { return d.primaryLanguageID }
func (d *District) DisplayOrder() int             { return d.displayOrder }
func (d *District) CreatedAt() time.Time          { return d.createdAt }
func (d *District) UpdatedAt() time.Time          { return d.updatedAt }

func (d *District) SetSlug(slug string) *District {
	clone := *d
	clone.slug = strings.ToLower(strings.TrimSpace(slug))
	clone.updatedAt = time.Now()
	return &clone
}

func (d *District) SetPrimaryLanguageID(id *uuid.UUID) *District {
	clone := *d
	clone.primaryLanguageID = id
	clone.updatedAt = time.Now()
	return &clone
}

func (d *District) SetDisplayOrder(order int) *District {
	clone := *d
	clone.displayOrder = order
	clone.updatedAt = time.Now()
	return &clone
}
