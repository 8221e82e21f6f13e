package language

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Language is a tenant-owned translatable entity. NativeName is the
// locale-invariant self-name (e.g. "Nederlands") and doubles as the last
// fallback for display-name resolution.
type Language struct {
	id           uuid.UUID
	cityID       uuid.UUID
	slug         string
	nativeName   string
	status       Status
	displayOrder int
	createdAt    time.Time
	updatedAt    time.Time
}

type Option func(*Language)

func WithID(id uuid.UUID) Option {
	return func(l *Language) {
		l.id = id
	}
}

func WithStatus(status Status) Option {
	return func(l *Language) {
		l.status = status
	}
}

func WithDisplayOrder(order int) Option {
	return func(l *Language) {
		l.displayOrder = order
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(l *Language) {
		l.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(l *Language) {
		l.updatedAt = updatedAt
	}
}

func New(cityID uuid.UUID, slug, nativeName string, opts ...Option) *Language {
	l := &Language{
		id:         uuid.New(),
		cityID:     cityID,
		slug:       strings.ToLower(strings.TrimSpace(slug)),
		nativeName: strings.TrimSpace(nativeName),
		status:     StatusDraft,
		createdAt:  time.Now(),
		updatedAt:  time.Now(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Language) ID() uuid.UUID        { return l.id }
func (l *Language) CityID() uuid.UUID    { return l.cityID }
func (l *Language) Slug() string         { return l.slug }
func (l *Language) NativeName() string   { return l.nativeName }
func (l *Language) Status() Status       { return l.status }
func (l *Language) DisplayOrder() int    { return l.displayOrder }
func (l *Language) CreatedAt() time.Time { return l.createdAt }
func (l *Language) UpdatedAt() time.Time { return l.updatedAt }

func (l *Language) SetNativeName(nativeName string) *Language {
	clone := *l
	clone.nativeName = strings.TrimSpace(nativeName)
	clone.updatedAt = time.Now()
	return &clone
}

func (l *Language) SetSlug(slug string) *Language {
	clone := *l
	clone.slug = strings.ToLower(strings.TrimSpace(slug))
	clone.updatedAt = time.Now()
	return &clone
}

func (l *Language) SetDisplayOrder(order int) *Language {
	clone := *l
	clone.displayOrder = order
	clone.updatedAt = time.Now()
	return &clone
}

func (l *Language) SetStatus(status Status) *Language {
	clone := *l
	clone.status = status
	clone.updatedAt = time.Now()
	return &clone
}
