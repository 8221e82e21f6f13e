package city

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// City is the tenant boundary. All content, grants and classification schemes
// are scoped to exactly one city. Cities are never physically deleted in
// normal operation; they are archived instead.
type City struct {
	id         uuid.UUID
	slug       string
	name       string
	archivedAt *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

type Option func(*City)

func WithID(id uuid.UUID) Option {
	return func(c *City) {
		c.id = id
	}
}

func WithArchivedAt(archivedAt *time.Time) Option {
	return func(c *City) {
		c.archivedAt = archivedAt
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(c *City) {
		c.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(c *City) {
		c.updatedAt = updatedAt
	}
}

func New(slug, name string, opts ...Option) *City {
	c := &City{
		id:        uuid.New(),
		slug:      strings.ToLower(strings.TrimSpace(slug)),
		name:      strings.TrimSpace(name),
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *City) ID() uuid.UUID          { return c.id }
func (c *City) Slug() string           { return c.slug }
func (c *City) Name() string           { return c.name }
func (c *City) ArchivedAt() *time.Time { return c.archivedAt }
func (c *City) CreatedAt() time.Time   { return c.createdAt }
func (c *City) UpdatedAt() time.Time   { return c.updatedAt }

func (c *City) IsArchived() bool {
	return c.archivedAt != nil
}

// Archive returns a copy marked archived. Archiving an archived city keeps
// the original timestamp.
func (c *City) Archive() *City {
	if c.archivedAt != nil {
		return c
	}
	clone := *c
	now := time.Now()
	clone.archivedAt = &now
	clone.updatedAt = now
	return &clone
}
