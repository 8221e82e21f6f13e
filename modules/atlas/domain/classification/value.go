package classification

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/citylingua/citylingua/pkg/serrors"
)

var colorTokenPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

const (
	MinIconScale = 0.25
	MaxIconScale = 4.0
)

// Value belongs to exactly one Type and carries the visual styling used by
// map rendering.
type Value struct {
	id            uuid.UUID
	typeID        uuid.UUID
	slug          string
	color         string
	iconReference string
	iconScale     float64
	displayOrder  int
	createdAt     time.Time
	updatedAt     time.Time
}

type ValueOption func(*Value)

func ValueWithID(id uuid.UUID) ValueOption {
	return func(v *Value) {
		v.id = id
	}
}

func ValueWithIconReference(ref string) ValueOption {
	return func(v *Value) {
		v.iconReference = ref
	}
}

func ValueWithDisplayOrder(order int) ValueOption {
	return func(v *Value) {
		v.displayOrder = order
	}
}

func ValueWithCreatedAt(createdAt time.Time) ValueOption {
	return func(v *Value) {
		v.createdAt = createdAt
	}
}

func ValueWithUpdatedAt(updatedAt time.Time) ValueOption {
	return func(v *Value) {
		v.updatedAt = updatedAt
	}
}

// NewValue validates the color token and icon scale before constructing.
func NewValue(typeID uuid.UUID, slug, color string, iconScale float64, opts ...ValueOption) (*Value, error) {
	color = strings.TrimSpace(color)
	if !colorTokenPattern.MatchString(color) {
		return nil, serrors.Validation("COLOR_INVALID", "color must be a #RGB or #RRGGBB token", "color")
	}
	if iconScale < MinIconScale || iconScale > MaxIconScale {
		return nil, serrors.Validation("ICON_SCALE_OUT_OF_RANGE", "icon scale must be between 0.25 and 4", "icon_scale")
	}
	v := &Value{
		id:        uuid.New(),
		typeID:    typeID,
		slug:      strings.ToLower(strings.TrimSpace(slug)),
		color:     strings.ToLower(color),
		iconScale: iconScale,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

func (v *Value) ID() uuid.UUID         { return v.id }
func (v *Value) TypeID() uuid.UUID     { return v.typeID }
func (v *Value) Slug() string          { return v.slug }
func (v *Value) Color() string         { return v.color }
func (v *Value) IconReference() string { return v.iconReference }
func (v *Value) IconScale() float64    { return v.iconScale }
func (v *Value) DisplayOrder() int     { return v.displayOrder }
func (v *Value) CreatedAt() time.Time  { return v.createdAt }
func (v *Value) UpdatedAt() time.Time  { return v.updatedAt }

func (v *Value) SetStyling(color, iconReference string, iconScale float64) (*Value, error) {
	color = strings.TrimSpace(color)
	if !colorTokenPattern.MatchString(color) {
		return nil, serrors.Validation("COLOR_INVALID", "color must be a #RGB or #RRGGBB token", "color")
	}
	if iconScale < MinIconScale || iconScale > MaxIconScale {
		return nil, serrors.Validation("ICON_SCALE_OUT_OF_RANGE", "icon scale must be between 0.25 and 4", "icon_scale")
	}
	clone := *v
	clone.color = strings.ToLower(color)
	clone.iconReference = iconReference
	clone.iconScale = iconScale
	clone.updatedAt = time.Now()
	return &clone, nil
}

func (v *Value) SetDisplayOrder(order int) *Value {
	clone := *v
	clone.displayOrder = order
	clone.updatedAt = time.Now()
	return &clone
}
