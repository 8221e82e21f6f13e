package models

import (
	"database/sql"
	"time"
)

type Language struct {
	ID           string
	CityID       string
	Slug         string
	NativeName   string
	Status       string
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type District struct {
	ID                string
	CityID            string
	Slug              string
	PrimaryLanguageID sql.NullString
	DisplayOrder      int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ClassificationType struct {
	ID                    string
	CityID                string
	Slug                  string
	Required              bool
	AllowMultiple         bool
	UsedForFiltering      bool
	UsedForRenderingStyle bool
	DisplayOrder          int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type ClassificationValue struct {
	ID            string
	TypeID        string
	Slug          string
	Color         string
	IconReference sql.NullString
	IconScale     float64
	DisplayOrder  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ClassificationAssignment struct {
	CityID     string
	EntityID   string
	ValueID    string
	AssignedAt time.Time
}

type EntityTranslation struct {
	EntityID    string
	Locale      string
	Name        string
	Description sql.NullString
}
