package models

import (
	"database/sql"
	"time"
)

type City struct {
	ID         string
	Slug       string
	Name       string
	ArchivedAt sql.NullTime
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Account struct {
	ID          string
	Email       string
	DisplayName string
	GlobalRole  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RoleGrant struct {
	CityID    string
	AccountID string
	Role      string
	CreatedAt time.Time
}
