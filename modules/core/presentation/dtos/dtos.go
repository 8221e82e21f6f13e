package dtos

import (
	"time"

	"github.com/citylingua/citylingua/modules/core/domain/entities/account"
	"github.com/citylingua/citylingua/modules/core/domain/entities/city"
	"github.com/citylingua/citylingua/modules/core/domain/entities/grant"
)

type CreateCityDTO struct {
	Slug string `json:"slug" validate:"required,max=64"`
	Name string `json:"name" validate:"required,max=255"`
}

type CreateAccountDTO struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"max=255"`
}

type SetGlobalRoleDTO struct {
	GlobalRole string `json:"global_role" validate:"required,oneof=none superuser"`
}

type GrantRoleDTO struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	Role      string `json:"role" validate:"required,oneof=operator admin"`
}

type CityResponse struct {
	ID         string     `json:"id"`
	Slug       string     `json:"slug"`
	Name       string     `json:"name"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func NewCityResponse(c *city.City) *CityResponse {
	return &CityResponse{
		ID:         c.ID().String(),
		Slug:       c.Slug(),
		Name:       c.Name(),
		ArchivedAt: c.ArchivedAt(),
		CreatedAt:  c.CreatedAt(),
	}
}

func NewCityListResponse(cities []*city.City) []*CityResponse {
	out := make([]*CityResponse, 0, len(cities))
	for _, c := range cities {
		out = append(out, NewCityResponse(c))
	}
	return out
}

type AccountResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	GlobalRole  string    `json:"global_role"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewAccountResponse(a *account.Account) *AccountResponse {
	return &AccountResponse{
		ID:          a.ID().String(),
		Email:       a.Email(),
		DisplayName: a.DisplayName(),
		GlobalRole:  string(a.GlobalRole()),
		CreatedAt:   a.CreatedAt(),
	}
}

type GrantResponse struct {
	CityID    string    `json:"city_id"`
	AccountID string    `json:"account_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func NewGrantResponse(g *grant.RoleGrant) *GrantResponse {
	return &GrantResponse{
		CityID:    g.CityID().String(),
		AccountID: g.AccountID().String(),
		Role:      string(g.Role()),
		CreatedAt: g.CreatedAt(),
	}
}

func NewGrantListResponse(grants []*grant.RoleGrant) []*GrantResponse {
	out := make([]*GrantResponse, 0, len(grants))
	for _, g := range grants {
		out = append(out, NewGrantResponse(g))
	}
	return out
}
