package persistence

import (
	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/core/domain/entities/account"
	"github.com/citylingua/citylingua/modules/core/domain/entities/city"
	"github.com/citylingua/citylingua/modules/core/domain/entities/grant"
	"github.com/citylingua/citylingua/modules/core/infrastructure/persistence/models"
)

func toDomainCity(dbCity *models.City) (*city.City, error) {
	id, err := uuid.Parse(dbCity.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parsing city id")
	}
	opts := []city.Option{
		city.WithID(id),
		city.WithCreatedAt(dbCity.CreatedAt),
		city.WithUpdatedAt(dbCity.UpdatedAt),
	}
	if dbCity.ArchivedAt.Valid {
		archivedAt := dbCity.ArchivedAt.Time
		opts = append(opts, city.WithArchivedAt(&archivedAt))
	}
	return city.New(dbCity.Slug, dbCity.Name, opts...), nil
}

func toDomainAccount(dbAccount *models.Account) (*account.Account, error) {
	id, err := uuid.Parse(dbAccount.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parsing account id")
	}
	globalRole, err := account.NewGlobalRole(dbAccount.GlobalRole)
	if err != nil {
		return nil, err
	}
	return account.New(
		dbAccount.Email,
		dbAccount.DisplayName,
		account.WithID(id),
		account.WithGlobalRole(globalRole),
		account.WithCreatedAt(dbAccount.CreatedAt),
		account.WithUpdatedAt(dbAccount.UpdatedAt),
	), nil
}

func toDomainGrant(dbGrant *models.RoleGrant) (*grant.RoleGrant, error) {
	cityID, err := uuid.Parse(dbGrant.CityID)
	if err != nil {
		return nil, errors.Wrap(err, "parsing grant city id")
	}
	accountID, err := uuid.Parse(dbGrant.AccountID)
	if err != nil {
		return nil, errors.Wrap(err, "parsing grant account id")
	}
	role, err := grant.NewRole(dbGrant.Role)
	if err != nil {
		return nil, err
	}
	return grant.New(cityID, accountID, role, grant.WithCreatedAt(dbGrant.CreatedAt)), nil
}
