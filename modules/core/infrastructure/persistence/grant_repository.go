package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/core/domain/entities/grant"
	"github.com/citylingua/citylingua/modules/core/infrastructure/persistence/models"
	"github.com/citylingua/citylingua/pkg/composables"
)

const grantFindQuery = `SELECT city_id, account_id, role, created_at FROM role_grants`

// GrantRepository reads and writes role_grants with direct statements only.
// The grant lookup is the one authorization primitive everything else builds
// on, so it must never be answered through a predicate that itself consults
// grants — that is how the storage layer ends up evaluating a permission
// check recursively. The matching row-level policies live in the schema and
// delegate to a definer function for the same reason.
type GrantRepository struct{}

func NewGrantRepository() grant.Repository {
	return &GrantRepository{}
}

func (r *GrantRepository) queryGrants(ctx context.Context, query string, args ...any) ([]*grant.RoleGrant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying role grants")
	}
	defer rows.Close()

	grants := make([]*grant.RoleGrant, 0)
	for rows.Next() {
		var dbGrant models.RoleGrant
		if err := rows.Scan(
			&dbGrant.CityID,
			&dbGrant.AccountID,
			&dbGrant.Role,
			&dbGrant.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scanning role grant")
		}
		domainGrant, err := toDomainGrant(&dbGrant)
		if err != nil {
			return nil, err
		}
		grants = append(grants, domainGrant)
	}
	return grants, rows.Err()
}

func (r *GrantRepository) GetForAccount(ctx context.Context, cityID, accountID uuid.UUID) (*grant.RoleGrant, error) {
	grants, err := r.queryGrants(
		ctx,
		grantFindQuery+" WHERE city_id = $1 AND account_id = $2",
		cityID.String(),
		accountID.String(),
	)
	if err != nil {
		return nil, err
	}
	if len(grants) == 0 {
		return nil, grant.ErrGrantNotFound
	}
	return grants[0], nil
}

func (r *GrantRepository) ListForCity(ctx context.Context, cityID uuid.UUID) ([]*grant.RoleGrant, error) {
	return r.queryGrants(ctx, grantFindQuery+" WHERE city_id = $1 ORDER BY created_at", cityID.String())
}

func (r *GrantRepository) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*grant.RoleGrant, error) {
	return r.queryGrants(ctx, grantFindQuery+" WHERE account_id = $1 ORDER BY created_at", accountID.String())
}

func (r *GrantRepository) Upsert(ctx context.Context, g *grant.RoleGrant) (*grant.RoleGrant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO role_grants (city_id, account_id, role, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (city_id, account_id) DO UPDATE SET role = EXCLUDED.role`,
		g.CityID().String(),
		g.AccountID().String(),
		string(g.Role()),
		g.CreatedAt(),
	); err != nil {
		return nil, err
	}
	return r.GetForAccount(ctx, g.CityID(), g.AccountID())
}

func (r *GrantRepository) Delete(ctx context.Context, cityID, accountID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(
		ctx,
		`DELETE FROM role_grants WHERE city_id = $1 AND account_id = $2`,
		cityID.String(),
		accountID.String(),
	)
	return err
}
