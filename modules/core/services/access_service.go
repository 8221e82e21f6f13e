package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/core/domain/entities/account"
	"github.com/citylingua/citylingua/modules/core/domain/entities/grant"
	"github.com/citylingua/citylingua/pkg/composables"
	"github.com/citylingua/citylingua/pkg/eventbus"
	"github.com/citylingua/citylingua/pkg/repo"
	"github.com/citylingua/citylingua/pkg/serrors"
)

// ErrAccessDenied crosses the boundary without naming the resource, so a
// denied caller cannot probe for existence.
var ErrAccessDenied = serrors.Denied("ACCESS_DENIED", "access denied")

type RoleGrantedEvent struct {
	Grant *grant.RoleGrant
}

type RoleRevokedEvent struct {
	CityID    uuid.UUID
	AccountID uuid.UUID
}

// AccessService answers "may principal P act with role R in city C". The
// answer is assembled from exactly two privileged lookups — the account's
// global role and the (city, account) grant row — and an ordinal comparison.
// Neither lookup is routed back through any row predicate, so evaluating a
// permission check never requires evaluating a permission check.
type AccessService struct {
	accounts  account.Repository
	grants    grant.Repository
	tx        repo.Transactor
	publisher eventbus.EventBus
}

func NewAccessService(
	accounts account.Repository,
	grants grant.Repository,
	tx repo.Transactor,
	publisher eventbus.EventBus,
) *AccessService {
	return &AccessService{
		accounts:  accounts,
		grants:    grants,
		tx:        tx,
		publisher: publisher,
	}
}

// CanAct implements the three-tier check: superuser passes everywhere,
// otherwise the tenant grant decides by ordinal. Denial is a plain false,
// never an error; the error return carries infrastructure failures only.
func (s *AccessService) CanAct(ctx context.Context, principalID, cityID uuid.UUID, required grant.Role) (bool, error) {
	principal, err := s.accounts.GetByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return false, nil
		}
		return false, mapPgError(err)
	}
	if principal.IsSuperuser() {
		return grant.SuperuserSatisfies(required), nil
	}

	g, err := s.grants.GetForAccount(ctx, cityID, principalID)
	if err != nil {
		if errors.Is(err, grant.ErrGrantNotFound) {
			return false, nil
		}
		return false, mapPgError(err)
	}
	return g.Role().Satisfies(required), nil
}

// RequireRole resolves the principal from the context and turns a negative
// CanAct into ErrAccessDenied. Services call this before opening any
// transaction.
func (s *AccessService) RequireRole(ctx context.Context, cityID uuid.UUID, required grant.Role) error {
	principalID, err := composables.UsePrincipalID(ctx)
	if err != nil {
		return ErrAccessDenied
	}
	allowed, err := s.CanAct(ctx, principalID, cityID, required)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrAccessDenied
	}
	return nil
}

// RequireSuperuser gates platform-level operations (creating cities,
// managing accounts).
func (s *AccessService) RequireSuperuser(ctx context.Context) error {
	principalID, err := composables.UsePrincipalID(ctx)
	if err != nil {
		return ErrAccessDenied
	}
	principal, err := s.accounts.GetByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return ErrAccessDenied
		}
		return mapPgError(err)
	}
	if !principal.IsSuperuser() {
		return ErrAccessDenied
	}
	return nil
}

// RoleIn returns the principal's own role in the city for display purposes.
// Superusers report admin; principals without a grant get ErrGrantNotFound.
func (s *AccessService) RoleIn(ctx context.Context, cityID uuid.UUID) (grant.Role, error) {
	principalID, err := composables.UsePrincipalID(ctx)
	if err != nil {
		return "", ErrAccessDenied
	}
	principal, err := s.accounts.GetByID(ctx, principalID)
	if err != nil {
		return "", mapPgError(err)
	}
	if principal.IsSuperuser() {
		return grant.RoleAdmin, nil
	}
	g, err := s.grants.GetForAccount(ctx, cityID, principalID)
	if err != nil {
		return "", err
	}
	return g.Role(), nil
}

// Grant gives accountID the role within the city, replacing any existing
// grant for the pair. Requires admin in the city (or superuser).
func (s *AccessService) Grant(ctx context.Context, cityID, accountID uuid.UUID, role grant.Role) (*grant.RoleGrant, error) {
	if err := s.RequireRole(ctx, cityID, grant.RoleAdmin); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, serrors.Validation("ROLE_INVALID", "role must be operator or admin", "role")
	}
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, serrors.NotFound("ACCOUNT_NOT_FOUND", "account not found")
		}
		return nil, mapPgError(err)
	}

	var granted *grant.RoleGrant
	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		g, err := s.grants.Upsert(txCtx, grant.New(cityID, accountID, role))
		if err != nil {
			return err
		}
		granted = g
		return nil
	})
	if err != nil {
		return nil, mapPgError(err)
	}

	s.publisher.Publish(&RoleGrantedEvent{Grant: granted})
	return granted, nil
}

// Revoke removes the grant; revoking an absent grant is a no-op.
func (s *AccessService) Revoke(ctx context.Context, cityID, accountID uuid.UUID) error {
	if err := s.RequireRole(ctx, cityID, grant.RoleAdmin); err != nil {
		return err
	}
	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		return s.grants.Delete(txCtx, cityID, accountID)
	})
	if err != nil {
		return mapPgError(err)
	}
	s.publisher.Publish(&RoleRevokedEvent{CityID: cityID, AccountID: accountID})
	return nil
}

// ListGrants exposes the city's grants for display. Operators may see who
// else works on their city.
func (s *AccessService) ListGrants(ctx context.Context, cityID uuid.UUID) ([]*grant.RoleGrant, error) {
	if err := s.RequireRole(ctx, cityID, grant.RoleOperator); err != nil {
		return nil, err
	}
	grants, err := s.grants.ListForCity(ctx, cityID)
	if err != nil {
		return nil, mapPgError(err)
	}
	return grants, nil
}
