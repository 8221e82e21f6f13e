package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/core/domain/entities/account"
	"github.com/citylingua/citylingua/pkg/composables"
	"github.com/citylingua/citylingua/pkg/eventbus"
	"github.com/citylingua/citylingua/pkg/repo"
	"github.com/citylingua/citylingua/pkg/serrors"
)

type AccountCreatedEvent struct {
	Result *account.Account
}

type AccountService struct {
	accounts  account.Repository
	tx        repo.Transactor
	access    *AccessService
	publisher eventbus.EventBus
}

func NewAccountService(
	accounts account.Repository,
	tx repo.Transactor,
	access *AccessService,
	publisher eventbus.EventBus,
) *AccountService {
	return &AccountService{
		accounts:  accounts,
		tx:        tx,
		access:    access,
		publisher: publisher,
	}
}

func (s *AccountService) Create(ctx context.Context, email, displayName string) (*account.Account, error) {
	if err := s.access.RequireSuperuser(ctx); err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, serrors.Validation("EMAIL_INVALID", "a valid email is required", "email")
	}

	var created *account.Account
	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		a, err := s.accounts.Create(txCtx, account.New(email, displayName))
		if err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, mapPgError(err)
	}

	s.publisher.Publish(&AccountCreatedEvent{Result: created})
	return created, nil
}

// SetGlobalRole promotes or demotes an account's global role.
func (s *AccountService) SetGlobalRole(ctx context.Context, id uuid.UUID, role account.GlobalRole) (*account.Account, error) {
	if err := s.access.RequireSuperuser(ctx); err != nil {
		return nil, err
	}

	var updated *account.Account
	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		a, err := s.accounts.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		updated, err = s.accounts.Update(txCtx, a.SetGlobalRole(role))
		return err
	})
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, serrors.NotFound("ACCOUNT_NOT_FOUND", "account not found")
		}
		return nil, mapPgError(err)
	}
	return updated, nil
}

// Get returns an account: principals may read themselves, superusers anyone.
func (s *AccountService) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	principalID, err := composables.UsePrincipalID(ctx)
	if err != nil {
		return nil, ErrAccessDenied
	}
	if principalID != id {
		if err := s.access.RequireSuperuser(ctx); err != nil {
			return nil, err
		}
	}
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, serrors.NotFound("ACCOUNT_NOT_FOUND", "account not found")
		}
		return nil, mapPgError(err)
	}
	return a, nil
}
