package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/core/domain/entities/account"
	"github.com/citylingua/citylingua/modules/core/infrastructure/persistence/models"
	"github.com/citylingua/citylingua/pkg/composables"
)

const accountFindQuery = `SELECT id, email, display_name, global_role, created_at, updated_at FROM accounts`

type AccountRepository struct{}

func NewAccountRepository() account.Repository {
	return &AccountRepository{}
}

func (r *AccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]*account.Account, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying accounts")
	}
	defer rows.Close()

	accounts := make([]*account.Account, 0)
	for rows.Next() {
		var dbAccount models.Account
		if err := rows.Scan(
			&dbAccount.ID,
			&dbAccount.Email,
			&dbAccount.DisplayName,
			&dbAccount.GlobalRole,
			&dbAccount.CreatedAt,
			&dbAccount.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scanning account")
		}
		domainAccount, err := toDomainAccount(&dbAccount)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, domainAccount)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	accounts, err := r.queryAccounts(ctx, accountFindQuery+" WHERE id = $1", id.String())
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, account.ErrAccountNotFound
	}
	return accounts[0], nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	accounts, err := r.queryAccounts(ctx, accountFindQuery+" WHERE email = $1", email)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, account.ErrAccountNotFound
	}
	return accounts[0], nil
}

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) (*account.Account, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO accounts (id, email, display_name, global_role, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID().String(),
		a.Email(),
		a.DisplayName(),
		string(a.GlobalRole()),
		a.CreatedAt(),
		a.UpdatedAt(),
	); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, a.ID())
}

func (r *AccountRepository) Update(ctx context.Context, a *account.Account) (*account.Account, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		`UPDATE accounts SET email = $1, display_name = $2, global_role = $3, updated_at = $4 WHERE id = $5`,
		a.Email(),
		a.DisplayName(),
		string(a.GlobalRole()),
		a.UpdatedAt(),
		a.ID().String(),
	); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, a.ID())
}
