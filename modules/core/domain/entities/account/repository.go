package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var ErrAccountNotFound = fmt.Errorf("account not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, a *Account) (*Account, error)
	Update(ctx context.Context, a *Account) (*Account, error)
}
