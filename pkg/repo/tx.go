package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Tx is the subset of pgx.Tx repositories rely on. Both pgx.Tx and
// *pgxpool.Pool satisfy it, so repository code is agnostic to whether it
// runs inside an explicit transaction.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Transactor runs a function inside a single atomic unit. The pgx-backed
// implementation opens one database transaction per call and rolls the whole
// unit back on the first error; the in-memory implementation used in tests
// restores a snapshot instead. Either way the caller observes all-or-nothing
// semantics: Received -> (Denied before any call) -> InTransaction ->
// Committed or RolledBack.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
