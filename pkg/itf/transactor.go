package itf

import (
	"context"

	"github.com/citylingua/citylingua/pkg/repo"
)

type txMarkerKey struct{}

// memTransactor gives the in-memory store transactional semantics: the store
// is snapshotted on entry and restored wholesale when the function fails, so
// a mid-unit error leaves no partial writes behind. Nested calls join the
// outer unit, matching how the pgx transactor reuses an open transaction.
type memTransactor struct {
	store *Store
}

func NewTransactor(store *Store) repo.Transactor {
	return &memTransactor{store: store}
}

func (t *memTransactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txMarkerKey{}) != nil {
		return fn(ctx)
	}
	snap := t.store.snapshot()
	if err := fn(context.WithValue(ctx, txMarkerKey{}, true)); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}
