package db

import (
	"context"
	"sync"
)

// lockTransactor serializes transactional units for the in-memory store.
// Calls must not nest.
type lockTransactor struct {
	mu sync.Mutex
}

func NewLockTransactor() Transactor {
	return &lockTransactor{}
}

func (t *lockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
