package pool

import "context"

type Repository interface {
	// Balance reads the held balance, creating the row on first use.
	Balance(ctx context.Context) (uint64, error)
	// Deposit always succeeds (storage errors aside).
	Deposit(ctx context.Context, amount uint64) error
	// Withdraw fails with ErrInsufficientBalance when the held balance
	// cannot cover amount; the row stays locked for the enclosing
	// transaction so the check-then-decrement pair is atomic.
	Withdraw(ctx context.Context, amount uint64) error
}
