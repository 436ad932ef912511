package poolmock

import (
	"context"
	"sync"

	domain "peerlend-backend/internal/domain/pool"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is an in-memory pool account. Unlike the other mocks it carries
// real balance state, because most tests assert on conservation rather
// than on call shapes. Function fields, when set, take precedence.
type Repo struct {
	mu  sync.Mutex
	bal uint64

	BalanceFn  func(ctx context.Context) (uint64, error)
	DepositFn  func(ctx context.Context, amount uint64) error
	WithdrawFn func(ctx context.Context, amount uint64) error
}

func (m *Repo) Balance(ctx context.Context) (uint64, error) {
	if m.BalanceFn != nil {
		return m.BalanceFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bal, nil
}

func (m *Repo) Deposit(ctx context.Context, amount uint64) error {
	if m.DepositFn != nil {
		return m.DepositFn(ctx, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bal += amount
	return nil
}

func (m *Repo) Withdraw(ctx context.Context, amount uint64) error {
	if m.WithdrawFn != nil {
		return m.WithdrawFn(ctx, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bal < amount {
		return domain.ErrInsufficientBalance
	}
	m.bal -= amount
	return nil
}
