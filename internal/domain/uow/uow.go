package uow

import (
	"context"

	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/pool"
	"peerlend-backend/internal/domain/reputation"
)

type Repos struct {
	Loans       loan.Repository
	Reputations reputation.Repository
	Pool        pool.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
