package enforcer

import (
	"context"
	"time"

	domain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/uow"
)

// lateFeeDivisor: the late fee is principal/10, integer floor.
const lateFeeDivisor = 10

type Usecase struct {
	uow uow.UnitOfWork
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the injected time source.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

type SweepResult struct {
	Scanned   int `json:"scanned"`
	Penalized int `json:"penalized"`
}

// Sweep applies the late fee and the reputation penalty to every
// overdue loan that has not been penalized yet. The fee applies once
// per loan: the late_fee_applied flag excludes a loan from later
// sweeps, so re-running without time advancing is a no-op. Each loan
// settles in its own transaction. The sweep never marks a loan repaid
// and never touches the borrower's or lender's funds; the pool deposit
// below is bookkeeping that keeps the held balance equal to the summed
// principal after the fee raises it.
func (u *Usecase) Sweep(ctx context.Context) (SweepResult, error) {
	asOf := u.now()

	var overdue []domain.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		overdue, err = r.Loans.ListOverdue(ctx, asOf)
		return err
	})
	if err != nil {
		return SweepResult{}, err
	}

	res := SweepResult{Scanned: len(overdue)}
	for i := range overdue {
		err := u.uow.WithinLoanTx(ctx, overdue[i].LoanID, func(r uow.Repos, l *domain.Loan) error {
			// re-check under the row lock; a concurrent sweep or repay may have won
			if l.Repaid || l.LateFeeApplied || !l.DueDate.Before(asOf) {
				return nil
			}
			fee := l.Principal / lateFeeDivisor
			l.Principal += fee
			l.LateFeeApplied = true
			if err := r.Pool.Deposit(ctx, fee); err != nil {
				return err
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			if err := r.Reputations.Penalize(ctx, l.BorrowerID); err != nil {
				return err
			}
			res.Penalized++
			return nil
		})
		if err != nil {
			return res, err
		}
	}
	return res, nil
}
