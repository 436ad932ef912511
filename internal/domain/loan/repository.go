package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row for the enclosing transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// ListAvailable returns every offer whose borrower is still unset.
	ListAvailable(ctx context.Context) ([]Loan, error)
	// ListByUser returns every loan where userID is lender or borrower.
	ListByUser(ctx context.Context, userID string) ([]Loan, error)
	// ListOverdue returns taken, unrepaid loans past due as of asOf that
	// have not had the late fee applied yet.
	ListOverdue(ctx context.Context, asOf time.Time) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
}
