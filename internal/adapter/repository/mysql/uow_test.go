package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	loanDomain "peerlend-backend/internal/domain/loan"
	enforceruc "peerlend-backend/internal/usecase/enforcer"
	loanuc "peerlend-backend/internal/usecase/loan"
	"peerlend-backend/pkg/id"
)

// Full lifecycle against real repositories and the gorm UoW: the pool
// balance must equal the summed principal of taken, unrepaid loans at
// every step.
func TestUoW_LoanLifecycleConservation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tx := NewGormUoW(db)
	loans := NewLoanRepository(db)
	pool := NewPoolRepository(db)
	reps := NewReputationRepository(db)

	now := time.Now().UTC()
	uc := loanuc.NewUsecase(loans, tx, nil).WithClock(func() time.Time { return now })

	lender := id.NewID32()
	borrower := id.NewID32()

	created, err := uc.Create(ctx, loanuc.CreateLoanInput{
		LenderID: lender,
		Amount:   1000,
		Rate:     100_000_000, // 10%
		DueDate:  now.Add(1000 * time.Second),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if bal, _ := pool.Balance(ctx); bal != 0 {
		t.Fatalf("balance after create = %d, want 0", bal)
	}

	taken, err := uc.Take(ctx, loanuc.TakeLoanInput{BorrowerID: borrower, LoanID: created.LoanID, Funds: 1000})
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if taken.BorrowerID != borrower {
		t.Fatalf("borrower = %q", taken.BorrowerID)
	}
	if bal, _ := pool.Balance(ctx); bal != 1000 {
		t.Fatalf("balance after take = %d, want 1000", bal)
	}

	// second taker loses
	if _, err := uc.Take(ctx, loanuc.TakeLoanInput{BorrowerID: id.NewID32(), LoanID: created.LoanID, Funds: 1000}); !errors.Is(err, loanDomain.ErrAlreadyTaken) {
		t.Fatalf("second take err = %v, want ErrAlreadyTaken", err)
	}

	// lender may not repay
	if _, err := uc.Repay(ctx, loanuc.RepayLoanInput{BorrowerID: lender, LoanID: created.LoanID, Funds: 1100}); !errors.Is(err, loanDomain.ErrUnauthorized) {
		t.Fatalf("lender repay err = %v, want ErrUnauthorized", err)
	}

	rec, err := uc.Repay(ctx, loanuc.RepayLoanInput{BorrowerID: borrower, LoanID: created.LoanID, Funds: 1100})
	if err != nil {
		t.Fatalf("Repay: %v", err)
	}
	if rec.AmountDue != 1100 {
		t.Fatalf("amount due = %d, want 1100", rec.AmountDue)
	}
	if bal, _ := pool.Balance(ctx); bal != 0 {
		t.Fatalf("balance after repay = %d, want 0", bal)
	}

	rep, err := reps.GetByUserID(ctx, borrower)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if rep.Stars != 1 {
		t.Fatalf("borrower stars = %d, want 1", rep.Stars)
	}

	// repay-once
	if _, err := uc.Repay(ctx, loanuc.RepayLoanInput{BorrowerID: borrower, LoanID: created.LoanID, Funds: 1100}); !errors.Is(err, loanDomain.ErrAlreadyRepaid) {
		t.Fatalf("second repay err = %v, want ErrAlreadyRepaid", err)
	}
	// repaid loans never return to the shelf
	avail, err := loans.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(avail) != 0 {
		t.Fatalf("repaid loan re-offered: %+v", avail)
	}
}

// Overdue sweep against the real store: fee once, penalty once, and the
// grown principal settles at the grown amount due.
func TestUoW_SweepThenRepay(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tx := NewGormUoW(db)
	loans := NewLoanRepository(db)
	pool := NewPoolRepository(db)
	reps := NewReputationRepository(db)

	start := time.Now().UTC()
	clock := start
	nowFn := func() time.Time { return clock }

	uc := loanuc.NewUsecase(loans, tx, nil).WithClock(nowFn)
	sweeper := enforceruc.NewUsecase(tx).WithClock(nowFn)

	lender := id.NewID32()
	borrower := id.NewID32()

	created, err := uc.Create(ctx, loanuc.CreateLoanInput{
		LenderID: lender,
		Amount:   1000,
		Rate:     100_000_000,
		DueDate:  start.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := uc.Take(ctx, loanuc.TakeLoanInput{BorrowerID: borrower, LoanID: created.LoanID, Funds: 1000}); err != nil {
		t.Fatalf("Take: %v", err)
	}

	// past due
	clock = start.Add(2 * time.Minute)
	res, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if res.Penalized != 1 {
		t.Fatalf("penalized = %d, want 1", res.Penalized)
	}

	got, err := loans.GetByLoanID(ctx, created.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.Principal != 1100 {
		t.Fatalf("principal after fee = %d, want 1100", got.Principal)
	}
	if bal, _ := pool.Balance(ctx); bal != 1100 {
		t.Fatalf("balance after fee = %d, want 1100", bal)
	}
	rep, err := reps.GetByUserID(ctx, borrower)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if rep.Stars != 0 {
		t.Fatalf("stars = %d, want 0 (floored)", rep.Stars)
	}

	// second sweep without the clock moving: nothing changes
	res, err = sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("second Sweep: %v", err)
	}
	if res.Penalized != 0 {
		t.Fatalf("second sweep penalized = %d, want 0", res.Penalized)
	}
	got, _ = loans.GetByLoanID(ctx, created.LoanID)
	if got.Principal != 1100 {
		t.Fatalf("second sweep compounded the fee: %d", got.Principal)
	}

	// settle at the grown amount: 1100 + 10% = 1210
	rec, err := uc.Repay(ctx, loanuc.RepayLoanInput{BorrowerID: borrower, LoanID: created.LoanID, Funds: 1210})
	if err != nil {
		t.Fatalf("Repay: %v", err)
	}
	if rec.AmountDue != 1210 {
		t.Fatalf("amount due = %d, want 1210", rec.AmountDue)
	}
	if bal, _ := pool.Balance(ctx); bal != 0 {
		t.Fatalf("balance after repay = %d, want 0", bal)
	}
}

// A failing step inside the transaction must leave no partial effects.
func TestUoW_RollbackOnFailure(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tx := NewGormUoW(db)
	loans := NewLoanRepository(db)
	pool := NewPoolRepository(db)

	now := time.Now().UTC()
	uc := loanuc.NewUsecase(loans, tx, nil).WithClock(func() time.Time { return now })

	created, err := uc.Create(ctx, loanuc.CreateLoanInput{
		LenderID: id.NewID32(),
		Amount:   1000,
		Rate:     0,
		DueDate:  now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// short funds: the take aborts before any mutation commits
	if _, err := uc.Take(ctx, loanuc.TakeLoanInput{BorrowerID: id.NewID32(), LoanID: created.LoanID, Funds: 1}); !errors.Is(err, loanDomain.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	got, err := loans.GetByLoanID(ctx, created.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.Taken() {
		t.Fatalf("failed take must not set borrower: %+v", got)
	}
	if bal, _ := pool.Balance(ctx); bal != 0 {
		t.Fatalf("failed take must not move funds, balance = %d", bal)
	}
}
