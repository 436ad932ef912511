package loan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	domain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/pkg/id"

	"gorm.io/gorm"
)

// Publisher receives repaid-loan notifications after the settling
// transaction has committed.
type Publisher interface {
	LoanRepaid(ctx context.Context, ev RepaidEvent) error
}

type Usecase struct {
	repo   domain.Repository
	uow    uow.UnitOfWork
	events Publisher
	now    func() time.Time
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork, events Publisher) *Usecase {
	return &Usecase{
		repo:   r,
		uow:    tx,
		events: events,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the injected time source.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// Create registers a new offer. No funds move at creation.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if len(in.LenderID) != 32 {
		return nil, fmt.Errorf("%w: lender id must be 32-char hex", domain.ErrInvalidParameters)
	}
	if in.Amount == 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidParameters)
	}
	if !in.DueDate.After(u.now()) {
		return nil, fmt.Errorf("%w: due date must be in the future", domain.ErrInvalidParameters)
	}
	if !domain.DueFits(in.Amount, in.Rate) {
		return nil, fmt.Errorf("%w: rate too high for this principal", domain.ErrInvalidParameters)
	}

	l := &domain.Loan{
		LoanID:    id.NewID32(),
		LenderID:  in.LenderID,
		Principal: in.Amount,
		Rate:      in.Rate,
		DueDate:   in.DueDate.UTC(),
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// ListAvailable runs a fresh query per call, so the sequence is finite
// and restartable.
func (u *Usecase) ListAvailable(ctx context.Context) ([]LoanDTO, error) {
	ls, err := u.repo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(ls), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// Take claims an open offer. Exactly one caller can ever win the
// borrower slot; the loan row is locked for the whole transaction.
// Funds policy is exact-amount: short funds are ErrInsufficientFunds,
// excess is rejected as ErrInvalidParameters rather than refunded.
func (u *Usecase) Take(ctx context.Context, in TakeLoanInput) (*LoanDTO, error) {
	if len(in.BorrowerID) != 32 {
		return nil, fmt.Errorf("%w: borrower id must be 32-char hex", domain.ErrInvalidParameters)
	}

	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Taken() {
			return domain.ErrAlreadyTaken
		}
		if in.Funds < l.Principal {
			return fmt.Errorf("%w: supplied %d, principal is %d", domain.ErrInsufficientFunds, in.Funds, l.Principal)
		}
		if in.Funds > l.Principal {
			return fmt.Errorf("%w: supplied %d, loan requires exactly %d", domain.ErrInvalidParameters, in.Funds, l.Principal)
		}

		takenAt := u.now()
		l.BorrowerID = in.BorrowerID
		l.TakenAt = &takenAt
		if err := r.Pool.Deposit(ctx, l.Principal); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Repay settles a taken loan: the interest slice of the borrower's
// payment enters the pool and the full amount due leaves to the lender
// in the same transaction, so the pool nets out the held principal.
// Only the borrower may repay, and only once.
func (u *Usecase) Repay(ctx context.Context, in RepayLoanInput) (*ReceiptDTO, error) {
	var (
		rec *ReceiptDTO
		ev  RepaidEvent
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if !l.Taken() || l.BorrowerID != in.BorrowerID {
			return domain.ErrUnauthorized
		}
		if l.Repaid {
			return domain.ErrAlreadyRepaid
		}

		due := l.AmountDue()
		if in.Funds < due {
			return fmt.Errorf("%w: supplied %d, amount due is %d", domain.ErrInsufficientFunds, in.Funds, due)
		}
		if in.Funds > due {
			return fmt.Errorf("%w: supplied %d, settlement requires exactly %d", domain.ErrInvalidParameters, in.Funds, due)
		}

		if err := r.Pool.Deposit(ctx, l.Interest()); err != nil {
			return err
		}
		if err := r.Pool.Withdraw(ctx, due); err != nil {
			return err
		}
		l.Repaid = true
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := r.Reputations.AddStar(ctx, l.BorrowerID); err != nil {
			return err
		}

		rec = &ReceiptDTO{
			LoanID:     l.LoanID,
			LenderID:   l.LenderID,
			BorrowerID: l.BorrowerID,
			AmountDue:  due,
			RepaidAt:   u.now(),
		}
		ev = RepaidEvent{LoanID: l.LoanID, LenderID: l.LenderID, BorrowerID: l.BorrowerID, Amount: due}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if u.events != nil {
		if err := u.events.LoanRepaid(ctx, ev); err != nil {
			log.Printf("loan %s: repaid event publish failed: %v", ev.LoanID, err)
		}
	}
	return rec, nil
}

// UserLoans partitions every loan where userID is a stakeholder. A
// self-loan (same lender and borrower) lands in the given buckets only,
// keeping the four lists disjoint.
func (u *Usecase) UserLoans(ctx context.Context, userID string) (*UserLoansDTO, error) {
	ls, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &UserLoansDTO{
		GivenUnpaid: []LoanDTO{},
		GivenPaid:   []LoanDTO{},
		TakenUnpaid: []LoanDTO{},
		TakenPaid:   []LoanDTO{},
	}
	for i := range ls {
		l := &ls[i]
		switch {
		case l.LenderID == userID && l.Repaid:
			out.GivenPaid = append(out.GivenPaid, *toDTO(l))
		case l.LenderID == userID:
			out.GivenUnpaid = append(out.GivenUnpaid, *toDTO(l))
		case l.Repaid:
			out.TakenPaid = append(out.TakenPaid, *toDTO(l))
		default:
			out.TakenUnpaid = append(out.TakenUnpaid, *toDTO(l))
		}
	}
	return out, nil
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:     l.LoanID,
		LenderID:   l.LenderID,
		BorrowerID: l.BorrowerID,
		Principal:  l.Principal,
		Rate:       l.Rate,
		DueDate:    l.DueDate,
		TakenAt:    l.TakenAt,
		Repaid:     l.Repaid,
		CreatedAt:  l.CreatedAt,
	}
}

func toDTOs(ls []domain.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toDTO(&ls[i]))
	}
	return out
}
