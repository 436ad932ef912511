package loan

import "time"

type CreateLoanInput struct {
	LenderID string
	Amount   uint64
	Rate     uint64 // fixed point, loan.RateScale
	DueDate  time.Time
}

type TakeLoanInput struct {
	BorrowerID string
	LoanID     string
	Funds      uint64
}

type RepayLoanInput struct {
	BorrowerID string
	LoanID     string
	Funds      uint64
}

type LoanDTO struct {
	LoanID     string     `json:"loan_id"`
	LenderID   string     `json:"lender_id"`
	BorrowerID string     `json:"borrower_id,omitempty"`
	Principal  uint64     `json:"principal"`
	Rate       uint64     `json:"rate"`
	DueDate    time.Time  `json:"due_date"`
	TakenAt    *time.Time `json:"taken_at,omitempty"`
	Repaid     bool       `json:"repaid"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ReceiptDTO is the settlement record returned by Repay.
type ReceiptDTO struct {
	LoanID     string    `json:"loan_id"`
	LenderID   string    `json:"lender_id"`
	BorrowerID string    `json:"borrower_id"`
	AmountDue  uint64    `json:"amount_due"`
	RepaidAt   time.Time `json:"repaid_at"`
}

// UserLoansDTO partitions a user's loans into four disjoint lists.
type UserLoansDTO struct {
	GivenUnpaid []LoanDTO `json:"given_unpaid"`
	GivenPaid   []LoanDTO `json:"given_paid"`
	TakenUnpaid []LoanDTO `json:"taken_unpaid"`
	TakenPaid   []LoanDTO `json:"taken_paid"`
}

// RepaidEvent is the side-channel notification published after a
// repayment commits.
type RepaidEvent struct {
	LoanID     string `json:"loan_id"`
	LenderID   string `json:"lender_id"`
	BorrowerID string `json:"borrower_id"`
	Amount     uint64 `json:"amount"`
}
