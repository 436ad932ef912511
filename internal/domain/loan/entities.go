package loan

import (
	"errors"
	"math"
	"math/bits"
	"time"
)

// RateScale is the fixed-point denominator for interest rates:
// a stored rate of 100_000_000 reads as 10%.
const RateScale = 1_000_000_000

var (
	ErrInvalidParameters = errors.New("invalid loan parameters")
	ErrNotFound          = errors.New("loan not found")
	ErrAlreadyTaken      = errors.New("loan already taken")
	ErrUnauthorized      = errors.New("caller is not the borrower")
	ErrAlreadyRepaid     = errors.New("loan already repaid")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Loan is a single offer/loan record. BorrowerID stays empty until the
// offer is taken; Principal only ever grows (late fee), never shrinks.
// Rows are never deleted — a repaid loan is a historical record.
type Loan struct {
	ID             uint64     `gorm:"primaryKey;column:id" json:"-"`
	LoanID         string     `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	LenderID       string     `gorm:"size:32;index:idx_loans_lender" json:"lender_id"`
	BorrowerID     string     `gorm:"size:32;index:idx_loans_borrower" json:"borrower_id,omitempty"`
	Principal      uint64     `gorm:"column:principal" json:"principal"`
	Rate           uint64     `gorm:"column:rate" json:"rate"`
	DueDate        time.Time  `gorm:"column:due_date" json:"due_date"`
	TakenAt        *time.Time `gorm:"column:taken_at" json:"taken_at,omitempty"`
	Repaid         bool       `gorm:"column:repaid;default:false" json:"repaid"`
	LateFeeApplied bool       `gorm:"column:late_fee_applied;default:false" json:"late_fee_applied"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Taken reports whether the offer has been claimed by a borrower.
func (l *Loan) Taken() bool { return l.BorrowerID != "" }

// Interest is floor(Principal * Rate / RateScale), computed through a
// 128-bit intermediate so Principal*Rate cannot wrap. The quotient fits
// in uint64 for every loan admitted by DueFits.
func (l *Loan) Interest() uint64 {
	hi, lo := bits.Mul64(l.Principal, l.Rate)
	q, _ := bits.Div64(hi, lo, RateScale)
	return q
}

// AmountDue is the settlement total: principal plus accrued interest.
func (l *Loan) AmountDue() uint64 { return l.Principal + l.Interest() }

// DueFits reports whether a loan at this principal and rate keeps its
// amount due representable in uint64, with headroom for the one-time
// late fee raising the principal by a tenth. Offers failing this check
// are never persisted.
func DueFits(principal, rate uint64) bool {
	p := principal + principal/10
	if p < principal {
		return false
	}
	hi, lo := bits.Mul64(p, rate)
	if hi >= RateScale {
		return false
	}
	i, _ := bits.Div64(hi, lo, RateScale)
	return i <= math.MaxUint64-p
}
