package loan

import (
	"math"
	"testing"
)

func TestInterest_FixedPointFloor(t *testing.T) {
	cases := []struct {
		name      string
		principal uint64
		rate      uint64
		want      uint64
	}{
		{"ten percent", 1000, 100_000_000, 100},
		{"zero rate", 1000, 0, 0},
		{"floors fractional interest", 3, 100_000_000, 0}, // 0.3 → 0
		{"one unit at small rate", 1_000_000_000, 1, 1},
		{"sub-unit at small rate", 999_999_999, 1, 0},
		{"large principal no overflow", 50_000_000_000, 100_000_000, 5_000_000_000},
		{"large rate no overflow", 999_999_999, 100_000_000_000, 99_999_999_900}, // 10000%
		{"huge principal and rate", 1_000_000_000_000, 10_000_000_000, 10_000_000_000_000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := &Loan{Principal: tc.principal, Rate: tc.rate}
			if got := l.Interest(); got != tc.want {
				t.Fatalf("Interest(%d, %d) = %d, want %d", tc.principal, tc.rate, got, tc.want)
			}
			if got := l.AmountDue(); got != tc.principal+tc.want {
				t.Fatalf("AmountDue = %d, want %d", got, tc.principal+tc.want)
			}
		})
	}
}

func TestDueFits(t *testing.T) {
	cases := []struct {
		name      string
		principal uint64
		rate      uint64
		fits      bool
	}{
		{"canonical", 1000, 100_000_000, true},
		{"zero rate always fits", math.MaxUint64 / 2, 0, true},
		{"large rate fits", 999_999_999, 100_000_000_000, true},
		{"post-fee principal wraps", math.MaxUint64 - 1, 0, false},
		{"interest quotient overflows", math.MaxUint64 / 2, 10 * RateScale, false},
		{"due sum overflows", math.MaxUint64 / 2, RateScale, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DueFits(tc.principal, tc.rate); got != tc.fits {
				t.Fatalf("DueFits(%d, %d) = %v, want %v", tc.principal, tc.rate, got, tc.fits)
			}
		})
	}
}

func TestTaken(t *testing.T) {
	l := &Loan{}
	if l.Taken() {
		t.Fatal("fresh offer must not read as taken")
	}
	l.BorrowerID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	if !l.Taken() {
		t.Fatal("loan with borrower must read as taken")
	}
}
