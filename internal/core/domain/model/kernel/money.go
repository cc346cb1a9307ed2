package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Money is a non-negative amount expressed in minor currency units (cents).
// Keeping amounts in integers avoids floating point drift in price and
// refund arithmetic. The zero value is a valid zero amount.
type Money struct {
	amount int64
}

// NewMoney creates a Money value. Returns an error for negative amounts.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	return Money{amount: amount}, nil
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsEqual reports whether two amounts are the same.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Sub returns the difference of two amounts. Returns an error when the
// result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount - other.amount)
}

// LessThan reports whether m is strictly smaller than other.
func (m Money) LessThan(other Money) bool {
	return m.amount < other.amount
}
