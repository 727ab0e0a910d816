package kernel

import (
	"fmt"

	"montarota/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultPlatformFee is the flat per-delivery charge used when a fee is not configured or not set.
var DefaultPlatformFee = MustMoney("4.50")

// Money is a non-negative amount in the platform currency, kept at cent precision.
type Money struct {
	amount decimal.Decimal
}

// NewMoney rejects negative amounts and rounds to two decimal places.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", amount))
	}
	return Money{amount: amount.Round(2)}, nil
}

// MoneyFromString parses amounts such as "4.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// MustMoney panics on invalid input and is meant for constants.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns an amount of 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times multiplies the amount by a count, e.g. number of stops on a route.
func (m Money) Times(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// OrDefault returns fallback when the amount is zero.
func (m Money) OrDefault(fallback Money) Money {
	if m.IsZero() {
		return fallback
	}
	return m
}

// String renders the amount with exactly two decimals.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
