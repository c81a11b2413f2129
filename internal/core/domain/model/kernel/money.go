package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for every amount.
const MoneyScale = 2

var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or MoneyFromString")

// Money is a non-negative fixed-point amount. All arithmetic is exact decimal
// arithmetic, never floating point.
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// ZeroMoney returns a constructed amount of 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// NewMoney validates that amount is non-negative and has at most MoneyScale fractional digits.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money is invalid", fmt.Errorf("%s is negative", amount.String()))
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money is invalid", fmt.Errorf("%s has more than %d fractional digits", amount.String(), MoneyScale))
	}

	return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromString parses a decimal literal such as "10.00".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money is invalid", err)
	}
	return NewMoney(amount)
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Decimal exposes the amount for persistence and serialization.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// Multiply returns the amount times a non-negative quantity.
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), guard: guard.NewConstructorGuard()}, nil
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly MoneyScale fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
