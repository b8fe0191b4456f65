package order

import (
	"fmt"

	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places kept for money.
const AmountScale = 2

// MaxAmount is the largest total an order can carry (NUMERIC(10,2)).
var MaxAmount = decimal.RequireFromString("99999999.99")

// ValidateAmount accepts positive amounts with at most two decimal places up to
// MaxAmount, so the value stored is the value charged.
func ValidateAmount(name string, amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is not greater than 0", amount))
	case !amount.Equal(amount.Truncate(AmountScale)):
		return errs.NewValueIsInvalidErrorWithCause(name,
			fmt.Errorf("%s has more than %d decimal places", amount, AmountScale))
	case amount.GreaterThan(MaxAmount):
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s exceeds %s", amount, MaxAmount))
	}
	return nil
}
