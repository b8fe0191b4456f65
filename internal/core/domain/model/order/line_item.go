package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LineItem is an immutable snapshot of a product taken when the order is created.
// Later catalog changes never alter it, so the amount sent to payment is reproducible.
type LineItem struct {
	productID kernel.UUID
	name      string
	unitPrice decimal.Decimal
}

// NewLineItem validates and builds a snapshot.
// The product id must be valid, the name non-blank and the unit price non-negative.
func NewLineItem(productID kernel.UUID, name string, unitPrice decimal.Decimal) (LineItem, error) {
	var errList []error
	if err := productID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("line item name"))
	}
	if unitPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"unit price", fmt.Errorf("%s is negative", unitPrice)))
	}
	if err := errors.Join(errList...); err != nil {
		return LineItem{}, err
	}

	return LineItem{productID: productID, name: name, unitPrice: unitPrice}, nil
}

// ProductID returns the identifier of the product the snapshot was taken from.
func (l LineItem) ProductID() kernel.UUID {
	return l.productID
}

// Name returns the product name at creation time.
func (l LineItem) Name() string {
	return l.name
}

// UnitPrice returns the product price at creation time.
func (l LineItem) UnitPrice() decimal.Decimal {
	return l.unitPrice
}
