package commands

import (
	"errors"
	"fmt"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrProductIDsAreRequired = errs.NewValueIsRequiredError("product ids")
	ErrTotalAmountIsInvalid  = errs.NewValueIsInvalidErrorWithCause(
		"total amount", errors.New("must be greater than 0"))
)

// CreateOrderCommand asks for a new order for a client and a set of products.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(clientID, []kernel.UUID{burgerID, colaID}, decimal.RequireFromString("18.50"))
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrPaymentFailed) {
//	    // the order exists in RECEIVED without a payment reference
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	clientID    kernel.UUID
	productIDs  []kernel.UUID
	totalAmount decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. Product ids form a set: an empty
// list or a repeated id is rejected, so the store lookup can compare sizes.
func NewCreateOrderCommand(
	clientID kernel.UUID,
	productIDs []kernel.UUID,
	totalAmount decimal.Decimal,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClientID(clientID),
		cmd.setProductIDs(productIDs),
		cmd.setTotalAmount(totalAmount),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

// ProductIDs returns a copy of the requested ids in request order.
func (c CreateOrderCommand) ProductIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.productIDs))
	copy(out, c.productIDs)
	return out
}

func (c CreateOrderCommand) TotalAmount() decimal.Decimal {
	return c.totalAmount
}

func (c *CreateOrderCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client id", err)
	}

	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setProductIDs(productIDs []kernel.UUID) error {
	if len(productIDs) == 0 {
		return ErrProductIDsAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(productIDs))
	for _, id := range productIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("product ids", err)
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("product ids", fmt.Errorf("%s is repeated", id))
		}
		seen[id] = struct{}{}
	}

	c.productIDs = make([]kernel.UUID, len(productIDs))
	copy(c.productIDs, productIDs)
	return nil
}

func (c *CreateOrderCommand) setTotalAmount(totalAmount decimal.Decimal) error {
	if !totalAmount.IsPositive() {
		return ErrTotalAmountIsInvalid
	}
	if err := order.ValidateAmount("total amount", totalAmount); err != nil {
		return err
	}

	c.totalAmount = totalAmount
	return nil
}
