package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderNotFound is returned when no order exists for the requested id.
	ErrOrderNotFound = errors.New("order not found")
)

// Order is the aggregate root of the lifecycle engine.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and client identifier
//   - Carries at least one line item snapshot
//   - Total amount is supplied by the caller and never recomputed from line items
//   - Status is always a member of the enumeration
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id       kernel.UUID
	clientID kernel.UUID

	// lineItems are creation-time snapshots, in request order
	lineItems []LineItem

	totalAmount decimal.Decimal
	status      Status

	// paymentReference is empty until the payment gateway accepted the payment
	paymentReference string

	// version is the optimistic concurrency counter maintained by the repository
	version int

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates an order in Received status.
//
// Example:
//
//	item, _ := order.NewLineItem(productID, "X-Burger", decimal.RequireFromString("12.50"))
//	o, err := order.NewOrder(kernel.NewUUID(), clientID, []order.LineItem{item}, decimal.RequireFromString("12.50"))
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id, clientID kernel.UUID, lineItems []LineItem, totalAmount decimal.Decimal) (*Order, error) {
	o := &Order{
		status:        Received,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setLineItems(lineItems),
		o.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// State carries the persisted fields of an order. Repositories use it with RestoreOrder.
type State struct {
	ID               kernel.UUID
	ClientID         kernel.UUID
	LineItems        []LineItem
	TotalAmount      decimal.Decimal
	Status           Status
	PaymentReference string
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RestoreOrder rebuilds an order from storage, applying the same validation as NewOrder
// plus status membership.
func RestoreOrder(state State) (*Order, error) {
	o := &Order{
		paymentReference: state.PaymentReference,
		version:          state.Version,
		createdAt:        state.CreatedAt,
		updatedAt:        state.UpdatedAt,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(state.ID),
		o.setClientID(state.ClientID),
		o.setLineItems(state.LineItems),
		o.setTotalAmount(state.TotalAmount),
		state.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = state.Status

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// LineItems returns a copy of the snapshots.
func (o *Order) LineItems() []LineItem {
	out := make([]LineItem, len(o.lineItems))
	copy(out, o.lineItems)
	return out
}

// ProductIDs returns the product identifiers of the line items, in order.
func (o *Order) ProductIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(o.lineItems))
	for _, item := range o.lineItems {
		ids = append(ids, item.ProductID())
	}
	return ids
}

func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PaymentReference() string {
	return o.paymentReference
}

// HasPaymentReference tells a paid order apart from one whose payment never succeeded.
func (o *Order) HasPaymentReference() bool {
	return o.paymentReference != ""
}

func (o *Order) Version() int {
	return o.version
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus moves the order to target if transitions allows it.
//
// The target must be a valid status. With a nil transitions table every valid
// target is accepted, including the current status.
func (o *Order) ChangeStatus(target Status, transitions Transitions) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if err := transitions.Check(o.status, target); err != nil {
		return err
	}

	o.status = target
	return nil
}

// AttachPaymentReference records the reference returned by the payment gateway.
// A reference can be attached only once.
func (o *Order) AttachPaymentReference(reference string) error {
	if strings.TrimSpace(reference) == "" {
		return errs.NewValueIsRequiredError("payment reference")
	}
	if o.paymentReference != "" {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment reference", fmt.Errorf("order %s already has a payment reference", o.id))
	}

	o.paymentReference = reference
	return nil
}

// MarkPersisted is called by repositories after a successful write to reflect
// the store-assigned version and timestamps.
func (o *Order) MarkPersisted(version int, createdAt, updatedAt time.Time) {
	o.version = version
	if !createdAt.IsZero() {
		o.createdAt = createdAt
	}
	o.updatedAt = updatedAt
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client id", err)
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setLineItems(lineItems []LineItem) error {
	if len(lineItems) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}
	for i, item := range lineItems {
		if err := item.ProductID().Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("line item %d", i), err)
		}
	}
	o.lineItems = make([]LineItem, len(lineItems))
	copy(o.lineItems, lineItems)
	return nil
}

func (o *Order) setTotalAmount(totalAmount decimal.Decimal) error {
	if err := ValidateAmount("total amount", totalAmount); err != nil {
		return err
	}
	o.totalAmount = totalAmount
	return nil
}
