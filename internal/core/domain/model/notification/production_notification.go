// Package notification models the outbox entry that tells the kitchen production
// system an order entered preparation.
//
// A notification is written in the same transaction as the PREPARING status change
// and delivered afterwards, either right away by the status update or later by the
// dispatcher job. Delivery is at least once.
package notification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"
)

var (
	// ErrNotificationIsNotConstructed is returned for zero-value notifications.
	ErrNotificationIsNotConstructed = errors.New("ProductionNotification must be created via NewProductionNotification")

	// ErrNotificationIsClosed is returned when delivery is recorded on a SENT or FAILED notification.
	ErrNotificationIsClosed = errors.New("notification is already closed")
)

type Status string

const (
	Pending Status = "PENDING"
	Sent    Status = "SENT"
	Failed  Status = "FAILED"
)

// ParseStatus accepts the stored status labels exactly.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case Pending, Sent, Failed:
		return st, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("notification status", fmt.Errorf("%q is not a known status", s))
	}
}

func (s Status) String() string {
	return string(s)
}

// ProductionNotification is a pending "order is being prepared" message.
type ProductionNotification struct {
	id      kernel.UUID
	orderID kernel.UUID
	status  Status

	attempts  int
	lastError string

	// availableAt is the earliest time the dispatcher may pick the notification up
	availableAt time.Time
	createdAt   time.Time
	sentAt      *time.Time

	isConstructed bool
}

// NewProductionNotification creates a PENDING notification for orderID.
// availableAt holds the dispatcher back while the request path makes its own attempt.
func NewProductionNotification(orderID kernel.UUID, createdAt, availableAt time.Time) (*ProductionNotification, error) {
	if err := orderID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	if availableAt.Before(createdAt) {
		availableAt = createdAt
	}

	return &ProductionNotification{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		status:        Pending,
		availableAt:   availableAt,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// State is the persisted form used by RestoreProductionNotification.
type State struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	Status      Status
	Attempts    int
	LastError   string
	AvailableAt time.Time
	CreatedAt   time.Time
	SentAt      *time.Time
}

func RestoreProductionNotification(state State) (*ProductionNotification, error) {
	var errList []error
	if err := state.ID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := state.OrderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("order id", err))
	}
	if _, err := ParseStatus(state.Status.String()); err != nil {
		errList = append(errList, err)
	}
	if state.Attempts < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("attempts", state.Attempts, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &ProductionNotification{
		id:            state.ID,
		orderID:       state.OrderID,
		status:        state.Status,
		attempts:      state.Attempts,
		lastError:     state.LastError,
		availableAt:   state.AvailableAt,
		createdAt:     state.CreatedAt,
		sentAt:        state.SentAt,
		isConstructed: true,
	}, nil
}

func (n *ProductionNotification) ID() kernel.UUID        { return n.id }
func (n *ProductionNotification) OrderID() kernel.UUID   { return n.orderID }
func (n *ProductionNotification) Status() Status         { return n.status }
func (n *ProductionNotification) Attempts() int          { return n.attempts }
func (n *ProductionNotification) LastError() string      { return n.lastError }
func (n *ProductionNotification) AvailableAt() time.Time { return n.availableAt }
func (n *ProductionNotification) CreatedAt() time.Time   { return n.createdAt }
func (n *ProductionNotification) SentAt() *time.Time     { return n.sentAt }

func (n *ProductionNotification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// MarkSent closes the notification as delivered.
func (n *ProductionNotification) MarkSent(at time.Time) error {
	if n.status != Pending {
		return fmt.Errorf("%w: %s is %s", ErrNotificationIsClosed, n.id, n.status)
	}

	n.attempts++
	n.status = Sent
	n.lastError = ""
	n.sentAt = &at
	return nil
}

// RecordFailure counts a failed delivery. Once maxAttempts is reached the notification
// becomes FAILED, otherwise it is rescheduled at retryAt.
func (n *ProductionNotification) RecordFailure(cause error, maxAttempts int, retryAt time.Time) error {
	if n.status != Pending {
		return fmt.Errorf("%w: %s is %s", ErrNotificationIsClosed, n.id, n.status)
	}
	if maxAttempts <= 0 {
		return errs.NewValueIsOutOfRangeError("max attempts", maxAttempts, 1, "unbounded")
	}

	n.attempts++
	if cause != nil {
		n.lastError = strings.TrimSpace(cause.Error())
	}
	if n.attempts >= maxAttempts {
		n.status = Failed
		return nil
	}
	n.availableAt = retryAt
	return nil
}
