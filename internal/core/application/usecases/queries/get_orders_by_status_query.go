package queries

import (
	"errors"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/guard"
)

var ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
	"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery constructor",
)

// GetOrdersByStatusQuery lists orders whose status is one of Statuses.
//
// Example:
//
//	query, err := NewGetOrdersByStatusQuery([]string{"RECEIVED", "PREPARING"})
//	if err != nil {
//	    return err // wraps ErrInvalidStatus
//	}
//	views, err := handler.Handle(ctx, query)
type GetOrdersByStatusQuery struct { //nolint:recvcheck //using for validation
	statuses []order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersByStatusQuery parses every status exactly. No statuses means the
// kitchen queue: RECEIVED, PREPARING and READY.
func NewGetOrdersByStatusQuery(statuses []string) (GetOrdersByStatusQuery, error) {
	parsed := order.ActiveStatuses()
	if len(statuses) > 0 {
		var err error
		if parsed, err = order.ParseStatuses(statuses); err != nil {
			return GetOrdersByStatusQuery{}, err
		}
	}

	return GetOrdersByStatusQuery{
		statuses: parsed,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

func (q GetOrdersByStatusQuery) Statuses() []order.Status {
	return append([]order.Status(nil), q.statuses...)
}
