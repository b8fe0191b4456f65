package commands

import (
	"errors"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"
)

// Failure kinds of the order lifecycle. Handlers wrap them with %w, so callers
// match with errors.Is.
var (
	ErrClientNotFound         = errors.New("client not found")
	ErrProductsNotFound       = errors.New("products not found")
	ErrOrderNotFound          = order.ErrOrderNotFound
	ErrInvalidStatus          = order.ErrInvalidStatus
	ErrInvalidTransition      = order.ErrInvalidTransition
	ErrOrderPersistenceFailed = errors.New("could not create order")
	ErrOrderUpdateFailed      = errors.New("could not update order")
	ErrPaymentFailed          = errors.New("payment failed")
)
