package queries

import (
	"errors"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"
)

var (
	ErrOrderNotFound     = order.ErrOrderNotFound
	ErrInvalidStatus     = order.ErrInvalidStatus
	ErrNoOrdersFound     = errors.New("no orders found")
	ErrOrdersQueryFailed = errors.New("could not query orders")
)
