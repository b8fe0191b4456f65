package queries

import (
	"context"
	"fmt"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrdersByStatusQueryHandler reads orders straight from the database, oldest first.
type GetOrdersByStatusQueryHandler struct {
	reader orderReader
}

func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{reader: orderReader{db: db}}
}

// Handle returns ErrNoOrdersFound when nothing matches, so callers can tell an
// empty queue from a failed read (ErrOrdersQueryFailed).
func (h GetOrdersByStatusQueryHandler) Handle(ctx context.Context, query GetOrdersByStatusQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	views, err := h.reader.load(ctx, "o.status IN ?", order.StatusStrings(query.Statuses()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOrdersQueryFailed, err)
	}
	if len(views) == 0 {
		return nil, fmt.Errorf("%w: status in %v", ErrNoOrdersFound, order.StatusStrings(query.Statuses()))
	}

	return views, nil
}
