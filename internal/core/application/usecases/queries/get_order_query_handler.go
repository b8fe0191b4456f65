package queries

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	reader orderReader
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: orderReader{db: db}}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	views, err := h.reader.load(ctx, "o.id = ?", query.OrderID().Bytes())
	if err != nil {
		return OrderView{}, fmt.Errorf("%w: %w", ErrOrdersQueryFailed, err)
	}
	if len(views) == 0 {
		return OrderView{}, fmt.Errorf("%w: %s", ErrOrderNotFound, query.OrderID())
	}

	return views[0], nil
}
