package queries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is the read model returned by order queries.
type OrderView struct {
	ID               kernel.UUID
	Client           ClientView
	Items            []OrderItemView
	TotalAmount      decimal.Decimal
	Status           order.Status
	PaymentReference string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type ClientView struct {
	ID    kernel.UUID
	Name  string
	Email string
}

// OrderItemView pairs the snapshot taken when the order was placed with the
// product as it is in the catalog now.
type OrderItemView struct {
	ProductID kernel.UUID
	Name      string
	UnitPrice decimal.Decimal
	Product   ProductView
}

type ProductView struct {
	ID          kernel.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Category    product.Category
}

// orderReader loads OrderViews in two round trips: orders with their client,
// then the line items of all of them.
type orderReader struct {
	db *gorm.DB
}

func (r orderReader) load(ctx context.Context, where string, args ...any) ([]OrderView, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.total_amount,
			o.status,
			o.payment_reference,
			o.created_at,
			o.updated_at,
			c.id,
			c.name,
			c.email
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		WHERE `+where+`
		ORDER BY o.created_at, o.id
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var (
			view              OrderView
			orderID, clientID uuid.UUID
			status            string
			paymentReference  sql.NullString
		)
		err = rows.Scan(
			&orderID,
			&view.TotalAmount,
			&status,
			&paymentReference,
			&view.CreatedAt,
			&view.UpdatedAt,
			&clientID,
			&view.Client.Name,
			&view.Client.Email,
		)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if view.Client.ID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
			return nil, err
		}
		if view.Status, err = order.ParseStatus(status); err != nil {
			return nil, fmt.Errorf("order %s: %w", orderID, err)
		}
		view.PaymentReference = paymentReference.String

		views = append(views, view)
		ids = append(ids, orderID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(views) == 0 {
		return views, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].Items = items[views[i].ID]
	}

	return views, nil
}

func (r orderReader) loadItems(ctx context.Context, orderIDs []uuid.UUID) (map[kernel.UUID][]OrderItemView, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			i.order_id,
			i.product_id,
			i.name,
			i.unit_price,
			p.name,
			p.description,
			p.price,
			p.category
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id IN ?
		ORDER BY i.order_id, i.position
	`, orderIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[kernel.UUID][]OrderItemView, len(orderIDs))
	for rows.Next() {
		var (
			item               OrderItemView
			orderID, productID uuid.UUID
			category           string
		)
		err = rows.Scan(
			&orderID,
			&productID,
			&item.Name,
			&item.UnitPrice,
			&item.Product.Name,
			&item.Product.Description,
			&item.Product.Price,
			&category,
		)
		if err != nil {
			return nil, err
		}

		key, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		item.Product.ID = item.ProductID
		if item.Product.Category, err = product.ParseCategory(category); err != nil {
			return nil, err
		}

		items[key] = append(items[key], item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
