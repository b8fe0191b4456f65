package ports

import (
	"context"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its line items.
	// The store assigns createdAt/updatedAt and version 1, reflected on the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and payment reference changes.
	// It is guarded by the aggregate version: when another writer updated the row first,
	// an errs.VersionIsInvalidError is returned and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its line items.
	// Returns errs.ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByStatuses returns order aggregates whose status is in statuses, oldest first.
	// It is the write-side lookup; HTTP listings go through the query handlers,
	// which read client and live product data in the same statement.
	GetByStatuses(ctx context.Context, statuses []order.Status) ([]*order.Order, error)
}
