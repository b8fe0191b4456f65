package ports

import (
	"context"
	"time"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/notification"
)

// NotificationOutbox stores production notifications until they are delivered.
type NotificationOutbox interface {
	Add(ctx context.Context, n *notification.ProductionNotification) error

	// Update persists delivery bookkeeping: status, attempts, last error and schedule.
	// It fails with notification.ErrNotificationIsClosed when the stored row is
	// no longer PENDING, leaving that row unchanged.
	Update(ctx context.Context, n *notification.ProductionNotification) error

	// GetPending returns up to limit PENDING notifications available at now, oldest first.
	GetPending(ctx context.Context, now time.Time, limit int) ([]*notification.ProductionNotification, error)
}
