package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/notification"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/ports"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"
)

// DeliveryPolicy bounds production notification attempts.
type DeliveryPolicy struct {
	// Timeout bounds a single notifier call.
	Timeout time.Duration

	// RetryDelay is how long a pending notification waits before the dispatcher
	// may pick it up, both after creation and after a failed attempt.
	RetryDelay time.Duration

	// MaxAttempts marks a notification FAILED once reached.
	MaxAttempts int
}

func (p DeliveryPolicy) Validate() error {
	if p.Timeout <= 0 {
		return errs.NewValueIsOutOfRangeError("delivery timeout", p.Timeout, "1ns", "unbounded")
	}
	if p.RetryDelay < p.Timeout {
		return errs.NewValueIsOutOfRangeError("delivery retry delay", p.RetryDelay, p.Timeout, "unbounded")
	}
	if p.MaxAttempts <= 0 {
		return errs.NewValueIsOutOfRangeError("delivery max attempts", p.MaxAttempts, 1, "unbounded")
	}
	return nil
}

// productionDelivery makes one notifier call and records the outcome on the outbox row.
type productionDelivery struct {
	notifier ports.ProductionNotifier
	policy   DeliveryPolicy
	logger   *slog.Logger
}

// deliver returns the notifier error. Bookkeeping failures are only logged: the
// row stays PENDING and the dispatcher delivers it again.
func (d productionDelivery) deliver(
	ctx context.Context,
	outbox ports.NotificationOutbox,
	n *notification.ProductionNotification,
) error {
	sendCtx, cancel := context.WithTimeout(ctx, d.policy.Timeout)
	sendErr := d.notifier.NotifyPreparing(sendCtx, n.OrderID())
	cancel()

	now := time.Now().UTC()
	var markErr error
	if sendErr == nil {
		markErr = n.MarkSent(now)
	} else {
		d.logger.WarnContext(ctx, "Production notification failed",
			"order_id", n.OrderID().String(), "attempt", n.Attempts()+1, "error", sendErr)
		markErr = n.RecordFailure(sendErr, d.policy.MaxAttempts, now.Add(d.policy.RetryDelay))
		if markErr == nil && n.Status() == notification.Failed {
			d.logger.ErrorContext(ctx, "Production notification abandoned",
				"order_id", n.OrderID().String(), "attempts", n.Attempts())
		}
	}

	if markErr == nil {
		markErr = outbox.Update(ctx, n)
	}
	switch {
	case errors.Is(markErr, notification.ErrNotificationIsClosed):
		d.logger.InfoContext(ctx, "Production notification already closed by another attempt",
			"notification_id", n.ID().String())
	case markErr != nil:
		d.logger.ErrorContext(ctx, "Failed to record production notification outcome",
			"notification_id", n.ID().String(), "error", markErr)
	}

	return sendErr
}
