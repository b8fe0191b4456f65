package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/notification"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/ports"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler moves an order to a new status.
//
// Entering PREPARING writes a production notification in the same transaction
// and delivers it once after commit. A failed delivery never fails the update;
// the outbox row is retried by the dispatcher job.
type UpdateOrderStatusCommandHandler struct {
	uowFactory  UoWFactory
	transitions order.Transitions
	delivery    productionDelivery
	logger      *slog.Logger
}

// NewUpdateOrderStatusCommandHandler builds the handler. A nil transitions table
// accepts any valid target status.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	transitions order.Transitions,
	notifier ports.ProductionNotifier,
	policy DeliveryPolicy,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	logger = logger.With("component", "update_order_status_handler")
	return UpdateOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		transitions: transitions,
		delivery:    productionDelivery{notifier: notifier, policy: policy, logger: logger},
		logger:      logger,
	}
}

func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, pending, err := h.apply(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if pending != nil {
		// the caller going away must not cut the notification short
		notifyCtx := context.WithoutCancel(ctx)
		_ = h.delivery.deliver(notifyCtx, h.uowFactory.Create().NotificationOutbox(), pending)
	}

	return o, nil
}

func (h *UpdateOrderStatusCommandHandler) apply(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, *notification.ProductionNotification, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrOrderUpdateFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrOrderNotFound, cmd.OrderID())
		}
		return nil, nil, fmt.Errorf("failed to load order %s: %w", cmd.OrderID(), err)
	}

	target, err := order.ParseStatus(cmd.Status())
	if err != nil {
		return nil, nil, err
	}

	previous := o.Status()
	if err = o.ChangeStatus(target, h.transitions); err != nil {
		return nil, nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrOrderUpdateFailed, err)
	}

	var pending *notification.ProductionNotification
	if target == order.Preparing {
		now := time.Now().UTC()
		pending, err = notification.NewProductionNotification(o.ID(), now, now.Add(h.delivery.policy.RetryDelay))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrOrderUpdateFailed, err)
		}
		if err = uow.NotificationOutbox().Add(ctx, pending); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrOrderUpdateFailed, err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrOrderUpdateFailed, err)
	}

	h.logger.InfoContext(ctx, "Order status changed",
		"order_id", o.ID().String(), "from", previous.String(), "to", target.String())

	return o, pending, nil
}
