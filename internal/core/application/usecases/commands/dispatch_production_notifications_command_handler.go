package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/ports"
)

// DispatchResult counts the outcomes of one dispatch run.
type DispatchResult struct {
	Sent   int
	Failed int
}

// DispatchProductionNotificationsCommandHandler delivers pending outbox rows, oldest first.
//
// Rows are read and updated in one transaction; the outbox locks them so two
// dispatchers never deliver the same row concurrently.
type DispatchProductionNotificationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	delivery   productionDelivery
	logger     *slog.Logger
}

func NewDispatchProductionNotificationsCommandHandler(
	uowFactory OutboxUoWFactory,
	notifier ports.ProductionNotifier,
	policy DeliveryPolicy,
	logger *slog.Logger,
) DispatchProductionNotificationsCommandHandler {
	logger = logger.With("component", "dispatch_production_notifications_handler")
	return DispatchProductionNotificationsCommandHandler{
		uowFactory: uowFactory,
		delivery:   productionDelivery{notifier: notifier, policy: policy, logger: logger},
		logger:     logger,
	}
}

func (h *DispatchProductionNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchProductionNotificationsCommand,
) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.NotificationOutbox()
	pending, err := outbox.GetPending(ctx, time.Now().UTC(), cmd.BatchSize())
	if err != nil {
		return DispatchResult{}, err
	}

	var result DispatchResult
	for _, n := range pending {
		if err = h.delivery.deliver(ctx, outbox, n); err != nil {
			result.Failed++
			continue
		}
		result.Sent++
	}

	if err = uow.Commit(ctx); err != nil {
		return DispatchResult{}, err
	}

	if len(pending) > 0 {
		h.logger.InfoContext(ctx, "Production notifications dispatched",
			"sent", result.Sent, "failed", result.Failed)
	}

	return result, nil
}
