package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/product"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/ports"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"
)

// CreateOrderResult is what the caller needs to show the customer a payment QR code.
type CreateOrderResult struct {
	OrderID          kernel.UUID
	PaymentReference string
}

// CreateOrderCommandHandler validates the client and products, persists the order
// and requests the payment.
//
// The order is committed before the payment call and is not rolled back when
// payment fails: it stays RECEIVED without a payment reference.
type CreateOrderCommandHandler struct {
	uowFactory     OrderUoWFactory
	clients        ports.ClientStore
	products       ports.ProductStore
	payments       ports.PaymentGateway
	paymentTimeout time.Duration
	logger         *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clients ports.ClientStore,
	products ports.ProductStore,
	payments ports.PaymentGateway,
	paymentTimeout time.Duration,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:     uowFactory,
		clients:        clients,
		products:       products,
		payments:       payments,
		paymentTimeout: paymentTimeout,
		logger:         logger.With("component", "create_order_handler"),
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	if _, err := h.clients.Get(ctx, cmd.ClientID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return CreateOrderResult{}, fmt.Errorf("%w: %s", ErrClientNotFound, cmd.ClientID())
		}
		return CreateOrderResult{}, fmt.Errorf("failed to load client %s: %w", cmd.ClientID(), err)
	}

	lineItems, err := h.snapshotProducts(ctx, cmd.ProductIDs())
	if err != nil {
		return CreateOrderResult{}, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), cmd.ClientID(), lineItems, cmd.TotalAmount())
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = h.persist(ctx, o); err != nil {
		h.logger.ErrorContext(ctx, "Order persistence failed", "order_id", o.ID().String(), "error", err)
		return CreateOrderResult{}, fmt.Errorf("%w: %w", ErrOrderPersistenceFailed, err)
	}

	reference, err := h.requestPayment(ctx, o)
	if err != nil {
		h.logger.WarnContext(ctx, "Payment request failed, order left without payment reference",
			"order_id", o.ID().String(), "error", err)
		return CreateOrderResult{}, fmt.Errorf("%w: order %s: %w", ErrPaymentFailed, o.ID(), err)
	}

	h.attachPaymentReference(ctx, o, reference)

	return CreateOrderResult{OrderID: o.ID(), PaymentReference: reference}, nil
}

// snapshotProducts resolves every id or fails with ErrProductsNotFound naming the missing ones.
func (h *CreateOrderCommandHandler) snapshotProducts(ctx context.Context, ids []kernel.UUID) ([]order.LineItem, error) {
	found, err := h.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	if len(found) != len(ids) {
		missing := product.MissingIDs(ids, found)
		return nil, fmt.Errorf("%w: %v", ErrProductsNotFound, kernel.UUIDStrings(missing))
	}

	byID := make(map[kernel.UUID]*product.Product, len(found))
	for _, p := range found {
		byID[p.ID()] = p
	}

	lineItems := make([]order.LineItem, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: [%s]", ErrProductsNotFound, id)
		}
		item, itemErr := order.NewLineItem(p.ID(), p.Name(), p.Price())
		if itemErr != nil {
			return nil, itemErr
		}
		lineItems = append(lineItems, item)
	}
	return lineItems, nil
}

func (h *CreateOrderCommandHandler) persist(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *CreateOrderCommandHandler) requestPayment(ctx context.Context, o *order.Order) (string, error) {
	payCtx, cancel := context.WithTimeout(ctx, h.paymentTimeout)
	defer cancel()

	return h.payments.RequestPayment(payCtx, ports.PaymentRequest{
		OrderID:   o.ID(),
		ClientID:  o.ClientID(),
		Amount:    o.TotalAmount(),
		LineItems: o.LineItems(),
	})
}

// attachPaymentReference stores the reference on the order. The provider already
// accepted the payment, so a failure here is logged and not returned.
func (h *CreateOrderCommandHandler) attachPaymentReference(ctx context.Context, o *order.Order, reference string) {
	if err := o.AttachPaymentReference(reference); err != nil {
		h.logger.ErrorContext(ctx, "Payment reference rejected", "order_id", o.ID().String(), "error", err)
		return
	}

	if err := h.uowFactory.Create().OrderRepository().Update(ctx, o); err != nil {
		h.logger.ErrorContext(ctx, "Failed to store payment reference",
			"order_id", o.ID().String(), "error", err)
	}
}
