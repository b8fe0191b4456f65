package ports

import (
	"context"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// PaymentRequest is what the payment provider needs to issue a charge.
type PaymentRequest struct {
	OrderID   kernel.UUID
	ClientID  kernel.UUID
	Amount    decimal.Decimal
	LineItems []order.LineItem
}

// PaymentGateway talks to the external payment provider.
type PaymentGateway interface {
	// RequestPayment returns the provider reference (a QR code payload).
	// Any transport failure, non-2xx answer or missing reference is an error.
	RequestPayment(ctx context.Context, req PaymentRequest) (string, error)
}

// ProductionNotifier tells the kitchen production system an order entered preparation.
type ProductionNotifier interface {
	NotifyPreparing(ctx context.Context, orderID kernel.UUID) error
}
