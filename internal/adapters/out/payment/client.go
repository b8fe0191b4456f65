// Package payment calls the external payment provider over HTTP.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMissingReference is returned when the provider answered 2xx without a qrCode.
var ErrMissingReference = errors.New("payment response has no qrCode")

// maxErrorBody bounds how much of a failed response ends up in the error.
const maxErrorBody = 512

type paymentItem struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	UnitPrice json.Number `json:"unitPrice"`
}

type paymentRequest struct {
	OrderID  string        `json:"orderId"`
	Amount   json.Number   `json:"amount"`
	ClientID string        `json:"clientId"`
	Products []paymentItem `json:"products"`
}

type paymentResponse struct {
	QRCode string `json:"qrCode"`
}

// HTTPClient implements ports.PaymentGateway against POST {baseURL}/payments.
type HTTPClient struct {
	baseURL  string
	client   *http.Client
	requests metric.Int64Counter
}

// NewHTTPClient wraps client, which should carry an otelhttp transport and a timeout.
func NewHTTPClient(baseURL string, client *http.Client) (*HTTPClient, error) {
	requests, err := otel.Meter("payment").Int64Counter("payment_requests_total",
		metric.WithDescription("Payment requests sent to the provider, by outcome"))
	if err != nil {
		return nil, fmt.Errorf("failed to create payment counter: %w", err)
	}

	return &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   client,
		requests: requests,
	}, nil
}

// RequestPayment posts the order to the provider and returns the qrCode.
// Amounts are sent as JSON numbers in their decimal form. Order totals are
// validated to two decimal places, so the charged total is the stored one.
func (c *HTTPClient) RequestPayment(ctx context.Context, req ports.PaymentRequest) (string, error) {
	reference, err := c.requestPayment(ctx, req)

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	c.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))

	return reference, err
}

func (c *HTTPClient) requestPayment(ctx context.Context, req ports.PaymentRequest) (string, error) {
	products := make([]paymentItem, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		products = append(products, paymentItem{
			ID:        item.ProductID().String(),
			Name:      item.Name(),
			UnitPrice: json.Number(item.UnitPrice().String()),
		})
	}

	body, err := json.Marshal(paymentRequest{
		OrderID:  req.OrderID.String(),
		Amount:   json.Number(req.Amount.String()),
		ClientID: req.ClientID.String(),
		Products: products,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("payment provider unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("payment provider answered %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded paymentResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode payment response: %w", err)
	}
	if strings.TrimSpace(decoded.QRCode) == "" {
		return "", ErrMissingReference
	}

	return decoded.QRCode, nil
}
