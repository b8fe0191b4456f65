// Package production delivers "order entered preparation" notifications to the
// kitchen production system, over HTTP or through a Kafka topic.
package production

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const maxErrorBody = 512

type preparingMessage struct {
	OrderID string `json:"orderId"`
}

// counter records notifications by transport and outcome.
type counter struct {
	delivered metric.Int64Counter
	transport string
}

func newCounter(transport string) (counter, error) {
	delivered, err := otel.Meter("production").Int64Counter("production_notifications_total",
		metric.WithDescription("Production notifications delivered, by transport and outcome"))
	if err != nil {
		return counter{}, fmt.Errorf("failed to create production counter: %w", err)
	}
	return counter{delivered: delivered, transport: transport}, nil
}

func (c counter) record(ctx context.Context, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	c.delivered.Add(ctx, 1, metric.WithAttributes(
		attribute.String("transport", c.transport),
		attribute.String("outcome", outcome),
	))
}

// HTTPNotifier posts {orderId} to {baseURL}/production. Any 2xx is success.
type HTTPNotifier struct {
	baseURL string
	client  *http.Client
	counter counter
}

func NewHTTPNotifier(baseURL string, client *http.Client) (*HTTPNotifier, error) {
	c, err := newCounter("http")
	if err != nil {
		return nil, err
	}
	return &HTTPNotifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		counter: c,
	}, nil
}

func (n *HTTPNotifier) NotifyPreparing(ctx context.Context, orderID kernel.UUID) error {
	err := n.notify(ctx, orderID)
	n.counter.record(ctx, err)
	return err
}

func (n *HTTPNotifier) notify(ctx context.Context, orderID kernel.UUID) error {
	body, err := json.Marshal(preparingMessage{OrderID: orderID.String()})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/production", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("production service unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("production service answered %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
