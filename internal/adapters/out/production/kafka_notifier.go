package production

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

var producerTracer = otel.Tracer("production/kafka")

// messageWriter is the part of *kafka.Writer the notifier needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes {orderId} keyed by order id, with the trace context in headers.
type KafkaNotifier struct {
	writer  messageWriter
	topic   string
	counter counter
}

func NewKafkaNotifier(brokers []string, topic string) (*KafkaNotifier, error) {
	return newKafkaNotifier(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireAll,
	}, topic)
}

func newKafkaNotifier(writer messageWriter, topic string) (*KafkaNotifier, error) {
	c, err := newCounter("kafka")
	if err != nil {
		return nil, err
	}
	return &KafkaNotifier{writer: writer, topic: topic, counter: c}, nil
}

func (n *KafkaNotifier) NotifyPreparing(ctx context.Context, orderID kernel.UUID) error {
	err := n.publish(ctx, orderID)
	n.counter.record(ctx, err)
	return err
}

func (n *KafkaNotifier) publish(ctx context.Context, orderID kernel.UUID) error {
	data, err := json.Marshal(preparingMessage{OrderID: orderID.String()})
	if err != nil {
		return err
	}

	key := orderID.String()
	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	ctx, span := producerTracer.Start(ctx, "send "+n.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("send"),
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(n.topic),
			semconv.MessagingKafkaMessageKey(key),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, newMessageCarrier(&msg))

	if err = n.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// messageCarrier adapts kafka headers to propagation.TextMapCarrier.
type messageCarrier struct {
	msg *kafka.Message
}

func newMessageCarrier(msg *kafka.Message) *messageCarrier {
	return &messageCarrier{msg: msg}
}

func (c *messageCarrier) Get(key string) string {
	for _, h := range c.msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *messageCarrier) Set(key, value string) {
	for i, h := range c.msg.Headers {
		if h.Key == key {
			c.msg.Headers[i].Value = []byte(value)
			return
		}
	}
	c.msg.Headers = append(c.msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c *messageCarrier) Keys() []string {
	keys := make([]string, len(c.msg.Headers))
	for i, h := range c.msg.Headers {
		keys[i] = h.Key
	}
	return keys
}
