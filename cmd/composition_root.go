package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	httpin "github.com/ca-ayumi/fast-food-order-service/internal/adapters/in/http"
	"github.com/ca-ayumi/fast-food-order-service/internal/adapters/out/payment"
	"github.com/ca-ayumi/fast-food-order-service/internal/adapters/out/postgres"
	"github.com/ca-ayumi/fast-food-order-service/internal/adapters/out/postgres/clientrepo"
	"github.com/ca-ayumi/fast-food-order-service/internal/adapters/out/postgres/productrepo"
	"github.com/ca-ayumi/fast-food-order-service/internal/adapters/out/production"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/application/usecases/commands"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/application/usecases/queries"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/ports"
	"github.com/ca-ayumi/fast-food-order-service/internal/jobs"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs     Config
	gormDB      *gorm.DB
	uowFactory  ports.UnitOfWorkFactory
	transitions order.Transitions
	payments    ports.PaymentGateway
	notifier    ports.ProductionNotifier
	logger      *slog.Logger

	closers []io.Closer
}

// NewCompositionRoot wires the outbound adapters. Close releases the ones
// holding connections (the kafka writer).
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	transitions, err := LoadTransitions(configs.OrderTransitionsFile)
	if err != nil {
		return nil, err
	}

	payments, err := payment.NewHTTPClient(configs.PaymentServiceURL, newTracedClient(configs.PaymentTimeout))
	if err != nil {
		return nil, fmt.Errorf("payment client: %w", err)
	}

	c := &CompositionRoot{
		configs:     configs,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		transitions: transitions,
		payments:    payments,
		logger:      logger,
	}

	switch configs.ProductionNotifier {
	case NotifierKafka:
		notifier, kafkaErr := production.NewKafkaNotifier(configs.KafkaBrokers, configs.KafkaProductionTopic)
		if kafkaErr != nil {
			return nil, fmt.Errorf("kafka production notifier: %w", kafkaErr)
		}
		c.notifier = notifier
		c.closers = append(c.closers, notifier)
	default:
		notifier, httpErr := production.NewHTTPNotifier(configs.ProductionServiceURL, newTracedClient(configs.ProductionTimeout))
		if httpErr != nil {
			return nil, fmt.Errorf("http production notifier: %w", httpErr)
		}
		c.notifier = notifier
	}

	return c, nil
}

func (c *CompositionRoot) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateOrderCommandHandler(
		f,
		clientrepo.NewGormClientStore(c.gormDB),
		productrepo.NewGormProductStore(c.gormDB),
		c.payments,
		c.configs.PaymentTimeout,
		c.logger,
	)
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() *commands.UpdateOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	h := commands.NewUpdateOrderStatusCommandHandler(f, c.transitions, c.notifier, c.configs.DeliveryPolicy(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateDispatchProductionNotificationsCommandHandler() *commands.DispatchProductionNotificationsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewDispatchProductionNotificationsCommandHandler(f, c.notifier, c.configs.DeliveryPolicy(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateGetOrdersByStatusQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	job := jobs.NewProductionNotificationJob(
		c.CreateDispatchProductionNotificationsCommandHandler(),
		c.configs.NotificationDispatchSchedule,
		c.configs.NotificationBatchSize,
		c.logger,
	)
	return jobs.NewJobManager(job)
}

func newTracedClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
