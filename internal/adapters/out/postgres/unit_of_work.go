// Package postgres provides the GORM-based Unit of Work shared by the order
// repository and the production notification outbox.
//
// A status change to PREPARING writes the order and its outbox row through the
// same unit of work, so either both are committed or neither is:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.NotificationOutbox().Add(ctx, n); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance holds its own transaction and must not be shared
// between goroutines.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ca-ayumi/fast-food-order-service/internal/adapters/out/postgres/orderrepo"
	"github.com/ca-ayumi/fast-food-order-service/internal/adapters/out/postgres/outboxrepo"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances over one connection pool.
type GormUnitOfWorkFactory struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormUnitOfWorkFactory(db *gorm.DB, logger *slog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, logger: logger.With("component", "unit_of_work")}
}

// Create returns a fresh unit of work with no active transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and records every aggregate
// the repositories wrote through it. The record is logged at debug level when
// the transaction ends and then cleared.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling it twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the transaction. It fails with gorm.ErrInvalidTransaction when
// Begin was not called.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err == nil {
		uow.flushTracked(ctx, "Unit of work committed")
	}
	return err
}

// Rollback discards the transaction. Without an active transaction it does
// nothing, which lets handlers defer it right after Begin.
func (uow *GormUnitOfWork) Rollback(ctx context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.flushTracked(ctx, "Unit of work rolled back")
	return err
}

// OrderRepository is bound to the active transaction, or to the pool when none is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// NotificationOutbox is bound to the active transaction, or to the pool when none is active.
func (uow *GormUnitOfWork) NotificationOutbox() ports.NotificationOutbox {
	return outboxrepo.NewGormNotificationOutbox(uow.conn(), uow)
}

// TrackAggregate is called by repositories after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// flushTracked logs the aggregates written in the finished transaction, in
// write order, and forgets them.
func (uow *GormUnitOfWork) flushTracked(ctx context.Context, msg string) {
	if len(uow.trackedAggregates) == 0 {
		return
	}
	written := make([]string, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		written = append(written, fmt.Sprintf("%T:%s", tracked.Aggregate, tracked.ID))
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	uow.logger.DebugContext(ctx, msg, "aggregates", written)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
