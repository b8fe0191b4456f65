// Package commands contains the write side of the order lifecycle engine.
// Every command is built through a validating constructor and executed by a
// handler that owns its unit of work.
package commands

import (
	"context"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/ports"
)

// Unit of Work interfaces, declared per need so handlers only see the
// repositories they use.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	NotificationOutboxFactory interface {
		NotificationOutbox() ports.NotificationOutbox
	}

	// OrderUoW is used by order creation, which writes only the order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OutboxUoW is used by the notification dispatcher.
	OutboxUoW interface {
		TxManager
		NotificationOutboxFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// UoW spans the order and its production notification, so a PREPARING
	// status and the outbox row commit together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.OrderRepository().Update(ctx, o)
	//   err = uow.NotificationOutbox().Add(ctx, n)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		NotificationOutboxFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
