package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories obtained from it use the transaction started by Begin; without
// an active transaction they work directly on the connection pool.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback is a no-op when no transaction is active, so it is safe to defer.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	NotificationOutbox() NotificationOutbox
}
