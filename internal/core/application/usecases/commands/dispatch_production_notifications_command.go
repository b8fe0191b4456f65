package commands

import (
	"errors"

	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/guard"
)

var ErrDispatchProductionNotificationsCommandIsNotConstructed = errors.New(
	"DispatchProductionNotificationsCommand must be created via NewDispatchProductionNotificationsCommand constructor",
)

// DispatchProductionNotificationsCommand retries up to BatchSize pending notifications.
type DispatchProductionNotificationsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewDispatchProductionNotificationsCommand(batchSize int) (DispatchProductionNotificationsCommand, error) {
	if batchSize <= 0 {
		return DispatchProductionNotificationsCommand{},
			errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}

	return DispatchProductionNotificationsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchProductionNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchProductionNotificationsCommandIsNotConstructed)
}

func (c DispatchProductionNotificationsCommand) BatchSize() int {
	return c.batchSize
}
