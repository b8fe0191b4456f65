package ports

import (
	"context"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/client"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/product"
)

// ClientStore is the read-only view of the customer registry.
type ClientStore interface {
	// Get returns errs.ObjectNotFoundError when no client has the id.
	Get(ctx context.Context, id kernel.UUID) (*client.Client, error)
}

// ProductStore is the read-only view of the catalog.
type ProductStore interface {
	// FindByIDs returns the products that exist among ids. Missing ids are not an error;
	// callers compare cardinalities. Result order is unspecified.
	FindByIDs(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error)
}
