// Package kernel provides the shared domain primitives of the order service.
//
// The package includes:
//   - UUID: a value object for identifiers of orders, clients and products
//
// Money is represented with github.com/shopspring/decimal directly, so amounts
// are never rounded through float arithmetic inside the domain.
package kernel
