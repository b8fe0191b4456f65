// Package product holds the catalog entity orders are built from.
//
// Products are owned by the catalog; the order engine only reads them to check
// existence and to snapshot name and price into line items.
package product

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrProductIsNotConstructed indicates that a Product was not created through RestoreProduct.
var ErrProductIsNotConstructed = errors.New("Product must be created via RestoreProduct")

// Category groups products on the menu board.
type Category string

const (
	Sandwich      Category = "Lanches"
	SideDish      Category = "Acompanhamento"
	Drink         Category = "Bebida"
	Dessert       Category = "Sobremesa"
	unknownCategory Category = ""
)

// ParseCategory accepts the stored category labels exactly.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case Sandwich, SideDish, Drink, Dessert:
		return c, nil
	default:
		return unknownCategory, errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a known category", s))
	}
}

func (c Category) String() string {
	return string(c)
}

type Product struct {
	id          kernel.UUID
	name        string
	description string
	price       decimal.Decimal
	category    Category

	isConstructed bool
}

// RestoreProduct rebuilds a catalog product read from storage.
func RestoreProduct(id kernel.UUID, name, description string, price decimal.Decimal, category Category) (*Product, error) {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("product id", err))
	}
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("product name"))
	}
	if price.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price)))
	}
	if _, err := ParseCategory(category.String()); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Product{
		id:            id,
		name:          name,
		description:   description,
		price:         price,
		category:      category,
		isConstructed: true,
	}, nil
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Description() string {
	return p.description
}

func (p *Product) Price() decimal.Decimal {
	return p.price
}

func (p *Product) Category() Category {
	return p.category
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// MissingIDs returns the requested ids that have no product in found, preserving request order.
func MissingIDs(requested []kernel.UUID, found []*Product) []kernel.UUID {
	present := make(map[kernel.UUID]struct{}, len(found))
	for _, p := range found {
		present[p.ID()] = struct{}{}
	}

	var missing []kernel.UUID
	for _, id := range requested {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
