// Package productrepo reads catalog products from the products table.
package productrepo

import (
	"context"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Description string
	Price       decimal.Decimal `gorm:"type:numeric(10,2)"`
	Category    string
}

func (ProductDTO) TableName() string {
	return "products"
}

// GormProductStore implements ports.ProductStore.
type GormProductStore struct {
	db *gorm.DB
}

func NewGormProductStore(db *gorm.DB) *GormProductStore {
	return &GormProductStore{db: db}
}

// FindByIDs loads the existing products among ids in a single round trip.
func (s *GormProductStore) FindByIDs(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	if len(ids) == 0 {
		return []*product.Product{}, nil
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
	}

	var dtos []ProductDTO
	err := s.db.WithContext(ctx).
		Where("id = ANY(?::uuid[])", pq.Array(kernel.UUIDStrings(ids))).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	products := make([]*product.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// ToDomain restores the product from its row. A category outside the menu fails.
func ToDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	category, err := product.ParseCategory(dto.Category)
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(id, dto.Name, dto.Description, dto.Price, category)
}
