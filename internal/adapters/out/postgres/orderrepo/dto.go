// Package orderrepo persists the order aggregate and its line item snapshots with gorm.
package orderrepo

import (
	"time"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row of the orders table.
type OrderDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ClientID         uuid.UUID       `gorm:"type:uuid;not null"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status           string          `gorm:"type:varchar(16);not null"`
	PaymentReference *string
	Version          int       `gorm:"not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line item snapshot. Position keeps the request order.
type OrderItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var reference *string
	if aggregate.HasPaymentReference() {
		ref := aggregate.PaymentReference()
		reference = &ref
	}

	lineItems := aggregate.LineItems()
	items := make([]OrderItemDTO, 0, len(lineItems))
	for i, item := range lineItems {
		items = append(items, OrderItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		ClientID:         aggregate.ClientID().Bytes(),
		TotalAmount:      aggregate.TotalAmount(),
		Status:           aggregate.Status().String(),
		PaymentReference: reference,
		Version:          aggregate.Version(),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
		Items:            items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	lineItems := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, idErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := order.NewLineItem(productID, itemDTO.Name, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		lineItems = append(lineItems, item)
	}

	var reference string
	if dto.PaymentReference != nil {
		reference = *dto.PaymentReference
	}

	return order.RestoreOrder(order.State{
		ID:               id,
		ClientID:         clientID,
		LineItems:        lineItems,
		TotalAmount:      dto.TotalAmount,
		Status:           status,
		PaymentReference: reference,
		Version:          dto.Version,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	})
}
