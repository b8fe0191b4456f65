package http

import (
	"github.com/ca-ayumi/fast-food-order-service/internal/core/application/usecases/queries"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"
	"github.com/ca-ayumi/fast-food-order-service/internal/generated/servers"
)

// orderFromDomain renders the aggregate. Client and live product records are
// only known to the read model, so they are left out.
func orderFromDomain(o *order.Order) servers.Order {
	items := make([]servers.OrderItem, 0, len(o.LineItems()))
	for _, item := range o.LineItems() {
		items = append(items, servers.OrderItem{
			ProductId: item.ProductID().Bytes(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().InexactFloat64(),
		})
	}

	return servers.Order{
		Id:               o.ID().Bytes(),
		ClientId:         o.ClientID().Bytes(),
		Status:           servers.OrderStatus(o.Status().String()),
		TotalAmount:      o.TotalAmount().InexactFloat64(),
		PaymentReference: optional(o.PaymentReference()),
		Items:            items,
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}
}

func orderFromView(v queries.OrderView) servers.Order {
	items := make([]servers.OrderItem, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, servers.OrderItem{
			ProductId: item.ProductID.Bytes(),
			Name:      item.Name,
			UnitPrice: item.UnitPrice.InexactFloat64(),
			Product: &servers.Product{
				Id:          item.Product.ID.Bytes(),
				Name:        item.Product.Name,
				Description: item.Product.Description,
				Price:       item.Product.Price.InexactFloat64(),
				Category:    servers.ProductCategory(item.Product.Category),
			},
		})
	}

	return servers.Order{
		Id:       v.ID.Bytes(),
		ClientId: v.Client.ID.Bytes(),
		Client: &servers.Client{
			Id:    v.Client.ID.Bytes(),
			Name:  v.Client.Name,
			Email: v.Client.Email,
		},
		Status:           servers.OrderStatus(v.Status.String()),
		TotalAmount:      v.TotalAmount.InexactFloat64(),
		PaymentReference: optional(v.PaymentReference),
		Items:            items,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
