// Package http exposes the order lifecycle over the generated echo server interface.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/application/usecases/commands"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/application/usecases/queries"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"
	"github.com/ca-ayumi/fast-food-order-service/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
}

type UpdateOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
}

type OrdersByStatusHandler interface {
	Handle(ctx context.Context, query queries.GetOrdersByStatusQuery) ([]queries.OrderView, error)
}

type OrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
}

var _ servers.ServerInterface = (*Server)(nil)

// Server implements servers.ServerInterface on top of the command and query handlers.
type Server struct {
	// Command handlers
	createOrderHandler       CreateOrderHandler
	updateOrderStatusHandler UpdateOrderStatusHandler

	// Query handlers
	ordersByStatusHandler OrdersByStatusHandler
	orderHandler          OrderHandler

	logger *slog.Logger
}

func NewServer(
	createOrderHandler CreateOrderHandler,
	updateOrderStatusHandler UpdateOrderStatusHandler,
	ordersByStatusHandler OrdersByStatusHandler,
	orderHandler OrderHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		ordersByStatusHandler:    ordersByStatusHandler,
		orderHandler:             orderHandler,
		logger:                   logger.With("component", "http_server"),
	}
}

// CreateOrder godoc
//
//	@Summary	Create an order and request its payment
//	@Tags		Orders
//	@Accept		json
//	@Produce	json
//	@Param		order	body		servers.NewOrder	true	"Order to create"
//	@Success	201		{object}	servers.CreateOrderResponse
//	@Failure	400		{object}	servers.Error
//	@Failure	404		{object}	servers.Error	"Client or products not found"
//	@Failure	422		{object}	servers.Error
//	@Failure	502		{object}	servers.Error	"Payment provider failed"
//	@Router		/orders [post]
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	clientID, err := kernel.UUIDFromString(body.ClientId.String())
	if err != nil {
		return s.writeError(ctx, err)
	}
	productIDs := make([]kernel.UUID, 0, len(body.ProductIds))
	for _, raw := range body.ProductIds {
		id, idErr := kernel.UUIDFromString(raw.String())
		if idErr != nil {
			return s.writeError(ctx, idErr)
		}
		productIDs = append(productIDs, id)
	}

	cmd, err := commands.NewCreateOrderCommand(clientID, productIDs, body.TotalAmount)
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.CreateOrderResponse{
		OrderId: result.OrderID.Bytes(),
		QrCode:  result.PaymentReference,
	})
}

// UpdateOrderStatus godoc
//
//	@Summary	Move an order to another status
//	@Tags		Orders
//	@Accept		json
//	@Produce	json
//	@Param		orderId	path		string					true	"Order id"	format(uuid)
//	@Param		status	body		servers.StatusUpdate	true	"Target status"
//	@Success	200		{object}	servers.Order
//	@Failure	400		{object}	servers.Error
//	@Failure	404		{object}	servers.Error
//	@Failure	409		{object}	servers.Error	"Concurrent update"
//	@Failure	422		{object}	servers.Error
//	@Router		/orders/{orderId}/status [patch]
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.UpdateOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	id, err := kernel.UUIDFromString(orderID.String())
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(id, body.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(updated))
}

// GetOrders godoc
//
//	@Summary	List orders by status, oldest first
//	@Tags		Orders
//	@Produce	json
//	@Param		status	query		[]string	false	"Status filter, defaults to the active statuses"	collectionFormat(multi)
//	@Success	200		{array}		servers.Order
//	@Failure	400		{object}	servers.Error
//	@Failure	404		{object}	servers.Error	"No matching orders"
//	@Router		/orders [get]
func (s *Server) GetOrders(ctx echo.Context, params servers.GetOrdersParams) error {
	var statuses []string
	if params.Status != nil {
		statuses = *params.Status
	}
	return s.listOrders(ctx, statuses)
}

// GetOrdersByStatus godoc
//
//	@Summary	List orders in one status, oldest first
//	@Tags		Orders
//	@Produce	json
//	@Param		status	path		string	true	"Order status"
//	@Success	200		{array}		servers.Order
//	@Failure	400		{object}	servers.Error
//	@Failure	404		{object}	servers.Error	"No matching orders"
//	@Router		/orders/status/{status} [get]
func (s *Server) GetOrdersByStatus(ctx echo.Context, status string) error {
	return s.listOrders(ctx, []string{status})
}

func (s *Server) listOrders(ctx echo.Context, statuses []string) error {
	query, err := queries.NewGetOrdersByStatusQuery(statuses)
	if err != nil {
		return s.writeError(ctx, err)
	}

	views, err := s.ordersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]servers.Order, len(views))
	for i, view := range views {
		response[i] = orderFromView(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder godoc
//
//	@Summary	Get an order
//	@Tags		Orders
//	@Produce	json
//	@Param		orderId	path		string	true	"Order id"	format(uuid)
//	@Success	200		{object}	servers.Order
//	@Failure	400		{object}	servers.Error
//	@Failure	404		{object}	servers.Error
//	@Router		/orders/{orderId} [get]
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromString(orderID.String())
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	view, err := s.orderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromView(view))
}
