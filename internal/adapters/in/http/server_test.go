package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "github.com/ca-ayumi/fast-food-order-service/internal/adapters/in/http"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/application/usecases/commands"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/application/usecases/queries"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/product"
	"github.com/ca-ayumi/fast-food-order-service/internal/generated/servers"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CreateOrderResult), args.Error(1)
}

type MockUpdateOrderStatusHandler struct{ mock.Mock }

func (m *MockUpdateOrderStatusHandler) Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrdersByStatusHandler struct{ mock.Mock }

func (m *MockOrdersByStatusHandler) Handle(ctx context.Context, query queries.GetOrdersByStatusQuery) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.OrderView)
	return views, args.Error(1)
}

type MockOrderHandler struct{ mock.Mock }

func (m *MockOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

type serverFixture struct {
	create   *MockCreateOrderHandler
	update   *MockUpdateOrderStatusHandler
	byStatus *MockOrdersByStatusHandler
	byID     *MockOrderHandler
	echo     *echo.Echo
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	f := &serverFixture{
		create:   new(MockCreateOrderHandler),
		update:   new(MockUpdateOrderStatusHandler),
		byStatus: new(MockOrdersByStatusHandler),
		byID:     new(MockOrderHandler),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpadapter.NewServer(f.create, f.update, f.byStatus, f.byID, logger)

	doc, err := servers.GetSwagger()
	require.NoError(t, err)
	f.echo, err = httpadapter.NewRouter(server, doc, nil, logger)
	require.NoError(t, err)
	return f
}

func (f *serverFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) servers.Error {
	t.Helper()
	var body servers.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func sampleView(t *testing.T, status order.Status) queries.OrderView {
	t.Helper()
	productID := kernel.NewUUID()
	return queries.OrderView{
		ID:          kernel.NewUUID(),
		Client:      queries.ClientView{ID: kernel.NewUUID(), Name: "Ana", Email: "ana@example.com"},
		TotalAmount: decimal.RequireFromString("18.50"),
		Status:      status,
		Items: []queries.OrderItemView{{
			ProductID: productID,
			Name:      "X-Burger",
			UnitPrice: decimal.RequireFromString("12.50"),
			Product: queries.ProductView{
				ID:       productID,
				Name:     "X-Burger",
				Price:    decimal.RequireFromString("13.00"),
				Category: product.Sandwich,
			},
		}},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestHealth(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestCreateOrder_Created(t *testing.T) {
	f := newServerFixture(t)
	clientID, productID, orderID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	f.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.ClientID() == clientID && len(cmd.ProductIDs()) == 1 &&
			cmd.ProductIDs()[0] == productID && cmd.TotalAmount().String() == "18.5"
	})).Return(commands.CreateOrderResult{OrderID: orderID, PaymentReference: "qr-1"}, nil).Once()

	rec := f.do(http.MethodPost, "/orders",
		`{"clientId":"`+clientID.String()+`","productIds":["`+productID.String()+`"],"totalAmount":18.50}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var body servers.CreateOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, orderID.String(), body.OrderId.String())
	assert.Equal(t, "qr-1", body.QrCode)
	f.create.AssertExpectations(t)
}

func TestCreateOrder_RejectedBeforeHandler(t *testing.T) {
	clientID := kernel.NewUUID().String()
	productID := kernel.NewUUID().String()
	tests := []struct {
		name string
		body string
	}{
		{name: "missing client", body: `{"productIds":["` + productID + `"],"totalAmount":10}`},
		{name: "empty products", body: `{"clientId":"` + clientID + `","productIds":[],"totalAmount":10}`},
		{name: "zero total", body: `{"clientId":"` + clientID + `","productIds":["` + productID + `"],"totalAmount":0}`},
		{name: "duplicate products", body: `{"clientId":"` + clientID + `","productIds":["` + productID + `","` + productID + `"],"totalAmount":10}`},
		{name: "total with three decimals", body: `{"clientId":"` + clientID + `","productIds":["` + productID + `"],"totalAmount":12.505}`},
		{name: "total above maximum", body: `{"clientId":"` + clientID + `","productIds":["` + productID + `"],"totalAmount":100000000}`},
		{name: "malformed json", body: `{"clientId":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture(t)

			rec := f.do(http.MethodPost, "/orders", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateOrder_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "client not found", err: commands.ErrClientNotFound, code: http.StatusNotFound},
		{name: "products not found", err: commands.ErrProductsNotFound, code: http.StatusNotFound},
		{
			name:    "persistence failed",
			err:     errors.Join(commands.ErrOrderPersistenceFailed, errors.New("pq: deadlock")),
			code:    http.StatusUnprocessableEntity,
			message: "could not create order",
		},
		{
			name:    "payment failed",
			err:     errors.Join(commands.ErrPaymentFailed, context.DeadlineExceeded),
			code:    http.StatusBadGateway,
			message: "payment failed",
		},
		{name: "unexpected", err: errors.New("boom"), code: http.StatusInternalServerError, message: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture(t)
			f.create.On("Handle", mock.Anything, mock.Anything).Return(commands.CreateOrderResult{}, tt.err).Once()

			rec := f.do(http.MethodPost, "/orders",
				`{"clientId":"`+kernel.NewUUID().String()+`","productIds":["`+kernel.NewUUID().String()+`"],"totalAmount":5}`)

			require.Equal(t, tt.code, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.code, body.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Message)
			}
		})
	}
}

func TestUpdateOrderStatus_OK(t *testing.T) {
	f := newServerFixture(t)
	item, err := order.NewLineItem(kernel.NewUUID(), "Cola", decimal.RequireFromString("6"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item}, decimal.RequireFromString("6"))
	require.NoError(t, err)
	require.NoError(t, o.ChangeStatus(order.Preparing, nil))
	f.update.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateOrderStatusCommand) bool {
		return cmd.OrderID() == o.ID() && cmd.Status() == "PREPARING"
	})).Return(o, nil).Once()

	rec := f.do(http.MethodPatch, "/orders/"+o.ID().String()+"/status", `{"status":"PREPARING"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body servers.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, servers.PREPARING, body.Status)
	assert.Equal(t, o.ClientID().String(), body.ClientId.String())
	assert.Nil(t, body.Client)
	require.Len(t, body.Items, 1)
	assert.InDelta(t, 6.0, body.Items[0].UnitPrice, 0.0001)
}

func TestUpdateOrderStatus_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "not found", err: commands.ErrOrderNotFound, code: http.StatusNotFound},
		{name: "invalid status", err: commands.ErrInvalidStatus, code: http.StatusBadRequest},
		{name: "invalid transition", err: commands.ErrInvalidTransition, code: http.StatusBadRequest},
		{
			name: "version conflict",
			err:  errors.Join(commands.ErrOrderUpdateFailed, errs.NewVersionIsInvalidError("order")),
			code: http.StatusConflict,
		},
		{name: "update failed", err: commands.ErrOrderUpdateFailed, code: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture(t)
			f.update.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := f.do(http.MethodPatch, "/orders/"+kernel.NewUUID().String()+"/status", `{"status":"whatever"}`)

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestUpdateOrderStatus_MalformedID(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodPatch, "/orders/not-a-uuid/status", `{"status":"READY"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.update.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGetOrders(t *testing.T) {
	f := newServerFixture(t)
	view := sampleView(t, order.Ready)
	f.byStatus.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrdersByStatusQuery) bool {
		return assert.ObjectsAreEqual([]order.Status{order.Ready, order.Preparing}, q.Statuses())
	})).Return([]queries.OrderView{view}, nil).Once()

	rec := f.do(http.MethodGet, "/orders?status=READY&status=PREPARING", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body []servers.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, view.ID.String(), body[0].Id.String())
	require.NotNil(t, body[0].Client)
	assert.Equal(t, "Ana", body[0].Client.Name)
	require.NotNil(t, body[0].Items[0].Product)
	assert.InDelta(t, 12.5, body[0].Items[0].UnitPrice, 0.0001)
	assert.InDelta(t, 13.0, body[0].Items[0].Product.Price, 0.0001)
	assert.Equal(t, servers.Lanches, body[0].Items[0].Product.Category)
	f.byStatus.AssertExpectations(t)
}

func TestGetOrders_DefaultsToActive(t *testing.T) {
	f := newServerFixture(t)
	f.byStatus.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrdersByStatusQuery) bool {
		return assert.ObjectsAreEqual(order.ActiveStatuses(), q.Statuses())
	})).Return([]queries.OrderView{sampleView(t, order.Received)}, nil).Once()

	rec := f.do(http.MethodGet, "/orders", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	f.byStatus.AssertExpectations(t)
}

func TestGetOrders_InvalidStatus(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/orders?status=ready", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.byStatus.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGetOrders_NoneFound(t *testing.T) {
	f := newServerFixture(t)
	f.byStatus.On("Handle", mock.Anything, mock.Anything).Return(nil, queries.ErrNoOrdersFound).Once()

	rec := f.do(http.MethodGet, "/orders/status/COMPLETED", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrder(t *testing.T) {
	f := newServerFixture(t)
	view := sampleView(t, order.Received)
	view.PaymentReference = "qr-7"
	f.byID.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
		return q.OrderID() == view.ID
	})).Return(view, nil).Once()

	rec := f.do(http.MethodGet, "/orders/"+view.ID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body servers.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.PaymentReference)
	assert.Equal(t, "qr-7", *body.PaymentReference)
	assert.Equal(t, servers.RECEIVED, body.Status)
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newServerFixture(t)
	f.byID.On("Handle", mock.Anything, mock.Anything).Return(queries.OrderView{}, queries.ErrOrderNotFound).Once()

	rec := f.do(http.MethodGet, "/orders/"+kernel.NewUUID().String(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "order not found")
}
