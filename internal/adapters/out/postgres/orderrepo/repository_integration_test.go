package orderrepo_test

import (
	"context"
	"testing"

	"github.com/ca-ayumi/fast-food-order-service/internal/adapters/out/postgres/orderrepo"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"
	"github.com/ca-ayumi/fast-food-order-service/internal/testsupport"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite runs the repository against a migrated postgres container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *testsupport.Postgres
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker

	clientID kernel.UUID
	burgerID kernel.UUID
	friesID  kernel.UUID
}

func TestOrderRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	suite.pg = testsupport.SetupPostgres(context.Background(), suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.pg.Terminate(context.Background(), suite.T())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.pg.Truncate(suite.T())

	suite.clientID = testsupport.SeedClient(suite.T(), suite.pg.DB, "ana")
	suite.burgerID = testsupport.SeedProduct(suite.T(), suite.pg.DB, "X-Burger", "Lanches", decimal.RequireFromString("12.50"))
	suite.friesID = testsupport.SeedProduct(suite.T(), suite.pg.DB, "Fries", "Acompanhamento", decimal.RequireFromString("7.00"))

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.pg.DB, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder() *order.Order {
	burger, err := order.NewLineItem(suite.burgerID, "X-Burger", decimal.RequireFromString("12.50"))
	suite.Require().NoError(err)
	fries, err := order.NewLineItem(suite.friesID, "Fries", decimal.RequireFromString("7.00"))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), suite.clientID, []order.LineItem{burger, fries}, decimal.RequireFromString("19.50"))
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsOrderAndItems() {
	ctx := suite.T().Context()
	o := suite.newOrder()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Equal(1, o.Version())
	suite.False(o.CreatedAt().IsZero())

	var items int64
	suite.Require().NoError(suite.pg.DB.Table("order_items").Where("order_id = ?", o.ID().String()).Count(&items).Error)
	suite.Equal(int64(2), items)
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnknownClientFails() {
	burger, err := order.NewLineItem(suite.burgerID, "X-Burger", decimal.NewFromInt(10))
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{burger}, decimal.NewFromInt(10))
	suite.Require().NoError(err)

	err = suite.repository.Add(suite.T().Context(), o)

	suite.Require().Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RestoresLineItemsInOrder() {
	ctx := suite.T().Context()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(o))
	suite.Equal(order.Received, loaded.Status())
	suite.Equal("19.5", loaded.TotalAmount().String())
	suite.Require().Len(loaded.LineItems(), 2)
	suite.Equal("X-Burger", loaded.LineItems()[0].Name())
	suite.Equal("Fries", loaded.LineItems()[1].Name())
	suite.False(loaded.HasPaymentReference())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := suite.T().Context()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.AttachPaymentReference("qr-abc"))
	suite.Require().NoError(o.ChangeStatus(order.Preparing, nil))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	suite.Equal(2, o.Version())
	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, loaded.Status())
	suite.Equal("qr-abc", loaded.PaymentReference())
	suite.Equal(2, loaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionConflicts() {
	ctx := suite.T().Context()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.ChangeStatus(order.Preparing, nil))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.ChangeStatus(order.Cancelled, nil))
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	o := suite.newOrder()

	err := suite.repository.Update(suite.T().Context(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByStatuses_OldestFirst() {
	ctx := suite.T().Context()
	first, second, third := suite.newOrder(), suite.newOrder(), suite.newOrder()
	for _, o := range []*order.Order{first, second, third} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	suite.Require().NoError(third.ChangeStatus(order.Completed, nil))
	suite.Require().NoError(suite.repository.Update(ctx, third))

	active, err := suite.repository.GetByStatuses(ctx, order.ActiveStatuses())

	suite.Require().NoError(err)
	suite.Require().Len(active, 2)
	suite.True(active[0].IsEqual(first))
	suite.True(active[1].IsEqual(second))

	completed, err := suite.repository.GetByStatuses(ctx, []order.Status{order.Completed})
	suite.Require().NoError(err)
	suite.Require().Len(completed, 1)
	suite.Len(completed[0].LineItems(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByStatuses_EmptyFilter() {
	orders, err := suite.repository.GetByStatuses(suite.T().Context(), nil)

	suite.Require().NoError(err)
	suite.Empty(orders)
}
