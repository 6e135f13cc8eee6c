package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for the
// order repository using PostgreSQL containers.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	item1, err := order.NewItem("Margherita", 2, 1250)
	suite.Require().NoError(err)
	item2, err := order.NewItem("Garlic knots", 1, 499)
	suite.Require().NoError(err)

	location, err := kernel.NewGeoPoint(40.7128, -74.0060)
	suite.Require().NoError(err)
	address, err := order.NewAddress("350 5th Ave", location)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "+15550100",
		[]order.Item{item1, item2}, address, "CARD", 299,
		"ring the bell twice", time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)

	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(restored.ID().IsEqual(testOrder.ID()))
	suite.Equal(order.Placed, restored.Status())
	suite.Equal(testOrder.CustomerContact(), restored.CustomerContact())
	suite.Equal(testOrder.TotalAmount(), restored.TotalAmount())
	suite.Len(restored.Items(), 2)
	suite.Equal("Margherita", restored.Items()[0].Name())
	suite.Equal(testOrder.Address().Street(), restored.Address().Street())
	suite.Nil(restored.Driver())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusAndDriverSurviveRoundTrip() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	_, err := testOrder.AttemptTransition(order.Accepted, order.RoleRestaurant)
	suite.Require().NoError(err)
	_, err = testOrder.AttemptTransition(order.Preparing, order.RoleRestaurant)
	suite.Require().NoError(err)
	_, err = testOrder.AttemptTransition(order.ReadyForPickup, order.RoleRestaurant)
	suite.Require().NoError(err)

	driverID := kernel.NewUUID()
	suite.Require().NoError(testOrder.AssignDriver(driverID))

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.ReadyForPickup, restored.Status())
	suite.Require().NotNil(restored.Driver())
	suite.True(restored.Driver().IsEqual(driverID))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder_ReturnsNotFound() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	err := suite.repository.Update(ctx, testOrder)
	suite.Require().Error(err)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_MissingOrder_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByDriver_ReturnsOnlyThatDriversOrders() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	mine := make([]*order.Order, 0, 2)
	for range 2 {
		testOrder := suite.createTestOrder()
		suite.walkToReadyForPickup(testOrder)
		suite.Require().NoError(testOrder.AssignDriver(driverID))
		suite.Require().NoError(suite.repository.Add(ctx, testOrder))
		mine = append(mine, testOrder)
	}

	other := suite.createTestOrder()
	suite.walkToReadyForPickup(other)
	suite.Require().NoError(other.AssignDriver(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	unassigned := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, unassigned))

	orders, err := suite.repository.GetAllByDriver(ctx, driverID)
	suite.Require().NoError(err)
	suite.Len(orders, len(mine))
	for _, o := range orders {
		suite.Require().NotNil(o.Driver())
		suite.True(o.Driver().IsEqual(driverID))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) walkToReadyForPickup(testOrder *order.Order) {
	for _, target := range []order.Status{order.Accepted, order.Preparing, order.ReadyForPickup} {
		_, err := testOrder.AttemptTransition(target, order.RoleRestaurant)
		suite.Require().NoError(err)
	}
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
