package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"engage/internal/adapters/out/postgres/orderrepo"
	"engage/internal/core/application/usecases/queries"
	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/order"
)

type ListOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	handler   queries.ListOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *ListOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.EventDTO{}, &orderrepo.RatingDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewListOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *ListOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_events, order_ratings").Error)
}

func (suite *ListOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_SplitsPartitionsAndScopes() {
	ctx := context.Background()
	now := time.Now().UTC()

	customerID := kernel.NewUUID()
	open := suite.seedOrder(customerID, now)
	cancelled := suite.seedOrder(customerID, now.Add(-time.Hour))
	suite.Require().NoError(cancelled.CancelByCustomer(customerID, "changed plans", now))
	suite.Require().NoError(suite.orderRepo.Update(ctx, cancelled))
	suite.seedOrder(kernel.NewUUID(), now) // someone else's order

	openQuery, err := queries.NewListOrdersQuery(customerID, false, 10, 0)
	suite.Require().NoError(err)
	openOrders, err := suite.handler.Handle(ctx, openQuery)
	suite.Require().NoError(err)
	suite.Require().Len(openOrders, 1)
	suite.True(openOrders[0].ID.IsEqual(open.ID()))
	suite.Equal("PENDING", openOrders[0].Status)

	closedQuery, err := queries.NewListOrdersQuery(customerID, true, 10, 0)
	suite.Require().NoError(err)
	closedOrders, err := suite.handler.Handle(ctx, closedQuery)
	suite.Require().NoError(err)
	suite.Require().Len(closedOrders, 1)
	suite.True(closedOrders[0].ID.IsEqual(cancelled.ID()))
	suite.Equal("CANCELLED_BY_CUSTOMER", closedOrders[0].Status)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_FindsSpecialistSideOrders() {
	ctx := context.Background()
	now := time.Now().UTC()

	specialistID := kernel.NewUUID()
	accepted := suite.seedOrder(kernel.NewUUID(), now)
	suite.Require().NoError(accepted.Accept(specialistID, now))
	suite.Require().NoError(suite.orderRepo.Update(ctx, accepted))

	query, err := queries.NewListOrdersQuery(specialistID, false, 10, 0)
	suite.Require().NoError(err)
	results, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(results, 1)
	suite.Equal("ASSIGNED", results[0].Status)
	suite.Require().NotNil(results[0].SpecialistID)
	suite.True(results[0].SpecialistID.IsEqual(specialistID))
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_PaginatesNewestFirst() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	customerID := kernel.NewUUID()
	oldest := suite.seedOrder(customerID, base)
	middle := suite.seedOrder(customerID, base.Add(time.Minute))
	newest := suite.seedOrder(customerID, base.Add(2*time.Minute))

	firstPage, err := queries.NewListOrdersQuery(customerID, false, 2, 0)
	suite.Require().NoError(err)
	results, err := suite.handler.Handle(ctx, firstPage)
	suite.Require().NoError(err)
	suite.Require().Len(results, 2)
	suite.True(results[0].ID.IsEqual(newest.ID()))
	suite.True(results[1].ID.IsEqual(middle.ID()))

	secondPage, err := queries.NewListOrdersQuery(customerID, false, 2, 2)
	suite.Require().NoError(err)
	results, err = suite.handler.Handle(ctx, secondPage)
	suite.Require().NoError(err)
	suite.Require().Len(results, 1)
	suite.True(results[0].ID.IsEqual(oldest.ID()))
}

func (suite *ListOrdersQueryHandlerTestSuite) seedOrder(customerID kernel.UUID, createdAt time.Time) *order.Order {
	point, err := kernel.NewGeoPoint(55.75, 37.62)
	suite.Require().NoError(err)
	address, err := kernel.NewAddress("12 Arbat St, Moscow", point, "place-arbat-12")
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), customerID,
		order.ModeHome, 3, kernel.NewUUID(),
		&address, order.NewUrgentIntent(), nil,
		createdAt,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func TestListOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListOrdersQueryHandlerTestSuite))
}
