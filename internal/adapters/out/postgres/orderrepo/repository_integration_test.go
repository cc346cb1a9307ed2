package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

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

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(orderNumber string) *order.Order {
	price, err := kernel.NewMoney(5000)
	suite.Require().NoError(err)
	snapshot, err := order.NewPackageSnapshot(
		"Logo design", "Three concepts", price, 5, 2, []string{"source files"})
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		orderNumber,
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		snapshot,
		order.Stripe,
		[]order.Requirement{{Question: "Brand name?", Answer: "Acme", Kind: order.RequirementText}},
		time.Now().UTC().Truncate(time.Millisecond),
		nil,
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	aggregate := suite.newOrder("TH584631270001")

	err := suite.repository.Add(ctx, aggregate)
	suite.Require().NoError(err)

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(aggregate))
	suite.Equal("TH584631270001", loaded.OrderNumber())
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(1, loaded.Version())
	suite.Equal(order.PaymentPending, loaded.Payment().Status())
	suite.Equal(2, loaded.Revisions().Quota())
	suite.Len(loaded.Requirements(), 1)
	suite.Equal("Acme", loaded.Requirements()[0].Answer)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateOrderNumber_Fails() {
	ctx := context.Background()
	first := suite.newOrder("TH584631270002")
	second := suite.newOrder("TH584631270002")

	suite.Require().NoError(suite.repository.Add(ctx, first))

	err := suite.repository.Add(ctx, second)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrValueIsNotUnique)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsSubState() {
	ctx := context.Background()
	aggregate := suite.newOrder("TH584631270003")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	now := time.Now().UTC().Truncate(time.Millisecond)
	actor := loaded.SellerID()
	suite.Require().NoError(loaded.MarkPaymentPaid("txn_42", now))
	suite.Require().NoError(loaded.Transition(order.Accepted, actor, now))
	suite.Require().NoError(loaded.Transition(order.InProgress, actor, now))
	suite.Require().NoError(loaded.AddDeliverable(order.DeliverableLink, "https://files/v1.zip", now))
	suite.Require().NoError(loaded.AddMessage(loaded.BuyerID(), "looking good", nil, now))

	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, reloaded.Status())
	suite.Equal(2, reloaded.Version())
	suite.Equal(order.Paid, reloaded.Payment().Status())
	suite.Equal("txn_42", reloaded.Payment().TransactionID())
	suite.Require().NotNil(reloaded.AcceptedAt())
	suite.Require().NotNil(reloaded.StartedAt())
	suite.Len(reloaded.Deliverables(), 1)

	// 2 system messages plus 1 user message
	suite.Equal(3, reloaded.Messages().Len())
	messages := reloaded.Messages().Messages()
	suite.True(messages[0].IsSystemMessage())
	suite.Equal("looking good", messages[2].Text())
	suite.False(messages[2].IsSystemMessage())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_Conflict() {
	ctx := context.Background()
	aggregate := suite.newOrder("TH584631270004")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	first, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	now := time.Now().UTC()
	suite.Require().NoError(first.Transition(order.Accepted, first.SellerID(), now))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Transition(order.Cancelled, second.BuyerID(), now))
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)

	reloaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, reloaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsDisputeAndReview() {
	ctx := context.Background()
	aggregate := suite.newOrder("TH584631270005")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	now := time.Now().UTC().Truncate(time.Millisecond)
	actor := loaded.SellerID()
	suite.Require().NoError(loaded.MarkPaymentPaid("txn_43", now))
	suite.Require().NoError(loaded.Transition(order.Accepted, actor, now))
	suite.Require().NoError(loaded.Transition(order.InProgress, actor, now))
	suite.Require().NoError(loaded.Transition(order.Delivered, actor, now))
	suite.Require().NoError(loaded.OpenDispute(loaded.BuyerID(), "quality", "not as described", now))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Disputed, reloaded.Status())
	suite.Require().NotNil(reloaded.Dispute())
	suite.Equal("quality", reloaded.Dispute().Reason())
	suite.False(reloaded.Dispute().IsResolved())

	arbiter := kernel.NewUUID()
	suite.Require().NoError(reloaded.ResolveDispute("seller keeps payment", arbiter, now))
	suite.Require().NoError(reloaded.Transition(order.Completed, arbiter, now))
	suite.Require().NoError(reloaded.LeaveReview(4, "resolved fairly", now))
	suite.Require().NoError(suite.repository.Update(ctx, reloaded))

	final, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Completed, final.Status())
	suite.Require().NotNil(final.Dispute())
	suite.True(final.Dispute().IsResolved())
	suite.Require().NotNil(final.Review())
	suite.Equal(4, final.Review().Rating())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber() {
	ctx := context.Background()
	aggregate := suite.newOrder("TH584631270006")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.GetByNumber(ctx, "TH584631270006")
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(aggregate))

	_, err = suite.repository.GetByNumber(ctx, "TH999999990000")
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetOverdue() {
	ctx := context.Background()

	price, err := kernel.NewMoney(5000)
	suite.Require().NoError(err)
	snapshot, err := order.NewPackageSnapshot("Logo design", "", price, 5, 2, nil)
	suite.Require().NoError(err)

	past := time.Now().UTC().Add(-time.Hour)
	overdue, err := order.NewOrder(
		kernel.NewUUID(), "TH584631270007",
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		snapshot, order.Stripe, nil,
		time.Now().UTC().AddDate(0, 0, -10), &past)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, overdue))

	onTime := suite.newOrder("TH584631270008")
	suite.Require().NoError(suite.repository.Add(ctx, onTime))

	cancelled, err := order.NewOrder(
		kernel.NewUUID(), "TH584631270009",
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		snapshot, order.Stripe, nil,
		time.Now().UTC().AddDate(0, 0, -10), &past)
	suite.Require().NoError(err)
	suite.Require().NoError(cancelled.Transition(order.Cancelled, cancelled.BuyerID(), time.Now().UTC()))
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	orders, err := suite.repository.GetOverdue(ctx, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.True(orders[0].IsEqual(overdue))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountActive() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("TH584631270010")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("TH584631270011")))

	cancelled := suite.newOrder("TH584631270012")
	suite.Require().NoError(cancelled.Transition(order.Cancelled, cancelled.BuyerID(), time.Now().UTC()))
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	count, err := suite.repository.CountActive(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
