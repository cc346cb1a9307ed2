package postgres_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction behavior of the GORM
// unit of work against a real PostgreSQL instance.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
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
	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(orderNumber string) *order.Order {
	price, err := kernel.NewMoney(5000)
	suite.Require().NoError(err)
	snapshot, err := order.NewPackageSnapshot("Logo design", "", price, 5, 2, nil)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), orderNumber,
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		snapshot, order.Stripe, nil, time.Now().UTC(), nil)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) orderCount() int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	return count
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_Create() {
	uow := suite.factory.Create()
	suite.Require().NotNil(uow)
	suite.Require().NotNil(uow.OrderRepository())

	// Each Create returns an isolated instance.
	other := suite.factory.Create()
	suite.NotSame(uow, other)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder("TH584631270101")))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(int64(1), suite.orderCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder("TH584631270102")))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(0), suite.orderCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	// Begin is idempotent within one unit of work.
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestWithoutTransaction_WritesDirectly() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder("TH584631270103")))

	suite.Equal(int64(1), suite.orderCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAggregateTracking() {
	ctx := context.Background()
	uow := suite.factory.Create().(*postgres.GormUnitOfWork)
	aggregate := suite.newOrder("TH584631270104")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	tracked := uow.GetTrackedAggregates()
	suite.Require().Len(tracked, 1)
	suite.True(tracked[0].ID.IsEqual(aggregate.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderLifecycleWorkflow() {
	ctx := context.Background()

	var orderID kernel.UUID
	{
		uow := suite.factory.Create()
		suite.Require().NoError(uow.Begin(ctx))
		aggregate := suite.newOrder("TH584631270105")
		orderID = aggregate.ID()
		suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
		suite.Require().NoError(uow.Commit(ctx))
	}

	{
		uow := suite.factory.Create()
		suite.Require().NoError(uow.Begin(ctx))
		repo := uow.OrderRepository()
		aggregate, err := repo.Get(ctx, orderID)
		suite.Require().NoError(err)

		now := time.Now().UTC()
		suite.Require().NoError(aggregate.MarkPaymentPaid("txn_105", now))
		suite.Require().NoError(aggregate.Transition(order.Accepted, aggregate.SellerID(), now))
		suite.Require().NoError(repo.Update(ctx, aggregate))
		suite.Require().NoError(uow.Commit(ctx))
	}

	final := suite.factory.Create()
	loaded, err := final.OrderRepository().Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, loaded.Status())
	suite.Equal(2, loaded.Version())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
