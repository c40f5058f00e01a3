package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

var testTenant = kernel.MustTenantID("tenant-a")

// UnitOfWorkIntegrationTestSuite runs the GORM Unit of Work against PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres_adapter.Open(dsn)
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE delivery_events, delivery_items, delivery_notes, carriers").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.DeliveryNoteRepository())
	suite.NotNil(uow1.CarrierRepository())
	suite.NotNil(uow2.DeliveryNoteRepository())
	suite.NotNil(uow2.CarrierRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MultiRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testCarrier := createTestCarrier()
	testNote := createTestNote()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CarrierRepository().Add(ctx, testCarrier))
	suite.Require().NoError(uow.DeliveryNoteRepository().Add(ctx, testNote))

	suite.Require().NoError(testNote.AssignShipment(testCarrier.ID(), "TRK-1"))
	suite.Require().NoError(testNote.MarkDispatched())
	suite.Require().NoError(uow.DeliveryNoteRepository().Update(ctx, testNote))
	suite.Require().NoError(uow.Commit(ctx))

	newUow := suite.factory.Create()
	retrieved, err := newUow.DeliveryNoteRepository().Get(ctx, testNote.ID(), testTenant)
	suite.Require().NoError(err)
	suite.Equal(delivery.StatusDispatched, retrieved.Status())
	suite.Require().NotNil(retrieved.CarrierID())
	suite.True(testCarrier.ID().IsEqual(*retrieved.CarrierID()))
	suite.Len(retrieved.Events(), 2)

	_, err = newUow.CarrierRepository().Get(ctx, testCarrier.ID(), testTenant)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testCarrier := createTestCarrier()
	testNote := createTestNote()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CarrierRepository().Add(ctx, testCarrier))
	suite.Require().NoError(uow.DeliveryNoteRepository().Add(ctx, testNote))

	_, err := uow.DeliveryNoteRepository().Get(ctx, testNote.ID(), testTenant)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.DeliveryNoteRepository().Get(ctx, testNote.ID(), testTenant)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "Note should not exist after rollback")

	_, err = newUow.CarrierRepository().Get(ctx, testCarrier.ID(), testTenant)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "Carrier should not exist after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AggregateTracking() {
	ctx := context.Background()
	uow := suite.factory.(*postgres_adapter.GormUnitOfWorkFactory).CreateGorm()

	testCarrier := createTestCarrier()
	testNote := createTestNote()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CarrierRepository().Add(ctx, testCarrier))
	suite.Require().NoError(uow.DeliveryNoteRepository().Add(ctx, testNote))
	suite.Require().NoError(uow.Commit(ctx))

	ids := uow.TrackedAggregateIDs()
	suite.Require().Len(ids, 2)
	suite.True(ids[0].IsEqual(testCarrier.ID()))
	suite.True(ids[1].IsEqual(testNote.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	note1 := createTestNote()
	note2 := createTestNote()

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.DeliveryNoteRepository().Add(ctx, note1))
	suite.Require().NoError(uow2.DeliveryNoteRepository().Add(ctx, note2))

	_, err := uow1.DeliveryNoteRepository().Get(ctx, note1.ID(), testTenant)
	suite.Require().NoError(err, "UOW1 should see note1")
	_, err = uow1.DeliveryNoteRepository().Get(ctx, note2.ID(), testTenant)
	suite.Require().Error(err, "UOW1 should not see note2")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.DeliveryNoteRepository().Get(ctx, note1.ID(), testTenant)
	suite.Require().NoError(err, "note1 should persist after commit")
	_, err = newUow.DeliveryNoteRepository().Get(ctx, note2.ID(), testTenant)
	suite.Require().Error(err, "note2 should not persist after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentDispatch_SecondWriterLoses() {
	ctx := context.Background()

	testCarrier := createTestCarrier()
	testNote := createTestNote()
	seed := suite.factory.Create()
	suite.Require().NoError(seed.CarrierRepository().Add(ctx, testCarrier))
	suite.Require().NoError(seed.DeliveryNoteRepository().Add(ctx, testNote))

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	first, err := uow1.DeliveryNoteRepository().Get(ctx, testNote.ID(), testTenant)
	suite.Require().NoError(err)
	second, err := uow2.DeliveryNoteRepository().Get(ctx, testNote.ID(), testTenant)
	suite.Require().NoError(err)

	suite.Require().NoError(first.AssignShipment(testCarrier.ID(), "TRK-FIRST"))
	suite.Require().NoError(first.MarkDispatched())
	suite.Require().NoError(uow1.DeliveryNoteRepository().Update(ctx, first))
	suite.Require().NoError(uow1.Commit(ctx))

	suite.Require().NoError(second.AssignShipment(testCarrier.ID(), "TRK-SECOND"))
	err = uow2.DeliveryNoteRepository().Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrInvalidState)
	suite.Require().NoError(uow2.Rollback(ctx))

	stored, err := suite.factory.Create().DeliveryNoteRepository().Get(ctx, testNote.ID(), testTenant)
	suite.Require().NoError(err)
	suite.Equal("TRK-FIRST", stored.TrackingNumber())
	suite.Len(stored.Events(), 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testNote := createTestNote()
	suite.Require().NoError(uow.DeliveryNoteRepository().Add(ctx, testNote))

	retrieved, err := suite.factory.Create().DeliveryNoteRepository().Get(ctx, testNote.ID(), testTenant)
	suite.Require().NoError(err)
	suite.True(testNote.ID().IsEqual(retrieved.ID()))
}

func createTestNote() *delivery.Note {
	item, _ := delivery.NewItem("P-1", "Widget", decimal.NewFromInt(2), "pcs")
	note, _ := delivery.NewNote(
		kernel.NewUUID(),
		delivery.GenerateNumber(time.Now()),
		"O-1", "C-1", "A-1",
		[]*delivery.Item{item},
		testTenant,
	)
	return note
}

func createTestCarrier() *carrier.Carrier {
	c, _ := carrier.NewCarrier(
		kernel.NewUUID(),
		"DHL Express",
		"https://api.dhl.example",
		"https://track.dhl.example/{trackingNumber}",
		carrier.Credentials{APIKey: "key"},
		carrier.KindAuto,
		testTenant,
	)
	return c
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
