package carrierrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/carrierrepo"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

var (
	tenantA = kernel.MustTenantID("tenant-a")
	tenantB = kernel.MustTenantID("tenant-b")
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type CarrierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *carrierrepo.GormCarrierRepository
	tracker    *MockAggregateTracker
}

func (suite *CarrierRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := postgres_adapter.Open(connStr)
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&carrierrepo.CarrierDTO{}))
}

func (suite *CarrierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE carriers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = carrierrepo.NewGormCarrierRepository(suite.db, suite.tracker)
}

func (suite *CarrierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CarrierRepositoryIntegrationTestSuite) TestAdd_ThenGet_RestoresCarrier() {
	ctx := context.Background()
	c := suite.newCarrier(tenantA, carrier.KindUPS)

	suite.Require().NoError(suite.repository.Add(ctx, c))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", c.ID(), c)

	got, err := suite.repository.Get(ctx, c.ID(), tenantA)
	suite.Require().NoError(err)

	suite.Equal("Parcel Partner", got.Name())
	suite.Equal("https://api.partner.example", got.APIEndpoint())
	suite.Equal("https://track.partner.example/{trackingNumber}", got.TrackingURLTemplate())
	suite.Equal(carrier.KindUPS, got.Kind())
	suite.True(got.IsActive())
	suite.Equal(carrier.Credentials{
		APIKey:        "secret",
		Username:      "user",
		Password:      "pass",
		AccountNumber: "ACC-1",
	}, got.Credentials())
	suite.True(tenantA.IsEqual(got.TenantID()))
}

func (suite *CarrierRepositoryIntegrationTestSuite) TestGet_OtherTenant_ReturnsNotFound() {
	ctx := context.Background()
	c := suite.newCarrier(tenantA, carrier.KindAuto)
	suite.Require().NoError(suite.repository.Add(ctx, c))

	got, err := suite.repository.Get(ctx, c.ID(), tenantB)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Nil(got)
}

func (suite *CarrierRepositoryIntegrationTestSuite) TestUpdate_PersistsDeactivation() {
	ctx := context.Background()
	c := suite.newCarrier(tenantA, carrier.KindAuto)
	suite.Require().NoError(suite.repository.Add(ctx, c))

	c.Deactivate()
	suite.Require().NoError(suite.repository.Update(ctx, c))

	got, err := suite.repository.Get(ctx, c.ID(), tenantA)
	suite.Require().NoError(err)
	suite.False(got.IsActive())
}

func (suite *CarrierRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	c := suite.newCarrier(tenantA, carrier.KindAuto)

	err := suite.repository.Update(context.Background(), c)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CarrierRepositoryIntegrationTestSuite) newCarrier(tenantID kernel.TenantID, kind carrier.Kind) *carrier.Carrier {
	c, err := carrier.NewCarrier(
		kernel.NewUUID(),
		"Parcel Partner",
		"https://api.partner.example",
		"https://track.partner.example/{trackingNumber}",
		carrier.Credentials{APIKey: "secret", Username: "user", Password: "pass", AccountNumber: "ACC-1"},
		kind,
		tenantID,
	)
	suite.Require().NoError(err)
	return c
}

func TestCarrierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CarrierRepositoryIntegrationTestSuite))
}
