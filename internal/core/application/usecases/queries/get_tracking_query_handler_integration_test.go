package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "lms/internal/adapters/out/postgres"
	"lms/internal/core/application/usecases/queries"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"
	"lms/internal/core/domain/model/tracking"
	"lms/internal/core/ports"
	"lms/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GetTrackingQueryIntegrationTestSuite exercises the timeline assembly
// against a real PostgreSQL database: merge order, milestone dedupe and
// synthetic stage fill-in.
type GetTrackingQueryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	handler   queries.GetTrackingQueryHandler
}

func (suite *GetTrackingQueryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = postgres_adapter.Migrate(db)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
	suite.handler = queries.NewGetTrackingQueryHandler(db)
}

func (suite *GetTrackingQueryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_boxes, order_items, order_audit_entries, tracking_events CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetTrackingQueryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestHandle_MergesAndDedupes verifies that audit entries and tracking
// events merge in event-time order and that a milestone recorded by both
// sources appears once, with the tracking event winning.
func (suite *GetTrackingQueryIntegrationTestSuite) TestHandle_MergesAndDedupes() {
	ctx := context.Background()
	t0 := time.Now().UTC().Add(-3 * time.Hour).Truncate(time.Microsecond)
	t1 := t0.Add(time.Hour)
	t2 := t0.Add(2 * time.Hour)

	testOrder := suite.newOrder("ORD-2026-700001", t0)
	suite.Require().NoError(testOrder.ChangeStatus(order.Arrived, "container unloaded", "scanner-1", false, t1))
	suite.Require().NoError(testOrder.ChangeStatus(order.Repacking, "repack requested", "ops-1", false, t2))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	suite.addTrackingEvent(testOrder.ID(), "RECEIVED", "order registered", "", true, t0)
	suite.addTrackingEvent(testOrder.ID(), "ARRIVED", "arrived at Bangkok hub", "BKK-01", true, t1)

	response, err := suite.handler.Handle(ctx, suite.trackingQuery("ORD-2026-700001"))
	suite.Require().NoError(err)

	suite.Equal("ORD-2026-700001", response.OrderNumber)
	suite.Equal("REPACKING", response.Status)
	suite.Equal("PROCESSING", response.LegacyStatus)
	suite.Equal(2, response.Stage)
	suite.True(response.LastUpdatedAt.Equal(t2))

	suite.Require().Len(response.Entries, 3)
	suite.Equal("RECEIVED", response.Entries[0].StatusCode)
	suite.Equal("order registered", response.Entries[0].Description)
	suite.Equal("ARRIVED", response.Entries[1].StatusCode)
	suite.Equal("arrived at Bangkok hub", response.Entries[1].Description,
		"Tracking event should win over the audit entry for the same milestone")
	suite.Equal("BKK-01", response.Entries[1].Location)
	suite.Equal("REPACKING", response.Entries[2].StatusCode)
	suite.Equal("repack requested", response.Entries[2].Description)
	suite.False(response.Entries[2].Milestone)

	for _, entry := range response.Entries {
		suite.False(entry.Synthetic)
	}
}

// TestHandle_SynthesizesSparseStages verifies that passed lifecycle stages
// without any recorded event are filled in from the order's milestone
// timestamps and flagged as synthetic.
func (suite *GetTrackingQueryIntegrationTestSuite) TestHandle_SynthesizesSparseStages() {
	ctx := context.Background()
	t0 := time.Now().UTC().Add(-72 * time.Hour).Truncate(time.Microsecond)
	t1 := t0.Add(24 * time.Hour)
	t2 := t0.Add(48 * time.Hour)
	t3 := t0.Add(72 * time.Hour)

	recipient, err := order.NewRecipient(
		"Somchai P.", "+66812345678", "99 Sukhumvit Rd, Bangkok", "10110", "TH")
	suite.Require().NoError(err)

	// A delivered order imported without any event history.
	testOrder, err := order.RestoreOrder(
		kernel.NewUUID(), "ORD-2026-700002", "M-1001", recipient, order.Sea,
		order.Delivered, false, false, false, "",
		t0, &t1, &t2, &t3,
		nil, nil, nil,
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	response, err := suite.handler.Handle(ctx, suite.trackingQuery("ORD-2026-700002"))
	suite.Require().NoError(err)

	suite.Equal("DELIVERED", response.Status)
	suite.Equal(4, response.Stage)
	suite.True(response.LastUpdatedAt.Equal(t3))

	suite.Require().Len(response.Entries, 5)
	expected := []struct {
		statusCode string
		occurredAt time.Time
	}{
		{"RECEIVED", t0},
		{"ARRIVED", t1},
		{"REPACKING", t1},
		{"SHIPPING", t2},
		{"DELIVERED", t3},
	}
	for i, want := range expected {
		suite.Equal(want.statusCode, response.Entries[i].StatusCode)
		suite.True(response.Entries[i].OccurredAt.Equal(want.occurredAt))
		suite.True(response.Entries[i].Synthetic)
	}
}

// TestHandle_CancelledOrderSkipsSynthesis verifies that cancelled orders
// show only their recorded events.
func (suite *GetTrackingQueryIntegrationTestSuite) TestHandle_CancelledOrderSkipsSynthesis() {
	ctx := context.Background()
	t0 := time.Now().UTC().Add(-2 * time.Hour).Truncate(time.Microsecond)
	t1 := t0.Add(time.Hour)

	testOrder := suite.newOrder("ORD-2026-700003", t0)
	suite.Require().NoError(testOrder.ChangeStatus(order.Cancelled, "customer request", "support-1", false, t1))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	response, err := suite.handler.Handle(ctx, suite.trackingQuery("ORD-2026-700003"))
	suite.Require().NoError(err)

	suite.Equal("CANCELLED", response.Status)
	suite.Equal("CANCELLED", response.LegacyStatus)
	suite.Equal(-1, response.Stage)

	suite.Require().Len(response.Entries, 1)
	suite.Equal("CANCELLED", response.Entries[0].StatusCode)
	suite.False(response.Entries[0].Synthetic)
}

// TestHandle_UnknownOrder verifies the not-found mapping.
func (suite *GetTrackingQueryIntegrationTestSuite) TestHandle_UnknownOrder() {
	_, err := suite.handler.Handle(context.Background(), suite.trackingQuery("ORD-2026-999999"))
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetTrackingQueryIntegrationTestSuite) trackingQuery(orderNumber string) queries.GetTrackingQuery {
	query, err := queries.NewGetTrackingQuery(orderNumber)
	suite.Require().NoError(err)
	return query
}

func (suite *GetTrackingQueryIntegrationTestSuite) newOrder(orderNumber string, createdAt time.Time) *order.Order {
	recipient, err := order.NewRecipient(
		"Somchai P.", "+66812345678", "99 Sukhumvit Rd, Bangkok", "10110", "TH")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), orderNumber, "M-1001", recipient, order.Sea, "system", createdAt)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *GetTrackingQueryIntegrationTestSuite) addTrackingEvent(
	orderID kernel.UUID,
	statusCode, description, location string,
	milestone bool,
	occurredAt time.Time,
) {
	event, err := tracking.NewEvent(
		kernel.NewUUID(), orderID, statusCode, description, location, milestone, occurredAt)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.TrackingEventRepository().Add(context.Background(), event))
}

func TestGetTrackingQueryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(GetTrackingQueryIntegrationTestSuite))
}
