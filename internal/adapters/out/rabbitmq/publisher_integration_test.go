package rabbitmq_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PublisherIntegrationTestSuite publishes against a real RabbitMQ broker.
type PublisherIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	url       string
	conn      *rabbitmq.Connection
}

func (suite *PublisherIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.13-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForLog("Server startup complete").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	host, err := container.Host(ctx)
	suite.Require().NoError(err)
	port, err := container.MappedPort(ctx, "5672/tcp")
	suite.Require().NoError(err)
	suite.url = fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())

	suite.conn = rabbitmq.NewConnection(suite.url, slog.New(slog.NewTextHandler(io.Discard, nil)))
	suite.Require().NoError(suite.conn.Connect(ctx))
}

func (suite *PublisherIntegrationTestSuite) TearDownSuite() {
	if suite.conn != nil {
		suite.Require().NoError(suite.conn.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PublisherIntegrationTestSuite) TestPublish_RoutesByEventType() {
	ctx := context.Background()

	observer, err := amqp.Dial(suite.url)
	suite.Require().NoError(err)
	defer observer.Close()
	ch, err := observer.Channel()
	suite.Require().NoError(err)

	queue, err := ch.QueueDeclare("", false, true, true, false, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(ch.QueueBind(queue.Name, ports.EventDeliveryDispatched, rabbitmq.DeliveryEventsExchange, false, nil))
	deliveries, err := ch.Consume(queue.Name, "", true, true, false, false, nil)
	suite.Require().NoError(err)

	publisher := rabbitmq.NewPublisher(suite.conn, slog.New(slog.NewTextHandler(io.Discard, nil)))

	suite.Require().NoError(publisher.Publish(ctx, ports.EventDeliveryCreated, ports.DeliveryCreatedPayload{DeliveryNoteID: "ignored"}))
	suite.Require().NoError(publisher.Publish(ctx, ports.EventDeliveryDispatched, ports.DeliveryDispatchedPayload{
		DeliveryNoteID: "n-1",
		OrderID:        "O1",
		TenantID:       "tenant-a",
	}))

	select {
	case msg := <-deliveries:
		suite.Equal(ports.EventDeliveryDispatched, msg.RoutingKey)
		suite.Equal(amqp.Persistent, msg.DeliveryMode)
		suite.Equal("application/json", msg.ContentType)

		var envelope struct {
			EventType string                          `json:"eventType"`
			Timestamp time.Time                       `json:"timestamp"`
			Payload   ports.DeliveryDispatchedPayload `json:"payload"`
		}
		suite.Require().NoError(json.Unmarshal(msg.Body, &envelope))
		suite.Equal(ports.EventDeliveryDispatched, envelope.EventType)
		suite.False(envelope.Timestamp.IsZero())
		suite.Equal("n-1", envelope.Payload.DeliveryNoteID)
	case <-time.After(10 * time.Second):
		suite.Fail("dispatched event was not routed")
	}

	select {
	case msg := <-deliveries:
		suite.Failf("unexpected message", "routing key %s", msg.RoutingKey)
	case <-time.After(200 * time.Millisecond):
	}
}

func (suite *PublisherIntegrationTestSuite) TestConnect_DeclaresOrderFulfilledQueue() {
	ch, err := suite.conn.Channel()
	suite.Require().NoError(err)

	queue, err := ch.QueueDeclarePassive(rabbitmq.OrderFulfilledQueue, true, false, false, false, nil)

	suite.Require().NoError(err)
	suite.Equal(rabbitmq.OrderFulfilledQueue, queue.Name)
}

func TestPublisherIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PublisherIntegrationTestSuite))
}
