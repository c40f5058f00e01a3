package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	kafkain "fulfillment/internal/adapters/in/kafka"
	rabbitmqin "fulfillment/internal/adapters/in/rabbitmq"
	kafkaout "fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	rabbitmqout "fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/metrics"
	"fulfillment/internal/pkg/observability"

	"github.com/labstack/gommon/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

// runner is a long running inbound adapter.
type runner interface {
	Run(ctx context.Context) error
}

type messageHandler interface {
	HandleMessage(ctx context.Context, body []byte) error
}

// broker bundles the transport chosen by BROKER.
type broker struct {
	publisher ports.EventPublisher
	consumer  func(handler messageHandler) (runner, error)
	close     func() error
}

func main() {
	if err := cmd.LoadDotEnv(".env"); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}
	configs := cmd.LoadConfig(os.LookupEnv)

	if err := run(configs); err != nil {
		log.Fatal(err)
	}
}

func run(configs cmd.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, configs.Observability())
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(flushCtx)
	}()

	logger := observability.NewLogger(os.Stdout, observability.ParseLevel(configs.LogLevel), configs.Observability())
	slog.SetDefault(logger)
	metrics.Register()

	gormDB, err := postgres.Open(configs.Database().DSN())
	if err != nil {
		return err
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		defer sqlDB.Close()
	}

	b, err := newBroker(ctx, configs, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := b.close(); closeErr != nil {
			logger.Warn("failed to close broker", "error", closeErr)
		}
	}()

	app := cmd.NewCompositionRoot(configs, gormDB, b.publisher, logger)

	consumer, err := b.consumer(app.CreateOrderFulfilledHandler())
	if err != nil {
		return err
	}

	e, err := httpin.NewEcho(app.CreateHTTPServer(), logger)
	if err != nil {
		return fmt.Errorf("failed to build http server: %w", err)
	}
	server := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort),
		Handler:           otelhttp.NewHandler(e, "fulfillment-http"),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(ctx); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", server.Addr)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})

	if consumer != nil {
		g.Go(func() error {
			if runErr := consumer.Run(gctx); runErr != nil {
				logger.Error("order fulfilled consumer stopped", "error", runErr)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newBroker connects the configured transport. RabbitMQ being unreachable at
// startup is not fatal: publishing then fails with ports.ErrBrokerUnavailable.
func newBroker(ctx context.Context, configs cmd.Config, logger *slog.Logger) (broker, error) {
	switch configs.Broker {
	case cmd.BrokerKafka:
		publisher, err := kafkaout.NewPublisher(configs.KafkaBrokers, configs.ServiceName, logger)
		if err != nil {
			return broker{}, err
		}
		var consumer *kafkain.Consumer
		return broker{
			publisher: publisher,
			consumer: func(handler messageHandler) (runner, error) {
				c, err := kafkain.NewConsumer(configs.KafkaBrokers, configs.KafkaConsumerGroup, handler, logger)
				if err != nil {
					return nil, err
				}
				consumer = c
				return c, nil
			},
			close: func() error {
				var consumerErr error
				if consumer != nil {
					consumerErr = consumer.Close()
				}
				return errors.Join(consumerErr, publisher.Close())
			},
		}, nil

	case cmd.BrokerRabbitMQ:
		conn := rabbitmqout.NewConnection(configs.RabbitMQURL, logger)
		connected := true
		if err := conn.Connect(ctx); err != nil {
			connected = false
			logger.Error("rabbitmq unavailable, events will not be published", "error", err)
		}
		return broker{
			publisher: rabbitmqout.NewPublisher(conn, logger),
			consumer: func(handler messageHandler) (runner, error) {
				if !connected {
					return nil, nil
				}
				return rabbitmqin.NewConsumer(conn, handler, logger), nil
			},
			close: conn.Close,
		}, nil

	default:
		return broker{}, fmt.Errorf("unsupported BROKER %q, expected %s or %s",
			configs.Broker, cmd.BrokerRabbitMQ, cmd.BrokerKafka)
	}
}
