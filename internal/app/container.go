package app

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nutslove/otel-instrumentation-demo/internal/clients"
	"github.com/nutslove/otel-instrumentation-demo/internal/config"
	"github.com/nutslove/otel-instrumentation-demo/internal/events"
	"github.com/nutslove/otel-instrumentation-demo/internal/orders"
	"github.com/nutslove/otel-instrumentation-demo/internal/platform/kafka"
	"github.com/nutslove/otel-instrumentation-demo/internal/platform/observability"
	"github.com/nutslove/otel-instrumentation-demo/internal/storage"
)

// Container holds expensive-to-create singleton resources and dependencies
type Container struct {
	config            *config.Config
	logger            *zap.Logger
	tracerProvider    trace.TracerProvider
	store             *storage.OrderStore
	orderService      *orders.Service
	handler           *orders.Handler
	producer          kafka.Producer
	otelLogShutdown   func(context.Context) error
	otelTraceShutdown func(context.Context) error
}

// NewContainer creates and initializes all infrastructure components
func NewContainer(ctx context.Context) (*Container, error) {
	// Load configuration first
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	container := &Container{
		config: cfg,
	}

	if err := container.setupObservability(ctx); err != nil {
		return nil, err
	}
	if err := container.setupStore(); err != nil {
		return nil, err
	}
	if err := container.setupOrderService(); err != nil {
		return nil, err
	}

	return container, nil
}

// setupObservability configures OpenTelemetry logging and tracing, then the
// zap logger bridged to it.
func (c *Container) setupObservability(ctx context.Context) error {
	// Start with basic logger so setup failures are loggable
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	c.logger = logger

	otelLogShutdown, err := observability.SetupLoggingSDK(ctx, c.config)
	if err != nil {
		c.logger.Error("Failed to setup OpenTelemetry logging", zap.Error(err))
	}
	c.otelLogShutdown = otelLogShutdown

	tp, otelTraceShutdown, err := observability.SetupTracingSDK(ctx, c.config)
	if err != nil {
		c.logger.Error("Failed to setup OpenTelemetry tracing", zap.Error(err))
	}
	c.otelTraceShutdown = otelTraceShutdown
	if tp != nil {
		c.tracerProvider = tp
	} else {
		c.tracerProvider = otel.GetTracerProvider()
	}

	c.reinitializeLoggerWithOTel()
	return nil
}

// reinitializeLoggerWithOTel creates a new logger with OpenTelemetry integration
func (c *Container) reinitializeLoggerWithOTel() {
	logProvider := global.GetLoggerProvider()
	instrumentationScopeName := config.ServiceName + ".manual"
	otelZapCore := otelzap.NewCore(instrumentationScopeName,
		otelzap.WithLoggerProvider(logProvider),
	)

	consoleEncoderConfig := zap.NewProductionEncoderConfig()
	consoleEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(consoleEncoderConfig),
		zapcore.Lock(os.Stdout),
		zap.InfoLevel,
	)

	finalCore := zapcore.NewTee(otelZapCore, consoleCore)
	logger := zap.New(finalCore,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("service.name", config.ServiceName)),
	)

	c.logger = logger
}

func (c *Container) setupStore() error {
	store, err := storage.NewOrderStore(c.config.DBPath, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize order store: %w", err)
	}
	c.store = store
	return nil
}

func (c *Container) setupOrderService() error {
	httpClient := clients.NewHTTPClient(c.config.RequestTimeout)
	inventory := clients.NewInventoryClient(c.config.InventoryServiceURL, httpClient, c.logger)
	notification := clients.NewNotificationClient(c.config.NotificationServiceURL, httpClient, c.logger)

	// Event publishing is optional; the workflow runs without it
	var publisher orders.EventPublisher
	if c.config.KafkaBroker != "" {
		producer, err := kafka.NewOrderEventsProducer(c.config.KafkaBroker, c.tracerProvider)
		if err != nil {
			return fmt.Errorf("failed to initialize order events producer: %w", err)
		}
		c.producer = producer
		publisher = events.NewOrderCreatedPublisher(producer, c.logger)
	}

	c.orderService = orders.NewService(c.store, inventory, notification, publisher, c.logger, config.ServiceName)
	c.handler = orders.NewHandler(c.orderService, c.logger)
	return nil
}

// Shutdown gracefully shuts down all container components
func (c *Container) Shutdown(ctx context.Context) {
	c.logger.Info("Shutting down container...")

	if c.producer != nil {
		if err := c.producer.Close(); err != nil {
			c.logger.Error("Failed to close order events producer", zap.Error(err))
		}
	}

	if c.store != nil {
		if err := c.store.Close(); err != nil {
			c.logger.Error("Failed to close order store", zap.Error(err))
		}
	}

	if c.otelTraceShutdown != nil {
		if err := c.otelTraceShutdown(ctx); err != nil {
			c.logger.Error("Failed to shutdown OTel tracing", zap.Error(err))
		}
	}
	if c.otelLogShutdown != nil {
		if err := c.otelLogShutdown(ctx); err != nil {
			c.logger.Error("Failed to shutdown OTel logging", zap.Error(err))
		}
	}

	_ = c.logger.Sync()
}

// Getters for accessing container components
func (c *Container) Config() *config.Config     { return c.config }
func (c *Container) Logger() *zap.Logger        { return c.logger }
func (c *Container) Handler() *orders.Handler   { return c.handler }
func (c *Container) Service() *orders.Service   { return c.orderService }
func (c *Container) Store() *storage.OrderStore { return c.store }
