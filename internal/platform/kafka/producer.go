package kafka

import (
	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/nutslove/otel-instrumentation-demo/internal/config"
)

// NewOrderEventsProducer creates a Kafka writer for the OrderCreated topic with
// OpenTelemetry instrumentation so trace context propagates in message headers.
func NewOrderEventsProducer(broker string, tp trace.TracerProvider) (Producer, error) {
	baseWriter := &kafkago.Writer{
		Addr:         kafkago.TCP(broker),
		Topic:        config.OrderCreatedTopic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: config.BatchTimeout,
		BatchSize:    config.BatchSize,
	}

	return otelkafka.NewWriter(baseWriter,
		otelkafka.WithTracerProvider(tp),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes(
			[]attribute.KeyValue{
				semconv.MessagingDestinationNameKey.String(config.OrderCreatedTopic),
				attribute.String("messaging.kafka.client_id", config.ServiceName),
			},
		),
	)
}
