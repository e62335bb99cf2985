package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/starwars-blog/pkg/logger"
)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
	breaker  *CircuitBreaker
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return NewPublisherWithProducer(producer, brokers), nil
}

// NewPublisherWithProducer creates a publisher on top of an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer, brokers []string) *Publisher {
	return &Publisher{
		producer: producer,
		brokers:  brokers,
		breaker:  NewCircuitBreaker("kafka-publisher", 5, 30*time.Second),
	}
}

// PublishFavoriteAdded publishes a favorite.added event
func (p *Publisher) PublishFavoriteAdded(ctx context.Context, userID uint, kind string, entityID uint) error {
	return p.publishFavorite(ctx, FavoriteEvent{
		EventType: EventTypeFavoriteAdded,
		UserID:    userID,
		Kind:      kind,
		EntityID:  entityID,
	})
}

// PublishFavoriteRemoved publishes a favorite.removed event
func (p *Publisher) PublishFavoriteRemoved(ctx context.Context, userID uint, kind string, entityID uint) error {
	return p.publishFavorite(ctx, FavoriteEvent{
		EventType: EventTypeFavoriteRemoved,
		UserID:    userID,
		Kind:      kind,
		EntityID:  entityID,
	})
}

// publishFavorite sends the event keyed by user, so one user's events stay ordered
func (p *Publisher) publishFavorite(ctx context.Context, event FavoriteEvent) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+event.EventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicFavoriteEvents),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", event.EventType),
			attribute.Int64("user.id", int64(event.UserID)),
			attribute.String("catalog.kind", event.Kind),
			attribute.Int64("catalog.id", int64(event.EntityID)),
		),
	)
	defer span.End()

	event.EventID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	span.SetAttributes(attribute.String("event.id", event.EventID))

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:   TopicFavoriteEvents,
		Key:     sarama.StringEncoder(fmt.Sprintf("user_%d", event.UserID)),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: messageHeaders(ctx, event.EventType, event.EventID),
	}

	var (
		partition int32
		offset    int64
	)
	err = p.breaker.Call(func() error {
		var sendErr error
		partition, offset, sendErr = p.producer.SendMessage(msg)
		return sendErr
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("topic", TopicFavoriteEvents).
		Int32("partition", partition).
		Int64("offset", offset).
		Uint("user_id", event.UserID).
		Msg("Favorite event published")

	return nil
}

// messageHeaders carries the event metadata and the W3C trace context
func messageHeaders(ctx context.Context, eventType, eventID string) []sarama.RecordHeader {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(eventID)},
	}
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}
	return headers
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NoopPublisher drops every event. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishFavoriteAdded(context.Context, uint, string, uint) error   { return nil }
func (NoopPublisher) PublishFavoriteRemoved(context.Context, uint, string, uint) error { return nil }
