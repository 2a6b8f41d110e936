package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"couriertrack/internal/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// StatusPublisher writes courier status events keyed by courier id, so every
// event of one courier lands on the same partition in commit order.
type StatusPublisher struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

func NewStatusPublisher(brokers []string, topic string, logger *zap.Logger) *StatusPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
	}
	return newStatusPublisher(writer, topic, logger)
}

func newStatusPublisher(writer messageWriter, topic string, logger *zap.Logger) *StatusPublisher {
	return &StatusPublisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

func (p *StatusPublisher) PublishStatusChanged(ctx context.Context, event domain.StatusChangedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding status event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.CourierID), 10)),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("courier.status_changed")},
			{Key: "event-id", Value: []byte(event.EventID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing status event to %s: %w", p.topic, err)
	}

	p.logger.Debug("status event published",
		zap.String("topic", p.topic),
		zap.String("eventId", event.EventID),
		zap.Uint("courierId", event.CourierID),
	)
	return nil
}

func (p *StatusPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishStatusChanged(context.Context, domain.StatusChangedEvent) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
