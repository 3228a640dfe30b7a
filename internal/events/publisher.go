// Package events emits order lifecycle notifications. Publishing is
// best-effort: a broker outage must never fail an already-durable placement.
package events

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/microshop/storefront/internal/domain"
)

const EventOrderPlaced = "order.placed"

type envelope struct {
	Event      string       `json:"event"`
	OccurredAt time.Time    `json:"occurredAt"`
	Order      domain.Order `json:"order"`
}

// Writer is the subset of kafka-go's Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type KafkaPublisher struct {
	writer Writer
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
	}
	return &KafkaPublisher{writer: w, logger: logger}
}

// NewWithWriter is the test seam.
func NewWithWriter(w Writer, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, logger: logger}
}

// OrderPlaced publishes an order.placed envelope keyed by user id so a
// user's orders land on one partition in submission order.
func (p *KafkaPublisher) OrderPlaced(ctx context.Context, order *domain.Order) {
	value, err := json.Marshal(envelope{
		Event:      EventOrderPlaced,
		OccurredAt: time.Now().UTC(),
		Order:      *order,
	})
	if err != nil {
		p.logger.Error("encode order event", zap.String("order_id", order.ID), zap.Error(err))
		return
	}

	if err := p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(order.UserID),
		Value: value,
	}); err != nil {
		p.logger.Warn("publish order event failed",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		return
	}
	p.logger.Debug("order event published", zap.String("order_id", order.ID))
}

// Noop is used when no brokers are configured.
type Noop struct{}

func (Noop) OrderPlaced(context.Context, *domain.Order) {}
