package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/microshop/storefront/internal/domain"
)

type captureWriter struct {
	msgs []kafkago.Message
	err  error
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestOrderPlaced_PublishesEnvelopeKeyedByUser(t *testing.T) {
	writer := &captureWriter{}
	pub := NewWithWriter(writer, zap.NewNop())

	order := &domain.Order{
		ID:         "o_abc1234567",
		UserID:     "u1",
		Items:      []domain.OrderItem{{ProductID: "p1", Name: "Cloud Hoodie", PriceCents: 500, Quantity: 2}},
		TotalCents: 1000,
		Status:     domain.StatusPlaced,
	}
	pub.OrderPlaced(context.Background(), order)

	require.Len(t, writer.msgs, 1)
	require.Equal(t, []byte("u1"), writer.msgs[0].Key)

	var env envelope
	require.NoError(t, json.Unmarshal(writer.msgs[0].Value, &env))
	require.Equal(t, EventOrderPlaced, env.Event)
	require.Equal(t, "o_abc1234567", env.Order.ID)
	require.Equal(t, int64(1000), env.Order.TotalCents)
	require.False(t, env.OccurredAt.IsZero())
}

func TestOrderPlaced_BrokerFailureIsSwallowed(t *testing.T) {
	writer := &captureWriter{err: errors.New("broker down")}
	pub := NewWithWriter(writer, zap.NewNop())

	// Must not panic or surface the error; placements stay durable.
	pub.OrderPlaced(context.Background(), &domain.Order{ID: "o_x", UserID: "u1"})
	require.Empty(t, writer.msgs)
}
