package outbox

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	pending []Event
	sent    []int64
	failed  []int64
}

func (s *fakeStore) LockBatch(_ context.Context, _ string, batchSize int, _ time.Duration) ([]Event, error) {
	if len(s.pending) == 0 {
		return nil, nil
	}
	n := min(batchSize, len(s.pending))
	batch := s.pending[:n]
	s.pending = s.pending[n:]
	return batch, nil
}

func (s *fakeStore) MarkSent(_ context.Context, ids []int64) error {
	s.sent = append(s.sent, ids...)
	return nil
}

func (s *fakeStore) MarkFailed(_ context.Context, id int64, _ string) error {
	s.failed = append(s.failed, id)
	return nil
}

func (s *fakeStore) ExtendLease(context.Context, string, []int64, time.Duration) error {
	return nil
}

type fakeProducer struct {
	messages []kafka.Message
	failKeys map[string]bool
}

func (p *fakeProducer) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		if p.failKeys[string(m.Key)] {
			return errors.New("broker unavailable")
		}
		p.messages = append(p.messages, m)
	}
	return nil
}

func TestRelayDispatchesAndMarksSent(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	store := &fakeStore{pending: []Event{
		{ID: 1, AggregateID: "10", Type: "PurchaseCreated", Payload: []byte(`{}`), Traceparent: "00-abc-def-01"},
		{ID: 2, AggregateID: "11", Type: "PurchaseCreated", Payload: []byte(`{}`)},
	}}
	producer := &fakeProducer{}
	relay := NewRelay(log, store, NewDispatcher(log, producer, "purchase.events"), "test-relay")

	require.NoError(t, relay.drainOnce(context.Background()))
	require.Equal(t, []int64{1, 2}, store.sent)
	require.Empty(t, store.failed)
	require.Len(t, producer.messages, 2)

	msg := producer.messages[0]
	require.Equal(t, "purchase.events", msg.Topic)
	require.Equal(t, "10", string(msg.Key))
	var haveTraceparent bool
	for _, h := range msg.Headers {
		if h.Key == "traceparent" {
			haveTraceparent = true
			require.Equal(t, "00-abc-def-01", string(h.Value))
		}
	}
	require.True(t, haveTraceparent)
}

func TestRelayMarksFailedAndKeepsGoing(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	store := &fakeStore{pending: []Event{
		{ID: 1, AggregateID: "10", Type: "PurchaseCreated"},
		{ID: 2, AggregateID: "11", Type: "PurchaseCreated"},
	}}
	producer := &fakeProducer{failKeys: map[string]bool{"10": true}}
	relay := NewRelay(log, store, NewDispatcher(log, producer, "purchase.events"), "test-relay")

	require.NoError(t, relay.drainOnce(context.Background()))
	require.Equal(t, []int64{1}, store.failed)
	require.Equal(t, []int64{2}, store.sent)
}

func TestRelayIdleBatch(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	store := &fakeStore{}
	relay := NewRelay(log, store, NewDispatcher(log, &fakeProducer{}, "purchase.events"), "test-relay")

	require.NoError(t, relay.drainOnce(context.Background()))
	require.Empty(t, store.sent)
	require.Empty(t, store.failed)
}
