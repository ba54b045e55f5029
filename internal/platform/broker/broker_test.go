package broker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHandler struct {
	topic string
	got   []Delivery
	err   error
}

func (h *stubHandler) Topic() string { return h.topic }

func (h *stubHandler) Handle(_ context.Context, delivery Delivery) error {
	h.got = append(h.got, delivery)
	return h.err
}

func TestRegistryDispatch(t *testing.T) {
	registry := NewHandlerRegistry()
	first := &stubHandler{topic: "bookings.first"}
	second := &stubHandler{topic: "bookings.second", err: errors.New("rejected")}
	registry.Register(second)
	registry.Register(first)

	assert.Equal(t, []string{"bookings.first", "bookings.second"}, registry.Topics())

	require.NoError(t, registry.Dispatch(context.Background(), Delivery{Topic: "bookings.first"}))
	require.Error(t, registry.Dispatch(context.Background(), Delivery{Topic: "bookings.second"}))
	require.NoError(t, registry.Dispatch(context.Background(), Delivery{Topic: "unknown"}))
	assert.Len(t, first.got, 1)
	assert.Len(t, second.got, 1)
}

func TestStartKafkaConsumersWithoutBrokers(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.Register(&stubHandler{topic: "bookings.first"})
	wg := StartKafkaConsumers(context.Background(), registry, nil, "group")
	wg.Wait()
}

type scriptedReader struct {
	mu       sync.Mutex
	messages []kafka.Message
	closed   bool
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.messages) > 0 {
		m := r.messages[0]
		r.messages = r.messages[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *scriptedReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func TestConsumeDeliversUntilCancelled(t *testing.T) {
	reader := &scriptedReader{messages: []kafka.Message{
		{Topic: "bookings.first", Partition: 1, Offset: 7, Key: []byte("YYY12345678"), Value: []byte(`{}`),
			Headers: []kafka.Header{{Key: "source", Value: []byte("partner")}}},
		{Topic: "bookings.first", Partition: 1, Offset: 8, Value: []byte(`{}`)},
	}}
	consumer := &KafkaConsumer{reader: reader}

	ctx, cancel := context.WithCancel(context.Background())
	var got []Delivery
	err := consumer.Consume(ctx, func(_ context.Context, d Delivery) error {
		got = append(got, d)
		if len(got) == 2 {
			cancel()
		}
		return errors.New("handler errors are logged only")
	})

	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, got, 2)
	assert.Equal(t, int64(7), got[0].Offset)
	assert.Equal(t, "YYY12345678", string(got[0].Key))
	assert.Equal(t, "partner", got[0].Headers["source"])
	assert.True(t, reader.closed)
}

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *recordingWriter) Close() error { return nil }

func TestProducerPublish(t *testing.T) {
	writer := &recordingWriter{}
	producer := &KafkaProducer{writer: writer, topic: "reservations.events"}

	err := producer.Publish(context.Background(), "YYY12345678", []byte(`{"action":"created"}`), map[string]string{"event-action": "created"})
	require.NoError(t, err)
	require.Len(t, writer.msgs, 1)
	assert.Equal(t, "YYY12345678", string(writer.msgs[0].Key))
	assert.Equal(t, "event-action", writer.msgs[0].Headers[0].Key)

	writer.err = errors.New("leader not available")
	err = producer.Publish(context.Background(), "k", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reservations.events")
}
