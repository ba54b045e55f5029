package broker

import (
	"context"
	"log/slog"
	"sort"
	"sync"
)

// TopicHandler processes the deliveries of a single topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, delivery Delivery) error
}

type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string]TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]TopicHandler)}
}

// Register binds h to its topic, replacing any earlier handler.
func (r *HandlerRegistry) Register(h TopicHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[h.Topic()] = h
}

// Topics returns the registered topics in sorted order.
func (r *HandlerRegistry) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// Dispatch routes delivery to the handler of its topic. Unrouted deliveries are dropped.
func (r *HandlerRegistry) Dispatch(ctx context.Context, delivery Delivery) error {
	r.mu.RLock()
	handler, ok := r.handlers[delivery.Topic]
	r.mu.RUnlock()
	if !ok {
		slog.Debug("kafka delivery without handler", slog.String("topic", delivery.Topic))
		return nil
	}
	return handler.Handle(ctx, delivery)
}

// StartKafkaConsumers starts one consumer goroutine per registered topic.
// The returned WaitGroup is done once every consumer has stopped.
func StartKafkaConsumers(ctx context.Context, registry *HandlerRegistry, brokers []string, groupID string) *sync.WaitGroup {
	var wg sync.WaitGroup
	if len(brokers) == 0 {
		return &wg
	}
	for _, topic := range registry.Topics() {
		wg.Add(1)
		go func(tp string) {
			defer wg.Done()
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			slog.Info("kafka consumer started", slog.String("topic", tp), slog.String("group", groupID))
			if err := consumer.Consume(ctx, registry.Dispatch); err != nil {
				slog.Info("kafka consumer stopped", slog.String("topic", tp), slog.Any("reason", err))
			}
		}(topic)
	}
	return &wg
}
