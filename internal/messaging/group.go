package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Runnable represents a component that can be started and shutdown.
type Runnable interface {
	Start(ctx context.Context) error
	Shutdown() error
}

// ConsumerGroup manages multiple consumers with unified lifecycle.
type ConsumerGroup struct {
	consumers  []Runnable
	subscriber message.Subscriber
	logger     *zap.Logger
}

// NewConsumerGroup creates a new consumer group.
func NewConsumerGroup(subscriber message.Subscriber, logger *zap.Logger) *ConsumerGroup {
	return &ConsumerGroup{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Add registers a consumer to the group.
func (g *ConsumerGroup) Add(consumer Runnable) {
	g.consumers = append(g.consumers, consumer)
}

// Start starts all consumers; on failure the ones already started are shut down.
func (g *ConsumerGroup) Start(ctx context.Context) error {
	for i, consumer := range g.consumers {
		if err := consumer.Start(ctx); err != nil {
			g.logger.Error("consumer failed to start, rolling back",
				zap.String("topic", topicOf(consumer)),
				zap.Int("started", i),
				zap.Error(err),
			)

			for j := i - 1; j >= 0; j-- {
				_ = g.consumers[j].Shutdown()
			}

			return fmt.Errorf("start consumer for %s: %w", topicOf(consumer), err)
		}
	}

	g.logger.Info("consumer group started", zap.Strings("topics", g.Topics()))

	return nil
}

// Topics lists the topics of the registered consumers in registration order.
func (g *ConsumerGroup) Topics() []string {
	topics := make([]string, 0, len(g.consumers))
	for _, consumer := range g.consumers {
		topics = append(topics, topicOf(consumer))
	}

	return topics
}

func topicOf(r Runnable) string {
	if t, ok := r.(interface{ Topic() string }); ok {
		return t.Topic()
	}

	return "unknown"
}

// Shutdown stops all consumers and closes the subscriber, joining every error.
func (g *ConsumerGroup) Shutdown() error {
	g.logger.Info("shutting down consumer group", zap.Strings("topics", g.Topics()))

	var errs []error

	for _, consumer := range g.consumers {
		if err := consumer.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("shutdown consumer for %s: %w", topicOf(consumer), err))
		}
	}

	if err := g.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close subscriber: %w", err))
	}

	return errors.Join(errs...)
}
