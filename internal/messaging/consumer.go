package messaging

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Handler processes a single event.
type Handler[T any] func(ctx context.Context, event *T) error

// Consumer subscribes to a topic and processes messages with a typed handler.
// Undecodable messages are acked and dropped; handler failures are nacked for redelivery.
type Consumer[T any] struct {
	subscriber message.Subscriber
	topic      string
	handler    Handler[T]
	logger     *zap.Logger
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewConsumer creates a new generic consumer for a specific event type.
func NewConsumer[T any](
	subscriber message.Subscriber,
	topic string,
	handler Handler[T],
	logger *zap.Logger,
) *Consumer[T] {
	return &Consumer[T]{
		subscriber: subscriber,
		topic:      topic,
		handler:    handler,
		logger:     logger.With(zap.String("topic", topic)),
		done:       make(chan struct{}),
	}
}

// Topic returns the topic this consumer subscribes to.
func (c *Consumer[T]) Topic() string {
	return c.topic
}

// Start begins consuming messages from the topic.
func (c *Consumer[T]) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	msgs, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		c.cancel()
		close(c.done)

		return err
	}

	go c.consumeLoop(ctx, msgs)

	return nil
}

func (c *Consumer[T]) consumeLoop(ctx context.Context, msgs <-chan *message.Message) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			c.handleMessage(ctx, msg)
		}
	}
}

func (c *Consumer[T]) handleMessage(ctx context.Context, msg *message.Message) {
	logger := c.logger.With(
		zap.String("message_uuid", msg.UUID),
		zap.String(MetadataRequestID, msg.Metadata.Get(MetadataRequestID)),
	)

	var event T
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		logger.Error("dropping undecodable event", zap.Error(err))
		msg.Ack()

		return
	}

	if err := c.handler(ctx, &event); err != nil {
		logger.Error("failed to handle event", zap.Error(err))
		msg.Nack()

		return
	}

	msg.Ack()

	logger.Debug("processed event")
}

// Shutdown stops the consumer and waits for the in-flight message to complete.
func (c *Consumer[T]) Shutdown() error {
	if c.cancel != nil {
		c.cancel()
	}

	<-c.done

	return nil
}
