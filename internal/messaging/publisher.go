package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// MetadataRequestID carries the originating HTTP request id, when there is one.
const MetadataRequestID = "request_id"

// Publish is a function that publishes a typed event.
type Publish[T any] func(ctx context.Context, event *T) error

// NewPublishFunc creates a typed publish function for a specific topic.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(ctx context.Context, event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal %s event: %w", topic, err)
		}

		msg := message.NewMessage(uuid.NewString(), payload)
		if reqID := middleware.GetReqID(ctx); reqID != "" {
			msg.Metadata.Set(MetadataRequestID, reqID)
		}

		return publisher.Publish(topic, msg)
	}
}

// PublisherGroup owns the underlying publisher lifecycle.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup creates a new publisher group.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher returns the underlying message publisher for creating typed publish functions.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the underlying publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
