package container

import (
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/events"
	"github.com/serroba/shortlink/internal/messaging"
	"go.uber.org/zap"
)

const auditConsumerGroup = "shortlink-audit"

// Broker is the event transport. Local brokers live inside one process, so their
// events must also be consumed there.
type Broker struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
	Local      bool
}

// BrokerPackage provides a Redis Streams broker, or an in-process one without Redis.
func BrokerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*Broker, error) {
		conn := do.MustInvoke[*RedisConn](i)
		wmLogger := messaging.NewZapLogger(do.MustInvoke[*zap.Logger](i))

		if conn.Client == nil {
			pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, wmLogger)

			return &Broker{Publisher: pubSub, Subscriber: pubSub, Local: true}, nil
		}

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client:     conn.Client,
			Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
		}, wmLogger)
		if err != nil {
			return nil, err
		}

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        conn.Client,
			Unmarshaller:  redisstream.DefaultMarshallerUnmarshaller{},
			ConsumerGroup: auditConsumerGroup,
		}, wmLogger)
		if err != nil {
			return nil, err
		}

		opts := do.MustInvoke[*Options](i)
		guarded := messaging.NewBreakerPublisher(publisher, 0,
			time.Duration(opts.BreakerTimeoutSeconds)*time.Second, do.MustInvoke[*zap.Logger](i))

		return &Broker{Publisher: guarded, Subscriber: subscriber}, nil
	})
}

// PublisherGroupPackage provides the publisher group and typed publish funcs.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		return messaging.NewPublisherGroup(do.MustInvoke[*Broker](i).Publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[events.LinkCreated], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[events.LinkCreated](group.Publisher(), events.TopicLinkCreated), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[events.LinkResolved], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[events.LinkResolved](group.Publisher(), events.TopicLinkResolved), nil
	})
}

// ConsumerGroupPackage provides the audit consumer group.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		broker := do.MustInvoke[*Broker](i)
		logger := do.MustInvoke[*zap.Logger](i)
		sink := events.NewAuditLog(logger)

		group := messaging.NewConsumerGroup(broker.Subscriber, logger)
		group.Add(messaging.NewConsumer[events.LinkCreated](broker.Subscriber, events.TopicLinkCreated, sink.LinkCreated, logger))
		group.Add(messaging.NewConsumer[events.LinkResolved](broker.Subscriber, events.TopicLinkResolved, sink.LinkResolved, logger))

		return group, nil
	})
}
