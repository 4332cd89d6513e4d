package messaging

import (
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrPublisherUnavailable is returned while the publish breaker is open.
var ErrPublisherUnavailable = errors.New("event publisher unavailable")

// BreakerPublisher guards a publisher with a circuit breaker. Once the broker has failed
// failures times in a row, Publish fails fast until openTimeout has passed.
type BreakerPublisher struct {
	publisher message.Publisher
	breaker   *gobreaker.CircuitBreaker
}

// NewBreakerPublisher wraps publisher.
func NewBreakerPublisher(publisher message.Publisher, failures uint32, openTimeout time.Duration, logger *zap.Logger) *BreakerPublisher {
	if failures == 0 {
		failures = 5
	}

	if openTimeout <= 0 {
		openTimeout = 10 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "publisher",
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &BreakerPublisher{publisher: publisher, breaker: breaker}
}

func (b *BreakerPublisher) Publish(topic string, msgs ...*message.Message) error {
	_, err := b.breaker.Execute(func() (interface{}, error) {
		return nil, b.publisher.Publish(topic, msgs...)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublisherUnavailable, err)
	}

	return nil
}

func (b *BreakerPublisher) Close() error {
	return b.publisher.Close()
}

// State reports the breaker state.
func (b *BreakerPublisher) State() gobreaker.State {
	return b.breaker.State()
}

// Compile-time check.
var _ message.Publisher = (*BreakerPublisher)(nil)
