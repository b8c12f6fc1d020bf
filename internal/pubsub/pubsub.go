package pubsub

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// PubSub abstracts the durable messaging channel. Publish returns once the
// channel client has accepted the message; delivery guarantees beyond that
// are provided by the broker's own producer acknowledgment settings.
type PubSub interface {
	Publish(ctx context.Context, topic string, msg *message.Message) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Close() error
}
