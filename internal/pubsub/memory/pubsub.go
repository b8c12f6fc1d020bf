package memory

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/pubsub"
)

type memoryPubSub struct {
	channel *gochannel.GoChannel
}

// NewPubSub creates an in-process PubSub backed by watermill's gochannel.
// Used in tests and local development where no broker is available.
func NewPubSub(log *logger.Logger) pubsub.PubSub {
	channel := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            100,
			Persistent:                     true,
			BlockPublishUntilSubscriberAck: false,
		},
		pubsub.NewWatermillLogger(log),
	)
	return &memoryPubSub{channel: channel}
}

func (p *memoryPubSub) Publish(ctx context.Context, topic string, msg *message.Message) error {
	msg.SetContext(ctx)
	return p.channel.Publish(topic, msg)
}

func (p *memoryPubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return p.channel.Subscribe(ctx, topic)
}

func (p *memoryPubSub) Close() error {
	return p.channel.Close()
}
