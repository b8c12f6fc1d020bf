package kafka

import (
	"context"

	wmkafka "github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/apnmt/payment/internal/config"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/kafka"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/pubsub"
)

type kafkaPubSub struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *logger.Logger
}

// NewPubSub creates a Kafka-backed PubSub using watermill on top of sarama.
func NewPubSub(cfg *config.Configuration, log *logger.Logger, consumerGroup string) (pubsub.PubSub, error) {
	saramaConfig := kafka.GetSaramaConfig(cfg)
	wmLogger := pubsub.NewWatermillLogger(log)

	publisher, err := wmkafka.NewPublisher(
		wmkafka.PublisherConfig{
			Brokers:               cfg.Kafka.Brokers,
			Marshaler:             wmkafka.DefaultMarshaler{},
			OverwriteSaramaConfig: saramaConfig,
		},
		wmLogger,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create kafka publisher").
			Mark(ierr.ErrSystem)
	}

	subscriber, err := wmkafka.NewSubscriber(
		wmkafka.SubscriberConfig{
			Brokers:               cfg.Kafka.Brokers,
			Unmarshaler:           wmkafka.DefaultMarshaler{},
			OverwriteSaramaConfig: saramaConfig,
			ConsumerGroup:         consumerGroup,
		},
		wmLogger,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create kafka subscriber").
			Mark(ierr.ErrSystem)
	}

	return &kafkaPubSub{
		publisher:  publisher,
		subscriber: subscriber,
		logger:     log,
	}, nil
}

func (p *kafkaPubSub) Publish(ctx context.Context, topic string, msg *message.Message) error {
	msg.SetContext(ctx)
	if err := p.publisher.Publish(topic, msg); err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to publish message to topic %s", topic).
			Mark(ierr.ErrSystem)
	}
	return nil
}

func (p *kafkaPubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	messages, err := p.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to subscribe to topic %s", topic).
			Mark(ierr.ErrSystem)
	}
	return messages, nil
}

func (p *kafkaPubSub) Close() error {
	if err := p.publisher.Close(); err != nil {
		p.logger.Errorw("failed to close kafka publisher", "error", err)
	}
	return p.subscriber.Close()
}
