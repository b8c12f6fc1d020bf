package publisher

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/apnmt/payment/internal/domain/events"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/pubsub"
	"github.com/apnmt/payment/internal/types"
)

type activationPublisher struct {
	pubSub pubsub.PubSub
	logger *logger.Logger
}

// NewActivationPublisher creates a publisher for organization activation
// events on the durable messaging channel.
func NewActivationPublisher(pubSub pubsub.PubSub, log *logger.Logger) events.Publisher {
	return &activationPublisher{
		pubSub: pubSub,
		logger: log,
	}
}

// Publish marshals the envelope and hands it to the messaging channel. It
// returns once the channel client has accepted the message.
func (p *activationPublisher) Publish(ctx context.Context, topic string, event *events.Envelope) error {
	if topic == "" {
		return ierr.NewError("topic must not be empty").
			WithHint("A topic name is required to publish an event").
			Mark(ierr.ErrValidation)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal activation event").
			Mark(ierr.ErrValidation)
	}

	msg := message.NewMessage(types.GenerateUUID(), payload)
	msg.Metadata.Set("event_type", string(event.Type))

	p.logger.Infow("publishing activation event",
		"topic", topic,
		"event_type", event.Type,
		"organization_id", event.Value.OrganizationID,
		"active", event.Value.Active,
	)

	if err := p.pubSub.Publish(ctx, topic, msg); err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to publish activation event to topic %s", topic).
			Mark(ierr.ErrSystem)
	}
	return nil
}
