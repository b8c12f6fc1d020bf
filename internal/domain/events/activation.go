package events

import (
	"context"
	"time"

	"github.com/apnmt/payment/internal/types"
)

// OrganizationActivation signals that an organization's access should be
// enabled or disabled. It is a level-triggered state assertion: consumers
// de-duplicate with latest-wins semantics rather than counting transitions.
type OrganizationActivation struct {
	OrganizationID int64 `json:"organizationId"`
	Active         bool  `json:"active"`
}

// Envelope wraps an event value with its type tag for the wire. The JSON
// shape is consumed by downstream services and must stay stable.
type Envelope struct {
	Timestamp time.Time              `json:"timestamp"`
	Type      types.EventType        `json:"type"`
	Value     OrganizationActivation `json:"value"`
}

// NewOrganizationActivationEvent builds the envelope for an activation change.
func NewOrganizationActivationEvent(organizationID int64, active bool, now time.Time) *Envelope {
	return &Envelope{
		Timestamp: now,
		Type:      types.EventTypeOrganizationActivationChanged,
		Value: OrganizationActivation{
			OrganizationID: organizationID,
			Active:         active,
		},
	}
}

// Publisher hands an event envelope to the durable messaging channel under a
// topic name. It returns once the channel client has accepted the message,
// not once it has been committed downstream.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *Envelope) error
}
