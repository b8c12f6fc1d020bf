package types

// EventType tags the payload carried by an event envelope.
type EventType string

const (
	EventTypeOrganizationActivationChanged EventType = "organizationActivationChanged"
)

// Topic names for the durable messaging channel. Downstream consumers key on
// these, so they are part of the public contract and must not change.
const (
	TopicOrganizationActivationChanged = "organizationActivationChanged"
)
