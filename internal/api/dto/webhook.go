package dto

import (
	"encoding/json"

	ierr "github.com/apnmt/payment/internal/errors"
)

// Billing-provider webhook event types handled by the service.
const (
	ProviderEventInvoicePaymentSucceeded = "invoice.payment_succeeded"
)

// ProviderEvent is the structural envelope of an inbound billing-provider
// webhook payload. Only the fields the reconciler needs are decoded; the
// rest of the provider's object model stays opaque.
type ProviderEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// ProviderInvoice is the slice of the provider's invoice object referenced by
// an invoice event.
type ProviderInvoice struct {
	Subscription string `json:"subscription"`
}

// ParseProviderEvent decodes and structurally validates a webhook payload.
func ParseProviderEvent(payload []byte) (*ProviderEvent, error) {
	var event ProviderEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Webhook payload is not valid JSON").
			Mark(ierr.ErrValidation)
	}
	if event.Type == "" {
		return nil, ierr.NewError("event type is missing").
			WithHint("Webhook payload must carry an event type").
			Mark(ierr.ErrValidation)
	}
	return &event, nil
}

// InvoiceSubscriptionID extracts the provider subscription id referenced by
// an invoice event. An empty id is a malformed payload, not a business
// failure.
func (e *ProviderEvent) InvoiceSubscriptionID() (string, error) {
	var invoice ProviderInvoice
	if err := json.Unmarshal(e.Data.Object, &invoice); err != nil {
		return "", ierr.WithError(err).
			WithHint("Webhook payload does not contain a valid invoice object").
			Mark(ierr.ErrValidation)
	}
	if invoice.Subscription == "" {
		return "", ierr.NewError("invoice has no subscription reference").
			WithHint("Invoice events must reference a subscription").
			Mark(ierr.ErrValidation)
	}
	return invoice.Subscription, nil
}
