package dto

import (
	"testing"

	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProviderEvent(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "invoice.payment_succeeded",
		"data": {"object": {"id": "in_1", "subscription": "sub_1"}}
	}`)

	event, err := ParseProviderEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, ProviderEventInvoicePaymentSucceeded, event.Type)

	subID, err := event.InvoiceSubscriptionID()
	require.NoError(t, err)
	assert.Equal(t, "sub_1", subID)
}

func TestParseProviderEvent_Invalid(t *testing.T) {
	_, err := ParseProviderEvent([]byte("not json"))
	assert.True(t, ierr.IsValidation(err))

	_, err = ParseProviderEvent([]byte(`{"id": "evt_1"}`))
	assert.True(t, ierr.IsValidation(err))
}

func TestInvoiceSubscriptionID_Missing(t *testing.T) {
	event, err := ParseProviderEvent([]byte(`{
		"id": "evt_1",
		"type": "invoice.payment_succeeded",
		"data": {"object": {"id": "in_1"}}
	}`))
	require.NoError(t, err)

	_, err = event.InvoiceSubscriptionID()
	assert.True(t, ierr.IsValidation(err))
}
