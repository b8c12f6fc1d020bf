package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/integration/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
)

func invoicePayload(eventType, subscriptionID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"type": "%s",
		"data": {
			"object": {
				"id": "in_1",
				"subscription": "%s"
			}
		}
	}`, eventType, subscriptionID))
}

func TestHandleInvoiceSucceeded_ExtendsExpirationAndActivates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewStripeWebhookService(env.params)
	defer svc.Close()

	env.seedCustomer(ctx, "cus_1", 42)
	env.seedSubscription(ctx, "sub_1", "cus_1", env.clock.Now().Add(30*time.Minute))

	periodEnd := env.clock.Now().Add(30 * 24 * time.Hour)
	env.gateway.On("GetSubscription", mock.Anything, "sub_1").Return(&stripe.ProviderSubscription{
		ID:        "sub_1",
		Status:    "active",
		PeriodEnd: periodEnd.Unix(),
	}, nil)

	require.NoError(t, svc.HandleInvoiceSucceeded(ctx, "sub_1"))

	sub, err := env.subs.Get(ctx, "sub_1")
	require.NoError(t, err)
	expected := time.Unix(periodEnd.Unix(), 0).UTC().Add(3 * 24 * time.Hour)
	assert.Equal(t, expected, sub.ExpirationDate)

	published := env.publisher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, int64(42), published[0].Event.Value.OrganizationID)
	assert.True(t, published[0].Event.Value.Active)
}

func TestHandleInvoiceSucceeded_UnknownSubscriptionIsNoOp(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewStripeWebhookService(env.params)
	defer svc.Close()

	err := svc.HandleInvoiceSucceeded(ctx, "sub_unknown")
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))

	assert.Empty(t, env.publisher.Events())
	env.gateway.AssertNotCalled(t, "GetSubscription", mock.Anything, mock.Anything)
}

func TestHandleInvoiceSucceeded_GatewayFailureLeavesStateUntouched(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewStripeWebhookService(env.params)
	defer svc.Close()

	env.seedCustomer(ctx, "cus_1", 1)
	expiration := env.clock.Now().Add(30 * time.Minute)
	env.seedSubscription(ctx, "sub_1", "cus_1", expiration)

	env.gateway.On("GetSubscription", mock.Anything, "sub_1").
		Return(nil, fmt.Errorf("provider unavailable"))

	err := svc.HandleInvoiceSucceeded(ctx, "sub_1")
	require.Error(t, err)

	sub, getErr := env.subs.Get(ctx, "sub_1")
	require.NoError(t, getErr)
	assert.Equal(t, expiration, sub.ExpirationDate)
	assert.Empty(t, env.publisher.Events())
}

func TestHandleInvoiceSucceeded_ReplayConverges(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewStripeWebhookService(env.params)
	defer svc.Close()

	env.seedCustomer(ctx, "cus_1", 1)
	env.seedSubscription(ctx, "sub_1", "cus_1", env.clock.Now().Add(30*time.Minute))

	periodEnd := env.clock.Now().Add(30 * 24 * time.Hour).Unix()
	env.gateway.On("GetSubscription", mock.Anything, "sub_1").Return(&stripe.ProviderSubscription{
		ID:        "sub_1",
		Status:    "active",
		PeriodEnd: periodEnd,
	}, nil)

	require.NoError(t, svc.HandleInvoiceSucceeded(ctx, "sub_1"))
	first, err := env.subs.Get(ctx, "sub_1")
	require.NoError(t, err)

	// A redelivered invoice recomputes from the same period end instead of
	// stacking another grace window on top.
	require.NoError(t, svc.HandleInvoiceSucceeded(ctx, "sub_1"))
	second, err := env.subs.Get(ctx, "sub_1")
	require.NoError(t, err)

	assert.Equal(t, first.ExpirationDate, second.ExpirationDate)
	assert.Len(t, env.publisher.Events(), 2)
}

func TestProcessEvent_DispatchesInvoiceSucceeded(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewStripeWebhookService(env.params)

	env.seedCustomer(ctx, "cus_1", 9)
	env.seedSubscription(ctx, "sub_1", "cus_1", env.clock.Now().Add(30*time.Minute))

	periodEnd := env.clock.Now().Add(7 * 24 * time.Hour).Unix()
	env.gateway.On("GetSubscription", mock.Anything, "sub_1").Return(&stripe.ProviderSubscription{
		ID:        "sub_1",
		Status:    "active",
		PeriodEnd: periodEnd,
	}, nil)

	require.NoError(t, svc.ProcessEvent(invoicePayload("invoice.payment_succeeded", "sub_1"), ""))
	svc.Close()

	sub, err := env.subs.Get(ctx, "sub_1")
	require.NoError(t, err)
	assert.Equal(t, time.Unix(periodEnd, 0).UTC().Add(3*24*time.Hour), sub.ExpirationDate)

	published := env.publisher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, int64(9), published[0].Event.Value.OrganizationID)
	assert.True(t, published[0].Event.Value.Active)
}

func TestProcessEvent_IgnoresOtherEventTypes(t *testing.T) {
	env := newTestEnv()
	svc := NewStripeWebhookService(env.params)

	require.NoError(t, svc.ProcessEvent(invoicePayload("invoice.payment_failed", "sub_1"), ""))
	svc.Close()

	assert.Empty(t, env.publisher.Events())
	env.gateway.AssertNotCalled(t, "GetSubscription", mock.Anything, mock.Anything)
}

func TestProcessEvent_RejectsMalformedPayload(t *testing.T) {
	env := newTestEnv()
	svc := NewStripeWebhookService(env.params)
	defer svc.Close()

	err := svc.ProcessEvent([]byte("not json"), "")
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	err = svc.ProcessEvent(invoicePayload("invoice.payment_succeeded", ""), "")
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestProcessEvent_VerifiesSignatureWhenSecretConfigured(t *testing.T) {
	env := newTestEnv()
	env.params.Config.Stripe.WebhookSecret = "whsec_test"
	svc := NewStripeWebhookService(env.params)
	defer svc.Close()

	payload := invoicePayload("invoice.payment_failed", "sub_1")

	signedAt := time.Now()
	header := fmt.Sprintf("t=%d,v1=%s",
		signedAt.Unix(),
		hex.EncodeToString(webhook.ComputeSignature(signedAt, payload, "whsec_test")),
	)
	require.NoError(t, svc.ProcessEvent(payload, header))

	err := svc.ProcessEvent(payload, fmt.Sprintf("t=%d,v1=deadbeef", signedAt.Unix()))
	require.Error(t, err)
	assert.True(t, ierr.IsPermissionDenied(err))

	err = svc.ProcessEvent(payload, "")
	require.Error(t, err)
	assert.True(t, ierr.IsPermissionDenied(err))
}
