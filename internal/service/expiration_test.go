package service

import (
	"context"
	"testing"
	"time"

	"github.com/apnmt/payment/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckExpirationOfSubscriptions_PublishesDeactivationForExpired(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewSubscriptionExpirationService(env.params)

	env.seedCustomer(ctx, "cus_1", 1)
	env.seedCustomer(ctx, "cus_2", 2)

	now := env.clock.Now()
	env.seedSubscription(ctx, "sub_expired_1", "cus_1", now.Add(-time.Hour))
	env.seedSubscription(ctx, "sub_expired_2", "cus_2", now.Add(-time.Minute))
	env.seedSubscription(ctx, "sub_active", "cus_1", now.Add(24*time.Hour))

	require.NoError(t, svc.CheckExpirationOfSubscriptions(ctx))

	published := env.publisher.Events()
	require.Len(t, published, 2)

	orgs := make(map[int64]bool)
	for _, p := range published {
		assert.Equal(t, types.TopicOrganizationActivationChanged, p.Topic)
		assert.Equal(t, types.EventTypeOrganizationActivationChanged, p.Event.Type)
		assert.False(t, p.Event.Value.Active)
		assert.Equal(t, now, p.Event.Timestamp)
		orgs[p.Event.Value.OrganizationID] = true
	}
	assert.True(t, orgs[1])
	assert.True(t, orgs[2])
}

func TestCheckExpirationOfSubscriptions_NoExpiredNoEvents(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewSubscriptionExpirationService(env.params)

	env.seedCustomer(ctx, "cus_1", 1)
	env.seedSubscription(ctx, "sub_active", "cus_1", env.clock.Now().Add(time.Hour))

	require.NoError(t, svc.CheckExpirationOfSubscriptions(ctx))
	assert.Empty(t, env.publisher.Events())
}

func TestCheckExpirationOfSubscriptions_BoundaryIsExclusive(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewSubscriptionExpirationService(env.params)

	env.seedCustomer(ctx, "cus_1", 1)
	// Expiring exactly now is not yet expired; the match is strictly before.
	env.seedSubscription(ctx, "sub_boundary", "cus_1", env.clock.Now())

	require.NoError(t, svc.CheckExpirationOfSubscriptions(ctx))
	assert.Empty(t, env.publisher.Events())
}

func TestCheckExpirationOfSubscriptions_DoesNotMutateSubscriptions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewSubscriptionExpirationService(env.params)

	env.seedCustomer(ctx, "cus_1", 1)
	expiration := env.clock.Now().Add(-time.Hour)
	env.seedSubscription(ctx, "sub_expired", "cus_1", expiration)

	require.NoError(t, svc.CheckExpirationOfSubscriptions(ctx))

	sub, err := env.subs.Get(ctx, "sub_expired")
	require.NoError(t, err)
	assert.Equal(t, expiration, sub.ExpirationDate)
}

func TestCheckExpirationOfSubscriptions_MissingCustomerSkipsOnlyThatMatch(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewSubscriptionExpirationService(env.params)

	env.seedCustomer(ctx, "cus_ok", 7)

	now := env.clock.Now()
	env.seedSubscription(ctx, "sub_orphan", "cus_missing", now.Add(-time.Hour))
	env.seedSubscription(ctx, "sub_ok", "cus_ok", now.Add(-time.Hour))

	require.NoError(t, svc.CheckExpirationOfSubscriptions(ctx))

	published := env.publisher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, int64(7), published[0].Event.Value.OrganizationID)
	assert.False(t, published[0].Event.Value.Active)
}

func TestCheckExpirationOfSubscriptions_PublishFailureSkipsOnlyThatMatch(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewSubscriptionExpirationService(env.params)

	env.seedCustomer(ctx, "cus_1", 1)
	env.seedCustomer(ctx, "cus_2", 2)

	now := env.clock.Now()
	env.seedSubscription(ctx, "sub_expired_1", "cus_1", now.Add(-time.Hour))
	env.seedSubscription(ctx, "sub_expired_2", "cus_2", now.Add(-time.Hour))

	// The first publish fails; the sweep logs it and keeps going.
	env.publisher.failNext = 1

	require.NoError(t, svc.CheckExpirationOfSubscriptions(ctx))

	published := env.publisher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, int64(2), published[0].Event.Value.OrganizationID)
	assert.False(t, published[0].Event.Value.Active)

	// The failed match is still expired and is picked up by the next run.
	env.clock.Advance(time.Minute)
	require.NoError(t, svc.CheckExpirationOfSubscriptions(ctx))
	assert.Len(t, env.publisher.Events(), 3)
}

func TestCheckExpirationOfSubscriptions_DetectsAgainOnNextRun(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewSubscriptionExpirationService(env.params)

	env.seedCustomer(ctx, "cus_1", 1)
	env.seedSubscription(ctx, "sub_expired", "cus_1", env.clock.Now().Add(-time.Hour))

	require.NoError(t, svc.CheckExpirationOfSubscriptions(ctx))
	env.clock.Advance(time.Hour)
	require.NoError(t, svc.CheckExpirationOfSubscriptions(ctx))

	// Still expired, still signalled; consumers de-duplicate latest-wins.
	assert.Len(t, env.publisher.Events(), 2)
}
