package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/apnmt/payment/internal/domain/customer"
	"github.com/apnmt/payment/internal/domain/subscription"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore[string]()

	store.Set(ctx, "b", "second")
	store.Set(ctx, "a", "first")
	store.Set(ctx, "c", "third")

	assert.Equal(t, []string{"second", "first", "third"}, store.All(ctx))

	require.True(t, store.Delete(ctx, "a"))
	assert.Equal(t, []string{"second", "third"}, store.All(ctx))
	assert.False(t, store.Delete(ctx, "a"))
}

func TestInMemorySubscriptionStore_ListExpiredBefore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemorySubscriptionStore()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, &subscription.Subscription{
		ID:             "sub_past",
		CustomerID:     "cus_1",
		ExpirationDate: now.Add(-time.Minute),
	}))
	require.NoError(t, store.Save(ctx, &subscription.Subscription{
		ID:             "sub_boundary",
		CustomerID:     "cus_1",
		ExpirationDate: now,
	}))
	require.NoError(t, store.Save(ctx, &subscription.Subscription{
		ID:             "sub_future",
		CustomerID:     "cus_1",
		ExpirationDate: now.Add(time.Minute),
	}))

	expired, err := store.ListExpiredBefore(ctx, now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "sub_past", expired[0].ID)
}

func TestInMemorySubscriptionStore_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	store := NewInMemorySubscriptionStore()

	original := &subscription.Subscription{
		ID:         "sub_1",
		CustomerID: "cus_1",
		Items: []*subscription.Item{
			{ID: "si_1", PriceID: "price_1", Quantity: 1},
		},
	}
	require.NoError(t, store.Save(ctx, original))

	// Mutating what was saved or read must not leak into the store.
	original.Items[0].Quantity = 99
	got, err := store.Get(ctx, "sub_1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Items[0].Quantity)

	got.CustomerID = "cus_other"
	again, err := store.Get(ctx, "sub_1")
	require.NoError(t, err)
	assert.Equal(t, "cus_1", again.CustomerID)
}

func TestInMemoryCustomerStore_GetByOrganizationID(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryCustomerStore()

	require.NoError(t, store.Save(ctx, &customer.Customer{
		ID:             "cus_1",
		OrganizationID: 1,
		Email:          "billing@example.org",
	}))

	got, err := store.GetByOrganizationID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "cus_1", got.ID)

	_, err = store.GetByOrganizationID(ctx, 2)
	assert.True(t, ierr.IsNotFound(err))
}
