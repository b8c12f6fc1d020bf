package service

import (
	"context"
	"testing"
	"time"

	"github.com/apnmt/payment/internal/api/dto"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/integration/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer_CreatesProviderRecordFirst(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewCustomerService(env.params)

	env.gateway.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(req *stripe.CreateCustomerRequest) bool {
		return req.OrganizationID == 1 && req.Email == "billing@example.org"
	})).Return(&stripe.ProviderCustomer{ID: "cus_provider", Email: "billing@example.org"}, nil)

	resp, err := svc.CreateCustomer(ctx, &dto.CreateCustomerRequest{
		OrganizationID: 1,
		Email:          "billing@example.org",
	})
	require.NoError(t, err)
	assert.Equal(t, "cus_provider", resp.ID)
	assert.Equal(t, int64(1), resp.OrganizationID)

	stored, err := env.customers.Get(ctx, "cus_provider")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.OrganizationID)
}

func TestCreateCustomer_RejectsDuplicateOrganization(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewCustomerService(env.params)

	env.seedCustomer(ctx, "cus_existing", 1)

	_, err := svc.CreateCustomer(ctx, &dto.CreateCustomerRequest{
		OrganizationID: 1,
		Email:          "billing@example.org",
	})
	require.Error(t, err)
	assert.True(t, ierr.IsAlreadyExists(err))
	env.gateway.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
}

func TestCreateCustomer_ValidationFailures(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewCustomerService(env.params)

	_, err := svc.CreateCustomer(ctx, &dto.CreateCustomerRequest{Email: "billing@example.org"})
	assert.True(t, ierr.IsValidation(err))

	_, err = svc.CreateCustomer(ctx, &dto.CreateCustomerRequest{OrganizationID: 1})
	assert.True(t, ierr.IsValidation(err))
}

func TestDeleteCustomer_CascadesToSubscriptions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewCustomerService(env.params)

	env.seedCustomer(ctx, "cus_1", 1)
	env.seedSubscription(ctx, "sub_1", "cus_1", env.clock.Now().Add(time.Hour))

	require.NoError(t, svc.DeleteCustomer(ctx, "cus_1"))

	_, err := env.customers.Get(ctx, "cus_1")
	assert.True(t, ierr.IsNotFound(err))
	_, err = env.subs.Get(ctx, "sub_1")
	assert.True(t, ierr.IsNotFound(err))
}

func TestDeleteCustomer_UnknownCustomer(t *testing.T) {
	env := newTestEnv()
	svc := NewCustomerService(env.params)

	err := svc.DeleteCustomer(context.Background(), "cus_missing")
	assert.True(t, ierr.IsNotFound(err))
}
