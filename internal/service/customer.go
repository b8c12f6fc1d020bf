package service

import (
	"context"

	"github.com/apnmt/payment/internal/api/dto"
	"github.com/apnmt/payment/internal/domain/customer"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/integration/stripe"
)

// CustomerService manages billing customers. Each organization has at most
// one customer; the local id mirrors the provider's customer id.
type CustomerService interface {
	CreateCustomer(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error)
	GetCustomerByOrganization(ctx context.Context, organizationID int64) (*dto.CustomerResponse, error)
	ListCustomers(ctx context.Context) ([]*dto.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type customerService struct {
	ServiceParams
}

// NewCustomerService creates a new customer service
func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{ServiceParams: params}
}

func (s *customerService) CreateCustomer(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.CustomerRepo.GetByOrganizationID(ctx, req.OrganizationID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ierr.NewErrorf("organization %d already has a customer", req.OrganizationID).
			WithHint("An organization can only have one billing customer").
			WithReportableDetails(map[string]any{
				"organization_id": req.OrganizationID,
				"customer_id":     existing.ID,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	providerCust, err := s.BillingGateway.CreateCustomer(ctx, &stripe.CreateCustomerRequest{
		Email:          req.Email,
		OrganizationID: req.OrganizationID,
	})
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	cust := &customer.Customer{
		ID:             providerCust.ID,
		OrganizationID: req.OrganizationID,
		Email:          req.Email,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.CustomerRepo.Save(ctx, cust); err != nil {
		return nil, err
	}

	s.Logger.Infow("created customer",
		"customer_id", cust.ID,
		"organization_id", cust.OrganizationID,
	)
	return dto.NewCustomerResponse(cust), nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	cust, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(cust), nil
}

func (s *customerService) GetCustomerByOrganization(ctx context.Context, organizationID int64) (*dto.CustomerResponse, error) {
	cust, err := s.CustomerRepo.GetByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(cust), nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*dto.CustomerResponse, error) {
	customers, err := s.CustomerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		responses = append(responses, dto.NewCustomerResponse(c))
	}
	return responses, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	// Ensure the customer exists before the cascade so callers get a clean
	// not-found instead of a silent no-op.
	if _, err := s.CustomerRepo.Get(ctx, id); err != nil {
		return err
	}

	if err := s.CustomerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.Infow("deleted customer", "customer_id", id)
	return nil
}
