package postgres

import (
	"context"
	"database/sql"

	domainCustomer "github.com/apnmt/payment/internal/domain/customer"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/postgres"
)

type customerRepository struct {
	client *postgres.Client
	logger *logger.Logger
}

// NewCustomerRepository creates a new postgres-backed customer repository
func NewCustomerRepository(client *postgres.Client, logger *logger.Logger) domainCustomer.Repository {
	return &customerRepository{
		client: client,
		logger: logger,
	}
}

func (r *customerRepository) Get(ctx context.Context, id string) (*domainCustomer.Customer, error) {
	row := r.client.Querier(ctx).QueryRowContext(ctx, `
		SELECT id, organization_id, email, created_at, updated_at
		FROM customers
		WHERE id = $1
	`, id)

	c, err := scanCustomer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewErrorf("customer %s not found", id).
				WithHint("No customer exists with the given ID").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch customer").
			Mark(ierr.ErrDatabase)
	}
	return c, nil
}

func (r *customerRepository) GetByOrganizationID(ctx context.Context, organizationID int64) (*domainCustomer.Customer, error) {
	row := r.client.Querier(ctx).QueryRowContext(ctx, `
		SELECT id, organization_id, email, created_at, updated_at
		FROM customers
		WHERE organization_id = $1
	`, organizationID)

	c, err := scanCustomer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewErrorf("no customer for organization %d", organizationID).
				WithHint("No customer exists for the given organization").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch customer by organization").
			Mark(ierr.ErrDatabase)
	}
	return c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]*domainCustomer.Customer, error) {
	rows, err := r.client.Querier(ctx).QueryContext(ctx, `
		SELECT id, organization_id, email, created_at, updated_at
		FROM customers
		ORDER BY created_at
	`)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list customers").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var customers []*domainCustomer.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan customer row").
				Mark(ierr.ErrDatabase)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to iterate customer rows").
			Mark(ierr.ErrDatabase)
	}
	return customers, nil
}

func (r *customerRepository) Save(ctx context.Context, c *domainCustomer.Customer) error {
	r.logger.Debugw("saving customer", "customer_id", c.ID, "organization_id", c.OrganizationID)

	_, err := r.client.Querier(ctx).ExecContext(ctx, `
		INSERT INTO customers (id, organization_id, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			updated_at = EXCLUDED.updated_at
	`, c.ID, c.OrganizationID, c.Email, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save customer").
			WithReportableDetails(map[string]interface{}{
				"customer_id": c.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

// Delete removes the customer together with its subscriptions and their
// items in a single transaction.
func (r *customerRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting customer", "customer_id", id)

	return r.client.WithTx(ctx, func(ctx context.Context) error {
		q := r.client.Querier(ctx)

		_, err := q.ExecContext(ctx, `
			DELETE FROM subscription_items
			WHERE subscription_id IN (SELECT id FROM subscriptions WHERE customer_id = $1)
		`, id)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to delete subscription items for customer").
				Mark(ierr.ErrDatabase)
		}

		if _, err := q.ExecContext(ctx, `DELETE FROM subscriptions WHERE customer_id = $1`, id); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to delete subscriptions for customer").
				Mark(ierr.ErrDatabase)
		}

		res, err := q.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to delete customer").
				Mark(ierr.ErrDatabase)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ierr.NewErrorf("customer %s not found", id).
				WithHint("No customer exists with the given ID").
				Mark(ierr.ErrNotFound)
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row rowScanner) (*domainCustomer.Customer, error) {
	c := &domainCustomer.Customer{}
	if err := row.Scan(&c.ID, &c.OrganizationID, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}
