package postgres

import (
	"context"
	"database/sql"
	"time"

	domainSubscription "github.com/apnmt/payment/internal/domain/subscription"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/postgres"
)

type subscriptionRepository struct {
	client *postgres.Client
	logger *logger.Logger
}

// NewSubscriptionRepository creates a new postgres-backed subscription repository
func NewSubscriptionRepository(client *postgres.Client, logger *logger.Logger) domainSubscription.Repository {
	return &subscriptionRepository{
		client: client,
		logger: logger,
	}
}

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*domainSubscription.Subscription, error) {
	row := r.client.Querier(ctx).QueryRowContext(ctx, `
		SELECT id, customer_id, expiration_date, created_at, updated_at
		FROM subscriptions
		WHERE id = $1
	`, id)

	s, err := scanSubscription(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewErrorf("subscription %s not found", id).
				WithHint("No subscription exists with the given ID").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch subscription").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadItems(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *subscriptionRepository) List(ctx context.Context) ([]*domainSubscription.Subscription, error) {
	return r.list(ctx, `
		SELECT id, customer_id, expiration_date, created_at, updated_at
		FROM subscriptions
		ORDER BY created_at
	`)
}

func (r *subscriptionRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domainSubscription.Subscription, error) {
	return r.list(ctx, `
		SELECT id, customer_id, expiration_date, created_at, updated_at
		FROM subscriptions
		WHERE customer_id = $1
		ORDER BY created_at
	`, customerID)
}

// ListExpiredBefore returns subscriptions whose expiration date is strictly
// before ts. This backs the expiration sweep.
func (r *subscriptionRepository) ListExpiredBefore(ctx context.Context, ts time.Time) ([]*domainSubscription.Subscription, error) {
	return r.list(ctx, `
		SELECT id, customer_id, expiration_date, created_at, updated_at
		FROM subscriptions
		WHERE expiration_date < $1
		ORDER BY expiration_date
	`, ts)
}

func (r *subscriptionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domainSubscription.Subscription, error) {
	rows, err := r.client.Querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list subscriptions").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var subscriptions []*domainSubscription.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan subscription row").
				Mark(ierr.ErrDatabase)
		}
		subscriptions = append(subscriptions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to iterate subscription rows").
			Mark(ierr.ErrDatabase)
	}

	for _, s := range subscriptions {
		if err := r.loadItems(ctx, s); err != nil {
			return nil, err
		}
	}
	return subscriptions, nil
}

// Save upserts the subscription and replaces its items in one transaction.
func (r *subscriptionRepository) Save(ctx context.Context, s *domainSubscription.Subscription) error {
	r.logger.Debugw("saving subscription",
		"subscription_id", s.ID,
		"customer_id", s.CustomerID,
		"expiration_date", s.ExpirationDate,
	)

	return r.client.WithTx(ctx, func(ctx context.Context) error {
		q := r.client.Querier(ctx)

		_, err := q.ExecContext(ctx, `
			INSERT INTO subscriptions (id, customer_id, expiration_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				expiration_date = EXCLUDED.expiration_date,
				updated_at = EXCLUDED.updated_at
		`, s.ID, s.CustomerID, s.ExpirationDate, s.CreatedAt, s.UpdatedAt)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to save subscription").
				WithReportableDetails(map[string]interface{}{
					"subscription_id": s.ID,
				}).
				Mark(ierr.ErrDatabase)
		}

		if _, err := q.ExecContext(ctx, `DELETE FROM subscription_items WHERE subscription_id = $1`, s.ID); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to replace subscription items").
				Mark(ierr.ErrDatabase)
		}

		for _, item := range s.Items {
			_, err := q.ExecContext(ctx, `
				INSERT INTO subscription_items (id, subscription_id, price_id, quantity)
				VALUES ($1, $2, $3, $4)
			`, item.ID, s.ID, item.PriceID, item.Quantity)
			if err != nil {
				return ierr.WithError(err).
					WithHint("Failed to save subscription item").
					WithReportableDetails(map[string]interface{}{
						"subscription_id": s.ID,
						"item_id":         item.ID,
					}).
					Mark(ierr.ErrDatabase)
			}
		}
		return nil
	})
}

// Delete removes the subscription and cascades to its items.
func (r *subscriptionRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting subscription", "subscription_id", id)

	return r.client.WithTx(ctx, func(ctx context.Context) error {
		q := r.client.Querier(ctx)

		if _, err := q.ExecContext(ctx, `DELETE FROM subscription_items WHERE subscription_id = $1`, id); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to delete subscription items").
				Mark(ierr.ErrDatabase)
		}

		res, err := q.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to delete subscription").
				Mark(ierr.ErrDatabase)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ierr.NewErrorf("subscription %s not found", id).
				WithHint("No subscription exists with the given ID").
				Mark(ierr.ErrNotFound)
		}
		return nil
	})
}

func (r *subscriptionRepository) loadItems(ctx context.Context, s *domainSubscription.Subscription) error {
	rows, err := r.client.Querier(ctx).QueryContext(ctx, `
		SELECT id, price_id, quantity
		FROM subscription_items
		WHERE subscription_id = $1
		ORDER BY id
	`, s.ID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to fetch subscription items").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	for rows.Next() {
		item := &domainSubscription.Item{}
		if err := rows.Scan(&item.ID, &item.PriceID, &item.Quantity); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to scan subscription item row").
				Mark(ierr.ErrDatabase)
		}
		s.Items = append(s.Items, item)
	}
	return rows.Err()
}

func scanSubscription(row rowScanner) (*domainSubscription.Subscription, error) {
	s := &domainSubscription.Subscription{}
	if err := row.Scan(&s.ID, &s.CustomerID, &s.ExpirationDate, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}
