package postgres

import (
	"context"
	"database/sql"

	domainPrice "github.com/apnmt/payment/internal/domain/price"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/postgres"
	"github.com/apnmt/payment/internal/types"
)

type priceRepository struct {
	client *postgres.Client
	logger *logger.Logger
}

// NewPriceRepository creates a new postgres-backed price repository
func NewPriceRepository(client *postgres.Client, logger *logger.Logger) domainPrice.Repository {
	return &priceRepository{
		client: client,
		logger: logger,
	}
}

const priceColumns = `id, product_id, nickname, currency, amount, billing_interval, created_at, updated_at`

func (r *priceRepository) Get(ctx context.Context, id string) (*domainPrice.Price, error) {
	row := r.client.Querier(ctx).QueryRowContext(ctx, `
		SELECT `+priceColumns+`
		FROM prices
		WHERE id = $1
	`, id)

	p, err := scanPrice(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewErrorf("price %s not found", id).
				WithHint("No price exists with the given ID").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch price").
			Mark(ierr.ErrDatabase)
	}
	return p, nil
}

func (r *priceRepository) List(ctx context.Context) ([]*domainPrice.Price, error) {
	return r.list(ctx, `SELECT `+priceColumns+` FROM prices ORDER BY created_at`)
}

func (r *priceRepository) ListByProduct(ctx context.Context, productID string) ([]*domainPrice.Price, error) {
	return r.list(ctx, `SELECT `+priceColumns+` FROM prices WHERE product_id = $1 ORDER BY created_at`, productID)
}

func (r *priceRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domainPrice.Price, error) {
	rows, err := r.client.Querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list prices").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var prices []*domainPrice.Price
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan price row").
				Mark(ierr.ErrDatabase)
		}
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to iterate price rows").
			Mark(ierr.ErrDatabase)
	}
	return prices, nil
}

func (r *priceRepository) Save(ctx context.Context, p *domainPrice.Price) error {
	r.logger.Debugw("saving price", "price_id", p.ID, "product_id", p.ProductID)

	_, err := r.client.Querier(ctx).ExecContext(ctx, `
		INSERT INTO prices (id, product_id, nickname, currency, amount, billing_interval, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			nickname = EXCLUDED.nickname,
			updated_at = EXCLUDED.updated_at
	`, p.ID, p.ProductID, p.Nickname, string(p.Currency), p.Amount, string(p.Interval), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save price").
			WithReportableDetails(map[string]interface{}{
				"price_id": p.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *priceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.client.Querier(ctx).ExecContext(ctx, `DELETE FROM prices WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete price").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewErrorf("price %s not found", id).
			WithHint("No price exists with the given ID").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func scanPrice(row rowScanner) (*domainPrice.Price, error) {
	p := &domainPrice.Price{}
	var currency, interval string
	if err := row.Scan(&p.ID, &p.ProductID, &p.Nickname, &currency, &p.Amount, &interval, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Currency = types.Currency(currency)
	p.Interval = types.BillingInterval(interval)
	return p, nil
}
