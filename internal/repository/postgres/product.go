package postgres

import (
	"context"
	"database/sql"

	domainProduct "github.com/apnmt/payment/internal/domain/product"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/postgres"
)

type productRepository struct {
	client *postgres.Client
	logger *logger.Logger
}

// NewProductRepository creates a new postgres-backed product repository
func NewProductRepository(client *postgres.Client, logger *logger.Logger) domainProduct.Repository {
	return &productRepository{
		client: client,
		logger: logger,
	}
}

func (r *productRepository) Get(ctx context.Context, id string) (*domainProduct.Product, error) {
	row := r.client.Querier(ctx).QueryRowContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id)

	p := &domainProduct.Product{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewErrorf("product %s not found", id).
				WithHint("No product exists with the given ID").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch product").
			Mark(ierr.ErrDatabase)
	}
	return p, nil
}

func (r *productRepository) List(ctx context.Context) ([]*domainProduct.Product, error) {
	rows, err := r.client.Querier(ctx).QueryContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM products
		ORDER BY created_at
	`)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list products").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var products []*domainProduct.Product
	for rows.Next() {
		p := &domainProduct.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan product row").
				Mark(ierr.ErrDatabase)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to iterate product rows").
			Mark(ierr.ErrDatabase)
	}
	return products, nil
}

func (r *productRepository) Save(ctx context.Context, p *domainProduct.Product) error {
	r.logger.Debugw("saving product", "product_id", p.ID)

	_, err := r.client.Querier(ctx).ExecContext(ctx, `
		INSERT INTO products (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			updated_at = EXCLUDED.updated_at
	`, p.ID, p.Name, p.Description, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save product").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	res, err := r.client.Querier(ctx).ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete product").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewErrorf("product %s not found", id).
			WithHint("No product exists with the given ID").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
