package db

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/milkantri/inventory-service/internal/errs"
	"github.com/milkantri/inventory-service/internal/models"
)

const productColumns = `id, name, quantity, daily_quantity, created_by, created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Quantity, &p.DailyQuantity,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CreateProduct inserts a product. The initial quantity doubles as the daily
// baseline.
func (db *Database) CreateProduct(ctx context.Context, name string, quantity int, createdBy string) (*models.Product, error) {
	query := `
		INSERT INTO products (id, name, quantity, daily_quantity, created_by)
		VALUES ($1, $2, $3, $3, $4)
		RETURNING ` + productColumns

	return scanProduct(db.Pool.QueryRow(ctx, query,
		uuid.NewString(), strings.TrimSpace(name), quantity, createdBy))
}

// ListProducts returns all products, newest first.
func (db *Database) ListProducts(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.DailyQuantity,
			&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct looks a product up by id.
func (db *Database) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(db.Pool.QueryRow(ctx, query, id))
}

// UpdateProduct overwrites name and quantity. The daily baseline is rebased to
// the new quantity, matching the admin edit semantics.
func (db *Database) UpdateProduct(ctx context.Context, id, name string, quantity int) (*models.Product, error) {
	query := `
		UPDATE products
		SET name = $2, quantity = $3, daily_quantity = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + productColumns

	return scanProduct(db.Pool.QueryRow(ctx, query, id, strings.TrimSpace(name), quantity))
}

// DeleteProduct removes a product and, through ON DELETE CASCADE, its
// allotments and their distributions.
func (db *Database) DeleteProduct(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
