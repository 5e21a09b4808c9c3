package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/milkantri/inventory-service/internal/errs"
	"github.com/milkantri/inventory-service/internal/models"
)

const allotmentColumns = `id, product_id, distributor_id, quantity, allotted_by, status, notes, created_at, updated_at`

// allotmentResponseQuery resolves the product/distributor/allottedBy
// references in one round trip.
const allotmentResponseQuery = `
	SELECT a.id, a.product_id, p.name, a.distributor_id, d.name, d.email,
	       a.quantity, a.status, a.notes, a.allotted_by, u.name, a.created_at
	FROM allotments a
	JOIN products p ON p.id = a.product_id
	JOIN users d ON d.id = a.distributor_id
	JOIN users u ON u.id = a.allotted_by`

func scanAllotmentResponse(row pgx.Row) (*models.AllotmentResponse, error) {
	var a models.AllotmentResponse
	err := row.Scan(&a.ID, &a.Product.ID, &a.Product.Name,
		&a.Distributor.ID, &a.Distributor.Name, &a.Distributor.Email,
		&a.Quantity, &a.Status, &a.Notes,
		&a.AllottedBy.ID, &a.AllottedBy.Name, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// CreateAllotment commits quantity from a product to a distributor. The
// product row is locked while its pool is checked and decremented, so the
// insert and the decrement land atomically and the pool can never go negative.
func (db *Database) CreateAllotment(ctx context.Context, productID, distributorID, allottedBy string, quantity int, notes *string) (*models.Allotment, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var available int
	err = tx.QueryRow(ctx,
		`SELECT quantity FROM products WHERE id = $1 FOR UPDATE`, productID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if available < quantity {
		return nil, &errs.InsufficientQuantityError{Available: available}
	}

	var distributorExists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND role = 'distributor')`,
		distributorID).Scan(&distributorExists)
	if err != nil {
		return nil, err
	}
	if !distributorExists {
		return nil, errs.ErrNotFound
	}

	var a models.Allotment
	err = tx.QueryRow(ctx, `
		INSERT INTO allotments (id, product_id, distributor_id, quantity, allotted_by, status, notes)
		VALUES ($1, $2, $3, $4, $5, 'pending', $6)
		RETURNING `+allotmentColumns,
		uuid.NewString(), productID, distributorID, quantity, allottedBy, notes).
		Scan(&a.ID, &a.ProductID, &a.DistributorID, &a.Quantity, &a.AllottedBy,
			&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE products SET quantity = quantity - $2, updated_at = now() WHERE id = $1`,
		productID, quantity)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAllotments returns all allotments with references resolved, newest first.
func (db *Database) ListAllotments(ctx context.Context) ([]models.AllotmentResponse, error) {
	rows, err := db.Pool.Query(ctx, allotmentResponseQuery+` ORDER BY a.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAllotmentResponses(rows)
}

// ListAllotmentsByDistributor returns one distributor's allotments, newest first.
func (db *Database) ListAllotmentsByDistributor(ctx context.Context, distributorID string) ([]models.AllotmentResponse, error) {
	rows, err := db.Pool.Query(ctx,
		allotmentResponseQuery+` WHERE a.distributor_id = $1 ORDER BY a.created_at DESC`,
		distributorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAllotmentResponses(rows)
}

func collectAllotmentResponses(rows pgx.Rows) ([]models.AllotmentResponse, error) {
	allotments := []models.AllotmentResponse{}
	for rows.Next() {
		var a models.AllotmentResponse
		if err := rows.Scan(&a.ID, &a.Product.ID, &a.Product.Name,
			&a.Distributor.ID, &a.Distributor.Name, &a.Distributor.Email,
			&a.Quantity, &a.Status, &a.Notes,
			&a.AllottedBy.ID, &a.AllottedBy.Name, &a.CreatedAt); err != nil {
			return nil, err
		}
		allotments = append(allotments, a)
	}
	return allotments, rows.Err()
}

// GetAllotment returns the raw allotment row, used for ownership and lifecycle
// checks.
func (db *Database) GetAllotment(ctx context.Context, id string) (*models.Allotment, error) {
	var a models.Allotment
	err := db.Pool.QueryRow(ctx,
		`SELECT `+allotmentColumns+` FROM allotments WHERE id = $1`, id).
		Scan(&a.ID, &a.ProductID, &a.DistributorID, &a.Quantity, &a.AllottedBy,
			&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetAllotmentResponse returns one allotment with references resolved.
func (db *Database) GetAllotmentResponse(ctx context.Context, id string) (*models.AllotmentResponse, error) {
	return scanAllotmentResponse(db.Pool.QueryRow(ctx, allotmentResponseQuery+` WHERE a.id = $1`, id))
}

// UpdateAllotmentStatus sets the lifecycle status. Returned allotments are
// terminal and cannot be flipped back.
func (db *Database) UpdateAllotmentStatus(ctx context.Context, id string, status models.AllotmentStatus) (*models.Allotment, error) {
	var a models.Allotment
	err := db.Pool.QueryRow(ctx, `
		UPDATE allotments SET status = $2, updated_at = now()
		WHERE id = $1 AND status <> 'returned'
		RETURNING `+allotmentColumns, id, string(status)).
		Scan(&a.ID, &a.ProductID, &a.DistributorID, &a.Quantity, &a.AllottedBy,
			&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err == nil {
		return &a, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// No row updated: either the allotment is gone or it is already returned.
	var exists bool
	if exErr := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM allotments WHERE id = $1)`, id).Scan(&exists); exErr != nil {
		return nil, exErr
	}
	if exists {
		return nil, errs.ErrInvalidState
	}
	return nil, errs.ErrNotFound
}

// ReturnAllotment moves an allotment to the terminal returned status and
// restores its undistributed units to the product pool: the full quantity for
// a pending allotment, the remaining headroom for a collected one.
func (db *Database) ReturnAllotment(ctx context.Context, id string) (int, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var productID string
	var quantity int
	var status models.AllotmentStatus
	err = tx.QueryRow(ctx,
		`SELECT product_id, quantity, status FROM allotments WHERE id = $1 FOR UPDATE`, id).
		Scan(&productID, &quantity, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errs.ErrNotFound
		}
		return 0, err
	}
	if status == models.AllotmentStatusReturned {
		return 0, errs.ErrInvalidState
	}

	returned := quantity
	if status == models.AllotmentStatusCollected {
		var distributed int
		err = tx.QueryRow(ctx,
			`SELECT COALESCE(SUM(quantity), 0) FROM distributions WHERE allotment_id = $1`, id).
			Scan(&distributed)
		if err != nil {
			return 0, err
		}
		returned = quantity - distributed
	}

	_, err = tx.Exec(ctx,
		`UPDATE allotments SET status = 'returned', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	if returned > 0 {
		_, err = tx.Exec(ctx,
			`UPDATE products SET quantity = quantity + $2, updated_at = now() WHERE id = $1`,
			productID, returned)
		if err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}
	return returned, nil
}
