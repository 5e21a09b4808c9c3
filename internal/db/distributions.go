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

const distributionResponseQuery = `
	SELECT d.id, d.product_id, p.name, d.distributor_id, u.name, u.email,
	       d.allotment_id, a.quantity, d.recipient_name, d.quantity, d.notes,
	       d.created_at, d.updated_at
	FROM distributions d
	JOIN products p ON p.id = d.product_id
	JOIN users u ON u.id = d.distributor_id
	JOIN allotments a ON a.id = d.allotment_id`

func scanDistributionResponse(row pgx.Row) (*models.DistributionResponse, error) {
	var d models.DistributionResponse
	err := row.Scan(&d.ID, &d.Product.ID, &d.Product.Name,
		&d.Distributor.ID, &d.Distributor.Name, &d.Distributor.Email,
		&d.Allotment.ID, &d.Allotment.Quantity, &d.RecipientName, &d.Quantity,
		&d.Notes, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// CreateDistribution records units moved from a collected allotment to a
// recipient. The allotment row is locked while the headroom is computed, so
// two concurrent requests cannot jointly overallocate.
func (db *Database) CreateDistribution(ctx context.Context, allotmentID, recipientName string, quantity int, notes *string) (*models.Distribution, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var productID, distributorID string
	var allotted int
	var status models.AllotmentStatus
	err = tx.QueryRow(ctx, `
		SELECT product_id, distributor_id, quantity, status
		FROM allotments WHERE id = $1 FOR UPDATE`, allotmentID).
		Scan(&productID, &distributorID, &allotted, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if status != models.AllotmentStatusCollected {
		return nil, errs.ErrInvalidState
	}

	var distributed int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM distributions WHERE allotment_id = $1`,
		allotmentID).Scan(&distributed)
	if err != nil {
		return nil, err
	}
	if headroom := allotted - distributed; quantity > headroom {
		return nil, &errs.InsufficientQuantityError{Available: headroom}
	}

	var d models.Distribution
	err = tx.QueryRow(ctx, `
		INSERT INTO distributions (id, distributor_id, product_id, allotment_id, recipient_name, quantity, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, distributor_id, product_id, allotment_id, recipient_name, quantity, notes, created_at, updated_at`,
		uuid.NewString(), distributorID, productID, allotmentID,
		strings.TrimSpace(recipientName), quantity, notes).
		Scan(&d.ID, &d.DistributorID, &d.ProductID, &d.AllotmentID,
			&d.RecipientName, &d.Quantity, &d.Notes, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDistributions returns all distributions with references resolved,
// newest first.
func (db *Database) ListDistributions(ctx context.Context) ([]models.DistributionResponse, error) {
	rows, err := db.Pool.Query(ctx, distributionResponseQuery+` ORDER BY d.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDistributionResponses(rows)
}

// ListDistributionsByDistributor returns one distributor's distributions,
// newest first.
func (db *Database) ListDistributionsByDistributor(ctx context.Context, distributorID string) ([]models.DistributionResponse, error) {
	rows, err := db.Pool.Query(ctx,
		distributionResponseQuery+` WHERE d.distributor_id = $1 ORDER BY d.created_at DESC`,
		distributorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDistributionResponses(rows)
}

func collectDistributionResponses(rows pgx.Rows) ([]models.DistributionResponse, error) {
	distributions := []models.DistributionResponse{}
	for rows.Next() {
		var d models.DistributionResponse
		if err := rows.Scan(&d.ID, &d.Product.ID, &d.Product.Name,
			&d.Distributor.ID, &d.Distributor.Name, &d.Distributor.Email,
			&d.Allotment.ID, &d.Allotment.Quantity, &d.RecipientName, &d.Quantity,
			&d.Notes, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		distributions = append(distributions, d)
	}
	return distributions, rows.Err()
}

// GetDistribution returns the raw distribution row, used for ownership checks.
func (db *Database) GetDistribution(ctx context.Context, id string) (*models.Distribution, error) {
	var d models.Distribution
	err := db.Pool.QueryRow(ctx, `
		SELECT id, distributor_id, product_id, allotment_id, recipient_name, quantity, notes, created_at, updated_at
		FROM distributions WHERE id = $1`, id).
		Scan(&d.ID, &d.DistributorID, &d.ProductID, &d.AllotmentID,
			&d.RecipientName, &d.Quantity, &d.Notes, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// GetDistributionResponse returns one distribution with references resolved.
func (db *Database) GetDistributionResponse(ctx context.Context, id string) (*models.DistributionResponse, error) {
	return scanDistributionResponse(db.Pool.QueryRow(ctx, distributionResponseQuery+` WHERE d.id = $1`, id))
}

// UpdateDistribution replaces recipient, quantity and notes. The allotment row
// is locked and the headroom recomputed excluding the record being edited.
func (db *Database) UpdateDistribution(ctx context.Context, id, recipientName string, quantity int, notes *string) (*models.Distribution, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var allotmentID string
	err = tx.QueryRow(ctx,
		`SELECT allotment_id FROM distributions WHERE id = $1`, id).Scan(&allotmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	var allotted int
	err = tx.QueryRow(ctx,
		`SELECT quantity FROM allotments WHERE id = $1 FOR UPDATE`, allotmentID).Scan(&allotted)
	if err != nil {
		return nil, err
	}

	var distributedOthers int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0) FROM distributions
		WHERE allotment_id = $1 AND id <> $2`, allotmentID, id).Scan(&distributedOthers)
	if err != nil {
		return nil, err
	}
	if headroom := allotted - distributedOthers; quantity > headroom {
		return nil, &errs.InsufficientQuantityError{Available: headroom}
	}

	var d models.Distribution
	err = tx.QueryRow(ctx, `
		UPDATE distributions
		SET recipient_name = $2, quantity = $3, notes = $4, updated_at = now()
		WHERE id = $1
		RETURNING id, distributor_id, product_id, allotment_id, recipient_name, quantity, notes, created_at, updated_at`,
		id, strings.TrimSpace(recipientName), quantity, notes).
		Scan(&d.ID, &d.DistributorID, &d.ProductID, &d.AllotmentID,
			&d.RecipientName, &d.Quantity, &d.Notes, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDistribution removes a distribution. Nothing flows back to the
// allotment or product; only a reset or a return replenishes the pool.
func (db *Database) DeleteDistribution(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM distributions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
