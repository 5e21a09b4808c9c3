package db

import (
	"context"

	"github.com/milkantri/inventory-service/internal/models"
)

// GetInventorySummary aggregates ledger state for the admin dashboard.
func (db *Database) GetInventorySummary(ctx context.Context) (*models.InventorySummary, error) {
	summary := &models.InventorySummary{
		AllotmentsByStatus: map[models.AllotmentStatus]int{},
	}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM products`).
		Scan(&summary.Products, &summary.PoolQuantity)
	if err != nil {
		return nil, err
	}

	err = db.Pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active)
		FROM users WHERE role = 'distributor'`).
		Scan(&summary.Distributors, &summary.ActiveDistributors)
	if err != nil {
		return nil, err
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT status, COUNT(*), COALESCE(SUM(quantity), 0) FROM allotments GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status models.AllotmentStatus
		var count, quantity int
		if err := rows.Scan(&status, &count, &quantity); err != nil {
			return nil, err
		}
		summary.AllotmentsByStatus[status] = count
		summary.Allotments += count
		summary.AllottedQuantity += quantity
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM distributions`).
		Scan(&summary.Distributions, &summary.DistributedTotal)
	if err != nil {
		return nil, err
	}

	return summary, nil
}
