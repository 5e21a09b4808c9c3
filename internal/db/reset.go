package db

import (
	"context"
)

// ResetCounts reports what a daily reset touched.
type ResetCounts struct {
	RestoredProducts     int
	DeletedAllotments    int
	DeletedDistributions int
}

// ResetInventory rebases every product's pool to its daily baseline and wipes
// all allotments and distributions, in one transaction. Distributions go first
// to keep their allotment references valid until the end.
func (db *Database) ResetInventory(ctx context.Context) (*ResetCounts, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var counts ResetCounts

	tag, err := tx.Exec(ctx,
		`UPDATE products SET quantity = daily_quantity, updated_at = now()`)
	if err != nil {
		return nil, err
	}
	counts.RestoredProducts = int(tag.RowsAffected())

	tag, err = tx.Exec(ctx, `DELETE FROM distributions`)
	if err != nil {
		return nil, err
	}
	counts.DeletedDistributions = int(tag.RowsAffected())

	tag, err = tx.Exec(ctx, `DELETE FROM allotments`)
	if err != nil {
		return nil, err
	}
	counts.DeletedAllotments = int(tag.RowsAffected())

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &counts, nil
}
