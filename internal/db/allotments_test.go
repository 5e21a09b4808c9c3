package db

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/milkantri/inventory-service/internal/errs"
	"github.com/milkantri/inventory-service/internal/models"
)

var allotmentRows = []string{"id", "product_id", "distributor_id", "quantity", "allotted_by", "status", "notes", "created_at", "updated_at"}

func allotmentRow(id, productID, distributorID string, quantity int, status string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(allotmentRows).
		AddRow(id, productID, distributorID, quantity, "admin-1", status, nil, now, now)
}

func TestCreateAllotment_DecrementsPool(t *testing.T) {
	db, mock := newTestDB(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT quantity FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(100))
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE id = \$1 AND role = 'distributor'\)`).
		WithArgs("d1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO allotments`).
		WithArgs(pgxmock.AnyArg(), "p1", "d1", 40, "admin-1", pgxmock.AnyArg()).
		WillReturnRows(allotmentRow("a1", "p1", "d1", 40, "pending"))
	mock.ExpectExec(`UPDATE products SET quantity = quantity - \$2`).
		WithArgs("p1", 40).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	a, err := db.CreateAllotment(context.Background(), "p1", "d1", "admin-1", 40, nil)
	require.NoError(t, err)
	require.Equal(t, models.AllotmentStatusPending, a.Status)
	require.Equal(t, 40, a.Quantity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAllotment_InsufficientQuantityLeavesPool(t *testing.T) {
	db, mock := newTestDB(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT quantity FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(10))
	mock.ExpectRollback()

	_, err := db.CreateAllotment(context.Background(), "p1", "d1", "admin-1", 40, nil)
	available, ok := errs.IsInsufficientQuantity(err)
	require.True(t, ok)
	require.Equal(t, 10, available)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAllotment_ProductMissing(t *testing.T) {
	db, mock := newTestDB(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT quantity FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := db.CreateAllotment(context.Background(), "missing", "d1", "admin-1", 5, nil)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCreateAllotment_DistributorMissing(t *testing.T) {
	db, mock := newTestDB(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT quantity FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(100))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := db.CreateAllotment(context.Background(), "p1", "ghost", "admin-1", 5, nil)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpdateAllotmentStatus_ReturnedIsTerminal(t *testing.T) {
	db, mock := newTestDB(t)
	defer mock.Close()

	mock.ExpectQuery(`UPDATE allotments SET status = \$2`).
		WithArgs("a1", "collected").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM allotments WHERE id = \$1\)`).
		WithArgs("a1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := db.UpdateAllotmentStatus(context.Background(), "a1", models.AllotmentStatusCollected)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestUpdateAllotmentStatus_Missing(t *testing.T) {
	db, mock := newTestDB(t)
	defer mock.Close()

	mock.ExpectQuery(`UPDATE allotments SET status = \$2`).
		WithArgs("gone", "pending").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM allotments WHERE id = \$1\)`).
		WithArgs("gone").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := db.UpdateAllotmentStatus(context.Background(), "gone", models.AllotmentStatusPending)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestReturnAllotment_PendingRestoresFullQuantity(t *testing.T) {
	db, mock := newTestDB(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT product_id, quantity, status FROM allotments WHERE id = \$1 FOR UPDATE`).
		WithArgs("a1").
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "quantity", "status"}).
			AddRow("p1", 40, "pending"))
	mock.ExpectExec(`UPDATE allotments SET status = 'returned'`).
		WithArgs("a1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE products SET quantity = quantity \+ \$2`).
		WithArgs("p1", 40).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	returned, err := db.ReturnAllotment(context.Background(), "a1")
	require.NoError(t, err)
	require.Equal(t, 40, returned)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReturnAllotment_CollectedRestoresHeadroom(t *testing.T) {
	db, mock := newTestDB(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT product_id, quantity, status FROM allotments WHERE id = \$1 FOR UPDATE`).
		WithArgs("a1").
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "quantity", "status"}).
			AddRow("p1", 40, "collected"))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM distributions WHERE allotment_id = \$1`).
		WithArgs("a1").
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(25))
	mock.ExpectExec(`UPDATE allotments SET status = 'returned'`).
		WithArgs("a1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE products SET quantity = quantity \+ \$2`).
		WithArgs("p1", 15).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	returned, err := db.ReturnAllotment(context.Background(), "a1")
	require.NoError(t, err)
	require.Equal(t, 15, returned)
}

func TestReturnAllotment_AlreadyReturned(t *testing.T) {
	db, mock := newTestDB(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT product_id, quantity, status FROM allotments WHERE id = \$1 FOR UPDATE`).
		WithArgs("a1").
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "quantity", "status"}).
			AddRow("p1", 40, "returned"))
	mock.ExpectRollback()

	_, err := db.ReturnAllotment(context.Background(), "a1")
	require.ErrorIs(t, err, errs.ErrInvalidState)
}
