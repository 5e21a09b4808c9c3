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

const userColumns = `id, name, email, password_hash, role, phone_number, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.PhoneNumber, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user. Email is stored lowercase; a duplicate maps
// to ErrEmailTaken.
func (db *Database) CreateUser(ctx context.Context, name, email, passwordHash string, role models.Role, phoneNumber *string) (*models.User, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, phone_number, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING ` + userColumns

	id := uuid.NewString()
	row := db.Pool.QueryRow(ctx, query, id, strings.TrimSpace(name),
		strings.ToLower(strings.TrimSpace(email)), passwordHash, string(role), phoneNumber)

	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.PhoneNumber, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errs.ErrEmailTaken
		}
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail looks a user up by (lowercased) email.
func (db *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))))
}

// GetUserByID looks a user up by id.
func (db *Database) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, id))
}

// AdminExists reports whether any admin account exists. Used to gate the
// one-time seed endpoint.
func (db *Database) AdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE role = 'admin')`).Scan(&exists)
	return exists, err
}

// ListDistributors returns all distributor accounts, newest first.
func (db *Database) ListDistributors(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = 'distributor' ORDER BY created_at DESC`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	distributors := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
			&u.PhoneNumber, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		distributors = append(distributors, u)
	}
	return distributors, rows.Err()
}

// GetDistributorByID looks up a user that must have the distributor role.
func (db *Database) GetDistributorByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND role = 'distributor'`
	return scanUser(db.Pool.QueryRow(ctx, query, id))
}

// UpdateDistributor overwrites a distributor's profile. passwordHash is only
// applied when non-empty; the role is never reassigned.
func (db *Database) UpdateDistributor(ctx context.Context, id, name, email string, phoneNumber *string, isActive bool, passwordHash string) (*models.User, error) {
	var row pgx.Row
	if passwordHash != "" {
		query := `
			UPDATE users
			SET name = $2, email = $3, phone_number = $4, is_active = $5,
			    password_hash = $6, updated_at = now()
			WHERE id = $1 AND role = 'distributor'
			RETURNING ` + userColumns
		row = db.Pool.QueryRow(ctx, query, id, strings.TrimSpace(name),
			strings.ToLower(strings.TrimSpace(email)), phoneNumber, isActive, passwordHash)
	} else {
		query := `
			UPDATE users
			SET name = $2, email = $3, phone_number = $4, is_active = $5, updated_at = now()
			WHERE id = $1 AND role = 'distributor'
			RETURNING ` + userColumns
		row = db.Pool.QueryRow(ctx, query, id, strings.TrimSpace(name),
			strings.ToLower(strings.TrimSpace(email)), phoneNumber, isActive)
	}

	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.PhoneNumber, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errs.ErrEmailTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// DeleteDistributor removes a distributor account.
func (db *Database) DeleteDistributor(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM users WHERE id = $1 AND role = 'distributor'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
