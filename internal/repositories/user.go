package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/bookly/internal/apperrors"
	"github.com/sbilibin2017/bookly/internal/logger"
	"github.com/sbilibin2017/bookly/internal/models"
)

const userColumns = `uid, username, email, first_name, last_name, role, is_verified, password_hash, created_at, updated_at`

// UserReadRepository handles user read operations
type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByEmail returns the user with the given email, or nil when there is none.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
		LIMIT 1
	`

	var user models.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, email)

	logger.Log.Infow(
		"query", oneLine(query),
		"args", []any{email},
		"result", user.UID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository handles user write operations
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new user and returns the stored row.
// A duplicate email is reported as apperrors.ErrUserAlreadyExists.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (uid, username, email, first_name, last_name, role, is_verified, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + userColumns

	var saved models.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &saved, query,
		user.UID, user.Username, user.Email, user.FirstName, user.LastName,
		user.Role, user.IsVerified, user.PasswordHash,
	)

	// password_hash is never logged.
	logger.Log.Infow(
		"query", oneLine(query),
		"args", []any{user.UID, user.Username, user.Email, user.Role},
		"result", saved.UID,
		"error", err,
	)

	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUserAlreadyExists, user.Email)
	}
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
