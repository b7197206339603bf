package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/models"
)

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsername returns the user with the given username, or nil if
// there is none.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	return r.getOne(ctx, query, username)
}

// GetByEmail returns the user owning the given email, or nil.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	return r.getOne(ctx, query, email)
}

// GetByID returns the user with the given id, or nil.
func (r *UserReadRepository) GetByID(ctx context.Context, userID int64) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, created_at
		FROM users
		WHERE user_id = $1
	`
	return r.getOne(ctx, query, userID)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, arg)

	// Log with query in single line
	logger.Log.Debugw("users select",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{arg},
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

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user and returns the generated id. A concurrent
// duplicate surfaces as ErrUsernameExists or ErrEmailExists via the
// table's unique constraints.
func (r *UserWriteRepository) Save(ctx context.Context, username, email, passwordHash string) (int64, error) {
	const query = `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING user_id
	`

	var userID int64
	err := r.db.GetContext(ctx, &userID, query, username, email, passwordHash)

	logger.Log.Infow("users insert",
		"query", strings.Join(strings.Fields(query), " "),
		"username", username,
		"result", userID,
		"error", err,
	)

	if err != nil {
		return 0, mapUniqueViolation(err)
	}
	return userID, nil
}

// UpdateEmail replaces the user's email.
func (r *UserWriteRepository) UpdateEmail(ctx context.Context, userID int64, email string) error {
	const query = `UPDATE users SET email = $1 WHERE user_id = $2`

	res, err := r.db.ExecContext(ctx, query, email, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("users update email",
		"query", query,
		"user_id", userID,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

// UpdatePassword replaces the user's password hash.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $1 WHERE user_id = $2`

	res, err := r.db.ExecContext(ctx, query, passwordHash, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("users update password",
		"query", query,
		"user_id", userID,
		"result", rowsAffected,
		"error", err,
	)

	return err
}
