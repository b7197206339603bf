package repositories

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error variables
var (
	ErrProductNotFound = errors.New("product not found")
	ErrUsernameExists  = errors.New("username already exists")
	ErrEmailExists     = errors.New("email already registered")
)

const pgUniqueViolation = "23505"

// mapUniqueViolation translates a Postgres unique-constraint violation
// on the users table into the matching sentinel. The constraint is the
// authoritative backstop for the check-then-insert race in
// registration and email updates.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return ErrUsernameExists
	case strings.Contains(pgErr.ConstraintName, "email"):
		return ErrEmailExists
	}
	return err
}
