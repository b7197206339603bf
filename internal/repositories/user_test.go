package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "username", "email", "password_hash", "created_at"})
}

func TestUserReadRepository_GetByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
			WithArgs("alice").
			WillReturnRows(userRows().AddRow(int64(1), "alice", "alice@example.com", "hash", created))

		user, err := repo.GetByUsername(context.Background(), "alice")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, int64(1), user.UserID)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("absent returns nil without error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
			WithArgs("nobody").
			WillReturnRows(userRows())

		user, err := repo.GetByUsername(context.Background(), "nobody")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "alice@example.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(5)))

	id, err := repo.Save(context.Background(), "alice", "alice@example.com", "hash")
	assert.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Save_UniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantErr    error
	}{
		{"duplicate username", "users_username_key", ErrUsernameExists},
		{"duplicate email", "users_email_key", ErrEmailExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserWriteRepository(db)

			mock.ExpectQuery("INSERT INTO users").
				WithArgs("alice", "alice@example.com", "hash").
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tt.constraint})

			_, err := repo.Save(context.Background(), "alice", "alice@example.com", "hash")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserWriteRepository_UpdateEmail_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)

	mock.ExpectExec("UPDATE users SET email").
		WithArgs("taken@example.com", int64(2)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.UpdateEmail(context.Background(), 2, "taken@example.com")
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_UpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("newhash", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePassword(context.Background(), 2, "newhash")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
