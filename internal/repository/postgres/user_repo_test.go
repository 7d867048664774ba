package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"eventhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create_ConstraintMapping(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{
			name:    "duplicate email",
			dbErr:   &pq.Error{Code: uniqueViolation, Constraint: "users_email_key"},
			wantErr: domain.ErrDuplicateEmail,
		},
		{
			name:    "duplicate username",
			dbErr:   &pq.Error{Code: uniqueViolation, Constraint: "users_username_key"},
			wantErr: domain.ErrDuplicateUsername,
		},
		{
			name:    "other db error",
			dbErr:   sql.ErrConnDone,
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(`INSERT INTO users`).WillReturnError(tt.dbErr)

			repo := NewUserRepository(db)
			err = repo.Create(ctx, &domain.User{Username: "pat", Email: "pat@example.com"})
			require.True(t, errors.Is(err, tt.wantErr))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "salt", "first_name", "last_name",
		"phone", "is_active", "is_staff", "created_at", "updated_at",
	}).AddRow("user-1", "pat", "pat@example.com", "hash", "salt", "Pat", "Doe", "", true, false, created, created)

	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("pat").
		WillReturnRows(rows)

	repo := NewUserRepository(db)
	u, err := repo.GetByUsername(ctx, "pat")
	require.NoError(t, err)
	require.Equal(t, "user-1", u.ID)
	require.True(t, u.IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("user-missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepository(db)
	_, err = repo.GetByID(ctx, "user-missing")
	require.True(t, errors.Is(err, domain.ErrUserNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetActive(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET is_active = \$1`).
		WithArgs(true, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewUserRepository(db)
	require.NoError(t, repo.SetActive(ctx, "user-1", true))
	require.NoError(t, mock.ExpectationsWereMet())
}
