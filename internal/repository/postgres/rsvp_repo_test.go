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

func TestRSVPRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		mock       func(mock sqlmock.Sqlmock)
		wantErr    error
		wantID     string
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rsvps \(event_id, user_id, created_at\)`).
					WithArgs("ev-1", "user-1", createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rsvp-1"))
			},
			wantID: "rsvp-1",
		},
		{
			name: "duplicate pair maps to conflict",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rsvps`).
					WithArgs("ev-1", "user-1", createdAt).
					WillReturnError(&pq.Error{Code: uniqueViolation, Constraint: "rsvps_event_user_key"})
			},
			wantErr: domain.ErrConflict,
		},
		{
			name: "db error passes through",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rsvps`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRSVPRepository(db)
			rsvp := domain.NewRSVP("ev-1", "user-1", createdAt)
			err = repo.Create(ctx, rsvp)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr))
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, rsvp.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRSVPRepository_GetByEventAndUser_NotFound(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, event_id, user_id, created_at`).
		WithArgs("ev-1", "user-missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewRSVPRepository(db)
	_, err = repo.GetByEventAndUser(ctx, "ev-1", "user-missing")
	require.True(t, errors.Is(err, domain.ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRSVPRepository_ListDetails(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	createdAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "event_id", "user_id", "created_at",
		"event_name", "category_name", "organizer_name", "username", "email",
	}).
		AddRow("rsvp-1", "ev-1", "user-1", createdAt, "Hack Night", "Tech", "orga", "pat", "pat@example.com").
		AddRow("rsvp-2", "ev-2", "user-2", createdAt, "Marathon", nil, "orgb", "sam", "sam@example.com")

	mock.ExpectQuery(`FROM rsvps r`).WillReturnRows(rows)

	repo := NewRSVPRepository(db)
	details, err := repo.ListDetails(ctx)
	require.NoError(t, err)
	require.Len(t, details, 2)
	require.Equal(t, "Hack Night", details[0].EventName)
	require.NotNil(t, details[0].CategoryName)
	require.Nil(t, details[1].CategoryName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRSVPRepository_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM rsvps WHERE id = \$1`).
		WithArgs("rsvp-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRSVPRepository(db)
	err = repo.Delete(ctx, "rsvp-missing")
	require.True(t, errors.Is(err, domain.ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}
