package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventhub/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{
		DB: db,
	}
}

// Create inserts the RSVP row. The rsvps_event_user_key constraint resolves
// duplicate submissions regardless of timing: the second writer gets a
// unique violation, surfaced as ErrConflict.
func (r *rsvpRepository) Create(ctx context.Context, rsvp *domain.RSVP) error {
	query := `
		INSERT INTO rsvps (event_id, user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, rsvp.EventID, rsvp.UserID, rsvp.CreatedAt).Scan(&rsvp.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrConflict
	}
	return err
}

func (r *rsvpRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.RSVP, error) {
	query := `
		SELECT id, event_id, user_id, created_at
		FROM rsvps
		WHERE event_id = $1 AND user_id = $2
	`
	rsvp := &domain.RSVP{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).
		Scan(&rsvp.ID, &rsvp.EventID, &rsvp.UserID, &rsvp.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rsvp, nil
}

func (r *rsvpRepository) ListDetails(ctx context.Context) ([]*domain.RSVPDetail, error) {
	query := `
		SELECT r.id, r.event_id, r.user_id, r.created_at,
		       e.name, c.name, o.username, u.username, u.email
		FROM rsvps r
		INNER JOIN events e ON e.id = r.event_id
		LEFT JOIN categories c ON c.id = e.category_id
		INNER JOIN users o ON o.id = e.organizer_id
		INNER JOIN users u ON u.id = r.user_id
		ORDER BY r.created_at DESC, r.id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]*domain.RSVPDetail, 0)
	for rows.Next() {
		d := &domain.RSVPDetail{}
		var catName sql.NullString
		if err := rows.Scan(&d.ID, &d.EventID, &d.UserID, &d.CreatedAt,
			&d.EventName, &catName, &d.OrganizerName, &d.Username, &d.UserEmail); err != nil {
			return nil, err
		}
		if catName.Valid {
			d.CategoryName = &catName.String
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *rsvpRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM rsvps WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *rsvpRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM rsvps`).Scan(&count)
	return count, err
}
