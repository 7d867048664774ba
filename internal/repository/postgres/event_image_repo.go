package postgres

import (
	"context"
	"database/sql"

	"eventhub/internal/domain"
)

type eventImageRepository struct {
	DB *sql.DB
}

func NewEventImageRepository(db *sql.DB) domain.EventImageRepository {
	return &eventImageRepository{DB: db}
}

func (r *eventImageRepository) Create(ctx context.Context, img *domain.EventImage) error {
	query := `
		INSERT INTO event_images (event_id, storage_key, url, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, img.EventID, img.StorageKey, img.URL, img.CreatedAt).Scan(&img.ID)
}

func (r *eventImageRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventImage, error) {
	query := `
		SELECT id, event_id, storage_key, url, created_at
		FROM event_images
		WHERE event_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]*domain.EventImage, 0)
	for rows.Next() {
		img := &domain.EventImage{}
		if err := rows.Scan(&img.ID, &img.EventID, &img.StorageKey, &img.URL, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}
