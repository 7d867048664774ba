package postgres

import (
	"context"
	"database/sql"
	"time"

	"eventhub/internal/domain"
)

type activationTokenRepository struct {
	DB *sql.DB
}

func NewActivationTokenRepository(db *sql.DB) domain.ActivationTokenRepository {
	return &activationTokenRepository{DB: db}
}

func (r *activationTokenRepository) Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	query := `
		INSERT INTO activation_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, userID, tokenHash, expiresAt)
	return err
}

// Consume marks the token used. A token can be consumed at most once and
// only before it expires; consumed reports whether this call claimed it.
func (r *activationTokenRepository) Consume(ctx context.Context, userID, tokenHash string) (bool, error) {
	query := `
		UPDATE activation_tokens
		SET consumed_at = NOW()
		WHERE user_id = $1 AND token_hash = $2 AND consumed_at IS NULL AND expires_at > NOW()
	`
	result, err := r.DB.ExecContext(ctx, query, userID, tokenHash)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
