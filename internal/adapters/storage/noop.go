package storage

import (
	"context"
	"io"
	"log/slog"

	"eventhub/internal/domain"
)

type noopStore struct {
	logger *slog.Logger
}

// NewNoopStore returns a MediaStore that discards uploads. Used in
// development when no S3 bucket is configured.
func NewNoopStore(logger *slog.Logger) domain.MediaStore {
	return &noopStore{logger: logger}
}

func (n *noopStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	n.logger.Info("media store is not configured, discarding upload", "key", key, "content_type", contentType)
	return "/media/" + key, nil
}

func (n *noopStore) Delete(ctx context.Context, key string) error {
	n.logger.Info("media store is not configured, skipping delete", "key", key)
	return nil
}
