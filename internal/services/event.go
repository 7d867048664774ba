package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"eventhub/internal/domain"
)

const maxImageSize = 10 * 1024 * 1024

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type eventService struct {
	eventRepo    domain.EventRepository
	imageRepo    domain.EventImageRepository
	categoryRepo domain.CategoryRepository
	media        domain.MediaStore
	logger       *slog.Logger
}

// NewEventService creates an EventService with the given repositories and media store.
func NewEventService(
	eventRepo domain.EventRepository,
	imageRepo domain.EventImageRepository,
	categoryRepo domain.CategoryRepository,
	media domain.MediaStore,
	logger *slog.Logger,
) domain.EventService {
	return &eventService{
		eventRepo:    eventRepo,
		imageRepo:    imageRepo,
		categoryRepo: categoryRepo,
		media:        media,
		logger:       logger,
	}
}

func (s *eventService) Create(ctx context.Context, organizer domain.Identity, input domain.EventInput) (*domain.Event, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: event name is required", domain.ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: event date is required", domain.ErrInvalidInput)
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown category", domain.ErrInvalidInput)
			}
			return nil, fmt.Errorf("get category: %w", err)
		}
	}

	event := &domain.Event{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Date:        input.Date,
		StartTime:   strings.TrimSpace(input.StartTime),
		Location:    strings.TrimSpace(input.Location),
		CategoryID:  input.CategoryID,
		OrganizerID: organizer.ID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.logger.Info("event created", "event_id", event.ID, "organizer_id", organizer.ID)
	return event, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.EventDetail, error) {
	return s.eventRepo.GetDetail(ctx, id)
}

func (s *eventService) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	if upd.CategoryID != nil && *upd.CategoryID != "" {
		if _, err := s.categoryRepo.GetByID(ctx, *upd.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown category", domain.ErrInvalidInput)
			}
			return nil, fmt.Errorf("get category: %w", err)
		}
	}
	return s.eventRepo.Update(ctx, id, upd)
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("event deleted", "event_id", id)
	return nil
}

func (s *eventService) Browse(ctx context.Context, filter domain.EventFilter) ([]*domain.EventListItem, string, error) {
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, "", fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.EventListItem{}
	}
	return events, filter.Mode.Title(), nil
}

func (s *eventService) AddImage(ctx context.Context, eventID, filename, contentType string, body io.Reader, size int64) (*domain.EventImage, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported image type %q", domain.ErrInvalidInput, contentType)
	}
	if size > maxImageSize {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", domain.ErrInvalidInput, maxImageSize)
	}

	key := path.Join("events", eventID, uuid.NewString()+ext)
	url, err := s.media.Put(ctx, key, contentType, body, size)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	image := &domain.EventImage{
		EventID:    eventID,
		StorageKey: key,
		URL:        url,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		// Roll the blob back so no orphan object remains.
		if delErr := s.media.Delete(ctx, key); delErr != nil {
			s.logger.Error("failed to clean up orphaned image object", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("save image record: %w", err)
	}
	s.logger.Info("event image added", "event_id", eventID, "key", key, "filename", filename)
	return image, nil
}
