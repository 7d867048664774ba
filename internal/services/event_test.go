package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"eventhub/internal/domain"
)

func TestEventService_Create(t *testing.T) {
	organizer := domain.Identity{ID: "u1", Username: "alice", Roles: []string{"Organizer"}}
	catID := "c1"
	badCatID := "missing"
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   domain.EventInput
		wantErr error
	}{
		{
			name:  "valid event",
			input: domain.EventInput{Name: "  Hack Night ", Date: date, StartTime: "18:30", Location: "Dhaka", CategoryID: &catID},
		},
		{
			name:    "missing name",
			input:   domain.EventInput{Date: date},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "missing date",
			input:   domain.EventInput{Name: "Hack Night"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "unknown category",
			input:   domain.EventInput{Name: "Hack Night", Date: date, CategoryID: &badCatID},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo := &mockEventRepository{events: map[string]*domain.Event{}}
			categoryRepo := &mockCategoryRepository{categories: map[string]*domain.Category{"c1": {ID: "c1", Name: "Tech"}}}
			svc := NewEventService(eventRepo, &mockEventImageRepository{}, categoryRepo, &mockMediaStore{}, testLogger())

			event, err := svc.Create(context.Background(), organizer, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if event.Name != "Hack Night" {
				t.Fatalf("name not trimmed: %q", event.Name)
			}
			if event.OrganizerID != "u1" {
				t.Fatalf("organizer not recorded: %q", event.OrganizerID)
			}
		})
	}
}

func TestEventService_BrowseTitleFollowsMode(t *testing.T) {
	tests := []struct {
		mode      domain.ViewMode
		wantTitle string
	}{
		{domain.ModeAll, "All Events"},
		{domain.ModeToday, "Today's Events"},
		{domain.ModePast, "Past Events"},
		{domain.ModeUpcoming, "Upcoming Events"},
		{domain.ModeSearch, "Search Results"},
	}

	for _, tt := range tests {
		t.Run(tt.wantTitle, func(t *testing.T) {
			eventRepo := &mockEventRepository{}
			svc := NewEventService(eventRepo, &mockEventImageRepository{}, &mockCategoryRepository{}, &mockMediaStore{}, testLogger())

			events, title, err := svc.Browse(context.Background(), domain.EventFilter{Mode: tt.mode})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if title != tt.wantTitle {
				t.Fatalf("expected title %q, got %q", tt.wantTitle, title)
			}
			if events == nil {
				t.Fatal("expected empty slice, got nil")
			}
			if eventRepo.lastFilter.Mode != tt.mode {
				t.Fatalf("filter not passed through: %+v", eventRepo.lastFilter)
			}
		})
	}
}

func TestEventService_AddImage(t *testing.T) {
	body := strings.NewReader("fake-bytes")

	tests := []struct {
		name        string
		eventID     string
		contentType string
		size        int64
		imageRepo   *mockEventImageRepository
		wantErr     error
	}{
		{name: "valid jpeg", eventID: "e1", contentType: "image/jpeg", size: 1024, imageRepo: &mockEventImageRepository{}},
		{name: "unknown event", eventID: "missing", contentType: "image/jpeg", size: 1024, imageRepo: &mockEventImageRepository{}, wantErr: domain.ErrNotFound},
		{name: "unsupported type", eventID: "e1", contentType: "application/pdf", size: 1024, imageRepo: &mockEventImageRepository{}, wantErr: domain.ErrInvalidInput},
		{name: "oversized", eventID: "e1", contentType: "image/png", size: maxImageSize + 1, imageRepo: &mockEventImageRepository{}, wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo := &mockEventRepository{events: map[string]*domain.Event{"e1": {ID: "e1"}}}
			media := &mockMediaStore{}
			svc := NewEventService(eventRepo, tt.imageRepo, &mockCategoryRepository{}, media, testLogger())

			image, err := svc.AddImage(context.Background(), tt.eventID, "photo.jpg", tt.contentType, body, tt.size)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(media.puts) != 0 {
					t.Fatal("rejected upload must not reach the media store")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if image.EventID != "e1" || image.URL == "" || image.StorageKey == "" {
				t.Fatalf("unexpected image: %+v", image)
			}
			if !strings.HasPrefix(image.StorageKey, "events/e1/") {
				t.Fatalf("unexpected storage key %q", image.StorageKey)
			}
		})
	}
}

func TestEventService_AddImageCleansUpOnRecordFailure(t *testing.T) {
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{"e1": {ID: "e1"}}}
	imageRepo := &mockEventImageRepository{createErr: fmt.Errorf("db down")}
	media := &mockMediaStore{}
	svc := NewEventService(eventRepo, imageRepo, &mockCategoryRepository{}, media, testLogger())

	_, err := svc.AddImage(context.Background(), "e1", "photo.jpg", "image/jpeg", strings.NewReader("x"), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(media.puts) != 1 || len(media.deletes) != 1 {
		t.Fatalf("expected uploaded object to be deleted, puts=%d deletes=%d", len(media.puts), len(media.deletes))
	}
	if media.deletes[0] != media.puts[0] {
		t.Fatalf("deleted wrong key: put %q, deleted %q", media.puts[0], media.deletes[0])
	}
}
