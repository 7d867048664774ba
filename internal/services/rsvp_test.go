package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"eventhub/internal/domain"
)

func TestRSVPService_Create(t *testing.T) {
	event := &domain.Event{ID: "e1", Name: "Hack Night"}
	user := &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com"}

	tests := []struct {
		name      string
		eventRepo *mockEventRepository
		rsvpRepo  *mockRSVPRepository
		email     *mockEmailService
		eventID   string
		wantErr   error
		wantMail  int
	}{
		{
			name:      "success sends confirmation",
			eventRepo: &mockEventRepository{events: map[string]*domain.Event{"e1": event}},
			rsvpRepo:  &mockRSVPRepository{},
			email:     &mockEmailService{},
			eventID:   "e1",
			wantMail:  1,
		},
		{
			name:      "unknown event",
			eventRepo: &mockEventRepository{events: map[string]*domain.Event{}},
			rsvpRepo:  &mockRSVPRepository{},
			email:     &mockEmailService{},
			eventID:   "missing",
			wantErr:   domain.ErrNotFound,
		},
		{
			name:      "duplicate rsvp surfaces conflict",
			eventRepo: &mockEventRepository{events: map[string]*domain.Event{"e1": event}},
			rsvpRepo:  &mockRSVPRepository{createErr: domain.ErrConflict},
			email:     &mockEmailService{},
			eventID:   "e1",
			wantErr:   domain.ErrConflict,
		},
		{
			name:      "mail failure does not fail the rsvp",
			eventRepo: &mockEventRepository{events: map[string]*domain.Event{"e1": event}},
			rsvpRepo:  &mockRSVPRepository{},
			email:     &mockEmailService{confirmationErr: fmt.Errorf("ses unavailable")},
			eventID:   "e1",
			wantMail:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepository{users: map[string]*domain.User{"u1": user}}
			svc := NewRSVPService(tt.rsvpRepo, tt.eventRepo, userRepo, tt.email, testLogger())

			rsvp, err := svc.Create(context.Background(), tt.eventID, "u1")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rsvp == nil || rsvp.EventID != tt.eventID || rsvp.UserID != "u1" {
				t.Fatalf("unexpected rsvp: %+v", rsvp)
			}
			if len(tt.rsvpRepo.created) != 1 {
				t.Fatalf("expected 1 created rsvp, got %d", len(tt.rsvpRepo.created))
			}
			if len(tt.email.confirmations) != tt.wantMail {
				t.Fatalf("expected %d confirmation emails, got %d", tt.wantMail, len(tt.email.confirmations))
			}
			if tt.wantMail > 0 {
				data := tt.email.confirmations[0]
				if data.Email != "alice@example.com" || data.EventName != "Hack Night" {
					t.Fatalf("unexpected confirmation data: %+v", data)
				}
			}
		})
	}
}

func TestRSVPService_CreateWithoutEmailService(t *testing.T) {
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{"e1": {ID: "e1"}}}
	rsvpRepo := &mockRSVPRepository{}
	userRepo := &mockUserRepository{users: map[string]*domain.User{"u1": {ID: "u1"}}}
	svc := NewRSVPService(rsvpRepo, eventRepo, userRepo, nil, testLogger())

	if _, err := svc.Create(context.Background(), "e1", "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRSVPService_CreateUnknownUser(t *testing.T) {
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{"e1": {ID: "e1"}}}
	rsvpRepo := &mockRSVPRepository{}
	userRepo := &mockUserRepository{users: map[string]*domain.User{}}
	svc := NewRSVPService(rsvpRepo, eventRepo, userRepo, nil, testLogger())

	_, err := svc.Create(context.Background(), "e1", "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(rsvpRepo.created) != 0 {
		t.Fatalf("expected no rsvp rows, got %d", len(rsvpRepo.created))
	}
}

func TestRSVPService_Delete(t *testing.T) {
	rsvpRepo := &mockRSVPRepository{rsvps: map[string]*domain.RSVP{"r1": {ID: "r1"}}}
	svc := NewRSVPService(rsvpRepo, &mockEventRepository{}, &mockUserRepository{}, nil, testLogger())

	if err := svc.Delete(context.Background(), "r1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), "r1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
