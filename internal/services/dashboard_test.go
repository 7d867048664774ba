package services

import (
	"context"
	"testing"
	"time"

	"eventhub/internal/domain"
)

func newDashboardFixture() (*mockEventRepository, *mockCategoryRepository, *mockRSVPRepository, *mockUserRepository, domain.DashboardService) {
	eventRepo := &mockEventRepository{
		listItems: []*domain.EventListItem{
			{Event: domain.Event{ID: "e1", Name: "Hack Night"}},
		},
		partCounts: []*domain.EventParticipantRow{
			{EventID: "e1", EventName: "Hack Night", TotalRSVPs: 3},
		},
		counts: &domain.EventCounts{TotalEvents: 5, PastEvents: 2, UpcomingEvents: 3, TotalParticipants: 7},
	}
	categoryRepo := &mockCategoryRepository{categories: map[string]*domain.Category{"c1": {ID: "c1", Name: "Tech"}}}
	rsvpRepo := &mockRSVPRepository{count: 9}
	userRepo := &mockUserRepository{count: 4, users: map[string]*domain.User{"u1": {ID: "u1", Username: "alice"}}}
	groupRepo := &mockGroupRepository{groupsByUser: map[string][]*domain.Group{"u1": {{ID: "g1", Name: "Admin"}}}}
	userService := NewUserService(userRepo, groupRepo, &mockHasher{}, testLogger())
	svc := NewDashboardService(eventRepo, categoryRepo, rsvpRepo, userRepo, userService, testLogger())
	return eventRepo, categoryRepo, rsvpRepo, userRepo, svc
}

func TestDashboardService_Organizer(t *testing.T) {
	_, _, _, _, svc := newDashboardFixture()

	dash, err := svc.Organizer(context.Background(), domain.EventFilter{Mode: domain.ModeUpcoming})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dash.Title != "Upcoming Events" {
		t.Fatalf("unexpected title %q", dash.Title)
	}
	if dash.Counts.TotalEvents != 5 || dash.Counts.TotalParticipants != 7 {
		t.Fatalf("unexpected counts: %+v", dash.Counts)
	}
	if len(dash.Events) != 1 || len(dash.Participants) != 0 {
		t.Fatalf("expected event list mode, got events=%d participants=%d", len(dash.Events), len(dash.Participants))
	}
}

func TestDashboardService_OrganizerParticipantsMode(t *testing.T) {
	_, _, _, _, svc := newDashboardFixture()

	dash, err := svc.Organizer(context.Background(), domain.EventFilter{Mode: domain.ModeParticipants})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dash.Title != "Participants" {
		t.Fatalf("unexpected title %q", dash.Title)
	}
	if len(dash.Participants) != 1 || dash.Participants[0].TotalRSVPs != 3 {
		t.Fatalf("unexpected participants: %+v", dash.Participants)
	}
	if len(dash.Events) != 0 {
		t.Fatal("participants mode must not carry an event list")
	}
}

func TestDashboardService_Admin(t *testing.T) {
	tests := []struct {
		name       string
		mode       domain.ViewMode
		wantTitle  string
		wantUsers  int
		wantEvents int
		wantRSVPs  int
	}{
		{name: "default event list", mode: domain.ModeAll, wantTitle: "All Events", wantEvents: 1},
		{name: "user projection", mode: domain.ModeUsers, wantTitle: "All Users", wantUsers: 1},
		{name: "rsvp projection", mode: domain.ModeParticipants, wantTitle: "Participants", wantRSVPs: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, _, svc := newDashboardFixture()

			dash, err := svc.Admin(context.Background(), domain.EventFilter{Mode: tt.mode})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dash.Title != tt.wantTitle {
				t.Fatalf("expected title %q, got %q", tt.wantTitle, dash.Title)
			}
			if dash.Counts.TotalUsers != 4 || dash.Counts.RSVPCount != 9 || dash.Counts.TotalEvents != 5 {
				t.Fatalf("unexpected counts: %+v", dash.Counts)
			}
			if len(dash.Users) != tt.wantUsers || len(dash.Events) != tt.wantEvents || len(dash.RSVPs) != tt.wantRSVPs {
				t.Fatalf("unexpected projection: users=%d events=%d rsvps=%d",
					len(dash.Users), len(dash.Events), len(dash.RSVPs))
			}
		})
	}
}

func TestDashboardService_User(t *testing.T) {
	today := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	eventRepo, _, _, _, _ := newDashboardFixture()
	eventRepo.byUser = map[string][]*domain.EventListItem{
		"u1": {
			{Event: domain.Event{ID: "e1", Name: "Past Meetup", Date: today.AddDate(0, 0, -10)}},
			{Event: domain.Event{ID: "e2", Name: "Future Fair", Date: today.AddDate(0, 0, 10)}},
		},
	}
	categoryRepo := &mockCategoryRepository{categories: map[string]*domain.Category{}}
	svc := NewDashboardService(eventRepo, categoryRepo, &mockRSVPRepository{}, &mockUserRepository{}, nil, testLogger())

	dash, err := svc.User(context.Background(), "u1", domain.EventFilter{Mode: domain.ModeUpcoming, Today: today})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dash.Events) != 1 || dash.Events[0].ID != "e2" {
		t.Fatalf("unexpected filtered events: %+v", dash.Events)
	}
	// Total spans the full RSVP set even when the view is filtered.
	if dash.TotalRSVPs != 2 {
		t.Fatalf("expected total 2, got %d", dash.TotalRSVPs)
	}
}
