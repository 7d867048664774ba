package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventhub/internal/domain"
)

type dashboardService struct {
	eventRepo    domain.EventRepository
	categoryRepo domain.CategoryRepository
	rsvpRepo     domain.RSVPRepository
	userRepo     domain.UserRepository
	userService  domain.UserService
	logger       *slog.Logger
}

// NewDashboardService creates a DashboardService over the given repositories.
func NewDashboardService(
	eventRepo domain.EventRepository,
	categoryRepo domain.CategoryRepository,
	rsvpRepo domain.RSVPRepository,
	userRepo domain.UserRepository,
	userService domain.UserService,
	logger *slog.Logger,
) domain.DashboardService {
	return &dashboardService{
		eventRepo:    eventRepo,
		categoryRepo: categoryRepo,
		rsvpRepo:     rsvpRepo,
		userRepo:     userRepo,
		userService:  userService,
		logger:       logger,
	}
}

func (s *dashboardService) Organizer(ctx context.Context, filter domain.EventFilter) (*domain.OrganizerDashboard, error) {
	counts, err := s.eventRepo.Counts(ctx, filter.Today)
	if err != nil {
		return nil, fmt.Errorf("event counts: %w", err)
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	dash := &domain.OrganizerDashboard{
		Title:        filter.Mode.Title(),
		Counts:       counts,
		Events:       []*domain.EventListItem{},
		Participants: []*domain.EventParticipantRow{},
		Categories:   categories,
	}
	if filter.Mode == domain.ModeParticipants {
		rows, err := s.eventRepo.ListParticipantCounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("list participant counts: %w", err)
		}
		if rows != nil {
			dash.Participants = rows
		}
		return dash, nil
	}
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events != nil {
		dash.Events = events
	}
	return dash, nil
}

func (s *dashboardService) Admin(ctx context.Context, filter domain.EventFilter) (*domain.AdminDashboard, error) {
	userCount, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	eventCounts, err := s.eventRepo.Counts(ctx, filter.Today)
	if err != nil {
		return nil, fmt.Errorf("event counts: %w", err)
	}
	rsvpCount, err := s.rsvpRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count rsvps: %w", err)
	}

	dash := &domain.AdminDashboard{
		Title: filter.Mode.Title(),
		Counts: &domain.AdminCounts{
			TotalUsers:     userCount,
			TotalEvents:    eventCounts.TotalEvents,
			UpcomingEvents: eventCounts.UpcomingEvents,
			RSVPCount:      rsvpCount,
		},
		Users:  []*domain.UserWithRole{},
		Events: []*domain.EventListItem{},
		RSVPs:  []*domain.EventParticipantRow{},
	}

	switch filter.Mode {
	case domain.ModeUsers:
		users, err := s.userService.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		if users != nil {
			dash.Users = users
		}
	case domain.ModeParticipants:
		rows, err := s.eventRepo.ListParticipantCounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("list participant counts: %w", err)
		}
		if rows != nil {
			dash.RSVPs = rows
		}
	default:
		events, err := s.eventRepo.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		if events != nil {
			dash.Events = events
		}
	}
	return dash, nil
}

func (s *dashboardService) User(ctx context.Context, userID string, filter domain.EventFilter) (*domain.UserDashboard, error) {
	events, err := s.eventRepo.ListByParticipant(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list registered events: %w", err)
	}
	if events == nil {
		events = []*domain.EventListItem{}
	}
	// Total is the user's full RSVP set, independent of the active filter.
	all := events
	if filter.Mode != domain.ModeAll {
		all, err = s.eventRepo.ListByParticipant(ctx, userID, domain.EventFilter{Mode: domain.ModeAll, Today: filter.Today})
		if err != nil {
			return nil, fmt.Errorf("count registered events: %w", err)
		}
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return &domain.UserDashboard{
		Title:      filter.Mode.Title(),
		TotalRSVPs: len(all),
		Events:     events,
		Categories: categories,
	}, nil
}
