package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventhub/internal/domain"
)

type rsvpService struct {
	rsvpRepo     domain.RSVPRepository
	eventRepo    domain.EventRepository
	userRepo     domain.UserRepository
	emailService domain.EmailService
	logger       *slog.Logger
}

// NewRSVPService creates an RSVPService with the given repositories. The email
// service may be nil, in which case no confirmation emails are sent.
func NewRSVPService(
	rsvpRepo domain.RSVPRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.RSVPService {
	return &rsvpService{
		rsvpRepo:     rsvpRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *rsvpService) Create(ctx context.Context, eventID, userID string) (*domain.RSVP, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	rsvp := domain.NewRSVP(eventID, userID, time.Now())
	if err := s.rsvpRepo.Create(ctx, rsvp); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: already registered for this event", domain.ErrConflict)
		}
		return nil, fmt.Errorf("create rsvp: %w", err)
	}

	// The RSVP is committed at this point. Confirmation mail is best-effort:
	// a failure is logged and the RSVP stands.
	if s.emailService != nil {
		data := &domain.RSVPConfirmationEmailData{
			Email:     user.Email,
			Username:  user.Username,
			EventName: event.Name,
		}
		if err := s.emailService.SendRSVPConfirmation(ctx, data); err != nil {
			s.logger.Error("failed to send rsvp confirmation", "user_id", userID, "event_id", eventID, "error", err)
		}
	}
	return rsvp, nil
}

func (s *rsvpService) ListAll(ctx context.Context) ([]*domain.RSVPDetail, error) {
	details, err := s.rsvpRepo.ListDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	if details == nil {
		details = []*domain.RSVPDetail{}
	}
	return details, nil
}

func (s *rsvpService) Delete(ctx context.Context, id string) error {
	if err := s.rsvpRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("rsvp deleted", "rsvp_id", id)
	return nil
}
