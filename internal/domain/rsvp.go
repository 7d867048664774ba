package domain

import (
	"context"
	"time"
)

// RSVP records a user's intent to attend an event. The (event, user) pair is
// unique; the constraint lives in the database so concurrent duplicate
// submissions resolve to exactly one row.
// swagger:model RSVP
type RSVP struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRSVP returns a new RSVP. ID is set by the repository on create.
func NewRSVP(eventID, userID string, createdAt time.Time) *RSVP {
	return &RSVP{
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: createdAt,
	}
}

// RSVPDetail is an RSVP joined with event and user info for admin views.
type RSVPDetail struct {
	RSVP
	EventName     string  `json:"event_name"`
	CategoryName  *string `json:"category_name"`
	OrganizerName string  `json:"organizer_name"`
	Username      string  `json:"username"`
	UserEmail     string  `json:"user_email"`
}

// RSVPRepository defines storage operations for RSVPs. Create returns
// ErrConflict when an RSVP for the same (event, user) pair already exists.
type RSVPRepository interface {
	Create(ctx context.Context, rsvp *RSVP) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*RSVP, error)
	ListDetails(ctx context.Context) ([]*RSVPDetail, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// RSVPService defines RSVP registration and administration.
type RSVPService interface {
	// Create registers the user for the event. A duplicate pair returns
	// ErrConflict. On success a confirmation email is sent best-effort:
	// a send failure never fails or undoes the RSVP.
	Create(ctx context.Context, eventID, userID string) (*RSVP, error)
	ListAll(ctx context.Context) ([]*RSVPDetail, error)
	Delete(ctx context.Context, id string) error
}
