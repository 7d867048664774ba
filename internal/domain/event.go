package domain

import (
	"context"
	"io"
	"time"
)

// Event represents a published event. Date carries the calendar day (UTC
// midnight); StartTime is the wall-clock start in "15:04" form.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"time"`
	Location    string    `json:"location"`
	CategoryID  *string   `json:"category_id"`
	OrganizerID string    `json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventImage references an uploaded image blob owned by an event.
// swagger:model EventImage
type EventImage struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	StorageKey string    `json:"storage_key"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
}

// EventListItem is an event row annotated for list views: category and
// organizer names resolved, first image attached when one exists.
type EventListItem struct {
	Event
	CategoryName  *string     `json:"category_name"`
	OrganizerName string      `json:"organizer_name"`
	FirstImage    *EventImage `json:"first_image"`
}

// ParticipantInfo is the slim user view embedded in event details.
type ParticipantInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// EventDetail is a single event with its images and participants.
type EventDetail struct {
	Event
	CategoryName  *string            `json:"category_name"`
	OrganizerName string             `json:"organizer_name"`
	Images        []*EventImage      `json:"images"`
	Participants  []*ParticipantInfo `json:"participants"`
}

// EventUpdate carries optional event fields; nil means leave unchanged.
type EventUpdate struct {
	Name        *string
	Description *string
	Date        *time.Time
	StartTime   *string
	Location    *string
	CategoryID  *string
}

// EventCounts are the organizer dashboard aggregates.
type EventCounts struct {
	TotalEvents       int `json:"total_events"`
	PastEvents        int `json:"past_events"`
	UpcomingEvents    int `json:"upcoming_events"`
	TotalParticipants int `json:"total_participants"`
}

// EventParticipantRow is the participant projection: one row per event with
// its RSVP count.
type EventParticipantRow struct {
	EventID       string `json:"event_id"`
	EventName     string `json:"event_name"`
	OrganizerName string `json:"organizer_name"`
	TotalRSVPs    int    `json:"total_rsvps"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetDetail(ctx context.Context, id string) (*EventDetail, error)
	// List returns the events matching the filter, annotated with category
	// name, organizer name, and first image.
	List(ctx context.Context, filter EventFilter) ([]*EventListItem, error)
	// ListByParticipant is List restricted to events the user has RSVP'd for.
	ListByParticipant(ctx context.Context, userID string, filter EventFilter) ([]*EventListItem, error)
	ListParticipantCounts(ctx context.Context) ([]*EventParticipantRow, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
	Counts(ctx context.Context, today time.Time) (*EventCounts, error)
}

// EventImageRepository defines storage for event image references.
type EventImageRepository interface {
	Create(ctx context.Context, image *EventImage) error
	ListByEventID(ctx context.Context, eventID string) ([]*EventImage, error)
}

// MediaStore is the opaque blob store event images are uploaded to.
type MediaStore interface {
	// Put stores the blob under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (url string, err error)
	Delete(ctx context.Context, key string) error
}

// EventInput is the event creation payload.
type EventInput struct {
	Name        string
	Description string
	Date        time.Time
	StartTime   string
	Location    string
	CategoryID  *string
}

// EventService defines event management and browsing.
type EventService interface {
	Create(ctx context.Context, organizer Identity, input EventInput) (*Event, error)
	Get(ctx context.Context, id string) (*EventDetail, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
	// Browse applies the filter and returns the matching events with the
	// human-readable view title.
	Browse(ctx context.Context, filter EventFilter) ([]*EventListItem, string, error)
	AddImage(ctx context.Context, eventID, filename, contentType string, body io.Reader, size int64) (*EventImage, error)
}
