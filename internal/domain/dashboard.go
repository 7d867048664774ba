package domain

import "context"

// OrganizerDashboard is the organizer view: aggregate counts plus either a
// filtered event list or the participant projection, with a display title.
type OrganizerDashboard struct {
	Title        string                 `json:"title"`
	Counts       *EventCounts           `json:"counts"`
	Events       []*EventListItem       `json:"events"`
	Participants []*EventParticipantRow `json:"participants"`
	Categories   []*Category            `json:"categories"`
}

// AdminCounts are the admin dashboard aggregates.
type AdminCounts struct {
	TotalUsers     int `json:"total_users"`
	TotalEvents    int `json:"total_events"`
	UpcomingEvents int `json:"upcoming_events"`
	RSVPCount      int `json:"rsvp_count"`
}

// AdminDashboard is the admin view across users, events, and RSVPs.
type AdminDashboard struct {
	Title  string                 `json:"title"`
	Counts *AdminCounts           `json:"counts"`
	Users  []*UserWithRole        `json:"users"`
	Events []*EventListItem       `json:"events"`
	RSVPs  []*EventParticipantRow `json:"rsvps"`
}

// UserDashboard lists the caller's RSVP'd events with the same search
// filters as browse.
type UserDashboard struct {
	Title      string           `json:"title"`
	TotalRSVPs int              `json:"total_rsvps"`
	Events     []*EventListItem `json:"events"`
	Categories []*Category      `json:"categories"`
}

// DashboardService composes counts and filtered lists for the three
// role-specific dashboards.
type DashboardService interface {
	Organizer(ctx context.Context, filter EventFilter) (*OrganizerDashboard, error)
	Admin(ctx context.Context, filter EventFilter) (*AdminDashboard, error)
	User(ctx context.Context, userID string, filter EventFilter) (*UserDashboard, error)
}
