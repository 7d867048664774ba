package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ViewMode selects the base query mode for event list views. It is a closed
// enum; stringly-typed selectors from the request are parsed once at the
// boundary.
type ViewMode int

const (
	ModeAll ViewMode = iota
	ModeToday
	ModePast
	ModeUpcoming
	ModeSearch
	// ModeParticipants switches the result entity to the per-event RSVP
	// count projection instead of an event list.
	ModeParticipants
	// ModeUsers is the admin dashboard's user-list projection.
	ModeUsers
)

// ParseViewMode maps a request's type parameter onto a ViewMode. Unknown or
// empty values return fallback.
func ParseViewMode(s string, fallback ViewMode) ViewMode {
	switch s {
	case "all":
		return ModeAll
	case "today":
		return ModeToday
	case "past_events":
		return ModePast
	case "upcoming_events", "upcoming":
		return ModeUpcoming
	case "search":
		return ModeSearch
	case "total_participants", "rsvps":
		return ModeParticipants
	case "all_users":
		return ModeUsers
	default:
		return fallback
	}
}

// Title returns the human-readable heading for the mode.
func (m ViewMode) Title() string {
	switch m {
	case ModeToday:
		return "Today's Events"
	case ModePast:
		return "Past Events"
	case ModeUpcoming:
		return "Upcoming Events"
	case ModeSearch:
		return "Search Results"
	case ModeParticipants:
		return "Participants"
	case ModeUsers:
		return "All Users"
	default:
		return "All Events"
	}
}

// EventFilter is the composed predicate for event list views. Sub-filters are
// conjoined; each applies only when its field is non-empty. An absent
// parameter never constrains the result set.
type EventFilter struct {
	Mode     ViewMode
	Category string
	Location string
	Keyword  string
	// StartDate/EndDate tie-break: both set means inclusive range, only
	// StartDate means strictly after, only EndDate means strictly before.
	StartDate *time.Time
	EndDate   *time.Time
	// Today anchors the today/past/upcoming modes.
	Today time.Time
}

// ParseEventFilter builds an EventFilter from request query values. Search
// parameters are read only in search mode, matching the view contract: the
// type selector picks the base mode first, then parameter filters apply.
// Empty parameters are treated as absent. Malformed dates are a validation
// error, never a silent no-filter.
func ParseEventFilter(q url.Values, fallback ViewMode, today time.Time) (EventFilter, error) {
	f := EventFilter{
		Mode:  ParseViewMode(q.Get("type"), fallback),
		Today: truncateToDay(today),
	}
	if f.Mode != ModeSearch {
		return f, nil
	}
	f.Category = strings.TrimSpace(q.Get("category"))
	f.Location = strings.TrimSpace(q.Get("location"))
	f.Keyword = strings.TrimSpace(q.Get("keyword"))
	var err error
	if f.StartDate, err = parseDateParam(q.Get("start_date")); err != nil {
		return EventFilter{}, err
	}
	if f.EndDate, err = parseDateParam(q.Get("end_date")); err != nil {
		return EventFilter{}, err
	}
	return f, nil
}

func parseDateParam(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidInput, s)
	}
	return &t, nil
}

// Matches reports whether the event satisfies the filter. It is a pure
// predicate: side-effect free and safely re-evaluable, so applying it to the
// full event collection yields exactly the subset matching all active
// sub-filters.
func (f EventFilter) Matches(e *EventListItem) bool {
	date := truncateToDay(e.Date)
	switch f.Mode {
	case ModeToday:
		return date.Equal(f.Today)
	case ModePast:
		return date.Before(f.Today)
	case ModeUpcoming:
		return date.After(f.Today)
	case ModeSearch:
		// fall through to the parameter-derived conjunction below
	default:
		return true
	}

	if f.Keyword != "" {
		if !containsFold(e.Name, f.Keyword) && !containsFold(e.Location, f.Keyword) {
			return false
		}
	}
	if f.Category != "" {
		if e.CategoryName == nil || !containsFold(*e.CategoryName, f.Category) {
			return false
		}
	}
	if f.Location != "" && !containsFold(e.Location, f.Location) {
		return false
	}
	switch {
	case f.StartDate != nil && f.EndDate != nil:
		if date.Before(*f.StartDate) || date.After(*f.EndDate) {
			return false
		}
	case f.StartDate != nil:
		if !date.After(*f.StartDate) {
			return false
		}
	case f.EndDate != nil:
		if !date.Before(*f.EndDate) {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
