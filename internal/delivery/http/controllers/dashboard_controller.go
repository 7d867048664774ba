package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

type DashboardController struct {
	Logger  *slog.Logger
	Service domain.DashboardService
}

func NewDashboardController(logger *slog.Logger, svc domain.DashboardService) *DashboardController {
	return &DashboardController{
		Logger:  logger,
		Service: svc,
	}
}

// Organizer godoc
// @Summary Organizer dashboard
// @Description Aggregate event counts plus a filtered event list, or the per-event RSVP projection when type=total_participants.
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Param type query string false "View selector, defaults to today" Enums(all, today, past_events, upcoming_events, search, total_participants)
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /organizer/dashboard [get]
func (c *DashboardController) Organizer(w http.ResponseWriter, r *http.Request) {
	filter, err := domain.ParseEventFilter(r.URL.Query(), domain.ModeToday, time.Now().UTC())
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	dash, err := c.Service.Organizer(r.Context(), filter)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "organizer dashboard failed", "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, dash)
}

// Admin godoc
// @Summary Admin dashboard
// @Description Site-wide counts plus an event list, the user list (type=all_users), or the RSVP projection (type=rsvps).
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Param type query string false "View selector, defaults to all_users" Enums(all, today, past_events, upcoming_events, search, rsvps, all_users)
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /admin/dashboard [get]
func (c *DashboardController) Admin(w http.ResponseWriter, r *http.Request) {
	filter, err := domain.ParseEventFilter(r.URL.Query(), domain.ModeUsers, time.Now().UTC())
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	dash, err := c.Service.Admin(r.Context(), filter)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "admin dashboard failed", "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, dash)
}

// User godoc
// @Summary User dashboard
// @Description The caller's RSVP'd events with the same view selector and search filters as event browsing.
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Param type query string false "View selector" Enums(all, today, past_events, upcoming_events, search)
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /dashboard [get]
func (c *DashboardController) User(w http.ResponseWriter, r *http.Request) {
	filter, err := domain.ParseEventFilter(r.URL.Query(), domain.ModeAll, time.Now().UTC())
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	identity := middleware.IdentityFromContext(r.Context())
	dash, err := c.Service.User(r.Context(), identity.ID, filter)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "user dashboard failed", "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, dash)
}
