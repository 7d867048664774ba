package controllers

import (
	"log/slog"
	"net/http"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

type RSVPController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
}

func NewRSVPController(logger *slog.Logger, svc domain.RSVPService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary RSVP to an event
// @Description Registers the caller for the event and sends a confirmation email. A repeated RSVP for the same event returns 409 and leaves the original in place.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered)"
// @Router /events/{eventID}/rsvps [post]
func (c *RSVPController) Create(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	identity := middleware.IdentityFromContext(r.Context())
	rsvp, err := c.Service.Create(r.Context(), eventID, identity.ID)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, rsvp)
}

// AdminCreateRSVPRequest registers a user for an event on their behalf.
type AdminCreateRSVPRequest struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}

func (r *AdminCreateRSVPRequest) Validate() []string {
	var errs []string
	if !uuidRegex.MatchString(r.EventID) {
		errs = append(errs, "event_id must be a valid UUID")
	}
	if !uuidRegex.MatchString(r.UserID) {
		errs = append(errs, "user_id must be a valid UUID")
	}
	return errs
}

// AdminCreate godoc
// @Summary Register a user for an event
// @Description Creates an RSVP on behalf of the given user. Duplicate registrations return 409.
// @Tags rsvps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AdminCreateRSVPRequest true "RSVP to create"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/rsvps [post]
func (c *RSVPController) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var req AdminCreateRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rsvp, err := c.Service.Create(r.Context(), req.EventID, req.UserID)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, rsvp)
}

// ListAll godoc
// @Summary List all RSVPs
// @Description Admin view of every RSVP joined with event and user details.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Router /admin/rsvps [get]
func (c *RSVPController) ListAll(w http.ResponseWriter, r *http.Request) {
	details, err := c.Service.ListAll(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "list rsvps failed", "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}

// Delete godoc
// @Summary Delete an RSVP
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param rsvpID path string true "RSVP ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/rsvps/{rsvpID} [delete]
func (c *RSVPController) Delete(w http.ResponseWriter, r *http.Request) {
	rsvpID := r.PathValue("rsvpID")
	if !uuidRegex.MatchString(rsvpID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid rsvpID")
		return
	}
	if err := c.Service.Delete(r.Context(), rsvpID); err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
