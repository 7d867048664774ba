package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

const maxUploadBytes = 10 << 20

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// BrowseResponse is the data payload for GET /events.
type BrowseResponse struct {
	Title  string                  `json:"title"`
	Events []*domain.EventListItem `json:"events"`
}

// Browse godoc
// @Summary List events
// @Description Lists events for a view selected by the type parameter (all, today, past_events, upcoming_events, search). In search mode the category, location, keyword, start_date, and end_date parameters narrow the result; each applies only when present.
// @Tags events
// @Produce json
// @Param type query string false "View selector" Enums(all, today, past_events, upcoming_events, search)
// @Param category query string false "Category name fragment (search mode)"
// @Param location query string false "Location fragment (search mode)"
// @Param keyword query string false "Matches event name or location (search mode)"
// @Param start_date query string false "YYYY-MM-DD (search mode)"
// @Param end_date query string false "YYYY-MM-DD (search mode)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (malformed date)"
// @Router /events [get]
func (c *EventController) Browse(w http.ResponseWriter, r *http.Request) {
	filter, err := domain.ParseEventFilter(r.URL.Query(), domain.ModeAll, time.Now().UTC())
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	events, title, err := c.Service.Browse(r.Context(), filter)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "browse failed", "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, BrowseResponse{Title: title, Events: events})
}

// Get godoc
// @Summary Get one event
// @Description Returns the event with its images and participant list.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	detail, err := c.Service.Get(r.Context(), eventID)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, detail)
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Location    string  `json:"location"`
	CategoryID  *string `json:"category_id"`
}

// Validate implements helpers.Validator.
func (r *CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if _, err := time.Parse(time.DateOnly, r.Date); err != nil {
		errs = append(errs, "date must be YYYY-MM-DD")
	}
	if r.Time != "" {
		if _, err := time.Parse("15:04", r.Time); err != nil {
			errs = append(errs, "time must be HH:MM")
		}
	}
	if r.CategoryID != nil && !uuidRegex.MatchString(*r.CategoryID) {
		errs = append(errs, "category_id must be a UUID")
	}
	return errs
}

// Create godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateEventRequest true "Event details"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	date, _ := time.Parse(time.DateOnly, req.Date)
	identity := middleware.IdentityFromContext(r.Context())
	event, err := c.Service.Create(r.Context(), identity, domain.EventInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
		StartTime:   req.Time,
		Location:    req.Location,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "create event failed", "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. Omitted
// fields are left unchanged.
type UpdateEventRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	CategoryID  *string `json:"category_id"`
}

// Validate implements helpers.Validator.
func (r *UpdateEventRequest) Validate() []string {
	var errs []string
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if r.Date != nil {
		if _, err := time.Parse(time.DateOnly, *r.Date); err != nil {
			errs = append(errs, "date must be YYYY-MM-DD")
		}
	}
	if r.Time != nil && *r.Time != "" {
		if _, err := time.Parse("15:04", *r.Time); err != nil {
			errs = append(errs, "time must be HH:MM")
		}
	}
	return errs
}

// Update godoc
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.UpdateEventRequest true "Fields to change"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	upd := domain.EventUpdate{
		Name:        req.Name,
		Description: req.Description,
		StartTime:   req.Time,
		Location:    req.Location,
		CategoryID:  req.CategoryID,
	}
	if req.Date != nil {
		date, _ := time.Parse(time.DateOnly, *req.Date)
		upd.Date = &date
	}
	event, err := c.Service.Update(r.Context(), eventID, upd)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Removes the event together with its images and RSVPs.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	if err := c.Service.Delete(r.Context(), eventID); err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UploadImage godoc
// @Summary Upload an event image
// @Description Accepts a multipart form with an "image" file part and attaches it to the event.
// @Tags events
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param image formData file true "Image file (jpeg, png, webp, gif)"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/images [post]
func (c *EventController) UploadImage(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing image file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	image, err := c.Service.AddImage(r.Context(), eventID, header.Filename, contentType, file, header.Size)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "image upload failed", "event_id", eventID, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, image)
}
