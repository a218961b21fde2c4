package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gatherly/internal/delivery/http/helpers"
	"gatherly/internal/domain"
)

type RSVPController struct {
	Logger *slog.Logger
	RSVPs  domain.RSVPService
	Guests domain.GuestService
}

func NewRSVPController(logger *slog.Logger, rsvps domain.RSVPService, guests domain.GuestService) *RSVPController {
	return &RSVPController{
		Logger: logger,
		RSVPs:  rsvps,
		Guests: guests,
	}
}

// RSVPSuccessResponse is the success response envelope for RSVP endpoints.
type RSVPSuccessResponse struct {
	Data  *domain.RSVP      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AttendeeListSuccessResponse is the success response envelope for the attendee listing.
type AttendeeListSuccessResponse struct {
	Data  []*domain.Attendee `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// UpsertRSVPRequest is the request body for PUT /events/{eventID}/rsvp.
type UpsertRSVPRequest struct {
	Status string `json:"status"`
}

// Validate implements helpers.Validator.
func (r *UpsertRSVPRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Status) == "" {
		errs = append(errs, "status is required")
	}
	return errs
}

// Upsert godoc
// @Summary Record or update the current guest's RSVP for an event
// @Description Idempotent per (event, guest): repeating the call overwrites the status, last write wins.
// @Tags rsvps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.UpsertRSVPRequest true "RSVP status: yes, maybe or no"
// @Success 200 {object} controllers.RSVPSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown status)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (no guest profile)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rsvp [put]
func (c *RSVPController) Upsert(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	var req UpsertRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	guest, ok := requireGuest(w, r, c.Guests)
	if !ok {
		return
	}

	rsvp, err := c.RSVPs.UpsertRSVP(r.Context(), guest.ID, eventID, req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvp)
}

// ListAttendees godoc
// @Summary List an event's attendees
// @Description Returns every RSVP for the event with the guest's display details joined in. RSVPs whose guest row is missing still appear, with a nil guest.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.AttendeeListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [get]
func (c *RSVPController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	attendees, err := c.RSVPs.ListAttendees(r.Context(), eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendees)
}

// SetRoleRequest is the request body for PATCH /events/{eventID}/rsvps/{rsvpID}/role.
type SetRoleRequest struct {
	Role string `json:"role"`
}

// Validate implements helpers.Validator.
func (r *SetRoleRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Role) == "" {
		errs = append(errs, "role is required")
	}
	return errs
}

// SetRole godoc
// @Summary Change an attendee's role for an event
// @Description The caller must host the event or hold an admin RSVP for it. The host's own row cannot be changed.
// @Tags rsvps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param rsvpID path string true "RSVP ID (UUID)"
// @Param body body controllers.SetRoleRequest true "New role: guest or admin"
// @Success 200 {object} controllers.RSVPSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown role)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rsvps/{rsvpID}/role [patch]
func (c *RSVPController) SetRole(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	rsvpID, ok := pathUUID(w, r, "rsvpID")
	if !ok {
		return
	}

	var req SetRoleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	guest, ok := requireGuest(w, r, c.Guests)
	if !ok {
		return
	}

	rsvp, err := c.RSVPs.SetRole(r.Context(), guest.ID, eventID, rsvpID, req.Role)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRole) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvp)
}
