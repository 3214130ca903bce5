package controllers

import (
	"log/slog"
	"net/http"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"
)

type ParticipantController struct {
	Logger  *slog.Logger
	Service domain.ParticipantService
}

func NewParticipantController(logger *slog.Logger, svc domain.ParticipantService) *ParticipantController {
	return &ParticipantController{Logger: logger, Service: svc}
}

// ListParticipantsSuccessResponse is the success response envelope for GET /events/{eventID}/participants (200).
type ListParticipantsSuccessResponse struct {
	Data  []*domain.ParticipantWithUser `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

// ListParticipants godoc
// @Summary List event participants
// @Description Returns the event's participants with joined user references. Visible to admins, the organizer, and participants.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ListParticipantsSuccessResponse "data contains participants"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [get]
func (c *ParticipantController) ListParticipants(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	participants, err := c.Service.ListEventParticipants(r.Context(), identity, eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participants)
}

// InviteParticipantRequest is the request body for POST /events/{eventID}/participants.
type InviteParticipantRequest struct {
	Username string `json:"username"`
}

// Validate implements Validator.
func (i InviteParticipantRequest) Validate() []string {
	var errs []string
	if i.Username == "" {
		errs = append(errs, "username is required")
	}
	return errs
}

// InviteParticipantSuccessResponse is the success response envelope for POST /events/{eventID}/participants (201).
type InviteParticipantSuccessResponse struct {
	Data  *domain.Participant `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// InviteParticipant godoc
// @Summary Invite a user to an event
// @Description Adds the user with the given username as a participant and sends a best-effort invitation email. Only admins and the organizer may invite.
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body InviteParticipantRequest true "Username to invite"
// @Success 201 {object} controllers.InviteParticipantSuccessResponse "data contains the created participant"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event or username)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already a participant)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [post]
func (c *ParticipantController) InviteParticipant(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req InviteParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	participant, err := c.Service.InviteParticipant(r.Context(), identity, eventID, req.Username)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, participant)
}

// ListAvailableUsersSuccessResponse is the success response envelope for GET /events/{eventID}/participants/available (200).
type ListAvailableUsersSuccessResponse struct {
	Data  []*domain.User    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListAvailableUsers godoc
// @Summary List users available for invitation
// @Description Returns users who are neither participants of the event nor its organizer. Only admins and the organizer may call this.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ListAvailableUsersSuccessResponse "data contains available users"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants/available [get]
func (c *ParticipantController) ListAvailableUsers(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	users, err := c.Service.ListAvailableUsers(r.Context(), identity, eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, users)
}
