package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"
)

type NotificationController struct {
	Logger  *slog.Logger
	Service domain.NotificationService
}

func NewNotificationController(logger *slog.Logger, svc domain.NotificationService) *NotificationController {
	return &NotificationController{Logger: logger, Service: svc}
}

// ListEventNotificationsSuccessResponse is the success response envelope for GET /events/{eventID}/notifications (200).
type ListEventNotificationsSuccessResponse struct {
	Data  []*domain.EventNotification `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// ListEventNotifications godoc
// @Summary List an event's notifications
// @Description Returns the notifications posted on the event, newest first. Visible to admins, the organizer, and participants.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ListEventNotificationsSuccessResponse "data contains notifications"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/notifications [get]
func (c *NotificationController) ListEventNotifications(w http.ResponseWriter, r *http.Request) {
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
	notifications, err := c.Service.ListEventNotifications(r.Context(), identity, eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, notifications)
}

// CreateNotificationRequest is the request body for POST /events/{eventID}/notifications.
type CreateNotificationRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Validate implements Validator.
func (n CreateNotificationRequest) Validate() []string {
	var errs []string
	if n.Title == "" {
		errs = append(errs, "title is required")
	}
	if n.Message == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

// CreateNotificationSuccessResponse is the success response envelope for POST /events/{eventID}/notifications (201).
type CreateNotificationSuccessResponse struct {
	Data  *domain.EventNotification `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// CreateNotification godoc
// @Summary Post a notification on an event
// @Description Stores the notification and fans out one delivery record per participant, excluding the author. Admins may post on any event, organizers only on their own.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CreateNotificationRequest true "Title (max 120) and message (max 2000)"
// @Success 201 {object} controllers.CreateNotificationSuccessResponse "data contains the created notification"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error (includes incomplete fan-out)"
// @Router /events/{eventID}/notifications [post]
func (c *NotificationController) CreateNotification(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req CreateNotificationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	notification, err := c.Service.CreateNotification(r.Context(), identity, eventID, req.Title, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrFanoutIncomplete) {
			c.Logger.ErrorContext(r.Context(), "notification fan-out incomplete", "path", r.URL.Path, "notification_id", notification.ID, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "notification stored but delivery incomplete")
			return
		}
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, notification)
}

// ListMyNotificationsResponse is the data payload for GET /notifications (200).
type ListMyNotificationsResponse struct {
	Notifications []*domain.UserNotification `json:"notifications"`
	Pagination    helpers.PaginationMeta     `json:"pagination"`
}

// ListMyNotificationsSuccessResponse is the success response envelope for GET /notifications (200).
type ListMyNotificationsSuccessResponse struct {
	Data  ListMyNotificationsResponse `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// ListMyNotifications godoc
// @Summary List the caller's notifications
// @Description Returns the caller's delivery records with the notifications they carry, newest first, paginated via page and page_size.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListMyNotificationsSuccessResponse "data contains notifications and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /notifications [get]
func (c *NotificationController) ListMyNotifications(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	notifications, total, err := c.Service.ListMyNotifications(r.Context(), identity, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListMyNotificationsResponse{
		Notifications: notifications,
		Pagination:    helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// MarkReadResponse is the data payload for POST /notifications/{recipientID}/read (200).
type MarkReadResponse struct {
	Status string `json:"status"`
}

// MarkReadSuccessResponse is the success response envelope for POST /notifications/{recipientID}/read (200).
type MarkReadSuccessResponse struct {
	Data  MarkReadResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Description Marks the caller's own delivery record as read. Another user's record yields 404.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param recipientID path string true "Delivery record ID"
// @Success 200 {object} controllers.MarkReadSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /notifications/{recipientID}/read [post]
func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	recipientID := r.PathValue("recipientID")
	if recipientID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing recipientID")
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.MarkNotificationRead(r.Context(), identity, recipientID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MarkReadResponse{Status: "read"})
}
