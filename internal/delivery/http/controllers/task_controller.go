package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"
)

type TaskController struct {
	Logger  *slog.Logger
	Service domain.TaskService
}

func NewTaskController(logger *slog.Logger, svc domain.TaskService) *TaskController {
	return &TaskController{Logger: logger, Service: svc}
}

// ListTasksSuccessResponse is the success response envelope for GET /events/{eventID}/tasks (200).
type ListTasksSuccessResponse struct {
	Data  []*domain.TaskWithAssignee `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// ListTasks godoc
// @Summary List event tasks
// @Description Returns the event's tasks with joined assignee references. Visible to admins, the organizer, and participants.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ListTasksSuccessResponse "data contains tasks"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/tasks [get]
func (c *TaskController) ListTasks(w http.ResponseWriter, r *http.Request) {
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
	tasks, err := c.Service.ListEventTasks(r.Context(), identity, eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tasks)
}

// CreateTaskRequest is the request body for POST /events/{eventID}/tasks.
// Status is server-assigned; a submitted status is ignored.
type CreateTaskRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
	Budget      float64    `json:"budget"`
	AssignedTo  *string    `json:"assigned_to"`
}

// Validate implements Validator.
func (t CreateTaskRequest) Validate() []string {
	var errs []string
	if t.Name == "" {
		errs = append(errs, "name is required")
	}
	if t.Budget < 0 {
		errs = append(errs, "budget must not be negative")
	}
	return errs
}

// CreateTaskSuccessResponse is the success response envelope for POST /events/{eventID}/tasks (201).
type CreateTaskSuccessResponse struct {
	Data  *domain.Task      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateTask godoc
// @Summary Create a task on an event
// @Description Creates a task with Pending status. The assignee, when given, must be a participant of the event or its organizer. Only admins and the organizer may create tasks.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CreateTaskRequest true "Task data"
// @Success 201 {object} controllers.CreateTaskSuccessResponse "data contains the created task"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (includes invalid assignee)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/tasks [post]
func (c *TaskController) CreateTask(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req CreateTaskRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	task := &domain.Task{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Budget:      req.Budget,
		AssignedTo:  req.AssignedTo,
	}
	if err := c.Service.CreateTask(r.Context(), identity, eventID, task); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, task)
}

// UpdateTaskRequest is the request body for PATCH /tasks/{taskID}. Only status
// and comment are mutable; the comment is replaced wholesale and cleared when
// omitted or null.
type UpdateTaskRequest struct {
	Status  string  `json:"status"`
	Comment *string `json:"comment"`
}

// UpdateTaskSuccessResponse is the success response envelope for PATCH /tasks/{taskID} (200).
type UpdateTaskSuccessResponse struct {
	Data  *domain.Task      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UpdateTask godoc
// @Summary Update a task's status and comment
// @Description Blank status keeps the current value. Allowed for admins, the owning event's organizer, and the task's assignee.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskID path string true "Task ID"
// @Param body body UpdateTaskRequest true "Status and comment"
// @Success 200 {object} controllers.UpdateTaskSuccessResponse "data contains the updated task"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tasks/{taskID} [patch]
func (c *TaskController) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("taskID")
	if taskID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing taskID")
		return
	}
	var req UpdateTaskRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	task, err := c.Service.UpdateTask(r.Context(), identity, taskID, domain.TaskUpdate{
		Status:  req.Status,
		Comment: req.Comment,
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, task)
}
