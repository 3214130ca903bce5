package domain

import (
	"context"
	"time"
)

// TaskStatusPending is the fixed initial status of every created task;
// client-supplied status values are ignored on creation.
const TaskStatusPending = "Pending"

// Task belongs to exactly one event and optionally references one user as
// assignee. The assignee must be a participant of the event or its organizer.
// swagger:model Task
type Task struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
	Budget      float64    `json:"budget"`
	Comment     *string    `json:"comment"`
	Status      string     `json:"status"`
	AssignedTo  *string    `json:"assigned_to"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TaskWithAssignee is the list projection of a task with the joined assigned
// user reference (nil when unassigned).
type TaskWithAssignee struct {
	*Task
	AssignedUser *UserRef `json:"assigned_user"`
}

// TaskUpdate holds the only fields mutable after creation: status and comment.
// A blank status keeps the current value; the comment is replaced wholesale
// and may be cleared with nil.
type TaskUpdate struct {
	Status  string
	Comment *string
}

// TaskRepository defines the interface for task storage.
type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Task, error)
	// Update replaces the full owned-row projection of the task.
	Update(ctx context.Context, t *Task) error
	DeleteByEventID(ctx context.Context, eventID string) error
}

// TaskService defines task operations.
type TaskService interface {
	ListEventTasks(ctx context.Context, identity Identity, eventID string) ([]*TaskWithAssignee, error)
	// CreateTask validates the assignment guard and stores the task with
	// server-assigned id, creation time, and Pending status.
	CreateTask(ctx context.Context, identity Identity, eventID string, task *Task) error
	UpdateTask(ctx context.Context, identity Identity, taskID string, update TaskUpdate) (*Task, error)
}
