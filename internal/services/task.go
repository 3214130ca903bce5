package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventmanagement/internal/authz"
	"eventmanagement/internal/domain"
)

type taskService struct {
	taskRepo        domain.TaskRepository
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	userRepo        domain.UserRepository
	contextTimeout  time.Duration
}

func NewTaskService(taskRepo domain.TaskRepository,
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	userRepo domain.UserRepository,
	timeout time.Duration,
) domain.TaskService {
	return &taskService{
		taskRepo:        taskRepo,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		contextTimeout:  timeout,
	}
}

func (s *taskService) canViewEvent(ctx context.Context, identity domain.Identity, event *domain.Event) (bool, error) {
	if identity.Role == domain.RoleAdmin || event.OrganizerID == identity.UserID {
		return true, nil
	}
	_, err := s.participantRepo.GetByEventAndUser(ctx, event.ID, identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get participant: %w", err)
	}
	return true, nil
}

func (s *taskService) ListEventTasks(ctx context.Context, identity domain.Identity, eventID string) ([]*domain.TaskWithAssignee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	visible, err := s.canViewEvent(ctx, identity, event)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, domain.ErrForbidden
	}

	tasks, err := s.taskRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	assigneeIDs := make([]string, 0, len(tasks))
	seen := make(map[string]struct{})
	for _, t := range tasks {
		if t.AssignedTo == nil || *t.AssignedTo == "" {
			continue
		}
		if _, ok := seen[*t.AssignedTo]; ok {
			continue
		}
		seen[*t.AssignedTo] = struct{}{}
		assigneeIDs = append(assigneeIDs, *t.AssignedTo)
	}
	users, err := s.userRepo.ListByIDs(ctx, assigneeIDs)
	if err != nil {
		return nil, fmt.Errorf("list assignees: %w", err)
	}
	userByID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	out := make([]*domain.TaskWithAssignee, 0, len(tasks))
	for _, t := range tasks {
		tw := &domain.TaskWithAssignee{Task: t}
		if t.AssignedTo != nil {
			if u, ok := userByID[*t.AssignedTo]; ok {
				tw.AssignedUser = u.Ref()
			}
		}
		out = append(out, tw)
	}
	return out, nil
}

// validateAssignee enforces the assignment guard: the assignee must be the
// event's organizer or one of its participants.
func (s *taskService) validateAssignee(ctx context.Context, event *domain.Event, assigneeID string) error {
	if assigneeID == event.OrganizerID {
		return nil
	}
	_, err := s.participantRepo.GetByEventAndUser(ctx, event.ID, assigneeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrAssigneeNotParticipant
		}
		return fmt.Errorf("get participant: %w", err)
	}
	return nil
}

func (s *taskService) CreateTask(ctx context.Context, identity domain.Identity, eventID string, task *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !authz.CanManageTasks(identity.Role, event.OrganizerID == identity.UserID) {
		return domain.ErrForbidden
	}

	task.Name = strings.TrimSpace(task.Name)
	if task.Name == "" {
		return fmt.Errorf("%w: task name is required", domain.ErrInvalidInput)
	}
	if task.AssignedTo != nil && *task.AssignedTo == "" {
		task.AssignedTo = nil
	}
	if task.AssignedTo != nil {
		if err := s.validateAssignee(ctx, event, *task.AssignedTo); err != nil {
			return err
		}
	}

	task.ID = uuid.NewString()
	task.EventID = eventID
	task.Status = domain.TaskStatusPending
	task.CreatedAt = time.Now().UTC()
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (s *taskService) UpdateTask(ctx context.Context, identity domain.Identity, taskID string, update domain.TaskUpdate) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, task.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	isAssignee := task.AssignedTo != nil && *task.AssignedTo == identity.UserID
	if !authz.CanEditTask(identity.Role, event.OrganizerID == identity.UserID, isAssignee) {
		return nil, domain.ErrForbidden
	}

	if update.Status != "" {
		task.Status = update.Status
	}
	task.Comment = update.Comment

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}
