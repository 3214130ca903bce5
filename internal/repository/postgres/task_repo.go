package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventmanagement/internal/domain"
)

const taskCols = "id, event_id, name, description, due_date, priority, budget, comment, status, assigned_to, created_at"

type taskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) domain.TaskRepository {
	return &taskRepository{DB: db}
}

func scanTask(scan func(dest ...any) error) (*domain.Task, error) {
	t := &domain.Task{}
	var dueNull sql.NullTime
	var commentNull, assignedNull sql.NullString
	err := scan(
		&t.ID, &t.EventID, &t.Name, &t.Description, &dueNull,
		&t.Priority, &t.Budget, &commentNull, &t.Status, &assignedNull, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dueNull.Valid {
		t.DueDate = &dueNull.Time
	}
	if commentNull.Valid {
		t.Comment = &commentNull.String
	}
	if assignedNull.Valid {
		t.AssignedTo = &assignedNull.String
	}
	return t, nil
}

func (r *taskRepository) Create(ctx context.Context, t *domain.Task) error {
	query := `
		INSERT INTO tasks (` + taskCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		t.ID, t.EventID, t.Name, t.Description, t.DueDate,
		t.Priority, t.Budget, t.Comment, t.Status, t.AssignedTo, t.CreatedAt,
	)
	return err
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+taskCols+" FROM tasks WHERE id = $1", id)
	t, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *taskRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Task, error) {
	where, args := buildWhere(eq("event_id", eventID))
	rows, err := r.DB.QueryContext(ctx, "SELECT "+taskCols+" FROM tasks"+where+" ORDER BY created_at DESC, id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, t *domain.Task) error {
	query := `
		UPDATE tasks
		SET name = $1, description = $2, due_date = $3, priority = $4,
		    budget = $5, comment = $6, status = $7, assigned_to = $8
		WHERE id = $9
	`
	result, err := r.DB.ExecContext(ctx, query,
		t.Name, t.Description, t.DueDate, t.Priority,
		t.Budget, t.Comment, t.Status, t.AssignedTo, t.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *taskRepository) DeleteByEventID(ctx context.Context, eventID string) error {
	where, args := buildWhere(eq("event_id", eventID))
	_, err := r.DB.ExecContext(ctx, "DELETE FROM tasks"+where, args...)
	return err
}
