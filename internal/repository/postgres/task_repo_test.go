package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventmanagement/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "event_id", "name", "description", "due_date", "priority",
		"budget", "comment", "status", "assigned_to", "created_at",
	})
}

func TestTaskRepository_GetByID(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	due := now.Add(72 * time.Hour)

	t.Run("success with nullable fields set", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, name, description, due_date, priority, budget, comment, status, assigned_to, created_at FROM tasks WHERE id = \$1`).
			WithArgs("task-1").
			WillReturnRows(taskRows().AddRow(
				"task-1", "ev-1", "Book venue", "call the venue", due, "High",
				500.0, "waiting on quote", "In Progress", "u-2", now,
			))

		repo := NewTaskRepository(db)
		task, err := repo.GetByID(context.Background(), "task-1")
		require.NoError(t, err)
		assert.Equal(t, "task-1", task.ID)
		require.NotNil(t, task.DueDate)
		assert.Equal(t, due, *task.DueDate)
		require.NotNil(t, task.Comment)
		assert.Equal(t, "waiting on quote", *task.Comment)
		require.NotNil(t, task.AssignedTo)
		assert.Equal(t, "u-2", *task.AssignedTo)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nullable fields come back nil", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM tasks WHERE id = \$1`).
			WithArgs("task-2").
			WillReturnRows(taskRows().AddRow(
				"task-2", "ev-1", "Send invites", "", nil, "Low",
				0.0, nil, "Pending", nil, now,
			))

		repo := NewTaskRepository(db)
		task, err := repo.GetByID(context.Background(), "task-2")
		require.NoError(t, err)
		assert.Nil(t, task.DueDate)
		assert.Nil(t, task.Comment)
		assert.Nil(t, task.AssignedTo)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM tasks WHERE id = \$1`).
			WithArgs("task-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewTaskRepository(db)
		_, err = repo.GetByID(context.Background(), "task-missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTaskRepository_ListByEventID(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM tasks WHERE event_id = \$1 ORDER BY created_at DESC, id`).
		WithArgs("ev-1").
		WillReturnRows(taskRows().
			AddRow("task-2", "ev-1", "Send invites", "", nil, "Low", 0.0, nil, "Pending", nil, now.Add(time.Hour)).
			AddRow("task-1", "ev-1", "Book venue", "", nil, "High", 500.0, nil, "Pending", "u-2", now))

	repo := NewTaskRepository(db)
	tasks, err := repo.ListByEventID(context.Background(), "ev-1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "task-2", tasks[0].ID)
	assert.Equal(t, "task-1", tasks[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		comment := "done early"
		task := &domain.Task{
			ID: "task-1", Name: "Book venue", Priority: "High",
			Budget: 500, Comment: &comment, Status: "Completed",
		}
		mock.ExpectExec(`UPDATE tasks`).
			WithArgs(task.Name, task.Description, task.DueDate, task.Priority,
				task.Budget, task.Comment, task.Status, task.AssignedTo, task.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewTaskRepository(db)
		require.NoError(t, repo.Update(context.Background(), task))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows means not found", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE tasks`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewTaskRepository(db)
		err = repo.Update(context.Background(), &domain.Task{ID: "task-missing"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTaskRepository_DeleteByEventID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM tasks WHERE event_id = \$1`).
		WithArgs("ev-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := NewTaskRepository(db)
	require.NoError(t, repo.DeleteByEventID(context.Background(), "ev-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
