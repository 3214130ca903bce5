package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventmanagement/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestNotificationRecipientRepository_CreateMany(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		recipients []*domain.NotificationRecipient
		mock       func(mock sqlmock.Sqlmock)
		wantErr    bool
	}{
		{
			name: "success two rows single statement",
			recipients: []*domain.NotificationRecipient{
				{ID: "rec-1", NotificationID: "notif-1", UserID: "user-2", CreatedAt: created},
				{ID: "rec-2", NotificationID: "notif-1", UserID: "user-3", CreatedAt: created},
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO notification_recipients .+ VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\), \(\$7, \$8, \$9, \$10, \$11, \$12\)`).
					WithArgs(
						"rec-1", "notif-1", "user-2", false, nil, created,
						"rec-2", "notif-1", "user-3", false, nil, created,
					).
					WillReturnResult(sqlmock.NewResult(0, 2))
			},
		},
		{
			name:       "empty set is a no-op",
			recipients: nil,
			mock:       func(mock sqlmock.Sqlmock) {},
		},
		{
			name: "db error",
			recipients: []*domain.NotificationRecipient{
				{ID: "rec-1", NotificationID: "notif-1", UserID: "user-2", CreatedAt: created},
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO notification_recipients`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewNotificationRecipientRepository(db)
			err = repo.CreateMany(ctx, tt.recipients)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNotificationRecipientRepository_ListByUserID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	readAt := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notification_recipients WHERE user_id = \$1`).
		WithArgs("user-2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT id, notification_id, user_id, is_read, read_at, created_at FROM notification_recipients`).
		WithArgs("user-2", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "notification_id", "user_id", "is_read", "read_at", "created_at"}).
			AddRow("rec-11", "notif-5", "user-2", true, readAt, created).
			AddRow("rec-12", "notif-4", "user-2", false, nil, created))

	repo := NewNotificationRecipientRepository(db)
	got, total, err := repo.ListByUserID(ctx, "user-2", domain.PaginationParams{Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, 12, total)
	require.Len(t, got, 2)
	require.True(t, got[0].IsRead)
	require.NotNil(t, got[0].ReadAt)
	require.Equal(t, readAt, *got[0].ReadAt)
	require.False(t, got[1].IsRead)
	require.Nil(t, got[1].ReadAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRecipientRepository_MarkRead(t *testing.T) {
	ctx := context.Background()
	readAt := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			id:   "rec-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE notification_recipients SET is_read = TRUE, read_at = \$2 WHERE id = \$1`).
					WithArgs("rec-1", readAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			id:   "rec-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE notification_recipients`).
					WithArgs("rec-missing", readAt).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewNotificationRecipientRepository(db)
			err = repo.MarkRead(ctx, tt.id, readAt)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNotificationRepository_ListByIDs_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotificationRepository(db)
	got, err := repo.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
