package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventmanagement/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestParticipantRepository_Create(t *testing.T) {
	ctx := context.Background()
	invitedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		participant *domain.Participant
		mock        func(mock sqlmock.Sqlmock)
		wantErr     bool
		errIs       error
	}{
		{
			name: "success",
			participant: &domain.Participant{
				ID: "part-1", EventID: "ev-1", UserID: "user-2",
				Role: "Guest", InvitedAt: invitedAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO participants`).
					WithArgs("part-1", "ev-1", "user-2", "Guest", false, invitedAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "unique violation returns ErrDuplicateParticipant",
			participant: &domain.Participant{
				ID: "part-2", EventID: "ev-1", UserID: "user-2",
				Role: "Guest", InvitedAt: invitedAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO participants`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateParticipant,
		},
		{
			name: "db error",
			participant: &domain.Participant{
				ID: "part-1", EventID: "ev-1", UserID: "user-2",
				Role: "Guest", InvitedAt: invitedAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO participants`).
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
			repo := NewParticipantRepository(db)
			err = repo.Create(ctx, tt.participant)
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

func TestParticipantRepository_GetByEventAndUser(t *testing.T) {
	ctx := context.Background()
	invitedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		eventID string
		userID  string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Participant
		wantErr bool
		errIs   error
	}{
		{
			name:    "success",
			eventID: "ev-1",
			userID:  "user-2",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, user_id, role, can_edit, invited_at FROM participants WHERE event_id = \$1 AND user_id = \$2`).
					WithArgs("ev-1", "user-2").
					WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "role", "can_edit", "invited_at"}).
						AddRow("part-1", "ev-1", "user-2", "Guest", false, invitedAt))
			},
			want: &domain.Participant{
				ID: "part-1", EventID: "ev-1", UserID: "user-2",
				Role: "Guest", CanEdit: false, InvitedAt: invitedAt,
			},
		},
		{
			name:    "not a participant",
			eventID: "ev-1",
			userID:  "user-3",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, user_id, role, can_edit, invited_at FROM participants`).
					WithArgs("ev-1", "user-3").
					WillReturnError(sql.ErrNoRows)
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
			repo := NewParticipantRepository(db)
			got, err := repo.GetByEventAndUser(ctx, tt.eventID, tt.userID)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestParticipantRepository_DeleteByEventID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM participants WHERE event_id = \$1`).
		WithArgs("ev-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := NewParticipantRepository(db)
	require.NoError(t, repo.DeleteByEventID(context.Background(), "ev-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
