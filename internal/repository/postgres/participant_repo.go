package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventmanagement/internal/domain"
)

const participantCols = "id, event_id, user_id, role, can_edit, invited_at"

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{DB: db}
}

func scanParticipant(scan func(dest ...any) error) (*domain.Participant, error) {
	p := &domain.Participant{}
	if err := scan(&p.ID, &p.EventID, &p.UserID, &p.Role, &p.CanEdit, &p.InvitedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (` + participantCols + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query, p.ID, p.EventID, p.UserID, p.Role, p.CanEdit, p.InvitedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateParticipant
		}
		return err
	}
	return nil
}

func (r *participantRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Participant, error) {
	where, args := buildWhere(eq("event_id", eventID), eq("user_id", userID))
	row := r.DB.QueryRowContext(ctx, "SELECT "+participantCols+" FROM participants"+where, args...)
	p, err := scanParticipant(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) queryParticipants(ctx context.Context, conds ...cond) ([]*domain.Participant, error) {
	where, args := buildWhere(conds...)
	rows, err := r.DB.QueryContext(ctx, "SELECT "+participantCols+" FROM participants"+where+" ORDER BY invited_at DESC, id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows.Scan)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *participantRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	return r.queryParticipants(ctx, eq("event_id", eventID))
}

func (r *participantRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Participant, error) {
	return r.queryParticipants(ctx, eq("user_id", userID))
}

func (r *participantRepository) DeleteByEventID(ctx context.Context, eventID string) error {
	where, args := buildWhere(eq("event_id", eventID))
	_, err := r.DB.ExecContext(ctx, "DELETE FROM participants"+where, args...)
	return err
}
