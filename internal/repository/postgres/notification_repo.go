package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventmanagement/internal/domain"
)

const notificationCols = "id, event_id, created_by, title, message, created_at"

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &notificationRepository{DB: db}
}

func scanNotification(scan func(dest ...any) error) (*domain.EventNotification, error) {
	n := &domain.EventNotification{}
	if err := scan(&n.ID, &n.EventID, &n.CreatedBy, &n.Title, &n.Message, &n.CreatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.EventNotification) error {
	query := `
		INSERT INTO event_notifications (` + notificationCols + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query, n.ID, n.EventID, n.CreatedBy, n.Title, n.Message, n.CreatedAt)
	return err
}

func (r *notificationRepository) queryNotifications(ctx context.Context, conds ...cond) ([]*domain.EventNotification, error) {
	where, args := buildWhere(conds...)
	rows, err := r.DB.QueryContext(ctx, "SELECT "+notificationCols+" FROM event_notifications"+where+" ORDER BY created_at DESC, id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	notifications := make([]*domain.EventNotification, 0)
	for rows.Next() {
		n, err := scanNotification(rows.Scan)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *notificationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventNotification, error) {
	return r.queryNotifications(ctx, eq("event_id", eventID))
}

func (r *notificationRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.EventNotification, error) {
	if len(ids) == 0 {
		return []*domain.EventNotification{}, nil
	}
	return r.queryNotifications(ctx, in("id", ids))
}

const recipientCols = "id, notification_id, user_id, is_read, read_at, created_at"

type notificationRecipientRepository struct {
	DB *sql.DB
}

func NewNotificationRecipientRepository(db *sql.DB) domain.NotificationRecipientRepository {
	return &notificationRecipientRepository{DB: db}
}

func scanRecipient(scan func(dest ...any) error) (*domain.NotificationRecipient, error) {
	rec := &domain.NotificationRecipient{}
	var readAtNull sql.NullTime
	if err := scan(&rec.ID, &rec.NotificationID, &rec.UserID, &rec.IsRead, &readAtNull, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if readAtNull.Valid {
		rec.ReadAt = &readAtNull.Time
	}
	return rec, nil
}

// CreateMany inserts all delivery records in a single multi-row statement.
func (r *notificationRecipientRepository) CreateMany(ctx context.Context, recipients []*domain.NotificationRecipient) error {
	if len(recipients) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(recipients))
	args := make([]any, 0, len(recipients)*6)
	for i, rec := range recipients {
		base := i * 6
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args, rec.ID, rec.NotificationID, rec.UserID, rec.IsRead, rec.ReadAt, rec.CreatedAt)
	}
	query := "INSERT INTO notification_recipients (" + recipientCols + ") VALUES " + strings.Join(placeholders, ", ")
	_, err := r.DB.ExecContext(ctx, query, args...)
	return err
}

func (r *notificationRecipientRepository) GetByID(ctx context.Context, id string) (*domain.NotificationRecipient, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+recipientCols+" FROM notification_recipients WHERE id = $1", id)
	rec, err := scanRecipient(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *notificationRecipientRepository) ListByUserID(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.NotificationRecipient, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM notification_recipients WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := "SELECT " + recipientCols + ` FROM notification_recipients
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	recipients := make([]*domain.NotificationRecipient, 0)
	for rows.Next() {
		rec, err := scanRecipient(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		recipients = append(recipients, rec)
	}
	return recipients, total, rows.Err()
}

func (r *notificationRecipientRepository) MarkRead(ctx context.Context, id string, readAt time.Time) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE notification_recipients SET is_read = TRUE, read_at = $2 WHERE id = $1`, id, readAt)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
