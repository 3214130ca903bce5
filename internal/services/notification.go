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

const (
	maxNotificationTitleLen   = 120
	maxNotificationMessageLen = 2000
)

type notificationService struct {
	notificationRepo domain.NotificationRepository
	recipientRepo    domain.NotificationRecipientRepository
	eventRepo        domain.EventRepository
	participantRepo  domain.ParticipantRepository
	contextTimeout   time.Duration
}

func NewNotificationService(notificationRepo domain.NotificationRepository,
	recipientRepo domain.NotificationRecipientRepository,
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	timeout time.Duration,
) domain.NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		recipientRepo:    recipientRepo,
		eventRepo:        eventRepo,
		participantRepo:  participantRepo,
		contextTimeout:   timeout,
	}
}

func (s *notificationService) canViewEvent(ctx context.Context, identity domain.Identity, event *domain.Event) (bool, error) {
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

func (s *notificationService) ListEventNotifications(ctx context.Context, identity domain.Identity, eventID string) ([]*domain.EventNotification, error) {
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

	notifications, err := s.notificationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) CreateNotification(ctx context.Context, identity domain.Identity, eventID, title, message string) (*domain.EventNotification, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || len(title) > maxNotificationTitleLen {
		return nil, fmt.Errorf("%w: title must be 1-%d characters", domain.ErrInvalidInput, maxNotificationTitleLen)
	}
	if message == "" || len(message) > maxNotificationMessageLen {
		return nil, fmt.Errorf("%w: message must be 1-%d characters", domain.ErrInvalidInput, maxNotificationMessageLen)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !authz.CanPostNotification(identity.Role, event.OrganizerID == identity.UserID) {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	notification := &domain.EventNotification{
		ID:        uuid.NewString(),
		EventID:   eventID,
		CreatedBy: identity.UserID,
		Title:     title,
		Message:   message,
		CreatedAt: now,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	participants, err := s.participantRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return notification, fmt.Errorf("list participants: %v: %w", err, domain.ErrFanoutIncomplete)
	}

	// Recipient set: distinct participant users, minus blanks and the author.
	seen := make(map[string]struct{}, len(participants))
	recipients := make([]*domain.NotificationRecipient, 0, len(participants))
	for _, p := range participants {
		if p.UserID == "" || p.UserID == identity.UserID {
			continue
		}
		if _, ok := seen[p.UserID]; ok {
			continue
		}
		seen[p.UserID] = struct{}{}
		recipients = append(recipients, &domain.NotificationRecipient{
			ID:             uuid.NewString(),
			NotificationID: notification.ID,
			UserID:         p.UserID,
			CreatedAt:      now,
		})
	}
	if err := s.recipientRepo.CreateMany(ctx, recipients); err != nil {
		return notification, fmt.Errorf("fan out recipients: %v: %w", err, domain.ErrFanoutIncomplete)
	}
	return notification, nil
}

func (s *notificationService) ListMyNotifications(ctx context.Context, identity domain.Identity, params domain.PaginationParams) ([]*domain.UserNotification, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	records, total, err := s.recipientRepo.ListByUserID(ctx, identity.UserID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list notification recipients: %w", err)
	}

	ids := make([]string, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.NotificationID]; ok {
			continue
		}
		seen[rec.NotificationID] = struct{}{}
		ids = append(ids, rec.NotificationID)
	}
	notifications, err := s.notificationRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	notificationByID := make(map[string]*domain.EventNotification, len(notifications))
	for _, n := range notifications {
		notificationByID[n.ID] = n
	}

	out := make([]*domain.UserNotification, 0, len(records))
	for _, rec := range records {
		out = append(out, &domain.UserNotification{
			Recipient:    rec,
			Notification: notificationByID[rec.NotificationID],
		})
	}
	return out, total, nil
}

func (s *notificationService) MarkNotificationRead(ctx context.Context, identity domain.Identity, recipientID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	record, err := s.recipientRepo.GetByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get notification recipient: %w", err)
	}
	// Another user's delivery record is indistinguishable from a missing one.
	if record.UserID != identity.UserID {
		return domain.ErrNotFound
	}
	if err := s.recipientRepo.MarkRead(ctx, recipientID, time.Now().UTC()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
