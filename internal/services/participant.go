package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventmanagement/internal/authz"
	"eventmanagement/internal/domain"
)

type participantService struct {
	participantRepo domain.ParticipantRepository
	eventRepo       domain.EventRepository
	userRepo        domain.UserRepository
	emailService    domain.EmailService
	contextTimeout  time.Duration
}

func NewParticipantService(participantRepo domain.ParticipantRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		userRepo:        userRepo,
		emailService:    emailService,
		contextTimeout:  timeout,
	}
}

// canViewEvent mirrors the event visibility rule: admins and the organizer
// always, others through a participant row.
func (s *participantService) canViewEvent(ctx context.Context, identity domain.Identity, event *domain.Event) (bool, error) {
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

func (s *participantService) ListEventParticipants(ctx context.Context, identity domain.Identity, eventID string) ([]*domain.ParticipantWithUser, error) {
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

	participants, err := s.participantRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	userIDs := make([]string, 0, len(participants))
	for _, p := range participants {
		userIDs = append(userIDs, p.UserID)
	}
	users, err := s.userRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list participant users: %w", err)
	}
	userByID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	out := make([]*domain.ParticipantWithUser, 0, len(participants))
	for _, p := range participants {
		pw := &domain.ParticipantWithUser{Participant: p}
		if u, ok := userByID[p.UserID]; ok {
			pw.User = u.Ref()
		}
		out = append(out, pw)
	}
	return out, nil
}

func (s *participantService) InviteParticipant(ctx context.Context, identity domain.Identity, eventID, username string) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !authz.CanManageParticipants(identity.Role, event.OrganizerID == identity.UserID) {
		return nil, domain.ErrForbidden
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	if user.ID == event.OrganizerID {
		return nil, fmt.Errorf("%w: organizer is already part of the event", domain.ErrInvalidInput)
	}
	if _, err := s.participantRepo.GetByEventAndUser(ctx, eventID, user.ID); err == nil {
		return nil, domain.ErrDuplicateParticipant
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get participant: %w", err)
	}

	participant := &domain.Participant{
		ID:        uuid.NewString(),
		EventID:   eventID,
		UserID:    user.ID,
		Role:      string(user.Role),
		CanEdit:   false,
		InvitedAt: time.Now().UTC(),
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		if errors.Is(err, domain.ErrDuplicateParticipant) {
			return nil, domain.ErrDuplicateParticipant
		}
		return nil, fmt.Errorf("create participant: %w", err)
	}

	// Invitation email is best effort; a delivery failure never undoes the invite.
	data := &domain.ParticipantInviteEmailData{
		Email:       user.Email,
		Username:    user.Username,
		InviterName: identity.Username,
		EventName:   event.Name,
	}
	if err := s.emailService.SendParticipantInvite(ctx, data); err != nil {
		log.Printf("[EMAIL] invite email to %s failed: %v", user.Email, err)
	}

	return participant, nil
}

func (s *participantService) ListAvailableUsers(ctx context.Context, identity domain.Identity, eventID string) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !authz.CanManageParticipants(identity.Role, event.OrganizerID == identity.UserID) {
		return nil, domain.ErrForbidden
	}

	participants, err := s.participantRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	taken := make(map[string]struct{}, len(participants)+1)
	taken[event.OrganizerID] = struct{}{}
	for _, p := range participants {
		taken[p.UserID] = struct{}{}
	}

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	available := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if _, ok := taken[u.ID]; ok {
			continue
		}
		available = append(available, u)
	}
	return available, nil
}
