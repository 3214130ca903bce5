package domain

import (
	"context"
	"time"
)

// Participant is the join record granting a user visibility and assignment
// eligibility on one event. Unique per (event, user).
// swagger:model Participant
type Participant struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CanEdit   bool      `json:"can_edit"`
	InvitedAt time.Time `json:"invited_at"`
}

// ParticipantWithUser is the list projection of a participant with the joined
// user reference.
type ParticipantWithUser struct {
	*Participant
	User *UserRef `json:"user"`
}

// ParticipantRepository defines the interface for participant storage.
type ParticipantRepository interface {
	Create(ctx context.Context, p *Participant) error
	// GetByEventAndUser returns ErrNotFound when the pair has no row.
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Participant, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Participant, error)
	ListByUserID(ctx context.Context, userID string) ([]*Participant, error)
	DeleteByEventID(ctx context.Context, eventID string) error
}

// ParticipantService defines participant operations.
type ParticipantService interface {
	ListEventParticipants(ctx context.Context, identity Identity, eventID string) ([]*ParticipantWithUser, error)
	// InviteParticipant invites the user with the given username. Fails with
	// ErrUserNotFound for an unknown username and ErrDuplicateParticipant when
	// the (event, user) pair already exists.
	InviteParticipant(ctx context.Context, identity Identity, eventID, username string) (*Participant, error)
	// ListAvailableUsers returns users who are neither participants of the
	// event nor its organizer.
	ListAvailableUsers(ctx context.Context, identity Identity, eventID string) ([]*User, error)
}
