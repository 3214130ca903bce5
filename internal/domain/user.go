package domain

import (
	"context"
	"time"
)

// User represents a registered user.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRef is the public projection of a user embedded in other payloads.
// Only username and email are ever exposed through joins.
type UserRef struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Ref returns the public projection of the user.
func (u *User) Ref() *UserRef {
	return &UserRef{Username: u.Username, Email: u.Email}
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ListByIDs(ctx context.Context, ids []string) ([]*User, error)
	ListAll(ctx context.Context) ([]*User, error)
}

// AuthService defines signup and login.
type AuthService interface {
	SignUp(ctx context.Context, username, email, password string, role Role) (*User, error)
	Login(ctx context.Context, username, password string) (token string, user *User, err error)
}
