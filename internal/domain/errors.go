package domain

import "errors"

// Sentinel errors shared across services. Controllers translate these into
// HTTP status codes with errors.Is.
var (
	// ErrNotFound is returned when a referenced event, task, or record does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden is returned when the caller is authenticated but not allowed to perform the action.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned when a request fails domain validation (blank required field, end date before start date).
	ErrInvalidInput = errors.New("invalid input")

	// ErrUserNotFound is returned when a user referenced by username or id does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned on signup when the username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already in use")

	// ErrInvalidCredentials is returned on login when the username/password pair does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateParticipant is returned when inviting a (event, user) pair that already exists.
	ErrDuplicateParticipant = errors.New("this user is already a participant")

	// ErrAssigneeNotParticipant is returned when a task assignee is neither a
	// participant of the event nor its organizer.
	ErrAssigneeNotParticipant = errors.New("task can be assigned only to participants")

	// ErrFanoutIncomplete is returned when a notification row was created but
	// inserting its recipient rows failed. The notification stays; there is no
	// compensating rollback.
	ErrFanoutIncomplete = errors.New("notification created but recipient fan-out failed")
)
