package domain

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be located.
	ErrUserNotFound = errors.New("user not found")
	// ErrExerciseNotFound is returned when an exercise cannot be located.
	ErrExerciseNotFound = errors.New("exercise not found")
	// ErrHistoryNotFound is returned when a history entry cannot be located.
	ErrHistoryNotFound = errors.New("history entry not found")

	// ErrEmailTaken indicates the email is already associated with another account.
	ErrEmailTaken = errors.New("email already in use")
	// ErrUsernameTaken indicates the username is already associated with another account.
	ErrUsernameTaken = errors.New("username already in use")

	// ErrInvalidCredentials covers both unknown email and wrong password so the
	// caller cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotOwner is returned when the authenticated user does not own the target resource.
	ErrNotOwner = errors.New("resource owned by another user")
)
