// Package domain defines the entities and business logic for the guitaa API.
package domain

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents a registered account. PasswordHash is a bcrypt digest and
// must never reach a serialized representation.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
}

// UserRepository captures persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	Get(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, id string) error
}

// UserService orchestrates account workflows.
type UserService struct {
	repo       UserRepository
	bcryptCost int
}

// NewUserService constructs a UserService. A non-positive cost falls back to
// bcrypt.DefaultCost.
func NewUserService(repo UserRepository, bcryptCost int) *UserService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, bcryptCost: bcryptCost}
}

// RegisterUserInput captures the payload from the API layer.
type RegisterUserInput struct {
	Username string
	Email    string
	Password string
}

// Register creates an account with a hashed password. Colliding email or
// username is a conflict; the stored row is left untouched.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (*User, error) {
	if existing, err := s.repo.FindByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}
	if existing, err := s.repo.FindByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies email + password. Unknown email and wrong password
// both surface as ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get fetches a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateUserInput carries a partial profile update; nil fields keep their
// prior values.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
}

// Update applies a partial update. An email change re-checks uniqueness
// before anything is written.
func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (*User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Email != nil && *input.Email != user.Email {
		inUse, err := s.repo.FindByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if inUse != nil {
			return nil, ErrEmailTaken
		}
		user.Email = *input.Email
	}
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// Remove deletes the user. Owned exercises and their history go with it.
func (s *UserService) Remove(ctx context.Context, id string) error {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.repo.Delete(ctx, id)
}
