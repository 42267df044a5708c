package domain

import (
	"context"

	"github.com/google/uuid"
)

// Default values applied when an exercise is created without them.
const (
	DefaultDurationMinutes  = 10
	DefaultCurrentBpmRecord = 0
)

// Exercise is a practice routine owned by a user. UserID never changes after
// creation.
type Exercise struct {
	ID               string
	Name             string
	DurationMinutes  int
	CurrentBpmRecord int
	UserID           string
}

// ExerciseDetail bundles an exercise with its recorded history, newest first.
type ExerciseDetail struct {
	Exercise
	History []History
}

// ExerciseRepository captures persistence operations for exercises.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise Exercise) error
	Get(ctx context.Context, id string) (*Exercise, error)
	List(ctx context.Context) ([]Exercise, error)
	ListByUser(ctx context.Context, userID string) ([]Exercise, error)
	Update(ctx context.Context, exercise Exercise) error
	Delete(ctx context.Context, id string) error
}

// ExerciseService orchestrates exercise workflows.
type ExerciseService struct {
	repo    ExerciseRepository
	history HistoryRepository
}

// NewExerciseService constructs an ExerciseService.
func NewExerciseService(repo ExerciseRepository, history HistoryRepository) *ExerciseService {
	return &ExerciseService{repo: repo, history: history}
}

// CreateExerciseInput captures the payload from the API layer; nil optionals
// take the documented defaults.
type CreateExerciseInput struct {
	Name             string
	DurationMinutes  *int
	CurrentBpmRecord *int
}

// Create persists a new exercise owned by userID. The owner comes from the
// verified token subject, never from the request body.
func (s *ExerciseService) Create(ctx context.Context, input CreateExerciseInput, userID string) (*Exercise, error) {
	exercise := Exercise{
		ID:               uuid.NewString(),
		Name:             input.Name,
		DurationMinutes:  DefaultDurationMinutes,
		CurrentBpmRecord: DefaultCurrentBpmRecord,
		UserID:           userID,
	}
	if input.DurationMinutes != nil {
		exercise.DurationMinutes = *input.DurationMinutes
	}
	if input.CurrentBpmRecord != nil {
		exercise.CurrentBpmRecord = *input.CurrentBpmRecord
	}

	if err := s.repo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return &exercise, nil
}

// List returns all exercises with their history.
func (s *ExerciseService) List(ctx context.Context) ([]ExerciseDetail, error) {
	exercises, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachHistory(ctx, exercises)
}

// ListByUser returns the exercises owned by userID with their history.
func (s *ExerciseService) ListByUser(ctx context.Context, userID string) ([]ExerciseDetail, error) {
	exercises, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachHistory(ctx, exercises)
}

// Get fetches an exercise by ID with its history.
func (s *ExerciseService) Get(ctx context.Context, id string) (*ExerciseDetail, error) {
	exercise, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, ErrExerciseNotFound
	}
	entries, err := s.history.ListByExercise(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ExerciseDetail{Exercise: *exercise, History: entries}, nil
}

// Owner returns the stored owner of the exercise. Used by the authorization
// chain so ownership is always checked against the authoritative row.
func (s *ExerciseService) Owner(ctx context.Context, id string) (string, error) {
	exercise, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if exercise == nil {
		return "", ErrExerciseNotFound
	}
	return exercise.UserID, nil
}

// UpdateExerciseInput carries a partial exercise update; nil fields keep
// their prior values. The owner is not updatable.
type UpdateExerciseInput struct {
	Name             *string
	DurationMinutes  *int
	CurrentBpmRecord *int
}

// Update applies a partial update.
func (s *ExerciseService) Update(ctx context.Context, id string, input UpdateExerciseInput) (*Exercise, error) {
	exercise, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, ErrExerciseNotFound
	}

	if input.Name != nil {
		exercise.Name = *input.Name
	}
	if input.DurationMinutes != nil {
		exercise.DurationMinutes = *input.DurationMinutes
	}
	if input.CurrentBpmRecord != nil {
		exercise.CurrentBpmRecord = *input.CurrentBpmRecord
	}

	if err := s.repo.Update(ctx, *exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// Remove deletes the exercise and, by cascade, its history.
func (s *ExerciseService) Remove(ctx context.Context, id string) error {
	exercise, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if exercise == nil {
		return ErrExerciseNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *ExerciseService) attachHistory(ctx context.Context, exercises []Exercise) ([]ExerciseDetail, error) {
	details := make([]ExerciseDetail, 0, len(exercises))
	for _, exercise := range exercises {
		entries, err := s.history.ListByExercise(ctx, exercise.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, ExerciseDetail{Exercise: exercise, History: entries})
	}
	return details, nil
}
