package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/WeltonSantosFr/guitaa-api/internal/observability"
)

// History is a single BPM reading recorded against an exercise. Date is
// server-assigned and immutable, as is ExerciseID.
type History struct {
	ID         string
	Bpm        int
	Date       time.Time
	ExerciseID string
}

// HistoryRepository captures persistence operations for history entries.
// Listings are ordered by recording date descending.
type HistoryRepository interface {
	Create(ctx context.Context, entry History) error
	Get(ctx context.Context, id string) (*History, error)
	ListByExercise(ctx context.Context, exerciseID string) ([]History, error)
	ListByOwner(ctx context.Context, userID string) ([]History, error)
	Delete(ctx context.Context, id string) error
}

// HistoryService orchestrates history workflows. It needs the exercise
// repository because every operation is scoped to a parent exercise whose
// stored owner gates access.
type HistoryService struct {
	repo      HistoryRepository
	exercises ExerciseRepository
}

// NewHistoryService constructs a HistoryService.
func NewHistoryService(repo HistoryRepository, exercises ExerciseRepository) *HistoryService {
	return &HistoryService{repo: repo, exercises: exercises}
}

// Record creates a history entry for the exercise. A missing exercise is a
// not-found error and an exercise owned by someone else is an ownership
// error; nothing is written in either case.
func (s *HistoryService) Record(ctx context.Context, bpm int, exerciseID, userID string) (*History, error) {
	exercise, err := s.exercises.Get(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, ErrExerciseNotFound
	}
	if exercise.UserID != userID {
		return nil, ErrNotOwner
	}

	entry := History{
		ID:         uuid.NewString(),
		Bpm:        bpm,
		Date:       time.Now().UTC(),
		ExerciseID: exerciseID,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	observability.RecordHistoryPersisted(entry.Date)
	return &entry, nil
}

// ListForUser returns history across all exercises the user owns, newest first.
func (s *HistoryService) ListForUser(ctx context.Context, userID string) ([]History, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// ListByExercise returns the exercise's history newest first, after checking
// the exercise exists and belongs to the caller.
func (s *HistoryService) ListByExercise(ctx context.Context, exerciseID, userID string) ([]History, error) {
	exercise, err := s.exercises.Get(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, ErrExerciseNotFound
	}
	if exercise.UserID != userID {
		return nil, ErrNotOwner
	}
	return s.repo.ListByExercise(ctx, exerciseID)
}

// Get fetches a history entry, rejecting callers who do not own the parent
// exercise.
func (s *HistoryService) Get(ctx context.Context, id, userID string) (*History, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrHistoryNotFound
	}

	exercise, err := s.exercises.Get(ctx, entry.ExerciseID)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		// Cascade deletes make an orphaned entry unreachable in practice.
		return nil, ErrHistoryNotFound
	}
	if exercise.UserID != userID {
		return nil, ErrNotOwner
	}
	return entry, nil
}

// Remove deletes a history entry under the same ownership rules as Get.
func (s *HistoryService) Remove(ctx context.Context, id, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
