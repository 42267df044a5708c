// Package memory provides in-memory repositories for local development and
// tests. Cascade semantics mirror the Postgres schema: deleting a user
// removes their exercises and, transitively, the history rows.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/WeltonSantosFr/guitaa-api/internal/domain"
)

// Store holds all entities behind one lock so cascades stay atomic.
type Store struct {
	mu        sync.RWMutex
	users     map[string]domain.User
	exercises map[string]domain.Exercise
	history   map[string]domain.History
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]domain.User),
		exercises: make(map[string]domain.Exercise),
		history:   make(map[string]domain.History),
	}
}

// Users returns the user repository facet.
func (s *Store) Users() *UserRepository { return &UserRepository{store: s} }

// Exercises returns the exercise repository facet.
func (s *Store) Exercises() *ExerciseRepository { return &ExerciseRepository{store: s} }

// History returns the history repository facet.
func (s *Store) History() *HistoryRepository { return &HistoryRepository{store: s} }

// UserRepository implements domain.UserRepository.
type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID] = user
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, user := range r.store.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, user := range r.store.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]domain.User, 0, len(r.store.users))
	for _, user := range r.store.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID] = user
	return nil
}

// Delete removes the user and cascades through exercises and history.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.users, id)
	for exerciseID, exercise := range r.store.exercises {
		if exercise.UserID != id {
			continue
		}
		delete(r.store.exercises, exerciseID)
		for historyID, entry := range r.store.history {
			if entry.ExerciseID == exerciseID {
				delete(r.store.history, historyID)
			}
		}
	}
	return nil
}

// ExerciseRepository implements domain.ExerciseRepository.
type ExerciseRepository struct {
	store *Store
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise domain.Exercise) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.exercises[exercise.ID] = exercise
	return nil
}

func (r *ExerciseRepository) Get(ctx context.Context, id string) (*domain.Exercise, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	exercise, ok := r.store.exercises[id]
	if !ok {
		return nil, nil
	}
	return &exercise, nil
}

func (r *ExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]domain.Exercise, 0, len(r.store.exercises))
	for _, exercise := range r.store.exercises {
		out = append(out, exercise)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ExerciseRepository) ListByUser(ctx context.Context, userID string) ([]domain.Exercise, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]domain.Exercise, 0)
	for _, exercise := range r.store.exercises {
		if exercise.UserID == userID {
			out = append(out, exercise)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ExerciseRepository) Update(ctx context.Context, exercise domain.Exercise) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.exercises[exercise.ID] = exercise
	return nil
}

// Delete removes the exercise and cascades through its history.
func (r *ExerciseRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.exercises, id)
	for historyID, entry := range r.store.history {
		if entry.ExerciseID == id {
			delete(r.store.history, historyID)
		}
	}
	return nil
}

// HistoryRepository implements domain.HistoryRepository.
type HistoryRepository struct {
	store *Store
}

func (r *HistoryRepository) Create(ctx context.Context, entry domain.History) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.history[entry.ID] = entry
	return nil
}

func (r *HistoryRepository) Get(ctx context.Context, id string) (*domain.History, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	entry, ok := r.store.history[id]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (r *HistoryRepository) ListByExercise(ctx context.Context, exerciseID string) ([]domain.History, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]domain.History, 0)
	for _, entry := range r.store.history {
		if entry.ExerciseID == exerciseID {
			out = append(out, entry)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *HistoryRepository) ListByOwner(ctx context.Context, userID string) ([]domain.History, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	owned := make(map[string]struct{})
	for id, exercise := range r.store.exercises {
		if exercise.UserID == userID {
			owned[id] = struct{}{}
		}
	}
	out := make([]domain.History, 0)
	for _, entry := range r.store.history {
		if _, ok := owned[entry.ExerciseID]; ok {
			out = append(out, entry)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *HistoryRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.history, id)
	return nil
}

func sortNewestFirst(entries []domain.History) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date.Equal(entries[j].Date) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].Date.After(entries[j].Date)
	})
}
