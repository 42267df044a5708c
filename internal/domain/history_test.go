package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/WeltonSantosFr/guitaa-api/internal/domain"
	"github.com/WeltonSantosFr/guitaa-api/internal/persistence/memory"
)

func TestRecordRejectsMissingExercise(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	history := domain.NewHistoryService(store.History(), store.Exercises())

	_, err := history.Record(ctx, 140, "missing", "user-1")
	require.ErrorIs(t, err, domain.ErrExerciseNotFound)

	entries, err := store.History().ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRecordRejectsForeignExercise(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	exercises := newExerciseService(store)
	history := domain.NewHistoryService(store.History(), store.Exercises())

	exercise, err := exercises.Create(ctx, domain.CreateExerciseInput{Name: "Run"}, "owner")
	require.NoError(t, err)

	_, err = history.Record(ctx, 140, exercise.ID, "intruder")
	require.ErrorIs(t, err, domain.ErrNotOwner)

	entries, err := store.History().ListByExercise(ctx, exercise.ID)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRecordAssignsDate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	exercises := newExerciseService(store)
	history := domain.NewHistoryService(store.History(), store.Exercises())

	exercise, err := exercises.Create(ctx, domain.CreateExerciseInput{Name: "Run"}, "user-1")
	require.NoError(t, err)

	entry, err := history.Record(ctx, 140, exercise.ID, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, entry.ID)
	require.False(t, entry.Date.IsZero())
	require.Equal(t, exercise.ID, entry.ExerciseID)
}

func TestListByExerciseChecksOwnership(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	exercises := newExerciseService(store)
	history := domain.NewHistoryService(store.History(), store.Exercises())

	exercise, err := exercises.Create(ctx, domain.CreateExerciseInput{Name: "Run"}, "owner")
	require.NoError(t, err)

	_, err = history.ListByExercise(ctx, "missing", "owner")
	require.ErrorIs(t, err, domain.ErrExerciseNotFound)

	_, err = history.ListByExercise(ctx, exercise.ID, "intruder")
	require.ErrorIs(t, err, domain.ErrNotOwner)

	entries, err := history.ListByExercise(ctx, exercise.ID, "owner")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestGetAndRemoveCheckOwnership(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	exercises := newExerciseService(store)
	history := domain.NewHistoryService(store.History(), store.Exercises())

	exercise, err := exercises.Create(ctx, domain.CreateExerciseInput{Name: "Run"}, "owner")
	require.NoError(t, err)
	entry, err := history.Record(ctx, 140, exercise.ID, "owner")
	require.NoError(t, err)

	_, err = history.Get(ctx, "missing", "owner")
	require.ErrorIs(t, err, domain.ErrHistoryNotFound)

	_, err = history.Get(ctx, entry.ID, "intruder")
	require.ErrorIs(t, err, domain.ErrNotOwner)

	err = history.Remove(ctx, entry.ID, "intruder")
	require.ErrorIs(t, err, domain.ErrNotOwner)

	err = history.Remove(ctx, entry.ID, "owner")
	require.NoError(t, err)

	_, err = history.Get(ctx, entry.ID, "owner")
	require.ErrorIs(t, err, domain.ErrHistoryNotFound)
}

func TestUserDeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := domain.NewUserService(store.Users(), bcrypt.MinCost)
	exercises := newExerciseService(store)
	history := domain.NewHistoryService(store.History(), store.Exercises())

	user, err := users.Register(ctx, domain.RegisterUserInput{
		Username: "alice", Email: "alice@x.com", Password: "pw12345",
	})
	require.NoError(t, err)

	var exerciseIDs []string
	for _, name := range []string{"Run", "Ride"} {
		exercise, err := exercises.Create(ctx, domain.CreateExerciseInput{Name: name}, user.ID)
		require.NoError(t, err)
		exerciseIDs = append(exerciseIDs, exercise.ID)
		for bpm := 100; bpm < 130; bpm += 10 {
			_, err := history.Record(ctx, bpm, exercise.ID, user.ID)
			require.NoError(t, err)
		}
	}

	entries, err := store.History().ListByOwner(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 6)

	require.NoError(t, users.Remove(ctx, user.ID))

	for _, id := range exerciseIDs {
		_, err := exercises.Get(ctx, id)
		require.ErrorIs(t, err, domain.ErrExerciseNotFound)
		remaining, err := store.History().ListByExercise(ctx, id)
		require.NoError(t, err)
		require.Empty(t, remaining)
	}
}
