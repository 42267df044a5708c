package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/WeltonSantosFr/guitaa-api/internal/domain"
)

// HistoryRepository persists BPM history entries.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository constructs a HistoryRepository.
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

func (r *HistoryRepository) Create(ctx context.Context, entry domain.History) error {
	const stmt = `INSERT INTO history (history_id, exercise_id, bpm, recorded_at)
        VALUES ($1,$2,$3,$4)`

	_, err := r.pool.Exec(ctx, stmt, entry.ID, entry.ExerciseID, entry.Bpm, entry.Date)
	return err
}

func (r *HistoryRepository) Get(ctx context.Context, id string) (*domain.History, error) {
	const query = `SELECT history_id, exercise_id, bpm, recorded_at FROM history WHERE history_id=$1`

	row := r.pool.QueryRow(ctx, query, id)
	var entry domain.History
	if err := row.Scan(&entry.ID, &entry.ExerciseID, &entry.Bpm, &entry.Date); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// ListByExercise returns entries newest first.
func (r *HistoryRepository) ListByExercise(ctx context.Context, exerciseID string) ([]domain.History, error) {
	const query = `SELECT history_id, exercise_id, bpm, recorded_at
        FROM history WHERE exercise_id=$1 ORDER BY recorded_at DESC, history_id DESC`

	return r.queryMany(ctx, query, exerciseID)
}

// ListByOwner returns entries across every exercise the user owns, newest first.
func (r *HistoryRepository) ListByOwner(ctx context.Context, userID string) ([]domain.History, error) {
	const query = `SELECT h.history_id, h.exercise_id, h.bpm, h.recorded_at
        FROM history h JOIN exercises e ON e.exercise_id = h.exercise_id
        WHERE e.user_id=$1 ORDER BY h.recorded_at DESC, h.history_id DESC`

	return r.queryMany(ctx, query, userID)
}

func (r *HistoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM history WHERE history_id=$1`, id)
	return err
}

func (r *HistoryRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]domain.History, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.History, 0)
	for rows.Next() {
		var entry domain.History
		if err := rows.Scan(&entry.ID, &entry.ExerciseID, &entry.Bpm, &entry.Date); err != nil {
			return nil, err
		}
		results = append(results, entry)
	}
	return results, rows.Err()
}
