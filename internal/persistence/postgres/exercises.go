package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/WeltonSantosFr/guitaa-api/internal/domain"
)

// ExerciseRepository persists exercises.
type ExerciseRepository struct {
	pool *pgxpool.Pool
}

// NewExerciseRepository constructs an ExerciseRepository.
func NewExerciseRepository(pool *pgxpool.Pool) *ExerciseRepository {
	return &ExerciseRepository{pool: pool}
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise domain.Exercise) error {
	const stmt = `INSERT INTO exercises (exercise_id, user_id, name, duration_minutes, current_bpm_record)
        VALUES ($1,$2,$3,$4,$5)`

	_, err := r.pool.Exec(ctx, stmt,
		exercise.ID,
		exercise.UserID,
		exercise.Name,
		exercise.DurationMinutes,
		exercise.CurrentBpmRecord,
	)
	return err
}

func (r *ExerciseRepository) Get(ctx context.Context, id string) (*domain.Exercise, error) {
	const query = `SELECT exercise_id, user_id, name, duration_minutes, current_bpm_record
        FROM exercises WHERE exercise_id=$1`

	row := r.pool.QueryRow(ctx, query, id)
	var exercise domain.Exercise
	if err := row.Scan(&exercise.ID, &exercise.UserID, &exercise.Name, &exercise.DurationMinutes, &exercise.CurrentBpmRecord); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	const query = `SELECT exercise_id, user_id, name, duration_minutes, current_bpm_record
        FROM exercises ORDER BY name, exercise_id`

	return r.queryMany(ctx, query)
}

func (r *ExerciseRepository) ListByUser(ctx context.Context, userID string) ([]domain.Exercise, error) {
	const query = `SELECT exercise_id, user_id, name, duration_minutes, current_bpm_record
        FROM exercises WHERE user_id=$1 ORDER BY name, exercise_id`

	return r.queryMany(ctx, query, userID)
}

// Update writes the mutable columns. user_id is intentionally absent from the
// statement; ownership never changes after creation.
func (r *ExerciseRepository) Update(ctx context.Context, exercise domain.Exercise) error {
	const stmt = `UPDATE exercises SET name=$2, duration_minutes=$3, current_bpm_record=$4
        WHERE exercise_id=$1`

	_, err := r.pool.Exec(ctx, stmt, exercise.ID, exercise.Name, exercise.DurationMinutes, exercise.CurrentBpmRecord)
	return err
}

// Delete removes the exercise; history rows go with it via ON DELETE CASCADE.
func (r *ExerciseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exercises WHERE exercise_id=$1`, id)
	return err
}

func (r *ExerciseRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]domain.Exercise, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.Exercise, 0)
	for rows.Next() {
		var exercise domain.Exercise
		if err := rows.Scan(&exercise.ID, &exercise.UserID, &exercise.Name, &exercise.DurationMinutes, &exercise.CurrentBpmRecord); err != nil {
			return nil, err
		}
		results = append(results, exercise)
	}
	return results, rows.Err()
}
