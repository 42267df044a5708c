// Package postgres provides pgx-backed repositories over the guitaa schema.
// Cascade deletes are enforced by the foreign keys declared in
// db/postgres/migrations.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/WeltonSantosFr/guitaa-api/internal/domain"
)

const uniqueViolation = "23505"

// UserRepository persists users.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	const stmt = `INSERT INTO users (user_id, username, email, password_hash)
        VALUES ($1,$2,$3,$4)`

	_, err := r.pool.Exec(ctx, stmt, user.ID, user.Username, user.Email, user.PasswordHash)
	return mapUniqueViolation(err)
}

func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT user_id, username, email, password_hash FROM users WHERE user_id=$1`
	return r.queryOne(ctx, query, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT user_id, username, email, password_hash FROM users WHERE email=$1`
	return r.queryOne(ctx, query, email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT user_id, username, email, password_hash FROM users WHERE username=$1`
	return r.queryOne(ctx, query, username)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT user_id, username, email, password_hash FROM users ORDER BY username`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash); err != nil {
			return nil, err
		}
		results = append(results, user)
	}
	return results, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	const stmt = `UPDATE users SET username=$2, email=$3, password_hash=$4 WHERE user_id=$1`

	_, err := r.pool.Exec(ctx, stmt, user.ID, user.Username, user.Email, user.PasswordHash)
	return mapUniqueViolation(err)
}

// Delete removes the user; exercises and history rows go with it via
// ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE user_id=$1`, id)
	return err
}

func (r *UserRepository) queryOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	var user domain.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// mapUniqueViolation translates constraint failures into domain conflicts.
// Services check uniqueness before writing; this is the backstop for
// concurrent writers racing past those checks.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return domain.ErrEmailTaken
		case "users_username_key":
			return domain.ErrUsernameTaken
		}
	}
	return err
}
