package credentials

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL credential repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByUsername retrieves a credential record by exact username.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, salt, hashed_password
		FROM users
		WHERE username = $1
	`

	var user User
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Salt,
		&user.HashedPassword,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}

	return &user, nil
}

// Insert stores a new credential record.
func (r *PostgresRepository) Insert(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (username, salt, hashed_password)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query, user.Username, user.Salt, user.HashedPassword)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// UpdateHash overwrites the stored hash for a username.
func (r *PostgresRepository) UpdateHash(ctx context.Context, username string, hash []byte) error {
	query := `UPDATE users SET hashed_password = $2 WHERE username = $1`

	result, err := r.pool.Exec(ctx, query, username, hash)
	if err != nil {
		return fmt.Errorf("update hash: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Reset drops and recreates the users table from the embedded schema script.
func (r *PostgresRepository) Reset(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("reset users table: %w", err)
	}
	return nil
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
