package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reservaya/api/internal/domain"
)

type UserRepository struct {
	db
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db{pool: pool}}
}

// Save inserts the user or replaces name and password of the one with the
// same email.
func (r *UserRepository) Save(ctx context.Context, u domain.User) error {
	const stmt = `
INSERT INTO users (id, email, name, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash`
	if _, err := r.exec(ctx, stmt, u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT id, email, name, password_hash, created_at FROM users WHERE email = $1`
	var u domain.User
	err := r.queryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}
