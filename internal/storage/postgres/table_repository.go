package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reservaya/api/internal/domain"
)

type TableRepository struct {
	db
}

func NewTableRepository(pool *pgxpool.Pool) *TableRepository {
	return &TableRepository{db: db{pool: pool}}
}

func (r *TableRepository) Create(ctx context.Context, t domain.Table) error {
	const stmt = `
INSERT INTO restaurant_tables (id, nombre, numero, capacidad, esta_bloqueada, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.exec(ctx, stmt, t.ID, t.Nombre, t.Numero, t.Capacidad, t.EstaBloqueada, t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTableNumberTaken
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func (r *TableRepository) Get(ctx context.Context, id string) (domain.Table, error) {
	const query = `SELECT id, nombre, numero, capacidad, esta_bloqueada, created_at FROM restaurant_tables WHERE id = $1`
	var t domain.Table
	err := r.queryRow(ctx, query, id).Scan(&t.ID, &t.Nombre, &t.Numero, &t.Capacidad, &t.EstaBloqueada, &t.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) || errors.Is(err, pgx.ErrNoRows) {
			return domain.Table{}, domain.ErrTableNotFound
		}
		return domain.Table{}, fmt.Errorf("get table: %w", err)
	}
	return t, nil
}

func (r *TableRepository) List(ctx context.Context) ([]domain.Table, error) {
	const query = `SELECT id, nombre, numero, capacidad, esta_bloqueada, created_at FROM restaurant_tables ORDER BY numero ASC`
	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	out := []domain.Table{}
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.ID, &t.Nombre, &t.Numero, &t.Capacidad, &t.EstaBloqueada, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		out = append(out, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate tables: %w", rows.Err())
	}
	return out, nil
}

func (r *TableRepository) Update(ctx context.Context, t domain.Table) error {
	const stmt = `
UPDATE restaurant_tables
SET nombre = $2, numero = $3, capacidad = $4, esta_bloqueada = $5
WHERE id = $1`
	tag, err := r.exec(ctx, stmt, t.ID, t.Nombre, t.Numero, t.Capacidad, t.EstaBloqueada)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTableNumberTaken
		}
		if isInvalidUUID(err) {
			return domain.ErrTableNotFound
		}
		return fmt.Errorf("update table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTableNotFound
	}
	return nil
}

func (r *TableRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.exec(ctx, `DELETE FROM restaurant_tables WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrTableNotFound
		}
		return fmt.Errorf("delete table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTableNotFound
	}
	return nil
}
