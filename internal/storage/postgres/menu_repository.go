package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reservaya/api/internal/domain"
)

type MenuRepository struct {
	db
}

func NewMenuRepository(pool *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{db: db{pool: pool}}
}

const menuColumns = `id, nombre, descripcion, precio::float8, categoria, imagen, en_stock`

func scanMenuItem(row pgx.Row) (domain.MenuItem, error) {
	var it domain.MenuItem
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Category, &it.Image, &it.InStock)
	return it, err
}

func (r *MenuRepository) Create(ctx context.Context, it domain.MenuItem) (domain.MenuItem, error) {
	const stmt = `
INSERT INTO menu_items (nombre, descripcion, precio, categoria, imagen, en_stock)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + menuColumns
	out, err := scanMenuItem(r.queryRow(ctx, stmt, it.Name, it.Description, it.Price, it.Category, it.Image, it.InStock))
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("create menu item: %w", err)
	}
	return out, nil
}

func (r *MenuRepository) Get(ctx context.Context, id int) (domain.MenuItem, error) {
	it, err := scanMenuItem(r.queryRow(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MenuItem{}, domain.ErrMenuItemNotFound
		}
		return domain.MenuItem{}, fmt.Errorf("get menu item: %w", err)
	}
	return it, nil
}

func (r *MenuRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.query(ctx, `SELECT `+menuColumns+` FROM menu_items ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	out := []domain.MenuItem{}
	for rows.Next() {
		it, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		out = append(out, it)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate menu items: %w", rows.Err())
	}
	return out, nil
}

func (r *MenuRepository) Update(ctx context.Context, it domain.MenuItem) error {
	const stmt = `
UPDATE menu_items
SET nombre = $2, descripcion = $3, precio = $4, categoria = $5, imagen = $6, en_stock = $7
WHERE id = $1`
	tag, err := r.exec(ctx, stmt, it.ID, it.Name, it.Description, it.Price, it.Category, it.Image, it.InStock)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}
