package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reservaya/api/internal/domain"
)

type OperatorRepository struct {
	db
}

func NewOperatorRepository(pool *pgxpool.Pool) *OperatorRepository {
	return &OperatorRepository{db: db{pool: pool}}
}

func (r *OperatorRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const operatorColumns = `id, client_name, client_email, date, time, pax, table_label, notes, status, request_date, updated_at`

func (r *OperatorRepository) Create(ctx context.Context, res domain.OperatorReservation) error {
	const stmt = `
INSERT INTO operator_reservations (id, client_name, client_email, date, time, pax, table_label, notes, status, request_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.exec(ctx, stmt,
		res.ID,
		res.ClientName,
		res.ClientEmail,
		res.Date,
		res.Time,
		res.Pax,
		res.Table,
		res.Notes,
		res.Status,
		res.RequestDate,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create operator reservation: %w", err)
	}
	return nil
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (r *OperatorRepository) GetForUpdate(ctx context.Context, id string) (domain.OperatorReservation, error) {
	query := `SELECT ` + operatorColumns + ` FROM operator_reservations WHERE id = $1 FOR UPDATE`
	res, err := scanOperator(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) || errors.Is(err, pgx.ErrNoRows) {
			return domain.OperatorReservation{}, domain.ErrReservationNotFound
		}
		return domain.OperatorReservation{}, fmt.Errorf("get operator reservation: %w", err)
	}
	return res, nil
}

func (r *OperatorRepository) Update(ctx context.Context, res domain.OperatorReservation) error {
	const stmt = `
UPDATE operator_reservations
SET status = $2, table_label = $3, notes = $4, updated_at = $5
WHERE id = $1`
	tag, err := r.exec(ctx, stmt, res.ID, res.Status, res.Table, res.Notes, res.UpdatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrReservationNotFound
		}
		return fmt.Errorf("update operator reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *OperatorRepository) List(ctx context.Context) ([]domain.OperatorReservation, error) {
	query := `SELECT ` + operatorColumns + ` FROM operator_reservations ORDER BY request_date ASC, id ASC`
	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list operator reservations: %w", err)
	}
	defer rows.Close()

	out := []domain.OperatorReservation{}
	for rows.Next() {
		res, err := scanOperator(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operator reservation: %w", err)
		}
		out = append(out, res)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate operator reservations: %w", rows.Err())
	}
	return out, nil
}

func scanOperator(row pgx.Row) (domain.OperatorReservation, error) {
	var res domain.OperatorReservation
	err := row.Scan(
		&res.ID,
		&res.ClientName,
		&res.ClientEmail,
		&res.Date,
		&res.Time,
		&res.Pax,
		&res.Table,
		&res.Notes,
		&res.Status,
		&res.RequestDate,
		&res.UpdatedAt,
	)
	return res, err
}
