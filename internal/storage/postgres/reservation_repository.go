package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reservaya/api/internal/domain"
)

type ReservationRepository struct {
	db
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db{pool: pool}}
}

const reservationColumns = `id, restaurant_name, date, time, guests, items, total, status, attributes, created_at, updated_at`

func (r *ReservationRepository) Create(ctx context.Context, res domain.Reservation) error {
	items, attrs, err := encodeReservationJSON(res)
	if err != nil {
		return err
	}

	const stmt = `
INSERT INTO reservations (id, restaurant_name, date, time, guests, items, total, status, attributes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.exec(ctx, stmt,
		res.ID,
		res.RestaurantName,
		res.Date,
		res.Time,
		res.Guests,
		items,
		res.Total,
		res.Status,
		attrs,
		res.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) Get(ctx context.Context, id string) (domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	res, err := scanReservation(r.queryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

// List returns reservations in insertion order.
func (r *ReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY seq ASC`
	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	out := []domain.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		out = append(out, res)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate reservations: %w", rows.Err())
	}
	return out, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus, at time.Time) (domain.Reservation, error) {
	query := `
UPDATE reservations SET status = $2, updated_at = $3
WHERE id = $1
RETURNING ` + reservationColumns
	res, err := scanReservation(r.queryRow(ctx, query, id, status, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("update reservation status: %w", err)
	}
	return res, nil
}

func scanReservation(row pgx.Row) (domain.Reservation, error) {
	var (
		res   domain.Reservation
		items []byte
		attrs []byte
	)
	err := row.Scan(
		&res.ID,
		&res.RestaurantName,
		&res.Date,
		&res.Time,
		&res.Guests,
		&items,
		&res.Total,
		&res.Status,
		&attrs,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return domain.Reservation{}, err
	}
	if err := json.Unmarshal(items, &res.Items); err != nil {
		return domain.Reservation{}, fmt.Errorf("decode items: %w", err)
	}
	if err := json.Unmarshal(attrs, &res.Attributes); err != nil {
		return domain.Reservation{}, fmt.Errorf("decode attributes: %w", err)
	}
	return res, nil
}

func encodeReservationJSON(res domain.Reservation) (items, attrs []byte, err error) {
	list := res.Items
	if list == nil {
		list = []domain.ReservationItem{}
	}
	if items, err = json.Marshal(list); err != nil {
		return nil, nil, fmt.Errorf("encode items: %w", err)
	}
	fields := res.Attributes
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	if attrs, err = json.Marshal(fields); err != nil {
		return nil, nil, fmt.Errorf("encode attributes: %w", err)
	}
	return items, attrs, nil
}
