// Package memory holds process-local repositories used when no database is
// configured and in tests. Data is lost on restart.
package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/reservaya/api/internal/domain"
)

type ReservationRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{byID: make(map[string]domain.Reservation)}
}

func (r *ReservationRepository) Create(_ context.Context, res domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[res.ID]; !ok {
		r.order = append(r.order, res.ID)
	}
	r.byID[res.ID] = cloneReservation(res)
	return nil
}

func (r *ReservationRepository) Get(_ context.Context, id string) (domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.byID[id]
	if !ok {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return cloneReservation(res), nil
}

// List returns reservations in insertion order.
func (r *ReservationRepository) List(_ context.Context) ([]domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Reservation, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneReservation(r.byID[id]))
	}
	return out, nil
}

func (r *ReservationRepository) UpdateStatus(_ context.Context, id string, status domain.ReservationStatus, at time.Time) (domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.byID[id]
	if !ok {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	res.Status = status
	updated := at
	res.UpdatedAt = &updated
	r.byID[id] = res
	return cloneReservation(res), nil
}

func cloneReservation(r domain.Reservation) domain.Reservation {
	if r.Items != nil {
		items := make([]domain.ReservationItem, len(r.Items))
		copy(items, r.Items)
		r.Items = items
	}
	if r.Attributes != nil {
		attrs := make(map[string]json.RawMessage, len(r.Attributes))
		for k, v := range r.Attributes {
			attrs[k] = v
		}
		r.Attributes = attrs
	}
	if r.UpdatedAt != nil {
		t := *r.UpdatedAt
		r.UpdatedAt = &t
	}
	return r
}
