package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/reservaya/api/internal/domain"
)

// OperatorRepository serializes transactions with a single lock, which is
// enough to make read-check-write sequences atomic in one process.
type OperatorRepository struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	byID map[string]domain.OperatorReservation
}

func NewOperatorRepository() *OperatorRepository {
	return &OperatorRepository{byID: make(map[string]domain.OperatorReservation)}
}

func (r *OperatorRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(ctx)
}

func (r *OperatorRepository) Create(_ context.Context, res domain.OperatorReservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[res.ID] = res
	return nil
}

func (r *OperatorRepository) GetForUpdate(_ context.Context, id string) (domain.OperatorReservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.byID[id]
	if !ok {
		return domain.OperatorReservation{}, domain.ErrReservationNotFound
	}
	return res, nil
}

func (r *OperatorRepository) Update(_ context.Context, res domain.OperatorReservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[res.ID]; !ok {
		return domain.ErrReservationNotFound
	}
	r.byID[res.ID] = res
	return nil
}

// List returns reservations by request date, oldest first.
func (r *OperatorRepository) List(_ context.Context) ([]domain.OperatorReservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.OperatorReservation, 0, len(r.byID))
	for _, res := range r.byID {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RequestDate.Equal(out[j].RequestDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].RequestDate.Before(out[j].RequestDate)
	})
	return out, nil
}
