package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/reservaya/api/internal/domain"
)

type TableRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Table
}

func NewTableRepository() *TableRepository {
	return &TableRepository{byID: make(map[string]domain.Table)}
}

func (r *TableRepository) Create(_ context.Context, t domain.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.numberTaken(t.Numero, t.ID) {
		return domain.ErrTableNumberTaken
	}
	r.byID[t.ID] = t
	return nil
}

func (r *TableRepository) Get(_ context.Context, id string) (domain.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return domain.Table{}, domain.ErrTableNotFound
	}
	return t, nil
}

// List returns tables ordered by number.
func (r *TableRepository) List(_ context.Context) ([]domain.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Table, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out, nil
}

func (r *TableRepository) Update(_ context.Context, t domain.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[t.ID]; !ok {
		return domain.ErrTableNotFound
	}
	if r.numberTaken(t.Numero, t.ID) {
		return domain.ErrTableNumberTaken
	}
	r.byID[t.ID] = t
	return nil
}

func (r *TableRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrTableNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *TableRepository) numberTaken(numero int, excludeID string) bool {
	for id, t := range r.byID {
		if t.Numero == numero && id != excludeID {
			return true
		}
	}
	return false
}
