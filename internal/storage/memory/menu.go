package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/reservaya/api/internal/domain"
)

// MenuRepository keeps menu items in memory. Ids are assigned sequentially
// after the highest seeded id.
type MenuRepository struct {
	mu     sync.RWMutex
	byID   map[int]domain.MenuItem
	nextID int
}

func NewMenuRepository(seed []domain.MenuItem) *MenuRepository {
	r := &MenuRepository{byID: make(map[int]domain.MenuItem, len(seed)), nextID: 1}
	for _, it := range seed {
		r.byID[it.ID] = it
		if it.ID >= r.nextID {
			r.nextID = it.ID + 1
		}
	}
	return r
}

func (r *MenuRepository) Create(_ context.Context, it domain.MenuItem) (domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it.ID = r.nextID
	r.nextID++
	r.byID[it.ID] = it
	return it, nil
}

func (r *MenuRepository) Get(_ context.Context, id int) (domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.byID[id]
	if !ok {
		return domain.MenuItem{}, domain.ErrMenuItemNotFound
	}
	return it, nil
}

// List returns items ordered by id.
func (r *MenuRepository) List(_ context.Context) ([]domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.MenuItem, 0, len(r.byID))
	for _, it := range r.byID {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MenuRepository) Update(_ context.Context, it domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[it.ID]; !ok {
		return domain.ErrMenuItemNotFound
	}
	r.byID[it.ID] = it
	return nil
}

func (r *MenuRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrMenuItemNotFound
	}
	delete(r.byID, id)
	return nil
}
