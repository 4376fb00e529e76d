package memory

import (
	"context"
	"sort"
	"sync"
)

type FavoritesStore struct {
	mu     sync.Mutex
	owners map[string]map[int]struct{}
}

func NewFavoritesStore() *FavoritesStore {
	return &FavoritesStore{owners: make(map[string]map[int]struct{})}
}

func (s *FavoritesStore) Toggle(_ context.Context, owner string, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.owners[owner]
	if !ok {
		set = make(map[int]struct{})
		s.owners[owner] = set
	}
	if _, ok := set[id]; ok {
		delete(set, id)
		return false, nil
	}
	set[id] = struct{}{}
	return true, nil
}

func (s *FavoritesStore) List(_ context.Context, owner string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int, 0, len(s.owners[owner]))
	for id := range s.owners[owner] {
		out = append(out, id)
	}
	sort.Ints(out)
	return out, nil
}
