package app

import (
	"context"
	"sort"

	"github.com/reservaya/api/internal/domain"
)

type FavoritesStore interface {
	// Toggle flips membership and reports whether id is now a favorite.
	Toggle(ctx context.Context, owner string, id int) (bool, error)
	List(ctx context.Context, owner string) ([]int, error)
}

type RestaurantCatalog interface {
	Restaurant(id int) (domain.Restaurant, bool)
}

type FavoritesService struct {
	store   FavoritesStore
	catalog RestaurantCatalog
}

func NewFavoritesService(store FavoritesStore, catalog RestaurantCatalog) *FavoritesService {
	return &FavoritesService{store: store, catalog: catalog}
}

func (s *FavoritesService) Toggle(ctx context.Context, owner string, restaurantID int) (bool, error) {
	if _, ok := s.catalog.Restaurant(restaurantID); !ok {
		return false, domain.ErrRestaurantNotFound
	}
	return s.store.Toggle(ctx, owner, restaurantID)
}

// List returns the owner's favorites in ascending id order.
func (s *FavoritesService) List(ctx context.Context, owner string) ([]int, error) {
	ids, err := s.store.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	sort.Ints(ids)
	return ids, nil
}
