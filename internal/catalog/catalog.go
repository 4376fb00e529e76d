// Package catalog serves the restaurant list and the menu customers see.
package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/reservaya/api/internal/domain"
)

var restaurants = []domain.Restaurant{
	{ID: 1, Name: "King Halo", Type: "Restaurante", Rating: 4.8, Hours: "11:00 AM - 10:00 PM", Distance: "0.5 km", Coordinates: [2]float64{-77.0428, -12.0464}},
	{ID: 2, Name: "La Paella Real", Type: "Restobar", Rating: 4.6, Hours: "12:00 PM - 11:00 PM", Distance: "1.2 km", Coordinates: [2]float64{-77.0328, -12.0364}},
	{ID: 3, Name: "Café del Mar", Type: "Cafetería", Rating: 4.7, Hours: "7:00 AM - 8:00 PM", Distance: "0.8 km", Coordinates: [2]float64{-77.0528, -12.0564}},
}

var defaultMenu = []domain.MenuItem{
	{ID: 1, Name: "Paella Valenciana", Description: "Arroz con mariscos frescos, azafrán y vegetales", Price: 45.0, Category: "Platos Principales", Image: "paella seafood", InStock: true},
	{ID: 2, Name: "Cerveza Artesanal", Description: "Cerveza local IPA 500ml", Price: 12.0, Category: "Bebidas", Image: "craft beer glass", InStock: true},
	{ID: 3, Name: "Tabla de Mariscos", Description: "Variedad de mariscos frescos para compartir", Price: 38.0, Category: "Entradas", Image: "seafood platter", InStock: true},
	{ID: 4, Name: "Pulpo a la Gallega", Description: "Pulpo tierno con papas y pimentón", Price: 32.0, Category: "Platos Principales", Image: "octopus dish", InStock: true},
}

// DefaultMenu returns a copy of the built-in menu, used to seed a fresh
// menu repository.
func DefaultMenu() []domain.MenuItem {
	out := make([]domain.MenuItem, len(defaultMenu))
	copy(out, defaultMenu)
	return out
}

// MenuSource is where the catalog reads menu items from. The operator menu
// repositories satisfy it.
type MenuSource interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	Get(ctx context.Context, id int) (domain.MenuItem, error)
}

const lookupTimeout = 2 * time.Second

// Catalog is the customer-facing catalog. Every restaurant shares one menu.
type Catalog struct {
	menu   MenuSource
	logger *log.Logger
}

type Option func(*Catalog)

// WithMenu reads the menu from src instead of the built-in list.
func WithMenu(src MenuSource) Option {
	return func(c *Catalog) {
		if src != nil {
			c.menu = src
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(opts ...Option) *Catalog {
	c := &Catalog{menu: staticMenu{}, logger: log.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (*Catalog) Restaurants() []domain.Restaurant {
	out := make([]domain.Restaurant, len(restaurants))
	copy(out, restaurants)
	return out
}

func (*Catalog) Restaurant(id int) (domain.Restaurant, bool) {
	for _, r := range restaurants {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Restaurant{}, false
}

// Menu returns the in-stock items for a restaurant. The id is accepted but
// the menu is not filtered by it.
func (c *Catalog) Menu(restaurantID string) []domain.MenuItem {
	_ = restaurantID
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	items, err := c.menu.List(ctx)
	if err != nil {
		c.logger.Printf("ERROR: list menu: %v", err)
		return []domain.MenuItem{}
	}
	out := make([]domain.MenuItem, 0, len(items))
	for _, it := range items {
		if it.InStock {
			out = append(out, it)
		}
	}
	return out
}

// MenuItem looks an item up regardless of stock, so carts keep pricing lines
// whose item ran out after being added.
func (c *Catalog) MenuItem(id int) (domain.MenuItem, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	item, err := c.menu.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrMenuItemNotFound) {
			c.logger.Printf("ERROR: get menu item id=%d: %v", id, err)
		}
		return domain.MenuItem{}, false
	}
	return item, true
}

type staticMenu struct{}

func (staticMenu) List(context.Context) ([]domain.MenuItem, error) {
	return DefaultMenu(), nil
}

func (staticMenu) Get(_ context.Context, id int) (domain.MenuItem, error) {
	for _, m := range defaultMenu {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.MenuItem{}, domain.ErrMenuItemNotFound
}
