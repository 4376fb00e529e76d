// Package cart aggregates pre-ordered menu items for a reservation.
package cart

import (
	"sort"

	"github.com/reservaya/api/internal/domain"
)

// Catalog resolves unit prices. The cart never stores prices itself.
type Catalog interface {
	MenuItem(id int) (domain.MenuItem, bool)
}

type Totals struct {
	Count int     `json:"count"`
	Price float64 `json:"price"`
}

// Cart maps menu item ids to positive quantities. The zero value is empty
// and ready to use; it is not safe for concurrent use.
type Cart struct {
	lines map[int]int
}

func New() *Cart {
	return &Cart{lines: make(map[int]int)}
}

func (c *Cart) Add(itemID int) {
	if c.lines == nil {
		c.lines = make(map[int]int)
	}
	c.lines[itemID]++
}

// Remove takes one unit away; the key disappears when the last unit goes.
func (c *Cart) Remove(itemID int) {
	qty, ok := c.lines[itemID]
	if !ok {
		return
	}
	if qty > 1 {
		c.lines[itemID] = qty - 1
		return
	}
	delete(c.lines, itemID)
}

func (c *Cart) Quantity(itemID int) int {
	return c.lines[itemID]
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Reset() {
	c.lines = make(map[int]int)
}

func (c *Cart) Snapshot() map[int]int {
	out := make(map[int]int, len(c.lines))
	for id, qty := range c.lines {
		out[id] = qty
	}
	return out
}

// Totals is recomputed from the current lines on every call. Items missing
// from the catalog count toward Count but add nothing to Price.
func (c *Cart) Totals(catalog Catalog) Totals {
	var t Totals
	for id, qty := range c.lines {
		t.Count += qty
		if item, ok := catalog.MenuItem(id); ok {
			t.Price += item.Price * float64(qty)
		}
	}
	return t
}

// Lines returns the cart as reservation items in ascending item id order,
// skipping ids unknown to the catalog.
func (c *Cart) Lines(catalog Catalog) []domain.ReservationItem {
	ids := make([]int, 0, len(c.lines))
	for id := range c.lines {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	items := make([]domain.ReservationItem, 0, len(ids))
	for _, id := range ids {
		item, ok := catalog.MenuItem(id)
		if !ok {
			continue
		}
		items = append(items, domain.ReservationItem{
			Name:     item.Name,
			Quantity: c.lines[id],
			Price:    item.Price,
		})
	}
	return items
}
