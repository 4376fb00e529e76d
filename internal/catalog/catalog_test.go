package catalog

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/reservaya/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMenu struct {
	items []domain.MenuItem
	err   error
}

func (f fakeMenu) List(context.Context) ([]domain.MenuItem, error) {
	return f.items, f.err
}

func (f fakeMenu) Get(_ context.Context, id int) (domain.MenuItem, error) {
	if f.err != nil {
		return domain.MenuItem{}, f.err
	}
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return domain.MenuItem{}, domain.ErrMenuItemNotFound
}

func TestCatalog_DefaultMenu(t *testing.T) {
	t.Parallel()

	c := New()
	menu := c.Menu("1")
	require.Len(t, menu, 4)
	assert.Equal(t, menu, c.Menu("99"))

	item, ok := c.MenuItem(1)
	require.True(t, ok)
	assert.Equal(t, "Paella Valenciana", item.Name)
	assert.True(t, item.InStock)

	_, ok = c.MenuItem(42)
	assert.False(t, ok)

	seed := DefaultMenu()
	seed[0].Name = "changed"
	assert.Equal(t, "Paella Valenciana", DefaultMenu()[0].Name)
}

func TestCatalog_MenuHidesOutOfStock(t *testing.T) {
	t.Parallel()

	c := New(WithMenu(fakeMenu{items: []domain.MenuItem{
		{ID: 1, Name: "A", InStock: true},
		{ID: 2, Name: "B", InStock: false},
	}}))

	menu := c.Menu("1")
	require.Len(t, menu, 1)
	assert.Equal(t, 1, menu[0].ID)

	item, ok := c.MenuItem(2)
	require.True(t, ok)
	assert.False(t, item.InStock)
}

func TestCatalog_SourceErrors(t *testing.T) {
	t.Parallel()

	c := New(
		WithMenu(fakeMenu{err: errors.New("db down")}),
		WithLogger(log.New(io.Discard, "", 0)),
	)

	assert.Empty(t, c.Menu("1"))
	assert.NotNil(t, c.Menu("1"))
	_, ok := c.MenuItem(1)
	assert.False(t, ok)
}

func TestCatalog_Restaurants(t *testing.T) {
	t.Parallel()

	c := New()
	list := c.Restaurants()
	require.Len(t, list, 3)
	list[0].Name = "changed"

	r, ok := c.Restaurant(1)
	require.True(t, ok)
	assert.Equal(t, "King Halo", r.Name)

	_, ok = c.Restaurant(9)
	assert.False(t, ok)
}
