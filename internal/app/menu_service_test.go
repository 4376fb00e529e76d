package app

import (
	"context"
	"errors"
	"testing"

	"github.com/reservaya/api/internal/catalog"
	"github.com/reservaya/api/internal/domain"
	"github.com/reservaya/api/internal/storage/memory"
)

func TestMenuService(t *testing.T) {
	t.Parallel()

	repo := memory.NewMenuRepository(catalog.DefaultMenu())
	svc := NewMenuService(repo)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, CreateMenuItemInput{Nombre: " Ceviche ", Descripcion: "Pescado del día", Precio: 28, Categoria: "Entradas"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID != 5 || created.Name != "Ceviche" || !created.InStock {
		t.Fatalf("unexpected item %+v", created)
	}

	invalid := []CreateMenuItemInput{
		{Nombre: "", Precio: 1, Categoria: "Bebidas"},
		{Nombre: "Agua", Precio: 1, Categoria: " "},
		{Nombre: "Agua", Precio: -1, Categoria: "Bebidas"},
	}
	for _, in := range invalid {
		if _, err := svc.CreateItem(ctx, in); !domain.IsValidation(err) {
			t.Fatalf("input %+v: expected validation error, got %v", in, err)
		}
	}

	price := 30.5
	updated, err := svc.UpdateItem(ctx, created.ID, UpdateMenuItemInput{Precio: &price})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Price != 30.5 || updated.Name != "Ceviche" || updated.Category != "Entradas" {
		t.Fatalf("expected partial update, got %+v", updated)
	}
	empty := ""
	if _, err := svc.UpdateItem(ctx, created.ID, UpdateMenuItemInput{Nombre: &empty}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.UpdateItem(ctx, 99, UpdateMenuItemInput{Precio: &price}); !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}

	out, err := svc.SetStock(ctx, 2, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.InStock {
		t.Fatalf("expected item out of stock")
	}
	if _, err := svc.SetStock(ctx, 99, true); !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}

	if err := svc.DeleteItem(ctx, 3); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.DeleteItem(ctx, 3); !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}

	all, err := svc.ListItems(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 items, got %d", len(all))
	}

	cat := catalog.New(catalog.WithMenu(repo))
	visible := cat.Menu("1")
	if len(visible) != 3 {
		t.Fatalf("expected out-of-stock item hidden, got %+v", visible)
	}
	for _, it := range visible {
		if it.ID == 2 {
			t.Fatalf("out-of-stock item listed")
		}
	}
	if _, ok := cat.MenuItem(2); !ok {
		t.Fatalf("expected out-of-stock item still resolvable")
	}
	if _, ok := cat.MenuItem(3); ok {
		t.Fatalf("expected deleted item gone")
	}
}

func TestSessionService_RejectsOutOfStockItems(t *testing.T) {
	t.Parallel()

	repo := memory.NewMenuRepository(catalog.DefaultMenu())
	menu := NewMenuService(repo)
	svc := NewSessionService(catalog.New(catalog.WithMenu(repo)), nil)
	ctx := context.Background()

	v := svc.Start(ctx)
	id := 1
	if _, err := svc.Apply(ctx, v.ID, SessionEvent{Type: EventSelectRestaurant, RestaurantID: &id}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Apply(ctx, v.ID, SessionEvent{Type: EventCartAdd, ItemID: 1}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := menu.SetStock(ctx, 1, false); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err := svc.Apply(ctx, v.ID, SessionEvent{Type: EventCartAdd, ItemID: 1})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "itemId" {
		t.Fatalf("expected itemId validation error, got %v", err)
	}
	got, err := svc.Get(ctx, v.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.CartCount != 1 || got.CartTotal != 45 {
		t.Fatalf("expected line added before the stock change to stay, got %+v", got)
	}
}
