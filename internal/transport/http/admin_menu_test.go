package http

import (
	"net/http"
	"testing"

	"github.com/reservaya/api/internal/app"
)

func TestAdminMenu_CRUD(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	var seeded []adminMenuItemResponse
	decodeBody(t, env.do(t, http.MethodGet, "/api/admin/menu", ""), &seeded)
	if len(seeded) != 4 || !seeded[0].EnStock {
		t.Fatalf("expected the seeded menu in stock, got %+v", seeded)
	}

	rec := env.do(t, http.MethodPost, "/api/admin/menu", `{"nombre":"Ceviche","descripcion":"Pescado del día","precio":28,"categoria":"Entradas"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created adminMenuItemResponse
	decodeBody(t, rec, &created)
	if created.ID != 5 || created.Nombre != "Ceviche" || !created.EnStock {
		t.Fatalf("unexpected item %+v", created)
	}
	item := "/api/admin/menu/5"

	var updated adminMenuItemResponse
	decodeBody(t, env.do(t, http.MethodPut, item, `{"precio":30}`), &updated)
	if updated.Precio != 30 || updated.Nombre != "Ceviche" {
		t.Fatalf("expected partial update, got %+v", updated)
	}
	decodeBody(t, env.do(t, http.MethodPatch, item, `{"imagen":"ceviche plate"}`), &updated)
	if updated.Imagen != "ceviche plate" || updated.Precio != 30 {
		t.Fatalf("unexpected item after patch %+v", updated)
	}

	var stocked adminMenuItemResponse
	decodeBody(t, env.do(t, http.MethodPatch, item+"/stock", `{"enStock":false}`), &stocked)
	if stocked.EnStock {
		t.Fatalf("expected item out of stock")
	}

	var menu []menuItemResponse
	decodeBody(t, env.do(t, http.MethodGet, "/api/menu/1", ""), &menu)
	if len(menu) != 4 {
		t.Fatalf("expected customer menu to hide the out-of-stock item, got %d items", len(menu))
	}
	for _, m := range menu {
		if m.ID == 5 {
			t.Fatalf("out-of-stock item listed to customers")
		}
	}

	if rec := env.do(t, http.MethodDelete, item, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if rec := env.do(t, http.MethodDelete, item, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", rec.Code)
	}

	var after []adminMenuItemResponse
	decodeBody(t, env.do(t, http.MethodGet, "/api/admin/menu", ""), &after)
	if len(after) != 4 {
		t.Fatalf("expected 4 items, got %d", len(after))
	}
}

func TestAdminMenu_Errors(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		field  string
	}{
		{"create without nombre", http.MethodPost, "/api/admin/menu", `{"precio":10,"categoria":"Bebidas"}`, http.StatusBadRequest, "nombre"},
		{"create without precio", http.MethodPost, "/api/admin/menu", `{"nombre":"Agua","categoria":"Bebidas"}`, http.StatusBadRequest, "precio"},
		{"create negative precio", http.MethodPost, "/api/admin/menu", `{"nombre":"Agua","precio":-1,"categoria":"Bebidas"}`, http.StatusBadRequest, "precio"},
		{"create without categoria", http.MethodPost, "/api/admin/menu", `{"nombre":"Agua","precio":1}`, http.StatusBadRequest, "categoria"},
		{"update empty body", http.MethodPut, "/api/admin/menu/1", `{}`, http.StatusBadRequest, "body"},
		{"update blank nombre", http.MethodPut, "/api/admin/menu/1", `{"nombre":" "}`, http.StatusBadRequest, "nombre"},
		{"update unknown id", http.MethodPut, "/api/admin/menu/99", `{"precio":1}`, http.StatusNotFound, ""},
		{"non numeric id", http.MethodDelete, "/api/admin/menu/abc", "", http.StatusNotFound, ""},
		{"stock without enStock", http.MethodPatch, "/api/admin/menu/1/stock", `{}`, http.StatusBadRequest, "enStock"},
		{"stock unknown id", http.MethodPatch, "/api/admin/menu/99/stock", `{"enStock":true}`, http.StatusNotFound, ""},
		{"stock wrong method", http.MethodPut, "/api/admin/menu/1/stock", `{"enStock":true}`, http.StatusMethodNotAllowed, ""},
		{"unknown action", http.MethodPatch, "/api/admin/menu/1/price", `{}`, http.StatusNotFound, ""},
		{"collection wrong method", http.MethodDelete, "/api/admin/menu", "", http.StatusMethodNotAllowed, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, tc.method, tc.path, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
			if tc.field == "" {
				return
			}
			var body apiErrorResponse
			decodeBody(t, rec, &body)
			if body.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, body.Field)
			}
		})
	}
}

func TestAdminMenu_StockGatesCart(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	var view app.SessionView
	decodeBody(t, env.do(t, http.MethodPost, "/api/sessions", ""), &view)
	events := "/api/sessions/" + view.ID + "/events"
	if rec := env.do(t, http.MethodPost, events, `{"type":"select_restaurant","restaurantId":1}`); rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if rec := env.do(t, http.MethodPatch, "/api/admin/menu/2/stock", `{"enStock":false}`); rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	rec := env.do(t, http.MethodPost, events, `{"type":"cart_add","itemId":2}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for out-of-stock item, got %d", rec.Code)
	}
	var body apiErrorResponse
	decodeBody(t, rec, &body)
	if body.Field != "itemId" {
		t.Fatalf("expected field itemId, got %q", body.Field)
	}

	if rec := env.do(t, http.MethodPatch, "/api/admin/menu/2/stock", `{"enStock":true}`); rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec := env.do(t, http.MethodPost, events, `{"type":"cart_add","itemId":2}`); rec.Code != http.StatusOK {
		t.Fatalf("expected restocked item accepted, got %d", rec.Code)
	}
}
