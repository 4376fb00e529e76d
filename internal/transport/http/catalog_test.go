package http

import (
	"net/http"
	"testing"
)

func TestCatalogEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/restaurants", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var restaurants []restaurantResponse
	decodeBody(t, rec, &restaurants)
	if len(restaurants) != 3 || restaurants[0].Name != "King Halo" {
		t.Fatalf("unexpected restaurants %+v", restaurants)
	}
	if restaurants[0].Coordinates != [2]float64{-77.0428, -12.0464} {
		t.Fatalf("expected lng,lat coordinates, got %v", restaurants[0].Coordinates)
	}

	var first, other []menuItemResponse
	decodeBody(t, env.do(t, http.MethodGet, "/api/menu/1", ""), &first)
	decodeBody(t, env.do(t, http.MethodGet, "/api/menu/99", ""), &other)
	if len(first) != 4 || len(other) != 4 {
		t.Fatalf("expected the shared menu for every id, got %d and %d", len(first), len(other))
	}

	if rec := env.do(t, http.MethodGet, "/api/menu/", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/api/nope", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
