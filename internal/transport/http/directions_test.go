package http

import (
	"net/http"
	"testing"

	"github.com/reservaya/api/internal/directions"
)

func TestDirections(t *testing.T) {
	t.Parallel()

	t.Run("route with formatted fields", func(t *testing.T) {
		env := newTestEnv(t, stubRouteFinder{route: directions.Route{Distance: 1530, Duration: 5400}})
		rec := env.do(t, http.MethodGet, "/api/directions?origin=-77.04,-12.04&destination=-77.03,-12.03&mode=walking", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp routeResponse
		decodeBody(t, rec, &resp)
		if resp.DistanceFormatted != "1.5 km" || resp.DurationFormatted != "1 h 30 min" || resp.Mode != directions.ModeWalking {
			t.Fatalf("unexpected response %+v", resp)
		}
	})

	tests := []struct {
		name   string
		finder RouteFinder
		query  string
		status int
	}{
		{"not configured", nil, "origin=0,0&destination=1,1", http.StatusServiceUnavailable},
		{"network", stubRouteFinder{err: &directions.NetworkError{Status: 500, Message: "boom"}}, "origin=0,0&destination=1,1", http.StatusBadGateway},
		{"no route", stubRouteFinder{err: directions.ErrNoRoute}, "origin=0,0&destination=1,1", http.StatusNotFound},
		{"bad origin", stubRouteFinder{}, "origin=x&destination=1,1", http.StatusBadRequest},
		{"bad mode", stubRouteFinder{}, "origin=0,0&destination=1,1&mode=flying", http.StatusBadRequest},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, tc.finder)
			rec := env.do(t, http.MethodGet, "/api/directions?"+tc.query, "")
			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestDirections_RejectsNonFinitePoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, stubRouteFinder{route: directions.Route{Distance: 10, Duration: 10}})
	for _, q := range []string{"origin=NaN,0&destination=1,1", "origin=0,0&destination=1,Inf"} {
		rec := env.do(t, http.MethodGet, "/api/directions?"+q, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", q, rec.Code)
		}
	}
}
