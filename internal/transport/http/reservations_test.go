package http

import (
	"net/http"
	"strconv"
	"testing"
)

func TestReservations_CreateListPatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/api/reservations", `{"restaurantName":"King Halo","guests":2,"note":"ventana"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created map[string]any
	decodeBody(t, rec, &created)

	id, _ := created["id"].(string)
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		t.Fatalf("expected numeric string id, got %v", created["id"])
	}
	if created["status"] != "confirmed" {
		t.Fatalf("expected status confirmed, got %v", created["status"])
	}
	if created["note"] != "ventana" {
		t.Fatalf("expected submitted field echoed, got %v", created["note"])
	}
	if created["createdAt"] == nil {
		t.Fatalf("expected createdAt")
	}

	rec = env.do(t, http.MethodPatch, "/api/reservations", `{"id":"does-not-exist","status":"cancelled"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	var apiErr apiErrorResponse
	decodeBody(t, rec, &apiErr)
	if apiErr.Error == "" {
		t.Fatalf("expected error message")
	}

	rec = env.do(t, http.MethodGet, "/api/reservations", "")
	var list []map[string]any
	decodeBody(t, rec, &list)
	if len(list) != 1 || list[0]["status"] != "confirmed" || list[0]["updatedAt"] != nil {
		t.Fatalf("expected list unchanged after unknown patch, got %v", list)
	}

	rec = env.do(t, http.MethodPatch, "/api/reservations", `{"id":"`+id+`","status":"cancelled"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var patched map[string]any
	decodeBody(t, rec, &patched)
	if patched["status"] != "cancelled" || patched["updatedAt"] == nil {
		t.Fatalf("unexpected patched record %v", patched)
	}
}

func TestReservations_BadRequests(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"invalid json", http.MethodPost, `{"restaurantName":`, http.StatusBadRequest},
		{"not an object", http.MethodPost, `[1,2]`, http.StatusBadRequest},
		{"missing restaurant", http.MethodPost, `{"guests":2}`, http.StatusBadRequest},
		{"guests wrong type", http.MethodPost, `{"restaurantName":"A","guests":"two"}`, http.StatusBadRequest},
		{"zero guests", http.MethodPost, `{"restaurantName":"A","guests":0}`, http.StatusBadRequest},
		{"patch invalid json", http.MethodPatch, `{"id":`, http.StatusBadRequest},
		{"method", http.MethodDelete, ``, http.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, tc.method, "/api/reservations", tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestReservations_PatchUnknownIDIsNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.do(t, http.MethodPost, "/api/reservations", `{"restaurantName":"King Halo","guests":2}`)

	bodies := []string{
		`{"id":"nope","status":"bogus"}`,
		`{"id":"nope"}`,
		`{"id":123,"status":"cancelled"}`,
		`{"status":"cancelled"}`,
		`{"id":{"x":1},"status":"cancelled"}`,
		`{"id":"nope","status":7}`,
	}
	for _, body := range bodies {
		rec := env.do(t, http.MethodPatch, "/api/reservations", body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("body %s: expected status 404, got %d: %s", body, rec.Code, rec.Body.String())
		}
	}

	var list []map[string]any
	decodeBody(t, env.do(t, http.MethodGet, "/api/reservations", ""), &list)
	if len(list) != 1 || list[0]["status"] != "confirmed" {
		t.Fatalf("expected store unchanged, got %v", list)
	}
}

func TestReservations_PatchKnownID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	var created map[string]any
	decodeBody(t, env.do(t, http.MethodPost, "/api/reservations", `{"restaurantName":"King Halo","guests":2}`), &created)
	id := created["id"].(string)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"bogus status", `{"id":"` + id + `","status":"archived"}`, http.StatusBadRequest},
		{"missing status", `{"id":"` + id + `"}`, http.StatusBadRequest},
		{"numeric id", `{"id":` + id + `,"status":"completed"}`, http.StatusOK},
	}
	for _, tc := range tests {
		rec := env.do(t, http.MethodPatch, "/api/reservations", tc.body)
		if rec.Code != tc.status {
			t.Fatalf("%s: expected status %d, got %d: %s", tc.name, tc.status, rec.Code, rec.Body.String())
		}
	}
}
