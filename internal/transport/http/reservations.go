package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/reservaya/api/internal/app"
	"github.com/reservaya/api/internal/domain"
)

// ReservationAPI is the consumer reservation service as seen by handlers.
type ReservationAPI interface {
	Create(ctx context.Context, in app.CreateReservationInput) (domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	SetStatus(ctx context.Context, id string, status domain.ReservationStatus) (domain.Reservation, error)
}

// HandleReservations serves GET, POST and PATCH on /api/reservations.
func HandleReservations(svc ReservationAPI, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list, err := svc.List(r.Context())
			if err != nil {
				writeServiceError(w, logger, err)
				return
			}
			resp := make([]map[string]json.RawMessage, 0, len(list))
			for _, res := range list {
				resp = append(resp, reservationRecord(res))
			}
			writeJSON(w, http.StatusOK, resp)
		case http.MethodPost:
			var body map[string]json.RawMessage
			if err := decodeJSON(w, r, &body); err != nil || body == nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			in, err := reservationInput(body)
			if err != nil {
				writeDecodeError(w, err)
				return
			}
			res, err := svc.Create(r.Context(), in)
			if err != nil {
				writeServiceError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusCreated, reservationRecord(res))
		case http.MethodPatch:
			var req patchReservationRequest
			if err := decodeJSON(w, r, &req); err != nil {
				writeDecodeError(w, err)
				return
			}
			res, err := svc.SetStatus(r.Context(), looseID(req.ID), domain.ReservationStatus(looseString(req.Status)))
			if err != nil {
				writeServiceError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, reservationRecord(res))
		default:
			methodNotAllowed(w)
		}
	}
}

// patchReservationRequest keeps both fields raw so that an id of any shape
// reaches the lookup; only a known reservation gets its status checked.
type patchReservationRequest struct {
	ID     json.RawMessage `json:"id"`
	Status json.RawMessage `json:"status"`
}

// looseID accepts a JSON string or number. Anything else is the empty id.
func looseID(raw json.RawMessage) string {
	if s := looseString(raw); s != "" {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return ""
	}
	return n.String()
}

func looseString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// reservationInput pulls the typed fields out of a free-form body. The whole
// body is kept as attributes.
func reservationInput(body map[string]json.RawMessage) (app.CreateReservationInput, error) {
	in := app.CreateReservationInput{Attributes: body}
	fields := []struct {
		key string
		dst any
	}{
		{"restaurantName", &in.RestaurantName},
		{"date", &in.Date},
		{"time", &in.Time},
		{"guests", &in.Guests},
		{"items", &in.Items},
		{"total", &in.Total},
	}
	for _, f := range fields {
		raw, ok := body[f.key]
		if !ok || string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return app.CreateReservationInput{}, domain.NewValidationError(f.key, "has the wrong type")
		}
	}
	return in, nil
}

// reservationRecord renders the submitted attributes with the server-owned
// fields laid over them.
func reservationRecord(res domain.Reservation) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(res.Attributes)+4)
	for k, v := range res.Attributes {
		out[k] = v
	}
	setIfAbsent := func(key string, v any) {
		if _, ok := out[key]; ok {
			return
		}
		out[key] = mustMarshal(v)
	}
	setIfAbsent("restaurantName", res.RestaurantName)
	setIfAbsent("guests", res.Guests)
	if res.Date != "" {
		setIfAbsent("date", res.Date)
	}
	if res.Time != "" {
		setIfAbsent("time", res.Time)
	}
	if len(res.Items) > 0 {
		setIfAbsent("items", res.Items)
	}

	out["id"] = mustMarshal(res.ID)
	out["status"] = mustMarshal(res.Status)
	out["createdAt"] = mustMarshal(res.CreatedAt.UTC().Format(time.RFC3339Nano))
	if res.UpdatedAt != nil {
		out["updatedAt"] = mustMarshal(res.UpdatedAt.UTC().Format(time.RFC3339Nano))
	}
	return out
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return b
}
