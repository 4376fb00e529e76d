package http

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/reservaya/api/internal/app"
	"github.com/reservaya/api/internal/domain"
)

// OperatorAPI is the staff-side reservation workflow.
type OperatorAPI interface {
	Create(ctx context.Context, in app.CreateOperatorReservationInput) (domain.OperatorReservation, error)
	List(ctx context.Context) ([]domain.OperatorReservation, error)
	Transition(ctx context.Context, id string, to domain.OperatorStatus) (domain.OperatorReservation, error)
	AssignTable(ctx context.Context, id, table string) (domain.OperatorReservation, error)
}

// TableAPI manages the dining room tables.
type TableAPI interface {
	CreateTable(ctx context.Context, in app.CreateTableInput) (domain.Table, error)
	ListTables(ctx context.Context) ([]domain.Table, error)
	UpdateTable(ctx context.Context, id string, in app.UpdateTableInput) (domain.Table, error)
	SetBlocked(ctx context.Context, id string, blocked bool) (domain.Table, error)
	DeleteTable(ctx context.Context, id string) error
}

type operatorReservationResponse struct {
	ID          string     `json:"id"`
	ClientName  string     `json:"clientName"`
	ClientEmail string     `json:"clientEmail,omitempty"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Pax         int        `json:"pax"`
	Table       string     `json:"table,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Status      string     `json:"status"`
	RequestDate time.Time  `json:"requestDate"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func toOperatorResponse(r domain.OperatorReservation) operatorReservationResponse {
	return operatorReservationResponse{
		ID:          r.ID,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		Date:        r.Date,
		Time:        r.Time,
		Pax:         r.Pax,
		Table:       r.Table,
		Notes:       r.Notes,
		Status:      string(r.Status),
		RequestDate: r.RequestDate,
		UpdatedAt:   r.UpdatedAt,
	}
}

type createOperatorReservationRequest struct {
	ClientName  string `json:"clientName" validate:"required"`
	ClientEmail string `json:"clientEmail" validate:"omitempty,email"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Pax         int    `json:"pax" validate:"gt=0"`
	Notes       string `json:"notes"`
}

type patchOperatorReservationRequest struct {
	Status *string `json:"status"`
	Table  *string `json:"table"`
}

// HandleAdminReservations serves GET/POST /api/admin/reservations and
// PATCH /api/admin/reservations/{id}.
func HandleAdminReservations(svc OperatorAPI, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseAdminItemPath(r.URL.Path, "reservations")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if id == "" {
			switch r.Method {
			case http.MethodGet:
				list, err := svc.List(r.Context())
				if err != nil {
					writeServiceError(w, logger, err)
					return
				}
				resp := make([]operatorReservationResponse, 0, len(list))
				for _, res := range list {
					resp = append(resp, toOperatorResponse(res))
				}
				writeJSON(w, http.StatusOK, resp)
			case http.MethodPost:
				var req createOperatorReservationRequest
				if err := decodeJSON(w, r, &req); err != nil {
					writeDecodeError(w, err)
					return
				}
				res, err := svc.Create(r.Context(), app.CreateOperatorReservationInput{
					ClientName:  req.ClientName,
					ClientEmail: req.ClientEmail,
					Date:        req.Date,
					Time:        req.Time,
					Pax:         req.Pax,
					Notes:       req.Notes,
				})
				if err != nil {
					writeServiceError(w, logger, err)
					return
				}
				writeJSON(w, http.StatusCreated, toOperatorResponse(res))
			default:
				methodNotAllowed(w)
			}
			return
		}

		if r.Method != http.MethodPatch {
			methodNotAllowed(w)
			return
		}
		var req patchOperatorReservationRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeDecodeError(w, err)
			return
		}
		if req.Status == nil && req.Table == nil {
			writeServiceError(w, logger, domain.NewValidationError("status", "status or table is required"))
			return
		}

		var (
			res domain.OperatorReservation
			err error
		)
		if req.Table != nil {
			if res, err = svc.AssignTable(r.Context(), id, *req.Table); err != nil {
				writeServiceError(w, logger, err)
				return
			}
		}
		if req.Status != nil {
			if res, err = svc.Transition(r.Context(), id, domain.OperatorStatus(*req.Status)); err != nil {
				writeServiceError(w, logger, err)
				return
			}
		}
		writeJSON(w, http.StatusOK, toOperatorResponse(res))
	}
}

type tableResponse struct {
	ID            string `json:"id"`
	Nombre        string `json:"nombre"`
	Numero        int    `json:"numero"`
	Capacidad     int    `json:"capacidad"`
	EstaBloqueada bool   `json:"estaBloqueada"`
}

func toTableResponse(t domain.Table) tableResponse {
	return tableResponse{
		ID:            t.ID,
		Nombre:        t.Nombre,
		Numero:        t.Numero,
		Capacidad:     t.Capacidad,
		EstaBloqueada: t.EstaBloqueada,
	}
}

type createTableRequest struct {
	Nombre    string `json:"nombre" validate:"required"`
	Numero    int    `json:"numero" validate:"gt=0"`
	Capacidad int    `json:"capacidad" validate:"gt=0"`
}

type patchTableRequest struct {
	Nombre        *string `json:"nombre"`
	Numero        *int    `json:"numero"`
	Capacidad     *int    `json:"capacidad"`
	EstaBloqueada *bool   `json:"estaBloqueada"`
}

type blockTableRequest struct {
	EstaBloqueada *bool `json:"estaBloqueada" validate:"required"`
}

// HandleAdminTables serves GET/POST /api/admin/tables,
// PUT/PATCH/DELETE /api/admin/tables/{id} and
// PATCH /api/admin/tables/{id}/block.
func HandleAdminTables(svc TableAPI, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := parseAdminPath(r.URL.Path, "tables")
		if !ok || (action != "" && action != "block") {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if action == "block" {
			if r.Method != http.MethodPatch {
				methodNotAllowed(w)
				return
			}
			var req blockTableRequest
			if err := decodeJSON(w, r, &req); err != nil {
				writeDecodeError(w, err)
				return
			}
			t, err := svc.SetBlocked(r.Context(), id, *req.EstaBloqueada)
			if err != nil {
				writeServiceError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, toTableResponse(t))
			return
		}

		if id == "" {
			switch r.Method {
			case http.MethodGet:
				list, err := svc.ListTables(r.Context())
				if err != nil {
					writeServiceError(w, logger, err)
					return
				}
				resp := make([]tableResponse, 0, len(list))
				for _, t := range list {
					resp = append(resp, toTableResponse(t))
				}
				writeJSON(w, http.StatusOK, resp)
			case http.MethodPost:
				var req createTableRequest
				if err := decodeJSON(w, r, &req); err != nil {
					writeDecodeError(w, err)
					return
				}
				t, err := svc.CreateTable(r.Context(), app.CreateTableInput{Nombre: req.Nombre, Numero: req.Numero, Capacidad: req.Capacidad})
				if err != nil {
					writeServiceError(w, logger, err)
					return
				}
				writeJSON(w, http.StatusCreated, toTableResponse(t))
			default:
				methodNotAllowed(w)
			}
			return
		}

		switch r.Method {
		case http.MethodPatch, http.MethodPut:
			var req patchTableRequest
			if err := decodeJSON(w, r, &req); err != nil {
				writeDecodeError(w, err)
				return
			}
			var (
				t   domain.Table
				err error
			)
			if req.Nombre != nil || req.Numero != nil || req.Capacidad != nil {
				t, err = svc.UpdateTable(r.Context(), id, app.UpdateTableInput{Nombre: req.Nombre, Numero: req.Numero, Capacidad: req.Capacidad})
				if err != nil {
					writeServiceError(w, logger, err)
					return
				}
			}
			if req.EstaBloqueada != nil {
				t, err = svc.SetBlocked(r.Context(), id, *req.EstaBloqueada)
				if err != nil {
					writeServiceError(w, logger, err)
					return
				}
			}
			if t.ID == "" {
				writeServiceError(w, logger, domain.NewValidationError("body", "no fields to update"))
				return
			}
			writeJSON(w, http.StatusOK, toTableResponse(t))
		case http.MethodDelete:
			if err := svc.DeleteTable(r.Context(), id); err != nil {
				writeServiceError(w, logger, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			methodNotAllowed(w)
		}
	}
}

// parseAdminItemPath accepts /api/admin/{resource} and
// /api/admin/{resource}/{id}; the id is empty for the collection.
func parseAdminItemPath(path, resource string) (string, bool) {
	id, action, ok := parseAdminPath(path, resource)
	if !ok || action != "" {
		return "", false
	}
	return id, true
}

// parseAdminPath also accepts /api/admin/{resource}/{id}/{action}.
func parseAdminPath(path, resource string) (id, action string, ok bool) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 3 || parts[0] != "api" || parts[1] != "admin" || parts[2] != resource {
		return "", "", false
	}
	switch len(parts) {
	case 3:
		return "", "", true
	case 4:
		if parts[3] == "" {
			return "", "", false
		}
		return parts[3], "", true
	case 5:
		if parts[3] == "" || parts[4] == "" {
			return "", "", false
		}
		return parts[3], parts[4], true
	default:
		return "", "", false
	}
}
