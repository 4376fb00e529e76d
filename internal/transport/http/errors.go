package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/reservaya/api/internal/directions"
	"github.com/reservaya/api/internal/domain"
	"github.com/reservaya/api/internal/screen"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeValidation         = "validation_failed"
	codeInvalidCredentials = "invalid_credentials"
	codeInvalidTransition  = "invalid_transition"
	codeTableNumberTaken   = "table_number_taken"
	codeWrongScreen        = "wrong_screen"
	codeNotConfigured      = "not_configured"
	codeUpstream           = "upstream_error"
	codeNoRoute            = "no_route"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorBody(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorBody(w http.ResponseWriter, status int, body errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(body)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
}

// writeServiceError maps domain and adapter errors onto HTTP responses.
// Unrecognized errors are logged and reported without detail.
func writeServiceError(w http.ResponseWriter, logger *log.Logger, err error) {
	var verr *domain.ValidationError
	var netErr *directions.NetworkError
	switch {
	case errors.As(err, &verr):
		writeErrorBody(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Code: codeValidation, Field: verr.Field})
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, codeInvalidCredentials, err.Error())
	case errors.Is(err, domain.ErrReservationNotFound),
		errors.Is(err, domain.ErrTableNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrRestaurantNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusConflict, codeInvalidTransition, err.Error())
	case errors.Is(err, domain.ErrTableNumberTaken):
		writeError(w, http.StatusConflict, codeTableNumberTaken, err.Error())
	case errors.Is(err, domain.ErrNoDraft),
		errors.Is(err, screen.ErrWrongScreen),
		errors.Is(err, screen.ErrNoSelection):
		writeError(w, http.StatusConflict, codeWrongScreen, err.Error())
	case errors.Is(err, screen.ErrUnknownScreen),
		errors.Is(err, screen.ErrInvalidGuests),
		errors.Is(err, screen.ErrEmptyTimeValue),
		errors.Is(err, directions.ErrInvalidMode):
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, directions.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, codeNotConfigured, "directions are not configured")
	case errors.Is(err, directions.ErrNoRoute):
		writeError(w, http.StatusNotFound, codeNoRoute, err.Error())
	case errors.As(err, &netErr):
		if logger != nil {
			logger.Printf("WARN: upstream failure: %v", err)
		}
		writeError(w, http.StatusBadGateway, codeUpstream, "route could not be computed")
	default:
		if logger != nil {
			logger.Printf("ERROR: %v", err)
		}
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
