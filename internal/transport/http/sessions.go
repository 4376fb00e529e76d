package http

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/reservaya/api/internal/app"
)

type SessionAPI interface {
	Start(ctx context.Context) app.SessionView
	Get(ctx context.Context, id string) (app.SessionView, error)
	Apply(ctx context.Context, id string, ev app.SessionEvent) (app.SessionView, error)
}

// HandleSessions serves POST /api/sessions, GET /api/sessions/{id} and
// POST /api/sessions/{id}/events.
func HandleSessions(svc SessionAPI, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/sessions"), "/")
		parts := strings.Split(rest, "/")

		switch {
		case rest == "":
			if r.Method != http.MethodPost {
				methodNotAllowed(w)
				return
			}
			writeJSON(w, http.StatusCreated, svc.Start(r.Context()))
		case len(parts) == 1:
			if r.Method != http.MethodGet {
				methodNotAllowed(w)
				return
			}
			view, err := svc.Get(r.Context(), parts[0])
			if err != nil {
				writeServiceError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, view)
		case len(parts) == 2 && parts[1] == "events":
			if r.Method != http.MethodPost {
				methodNotAllowed(w)
				return
			}
			var ev app.SessionEvent
			if err := decodeJSON(w, r, &ev); err != nil {
				writeDecodeError(w, err)
				return
			}
			view, err := svc.Apply(r.Context(), parts[0], ev)
			if err != nil {
				writeServiceError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, view)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}
