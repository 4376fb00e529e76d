package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/reservaya/api/internal/clock"
	"github.com/reservaya/api/internal/domain"
	"github.com/reservaya/api/internal/notify"
)

type NotificationLedger interface {
	Add(in notify.NewNotification) (domain.Notification, error)
	MarkRead(id string)
	MarkAllRead()
	Clear()
	Snapshot() ([]domain.Notification, int)
}

type notificationResponse struct {
	ID         string    `json:"id"`
	Tipo       string    `json:"tipo"`
	Titulo     string    `json:"titulo"`
	Mensaje    string    `json:"mensaje"`
	Timestamp  time.Time `json:"timestamp"`
	Relative   string    `json:"relativeTime"`
	Leida      bool      `json:"leida"`
	PedidoID   *int      `json:"pedidoId,omitempty"`
	MesaID     *int      `json:"mesaId,omitempty"`
	MesaNombre string    `json:"mesaNombre,omitempty"`
}

type notificationListResponse struct {
	Notifications []notificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}

type addNotificationRequest struct {
	Tipo       string `json:"tipo" validate:"required"`
	Titulo     string `json:"titulo" validate:"required"`
	Mensaje    string `json:"mensaje"`
	PedidoID   *int   `json:"pedidoId"`
	MesaID     *int   `json:"mesaId"`
	MesaNombre string `json:"mesaNombre"`
}

// HandleNotifications serves /api/notifications and its sub-paths:
// GET list, POST add, DELETE clear, POST /read-all, POST /{id}/read.
// Dates in relativeTime are shown in loc.
func HandleNotifications(ledger NotificationLedger, clk clock.Clock, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/notifications"), "/")
		parts := strings.Split(rest, "/")

		switch {
		case rest == "":
			switch r.Method {
			case http.MethodGet:
				writeNotificationList(w, ledger, clk, loc)
			case http.MethodPost:
				var req addNotificationRequest
				if err := decodeJSON(w, r, &req); err != nil {
					writeDecodeError(w, err)
					return
				}
				n, err := ledger.Add(notify.NewNotification{
					Tipo:       domain.NotificationType(req.Tipo),
					Titulo:     req.Titulo,
					Mensaje:    req.Mensaje,
					PedidoID:   req.PedidoID,
					MesaID:     req.MesaID,
					MesaNombre: req.MesaNombre,
				})
				if err != nil {
					writeServiceError(w, nil, err)
					return
				}
				writeJSON(w, http.StatusCreated, toNotificationResponse(n, clk.Now(), loc))
			case http.MethodDelete:
				ledger.Clear()
				writeNotificationList(w, ledger, clk, loc)
			default:
				methodNotAllowed(w)
			}
		case rest == "read-all":
			if r.Method != http.MethodPost {
				methodNotAllowed(w)
				return
			}
			ledger.MarkAllRead()
			writeNotificationList(w, ledger, clk, loc)
		case len(parts) == 2 && parts[0] != "" && parts[1] == "read":
			if r.Method != http.MethodPost {
				methodNotAllowed(w)
				return
			}
			ledger.MarkRead(parts[0])
			writeNotificationList(w, ledger, clk, loc)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

func writeNotificationList(w http.ResponseWriter, ledger NotificationLedger, clk clock.Clock, loc *time.Location) {
	items, unread := ledger.Snapshot()
	now := clk.Now()
	resp := notificationListResponse{
		Notifications: make([]notificationResponse, 0, len(items)),
		UnreadCount:   unread,
	}
	for _, n := range items {
		resp.Notifications = append(resp.Notifications, toNotificationResponse(n, now, loc))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toNotificationResponse(n domain.Notification, now time.Time, loc *time.Location) notificationResponse {
	return notificationResponse{
		ID:         n.ID,
		Tipo:       string(n.Tipo),
		Titulo:     n.Titulo,
		Mensaje:    n.Mensaje,
		Timestamp:  n.Timestamp,
		Relative:   notify.RelativeLabel(now, n.Timestamp, loc),
		Leida:      n.Leida,
		PedidoID:   n.PedidoID,
		MesaID:     n.MesaID,
		MesaNombre: n.MesaNombre,
	}
}
