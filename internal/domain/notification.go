package domain

import "time"

type NotificationType string

const (
	NotificationAlerta   NotificationType = "alerta"
	NotificationUrgente  NotificationType = "urgente"
	NotificationExpirado NotificationType = "expirado"
	NotificationInfo     NotificationType = "info"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationAlerta, NotificationUrgente, NotificationExpirado, NotificationInfo:
		return true
	}
	return false
}

// Notification is an in-app message shown in the notifications panel.
type Notification struct {
	ID         string
	Tipo       NotificationType
	Titulo     string
	Mensaje    string
	Timestamp  time.Time
	Leida      bool
	PedidoID   *int
	MesaID     *int
	MesaNombre string
}
