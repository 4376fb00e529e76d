package notify

import (
	"context"
	"fmt"

	"github.com/reservaya/api/internal/domain"
	"github.com/reservaya/api/internal/events"
)

// Notifier turns lifecycle events into ledger entries.
type Notifier struct {
	ledger *Ledger
}

func NewNotifier(ledger *Ledger) *Notifier {
	return &Notifier{ledger: ledger}
}

// Handle satisfies events.Handler. Unknown event types are ignored.
func (n *Notifier) Handle(_ context.Context, e events.Event) error {
	in, ok := toNotification(e)
	if !ok {
		return nil
	}
	_, err := n.ledger.Add(in)
	return err
}

func toNotification(e events.Event) (NewNotification, bool) {
	switch e.Type {
	case events.ReservationCreated:
		return NewNotification{
			Tipo:    domain.NotificationInfo,
			Titulo:  "Reserva confirmada",
			Mensaje: fmt.Sprintf("%s: %s a las %s", e.RestaurantName, guestsLabel(e.Guests), e.Time),
		}, true
	case events.ReservationStatusChanged:
		return NewNotification{
			Tipo:    domain.NotificationInfo,
			Titulo:  "Reserva actualizada",
			Mensaje: fmt.Sprintf("La reserva %s ahora está %s", e.ReservationID, e.Status),
		}, true
	case events.OperatorReservationRequested:
		return NewNotification{
			Tipo:    domain.NotificationAlerta,
			Titulo:  "Nueva solicitud de reserva",
			Mensaje: fmt.Sprintf("%s solicita mesa para %s a las %s", e.ClientName, guestsLabel(e.Guests), e.Time),
		}, true
	case events.OperatorReservationStatusChanged:
		return NewNotification{
			Tipo:    domain.NotificationInfo,
			Titulo:  "Reserva " + e.Status,
			Mensaje: fmt.Sprintf("Reserva de %s: %s", e.ClientName, e.Status),
		}, true
	case events.OperatorReservationExpired:
		return NewNotification{
			Tipo:    domain.NotificationExpirado,
			Titulo:  "Reserva expirada",
			Mensaje: fmt.Sprintf("La solicitud de %s para las %s no fue atendida", e.ClientName, e.Time),
		}, true
	}
	return NewNotification{}, false
}

func guestsLabel(n int) string {
	if n == 1 {
		return "1 persona"
	}
	return fmt.Sprintf("%d personas", n)
}
