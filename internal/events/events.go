// Package events carries reservation lifecycle events from the services that
// produce them to the consumers that react to them (the notification ledger).
package events

import (
	"context"
	"errors"
	"sync"
	"time"
)

type Type string

const (
	ReservationCreated               Type = "reservation.created"
	ReservationStatusChanged         Type = "reservation.status_changed"
	OperatorReservationRequested     Type = "operator.reservation_requested"
	OperatorReservationStatusChanged Type = "operator.reservation_status_changed"
	OperatorReservationExpired       Type = "operator.reservation_expired"
)

// Event is the wire shape shared by every publisher.
type Event struct {
	Type           Type      `json:"type"`
	ReservationID  string    `json:"reservation_id"`
	RestaurantName string    `json:"restaurant_name,omitempty"`
	ClientName     string    `json:"client_name,omitempty"`
	Status         string    `json:"status,omitempty"`
	Guests         int       `json:"guests,omitempty"`
	Time           string    `json:"time,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Handler func(ctx context.Context, e Event) error

// Local dispatches events synchronously to in-process handlers.
type Local struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewLocal(handlers ...Handler) *Local {
	return &Local{handlers: handlers}
}

func (l *Local) Subscribe(h Handler) {
	l.mu.Lock()
	l.handlers = append(l.handlers, h)
	l.mu.Unlock()
}

func (l *Local) Publish(ctx context.Context, e Event) error {
	l.mu.RLock()
	handlers := make([]Handler, len(l.handlers))
	copy(handlers, l.handlers)
	l.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }
