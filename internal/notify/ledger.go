// Package notify holds the in-app notification ledger: a bounded,
// most-recent-first log with read/unread accounting.
package notify

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/reservaya/api/internal/clock"
	"github.com/reservaya/api/internal/domain"
)

const DefaultCapacity = 50

// NewNotification is the caller-supplied part of a notification; id,
// timestamp and read state are assigned by the ledger.
type NewNotification struct {
	Tipo       domain.NotificationType
	Titulo     string
	Mensaje    string
	PedidoID   *int
	MesaID     *int
	MesaNombre string
}

type Ledger struct {
	mu       sync.Mutex
	clock    clock.Clock
	capacity int
	items    []domain.Notification
}

func NewLedger(clk clock.Clock, capacity int) *Ledger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ledger{clock: clk, capacity: capacity}
}

func (l *Ledger) Add(in NewNotification) (domain.Notification, error) {
	if !in.Tipo.Valid() {
		return domain.Notification{}, domain.NewValidationError("tipo", "must be one of alerta, urgente, expirado, info")
	}
	if strings.TrimSpace(in.Titulo) == "" {
		return domain.Notification{}, domain.NewValidationError("titulo", "is required")
	}

	n := domain.Notification{
		ID:         uuid.NewString(),
		Tipo:       in.Tipo,
		Titulo:     in.Titulo,
		Mensaje:    in.Mensaje,
		Timestamp:  l.clock.Now(),
		PedidoID:   in.PedidoID,
		MesaID:     in.MesaID,
		MesaNombre: in.MesaNombre,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]domain.Notification, 0, min(len(l.items)+1, l.capacity))
	items = append(items, n)
	items = append(items, l.items...)
	if len(items) > l.capacity {
		items = items[:l.capacity]
	}
	l.items = items
	return n, nil
}

// MarkRead flags the matching entry as read. Unknown ids are ignored.
func (l *Ledger) MarkRead(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Leida = true
			return
		}
	}
}

func (l *Ledger) MarkAllRead() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		l.items[i].Leida = true
	}
}

func (l *Ledger) Clear() {
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
}

// List returns a copy of the ledger, most recent first.
func (l *Ledger) List() []domain.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Notification, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Ledger) UnreadCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return countUnread(l.items)
}

// Snapshot returns the entries and their unread count from one consistent view.
func (l *Ledger) Snapshot() ([]domain.Notification, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Notification, len(l.items))
	copy(out, l.items)
	return out, countUnread(out)
}

func countUnread(items []domain.Notification) int {
	n := 0
	for _, it := range items {
		if !it.Leida {
			n++
		}
	}
	return n
}
