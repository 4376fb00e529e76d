package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reservaya/api/internal/clock"
	"github.com/reservaya/api/internal/domain"
	"github.com/reservaya/api/internal/events"
	"github.com/reservaya/api/internal/storage/memory"
)

func TestOperatorService_Transitions(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	newPending := func(t *testing.T) (*OperatorService, domain.OperatorReservation) {
		t.Helper()
		svc := NewOperatorService(memory.NewOperatorRepository(), clock.NewFixed(now))
		r, err := svc.Create(context.Background(), CreateOperatorReservationInput{
			ClientName: "Ana Pérez",
			Date:       "2025-03-01",
			Time:       "20:00",
			Pax:        4,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if r.Status != domain.OperatorStatusPendiente {
			t.Fatalf("expected pendiente, got %s", r.Status)
		}
		return svc, r
	}

	t.Run("accept then complete", func(t *testing.T) {
		svc, r := newPending(t)
		got, err := svc.Accept(context.Background(), r.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Status != domain.OperatorStatusConfirmada {
			t.Fatalf("expected confirmada, got %s", got.Status)
		}
		got, err = svc.Complete(context.Background(), r.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Status != domain.OperatorStatusCompletada {
			t.Fatalf("expected completada, got %s", got.Status)
		}
	})

	t.Run("reject is final", func(t *testing.T) {
		svc, r := newPending(t)
		if _, err := svc.Reject(context.Background(), r.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := svc.Accept(context.Background(), r.ID); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if _, err := svc.AssignTable(context.Background(), r.ID, "Mesa 4"); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("pending cannot complete", func(t *testing.T) {
		svc, r := newPending(t)
		if _, err := svc.Complete(context.Background(), r.ID); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("assign table", func(t *testing.T) {
		svc, r := newPending(t)
		got, err := svc.AssignTable(context.Background(), r.ID, "Mesa 4")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Table != "Mesa 4" || got.UpdatedAt == nil {
			t.Fatalf("unexpected reservation %+v", got)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, _ := newPending(t)
		if _, err := svc.Accept(context.Background(), "missing"); !errors.Is(err, domain.ErrReservationNotFound) {
			t.Fatalf("expected ErrReservationNotFound, got %v", err)
		}
	})

	t.Run("invalid slot", func(t *testing.T) {
		svc := NewOperatorService(memory.NewOperatorRepository(), clock.NewFixed(now))
		_, err := svc.Create(context.Background(), CreateOperatorReservationInput{ClientName: "A", Date: "01/03/2025", Time: "20:00", Pax: 2})
		if !domain.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestOperatorService_ExpirePending(t *testing.T) {
	t.Parallel()

	clk := clock.NewManual(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	pub := &recordingPublisher{}
	svc := NewOperatorService(memory.NewOperatorRepository(), clk, WithOperatorEvents(pub))

	early, err := svc.Create(context.Background(), CreateOperatorReservationInput{ClientName: "A", Date: "2025-03-01", Time: "13:00", Pax: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	late, err := svc.Create(context.Background(), CreateOperatorReservationInput{ClientName: "B", Date: "2025-03-01", Time: "21:00", Pax: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	accepted, err := svc.Create(context.Background(), CreateOperatorReservationInput{ClientName: "C", Date: "2025-03-01", Time: "12:30", Pax: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Accept(context.Background(), accepted.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	clk.Advance(2 * time.Hour)
	pub.events = nil
	n, err := svc.ExpirePending(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 expired, got %d", n)
	}
	if len(pub.events) != 1 || pub.events[0].Type != events.OperatorReservationExpired || pub.events[0].ReservationID != early.ID {
		t.Fatalf("unexpected events %+v", pub.events)
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	status := map[string]domain.OperatorStatus{}
	for _, r := range list {
		status[r.ID] = r.Status
	}
	if status[early.ID] != domain.OperatorStatusCancelada {
		t.Fatalf("expected early cancelled, got %s", status[early.ID])
	}
	if status[late.ID] != domain.OperatorStatusPendiente {
		t.Fatalf("expected late pending, got %s", status[late.ID])
	}
	if status[accepted.ID] != domain.OperatorStatusConfirmada {
		t.Fatalf("expected accepted untouched, got %s", status[accepted.ID])
	}
}
