package app

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/reservaya/api/internal/clock"
	"github.com/reservaya/api/internal/domain"
	"github.com/reservaya/api/internal/events"
)

type OperatorRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Create(ctx context.Context, r domain.OperatorReservation) error
	GetForUpdate(ctx context.Context, id string) (domain.OperatorReservation, error)
	Update(ctx context.Context, r domain.OperatorReservation) error
	List(ctx context.Context) ([]domain.OperatorReservation, error)
}

// OperatorService drives the staff-side reservation workflow:
// pendiente -> confirmada|cancelada, confirmada -> completada.
type OperatorService struct {
	repo     OperatorRepository
	clock    clock.Clock
	events   events.Publisher
	logger   *log.Logger
	location *time.Location
}

type OperatorServiceOption func(*OperatorService)

func WithOperatorEvents(p events.Publisher) OperatorServiceOption {
	return func(s *OperatorService) {
		if p != nil {
			s.events = p
		}
	}
}

func WithOperatorLogger(l *log.Logger) OperatorServiceOption {
	return func(s *OperatorService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLocation sets the zone used to interpret reservation date and time.
func WithLocation(loc *time.Location) OperatorServiceOption {
	return func(s *OperatorService) {
		if loc != nil {
			s.location = loc
		}
	}
}

func NewOperatorService(repo OperatorRepository, clk clock.Clock, opts ...OperatorServiceOption) *OperatorService {
	svc := &OperatorService{
		repo:     repo,
		clock:    clk,
		events:   events.Discard{},
		logger:   log.Default(),
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type CreateOperatorReservationInput struct {
	ClientName  string
	ClientEmail string
	Date        string
	Time        string
	Pax         int
	Notes       string
}

func (s *OperatorService) Create(ctx context.Context, in CreateOperatorReservationInput) (domain.OperatorReservation, error) {
	if strings.TrimSpace(in.ClientName) == "" {
		return domain.OperatorReservation{}, domain.NewValidationError("clientName", "is required")
	}
	if in.Pax <= 0 {
		return domain.OperatorReservation{}, domain.NewValidationError("pax", "must be a positive integer")
	}
	if _, err := s.slot(in.Date, in.Time); err != nil {
		return domain.OperatorReservation{}, err
	}

	r := domain.OperatorReservation{
		ID:          newUUID(),
		ClientName:  in.ClientName,
		ClientEmail: in.ClientEmail,
		Date:        in.Date,
		Time:        in.Time,
		Pax:         in.Pax,
		Notes:       in.Notes,
		Status:      domain.OperatorStatusPendiente,
		RequestDate: s.clock.Now(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return domain.OperatorReservation{}, err
	}

	s.publish(ctx, events.OperatorReservationRequested, r)
	return r, nil
}

func (s *OperatorService) List(ctx context.Context) ([]domain.OperatorReservation, error) {
	return s.repo.List(ctx)
}

// Transition moves a reservation along an allowed edge of the workflow.
func (s *OperatorService) Transition(ctx context.Context, id string, to domain.OperatorStatus) (domain.OperatorReservation, error) {
	if !to.Valid() {
		return domain.OperatorReservation{}, domain.NewValidationError("status", "must be one of pendiente, confirmada, cancelada, completada")
	}

	var result domain.OperatorReservation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		r, err := s.repo.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if !domain.CanTransition(r.Status, to) {
			return domain.ErrInvalidTransition
		}
		now := s.clock.Now()
		r.Status = to
		r.UpdatedAt = &now
		if err := s.repo.Update(txCtx, r); err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return domain.OperatorReservation{}, err
	}

	s.publish(ctx, events.OperatorReservationStatusChanged, result)
	return result, nil
}

func (s *OperatorService) Accept(ctx context.Context, id string) (domain.OperatorReservation, error) {
	return s.Transition(ctx, id, domain.OperatorStatusConfirmada)
}

func (s *OperatorService) Reject(ctx context.Context, id string) (domain.OperatorReservation, error) {
	return s.Transition(ctx, id, domain.OperatorStatusCancelada)
}

func (s *OperatorService) Complete(ctx context.Context, id string) (domain.OperatorReservation, error) {
	return s.Transition(ctx, id, domain.OperatorStatusCompletada)
}

// AssignTable records the table given to a reservation that is still open.
func (s *OperatorService) AssignTable(ctx context.Context, id, table string) (domain.OperatorReservation, error) {
	if strings.TrimSpace(table) == "" {
		return domain.OperatorReservation{}, domain.NewValidationError("table", "is required")
	}

	var result domain.OperatorReservation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		r, err := s.repo.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if r.Status == domain.OperatorStatusCancelada || r.Status == domain.OperatorStatusCompletada {
			return domain.ErrInvalidTransition
		}
		now := s.clock.Now()
		r.Table = table
		r.UpdatedAt = &now
		if err := s.repo.Update(txCtx, r); err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return domain.OperatorReservation{}, err
	}
	return result, nil
}

// ExpirePending cancels pendiente reservations whose slot is already in the
// past and reports how many were expired.
func (s *OperatorService) ExpirePending(ctx context.Context) (int, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	expired := 0
	for _, r := range list {
		if r.Status != domain.OperatorStatusPendiente {
			continue
		}
		slot, err := s.slot(r.Date, r.Time)
		if err != nil || !slot.Before(now) {
			continue
		}

		var cancelled domain.OperatorReservation
		err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
			cur, err := s.repo.GetForUpdate(txCtx, r.ID)
			if err != nil {
				return err
			}
			if cur.Status != domain.OperatorStatusPendiente {
				return nil
			}
			cur.Status = domain.OperatorStatusCancelada
			cur.UpdatedAt = &now
			if err := s.repo.Update(txCtx, cur); err != nil {
				return err
			}
			cancelled = cur
			return nil
		})
		if err != nil {
			return expired, err
		}
		if cancelled.ID == "" {
			continue
		}
		expired++
		s.publish(ctx, events.OperatorReservationExpired, cancelled)
	}
	return expired, nil
}

func (s *OperatorService) slot(date, hour string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hour, s.location)
	if err != nil {
		return time.Time{}, domain.NewValidationError("date", "date must be YYYY-MM-DD and time HH:MM")
	}
	return t, nil
}

func (s *OperatorService) publish(ctx context.Context, typ events.Type, r domain.OperatorReservation) {
	e := events.Event{
		Type:          typ,
		ReservationID: r.ID,
		ClientName:    r.ClientName,
		Status:        string(r.Status),
		Guests:        r.Pax,
		Time:          r.Time,
		OccurredAt:    s.clock.Now(),
	}
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.Printf("WARN: publish event type=%s id=%s: %v", e.Type, e.ReservationID, err)
	}
}
