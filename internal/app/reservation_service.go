package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/reservaya/api/internal/clock"
	"github.com/reservaya/api/internal/domain"
	"github.com/reservaya/api/internal/events"
	"github.com/reservaya/api/internal/screen"
)

type ReservationRepository interface {
	Create(ctx context.Context, r domain.Reservation) error
	Get(ctx context.Context, id string) (domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus, at time.Time) (domain.Reservation, error)
}

type ReservationService struct {
	repo   ReservationRepository
	clock  clock.Clock
	ids    *Sequence
	events events.Publisher
	logger *log.Logger
}

type ReservationServiceOption func(*ReservationService)

// WithReservationEvents publishes lifecycle events to p.
func WithReservationEvents(p events.Publisher) ReservationServiceOption {
	return func(s *ReservationService) {
		if p != nil {
			s.events = p
		}
	}
}

func WithReservationLogger(l *log.Logger) ReservationServiceOption {
	return func(s *ReservationService) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewReservationService(repo ReservationRepository, clk clock.Clock, opts ...ReservationServiceOption) *ReservationService {
	svc := &ReservationService{
		repo:   repo,
		clock:  clk,
		ids:    NewSequence(clk),
		events: events.Discard{},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type CreateReservationInput struct {
	RestaurantName string
	Date           string
	Time           string
	Guests         int
	Items          []domain.ReservationItem
	Total          float64
	// Attributes are the submitted fields, echoed back unchanged.
	Attributes map[string]json.RawMessage
}

func (in CreateReservationInput) validate() error {
	if strings.TrimSpace(in.RestaurantName) == "" {
		return domain.NewValidationError("restaurantName", "is required")
	}
	if in.Guests <= 0 {
		return domain.NewValidationError("guests", "must be a positive integer")
	}
	for _, item := range in.Items {
		if strings.TrimSpace(item.Name) == "" {
			return domain.NewValidationError("items", "every item needs a name")
		}
		if item.Quantity <= 0 {
			return domain.NewValidationError("items", "quantity must be positive")
		}
		if item.Price < 0 {
			return domain.NewValidationError("items", "price must not be negative")
		}
	}
	if in.Total < 0 {
		return domain.NewValidationError("total", "must not be negative")
	}
	return nil
}

// Create stores a new reservation in the confirmed state.
func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput) (domain.Reservation, error) {
	if err := in.validate(); err != nil {
		return domain.Reservation{}, err
	}

	attrs := make(map[string]json.RawMessage, len(in.Attributes))
	for k, v := range in.Attributes {
		attrs[k] = v
	}

	r := domain.Reservation{
		ID:             s.ids.Next(),
		RestaurantName: in.RestaurantName,
		Date:           in.Date,
		Time:           in.Time,
		Guests:         in.Guests,
		Items:          in.Items,
		Total:          in.Total,
		Status:         domain.ReservationStatusConfirmed,
		Attributes:     attrs,
		CreatedAt:      s.clock.Now(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return domain.Reservation{}, err
	}

	s.publish(ctx, events.Event{
		Type:           events.ReservationCreated,
		ReservationID:  r.ID,
		RestaurantName: r.RestaurantName,
		Status:         string(r.Status),
		Guests:         r.Guests,
		Time:           r.Time,
		OccurredAt:     r.CreatedAt,
	})
	return r, nil
}

// SetStatus replaces the status of an existing reservation. Any recognized
// status is accepted regardless of the current one. An unknown id is
// ErrReservationNotFound whatever the status says.
func (s *ReservationService) SetStatus(ctx context.Context, id string, status domain.ReservationStatus) (domain.Reservation, error) {
	if id == "" {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return domain.Reservation{}, err
	}
	if !status.Valid() {
		return domain.Reservation{}, domain.NewValidationError("status", "must be one of pending, confirmed, cancelled, completed")
	}

	now := s.clock.Now()
	r, err := s.repo.UpdateStatus(ctx, id, status, now)
	if err != nil {
		return domain.Reservation{}, err
	}

	s.publish(ctx, events.Event{
		Type:           events.ReservationStatusChanged,
		ReservationID:  r.ID,
		RestaurantName: r.RestaurantName,
		Status:         string(r.Status),
		Guests:         r.Guests,
		Time:           r.Time,
		OccurredAt:     now,
	})
	return r, nil
}

func (s *ReservationService) Get(ctx context.Context, id string) (domain.Reservation, error) {
	return s.repo.Get(ctx, id)
}

func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.repo.List(ctx)
}

func (s *ReservationService) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.Printf("WARN: publish event type=%s id=%s: %v", e.Type, e.ReservationID, err)
	}
}

// CommitDraft stores a reservation built from a screen draft. The draft is
// always booked for today.
func (s *ReservationService) CommitDraft(ctx context.Context, d screen.Draft) (domain.Reservation, error) {
	items := d.Items
	if items == nil {
		items = []domain.ReservationItem{}
	}
	in := CreateReservationInput{
		RestaurantName: d.RestaurantName,
		Date:           todayLabel,
		Time:           d.Time,
		Guests:         d.Guests,
		Items:          items,
		Total:          d.Total,
	}
	attrs, err := draftAttributes(in)
	if err != nil {
		return domain.Reservation{}, err
	}
	in.Attributes = attrs
	return s.Create(ctx, in)
}

const todayLabel = "Hoy"

func draftAttributes(in CreateReservationInput) (map[string]json.RawMessage, error) {
	fields := map[string]any{
		"restaurantName": in.RestaurantName,
		"date":           in.Date,
		"time":           in.Time,
		"guests":         in.Guests,
		"items":          in.Items,
		"total":          in.Total,
	}
	out := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode draft field %s: %w", k, err)
		}
		out[k] = b
	}
	return out, nil
}
