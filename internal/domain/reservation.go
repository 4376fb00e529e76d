package domain

import (
	"encoding/json"
	"time"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

// Valid reports whether s is one of the recognized consumer statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusCancelled, ReservationStatusCompleted:
		return true
	}
	return false
}

// ReservationItem is a pre-ordered menu line attached to a reservation.
type ReservationItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Reservation is a guest's booking as created from the consumer flow.
type Reservation struct {
	ID             string
	RestaurantName string
	Date           string
	Time           string
	Guests         int
	Items          []ReservationItem
	Total          float64
	Status         ReservationStatus
	// Attributes holds every field of the submitted body verbatim.
	Attributes map[string]json.RawMessage
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
