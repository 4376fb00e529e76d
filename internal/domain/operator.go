package domain

import "time"

type OperatorStatus string

const (
	OperatorStatusPendiente  OperatorStatus = "pendiente"
	OperatorStatusConfirmada OperatorStatus = "confirmada"
	OperatorStatusCancelada  OperatorStatus = "cancelada"
	OperatorStatusCompletada OperatorStatus = "completada"
)

var operatorTransitions = map[OperatorStatus][]OperatorStatus{
	OperatorStatusPendiente:  {OperatorStatusConfirmada, OperatorStatusCancelada},
	OperatorStatusConfirmada: {OperatorStatusCompletada},
}

// Valid reports whether s is a known operator status.
func (s OperatorStatus) Valid() bool {
	switch s {
	case OperatorStatusPendiente, OperatorStatusConfirmada,
		OperatorStatusCancelada, OperatorStatusCompletada:
		return true
	}
	return false
}

// CanTransition reports whether the edge from -> to is allowed.
func CanTransition(from, to OperatorStatus) bool {
	for _, allowed := range operatorTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// OperatorReservation is a booking request as managed by restaurant staff.
type OperatorReservation struct {
	ID          string
	ClientName  string
	ClientEmail string
	Date        string
	Time        string
	Pax         int
	Table       string
	Notes       string
	Status      OperatorStatus
	RequestDate time.Time
	UpdatedAt   *time.Time
}
