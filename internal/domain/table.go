package domain

import "time"

// Table is a dining table configured by an operator.
type Table struct {
	ID            string
	Nombre        string
	Numero        int
	Capacidad     int
	EstaBloqueada bool
	CreatedAt     time.Time
}
