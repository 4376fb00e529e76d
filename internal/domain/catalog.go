package domain

// Restaurant is an entry of the public restaurant catalog.
type Restaurant struct {
	ID          int
	Name        string
	Type        string
	Rating      float64
	Hours       string
	Distance    string
	Coordinates [2]float64 // lng, lat
}

// MenuItem is an entry of a restaurant menu. Items out of stock stay on the
// operator menu but are hidden from customers.
type MenuItem struct {
	ID          int
	Name        string
	Description string
	Price       float64
	Category    string
	Image       string
	InStock     bool
}
