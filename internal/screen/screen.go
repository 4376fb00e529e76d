// Package screen models the consumer app's navigation as a closed set of
// screen states, each carrying only the payload it needs.
package screen

import (
	"github.com/reservaya/api/internal/domain"
)

type Name string

const (
	NameMap          Name = "map"
	NameDetails      Name = "details"
	NameQR           Name = "qr"
	NameFavorites    Name = "favorites"
	NameReservations Name = "reservations"
	NameLogin        Name = "login"
	NameRegister     Name = "register"
	NamePlaceholder  Name = "placeholder"
)

// Screen is implemented only by the screen types of this package.
type Screen interface {
	Name() Name
	screen()
}

type MapScreen struct{}

type DetailsScreen struct {
	RestaurantID int
}

type QRScreen struct {
	Draft Draft
}

type FavoritesScreen struct{}

type ReservationsScreen struct{}

type LoginScreen struct{}

type RegisterScreen struct{}

type PlaceholderScreen struct{}

func (MapScreen) Name() Name          { return NameMap }
func (DetailsScreen) Name() Name      { return NameDetails }
func (QRScreen) Name() Name           { return NameQR }
func (FavoritesScreen) Name() Name    { return NameFavorites }
func (ReservationsScreen) Name() Name { return NameReservations }
func (LoginScreen) Name() Name        { return NameLogin }
func (RegisterScreen) Name() Name     { return NameRegister }
func (PlaceholderScreen) Name() Name  { return NamePlaceholder }

func (MapScreen) screen()          {}
func (DetailsScreen) screen()      {}
func (QRScreen) screen()           {}
func (FavoritesScreen) screen()    {}
func (ReservationsScreen) screen() {}
func (LoginScreen) screen()        {}
func (RegisterScreen) screen()     {}
func (PlaceholderScreen) screen()  {}

// Draft is the in-flight reservation shown on the QR screen.
type Draft struct {
	RestaurantID   int
	RestaurantName string
	Time           string
	Guests         int
	Items          []domain.ReservationItem
	Total          float64
}
