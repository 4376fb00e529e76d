package screen

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/reservaya/api/internal/cart"
	"github.com/reservaya/api/internal/domain"
)

var (
	ErrWrongScreen    = errors.New("action not available on current screen")
	ErrNoSelection    = errors.New("no restaurant selected")
	ErrUnknownScreen  = errors.New("unknown screen")
	ErrInvalidGuests  = errors.New("guests must be positive")
	ErrEmptyTimeValue = errors.New("time is required")
)

const (
	defaultTime   = "19:00"
	defaultGuests = 2
)

// Catalog is what a session needs to know about restaurants and menus.
type Catalog interface {
	cart.Catalog
	Restaurant(id int) (domain.Restaurant, bool)
}

// Committer persists a confirmed draft.
type Committer interface {
	CommitDraft(ctx context.Context, d Draft) (domain.Reservation, error)
}

// Session is one user's navigation state. It is not safe for concurrent use.
type Session struct {
	ID        string
	current   Screen
	selected  *int
	cart      *cart.Cart
	time      string
	guests    int
	favorites map[int]struct{}
	history   []domain.Reservation
}

func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		current:   MapScreen{},
		cart:      cart.New(),
		time:      defaultTime,
		guests:    defaultGuests,
		favorites: map[int]struct{}{1: {}},
	}
}

func (s *Session) Current() Screen { return s.current }

// Selected returns the selected restaurant id, if any.
func (s *Session) Selected() (int, bool) {
	if s.selected == nil {
		return 0, false
	}
	return *s.selected, true
}

// SelectRestaurant records the selection and opens its details. A nil
// selection (a cleared filter) keeps the current screen.
func (s *Session) SelectRestaurant(id *int) {
	if id == nil {
		s.selected = nil
		return
	}
	v := *id
	s.selected = &v
	s.enter(DetailsScreen{RestaurantID: v})
}

// Navigate moves to a screen that needs no payload, or to the details of
// the current selection. The QR screen is only reachable through ShowQR.
func (s *Session) Navigate(name Name) error {
	switch name {
	case NameMap:
		s.enter(MapScreen{})
	case NameFavorites:
		s.enter(FavoritesScreen{})
	case NameReservations:
		s.enter(ReservationsScreen{})
	case NameLogin:
		s.enter(LoginScreen{})
	case NameRegister:
		s.enter(RegisterScreen{})
	case NamePlaceholder:
		s.enter(PlaceholderScreen{})
	case NameDetails:
		if s.selected == nil {
			return ErrNoSelection
		}
		s.enter(DetailsScreen{RestaurantID: *s.selected})
	case NameQR:
		return ErrWrongScreen
	default:
		return fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
	return nil
}

// Back returns to the map, discarding any draft and cart.
func (s *Session) Back() {
	s.enter(MapScreen{})
}

func (s *Session) AddToCart(itemID int) error {
	if _, ok := s.current.(DetailsScreen); !ok {
		return ErrWrongScreen
	}
	s.cart.Add(itemID)
	return nil
}

func (s *Session) RemoveFromCart(itemID int) error {
	if _, ok := s.current.(DetailsScreen); !ok {
		return ErrWrongScreen
	}
	s.cart.Remove(itemID)
	return nil
}

func (s *Session) SetTime(t string) error {
	if _, ok := s.current.(DetailsScreen); !ok {
		return ErrWrongScreen
	}
	if t == "" {
		return ErrEmptyTimeValue
	}
	s.time = t
	return nil
}

func (s *Session) SetGuests(n int) error {
	if _, ok := s.current.(DetailsScreen); !ok {
		return ErrWrongScreen
	}
	if n <= 0 {
		return ErrInvalidGuests
	}
	s.guests = n
	return nil
}

func (s *Session) Cart() *cart.Cart { return s.cart }

func (s *Session) Time() string { return s.time }

func (s *Session) Guests() int { return s.guests }

// ShowQR turns the cart into a reservation draft and opens the QR screen.
func (s *Session) ShowQR(catalog Catalog) error {
	details, ok := s.current.(DetailsScreen)
	if !ok {
		return ErrWrongScreen
	}
	restaurant, ok := catalog.Restaurant(details.RestaurantID)
	if !ok {
		return domain.ErrRestaurantNotFound
	}

	draft := Draft{
		RestaurantID:   restaurant.ID,
		RestaurantName: restaurant.Name,
		Time:           s.time,
		Guests:         s.guests,
		Items:          s.cart.Lines(catalog),
		Total:          s.cart.Totals(catalog).Price,
	}
	s.enter(QRScreen{Draft: draft})
	return nil
}

// ConfirmQR commits the draft and returns to the map. On failure the
// session stays on the QR screen with its draft.
func (s *Session) ConfirmQR(ctx context.Context, c Committer) (domain.Reservation, error) {
	qr, ok := s.current.(QRScreen)
	if !ok {
		return domain.Reservation{}, domain.ErrNoDraft
	}
	r, err := c.CommitDraft(ctx, qr.Draft)
	if err != nil {
		return domain.Reservation{}, err
	}
	s.history = append([]domain.Reservation{r}, s.history...)
	s.enter(MapScreen{})
	return r, nil
}

// Draft returns the in-flight draft while on the QR screen.
func (s *Session) Draft() (Draft, bool) {
	qr, ok := s.current.(QRScreen)
	return qr.Draft, ok
}

// History lists reservations confirmed in this session, newest first.
func (s *Session) History() []domain.Reservation {
	out := make([]domain.Reservation, len(s.history))
	copy(out, s.history)
	return out
}

// ToggleFavorite flips membership and reports whether id is now a favorite.
func (s *Session) ToggleFavorite(id int) bool {
	if _, ok := s.favorites[id]; ok {
		delete(s.favorites, id)
		return false
	}
	s.favorites[id] = struct{}{}
	return true
}

func (s *Session) Favorites() []int {
	out := make([]int, 0, len(s.favorites))
	for id := range s.favorites {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// enter switches screens. Cart, time and guests live only while the
// details screen of one restaurant stays open; the draft lives only on the
// QR screen, so leaving it drops the draft.
func (s *Session) enter(next Screen) {
	cur, fromDetails := s.current.(DetailsScreen)
	nd, toDetails := next.(DetailsScreen)
	if !fromDetails || !toDetails || cur.RestaurantID != nd.RestaurantID {
		s.cart.Reset()
		s.time = defaultTime
		s.guests = defaultGuests
	}
	s.current = next
}
