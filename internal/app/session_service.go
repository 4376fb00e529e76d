package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/reservaya/api/internal/clock"
	"github.com/reservaya/api/internal/domain"
	"github.com/reservaya/api/internal/screen"
)

type SessionEventType string

const (
	EventSelectRestaurant SessionEventType = "select_restaurant"
	EventNavigate         SessionEventType = "navigate"
	EventCartAdd          SessionEventType = "cart_add"
	EventCartRemove       SessionEventType = "cart_remove"
	EventSetTime          SessionEventType = "set_time"
	EventSetGuests        SessionEventType = "set_guests"
	EventShowQR           SessionEventType = "show_qr"
	EventConfirmQR        SessionEventType = "confirm_qr"
	EventBack             SessionEventType = "back"
	EventToggleFavorite   SessionEventType = "toggle_favorite"
)

// SessionEvent is one user action. Only the fields the type needs are read.
type SessionEvent struct {
	Type         SessionEventType `json:"type"`
	RestaurantID *int             `json:"restaurantId,omitempty"`
	Screen       screen.Name      `json:"screen,omitempty"`
	ItemID       int              `json:"itemId,omitempty"`
	Time         string           `json:"time,omitempty"`
	Guests       int              `json:"guests,omitempty"`
}

type CartLine struct {
	ItemID   int     `json:"itemId"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type DraftView struct {
	RestaurantID   int                      `json:"restaurantId"`
	RestaurantName string                   `json:"restaurantName"`
	Time           string                   `json:"time"`
	Guests         int                      `json:"guests"`
	Items          []domain.ReservationItem `json:"items"`
	Total          float64                  `json:"total"`
}

// SessionView is the rendered state of a session.
type SessionView struct {
	ID           string         `json:"id"`
	Screen       screen.Name    `json:"screen"`
	RestaurantID *int           `json:"restaurantId,omitempty"`
	Cart         []CartLine     `json:"cart"`
	CartCount    int            `json:"cartCount"`
	CartTotal    float64        `json:"cartTotal"`
	Time         string         `json:"time"`
	Guests       int            `json:"guests"`
	Draft        *DraftView     `json:"draft,omitempty"`
	Favorites    []int          `json:"favorites"`
	History      []HistoryEntry `json:"history"`
}

// HistoryEntry summarizes a reservation confirmed during the session.
type HistoryEntry struct {
	ID             string  `json:"id"`
	RestaurantName string  `json:"restaurantName"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Guests         int     `json:"guests"`
	Total          float64 `json:"total"`
	Status         string  `json:"status"`
}

const (
	defaultSessionTTL  = 30 * time.Minute
	defaultMaxSessions = 10000
)

type sessionEntry struct {
	mu       sync.Mutex
	sess     *screen.Session
	lastSeen time.Time
}

// SessionService keeps live navigation sessions in memory. The map is guarded
// by mu; each session is guarded by its own entry lock, so a slow commit on one
// session does not block the others.
type SessionService struct {
	mu          sync.Mutex
	sessions    map[string]*sessionEntry
	catalog     screen.Catalog
	committer   screen.Committer
	clock       clock.Clock
	ttl         time.Duration
	maxSessions int
}

type SessionServiceOption func(*SessionService)

// WithSessionTTL sets how long an untouched session stays alive. Zero or
// negative disables expiry.
func WithSessionTTL(d time.Duration) SessionServiceOption {
	return func(s *SessionService) { s.ttl = d }
}

// WithMaxSessions caps the live sessions; Start evicts the least recently
// used one past the cap. Zero or negative disables the cap.
func WithMaxSessions(n int) SessionServiceOption {
	return func(s *SessionService) { s.maxSessions = n }
}

func WithSessionClock(c clock.Clock) SessionServiceOption {
	return func(s *SessionService) {
		if c != nil {
			s.clock = c
		}
	}
}

func NewSessionService(catalog screen.Catalog, committer screen.Committer, opts ...SessionServiceOption) *SessionService {
	s := &SessionService{
		sessions:    make(map[string]*sessionEntry),
		catalog:     catalog,
		committer:   committer,
		clock:       clock.NewSystem(),
		ttl:         defaultSessionTTL,
		maxSessions: defaultMaxSessions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionService) Start(_ context.Context) SessionView {
	now := s.clock.Now()
	sess := screen.NewSession(newUUID())
	entry := &sessionEntry{sess: sess, lastSeen: now}

	s.mu.Lock()
	s.sweepLocked(now)
	for s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.evictOldestLocked()
	}
	s.sessions[sess.ID] = entry
	s.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return s.render(sess)
}

// Len reports the number of live sessions.
func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionService) Get(_ context.Context, id string) (SessionView, error) {
	entry, err := s.acquire(id)
	if err != nil {
		return SessionView{}, err
	}
	defer entry.mu.Unlock()
	return s.render(entry.sess), nil
}

// acquire looks a session up, refreshes its idle timer and returns it with
// its entry lock held.
func (s *SessionService) acquire(id string) (*sessionEntry, error) {
	now := s.clock.Now()

	s.mu.Lock()
	entry, ok := s.sessions[id]
	if ok && s.expired(entry, now) {
		delete(s.sessions, id)
		ok = false
	}
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	entry.lastSeen = now
	s.mu.Unlock()

	entry.mu.Lock()
	return entry, nil
}

func (s *SessionService) expired(e *sessionEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) >= s.ttl
}

func (s *SessionService) sweepLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
		}
	}
}

func (s *SessionService) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range s.sessions {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	delete(s.sessions, oldestID)
}

// Apply runs one event against a session and returns the resulting view.
// A rejected event leaves the session as it was.
func (s *SessionService) Apply(ctx context.Context, id string, ev SessionEvent) (SessionView, error) {
	entry, err := s.acquire(id)
	if err != nil {
		return SessionView{}, err
	}
	defer entry.mu.Unlock()
	sess := entry.sess

	switch ev.Type {
	case EventSelectRestaurant:
		if ev.RestaurantID != nil {
			if _, found := s.catalog.Restaurant(*ev.RestaurantID); !found {
				return SessionView{}, domain.ErrRestaurantNotFound
			}
		}
		sess.SelectRestaurant(ev.RestaurantID)
	case EventNavigate:
		err = sess.Navigate(ev.Screen)
	case EventCartAdd:
		item, found := s.catalog.MenuItem(ev.ItemID)
		if !found {
			return SessionView{}, domain.NewValidationError("itemId", "unknown menu item")
		}
		if !item.InStock {
			return SessionView{}, domain.NewValidationError("itemId", "out of stock")
		}
		err = sess.AddToCart(ev.ItemID)
	case EventCartRemove:
		err = sess.RemoveFromCart(ev.ItemID)
	case EventSetTime:
		err = sess.SetTime(ev.Time)
	case EventSetGuests:
		err = sess.SetGuests(ev.Guests)
	case EventShowQR:
		err = sess.ShowQR(s.catalog)
	case EventConfirmQR:
		_, err = sess.ConfirmQR(ctx, s.committer)
	case EventBack:
		sess.Back()
	case EventToggleFavorite:
		if ev.RestaurantID == nil {
			return SessionView{}, domain.NewValidationError("restaurantId", "is required")
		}
		sess.ToggleFavorite(*ev.RestaurantID)
	default:
		return SessionView{}, domain.NewValidationError("type", fmt.Sprintf("unknown event %q", ev.Type))
	}
	if err != nil {
		return SessionView{}, err
	}
	return s.render(sess), nil
}

func (s *SessionService) render(sess *screen.Session) SessionView {
	totals := sess.Cart().Totals(s.catalog)
	v := SessionView{
		ID:        sess.ID,
		Screen:    sess.Current().Name(),
		Cart:      []CartLine{},
		CartCount: totals.Count,
		CartTotal: totals.Price,
		Time:      sess.Time(),
		Guests:    sess.Guests(),
		Favorites: sess.Favorites(),
		History:   []HistoryEntry{},
	}
	for _, r := range sess.History() {
		v.History = append(v.History, HistoryEntry{
			ID:             r.ID,
			RestaurantName: r.RestaurantName,
			Date:           r.Date,
			Time:           r.Time,
			Guests:         r.Guests,
			Total:          r.Total,
			Status:         string(r.Status),
		})
	}
	if id, ok := sess.Selected(); ok {
		v.RestaurantID = &id
	}
	for id, qty := range sess.Cart().Snapshot() {
		item, ok := s.catalog.MenuItem(id)
		if !ok {
			continue
		}
		v.Cart = append(v.Cart, CartLine{ItemID: id, Name: item.Name, Quantity: qty, Price: item.Price})
	}
	sort.Slice(v.Cart, func(i, j int) bool { return v.Cart[i].ItemID < v.Cart[j].ItemID })

	switch cur := sess.Current().(type) {
	case screen.QRScreen:
		d := cur.Draft
		v.Draft = &DraftView{
			RestaurantID:   d.RestaurantID,
			RestaurantName: d.RestaurantName,
			Time:           d.Time,
			Guests:         d.Guests,
			Items:          d.Items,
			Total:          d.Total,
		}
	case screen.MapScreen, screen.DetailsScreen, screen.FavoritesScreen, screen.ReservationsScreen,
		screen.LoginScreen, screen.RegisterScreen, screen.PlaceholderScreen:
	}
	return v
}
