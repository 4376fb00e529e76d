// Package http exposes the REST API over net/http.
package http

import (
	"log"
	"net/http"
	"time"

	"github.com/reservaya/api/internal/clock"
)

// Deps are the services behind the API. Every field is required except
// Tokens, Location and Checks.
type Deps struct {
	Reservations  ReservationAPI
	Auth          Authenticator
	Resets        PasswordResetter
	Catalog       CatalogReader
	Directions    RouteFinder
	Notifications NotificationLedger
	Favorites     FavoritesAPI
	Tokens        TokenParser
	Sessions      SessionAPI
	Operator      OperatorAPI
	Tables        TableAPI
	Menu          MenuAPI
	Clock         clock.Clock
	Location      *time.Location
	Checks        []HealthCheck
	Logger        *log.Logger
}

// RouterOptions configure the outer middleware.
type RouterOptions struct {
	CORSOrigins    []string
	ProtectedPaths []string
	LoginPath      string
	AuthCookie     string
}

func NewRouter(d Deps, opts RouterOptions) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = log.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", HealthHandler(logger, d.Checks...))

	mux.Handle("/api/reservations", HandleReservations(d.Reservations, logger))

	login := HandleLogin(d.Auth, logger)
	mux.Handle("/api/login", login)
	mux.Handle("/api/auth/login", login)
	mux.Handle("/api/register", HandleLegacyRegister(d.Auth, logger))
	mux.Handle("/api/auth/register", HandleRegister(d.Auth, logger))
	mux.Handle("/api/password-reset", HandlePasswordReset(d.Resets))

	mux.Handle("/api/restaurants", HandleRestaurants(d.Catalog))
	mux.Handle("/api/menu/", HandleMenu(d.Catalog))
	mux.Handle("/api/directions", HandleDirections(d.Directions, logger))

	notifications := HandleNotifications(d.Notifications, d.Clock, d.Location)
	mux.Handle("/api/notifications", notifications)
	mux.Handle("/api/notifications/", notifications)

	favorites := HandleFavorites(d.Favorites, d.Tokens, logger)
	mux.Handle("/api/favorites", favorites)
	mux.Handle("/api/favorites/", favorites)

	sessions := HandleSessions(d.Sessions, logger)
	mux.Handle("/api/sessions", sessions)
	mux.Handle("/api/sessions/", sessions)

	adminReservations := HandleAdminReservations(d.Operator, logger)
	mux.Handle("/api/admin/reservations", adminReservations)
	mux.Handle("/api/admin/reservations/", adminReservations)
	adminTables := HandleAdminTables(d.Tables, logger)
	mux.Handle("/api/admin/tables", adminTables)
	mux.Handle("/api/admin/tables/", adminTables)
	adminMenu := HandleAdminMenu(d.Menu, logger)
	mux.Handle("/api/admin/menu", adminMenu)
	mux.Handle("/api/admin/menu/", adminMenu)

	mux.Handle("/", NotFoundHandler())

	var h http.Handler = mux
	h = RequireSession(opts.ProtectedPaths, opts.LoginPath, opts.AuthCookie, h)
	h = CORS(opts.CORSOrigins, h)
	h = Recover(h, logger)
	return RequestLogger(h, logger)
}

// NotFoundHandler returns a JSON 404 response for unknown routes.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
}
