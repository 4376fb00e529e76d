package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reservaya/api/internal/app"
	"github.com/reservaya/api/internal/auth"
	"github.com/reservaya/api/internal/catalog"
	"github.com/reservaya/api/internal/clock"
	"github.com/reservaya/api/internal/directions"
	"github.com/reservaya/api/internal/mail"
	"github.com/reservaya/api/internal/notify"
	"github.com/reservaya/api/internal/storage/memory"
)

type apiErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field"`
}

type stubRouteFinder struct {
	route directions.Route
	err   error
}

func (s stubRouteFinder) Route(_ context.Context, _, _ directions.Point, mode directions.Mode) (directions.Route, error) {
	if s.err != nil {
		return directions.Route{}, s.err
	}
	r := s.route
	r.Mode = mode
	return r, nil
}

type testEnv struct {
	handler http.Handler
	clock   *clock.Manual
	ledger  *notify.Ledger
	tokens  *auth.Issuer
}

func newTestEnv(t *testing.T, finder RouteFinder) *testEnv {
	t.Helper()

	clk := clock.NewManual(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	logger := log.New(io.Discard, "", 0)
	ledger := notify.NewLedger(clk, notify.DefaultCapacity)
	tokens := auth.NewIssuer([]byte("test-secret"), time.Hour, clk)
	menuRepo := memory.NewMenuRepository(catalog.DefaultMenu())
	cat := catalog.New(catalog.WithMenu(menuRepo), catalog.WithLogger(logger))

	reservations := app.NewReservationService(memory.NewReservationRepository(), clk, app.WithReservationLogger(logger))
	authSvc := app.NewAuthService(memory.NewUserRepository(), tokens, mail.LogMailer{Logger: logger}, clk, logger)
	if finder == nil {
		finder = directions.NewClient("")
	}

	h := NewRouter(Deps{
		Reservations:  reservations,
		Auth:          authSvc,
		Resets:        authSvc,
		Catalog:       cat,
		Directions:    finder,
		Notifications: ledger,
		Favorites:     app.NewFavoritesService(memory.NewFavoritesStore(), cat),
		Tokens:        tokens,
		Sessions:      app.NewSessionService(cat, reservations),
		Operator:      app.NewOperatorService(memory.NewOperatorRepository(), clk, app.WithOperatorLogger(logger)),
		Tables:        app.NewTableService(memory.NewTableRepository(), clk),
		Menu:          app.NewMenuService(menuRepo),
		Clock:         clk,
		Logger:        logger,
	}, RouterOptions{
		CORSOrigins:    []string{"http://localhost:3000"},
		ProtectedPaths: []string{"/profile", "/dashboard-admin"},
		LoginPath:      "/login",
		AuthCookie:     "token",
	})
	return &testEnv{handler: h, clock: clk, ledger: ledger, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}
