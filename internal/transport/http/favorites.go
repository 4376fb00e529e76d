package http

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/reservaya/api/internal/auth"
)

type FavoritesAPI interface {
	Toggle(ctx context.Context, owner string, restaurantID int) (bool, error)
	List(ctx context.Context, owner string) ([]int, error)
}

type TokenParser interface {
	Parse(raw string) (auth.Claims, error)
}

const (
	clientIDHeader = "X-Client-ID"
	anonymousOwner = "anonymous"
)

type favoritesResponse struct {
	Favorites []int `json:"favorites"`
}

type toggleFavoriteResponse struct {
	RestaurantID int   `json:"restaurantId"`
	Favorite     bool  `json:"favorite"`
	Favorites    []int `json:"favorites"`
}

// HandleFavorites serves GET /api/favorites and POST /api/favorites/{id}.
// The owner is the token subject when a valid bearer token is sent, then
// the X-Client-ID header, then a shared anonymous owner.
func HandleFavorites(svc FavoritesAPI, tokens TokenParser, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := favoritesOwner(r, tokens)
		rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/favorites"), "/")

		if rest == "" {
			if r.Method != http.MethodGet {
				methodNotAllowed(w)
				return
			}
			ids, err := svc.List(r.Context(), owner)
			if err != nil {
				writeServiceError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, favoritesResponse{Favorites: ids})
			return
		}

		id, err := strconv.Atoi(rest)
		if err != nil {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		on, err := svc.Toggle(r.Context(), owner, id)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		ids, err := svc.List(r.Context(), owner)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toggleFavoriteResponse{RestaurantID: id, Favorite: on, Favorites: ids})
	}
}

func favoritesOwner(r *http.Request, tokens TokenParser) string {
	if tokens != nil {
		if raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
			if claims, err := tokens.Parse(strings.TrimSpace(raw)); err == nil && claims.Subject != "" {
				return "user:" + claims.Subject
			}
		}
	}
	if id := strings.TrimSpace(r.Header.Get(clientIDHeader)); id != "" {
		return "client:" + id
	}
	return anonymousOwner
}
