package http

import (
	"net/http"
	"strings"

	"github.com/reservaya/api/internal/domain"
)

type CatalogReader interface {
	Restaurants() []domain.Restaurant
	Menu(restaurantID string) []domain.MenuItem
}

type restaurantResponse struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Rating      float64    `json:"rating"`
	Hours       string     `json:"hours"`
	Distance    string     `json:"distance"`
	Coordinates [2]float64 `json:"coordinates"`
}

type menuItemResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

func HandleRestaurants(cat CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		list := cat.Restaurants()
		resp := make([]restaurantResponse, 0, len(list))
		for _, rest := range list {
			resp = append(resp, restaurantResponse{
				ID:          rest.ID,
				Name:        rest.Name,
				Type:        rest.Type,
				Rating:      rest.Rating,
				Hours:       rest.Hours,
				Distance:    rest.Distance,
				Coordinates: rest.Coordinates,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleMenu serves /api/menu/{restaurantId}.
func HandleMenu(cat CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		id, ok := parseMenuPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		items := cat.Menu(id)
		resp := make([]menuItemResponse, 0, len(items))
		for _, it := range items {
			resp = append(resp, menuItemResponse{
				ID:          it.ID,
				Name:        it.Name,
				Description: it.Description,
				Price:       it.Price,
				Category:    it.Category,
				Image:       it.Image,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func parseMenuPath(path string) (string, bool) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 3 || parts[0] != "api" || parts[1] != "menu" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}
