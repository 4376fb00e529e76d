package http

import (
	"context"
	"log"
	"net/http"

	"github.com/reservaya/api/internal/directions"
	"github.com/reservaya/api/internal/domain"
)

type RouteFinder interface {
	Route(ctx context.Context, origin, destination directions.Point, mode directions.Mode) (directions.Route, error)
}

type routeResponse struct {
	Geometry          directions.Geometry  `json:"geometry"`
	Distance          float64              `json:"distance"`
	Duration          float64              `json:"duration"`
	Mode              directions.Mode      `json:"mode"`
	DistanceFormatted string               `json:"distanceText"`
	DurationFormatted string               `json:"durationText"`
	Style             directions.LineStyle `json:"style"`
}

// HandleDirections serves GET /api/directions?origin=lng,lat&destination=lng,lat&mode=.
func HandleDirections(finder RouteFinder, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		q := r.URL.Query()
		origin, err := directions.ParsePoint(q.Get("origin"))
		if err != nil {
			writeServiceError(w, logger, domain.NewValidationError("origin", "must be lng,lat"))
			return
		}
		destination, err := directions.ParsePoint(q.Get("destination"))
		if err != nil {
			writeServiceError(w, logger, domain.NewValidationError("destination", "must be lng,lat"))
			return
		}
		mode, err := directions.ParseMode(q.Get("mode"))
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		route, err := finder.Route(r.Context(), origin, destination, mode)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, routeResponse{
			Geometry:          route.Geometry,
			Distance:          route.Distance,
			Duration:          route.Duration,
			Mode:              route.Mode,
			DistanceFormatted: directions.FormatDistance(route.Distance),
			DurationFormatted: directions.FormatDuration(route.Duration),
			Style:             directions.StyleFor(route.Mode),
		})
	}
}
