package http

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/reservaya/api/internal/app"
	"github.com/reservaya/api/internal/domain"
)

// MenuAPI manages the operator menu.
type MenuAPI interface {
	CreateItem(ctx context.Context, in app.CreateMenuItemInput) (domain.MenuItem, error)
	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	UpdateItem(ctx context.Context, id int, in app.UpdateMenuItemInput) (domain.MenuItem, error)
	SetStock(ctx context.Context, id int, inStock bool) (domain.MenuItem, error)
	DeleteItem(ctx context.Context, id int) error
}

type adminMenuItemResponse struct {
	ID          int     `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	Precio      float64 `json:"precio"`
	Categoria   string  `json:"categoria"`
	Imagen      string  `json:"imagen,omitempty"`
	EnStock     bool    `json:"enStock"`
}

func toAdminMenuItemResponse(it domain.MenuItem) adminMenuItemResponse {
	return adminMenuItemResponse{
		ID:          it.ID,
		Nombre:      it.Name,
		Descripcion: it.Description,
		Precio:      it.Price,
		Categoria:   it.Category,
		Imagen:      it.Image,
		EnStock:     it.InStock,
	}
}

type createMenuItemRequest struct {
	Nombre      string   `json:"nombre" validate:"required"`
	Descripcion string   `json:"descripcion"`
	Precio      *float64 `json:"precio" validate:"required,gte=0"`
	Categoria   string   `json:"categoria" validate:"required"`
	Imagen      string   `json:"imagen"`
}

type updateMenuItemRequest struct {
	Nombre      *string  `json:"nombre"`
	Descripcion *string  `json:"descripcion"`
	Precio      *float64 `json:"precio"`
	Categoria   *string  `json:"categoria"`
	Imagen      *string  `json:"imagen"`
}

func (r updateMenuItemRequest) empty() bool {
	return r.Nombre == nil && r.Descripcion == nil && r.Precio == nil && r.Categoria == nil && r.Imagen == nil
}

type stockRequest struct {
	EnStock *bool `json:"enStock" validate:"required"`
}

// HandleAdminMenu serves GET/POST /api/admin/menu,
// PUT/PATCH/DELETE /api/admin/menu/{id} and
// PATCH /api/admin/menu/{id}/stock.
func HandleAdminMenu(svc MenuAPI, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID, action, ok := parseAdminPath(r.URL.Path, "menu")
		if !ok || (action != "" && action != "stock") {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if rawID == "" {
			switch r.Method {
			case http.MethodGet:
				list, err := svc.ListItems(r.Context())
				if err != nil {
					writeServiceError(w, logger, err)
					return
				}
				resp := make([]adminMenuItemResponse, 0, len(list))
				for _, it := range list {
					resp = append(resp, toAdminMenuItemResponse(it))
				}
				writeJSON(w, http.StatusOK, resp)
			case http.MethodPost:
				var req createMenuItemRequest
				if err := decodeJSON(w, r, &req); err != nil {
					writeDecodeError(w, err)
					return
				}
				it, err := svc.CreateItem(r.Context(), app.CreateMenuItemInput{
					Nombre:      req.Nombre,
					Descripcion: req.Descripcion,
					Precio:      *req.Precio,
					Categoria:   req.Categoria,
					Imagen:      req.Imagen,
				})
				if err != nil {
					writeServiceError(w, logger, err)
					return
				}
				writeJSON(w, http.StatusCreated, toAdminMenuItemResponse(it))
			default:
				methodNotAllowed(w)
			}
			return
		}

		id, err := strconv.Atoi(rawID)
		if err != nil || id <= 0 {
			writeServiceError(w, logger, domain.ErrMenuItemNotFound)
			return
		}

		if action == "stock" {
			if r.Method != http.MethodPatch {
				methodNotAllowed(w)
				return
			}
			var req stockRequest
			if err := decodeJSON(w, r, &req); err != nil {
				writeDecodeError(w, err)
				return
			}
			it, err := svc.SetStock(r.Context(), id, *req.EnStock)
			if err != nil {
				writeServiceError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, toAdminMenuItemResponse(it))
			return
		}

		switch r.Method {
		case http.MethodPut, http.MethodPatch:
			var req updateMenuItemRequest
			if err := decodeJSON(w, r, &req); err != nil {
				writeDecodeError(w, err)
				return
			}
			if req.empty() {
				writeServiceError(w, logger, domain.NewValidationError("body", "no fields to update"))
				return
			}
			it, err := svc.UpdateItem(r.Context(), id, app.UpdateMenuItemInput{
				Nombre:      req.Nombre,
				Descripcion: req.Descripcion,
				Precio:      req.Precio,
				Categoria:   req.Categoria,
				Imagen:      req.Imagen,
			})
			if err != nil {
				writeServiceError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, toAdminMenuItemResponse(it))
		case http.MethodDelete:
			if err := svc.DeleteItem(r.Context(), id); err != nil {
				writeServiceError(w, logger, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			methodNotAllowed(w)
		}
	}
}
