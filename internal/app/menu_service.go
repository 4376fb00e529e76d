package app

import (
	"context"
	"strings"

	"github.com/reservaya/api/internal/domain"
)

type MenuRepository interface {
	Create(ctx context.Context, it domain.MenuItem) (domain.MenuItem, error)
	Get(ctx context.Context, id int) (domain.MenuItem, error)
	List(ctx context.Context) ([]domain.MenuItem, error)
	Update(ctx context.Context, it domain.MenuItem) error
	Delete(ctx context.Context, id int) error
}

// MenuService is the operator side of the menu. Customers read the same
// repository through the catalog.
type MenuService struct {
	repo MenuRepository
}

func NewMenuService(repo MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

type CreateMenuItemInput struct {
	Nombre      string
	Descripcion string
	Precio      float64
	Categoria   string
	Imagen      string
}

// CreateItem adds an item. New items start in stock.
func (s *MenuService) CreateItem(ctx context.Context, in CreateMenuItemInput) (domain.MenuItem, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return domain.MenuItem{}, domain.NewValidationError("nombre", "is required")
	}
	if strings.TrimSpace(in.Categoria) == "" {
		return domain.MenuItem{}, domain.NewValidationError("categoria", "is required")
	}
	if in.Precio < 0 {
		return domain.MenuItem{}, domain.NewValidationError("precio", "must not be negative")
	}

	return s.repo.Create(ctx, domain.MenuItem{
		Name:        strings.TrimSpace(in.Nombre),
		Description: in.Descripcion,
		Price:       in.Precio,
		Category:    strings.TrimSpace(in.Categoria),
		Image:       in.Imagen,
		InStock:     true,
	})
}

func (s *MenuService) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.List(ctx)
}

type UpdateMenuItemInput struct {
	Nombre      *string
	Descripcion *string
	Precio      *float64
	Categoria   *string
	Imagen      *string
}

func (s *MenuService) UpdateItem(ctx context.Context, id int, in UpdateMenuItemInput) (domain.MenuItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.MenuItem{}, err
	}
	if in.Nombre != nil {
		if strings.TrimSpace(*in.Nombre) == "" {
			return domain.MenuItem{}, domain.NewValidationError("nombre", "must not be empty")
		}
		item.Name = strings.TrimSpace(*in.Nombre)
	}
	if in.Categoria != nil {
		if strings.TrimSpace(*in.Categoria) == "" {
			return domain.MenuItem{}, domain.NewValidationError("categoria", "must not be empty")
		}
		item.Category = strings.TrimSpace(*in.Categoria)
	}
	if in.Precio != nil {
		if *in.Precio < 0 {
			return domain.MenuItem{}, domain.NewValidationError("precio", "must not be negative")
		}
		item.Price = *in.Precio
	}
	if in.Descripcion != nil {
		item.Description = *in.Descripcion
	}
	if in.Imagen != nil {
		item.Image = *in.Imagen
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return domain.MenuItem{}, err
	}
	return item, nil
}

func (s *MenuService) SetStock(ctx context.Context, id int, inStock bool) (domain.MenuItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.MenuItem{}, err
	}
	item.InStock = inStock
	if err := s.repo.Update(ctx, item); err != nil {
		return domain.MenuItem{}, err
	}
	return item, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
