package app

import (
	"context"
	"strings"

	"github.com/reservaya/api/internal/clock"
	"github.com/reservaya/api/internal/domain"
)

type TableRepository interface {
	Create(ctx context.Context, t domain.Table) error
	Get(ctx context.Context, id string) (domain.Table, error)
	List(ctx context.Context) ([]domain.Table, error)
	Update(ctx context.Context, t domain.Table) error
	Delete(ctx context.Context, id string) error
}

type TableService struct {
	repo  TableRepository
	clock clock.Clock
}

func NewTableService(repo TableRepository, clk clock.Clock) *TableService {
	return &TableService{
		repo:  repo,
		clock: clk,
	}
}

type CreateTableInput struct {
	Nombre    string
	Numero    int
	Capacidad int
}

func (s *TableService) CreateTable(ctx context.Context, in CreateTableInput) (domain.Table, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return domain.Table{}, domain.NewValidationError("nombre", "is required")
	}
	if in.Numero <= 0 {
		return domain.Table{}, domain.NewValidationError("numero", "must be positive")
	}
	if in.Capacidad <= 0 {
		return domain.Table{}, domain.NewValidationError("capacidad", "must be positive")
	}
	if err := s.ensureNumberFree(ctx, in.Numero, ""); err != nil {
		return domain.Table{}, err
	}

	table := domain.Table{
		ID:        newUUID(),
		Nombre:    in.Nombre,
		Numero:    in.Numero,
		Capacidad: in.Capacidad,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Create(ctx, table); err != nil {
		return domain.Table{}, err
	}
	return table, nil
}

func (s *TableService) ListTables(ctx context.Context) ([]domain.Table, error) {
	return s.repo.List(ctx)
}

type UpdateTableInput struct {
	Nombre    *string
	Numero    *int
	Capacidad *int
}

func (s *TableService) UpdateTable(ctx context.Context, id string, in UpdateTableInput) (domain.Table, error) {
	table, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Table{}, err
	}
	if in.Nombre != nil {
		if strings.TrimSpace(*in.Nombre) == "" {
			return domain.Table{}, domain.NewValidationError("nombre", "must not be empty")
		}
		table.Nombre = *in.Nombre
	}
	if in.Numero != nil {
		if *in.Numero <= 0 {
			return domain.Table{}, domain.NewValidationError("numero", "must be positive")
		}
		if *in.Numero != table.Numero {
			if err := s.ensureNumberFree(ctx, *in.Numero, id); err != nil {
				return domain.Table{}, err
			}
		}
		table.Numero = *in.Numero
	}
	if in.Capacidad != nil {
		if *in.Capacidad <= 0 {
			return domain.Table{}, domain.NewValidationError("capacidad", "must be positive")
		}
		table.Capacidad = *in.Capacidad
	}

	if err := s.repo.Update(ctx, table); err != nil {
		return domain.Table{}, err
	}
	return table, nil
}

func (s *TableService) SetBlocked(ctx context.Context, id string, blocked bool) (domain.Table, error) {
	table, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Table{}, err
	}
	table.EstaBloqueada = blocked
	if err := s.repo.Update(ctx, table); err != nil {
		return domain.Table{}, err
	}
	return table, nil
}

func (s *TableService) DeleteTable(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

func (s *TableService) ensureNumberFree(ctx context.Context, numero int, excludeID string) error {
	tables, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, t := range tables {
		if t.Numero == numero && t.ID != excludeID {
			return domain.ErrTableNumberTaken
		}
	}
	return nil
}
