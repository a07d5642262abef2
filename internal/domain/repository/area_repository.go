package repository

import (
	"context"

	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
)

// AreaWrite datos para crear o actualizar un área. Level se calcula antes de llegar aquí.
type AreaWrite struct {
	Name     string
	Level    int
	ParentID *string
	Status   string
	NodeType string
}

// AreaRepository puerto hacia el backend para Area y sus relaciones.
type AreaRepository interface {
	List(ctx context.Context) ([]entity.Area, error)
	GetByID(ctx context.Context, id string) (*entity.Area, error)
	Create(ctx context.Context, in AreaWrite) (*entity.Area, error)
	Update(ctx context.Context, id string, in AreaWrite) (*entity.Area, error)
	Delete(ctx context.Context, id string) error

	AssignManager(ctx context.Context, areaID, managerID string) (*entity.Assignment, error)
	RemoveManager(ctx context.Context, areaID, managerID string) (*entity.Assignment, error)
	AssignWarehouse(ctx context.Context, areaID, warehouseID string) (*entity.Warehouse, error)
	RemoveWarehouse(ctx context.Context, areaID, warehouseID string) (*entity.Warehouse, error)
}
