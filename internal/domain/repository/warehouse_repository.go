package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
)

// WarehouseWrite datos para crear o actualizar una bodega.
type WarehouseWrite struct {
	Name          string
	CapacityKg    decimal.Decimal
	MaxCapacityKg decimal.Decimal
	IsEnabled     bool
	AreaID        *string
}

// WarehouseRepository puerto hacia el backend para Warehouse y sus supervisores.
type WarehouseRepository interface {
	List(ctx context.Context) ([]entity.Warehouse, error)
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Create(ctx context.Context, in WarehouseWrite) (*entity.Warehouse, error)
	Update(ctx context.Context, id string, in WarehouseWrite) (*entity.Warehouse, error)
	ListSupervisors(ctx context.Context, warehouseID string) ([]entity.User, error)

	AssignSupervisor(ctx context.Context, warehouseID, supervisorID string) (*entity.Assignment, error)
	RemoveSupervisor(ctx context.Context, warehouseID, supervisorID string) (*entity.Assignment, error)
}
