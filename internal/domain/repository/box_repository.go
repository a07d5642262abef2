package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
)

// BoxFilter filtros del listado de cajas.
type BoxFilter struct {
	WarehouseID string
	Status      string
	Search      string
}

// BoxWrite datos para crear o actualizar una caja.
type BoxWrite struct {
	QRCode      string
	Name        string
	Description string
	WarehouseID string
	WeightKg    decimal.Decimal
}

// BoxItemWrite equipo o material que se agrega a una caja.
type BoxItemWrite struct {
	ProductID string
	Quantity  decimal.Decimal
}

// BoxRepository puerto hacia el backend para Box.
type BoxRepository interface {
	List(ctx context.Context, f BoxFilter) ([]entity.Box, error)
	GetByID(ctx context.Context, id string) (*entity.Box, error)
	GetByQR(ctx context.Context, qrCode string) (*entity.Box, error)
	Create(ctx context.Context, in BoxWrite) (*entity.Box, error)
	Update(ctx context.Context, id string, in BoxWrite) (*entity.Box, error)
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, id, toWarehouseID, reason string) (*entity.Box, error)
	ChangeStatus(ctx context.Context, id, status, reason string) (*entity.Box, error)
	Deactivate(ctx context.Context, id, reason string) (*entity.Box, error)
	History(ctx context.Context, id string) ([]entity.BoxHistoryEntry, error)

	AddEquipment(ctx context.Context, boxID string, in BoxItemWrite) (*entity.Box, error)
	RemoveEquipment(ctx context.Context, boxID, equipmentID string) error
	AddMaterial(ctx context.Context, boxID string, in BoxItemWrite) (*entity.Box, error)
	RemoveMaterial(ctx context.Context, boxID, materialID string) error
}
