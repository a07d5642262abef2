package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Warehouse.
const (
	WarehouseStatusActive   = "ACTIVA"
	WarehouseStatusInactive = "INACTIVA"
)

// Warehouse bodega física, opcionalmente perteneciente a un Area.
type Warehouse struct {
	ID            string
	Name          string
	CapacityKg    decimal.Decimal
	MaxCapacityKg decimal.Decimal
	Status        string
	IsEnabled     bool
	AreaID        *string
	AreaName      string
	Supervisors   []User // solo en el detalle
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BelongsTo informa si la bodega pertenece al área dada.
func (w *Warehouse) BelongsTo(areaID string) bool {
	return w.AreaID != nil && *w.AreaID == areaID
}

// AreaIDValue id del área o "" si no tiene.
func (w *Warehouse) AreaIDValue() string {
	if w.AreaID == nil {
		return ""
	}
	return *w.AreaID
}

// FreeCapacityKg capacidad disponible; nunca negativa.
func (w *Warehouse) FreeCapacityKg() decimal.Decimal {
	free := w.MaxCapacityKg.Sub(w.CapacityKg)
	if free.IsNegative() {
		return decimal.Zero
	}
	return free
}
