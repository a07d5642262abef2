package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	CapacityKg    decimal.Decimal `json:"capacityKg"`
	MaxCapacityKg decimal.Decimal `json:"maxCapacityKg"`
	IsEnabled     *bool           `json:"isEnabled"`
	AreaID        *string         `json:"areaId"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	CapacityKg    *decimal.Decimal `json:"capacityKg"`
	MaxCapacityKg *decimal.Decimal `json:"maxCapacityKg"`
	IsEnabled     *bool            `json:"isEnabled"`
	AreaID        *string          `json:"areaId"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CapacityKg     decimal.Decimal `json:"capacityKg"`
	MaxCapacityKg  decimal.Decimal `json:"maxCapacityKg"`
	FreeCapacityKg decimal.Decimal `json:"freeCapacityKg"`
	Status         string          `json:"status"`
	IsEnabled      bool            `json:"isEnabled"`
	AreaID         *string         `json:"areaId"`
	AreaName       string          `json:"areaName,omitempty"`
	Supervisors    []UserResponse  `json:"supervisors,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// AssignSupervisorRequest supervisor a asignar a una bodega.
type AssignSupervisorRequest struct {
	SupervisorID string `json:"supervisorId" validate:"required"`
}

// BulkSupervisorsRequest supervisores a agregar y quitar de una bodega en un lote.
type BulkSupervisorsRequest struct {
	Add    []string `json:"add"`
	Remove []string `json:"remove"`
}
