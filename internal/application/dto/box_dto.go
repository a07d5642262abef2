package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateBoxRequest entrada para crear una caja.
type CreateBoxRequest struct {
	QRCode      string          `json:"qrCode" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	WarehouseID string          `json:"warehouseId" validate:"required"`
	WeightKg    decimal.Decimal `json:"weightKg"`
}

// UpdateBoxRequest entrada para actualizar una caja.
type UpdateBoxRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	WeightKg    *decimal.Decimal `json:"weightKg"`
}

// MoveBoxRequest traslado de una caja a otra bodega.
type MoveBoxRequest struct {
	WarehouseID string `json:"warehouseId" validate:"required"`
	Reason      string `json:"reason"`
}

// ChangeBoxStatusRequest cambio de estado de una caja.
type ChangeBoxStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DISPONIBLE EN_USO EN_MANTENCION DADA_DE_BAJA"`
	Reason string `json:"reason"`
}

// ReasonRequest motivo de una operación.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// BoxItemRequest equipo o material a guardar en una caja.
type BoxItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// BoxItemResponse ítem dentro de una caja.
type BoxItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Quantity  decimal.Decimal `json:"quantity"`
	WeightKg  decimal.Decimal `json:"weightKg"`
}

// BoxResponse salida de una caja.
type BoxResponse struct {
	ID            string            `json:"id"`
	QRCode        string            `json:"qrCode"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Status        string            `json:"status"`
	WarehouseID   string            `json:"warehouseId"`
	WarehouseName string            `json:"warehouseName,omitempty"`
	WeightKg      decimal.Decimal   `json:"weightKg"`
	IsActive      bool              `json:"isActive"`
	Equipments    []BoxItemResponse `json:"equipments"`
	Materials     []BoxItemResponse `json:"materials"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// BoxHistoryResponse movimiento o cambio de estado de una caja.
type BoxHistoryResponse struct {
	ID              string          `json:"id"`
	Action          string          `json:"action"`
	FromWarehouseID string          `json:"fromWarehouseId,omitempty"`
	ToWarehouseID   string          `json:"toWarehouseId,omitempty"`
	PreviousStatus  string          `json:"previousStatus,omitempty"`
	NewStatus       string          `json:"newStatus,omitempty"`
	PerformedBy     string          `json:"performedBy,omitempty"`
	Details         json.RawMessage `json:"details,omitempty" swaggertype:"object"`
	CreatedAt       time.Time       `json:"createdAt"`
}
