package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Box.
const (
	BoxStatusAvailable   = "DISPONIBLE"
	BoxStatusInUse       = "EN_USO"
	BoxStatusMaintenance = "EN_MANTENCION"
	BoxStatusRetired     = "DADA_DE_BAJA"
)

// Tipos de ítem de catálogo guardados en una caja.
const (
	CatalogEquipment = "EQUIPO"
	CatalogMaterial  = "MATERIAL"
	CatalogSparePart = "REPUESTO"
)

// Box contenedor trazable con ubicación, estado y peso.
type Box struct {
	ID            string
	QRCode        string
	Name          string
	Description   string
	Status        string
	WarehouseID   string
	WarehouseName string
	WeightKg      decimal.Decimal
	IsActive      bool
	Equipments    []BoxItem
	Materials     []BoxItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BoxItem producto del catálogo (equipo, material o repuesto) dentro de una caja.
type BoxItem struct {
	ID        string
	ProductID string
	Name      string
	Kind      string
	Quantity  decimal.Decimal
	WeightKg  decimal.Decimal
}

// BoxHistoryEntry movimiento o cambio de estado de una caja.
type BoxHistoryEntry struct {
	ID              string
	BoxID           string
	Action          string
	FromWarehouseID string
	ToWarehouseID   string
	PreviousStatus  string
	NewStatus       string
	PerformedBy     string
	CreatedAt       time.Time
	Details         json.RawMessage
}

// ValidBoxStatus informa si s es un estado conocido.
func ValidBoxStatus(s string) bool {
	switch s {
	case BoxStatusAvailable, BoxStatusInUse, BoxStatusMaintenance, BoxStatusRetired:
		return true
	}
	return false
}
