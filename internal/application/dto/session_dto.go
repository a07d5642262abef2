package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfileResponse perfil del usuario autenticado con su alcance operativo.
type ProfileResponse struct {
	User     UserResponse `json:"user"`
	CanWrite bool         `json:"canWrite"`
	// AssignableRoles roles que el usuario puede asignar al crear o editar usuarios.
	AssignableRoles []string `json:"assignableRoles"`
}

// SessionStatusResponse estado de la sesión en el BFF.
type SessionStatusResponse struct {
	Active        bool      `json:"active"`
	Redirecting   bool      `json:"redirecting"`
	Role          string    `json:"role,omitempty"`
	InitializedAt time.Time `json:"initializedAt,omitempty"`
	RedirectTo    string    `json:"redirectTo,omitempty"`
}

// DashboardResponse resumen del alcance visible para el rol que consulta.
type DashboardResponse struct {
	Role                  string          `json:"role"`
	Areas                 int             `json:"areas"`
	ActiveAreas           int             `json:"activeAreas"`
	Warehouses            int             `json:"warehouses"`
	EnabledWarehouses     int             `json:"enabledWarehouses"`
	WarehousesWithoutArea int             `json:"warehousesWithoutArea"`
	Users                 int             `json:"users"`
	EnabledUsers          int             `json:"enabledUsers"`
	UsedCapacityKg        decimal.Decimal `json:"usedCapacityKg"`
	MaxCapacityKg         decimal.Decimal `json:"maxCapacityKg"`
	GeneratedAt           time.Time       `json:"generatedAt"`
}
