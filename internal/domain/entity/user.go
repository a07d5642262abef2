package entity

import (
	"time"

	"github.com/jhoicas/Logistica-bff/internal/domain/role"
)

// Estados de User.
const (
	UserStatusEnabled  = "HABILITADO"
	UserStatusDisabled = "DESHABILITADO"
)

// User usuario del panel. Areas es relevante solo para JEFE y Warehouses solo para SUPERVISOR;
// un ADMIN no tiene restricción por área ni bodega.
type User struct {
	ID                   string
	Name                 string
	LastName             string
	Email                string
	RUT                  string
	Phone                string
	Role                 role.Role
	Status               string
	Areas                []string
	Warehouses           []string
	AreaAssignments      []Assignment
	WarehouseAssignments []Assignment
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// FullName nombre y apellido.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.Name
	}
	return u.Name + " " + u.LastName
}

// Enabled informa si el usuario está HABILITADO.
func (u *User) Enabled() bool {
	return u.Status == UserStatusEnabled
}

// HasActiveAreaAssignment informa si el usuario tiene una asignación activa al área.
func (u *User) HasActiveAreaAssignment(areaID string) bool {
	for _, a := range u.AreaAssignments {
		if a.TargetID == areaID && a.IsActive {
			return true
		}
	}
	return false
}

// ToggledStatus estado opuesto al actual.
func (u *User) ToggledStatus() string {
	if u.Enabled() {
		return UserStatusDisabled
	}
	return UserStatusEnabled
}
