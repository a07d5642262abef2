package entity

import "time"

// Tipos de relación de asignación.
const (
	AssignmentKindArea      = "AREA"
	AssignmentKindWarehouse = "WAREHOUSE"
)

// Assignment fila de una relación muchos-a-muchos (jefe↔área, supervisor↔bodega).
// Quitar una asignación no la borra: pasa a IsActive=false con RevokedAt.
type Assignment struct {
	ID         string
	TargetID   string // areaId o warehouseId según la relación
	AssignedBy string
	AssignedAt time.Time
	RevokedAt  *time.Time
	IsActive   bool
}

// Revoked informa si la asignación fue revocada.
func (a Assignment) Revoked() bool {
	return !a.IsActive && a.RevokedAt != nil
}

// ActiveTargets proyecta el estado actual (ids con asignación activa) a partir del historial,
// conservando el orden de primera aparición.
func ActiveTargets(history []Assignment) []string {
	seen := make(map[string]bool, len(history))
	out := make([]string, 0, len(history))
	for _, a := range history {
		if !a.IsActive || seen[a.TargetID] {
			continue
		}
		seen[a.TargetID] = true
		out = append(out, a.TargetID)
	}
	return out
}

// AssignmentHistoryEntry entrada del historial de asignaciones de un usuario.
type AssignmentHistoryEntry struct {
	ID         string
	UserID     string
	Kind       string // AREA | WAREHOUSE
	TargetID   string
	TargetName string
	AssignedBy string
	AssignedAt time.Time
	RevokedAt  *time.Time
	IsActive   bool
}

// UserEnablementHistoryEntry cambio de estado HABILITADO/DESHABILITADO de un usuario.
type UserEnablementHistoryEntry struct {
	ID             string
	UserID         string
	UserName       string
	PreviousStatus string
	NewStatus      string
	Reason         string
	ChangedBy      string
	ChangedAt      time.Time
}
