package dto

import "time"

// CreateUserRequest entrada para crear un usuario. Areas aplica a JEFE y Warehouses a SUPERVISOR;
// se asignan en lote después de crear el usuario.
type CreateUserRequest struct {
	Name       string   `json:"name" validate:"required,min=1,max=100"`
	LastName   string   `json:"lastName" validate:"max=100"`
	Email      string   `json:"email" validate:"required,email"`
	RUT        string   `json:"rut" validate:"required"`
	Phone      string   `json:"phone"`
	Password   string   `json:"password" validate:"required,min=6"`
	Role       string   `json:"role" validate:"required"`
	Areas      []string `json:"areas"`
	Warehouses []string `json:"warehouses"`
}

// UpdateUserRequest entrada para actualizar un usuario. Areas/Warehouses nil no tocan
// las asignaciones; una lista vacía las revoca todas.
type UpdateUserRequest struct {
	Name       *string  `json:"name" validate:"omitempty,min=1,max=100"`
	LastName   *string  `json:"lastName"`
	Email      *string  `json:"email" validate:"omitempty,email"`
	RUT        *string  `json:"rut"`
	Phone      *string  `json:"phone"`
	Role       *string  `json:"role"`
	Areas      []string `json:"areas"`
	Warehouses []string `json:"warehouses"`
}

// UpdateAssignmentsRequest asignaciones deseadas para un usuario.
type UpdateAssignmentsRequest struct {
	Areas      []string `json:"areas"`
	Warehouses []string `json:"warehouses"`
}

// ToggleStatusRequest motivo del cambio de estado.
type ToggleStatusRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// AssignmentResponse fila de una relación de asignación.
type AssignmentResponse struct {
	ID         string     `json:"id"`
	TargetID   string     `json:"targetId"`
	AssignedBy string     `json:"assignedBy,omitempty"`
	AssignedAt time.Time  `json:"assignedAt"`
	RevokedAt  *time.Time `json:"revokedAt"`
	IsActive   bool       `json:"isActive"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID                   string               `json:"id"`
	Name                 string               `json:"name"`
	LastName             string               `json:"lastName"`
	FullName             string               `json:"fullName"`
	Email                string               `json:"email"`
	RUT                  string               `json:"rut"`
	Phone                string               `json:"phone,omitempty"`
	Role                 string               `json:"role"`
	Status               string               `json:"status"`
	Areas                []string             `json:"areas"`
	Warehouses           []string             `json:"warehouses"`
	AreaAssignments      []AssignmentResponse `json:"areaAssignments,omitempty"`
	WarehouseAssignments []AssignmentResponse `json:"warehouseAssignments,omitempty"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

// UserWriteResponse usuario creado o editado más el lote de asignaciones, si hubo.
type UserWriteResponse struct {
	User        UserResponse   `json:"user"`
	Assignments *BatchResponse `json:"assignments,omitempty"`
}

// UniqueResponse resultado de validar RUT y email.
type UniqueResponse struct {
	RUTExists   bool `json:"rutExists"`
	EmailExists bool `json:"emailExists"`
}

// AssignmentHistoryResponse entrada del historial de asignaciones.
type AssignmentHistoryResponse struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	TargetID   string     `json:"targetId"`
	TargetName string     `json:"targetName"`
	AssignedBy string     `json:"assignedBy,omitempty"`
	AssignedAt time.Time  `json:"assignedAt"`
	RevokedAt  *time.Time `json:"revokedAt"`
	IsActive   bool       `json:"isActive"`
}

// EnablementHistoryResponse cambio de estado de un usuario.
type EnablementHistoryResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	UserName       string    `json:"userName,omitempty"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	Reason         string    `json:"reason,omitempty"`
	ChangedBy      string    `json:"changedBy,omitempty"`
	ChangedAt      time.Time `json:"changedAt"`
}
