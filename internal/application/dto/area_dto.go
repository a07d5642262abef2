package dto

import "time"

// CreateAreaRequest entrada para crear un área. El nivel se calcula a partir del padre.
type CreateAreaRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=120"`
	ParentID *string `json:"parentId"`
	Status   string  `json:"status" validate:"omitempty,oneof=ACTIVO INACTIVO"`
}

// UpdateAreaRequest entrada para actualizar un área.
type UpdateAreaRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=120"`
	ParentID *string `json:"parentId"`
	Status   *string `json:"status" validate:"omitempty,oneof=ACTIVO INACTIVO"`
}

// AreaResponse salida de un área. Children solo en la vista de árbol;
// Managers y Warehouses solo en el detalle.
type AreaResponse struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Level           int                 `json:"level"`
	ParentID        *string             `json:"parentId"`
	Status          string              `json:"status"`
	NodeType        string              `json:"nodeType"`
	IsLeaf          bool                `json:"isLeaf"`
	ManagersCount   int                 `json:"managersCount"`
	WarehousesCount int                 `json:"warehousesCount"`
	SubAreasCount   int                 `json:"subAreasCount"`
	Children        []AreaResponse      `json:"children,omitempty"`
	Managers        []UserResponse      `json:"managers,omitempty"`
	Warehouses      []WarehouseResponse `json:"warehouses,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// AreaListResponse áreas visibles en árbol y en lista plana.
type AreaListResponse struct {
	Tree  []AreaResponse `json:"tree"`
	Items []AreaResponse `json:"items"`
	Total int            `json:"total"`
}

// AssignManagerRequest jefe a asignar a un área.
type AssignManagerRequest struct {
	ManagerID string `json:"managerId" validate:"required"`
}

// AssignWarehouseRequest bodega a asignar a un área.
type AssignWarehouseRequest struct {
	WarehouseID string `json:"warehouseId" validate:"required"`
}
