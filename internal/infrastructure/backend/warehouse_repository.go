package backend

import (
	"context"
	"fmt"

	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre /warehouses.
type WarehouseRepo struct {
	c *Client
}

// NewWarehouseRepository construye el adaptador.
func NewWarehouseRepository(c *Client) *WarehouseRepo {
	return &WarehouseRepo{c: c}
}

// List todas las bodegas.
func (r *WarehouseRepo) List(ctx context.Context) ([]entity.Warehouse, error) {
	var out []warehouseDTO
	if err := r.c.get(ctx, "/warehouses", nil, &out); err != nil {
		return nil, fmt.Errorf("listar bodegas: %w", err)
	}
	return warehousesToEntities(out), nil
}

// GetByID detalle con supervisores.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	var out warehouseDTO
	if err := r.c.get(ctx, pathf("/warehouses/%s", id), nil, &out); err != nil {
		return nil, fmt.Errorf("obtener bodega: %w", err)
	}
	w := out.toEntity()
	return &w, nil
}

// Create crea una bodega.
func (r *WarehouseRepo) Create(ctx context.Context, in repository.WarehouseWrite) (*entity.Warehouse, error) {
	var out warehouseDTO
	if err := r.c.post(ctx, "/warehouses", toWarehouseWrite(in), &out); err != nil {
		return nil, fmt.Errorf("crear bodega: %w", err)
	}
	w := out.toEntity()
	return &w, nil
}

// Update actualiza una bodega.
func (r *WarehouseRepo) Update(ctx context.Context, id string, in repository.WarehouseWrite) (*entity.Warehouse, error) {
	var out warehouseDTO
	if err := r.c.put(ctx, pathf("/warehouses/%s", id), toWarehouseWrite(in), &out); err != nil {
		return nil, fmt.Errorf("actualizar bodega: %w", err)
	}
	w := out.toEntity()
	return &w, nil
}

// ListSupervisors supervisores activos de la bodega.
func (r *WarehouseRepo) ListSupervisors(ctx context.Context, warehouseID string) ([]entity.User, error) {
	var out []userDTO
	if err := r.c.get(ctx, pathf("/warehouses/%s/supervisors", warehouseID), nil, &out); err != nil {
		return nil, fmt.Errorf("listar supervisores: %w", err)
	}
	return usersToEntities(out), nil
}

// AssignSupervisor asigna un supervisor a la bodega.
func (r *WarehouseRepo) AssignSupervisor(ctx context.Context, warehouseID, supervisorID string) (*entity.Assignment, error) {
	var out assignmentDTO
	body := map[string]string{"supervisorId": supervisorID}
	if err := r.c.post(ctx, pathf("/warehouses/%s/supervisors", warehouseID), body, &out); err != nil {
		return nil, fmt.Errorf("asignar supervisor: %w", err)
	}
	a := out.toEntity()
	return &a, nil
}

// RemoveSupervisor revoca la asignación del supervisor.
func (r *WarehouseRepo) RemoveSupervisor(ctx context.Context, warehouseID, supervisorID string) (*entity.Assignment, error) {
	var out assignmentDTO
	if err := r.c.delete(ctx, pathf("/warehouses/%s/supervisors/%s", warehouseID, supervisorID), &out); err != nil {
		return nil, fmt.Errorf("quitar supervisor: %w", err)
	}
	a := out.toEntity()
	return &a, nil
}

func toWarehouseWrite(in repository.WarehouseWrite) warehouseWriteDTO {
	return warehouseWriteDTO{
		Name:          in.Name,
		CapacityKg:    in.CapacityKg,
		MaxCapacityKg: in.MaxCapacityKg,
		IsEnabled:     in.IsEnabled,
		AreaID:        in.AreaID,
	}
}
