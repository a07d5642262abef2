package backend

import (
	"context"
	"fmt"

	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
)

var _ repository.AreaRepository = (*AreaRepo)(nil)

// AreaRepo implementación del puerto AreaRepository sobre /areas.
type AreaRepo struct {
	c *Client
}

// NewAreaRepository construye el adaptador.
func NewAreaRepository(c *Client) *AreaRepo {
	return &AreaRepo{c: c}
}

// List devuelve el árbol de áreas (raíces con sus hijos).
func (r *AreaRepo) List(ctx context.Context) ([]entity.Area, error) {
	var out []areaDTO
	if err := r.c.get(ctx, "/areas", nil, &out); err != nil {
		return nil, fmt.Errorf("listar áreas: %w", err)
	}
	return areasToEntities(out), nil
}

// GetByID detalle con jefes y bodegas.
func (r *AreaRepo) GetByID(ctx context.Context, id string) (*entity.Area, error) {
	var out areaDTO
	if err := r.c.get(ctx, pathf("/areas/%s", id), nil, &out); err != nil {
		return nil, fmt.Errorf("obtener área: %w", err)
	}
	a := out.toEntity()
	return &a, nil
}

// Create crea un área.
func (r *AreaRepo) Create(ctx context.Context, in repository.AreaWrite) (*entity.Area, error) {
	var out areaDTO
	if err := r.c.post(ctx, "/areas", toAreaWrite(in), &out); err != nil {
		return nil, fmt.Errorf("crear área: %w", err)
	}
	a := out.toEntity()
	return &a, nil
}

// Update actualiza un área.
func (r *AreaRepo) Update(ctx context.Context, id string, in repository.AreaWrite) (*entity.Area, error) {
	var out areaDTO
	if err := r.c.put(ctx, pathf("/areas/%s", id), toAreaWrite(in), &out); err != nil {
		return nil, fmt.Errorf("actualizar área: %w", err)
	}
	a := out.toEntity()
	return &a, nil
}

// Delete elimina un área.
func (r *AreaRepo) Delete(ctx context.Context, id string) error {
	if err := r.c.delete(ctx, pathf("/areas/%s", id), nil); err != nil {
		return fmt.Errorf("eliminar área: %w", err)
	}
	return nil
}

// AssignManager asigna un jefe al área.
func (r *AreaRepo) AssignManager(ctx context.Context, areaID, managerID string) (*entity.Assignment, error) {
	var out assignmentDTO
	body := map[string]string{"managerId": managerID}
	if err := r.c.post(ctx, pathf("/areas/%s/managers", areaID), body, &out); err != nil {
		return nil, fmt.Errorf("asignar jefe: %w", err)
	}
	a := out.toEntity()
	return &a, nil
}

// RemoveManager revoca la asignación; el backend la marca inactiva con revokedAt.
func (r *AreaRepo) RemoveManager(ctx context.Context, areaID, managerID string) (*entity.Assignment, error) {
	var out assignmentDTO
	if err := r.c.delete(ctx, pathf("/areas/%s/managers/%s", areaID, managerID), &out); err != nil {
		return nil, fmt.Errorf("quitar jefe: %w", err)
	}
	a := out.toEntity()
	return &a, nil
}

// AssignWarehouse asigna una bodega al área.
func (r *AreaRepo) AssignWarehouse(ctx context.Context, areaID, warehouseID string) (*entity.Warehouse, error) {
	var out warehouseDTO
	body := map[string]string{"warehouseId": warehouseID}
	if err := r.c.post(ctx, pathf("/areas/%s/warehouses", areaID), body, &out); err != nil {
		return nil, fmt.Errorf("asignar bodega: %w", err)
	}
	w := out.toEntity()
	return &w, nil
}

// RemoveWarehouse desvincula la bodega del área.
func (r *AreaRepo) RemoveWarehouse(ctx context.Context, areaID, warehouseID string) (*entity.Warehouse, error) {
	var out warehouseDTO
	if err := r.c.delete(ctx, pathf("/areas/%s/warehouses/%s", areaID, warehouseID), &out); err != nil {
		return nil, fmt.Errorf("quitar bodega: %w", err)
	}
	w := out.toEntity()
	return &w, nil
}

func toAreaWrite(in repository.AreaWrite) areaWriteDTO {
	return areaWriteDTO{
		Name:     in.Name,
		Level:    in.Level,
		ParentID: in.ParentID,
		Status:   in.Status,
		NodeType: in.NodeType,
	}
}
