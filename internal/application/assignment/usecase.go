// Package assignment contiene las operaciones sobre relaciones de asignación
// (jefe↔área, bodega↔área, supervisor↔bodega). Cada operación hace exactamente una
// llamada al repositorio, sin reintentos ni cambios optimistas; tras un éxito la caché
// se invalida según la tabla de cachesync.
package assignment

import (
	"context"

	"github.com/jhoicas/Logistica-bff/internal/application/cachesync"
	"github.com/jhoicas/Logistica-bff/internal/domain"
	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
	"github.com/jhoicas/Logistica-bff/internal/domain/visibility"
)

// UseCase operaciones de asignación.
type UseCase struct {
	areas      repository.AreaRepository
	warehouses repository.WarehouseRepository
	sync       *cachesync.Synchronizer
}

// NewUseCase construye el caso de uso.
func NewUseCase(areas repository.AreaRepository, warehouses repository.WarehouseRepository, sync *cachesync.Synchronizer) *UseCase {
	return &UseCase{areas: areas, warehouses: warehouses, sync: sync}
}

// AssignManagerToArea asigna un jefe a un área.
func (uc *UseCase) AssignManagerToArea(ctx context.Context, actor visibility.Actor, areaID, managerID string) Result[*entity.Assignment] {
	if !visibility.New(actor).CanManageArea(areaID) {
		return Fail[*entity.Assignment](domain.ErrForbidden)
	}
	a, err := uc.areas.AssignManager(ctx, areaID, managerID)
	uc.sync.Commit(ctx, actor.ID, cachesync.AssignManagerToArea, cachesync.Target{AreaID: areaID, UserID: managerID}, err)
	if err != nil {
		return Fail[*entity.Assignment](err)
	}
	return Ok(a)
}

// RemoveManagerFromArea revoca la asignación activa del jefe en el área.
func (uc *UseCase) RemoveManagerFromArea(ctx context.Context, actor visibility.Actor, areaID, managerID string) Result[*entity.Assignment] {
	if !visibility.New(actor).CanManageArea(areaID) {
		return Fail[*entity.Assignment](domain.ErrForbidden)
	}
	a, err := uc.areas.RemoveManager(ctx, areaID, managerID)
	uc.sync.Commit(ctx, actor.ID, cachesync.RemoveManagerFromArea, cachesync.Target{AreaID: areaID, UserID: managerID}, err)
	if err != nil {
		return Fail[*entity.Assignment](err)
	}
	return Ok(a)
}

// AssignWarehouseToArea asigna una bodega a un área hoja. Si known no es nil y tiene
// sub-áreas se rechaza sin llamar al backend.
func (uc *UseCase) AssignWarehouseToArea(ctx context.Context, actor visibility.Actor, areaID, warehouseID string, known *entity.Area) Result[*entity.Warehouse] {
	if !visibility.New(actor).CanManageArea(areaID) {
		return Fail[*entity.Warehouse](domain.ErrForbidden)
	}
	if known != nil && !known.IsLeaf() {
		return Fail[*entity.Warehouse](domain.ErrAreaNotLeaf)
	}
	w, err := uc.areas.AssignWarehouse(ctx, areaID, warehouseID)
	uc.sync.Commit(ctx, actor.ID, cachesync.AssignWarehouseToArea, cachesync.Target{AreaID: areaID, WarehouseID: warehouseID}, err)
	if err != nil {
		return Fail[*entity.Warehouse](err)
	}
	return Ok(w)
}

// RemoveWarehouseFromArea desvincula la bodega del área.
func (uc *UseCase) RemoveWarehouseFromArea(ctx context.Context, actor visibility.Actor, areaID, warehouseID string) Result[*entity.Warehouse] {
	if !visibility.New(actor).CanManageArea(areaID) {
		return Fail[*entity.Warehouse](domain.ErrForbidden)
	}
	w, err := uc.areas.RemoveWarehouse(ctx, areaID, warehouseID)
	uc.sync.Commit(ctx, actor.ID, cachesync.RemoveWarehouseFromArea, cachesync.Target{AreaID: areaID, WarehouseID: warehouseID}, err)
	if err != nil {
		return Fail[*entity.Warehouse](err)
	}
	return Ok(w)
}

// AssignSupervisorToWarehouse asigna un supervisor a la bodega. known, si no es nil,
// se usa para el control de autoridad y para invalidar el detalle de su área.
func (uc *UseCase) AssignSupervisorToWarehouse(ctx context.Context, actor visibility.Actor, warehouseID, supervisorID string, known *entity.Warehouse) Result[*entity.Assignment] {
	if err := checkWarehouse(actor, warehouseID, known); err != nil {
		return Fail[*entity.Assignment](err)
	}
	a, err := uc.warehouses.AssignSupervisor(ctx, warehouseID, supervisorID)
	uc.sync.Commit(ctx, actor.ID, cachesync.AssignSupervisorToWarehouse, supervisorTarget(warehouseID, supervisorID, known), err)
	if err != nil {
		return Fail[*entity.Assignment](err)
	}
	return Ok(a)
}

// RemoveSupervisorFromWarehouse revoca la asignación activa del supervisor en la bodega.
func (uc *UseCase) RemoveSupervisorFromWarehouse(ctx context.Context, actor visibility.Actor, warehouseID, supervisorID string, known *entity.Warehouse) Result[*entity.Assignment] {
	if err := checkWarehouse(actor, warehouseID, known); err != nil {
		return Fail[*entity.Assignment](err)
	}
	a, err := uc.warehouses.RemoveSupervisor(ctx, warehouseID, supervisorID)
	uc.sync.Commit(ctx, actor.ID, cachesync.RemoveSupervisorFromWarehouse, supervisorTarget(warehouseID, supervisorID, known), err)
	if err != nil {
		return Fail[*entity.Assignment](err)
	}
	return Ok(a)
}

func checkWarehouse(actor visibility.Actor, warehouseID string, known *entity.Warehouse) error {
	f := visibility.New(actor)
	if !f.CanWrite() {
		return domain.ErrForbidden
	}
	if known != nil && known.ID == warehouseID && !f.CanManageWarehouse(known) {
		return domain.ErrForbidden
	}
	return nil
}

func supervisorTarget(warehouseID, supervisorID string, known *entity.Warehouse) cachesync.Target {
	t := cachesync.Target{WarehouseID: warehouseID, UserID: supervisorID}
	if known != nil {
		t.AreaID = known.AreaIDValue()
	}
	return t
}
