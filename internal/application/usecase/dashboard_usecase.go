package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/domain/visibility"
)

// DashboardUseCase resumen del alcance visible del actor.
//
// Fuente de datos: el mismo Scope que usan los listados, de modo que los contadores
// coinciden con lo que el panel muestra en cada vista.
type DashboardUseCase struct {
	catalog *Catalog
	now     func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(catalog *Catalog) *DashboardUseCase {
	return &DashboardUseCase{catalog: catalog, now: time.Now}
}

// Summary construye el resumen.
//
//  1. Scope (árbol de áreas y bodegas en paralelo) → áreas y bodegas visibles
//  2. VisibleUsers → usuarios visibles (vacío para SUPERVISOR)
//  3. Capacidad usada y máxima sumadas sobre las bodegas visibles
func (uc *DashboardUseCase) Summary(ctx context.Context, actor visibility.Actor) (*dto.DashboardResponse, error) {
	s, err := uc.catalog.Scope(ctx, actor)
	if err != nil {
		return nil, err
	}
	users, err := uc.catalog.VisibleUsers(ctx, s)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardResponse{
		Role:           actor.Role.String(),
		Areas:          len(s.Areas),
		Warehouses:     len(s.Warehouses),
		Users:          len(users),
		UsedCapacityKg: decimal.Zero,
		MaxCapacityKg:  decimal.Zero,
		GeneratedAt:    uc.now(),
	}
	for i := range s.Areas {
		if s.Areas[i].Active() {
			out.ActiveAreas++
		}
	}
	for i := range s.Warehouses {
		w := &s.Warehouses[i]
		if w.IsEnabled {
			out.EnabledWarehouses++
		}
		if w.AreaID == nil {
			out.WarehousesWithoutArea++
		}
		out.UsedCapacityKg = out.UsedCapacityKg.Add(w.CapacityKg)
		out.MaxCapacityKg = out.MaxCapacityKg.Add(w.MaxCapacityKg)
	}
	for i := range users {
		if users[i].Enabled() {
			out.EnabledUsers++
		}
	}
	return out, nil
}
