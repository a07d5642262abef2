package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Logistica-bff/internal/application/assignment"
	"github.com/jhoicas/Logistica-bff/internal/application/cachesync"
	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/domain"
	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
	"github.com/jhoicas/Logistica-bff/internal/domain/visibility"
	"github.com/jhoicas/Logistica-bff/pkg/textnorm"
)

// WarehouseFilter filtros del listado de bodegas.
type WarehouseFilter struct {
	Search      string
	AreaID      string
	OnlyEnabled bool
}

// WarehouseUseCase casos de uso de bodegas y sus supervisores.
type WarehouseUseCase struct {
	catalog *Catalog
	repo    repository.WarehouseRepository
	assign  *assignment.UseCase
	sync    *cachesync.Synchronizer
	log     zerolog.Logger
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(catalog *Catalog, repo repository.WarehouseRepository, assign *assignment.UseCase, sync *cachesync.Synchronizer, log zerolog.Logger) *WarehouseUseCase {
	return &WarehouseUseCase{catalog: catalog, repo: repo, assign: assign, sync: sync, log: log}
}

// List bodegas visibles para el actor.
func (uc *WarehouseUseCase) List(ctx context.Context, actor visibility.Actor, f WarehouseFilter) ([]dto.WarehouseResponse, error) {
	s, err := uc.catalog.Scope(ctx, actor)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Warehouse, 0, len(s.Warehouses))
	for _, w := range s.Warehouses {
		if f.AreaID != "" && !w.BelongsTo(f.AreaID) {
			continue
		}
		if f.OnlyEnabled && !w.IsEnabled {
			continue
		}
		if !textnorm.Contains(w.Name, f.Search) && !textnorm.Contains(w.AreaName, f.Search) {
			continue
		}
		out = append(out, w)
	}
	return toWarehouseResponses(out), nil
}

// Get detalle de una bodega visible.
func (uc *WarehouseUseCase) Get(ctx context.Context, actor visibility.Actor, id string) (*dto.WarehouseResponse, error) {
	w, err := uc.visibleWarehouse(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := toWarehouseResponse(w)
	return &out, nil
}

func (uc *WarehouseUseCase) visibleWarehouse(ctx context.Context, actor visibility.Actor, id string) (*entity.Warehouse, error) {
	w, err := uc.catalog.Warehouse(ctx, id)
	if err != nil {
		return nil, degradeOne(uc.log, "warehouse", err)
	}
	if len(visibility.New(actor).VisibleWarehouses([]entity.Warehouse{*w})) == 0 {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

// Create crea una bodega. Un JEFE solo puede crearla dentro de una de sus áreas.
func (uc *WarehouseUseCase) Create(ctx context.Context, actor visibility.Actor, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	f := visibility.New(actor)
	if !f.CanWrite() {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || in.CapacityKg.IsNegative() || in.MaxCapacityKg.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	areaID := normalizeID(in.AreaID)
	if actor.Role != role.Admin && (areaID == nil || !f.CanManageArea(*areaID)) {
		return nil, domain.ErrForbidden
	}
	if err := uc.checkLeaf(ctx, areaID); err != nil {
		return nil, err
	}
	enabled := true
	if in.IsEnabled != nil {
		enabled = *in.IsEnabled
	}

	w, err := uc.repo.Create(ctx, repository.WarehouseWrite{
		Name:          name,
		CapacityKg:    in.CapacityKg,
		MaxCapacityKg: in.MaxCapacityKg,
		IsEnabled:     enabled,
		AreaID:        areaID,
	})
	t := cachesync.Target{AreaID: deref(areaID)}
	if w != nil {
		t.WarehouseID = w.ID
	}
	uc.sync.Commit(ctx, actor.ID, cachesync.CreateWarehouse, t, err)
	if err != nil {
		return nil, err
	}
	out := toWarehouseResponse(w)
	return &out, nil
}

// Update edita una bodega visible. Mover la bodega de área exige autoridad sobre ambas.
func (uc *WarehouseUseCase) Update(ctx context.Context, actor visibility.Actor, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	f := visibility.New(actor)
	if !f.CanWrite() {
		return nil, domain.ErrForbidden
	}
	current, err := uc.visibleWarehouse(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !f.CanManageWarehouse(current) {
		return nil, domain.ErrForbidden
	}
	w := repository.WarehouseWrite{
		Name:          current.Name,
		CapacityKg:    current.CapacityKg,
		MaxCapacityKg: current.MaxCapacityKg,
		IsEnabled:     current.IsEnabled,
		AreaID:        current.AreaID,
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		w.Name = strings.TrimSpace(*in.Name)
	}
	if in.CapacityKg != nil {
		w.CapacityKg = *in.CapacityKg
	}
	if in.MaxCapacityKg != nil {
		w.MaxCapacityKg = *in.MaxCapacityKg
	}
	if w.CapacityKg.IsNegative() || w.MaxCapacityKg.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.IsEnabled != nil {
		w.IsEnabled = *in.IsEnabled
	}
	if in.AreaID != nil {
		w.AreaID = normalizeID(in.AreaID)
		if actor.Role != role.Admin && (w.AreaID == nil || !f.CanManageArea(*w.AreaID)) {
			return nil, domain.ErrForbidden
		}
		if deref(w.AreaID) != current.AreaIDValue() {
			if err := uc.checkLeaf(ctx, w.AreaID); err != nil {
				return nil, err
			}
		}
	}

	updated, err := uc.repo.Update(ctx, id, w)
	uc.sync.Commit(ctx, actor.ID, cachesync.UpdateWarehouse, cachesync.Target{
		WarehouseID:    id,
		AreaID:         deref(w.AreaID),
		PreviousAreaID: current.AreaIDValue(),
	}, err)
	if err != nil {
		return nil, err
	}
	out := toWarehouseResponse(updated)
	return &out, nil
}

// checkLeaf exige que el área de destino, si la hay, sea hoja.
func (uc *WarehouseUseCase) checkLeaf(ctx context.Context, areaID *string) error {
	if areaID == nil {
		return nil
	}
	a, err := uc.catalog.Area(ctx, *areaID)
	if err != nil {
		return err
	}
	if !a.IsLeaf() {
		return domain.ErrAreaNotLeaf
	}
	return nil
}

// Supervisors supervisores de una bodega visible.
func (uc *WarehouseUseCase) Supervisors(ctx context.Context, actor visibility.Actor, id string) ([]dto.UserResponse, error) {
	if _, err := uc.visibleWarehouse(ctx, actor, id); err != nil {
		return nil, err
	}
	key := uc.sync.Keys().WarehouseSupervisors(id)
	users, err := cachesync.Fetch(ctx, uc.sync, key, func(ctx context.Context) ([]entity.User, error) {
		return uc.repo.ListSupervisors(ctx, id)
	})
	if err != nil {
		if users, err = degradeList[entity.User](uc.log, "warehouse-supervisors", err); err != nil {
			return nil, err
		}
	}
	return toUserResponses(users), nil
}

// SupervisorCandidates supervisores habilitados que aún no supervisan la bodega. Para un
// JEFE el universo son los miembros de sus áreas, incluidos los que no tienen bodegas.
func (uc *WarehouseUseCase) SupervisorCandidates(ctx context.Context, actor visibility.Actor, id string) ([]dto.UserResponse, error) {
	w, err := uc.supervisedWarehouse(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	universe, err := uc.candidateUniverse(ctx, actor)
	if err != nil {
		return nil, err
	}
	out, err := visibility.New(actor).SupervisorCandidates(w, universe)
	if err != nil {
		return nil, err
	}
	return toUserResponses(out), nil
}

func (uc *WarehouseUseCase) candidateUniverse(ctx context.Context, actor visibility.Actor) ([]entity.User, error) {
	switch actor.Role {
	case role.Admin:
		users, err := uc.catalog.Users(ctx)
		if err != nil {
			return degradeList[entity.User](uc.log, "supervisor-candidates", err)
		}
		return users, nil
	case role.Jefe:
		return uc.catalog.AreaMembers(ctx, actor.AreaIDs)
	default:
		return []entity.User{}, nil
	}
}

// supervisedWarehouse detalle de la bodega con su lista de supervisores actual.
func (uc *WarehouseUseCase) supervisedWarehouse(ctx context.Context, actor visibility.Actor, id string) (*entity.Warehouse, error) {
	w, err := uc.visibleWarehouse(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if w.Supervisors != nil {
		return w, nil
	}
	key := uc.sync.Keys().WarehouseSupervisors(id)
	sups, err := cachesync.Fetch(ctx, uc.sync, key, func(ctx context.Context) ([]entity.User, error) {
		return uc.repo.ListSupervisors(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	cp := *w
	cp.Supervisors = sups
	return &cp, nil
}

// AssignSupervisor asigna un supervisor a la bodega.
func (uc *WarehouseUseCase) AssignSupervisor(ctx context.Context, actor visibility.Actor, id, supervisorID string) (*dto.AssignmentResponse, error) {
	w, err := uc.visibleWarehouse(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	a, err := uc.assign.AssignSupervisorToWarehouse(ctx, actor, id, supervisorID, w).Unwrap()
	if err != nil {
		return nil, err
	}
	return toAssignmentResponse(a), nil
}

// RemoveSupervisor revoca al supervisor de la bodega.
func (uc *WarehouseUseCase) RemoveSupervisor(ctx context.Context, actor visibility.Actor, id, supervisorID string) (*dto.AssignmentResponse, error) {
	w, err := uc.visibleWarehouse(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	a, err := uc.assign.RemoveSupervisorFromWarehouse(ctx, actor, id, supervisorID, w).Unwrap()
	if err != nil {
		return nil, err
	}
	return toAssignmentResponse(a), nil
}

// BulkSupervisors agrega y quita supervisores en un lote; un fallo no detiene al resto.
func (uc *WarehouseUseCase) BulkSupervisors(ctx context.Context, actor visibility.Actor, id string, in dto.BulkSupervisorsRequest) (*dto.BatchResponse, error) {
	w, err := uc.visibleWarehouse(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !visibility.New(actor).CanManageWarehouse(w) {
		return nil, domain.ErrForbidden
	}
	names := make(map[string]string)
	if universe, err := uc.candidateUniverse(ctx, actor); err == nil {
		for _, u := range universe {
			names[u.ID] = u.FullName()
		}
	}
	for _, u := range w.Supervisors {
		names[u.ID] = u.FullName()
	}
	items := func(ids []string) []assignment.Item {
		out := make([]assignment.Item, 0, len(ids))
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, assignment.Item{ID: id, Label: names[id]})
		}
		return out
	}
	report := uc.assign.BulkSupervisors(ctx, actor, w, items(in.Add), items(in.Remove))
	out := ToBatchResponse(report)
	return &out, nil
}
