package usecase

import (
	"context"
	"errors"
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

// AreaUseCase áreas, sus jefes y sus bodegas.
type AreaUseCase struct {
	catalog *Catalog
	repo    repository.AreaRepository
	assign  *assignment.UseCase
	sync    *cachesync.Synchronizer
	log     zerolog.Logger
}

// NewAreaUseCase construye el caso de uso.
func NewAreaUseCase(catalog *Catalog, repo repository.AreaRepository, assign *assignment.UseCase, sync *cachesync.Synchronizer, log zerolog.Logger) *AreaUseCase {
	return &AreaUseCase{catalog: catalog, repo: repo, assign: assign, sync: sync, log: log}
}

// List áreas visibles en árbol y lista plana, opcionalmente filtradas por nombre.
func (uc *AreaUseCase) List(ctx context.Context, actor visibility.Actor, search string) (*dto.AreaListResponse, error) {
	s, err := uc.catalog.Scope(ctx, actor)
	if err != nil {
		return nil, err
	}
	visible := make(map[string]bool, len(s.Areas))
	items := make([]entity.Area, 0, len(s.Areas))
	for _, a := range s.Areas {
		if !textnorm.Contains(a.Name, search) {
			continue
		}
		visible[a.ID] = true
		items = append(items, a)
	}
	return &dto.AreaListResponse{
		Tree:  toAreaTree(s.Tree, visible),
		Items: toAreaResponses(items),
		Total: len(items),
	}, nil
}

// Get detalle de un área visible.
func (uc *AreaUseCase) Get(ctx context.Context, actor visibility.Actor, id string) (*dto.AreaResponse, error) {
	a, err := uc.visibleArea(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := toAreaResponse(a)
	return &out, nil
}

func (uc *AreaUseCase) visibleArea(ctx context.Context, actor visibility.Actor, id string) (*entity.Area, error) {
	if actor.Role != role.Admin {
		s, err := uc.catalog.Scope(ctx, actor)
		if err != nil {
			return nil, err
		}
		if !s.AreaVisible(id) {
			return nil, domain.ErrNotFound
		}
	}
	a, err := uc.catalog.Area(ctx, id)
	if err != nil {
		return nil, degradeOne(uc.log, "area", err)
	}
	return a, nil
}

// Create crea un área. El nivel y el tipo de nodo se derivan del padre. Solo ADMIN crea
// raíces; un JEFE puede crear sub-áreas bajo un área propia.
func (uc *AreaUseCase) Create(ctx context.Context, actor visibility.Actor, in dto.CreateAreaRequest) (*dto.AreaResponse, error) {
	f := visibility.New(actor)
	if !f.CanWrite() {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	parentID := normalizeID(in.ParentID)
	if parentID == nil && actor.Role != role.Admin {
		return nil, domain.ErrForbidden
	}
	var parent *entity.Area
	if parentID != nil {
		if !f.CanManageArea(*parentID) {
			return nil, domain.ErrForbidden
		}
		p, err := uc.catalog.Area(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		parent = p
	}
	status := in.Status
	if status == "" {
		status = entity.AreaStatusActive
	}

	a, err := uc.repo.Create(ctx, repository.AreaWrite{
		Name:     name,
		Level:    entity.LevelFor(parent),
		ParentID: parentID,
		Status:   status,
		NodeType: entity.NodeTypeFor(parent),
	})
	t := cachesync.Target{ParentAreaID: deref(parentID)}
	if a != nil {
		t.AreaID = a.ID
	}
	uc.sync.Commit(ctx, actor.ID, cachesync.CreateArea, t, err)
	if err != nil {
		return nil, err
	}
	out := toAreaResponse(a)
	return &out, nil
}

// Update edita un área. Cambiar el padre recalcula el nivel y rechaza ciclos.
func (uc *AreaUseCase) Update(ctx context.Context, actor visibility.Actor, id string, in dto.UpdateAreaRequest) (*dto.AreaResponse, error) {
	f := visibility.New(actor)
	if !f.CanWrite() || !f.CanManageArea(id) {
		return nil, domain.ErrForbidden
	}
	current, err := uc.catalog.Area(ctx, id)
	if err != nil {
		return nil, err
	}
	w := repository.AreaWrite{
		Name:     current.Name,
		Level:    current.Level,
		ParentID: current.ParentID,
		Status:   current.Status,
		NodeType: current.NodeType,
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		w.Name = strings.TrimSpace(*in.Name)
	}
	if in.Status != nil {
		w.Status = *in.Status
	}
	if in.ParentID != nil {
		if err := uc.reparent(ctx, actor, id, normalizeID(in.ParentID), &w); err != nil {
			return nil, err
		}
	}

	a, err := uc.repo.Update(ctx, id, w)
	uc.sync.Commit(ctx, actor.ID, cachesync.UpdateArea, cachesync.Target{
		AreaID:         id,
		ParentAreaID:   deref(w.ParentID),
		PreviousAreaID: deref(current.ParentID),
	}, err)
	if err != nil {
		return nil, err
	}
	out := toAreaResponse(a)
	return &out, nil
}

// reparent valida el nuevo padre contra el árbol y recalcula nivel y tipo de nodo.
func (uc *AreaUseCase) reparent(ctx context.Context, actor visibility.Actor, id string, parentID *string, w *repository.AreaWrite) error {
	if parentID == nil {
		if actor.Role != role.Admin {
			return domain.ErrForbidden
		}
		w.ParentID, w.Level, w.NodeType = nil, 0, entity.AreaNodeRoot
		return nil
	}
	if *parentID == id {
		return domain.ErrInvalidHierarchy
	}
	if !visibility.New(actor).CanManageArea(*parentID) {
		return domain.ErrForbidden
	}
	flat, err := uc.catalog.AreasFlat(ctx)
	if err != nil {
		return err
	}
	idx := entity.IndexAreas(flat)
	if isDescendant(idx, *parentID, id) {
		return domain.ErrInvalidHierarchy
	}
	parent := idx[*parentID]
	candidate := entity.Area{ID: id, ParentID: parentID, Level: entity.LevelFor(parent)}
	if err := candidate.ValidateHierarchy(idx); err != nil {
		return err
	}
	w.ParentID, w.Level, w.NodeType = parentID, candidate.Level, entity.NodeTypeFor(parent)
	return nil
}

// isDescendant informa si node cuelga (directa o indirectamente) de ancestor.
func isDescendant(idx map[string]*entity.Area, node, ancestor string) bool {
	seen := make(map[string]bool)
	for cur, ok := idx[node]; ok && cur.ParentID != nil; cur, ok = idx[*cur.ParentID] {
		if *cur.ParentID == ancestor {
			return true
		}
		if seen[cur.ID] {
			return false
		}
		seen[cur.ID] = true
	}
	return false
}

// Delete elimina un área. Solo ADMIN.
func (uc *AreaUseCase) Delete(ctx context.Context, actor visibility.Actor, id string) error {
	if actor.Role != role.Admin {
		return domain.ErrForbidden
	}
	t := cachesync.Target{AreaID: id}
	if a, err := uc.catalog.Area(ctx, id); err == nil {
		t.ParentAreaID = deref(a.ParentID)
	}
	err := uc.repo.Delete(ctx, id)
	uc.sync.Commit(ctx, actor.ID, cachesync.DeleteArea, t, err)
	return err
}

// Managers jefes miembros del área.
func (uc *AreaUseCase) Managers(ctx context.Context, actor visibility.Actor, id string) ([]dto.UserResponse, error) {
	a, err := uc.visibleArea(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if len(a.Managers) > 0 {
		return toUserResponses(a.Managers), nil
	}
	members, err := uc.catalog.UsersByArea(ctx, id)
	if err != nil {
		members, err = degradeList[entity.User](uc.log, "area-managers", err)
		if err != nil {
			return nil, err
		}
	}
	out := make([]entity.User, 0, len(members))
	for _, u := range members {
		if u.Role == role.Jefe {
			out = append(out, u)
		}
	}
	return toUserResponses(out), nil
}

// Warehouses bodegas del área visibles para el actor.
func (uc *AreaUseCase) Warehouses(ctx context.Context, actor visibility.Actor, id string) ([]dto.WarehouseResponse, error) {
	s, err := uc.catalog.Scope(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !s.AreaVisible(id) {
		return nil, domain.ErrNotFound
	}
	out := make([]entity.Warehouse, 0)
	for _, w := range s.Warehouses {
		if w.BelongsTo(id) {
			out = append(out, w)
		}
	}
	return toWarehouseResponses(out), nil
}

// ManagerCandidates jefes habilitados que aún no están asignados al área.
func (uc *AreaUseCase) ManagerCandidates(ctx context.Context, actor visibility.Actor, id string) ([]dto.UserResponse, error) {
	users, err := uc.catalog.Users(ctx)
	if err != nil {
		if users, err = degradeList[entity.User](uc.log, "manager-candidates", err); err != nil {
			return nil, err
		}
	}
	out, err := visibility.New(actor).ManagerCandidates(id, users)
	if err != nil {
		return nil, err
	}
	return toUserResponses(out), nil
}

// WarehouseCandidates bodegas asignables a un área hoja.
func (uc *AreaUseCase) WarehouseCandidates(ctx context.Context, actor visibility.Actor, id string) ([]dto.WarehouseResponse, error) {
	a, err := uc.catalog.Area(ctx, id)
	if err != nil {
		return nil, degradeOne(uc.log, "warehouse-candidates", err)
	}
	all, err := uc.catalog.Warehouses(ctx)
	if err != nil {
		if all, err = degradeList[entity.Warehouse](uc.log, "warehouse-candidates", err); err != nil {
			return nil, err
		}
	}
	out, err := visibility.New(actor).WarehouseCandidatesForArea(a, all)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponses(out), nil
}

// AssignManager asigna un jefe al área. El jefe debe ser candidato según la misma regla
// que ManagerCandidates; si no, no se llama al backend.
func (uc *AreaUseCase) AssignManager(ctx context.Context, actor visibility.Actor, areaID, managerID string) (*dto.AssignmentResponse, error) {
	f := visibility.New(actor)
	if !f.CanManageArea(areaID) {
		return nil, domain.ErrForbidden
	}
	u, err := uc.catalog.User(ctx, managerID)
	if err != nil {
		return nil, degradeOne(uc.log, "assign-manager", err)
	}
	if err := f.CheckManagerCandidate(areaID, u); err != nil {
		return nil, err
	}
	a, err := uc.assign.AssignManagerToArea(ctx, actor, areaID, managerID).Unwrap()
	if err != nil {
		return nil, err
	}
	return toAssignmentResponse(a), nil
}

// RemoveManager revoca al jefe del área.
func (uc *AreaUseCase) RemoveManager(ctx context.Context, actor visibility.Actor, areaID, managerID string) (*dto.AssignmentResponse, error) {
	a, err := uc.assign.RemoveManagerFromArea(ctx, actor, areaID, managerID).Unwrap()
	if err != nil {
		return nil, err
	}
	return toAssignmentResponse(a), nil
}

// AssignWarehouse asigna una bodega a un área hoja. El área y la bodega se validan antes
// de cualquier POST: hoja, bodega dentro del alcance del actor y aún fuera del área.
func (uc *AreaUseCase) AssignWarehouse(ctx context.Context, actor visibility.Actor, areaID, warehouseID string) (*dto.WarehouseResponse, error) {
	f := visibility.New(actor)
	if !f.CanManageArea(areaID) {
		return nil, domain.ErrForbidden
	}
	area, err := uc.assignableArea(ctx, areaID)
	if err != nil {
		return nil, err
	}
	known, err := uc.catalog.Warehouse(ctx, warehouseID)
	if err != nil {
		return nil, degradeOne(uc.log, "assign-warehouse", err)
	}
	if err := f.CheckWarehouseCandidate(area, known); err != nil {
		return nil, err
	}
	w, err := uc.assign.AssignWarehouseToArea(ctx, actor, areaID, warehouseID, area).Unwrap()
	if err != nil {
		return nil, err
	}
	out := toWarehouseResponse(w)
	return &out, nil
}

// assignableArea detalle del área para la regla de hoja. Si el detalle no se puede leer
// se usa el árbol cacheado; sin ninguno de los dos la asignación se rechaza.
func (uc *AreaUseCase) assignableArea(ctx context.Context, areaID string) (*entity.Area, error) {
	a, err := uc.catalog.Area(ctx, areaID)
	if err == nil {
		return a, nil
	}
	if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	uc.log.Warn().Err(err).Str("area_id", areaID).Msg("detalle de área no disponible, se usa el árbol")
	flat, ferr := uc.catalog.AreasFlat(ctx)
	if ferr != nil {
		return nil, degradeOne(uc.log, "assign-warehouse", ferr)
	}
	for i := range flat {
		if flat[i].ID == areaID {
			return &flat[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// RemoveWarehouse desvincula la bodega del área.
func (uc *AreaUseCase) RemoveWarehouse(ctx context.Context, actor visibility.Actor, areaID, warehouseID string) (*dto.WarehouseResponse, error) {
	w, err := uc.assign.RemoveWarehouseFromArea(ctx, actor, areaID, warehouseID).Unwrap()
	if err != nil {
		return nil, err
	}
	out := toWarehouseResponse(w)
	return &out, nil
}

func toAssignmentResponse(a *entity.Assignment) *dto.AssignmentResponse {
	if a == nil {
		return &dto.AssignmentResponse{}
	}
	return &dto.AssignmentResponse{
		ID:         a.ID,
		TargetID:   a.TargetID,
		AssignedBy: a.AssignedBy,
		AssignedAt: a.AssignedAt,
		RevokedAt:  a.RevokedAt,
		IsActive:   a.IsActive,
	}
}

// normalizeID trata "" como ausente.
func normalizeID(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	v := strings.TrimSpace(*id)
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
