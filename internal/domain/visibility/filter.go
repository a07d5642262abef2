// Package visibility decide qué áreas, bodegas y usuarios puede ver o asignar cada rol.
// Es puro: recibe el universo ya cargado y devuelve el subconjunto permitido.
package visibility

import (
	"github.com/jhoicas/Logistica-bff/internal/domain"
	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
)

// Actor usuario que actúa, con su rol ya resuelto y sus ids asignados.
type Actor struct {
	ID           string
	Role         role.Role
	AreaIDs      []string
	WarehouseIDs []string
}

// ActorFromUser construye el Actor a partir del perfil del usuario.
func ActorFromUser(u *entity.User) Actor {
	return Actor{ID: u.ID, Role: u.Role, AreaIDs: u.Areas, WarehouseIDs: u.Warehouses}
}

// Filter aplica las reglas de visibilidad para un Actor.
type Filter struct {
	actor      Actor
	areas      map[string]bool
	warehouses map[string]bool
}

// New construye el filtro.
func New(actor Actor) *Filter {
	return &Filter{actor: actor, areas: toSet(actor.AreaIDs), warehouses: toSet(actor.WarehouseIDs)}
}

// Actor devuelve el actor del filtro.
func (f *Filter) Actor() Actor { return f.actor }

// CanWrite ADMIN y JEFE pueden crear y editar; SUPERVISOR solo lee.
func (f *Filter) CanWrite() bool {
	return f.actor.Role.In(role.Admin, role.Jefe)
}

// CanManageArea informa si el actor puede actuar sobre el área (asignar jefes o bodegas).
func (f *Filter) CanManageArea(areaID string) bool {
	switch f.actor.Role {
	case role.Admin:
		return true
	case role.Jefe:
		return f.areas[areaID]
	default:
		return false
	}
}

// CanManageWarehouse informa si el actor puede asignar supervisores a la bodega.
func (f *Filter) CanManageWarehouse(w *entity.Warehouse) bool {
	switch f.actor.Role {
	case role.Admin:
		return true
	case role.Jefe:
		return w.AreaID != nil && f.areas[*w.AreaID]
	default:
		return false
	}
}

// CanAssignRole autoridad para crear/editar usuarios con el rol target.
// ADMIN cualquiera, JEFE solo SUPERVISOR, SUPERVISOR ninguno.
func (f *Filter) CanAssignRole(target role.Role) bool {
	switch f.actor.Role {
	case role.Admin:
		return target.Valid()
	case role.Jefe:
		return target == role.Supervisor
	default:
		return false
	}
}

// CheckRoleAssignment igual que CanAssignRole pero como error de dominio.
func (f *Filter) CheckRoleAssignment(target role.Role) error {
	if !f.CanAssignRole(target) {
		return domain.ErrRoleNotAllowed
	}
	return nil
}

// VisibleAreas áreas que el actor puede ver (lista plana).
// SUPERVISOR ve las áreas dueñas de sus bodegas, por eso necesita el universo de bodegas.
func (f *Filter) VisibleAreas(flat []entity.Area, warehouses []entity.Warehouse) []entity.Area {
	switch f.actor.Role {
	case role.Admin:
		return flat
	case role.Jefe:
		return filterAreas(flat, func(a *entity.Area) bool { return f.areas[a.ID] })
	case role.Supervisor:
		owners := make(map[string]bool)
		for i := range warehouses {
			if f.warehouses[warehouses[i].ID] && warehouses[i].AreaID != nil {
				owners[*warehouses[i].AreaID] = true
			}
		}
		return filterAreas(flat, func(a *entity.Area) bool { return owners[a.ID] })
	default:
		return []entity.Area{}
	}
}

// AssignableAreas áreas candidatas para asignar (a un jefe): visibles y activas.
func (f *Filter) AssignableAreas(flat []entity.Area) []entity.Area {
	switch f.actor.Role {
	case role.Admin:
		return filterAreas(flat, func(a *entity.Area) bool { return a.Active() })
	case role.Jefe:
		return filterAreas(flat, func(a *entity.Area) bool { return a.Active() && f.areas[a.ID] })
	default:
		return []entity.Area{}
	}
}

// VisibleWarehouses bodegas que el actor puede ver.
func (f *Filter) VisibleWarehouses(all []entity.Warehouse) []entity.Warehouse {
	switch f.actor.Role {
	case role.Admin:
		return all
	case role.Jefe:
		return filterWarehouses(all, func(w *entity.Warehouse) bool { return w.AreaID != nil && f.areas[*w.AreaID] })
	case role.Supervisor:
		return filterWarehouses(all, func(w *entity.Warehouse) bool { return f.warehouses[w.ID] })
	default:
		return []entity.Warehouse{}
	}
}

// AssignableWarehouses bodegas candidatas para asignar a un usuario editado.
// Para un JEFE el conjunto es el mismo acotado por sus áreas, también cuando el usuario
// editado es un SUPERVISOR que recibe bodegas directamente.
func (f *Filter) AssignableWarehouses(all []entity.Warehouse) []entity.Warehouse {
	switch f.actor.Role {
	case role.Admin:
		return filterWarehouses(all, func(w *entity.Warehouse) bool { return w.IsEnabled })
	case role.Jefe:
		return filterWarehouses(all, func(w *entity.Warehouse) bool {
			return w.IsEnabled && w.AreaID != nil && f.areas[*w.AreaID]
		})
	default:
		return []entity.Warehouse{}
	}
}

// WarehouseCandidatesForArea bodegas asignables que aún no pertenecen al área.
func (f *Filter) WarehouseCandidatesForArea(area *entity.Area, all []entity.Warehouse) ([]entity.Warehouse, error) {
	if !f.CanManageArea(area.ID) {
		return nil, domain.ErrForbidden
	}
	if !area.IsLeaf() {
		return nil, domain.ErrAreaNotLeaf
	}
	return filterWarehouses(f.AssignableWarehouses(all), func(w *entity.Warehouse) bool {
		return !w.BelongsTo(area.ID)
	}), nil
}

// CheckWarehouseCandidate valida una asignación bodega↔área puntual: área gestionable y
// hoja, bodega fuera del área y dentro de AssignableWarehouses del actor.
func (f *Filter) CheckWarehouseCandidate(area *entity.Area, w *entity.Warehouse) error {
	if !f.CanManageArea(area.ID) {
		return domain.ErrForbidden
	}
	if !area.IsLeaf() {
		return domain.ErrAreaNotLeaf
	}
	if w.BelongsTo(area.ID) {
		return domain.ErrAlreadyAssigned
	}
	if len(f.AssignableWarehouses([]entity.Warehouse{*w})) == 0 {
		return domain.ErrForbidden
	}
	return nil
}

// VisibleUsers usuarios que el actor puede listar.
// Para JEFE, all debe ser la unión de los miembros de sus áreas (ver MergeAreaMembers);
// visibleWarehouses es su conjunto de bodegas visibles.
func (f *Filter) VisibleUsers(all []entity.User, visibleWarehouses []entity.Warehouse) []entity.User {
	switch f.actor.Role {
	case role.Admin:
		return all
	case role.Jefe:
		scope := make(map[string]bool, len(visibleWarehouses))
		for i := range visibleWarehouses {
			scope[visibleWarehouses[i].ID] = true
		}
		return filterUsers(all, func(u *entity.User) bool {
			if u.Role != role.Supervisor {
				return false
			}
			for _, w := range u.Warehouses {
				if scope[w] {
					return true
				}
			}
			return false
		})
	default:
		return []entity.User{}
	}
}

// ManagerCandidates jefes que pueden asignarse al área: rol JEFE, HABILITADO y sin una
// asignación activa a esa misma área.
func (f *Filter) ManagerCandidates(areaID string, users []entity.User) ([]entity.User, error) {
	if !f.CanManageArea(areaID) {
		return nil, domain.ErrForbidden
	}
	return filterUsers(users, func(u *entity.User) bool {
		return f.CheckManagerCandidate(areaID, u) == nil
	}), nil
}

// CheckManagerCandidate valida una asignación jefe↔área puntual con la misma regla que
// ManagerCandidates. Un jefe ya asignado devuelve ErrAlreadyAssigned.
func (f *Filter) CheckManagerCandidate(areaID string, u *entity.User) error {
	if !f.CanManageArea(areaID) {
		return domain.ErrForbidden
	}
	if u.Role != role.Jefe || !u.Enabled() {
		return domain.ErrForbidden
	}
	if u.HasActiveAreaAssignment(areaID) {
		return domain.ErrAlreadyAssigned
	}
	return nil
}

// SupervisorCandidates supervisores habilitados que no supervisan ya la bodega.
// users debe ser el universo visible del actor.
func (f *Filter) SupervisorCandidates(w *entity.Warehouse, users []entity.User) ([]entity.User, error) {
	if !f.CanManageWarehouse(w) {
		return nil, domain.ErrForbidden
	}
	current := make(map[string]bool, len(w.Supervisors))
	for _, s := range w.Supervisors {
		current[s.ID] = true
	}
	return filterUsers(users, func(u *entity.User) bool {
		return u.Role == role.Supervisor && u.Enabled() && !current[u.ID]
	}), nil
}

// MergeAreaMembers une los miembros de cada área del jefe, se queda con los SUPERVISOR
// y elimina duplicados por id conservando el primer orden de aparición.
func MergeAreaMembers(perArea ...[]entity.User) []entity.User {
	seen := make(map[string]bool)
	out := make([]entity.User, 0)
	for _, list := range perArea {
		for _, u := range list {
			if u.Role != role.Supervisor || seen[u.ID] {
				continue
			}
			seen[u.ID] = true
			out = append(out, u)
		}
	}
	return out
}

func toSet(ids []string) map[string]bool {
	s := make(map[string]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

func filterAreas(in []entity.Area, keep func(*entity.Area) bool) []entity.Area {
	out := make([]entity.Area, 0, len(in))
	for i := range in {
		if keep(&in[i]) {
			out = append(out, in[i])
		}
	}
	return out
}

func filterWarehouses(in []entity.Warehouse, keep func(*entity.Warehouse) bool) []entity.Warehouse {
	out := make([]entity.Warehouse, 0, len(in))
	for i := range in {
		if keep(&in[i]) {
			out = append(out, in[i])
		}
	}
	return out
}

func filterUsers(in []entity.User, keep func(*entity.User) bool) []entity.User {
	out := make([]entity.User, 0, len(in))
	for i := range in {
		if keep(&in[i]) {
			out = append(out, in[i])
		}
	}
	return out
}
