// Package querykey construye las claves de la caché de consultas. Lecturas e invalidaciones
// usan las mismas funciones: una clave construida distinto en cada lado deja la caché obsoleta.
//
// Formato: tenant:tipo[:id][:filtro...]. Invalidar una clave invalida también todas las que
// la extienden (semántica de prefijo).
package querykey

import (
	"sort"
	"strings"
)

const sep = ":"

// Tipos de entidad cacheados.
const (
	KindAreas                 = "areas"
	KindArea                  = "area"
	KindUsers                 = "users"
	KindUser                  = "user"
	KindUsersByArea           = "users-by-area"
	KindWarehouses            = "warehouses"
	KindWarehouse             = "warehouse"
	KindWarehouseSupervisors  = "warehouse-supervisors"
	KindUserEnablementHistory = "user-enablement-history"
	KindEnablementHistory     = "enablement-history"
	KindAssignmentHistory     = "assignment-history"
	KindBoxes                 = "boxes"
	KindBox                   = "box"
	KindBoxQR                 = "box-qr"
	KindBoxHistory            = "box-history"
	KindAuditLogs             = "audit-logs"
	KindProfile               = "profile"
)

// Key clave jerárquica.
type Key []string

// String representación para el almacén.
func (k Key) String() string { return strings.Join(k, sep) }

// HasPrefix informa si k extiende (o es igual a) p.
func (k Key) HasPrefix(p Key) bool {
	if len(p) > len(k) {
		return false
	}
	for i := range p {
		if k[i] != p[i] {
			return false
		}
	}
	return true
}

// Builder construye claves para un tenant fijo.
type Builder struct {
	tenant string
}

// NewBuilder construye el builder.
func NewBuilder(tenant string) Builder { return Builder{tenant: tenant} }

// Tenant devuelve el tenant del builder.
func (b Builder) Tenant() string { return b.tenant }

func (b Builder) key(parts ...string) Key {
	return append(Key{b.tenant}, parts...)
}

// Kind clave raíz de un tipo; invalidarla invalida todas las claves de ese tipo.
func (b Builder) Kind(kind string) Key { return b.key(kind) }

// Areas lista de todas las áreas.
func (b Builder) Areas() Key { return b.key(KindAreas) }

// Area detalle de un área.
func (b Builder) Area(id string) Key { return b.key(KindArea, id) }

// Users lista de usuarios; los filtros se agregan en orden estable.
func (b Builder) Users(filters map[string]string) Key {
	return append(b.key(KindUsers), encodeFilters(filters)...)
}

// User detalle de un usuario.
func (b Builder) User(id string) Key { return b.key(KindUser, id) }

// UsersByArea miembros de un área.
func (b Builder) UsersByArea(areaID string) Key { return b.key(KindUsersByArea, areaID) }

// Warehouses lista de bodegas.
func (b Builder) Warehouses(filters map[string]string) Key {
	return append(b.key(KindWarehouses), encodeFilters(filters)...)
}

// Warehouse detalle de una bodega.
func (b Builder) Warehouse(id string) Key { return b.key(KindWarehouse, id) }

// WarehouseSupervisors supervisores de una bodega.
func (b Builder) WarehouseSupervisors(id string) Key { return b.key(KindWarehouseSupervisors, id) }

// UserEnablementHistory historial de habilitación de un usuario.
func (b Builder) UserEnablementHistory(userID string) Key {
	return b.key(KindUserEnablementHistory, userID)
}

// EnablementHistory historial global de habilitación.
func (b Builder) EnablementHistory() Key { return b.key(KindEnablementHistory) }

// AssignmentHistory historial de asignaciones de un usuario.
func (b Builder) AssignmentHistory(userID string) Key { return b.key(KindAssignmentHistory, userID) }

// Boxes lista de cajas.
func (b Builder) Boxes(filters map[string]string) Key {
	return append(b.key(KindBoxes), encodeFilters(filters)...)
}

// Box detalle de una caja.
func (b Builder) Box(id string) Key { return b.key(KindBox, id) }

// BoxQR caja buscada por código QR.
func (b Builder) BoxQR(qr string) Key { return b.key(KindBoxQR, qr) }

// BoxHistory historial de una caja.
func (b Builder) BoxHistory(id string) Key { return b.key(KindBoxHistory, id) }

// AuditLogs listado de auditoría.
func (b Builder) AuditLogs(filters map[string]string) Key {
	return append(b.key(KindAuditLogs), encodeFilters(filters)...)
}

// Profile perfil del usuario de la sesión.
func (b Builder) Profile(userID string) Key { return b.key(KindProfile, userID) }

// encodeFilters omite valores vacíos y ordena por nombre para que el mismo filtro
// produzca siempre la misma clave.
func encodeFilters(filters map[string]string) []string {
	if len(filters) == 0 {
		return nil
	}
	names := make([]string, 0, len(filters))
	for k, v := range filters {
		if v != "" {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, k := range names {
		out = append(out, k+"="+filters[k])
	}
	return out
}
