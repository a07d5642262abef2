package entity

import (
	"time"

	"github.com/jhoicas/Logistica-bff/internal/domain"
)

// Estados y tipos de nodo de Area.
const (
	AreaStatusActive   = "ACTIVO"
	AreaStatusInactive = "INACTIVO"

	AreaNodeRoot  = "ROOT"
	AreaNodeChild = "CHILD"
)

// Area unidad organizacional en un árbol. Nivel 0 es la raíz ("Principal").
// Los contadores vienen desnormalizados del backend.
type Area struct {
	ID              string
	Name            string
	Level           int
	ParentID        *string
	Status          string
	NodeType        string
	Children        []Area
	ManagersCount   int
	WarehousesCount int
	SubAreasCount   int
	Managers        []User      // solo en el detalle
	Warehouses      []Warehouse // solo en el detalle
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Active informa si el área está ACTIVO.
func (a *Area) Active() bool {
	return a.Status == AreaStatusActive
}

// IsLeaf es false si el área tiene hijos, ya sea en Children o en el contador del backend.
// Solo las hojas pueden recibir bodegas.
func (a *Area) IsLeaf() bool {
	return len(a.Children) == 0 && a.SubAreasCount == 0
}

// LevelFor calcula el nivel de un área nueva o editada: 0 sin padre, parent.Level+1 con padre.
func LevelFor(parent *Area) int {
	if parent == nil {
		return 0
	}
	return parent.Level + 1
}

// NodeTypeFor ROOT sin padre, CHILD con padre.
func NodeTypeFor(parent *Area) string {
	if parent == nil {
		return AreaNodeRoot
	}
	return AreaNodeChild
}

// ValidateHierarchy comprueba nivel y padre del área contra el índice de áreas por id.
func (a *Area) ValidateHierarchy(byID map[string]*Area) error {
	if a.ParentID == nil || *a.ParentID == "" {
		if a.Level != 0 {
			return domain.ErrInvalidHierarchy
		}
		return nil
	}
	parent, ok := byID[*a.ParentID]
	if !ok {
		return domain.ErrNotFound
	}
	if a.Level != parent.Level+1 {
		return domain.ErrInvalidHierarchy
	}
	return nil
}

// FlattenAreas recorre el árbol en preorden y devuelve cada área una sola vez.
// Las copias devueltas conservan Children para poder evaluar IsLeaf.
func FlattenAreas(roots []Area) []Area {
	out := make([]Area, 0, len(roots))
	seen := make(map[string]bool)
	var walk func(list []Area)
	walk = func(list []Area) {
		for _, a := range list {
			if seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			out = append(out, a)
			walk(a.Children)
		}
	}
	walk(roots)
	return out
}

// IndexAreas índice por id sobre una lista plana.
func IndexAreas(flat []Area) map[string]*Area {
	idx := make(map[string]*Area, len(flat))
	for i := range flat {
		idx[flat[i].ID] = &flat[i]
	}
	return idx
}
