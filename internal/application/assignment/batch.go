package assignment

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/visibility"
)

// DefaultParallelism sub-operaciones simultáneas de un lote.
const DefaultParallelism = 8

// Op sub-operación de un lote.
type Op struct {
	Label string
	Run   func(ctx context.Context) error
}

// Failure sub-operación fallida.
type Failure struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

// Report resultado agregado de un lote.
type Report struct {
	Succeeded []string  `json:"succeeded"`
	Failed    []Failure `json:"failed"`
}

// OK informa si no hubo fallos.
func (r Report) OK() bool { return len(r.Failed) == 0 }

// Total cantidad de sub-operaciones.
func (r Report) Total() int { return len(r.Succeeded) + len(r.Failed) }

// RunBatch ejecuta todas las operaciones en paralelo (hasta limit a la vez). Un fallo no
// cancela a las demás; el reporte conserva el orden de ops.
func RunBatch(ctx context.Context, limit int, ops []Op) Report {
	if limit <= 0 {
		limit = DefaultParallelism
	}
	errs := make([]error, len(ops))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, op := range ops {
		i, op := i, op
		g.Go(func() error {
			errs[i] = op.Run(ctx)
			return nil
		})
	}
	_ = g.Wait()

	r := Report{Succeeded: []string{}, Failed: []Failure{}}
	for i, op := range ops {
		if errs[i] != nil {
			r.Failed = append(r.Failed, Failure{Label: op.Label, Message: errs[i].Error()})
			continue
		}
		r.Succeeded = append(r.Succeeded, op.Label)
	}
	return r
}

// Item id con la etiqueta que aparece en el reporte (normalmente el nombre).
type Item struct {
	ID    string
	Label string
}

func (it Item) label() string {
	if it.Label != "" {
		return it.Label
	}
	return it.ID
}

// BulkSupervisors asigna y quita supervisores de una bodega en un solo lote.
func (uc *UseCase) BulkSupervisors(ctx context.Context, actor visibility.Actor, w *entity.Warehouse, add, remove []Item) Report {
	ops := make([]Op, 0, len(add)+len(remove))
	for _, it := range add {
		it := it
		ops = append(ops, Op{Label: it.label(), Run: func(ctx context.Context) error {
			_, err := uc.AssignSupervisorToWarehouse(ctx, actor, w.ID, it.ID, w).Unwrap()
			return err
		}})
	}
	for _, it := range remove {
		it := it
		ops = append(ops, Op{Label: it.label(), Run: func(ctx context.Context) error {
			_, err := uc.RemoveSupervisorFromWarehouse(ctx, actor, w.ID, it.ID, w).Unwrap()
			return err
		}})
	}
	return RunBatch(ctx, DefaultParallelism, ops)
}

// UserAssignmentPlan diferencias entre las asignaciones actuales de un usuario y las deseadas.
type UserAssignmentPlan struct {
	AddAreas         []string
	RemoveAreas      []string
	AddWarehouses    []string
	RemoveWarehouses []string
}

// Empty informa si no hay nada que cambiar.
func (p UserAssignmentPlan) Empty() bool {
	return len(p.AddAreas)+len(p.RemoveAreas)+len(p.AddWarehouses)+len(p.RemoveWarehouses) == 0
}

// PlanUserAssignments calcula el diff. Solo se consideran las áreas de un JEFE y las
// bodegas de un SUPERVISOR; desired nil deja esa dimensión sin cambios.
func PlanUserAssignments(u *entity.User, desiredAreas, desiredWarehouses []string) UserAssignmentPlan {
	var p UserAssignmentPlan
	if desiredAreas != nil {
		p.AddAreas, p.RemoveAreas = Diff(u.Areas, desiredAreas)
	}
	if desiredWarehouses != nil {
		p.AddWarehouses, p.RemoveWarehouses = Diff(u.Warehouses, desiredWarehouses)
	}
	return p
}

// Diff devuelve lo que hay que agregar y quitar para pasar de current a desired, ordenado.
func Diff(current, desired []string) (add, remove []string) {
	cur := make(map[string]bool, len(current))
	for _, id := range current {
		cur[id] = true
	}
	want := make(map[string]bool, len(desired))
	for _, id := range desired {
		if id == "" || want[id] {
			continue
		}
		want[id] = true
		if !cur[id] {
			add = append(add, id)
		}
	}
	for id := range cur {
		if !want[id] {
			remove = append(remove, id)
		}
	}
	sort.Strings(add)
	sort.Strings(remove)
	return add, remove
}

// ApplyUserAssignments ejecuta el plan como un lote. labels traduce ids a nombres para
// el reporte; warehouses permite el control de autoridad y la invalidación por área.
func (uc *UseCase) ApplyUserAssignments(ctx context.Context, actor visibility.Actor, userID string, p UserAssignmentPlan, labels map[string]string, warehouses map[string]*entity.Warehouse) Report {
	lbl := func(id string) string {
		if l, ok := labels[id]; ok && l != "" {
			return l
		}
		return id
	}
	ops := make([]Op, 0, 8)
	for _, id := range p.AddAreas {
		id := id
		ops = append(ops, Op{Label: lbl(id), Run: func(ctx context.Context) error {
			_, err := uc.AssignManagerToArea(ctx, actor, id, userID).Unwrap()
			return err
		}})
	}
	for _, id := range p.RemoveAreas {
		id := id
		ops = append(ops, Op{Label: lbl(id), Run: func(ctx context.Context) error {
			_, err := uc.RemoveManagerFromArea(ctx, actor, id, userID).Unwrap()
			return err
		}})
	}
	for _, id := range p.AddWarehouses {
		id := id
		ops = append(ops, Op{Label: lbl(id), Run: func(ctx context.Context) error {
			_, err := uc.AssignSupervisorToWarehouse(ctx, actor, id, userID, warehouses[id]).Unwrap()
			return err
		}})
	}
	for _, id := range p.RemoveWarehouses {
		id := id
		ops = append(ops, Op{Label: lbl(id), Run: func(ctx context.Context) error {
			_, err := uc.RemoveSupervisorFromWarehouse(ctx, actor, id, userID, warehouses[id]).Unwrap()
			return err
		}})
	}
	return RunBatch(ctx, DefaultParallelism, ops)
}
