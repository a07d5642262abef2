package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
	"github.com/jhoicas/Logistica-bff/internal/domain/visibility"
)

// memberFetchLimit lecturas simultáneas de miembros de área.
const memberFetchLimit = 4

// Scope universo cargado y su proyección visible para un actor.
type Scope struct {
	Filter        *visibility.Filter
	Tree          []entity.Area
	AllAreas      []entity.Area
	AllWarehouses []entity.Warehouse
	Areas         []entity.Area
	Warehouses    []entity.Warehouse

	areaSet      map[string]bool
	warehouseSet map[string]bool
}

// AreaVisible informa si el área está en el alcance del actor.
func (s *Scope) AreaVisible(id string) bool { return s.areaSet[id] }

// WarehouseVisible informa si la bodega está en el alcance del actor.
func (s *Scope) WarehouseVisible(id string) bool { return s.warehouseSet[id] }

// Scope carga árbol de áreas y bodegas en paralelo y aplica el filtro del actor.
func (c *Catalog) Scope(ctx context.Context, actor visibility.Actor) (*Scope, error) {
	var (
		tree       []entity.Area
		warehouses []entity.Warehouse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := c.AreaTree(gctx)
		if err != nil {
			t, err = degradeList[entity.Area](c.log, "areas", err)
		}
		tree = t
		return err
	})
	g.Go(func() error {
		w, err := c.Warehouses(gctx)
		if err != nil {
			w, err = degradeList[entity.Warehouse](c.log, "warehouses", err)
		}
		warehouses = w
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	f := visibility.New(actor)
	flat := entity.FlattenAreas(tree)
	s := &Scope{
		Filter:        f,
		Tree:          tree,
		AllAreas:      flat,
		AllWarehouses: warehouses,
		Areas:         f.VisibleAreas(flat, warehouses),
		Warehouses:    f.VisibleWarehouses(warehouses),
	}
	s.areaSet = make(map[string]bool, len(s.Areas))
	for _, a := range s.Areas {
		s.areaSet[a.ID] = true
	}
	s.warehouseSet = make(map[string]bool, len(s.Warehouses))
	for _, w := range s.Warehouses {
		s.warehouseSet[w.ID] = true
	}
	return s, nil
}

// VisibleUsers usuarios que el actor puede listar. ADMIN lee la lista completa; JEFE une
// los miembros de cada una de sus áreas; SUPERVISOR no tiene lista.
func (c *Catalog) VisibleUsers(ctx context.Context, s *Scope) ([]entity.User, error) {
	actor := s.Filter.Actor()
	switch actor.Role {
	case role.Admin:
		users, err := c.Users(ctx)
		if err != nil {
			return degradeList[entity.User](c.log, "users", err)
		}
		return s.Filter.VisibleUsers(users, s.Warehouses), nil
	case role.Jefe:
		members, err := c.AreaMembers(ctx, actor.AreaIDs)
		if err != nil {
			return nil, err
		}
		return s.Filter.VisibleUsers(members, s.Warehouses), nil
	default:
		return []entity.User{}, nil
	}
}

// AreaMembers une los miembros SUPERVISOR de las áreas dadas, sin duplicados.
// Un área que falla se loguea y aporta una lista vacía.
func (c *Catalog) AreaMembers(ctx context.Context, areaIDs []string) ([]entity.User, error) {
	perArea := make([][]entity.User, len(areaIDs))
	var g errgroup.Group
	g.SetLimit(memberFetchLimit)
	for i, id := range areaIDs {
		i, id := i, id
		g.Go(func() error {
			users, err := c.UsersByArea(ctx, id)
			if err != nil {
				users, err = degradeList[entity.User](c.log.With().Str("area_id", id).Logger(), "users-by-area", err)
			}
			perArea[i] = users
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return visibility.MergeAreaMembers(perArea...), nil
}
