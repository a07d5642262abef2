package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-bff/internal/application/assignment"
	"github.com/jhoicas/Logistica-bff/internal/application/cachesync"
	"github.com/jhoicas/Logistica-bff/internal/application/querykey"
	"github.com/jhoicas/Logistica-bff/internal/application/usecase"
	"github.com/jhoicas/Logistica-bff/internal/domain"
	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
	"github.com/jhoicas/Logistica-bff/internal/domain/visibility"
	"github.com/jhoicas/Logistica-bff/internal/infrastructure/cache"
)

// backend simula el API remoto en memoria y cuenta las llamadas por operación.
type backend struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]error

	tree       []entity.Area
	warehouses []entity.Warehouse
	users      []entity.User
	members    map[string][]entity.User
	boxes      []entity.Box
	unique     repository.UniqueCheck
}

func (b *backend) hit(op string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[op]++
	return b.fail[op]
}

func (b *backend) count(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Árbol: Logística(a1) → Bodega Norte(a2); Mantención(a3); Finanzas(a4).
func newBackend() *backend {
	return &backend{
		calls: map[string]int{},
		fail:  map[string]error{},
		tree: []entity.Area{
			{ID: "a1", Name: "Logística", Status: entity.AreaStatusActive, NodeType: entity.AreaNodeRoot, SubAreasCount: 1,
				Children: []entity.Area{{ID: "a2", Name: "Bodega Norte", Level: 1, ParentID: strPtr("a1"),
					Status: entity.AreaStatusActive, NodeType: entity.AreaNodeChild}}},
			{ID: "a3", Name: "Mantención", Status: entity.AreaStatusInactive, NodeType: entity.AreaNodeRoot},
			{ID: "a4", Name: "Finanzas", Status: entity.AreaStatusActive, NodeType: entity.AreaNodeRoot},
		},
		warehouses: []entity.Warehouse{
			{ID: "w1", Name: "Central", AreaID: strPtr("a2"), IsEnabled: true, CapacityKg: dec("100.5"), MaxCapacityKg: dec("500")},
			{ID: "w2", Name: "Sur", AreaID: strPtr("a4"), IsEnabled: true, CapacityKg: dec("10"), MaxCapacityKg: dec("50")},
			{ID: "w3", Name: "Tránsito", IsEnabled: false, CapacityKg: dec("0"), MaxCapacityKg: dec("20")},
		},
		users: []entity.User{
			{ID: "admin", Name: "Ada", Role: role.Admin, Status: entity.UserStatusEnabled},
			{ID: "jefe", Name: "Julia", Role: role.Jefe, Status: entity.UserStatusEnabled, Areas: []string{"a2"}},
			{ID: "s1", Name: "Sergio", Role: role.Supervisor, Status: entity.UserStatusEnabled, Warehouses: []string{"w1"}},
			{ID: "s2", Name: "Sofía", Role: role.Supervisor, Status: entity.UserStatusEnabled, Warehouses: []string{}},
			{ID: "s3", Name: "Samuel", Role: role.Supervisor, Status: entity.UserStatusDisabled, Warehouses: []string{"w2"}},
		},
		members: map[string][]entity.User{},
		boxes: []entity.Box{
			{ID: "b1", QRCode: "BOX-1", Name: "Herramientas", WarehouseID: "w1", WeightKg: dec("12.5"), IsActive: true},
			{ID: "b2", QRCode: "BOX-2", Name: "Repuestos", WarehouseID: "w2", WeightKg: dec("3"), IsActive: true},
		},
	}
}

func (b *backend) user(id string) *entity.User {
	for i := range b.users {
		if b.users[i].ID == id {
			u := b.users[i]
			return &u
		}
	}
	return nil
}

// --- Areas ---

type areaRepo struct{ *backend }

func (r areaRepo) List(context.Context) ([]entity.Area, error) {
	if err := r.hit("areas.list"); err != nil {
		return nil, err
	}
	return r.tree, nil
}

func (r areaRepo) GetByID(_ context.Context, id string) (*entity.Area, error) {
	if err := r.hit("areas.get"); err != nil {
		return nil, err
	}
	for _, a := range entity.FlattenAreas(r.tree) {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r areaRepo) Create(_ context.Context, in repository.AreaWrite) (*entity.Area, error) {
	if err := r.hit("areas.create"); err != nil {
		return nil, err
	}
	return &entity.Area{ID: "new", Name: in.Name, Level: in.Level, ParentID: in.ParentID, Status: in.Status, NodeType: in.NodeType}, nil
}

func (r areaRepo) Update(_ context.Context, id string, in repository.AreaWrite) (*entity.Area, error) {
	if err := r.hit("areas.update"); err != nil {
		return nil, err
	}
	return &entity.Area{ID: id, Name: in.Name, Level: in.Level, ParentID: in.ParentID, Status: in.Status, NodeType: in.NodeType}, nil
}

func (r areaRepo) Delete(context.Context, string) error { return r.hit("areas.delete") }

func (r areaRepo) AssignManager(_ context.Context, areaID, _ string) (*entity.Assignment, error) {
	if err := r.hit("areas.assign-manager"); err != nil {
		return nil, err
	}
	return &entity.Assignment{TargetID: areaID, IsActive: true}, nil
}

func (r areaRepo) RemoveManager(_ context.Context, areaID, _ string) (*entity.Assignment, error) {
	if err := r.hit("areas.remove-manager"); err != nil {
		return nil, err
	}
	return &entity.Assignment{TargetID: areaID}, nil
}

func (r areaRepo) AssignWarehouse(_ context.Context, areaID, warehouseID string) (*entity.Warehouse, error) {
	if err := r.hit("areas.assign-warehouse"); err != nil {
		return nil, err
	}
	return &entity.Warehouse{ID: warehouseID, AreaID: &areaID}, nil
}

func (r areaRepo) RemoveWarehouse(_ context.Context, _, warehouseID string) (*entity.Warehouse, error) {
	if err := r.hit("areas.remove-warehouse"); err != nil {
		return nil, err
	}
	return &entity.Warehouse{ID: warehouseID}, nil
}

// --- Users ---

type userRepo struct{ *backend }

func (r userRepo) List(context.Context) ([]entity.User, error) {
	if err := r.hit("users.list"); err != nil {
		return nil, err
	}
	return r.users, nil
}

func (r userRepo) ListByArea(_ context.Context, areaID string) ([]entity.User, error) {
	if err := r.hit("users.by-area"); err != nil {
		return nil, err
	}
	return r.members[areaID], nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if err := r.hit("users.get"); err != nil {
		return nil, err
	}
	if u := r.user(id); u != nil {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (r userRepo) Profile(context.Context) (*entity.User, error) {
	if err := r.hit("users.profile"); err != nil {
		return nil, err
	}
	return r.user("admin"), nil
}

func (r userRepo) Create(_ context.Context, in repository.UserWrite) (*entity.User, error) {
	if err := r.hit("users.create"); err != nil {
		return nil, err
	}
	return &entity.User{ID: "nuevo", Name: in.Name, Email: in.Email, RUT: in.RUT, Role: in.Role, Status: entity.UserStatusEnabled}, nil
}

func (r userRepo) Update(_ context.Context, id string, in repository.UserWrite) (*entity.User, error) {
	if err := r.hit("users.update"); err != nil {
		return nil, err
	}
	return &entity.User{ID: id, Name: in.Name, Email: in.Email, RUT: in.RUT, Role: in.Role}, nil
}

func (r userRepo) SetStatus(_ context.Context, id, status, _ string) (*entity.User, error) {
	if err := r.hit("users.status"); err != nil {
		return nil, err
	}
	u := r.user(id)
	u.Status = status
	return u, nil
}

func (r userRepo) ValidateUnique(context.Context, string, string, string) (*repository.UniqueCheck, error) {
	if err := r.hit("users.unique"); err != nil {
		return nil, err
	}
	chk := r.unique
	return &chk, nil
}

// --- Warehouses ---

type warehouseRepo struct{ *backend }

func (r warehouseRepo) List(context.Context) ([]entity.Warehouse, error) {
	if err := r.hit("warehouses.list"); err != nil {
		return nil, err
	}
	return r.warehouses, nil
}

func (r warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	if err := r.hit("warehouses.get"); err != nil {
		return nil, err
	}
	for _, w := range r.warehouses {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r warehouseRepo) Create(_ context.Context, in repository.WarehouseWrite) (*entity.Warehouse, error) {
	if err := r.hit("warehouses.create"); err != nil {
		return nil, err
	}
	return &entity.Warehouse{ID: "w-new", Name: in.Name, AreaID: in.AreaID, IsEnabled: in.IsEnabled}, nil
}

func (r warehouseRepo) Update(_ context.Context, id string, in repository.WarehouseWrite) (*entity.Warehouse, error) {
	if err := r.hit("warehouses.update"); err != nil {
		return nil, err
	}
	return &entity.Warehouse{ID: id, Name: in.Name, AreaID: in.AreaID, IsEnabled: in.IsEnabled}, nil
}

func (r warehouseRepo) ListSupervisors(_ context.Context, id string) ([]entity.User, error) {
	if err := r.hit("warehouses.supervisors"); err != nil {
		return nil, err
	}
	out := []entity.User{}
	for _, u := range r.users {
		for _, w := range u.Warehouses {
			if w == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (r warehouseRepo) AssignSupervisor(_ context.Context, id, _ string) (*entity.Assignment, error) {
	if err := r.hit("warehouses.assign-supervisor"); err != nil {
		return nil, err
	}
	return &entity.Assignment{TargetID: id, IsActive: true}, nil
}

func (r warehouseRepo) RemoveSupervisor(_ context.Context, id, _ string) (*entity.Assignment, error) {
	if err := r.hit("warehouses.remove-supervisor"); err != nil {
		return nil, err
	}
	return &entity.Assignment{TargetID: id}, nil
}

// --- Boxes ---

type boxRepo struct {
	repository.BoxRepository
	*backend
}

func (r boxRepo) List(context.Context, repository.BoxFilter) ([]entity.Box, error) {
	if err := r.hit("boxes.list"); err != nil {
		return nil, err
	}
	return r.boxes, nil
}

func (r boxRepo) GetByID(_ context.Context, id string) (*entity.Box, error) {
	if err := r.hit("boxes.get"); err != nil {
		return nil, err
	}
	for _, b := range r.boxes {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r boxRepo) Move(_ context.Context, id, to, _ string) (*entity.Box, error) {
	if err := r.hit("boxes.move"); err != nil {
		return nil, err
	}
	return &entity.Box{ID: id, WarehouseID: to}, nil
}

// --- Historial ---

type historyRepo struct{ *backend }

func (r historyRepo) ListByUser(_ context.Context, userID string) ([]entity.AssignmentHistoryEntry, error) {
	if err := r.hit("history.user"); err != nil {
		return nil, err
	}
	return []entity.AssignmentHistoryEntry{{ID: "h1", UserID: userID, Kind: entity.AssignmentKindArea, TargetID: "a2", IsActive: true}}, nil
}

type enablementRepo struct{ *backend }

func (r enablementRepo) ListByUser(context.Context, string) ([]entity.UserEnablementHistoryEntry, error) {
	return nil, r.hit("enablement.user")
}

func (r enablementRepo) List(context.Context) ([]entity.UserEnablementHistoryEntry, error) {
	return nil, r.hit("enablement.list")
}

// --- fixture ---

type fixture struct {
	be         *backend
	mr         *miniredis.Miniredis
	keys       querykey.Builder
	areas      *usecase.AreaUseCase
	users      *usecase.UserUseCase
	warehouses *usecase.WarehouseUseCase
	boxes      *usecase.BoxUseCase
	dashboard  *usecase.DashboardUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	be := newBackend()
	keys := querykey.NewBuilder("t")
	log := zerolog.Nop()
	syncer := cachesync.NewSynchronizer(cache.NewQueryCache(rdb), keys, time.Minute, nil, log)

	areas, users, whs := areaRepo{be}, userRepo{be}, warehouseRepo{be}
	catalog := usecase.NewCatalog(areas, users, whs, syncer, log)
	assign := assignment.NewUseCase(areas, whs, syncer)
	boxes := usecase.NewBoxUseCase(catalog, boxRepo{backend: be}, syncer, log)
	return &fixture{
		be:         be,
		mr:         mr,
		keys:       keys,
		areas:      usecase.NewAreaUseCase(catalog, areas, assign, syncer, log),
		users:      usecase.NewUserUseCase(catalog, users, historyRepo{be}, enablementRepo{be}, assign, syncer, log),
		warehouses: usecase.NewWarehouseUseCase(catalog, whs, assign, syncer, log),
		boxes:      boxes,
		dashboard:  usecase.NewDashboardUseCase(catalog),
	}
}

var (
	adminActor = visibility.Actor{ID: "admin", Role: role.Admin}
	jefeActor  = visibility.Actor{ID: "jefe", Role: role.Jefe, AreaIDs: []string{"a2"}}
	supActor   = visibility.Actor{ID: "s1", Role: role.Supervisor, WarehouseIDs: []string{"w1"}}
)
