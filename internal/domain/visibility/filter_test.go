package visibility_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-bff/internal/domain"
	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
	"github.com/jhoicas/Logistica-bff/internal/domain/visibility"
)

func strPtr(s string) *string { return &s }

func areas() []entity.Area {
	return []entity.Area{
		{ID: "a1", Name: "Logística", Status: entity.AreaStatusActive, SubAreasCount: 1},
		{ID: "a2", Name: "Bodega Norte", Level: 1, ParentID: strPtr("a1"), Status: entity.AreaStatusActive},
		{ID: "a3", Name: "Mantención", Status: entity.AreaStatusInactive},
		{ID: "a4", Name: "Finanzas", Status: entity.AreaStatusActive},
	}
}

func warehouses() []entity.Warehouse {
	return []entity.Warehouse{
		{ID: "w1", Name: "W1", AreaID: strPtr("a2"), IsEnabled: true},
		{ID: "w2", Name: "W2", AreaID: strPtr("a4"), IsEnabled: true},
		{ID: "w3", Name: "W3", IsEnabled: true},
		{ID: "w4", Name: "W4", AreaID: strPtr("a2"), IsEnabled: false},
	}
}

func ids[T any](list []T, id func(T) string) []string {
	out := make([]string, 0, len(list))
	for _, x := range list {
		out = append(out, id(x))
	}
	return out
}

func areaIDs(l []entity.Area) []string { return ids(l, func(a entity.Area) string { return a.ID }) }
func warehouseIDs(l []entity.Warehouse) []string { return ids(l, func(w entity.Warehouse) string { return w.ID }) }
func userIDs(l []entity.User) []string { return ids(l, func(u entity.User) string { return u.ID }) }

func TestAdmin_VeTodo(t *testing.T) {
	f := visibility.New(visibility.Actor{ID: "admin", Role: role.Admin})

	assert.Len(t, f.VisibleAreas(areas(), warehouses()), 4)
	assert.Equal(t, []string{"a1", "a2", "a4"}, areaIDs(f.AssignableAreas(areas())), "solo áreas activas son asignables")
	assert.Len(t, f.VisibleWarehouses(warehouses()), 4)
	assert.Equal(t, []string{"w1", "w2", "w3"}, warehouseIDs(f.AssignableWarehouses(warehouses())))
	assert.True(t, f.CanWrite())
	assert.True(t, f.CanAssignRole(role.Jefe))
	assert.False(t, f.CanAssignRole(role.Unknown))
}

// Un JEFE con áreas A nunca recibe áreas fuera de A ni bodegas con areaId fuera de A.
func TestJefe_AcotadoASusAreas(t *testing.T) {
	f := visibility.New(visibility.Actor{ID: "jefe", Role: role.Jefe, AreaIDs: []string{"a2", "a3"}})

	visibles := f.VisibleAreas(areas(), warehouses())
	assert.ElementsMatch(t, []string{"a2", "a3"}, areaIDs(visibles))
	assert.Equal(t, []string{"a2"}, areaIDs(f.AssignableAreas(areas())))

	ws := f.VisibleWarehouses(warehouses())
	for _, w := range ws {
		require.NotNil(t, w.AreaID)
		assert.Contains(t, []string{"a2", "a3"}, *w.AreaID)
	}
	assert.Equal(t, []string{"w1", "w4"}, warehouseIDs(ws))
	assert.Equal(t, []string{"w1"}, warehouseIDs(f.AssignableWarehouses(warehouses())))

	assert.True(t, f.CanManageArea("a2"))
	assert.False(t, f.CanManageArea("a4"))
}

func TestJefe_SoloAsignaRolSupervisor(t *testing.T) {
	f := visibility.New(visibility.Actor{ID: "jefe", Role: role.Jefe})

	assert.NoError(t, f.CheckRoleAssignment(role.Supervisor))
	assert.ErrorIs(t, f.CheckRoleAssignment(role.Jefe), domain.ErrRoleNotAllowed)
	assert.ErrorIs(t, f.CheckRoleAssignment(role.Admin), domain.ErrRoleNotAllowed)
}

func TestSupervisor_SoloLectura(t *testing.T) {
	f := visibility.New(visibility.Actor{ID: "sup", Role: role.Supervisor, WarehouseIDs: []string{"w1"}})

	assert.False(t, f.CanWrite())
	assert.Empty(t, f.VisibleUsers([]entity.User{{ID: "u1", Role: role.Supervisor}}, warehouses()))
	assert.Equal(t, []string{"w1"}, warehouseIDs(f.VisibleWarehouses(warehouses())))
	assert.Equal(t, []string{"a2"}, areaIDs(f.VisibleAreas(areas(), warehouses())), "ve el área dueña de su bodega")
	assert.Empty(t, f.AssignableAreas(areas()))
	assert.Empty(t, f.AssignableWarehouses(warehouses()))
	assert.False(t, f.CanAssignRole(role.Supervisor))
}

// Un jefe con asignación activa al área X no es candidato para X.
func TestManagerCandidates_ExcluyeAsignacionActiva(t *testing.T) {
	users := []entity.User{
		{ID: "m1", Role: role.Jefe, Status: entity.UserStatusEnabled,
			AreaAssignments: []entity.Assignment{{TargetID: "x", IsActive: true}}},
		{ID: "m2", Role: role.Jefe, Status: entity.UserStatusEnabled,
			AreaAssignments: []entity.Assignment{{TargetID: "x", IsActive: false}}},
		{ID: "m3", Role: role.Jefe, Status: entity.UserStatusDisabled},
		{ID: "m4", Role: role.Supervisor, Status: entity.UserStatusEnabled},
		{ID: "m5", Role: role.Jefe, Status: entity.UserStatusEnabled,
			AreaAssignments: []entity.Assignment{{TargetID: "y", IsActive: true}}},
	}
	f := visibility.New(visibility.Actor{ID: "admin", Role: role.Admin})

	got, err := f.ManagerCandidates("x", users)
	require.NoError(t, err)
	assert.Equal(t, []string{"m2", "m5"}, userIDs(got))
	assert.NotContains(t, userIDs(got), "m1")
}

func TestManagerCandidates_JefeFueraDeSuArea(t *testing.T) {
	f := visibility.New(visibility.Actor{ID: "jefe", Role: role.Jefe, AreaIDs: []string{"a1"}})
	_, err := f.ManagerCandidates("a4", nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestWarehouseCandidatesForArea_SoloHojas(t *testing.T) {
	f := visibility.New(visibility.Actor{ID: "admin", Role: role.Admin})
	all := areas()

	_, err := f.WarehouseCandidatesForArea(&all[0], warehouses())
	assert.ErrorIs(t, err, domain.ErrAreaNotLeaf)

	got, err := f.WarehouseCandidatesForArea(&all[1], warehouses())
	require.NoError(t, err)
	assert.Equal(t, []string{"w2", "w3"}, warehouseIDs(got), "excluye las bodegas que ya pertenecen al área")
}

func TestMergeAreaMembers_DeduplicaYFiltraSupervisores(t *testing.T) {
	area1 := []entity.User{{ID: "s1", Role: role.Supervisor}, {ID: "j1", Role: role.Jefe}}
	area2 := []entity.User{{ID: "s2", Role: role.Supervisor}, {ID: "s1", Role: role.Supervisor}}

	got := visibility.MergeAreaMembers(area1, area2)
	assert.Equal(t, []string{"s1", "s2"}, userIDs(got))
}

// Un SUPERVISOR HABILITADO sin bodegas no aparece en la lista de un JEFE;
// sí aparece si supervisa una bodega de las áreas del jefe.
func TestJefe_VisibleUsers_SupervisorSinBodegas(t *testing.T) {
	f := visibility.New(visibility.Actor{ID: "jefe", Role: role.Jefe, AreaIDs: []string{"a2"}})
	visibleWs := f.VisibleWarehouses(warehouses())

	u := entity.User{ID: "u", Role: role.Supervisor, Status: entity.UserStatusEnabled, Warehouses: []string{}}
	assert.Empty(t, f.VisibleUsers([]entity.User{u}, visibleWs))

	u.Warehouses = []string{"w2"}
	assert.Empty(t, f.VisibleUsers([]entity.User{u}, visibleWs), "w2 pertenece a un área ajena")

	u.Warehouses = []string{"w1"}
	assert.Equal(t, []string{"u"}, userIDs(f.VisibleUsers([]entity.User{u}, visibleWs)))
}

func TestSupervisorCandidates(t *testing.T) {
	w := &entity.Warehouse{ID: "w1", AreaID: strPtr("a2"), Supervisors: []entity.User{{ID: "s1"}}}
	users := []entity.User{
		{ID: "s1", Role: role.Supervisor, Status: entity.UserStatusEnabled},
		{ID: "s2", Role: role.Supervisor, Status: entity.UserStatusEnabled},
		{ID: "s3", Role: role.Supervisor, Status: entity.UserStatusDisabled},
	}

	jefe := visibility.New(visibility.Actor{ID: "jefe", Role: role.Jefe, AreaIDs: []string{"a2"}})
	got, err := jefe.SupervisorCandidates(w, users)
	require.NoError(t, err)
	assert.Equal(t, []string{"s2"}, userIDs(got))

	otro := visibility.New(visibility.Actor{ID: "jefe2", Role: role.Jefe, AreaIDs: []string{"a4"}})
	_, err = otro.SupervisorCandidates(w, users)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCheckManagerCandidate(t *testing.T) {
	jefe := visibility.New(visibility.Actor{ID: "j", Role: role.Jefe, AreaIDs: []string{"a2"}})
	admin := &entity.User{ID: "admin", Role: role.Admin, Status: entity.UserStatusEnabled}
	otroJefe := &entity.User{ID: "j2", Role: role.Jefe, Status: entity.UserStatusEnabled}
	asignado := &entity.User{ID: "j3", Role: role.Jefe, Status: entity.UserStatusEnabled,
		AreaAssignments: []entity.Assignment{{TargetID: "a2", IsActive: true}}}
	deshabilitado := &entity.User{ID: "j4", Role: role.Jefe, Status: entity.UserStatusDisabled}

	assert.NoError(t, jefe.CheckManagerCandidate("a2", otroJefe))
	assert.ErrorIs(t, jefe.CheckManagerCandidate("a2", admin), domain.ErrForbidden, "un ADMIN no es candidato a jefe")
	assert.ErrorIs(t, jefe.CheckManagerCandidate("a2", deshabilitado), domain.ErrForbidden)
	assert.ErrorIs(t, jefe.CheckManagerCandidate("a2", asignado), domain.ErrAlreadyAssigned)
	assert.ErrorIs(t, jefe.CheckManagerCandidate("a4", otroJefe), domain.ErrForbidden)
}

func TestCheckWarehouseCandidate(t *testing.T) {
	all := areas()
	ws := warehouses()
	jefe := visibility.New(visibility.Actor{ID: "j", Role: role.Jefe, AreaIDs: []string{"a2"}})
	admin := visibility.New(visibility.Actor{ID: "admin", Role: role.Admin})

	assert.ErrorIs(t, jefe.CheckWarehouseCandidate(&all[1], &ws[1]), domain.ErrForbidden, "w2 pertenece a un área ajena")
	assert.ErrorIs(t, jefe.CheckWarehouseCandidate(&all[1], &ws[0]), domain.ErrAlreadyAssigned)
	assert.ErrorIs(t, admin.CheckWarehouseCandidate(&all[0], &ws[2]), domain.ErrAreaNotLeaf)
	assert.ErrorIs(t, admin.CheckWarehouseCandidate(&all[3], &ws[3]), domain.ErrForbidden, "bodega deshabilitada")
	assert.NoError(t, admin.CheckWarehouseCandidate(&all[3], &ws[2]))
}
