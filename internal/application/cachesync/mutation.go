package cachesync

import "github.com/jhoicas/Logistica-bff/internal/application/querykey"

// Mutation operación de escritura que pasa por el BFF.
type Mutation string

// Mutaciones conocidas. Toda mutación tiene su entrada en la tabla de invalidación.
const (
	AssignManagerToArea           Mutation = "assign-manager-to-area"
	RemoveManagerFromArea         Mutation = "remove-manager-from-area"
	AssignWarehouseToArea         Mutation = "assign-warehouse-to-area"
	RemoveWarehouseFromArea       Mutation = "remove-warehouse-from-area"
	AssignSupervisorToWarehouse   Mutation = "assign-supervisor-to-warehouse"
	RemoveSupervisorFromWarehouse Mutation = "remove-supervisor-from-warehouse"

	ToggleUserStatus Mutation = "toggle-user-status"
	CreateUser       Mutation = "create-user"
	UpdateUser       Mutation = "update-user"

	CreateArea Mutation = "create-area"
	UpdateArea Mutation = "update-area"
	DeleteArea Mutation = "delete-area"

	CreateWarehouse Mutation = "create-warehouse"
	UpdateWarehouse Mutation = "update-warehouse"

	CreateBox          Mutation = "create-box"
	UpdateBox          Mutation = "update-box"
	DeleteBox          Mutation = "delete-box"
	MoveBox            Mutation = "move-box"
	ChangeBoxStatus    Mutation = "change-box-status"
	DeactivateBox      Mutation = "deactivate-box"
	AddBoxEquipment    Mutation = "add-box-equipment"
	RemoveBoxEquipment Mutation = "remove-box-equipment"
	AddBoxMaterial     Mutation = "add-box-material"
	RemoveBoxMaterial  Mutation = "remove-box-material"

	CreateAuditLog Mutation = "create-audit-log"
)

// Target ids que toca una mutación. Los campos vacíos no generan claves.
// PreviousAreaID es el área anterior de la bodega cuando la mutación la cambia de dueño;
// PreviousWarehouseID la bodega de origen de una caja movida.
type Target struct {
	AreaID              string
	PreviousAreaID      string
	ParentAreaID        string
	UserID              string
	WarehouseID         string
	PreviousWarehouseID string
	BoxID               string
}

// IDs ids no vacíos del target, en orden de campo; se guardan en la bitácora.
func (t Target) IDs() []string {
	out := make([]string, 0, 4)
	for _, id := range []string{t.AreaID, t.PreviousAreaID, t.ParentAreaID, t.UserID,
		t.WarehouseID, t.PreviousWarehouseID, t.BoxID} {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

type rule func(b querykey.Builder, t Target) []querykey.Key

// keySet acumula claves omitiendo las que dependen de un id vacío.
type keySet []querykey.Key

func (s *keySet) add(k querykey.Key) { *s = append(*s, k) }

func (s *keySet) addIf(id string, build func(string) querykey.Key) {
	if id != "" {
		*s = append(*s, build(id))
	}
}

func managerArea(b querykey.Builder, t Target) []querykey.Key {
	var ks keySet
	ks.add(b.Areas())
	ks.addIf(t.AreaID, b.Area)
	ks.addIf(t.AreaID, b.UsersByArea)
	ks.addIf(t.UserID, b.User)
	ks.addIf(t.UserID, b.AssignmentHistory)
	ks.addIf(t.UserID, b.Profile)
	return ks
}

func warehouseArea(b querykey.Builder, t Target) []querykey.Key {
	var ks keySet
	ks.add(b.Areas())
	ks.addIf(t.AreaID, b.Area)
	ks.addIf(t.PreviousAreaID, b.Area)
	ks.add(b.Warehouses(nil))
	ks.addIf(t.WarehouseID, b.Warehouse)
	return ks
}

func supervisorWarehouse(b querykey.Builder, t Target) []querykey.Key {
	var ks keySet
	ks.add(b.Warehouses(nil))
	ks.addIf(t.WarehouseID, b.Warehouse)
	ks.add(b.Users(nil))
	ks.addIf(t.WarehouseID, b.WarehouseSupervisors)
	ks.addIf(t.AreaID, b.Area)
	ks.addIf(t.PreviousAreaID, b.Area)
	// la lista de un JEFE sale de los miembros por área
	ks.add(b.Kind(querykey.KindUsersByArea))
	ks.addIf(t.UserID, b.User)
	ks.addIf(t.UserID, b.AssignmentHistory)
	ks.addIf(t.UserID, b.Profile)
	return ks
}

func userStatus(b querykey.Builder, t Target) []querykey.Key {
	var ks keySet
	ks.add(b.Users(nil))
	ks.add(b.Kind(querykey.KindUsersByArea))
	ks.addIf(t.UserID, b.User)
	ks.addIf(t.UserID, b.UserEnablementHistory)
	ks.add(b.EnablementHistory())
	ks.addIf(t.UserID, b.Profile)
	return ks
}

func userWrite(b querykey.Builder, t Target) []querykey.Key {
	var ks keySet
	ks.add(b.Users(nil))
	ks.addIf(t.UserID, b.User)
	ks.add(b.Kind(querykey.KindUsersByArea))
	ks.addIf(t.UserID, b.Profile)
	return ks
}

func areaWrite(b querykey.Builder, t Target) []querykey.Key {
	var ks keySet
	ks.add(b.Areas())
	ks.addIf(t.AreaID, b.Area)
	ks.addIf(t.ParentAreaID, b.Area)
	ks.addIf(t.PreviousAreaID, b.Area)
	return ks
}

func warehouseWrite(b querykey.Builder, t Target) []querykey.Key {
	var ks keySet
	ks.add(b.Warehouses(nil))
	ks.addIf(t.WarehouseID, b.Warehouse)
	ks.add(b.Areas())
	ks.addIf(t.AreaID, b.Area)
	ks.addIf(t.PreviousAreaID, b.Area)
	return ks
}

func boxWrite(b querykey.Builder, t Target) []querykey.Key {
	var ks keySet
	ks.add(b.Boxes(nil))
	ks.add(b.Kind(querykey.KindBoxQR))
	ks.addIf(t.BoxID, b.Box)
	ks.addIf(t.BoxID, b.BoxHistory)
	ks.addIf(t.WarehouseID, b.Warehouse)
	ks.addIf(t.PreviousWarehouseID, b.Warehouse)
	return ks
}

func auditLog(b querykey.Builder, _ Target) []querykey.Key {
	return []querykey.Key{b.AuditLogs(nil)}
}

var table = map[Mutation]rule{
	AssignManagerToArea:           managerArea,
	RemoveManagerFromArea:         managerArea,
	AssignWarehouseToArea:         warehouseArea,
	RemoveWarehouseFromArea:       warehouseArea,
	AssignSupervisorToWarehouse:   supervisorWarehouse,
	RemoveSupervisorFromWarehouse: supervisorWarehouse,

	ToggleUserStatus: userStatus,
	CreateUser:       userWrite,
	UpdateUser:       userWrite,

	CreateArea: areaWrite,
	UpdateArea: areaWrite,
	DeleteArea: areaWrite,

	CreateWarehouse: warehouseWrite,
	UpdateWarehouse: warehouseWrite,

	CreateBox:          boxWrite,
	UpdateBox:          boxWrite,
	DeleteBox:          boxWrite,
	MoveBox:            boxWrite,
	ChangeBoxStatus:    boxWrite,
	DeactivateBox:      boxWrite,
	AddBoxEquipment:    boxWrite,
	RemoveBoxEquipment: boxWrite,
	AddBoxMaterial:     boxWrite,
	RemoveBoxMaterial:  boxWrite,

	CreateAuditLog: auditLog,
}

// Mutations lista las mutaciones registradas en la tabla.
func Mutations() []Mutation {
	out := make([]Mutation, 0, len(table))
	for m := range table {
		out = append(out, m)
	}
	return out
}

// Keys claves que invalida m para los targets dados, sin duplicados y en orden de aparición.
// Una mutación desconocida no invalida nada.
func Keys(b querykey.Builder, m Mutation, targets ...Target) []querykey.Key {
	r, ok := table[m]
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	out := make([]querykey.Key, 0, 8)
	for _, t := range targets {
		for _, k := range r(b, t) {
			s := k.String()
			if seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, k)
		}
	}
	return out
}
