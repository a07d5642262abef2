package backend

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
)

// idList lista de ids que el backend envía como strings o como objetos {id}.
type idList []string

func (l *idList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		var obj struct {
			ID          string `json:"id"`
			AreaID      string `json:"areaId"`
			WarehouseID string `json:"warehouseId"`
		}
		if err := json.Unmarshal(r, &obj); err != nil {
			return err
		}
		switch {
		case obj.ID != "":
			out = append(out, obj.ID)
		case obj.AreaID != "":
			out = append(out, obj.AreaID)
		case obj.WarehouseID != "":
			out = append(out, obj.WarehouseID)
		}
	}
	*l = out
	return nil
}

// ---- usuarios ----

type assignmentDTO struct {
	ID          string     `json:"id"`
	AreaID      string     `json:"areaId"`
	WarehouseID string     `json:"warehouseId"`
	AssignedBy  string     `json:"assignedBy"`
	AssignedAt  time.Time  `json:"assignedAt"`
	RevokedAt   *time.Time `json:"revokedAt"`
	IsActive    bool       `json:"isActive"`
}

func (d assignmentDTO) toEntity() entity.Assignment {
	target := d.AreaID
	if target == "" {
		target = d.WarehouseID
	}
	return entity.Assignment{
		ID:         d.ID,
		TargetID:   target,
		AssignedBy: d.AssignedBy,
		AssignedAt: d.AssignedAt,
		RevokedAt:  d.RevokedAt,
		IsActive:   d.IsActive,
	}
}

func assignmentsToEntities(list []assignmentDTO) []entity.Assignment {
	out := make([]entity.Assignment, 0, len(list))
	for _, a := range list {
		out = append(out, a.toEntity())
	}
	return out
}

type userDTO struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	LastName             string          `json:"lastName"`
	Email                string          `json:"email"`
	RUT                  string          `json:"rut"`
	Phone                string          `json:"phone"`
	Role                 json.RawMessage `json:"role"`
	RoleID               string          `json:"roleId"`
	Status               string          `json:"status"`
	Areas                idList          `json:"areas"`
	Warehouses           idList          `json:"warehouses"`
	AreaAssignments      []assignmentDTO `json:"areaAssignments"`
	WarehouseAssignments []assignmentDTO `json:"warehouseAssignments"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

func (d *userDTO) toEntity() entity.User {
	u := entity.User{
		ID:                   d.ID,
		Name:                 d.Name,
		LastName:             d.LastName,
		Email:                d.Email,
		RUT:                  d.RUT,
		Phone:                d.Phone,
		Role:                 role.Resolve(d.Role, d.RoleID),
		Status:               d.Status,
		Areas:                []string(d.Areas),
		Warehouses:           []string(d.Warehouses),
		AreaAssignments:      assignmentsToEntities(d.AreaAssignments),
		WarehouseAssignments: assignmentsToEntities(d.WarehouseAssignments),
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
	// Si el backend solo manda el historial, el estado actual se proyecta desde él.
	if u.Areas == nil && len(u.AreaAssignments) > 0 {
		u.Areas = entity.ActiveTargets(u.AreaAssignments)
	}
	if u.Warehouses == nil && len(u.WarehouseAssignments) > 0 {
		u.Warehouses = entity.ActiveTargets(u.WarehouseAssignments)
	}
	if u.Areas == nil {
		u.Areas = []string{}
	}
	if u.Warehouses == nil {
		u.Warehouses = []string{}
	}
	return u
}

func usersToEntities(list []userDTO) []entity.User {
	out := make([]entity.User, 0, len(list))
	for i := range list {
		out = append(out, list[i].toEntity())
	}
	return out
}

type userWriteDTO struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	RUT      string `json:"rut"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

type userStatusDTO struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type uniqueDTO struct {
	RUTExists   bool `json:"rutExists"`
	EmailExists bool `json:"emailExists"`
}

// ---- áreas ----

type areaDTO struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Level           int            `json:"level"`
	ParentID        *string        `json:"parentId"`
	Status          string         `json:"status"`
	NodeType        string         `json:"nodeType"`
	Children        []areaDTO      `json:"children"`
	ManagersCount   int            `json:"managersCount"`
	WarehousesCount int            `json:"warehousesCount"`
	SubAreasCount   int            `json:"subAreasCount"`
	Managers        []userDTO      `json:"managers"`
	Warehouses      []warehouseDTO `json:"warehouses"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func (d *areaDTO) toEntity() entity.Area {
	a := entity.Area{
		ID:              d.ID,
		Name:            d.Name,
		Level:           d.Level,
		ParentID:        d.ParentID,
		Status:          d.Status,
		NodeType:        d.NodeType,
		ManagersCount:   d.ManagersCount,
		WarehousesCount: d.WarehousesCount,
		SubAreasCount:   d.SubAreasCount,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if a.ParentID != nil && *a.ParentID == "" {
		a.ParentID = nil
	}
	if len(d.Children) > 0 {
		a.Children = areasToEntities(d.Children)
		if a.SubAreasCount == 0 {
			a.SubAreasCount = len(a.Children)
		}
	}
	if d.Managers != nil {
		a.Managers = usersToEntities(d.Managers)
	}
	if d.Warehouses != nil {
		a.Warehouses = warehousesToEntities(d.Warehouses)
	}
	return a
}

func areasToEntities(list []areaDTO) []entity.Area {
	out := make([]entity.Area, 0, len(list))
	for i := range list {
		out = append(out, list[i].toEntity())
	}
	return out
}

type areaWriteDTO struct {
	Name     string  `json:"name"`
	Level    int     `json:"level"`
	ParentID *string `json:"parentId"`
	Status   string  `json:"status,omitempty"`
	NodeType string  `json:"nodeType,omitempty"`
}

// ---- bodegas ----

type namedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type warehouseDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CapacityKg    decimal.Decimal `json:"capacityKg"`
	MaxCapacityKg decimal.Decimal `json:"maxCapacityKg"`
	Status        string          `json:"status"`
	IsEnabled     *bool           `json:"isEnabled"`
	AreaID        *string         `json:"areaId"`
	AreaName      string          `json:"areaName"`
	Area          *namedRef       `json:"area"`
	Supervisors   []userDTO       `json:"supervisors"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (d *warehouseDTO) toEntity() entity.Warehouse {
	w := entity.Warehouse{
		ID:            d.ID,
		Name:          d.Name,
		CapacityKg:    d.CapacityKg,
		MaxCapacityKg: d.MaxCapacityKg,
		Status:        d.Status,
		AreaID:        d.AreaID,
		AreaName:      d.AreaName,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.IsEnabled != nil {
		w.IsEnabled = *d.IsEnabled
	} else {
		w.IsEnabled = d.Status != entity.WarehouseStatusInactive
	}
	if d.Area != nil {
		if w.AreaID == nil && d.Area.ID != "" {
			id := d.Area.ID
			w.AreaID = &id
		}
		if w.AreaName == "" {
			w.AreaName = d.Area.Name
		}
	}
	if w.AreaID != nil && *w.AreaID == "" {
		w.AreaID = nil
	}
	if d.Supervisors != nil {
		w.Supervisors = usersToEntities(d.Supervisors)
	}
	return w
}

func warehousesToEntities(list []warehouseDTO) []entity.Warehouse {
	out := make([]entity.Warehouse, 0, len(list))
	for i := range list {
		out = append(out, list[i].toEntity())
	}
	return out
}

type warehouseWriteDTO struct {
	Name          string          `json:"name"`
	CapacityKg    decimal.Decimal `json:"capacityKg"`
	MaxCapacityKg decimal.Decimal `json:"maxCapacityKg"`
	IsEnabled     bool            `json:"isEnabled"`
	AreaID        *string         `json:"areaId"`
}

// ---- cajas ----

type boxItemDTO struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	WeightKg  decimal.Decimal `json:"weightKg"`
}

func boxItemsToEntities(list []boxItemDTO, kind string) []entity.BoxItem {
	out := make([]entity.BoxItem, 0, len(list))
	for _, it := range list {
		k := it.Type
		if k == "" {
			k = kind
		}
		out = append(out, entity.BoxItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Kind:      k,
			Quantity:  it.Quantity,
			WeightKg:  it.WeightKg,
		})
	}
	return out
}

type boxDTO struct {
	ID            string          `json:"id"`
	QRCode        string          `json:"qrCode"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	WarehouseID   string          `json:"warehouseId"`
	WarehouseName string          `json:"warehouseName"`
	Warehouse     *namedRef       `json:"warehouse"`
	WeightKg      decimal.Decimal `json:"weightKg"`
	IsActive      bool            `json:"isActive"`
	Equipments    []boxItemDTO    `json:"equipments"`
	Materials     []boxItemDTO    `json:"materials"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (d *boxDTO) toEntity() entity.Box {
	b := entity.Box{
		ID:            d.ID,
		QRCode:        d.QRCode,
		Name:          d.Name,
		Description:   d.Description,
		Status:        d.Status,
		WarehouseID:   d.WarehouseID,
		WarehouseName: d.WarehouseName,
		WeightKg:      d.WeightKg,
		IsActive:      d.IsActive,
		Equipments:    boxItemsToEntities(d.Equipments, entity.CatalogEquipment),
		Materials:     boxItemsToEntities(d.Materials, entity.CatalogMaterial),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.Warehouse != nil {
		if b.WarehouseID == "" {
			b.WarehouseID = d.Warehouse.ID
		}
		if b.WarehouseName == "" {
			b.WarehouseName = d.Warehouse.Name
		}
	}
	return b
}

func boxesToEntities(list []boxDTO) []entity.Box {
	out := make([]entity.Box, 0, len(list))
	for i := range list {
		out = append(out, list[i].toEntity())
	}
	return out
}

type boxWriteDTO struct {
	QRCode      string          `json:"qrCode,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	WarehouseID string          `json:"warehouseId"`
	WeightKg    decimal.Decimal `json:"weightKg"`
}

type boxItemWriteDTO struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type boxHistoryDTO struct {
	ID              string          `json:"id"`
	BoxID           string          `json:"boxId"`
	Action          string          `json:"action"`
	FromWarehouseID string          `json:"fromWarehouseId"`
	ToWarehouseID   string          `json:"toWarehouseId"`
	PreviousStatus  string          `json:"previousStatus"`
	NewStatus       string          `json:"newStatus"`
	PerformedBy     string          `json:"performedBy"`
	CreatedAt       time.Time       `json:"createdAt"`
	Details         json.RawMessage `json:"details"`
}

// ---- historiales y auditoría ----

type assignmentHistoryDTO struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	Type          string     `json:"type"`
	AreaID        string     `json:"areaId"`
	AreaName      string     `json:"areaName"`
	WarehouseID   string     `json:"warehouseId"`
	WarehouseName string     `json:"warehouseName"`
	AssignedBy    string     `json:"assignedBy"`
	AssignedAt    time.Time  `json:"assignedAt"`
	RevokedAt     *time.Time `json:"revokedAt"`
	IsActive      bool       `json:"isActive"`
}

func (d *assignmentHistoryDTO) toEntity() entity.AssignmentHistoryEntry {
	e := entity.AssignmentHistoryEntry{
		ID:         d.ID,
		UserID:     d.UserID,
		Kind:       d.Type,
		AssignedBy: d.AssignedBy,
		AssignedAt: d.AssignedAt,
		RevokedAt:  d.RevokedAt,
		IsActive:   d.IsActive,
	}
	if d.WarehouseID != "" {
		e.TargetID, e.TargetName = d.WarehouseID, d.WarehouseName
		if e.Kind == "" {
			e.Kind = entity.AssignmentKindWarehouse
		}
	} else {
		e.TargetID, e.TargetName = d.AreaID, d.AreaName
		if e.Kind == "" {
			e.Kind = entity.AssignmentKindArea
		}
	}
	return e
}

type enablementDTO struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	UserName       string    `json:"userName"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	Reason         string    `json:"reason"`
	ChangedBy      string    `json:"changedBy"`
	ChangedAt      time.Time `json:"changedAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (d *enablementDTO) toEntity() entity.UserEnablementHistoryEntry {
	at := d.ChangedAt
	if at.IsZero() {
		at = d.CreatedAt
	}
	return entity.UserEnablementHistoryEntry{
		ID:             d.ID,
		UserID:         d.UserID,
		UserName:       d.UserName,
		PreviousStatus: d.PreviousStatus,
		NewStatus:      d.NewStatus,
		Reason:         d.Reason,
		ChangedBy:      d.ChangedBy,
		ChangedAt:      at,
	}
}

type auditLogDTO struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	UserName  string          `json:"userName"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entityId"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (d *auditLogDTO) toEntity() entity.AuditLog {
	return entity.AuditLog{
		ID:        d.ID,
		UserID:    d.UserID,
		UserName:  d.UserName,
		Action:    d.Action,
		Entity:    d.Entity,
		EntityID:  d.EntityID,
		Details:   d.Details,
		CreatedAt: d.CreatedAt,
	}
}

type auditLogWriteDTO struct {
	Action   string          `json:"action"`
	Entity   string          `json:"entity"`
	EntityID string          `json:"entityId,omitempty"`
	Details  json.RawMessage `json:"details,omitempty"`
}
