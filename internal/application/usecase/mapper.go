package usecase

import (
	"github.com/jhoicas/Logistica-bff/internal/application/assignment"
	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
)

func toAreaResponse(a *entity.Area) dto.AreaResponse {
	out := dto.AreaResponse{
		ID:              a.ID,
		Name:            a.Name,
		Level:           a.Level,
		ParentID:        a.ParentID,
		Status:          a.Status,
		NodeType:        a.NodeType,
		IsLeaf:          a.IsLeaf(),
		ManagersCount:   a.ManagersCount,
		WarehousesCount: a.WarehousesCount,
		SubAreasCount:   a.SubAreasCount,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if len(a.Managers) > 0 {
		out.Managers = toUserResponses(a.Managers)
	}
	if len(a.Warehouses) > 0 {
		out.Warehouses = toWarehouseResponses(a.Warehouses)
	}
	return out
}

func toAreaResponses(list []entity.Area) []dto.AreaResponse {
	out := make([]dto.AreaResponse, 0, len(list))
	for i := range list {
		out = append(out, toAreaResponse(&list[i]))
	}
	return out
}

// toAreaTree proyecta el árbol conservando solo los nodos visibles. Un nodo visible cuyo
// padre no lo es sube al nivel superior más cercano que sí lo sea.
func toAreaTree(roots []entity.Area, visible map[string]bool) []dto.AreaResponse {
	out := make([]dto.AreaResponse, 0)
	for i := range roots {
		a := &roots[i]
		children := toAreaTree(a.Children, visible)
		if !visible[a.ID] {
			out = append(out, children...)
			continue
		}
		node := toAreaResponse(a)
		node.Children = children
		out = append(out, node)
	}
	return out
}

func toAssignmentResponses(list []entity.Assignment) []dto.AssignmentResponse {
	if len(list) == 0 {
		return nil
	}
	out := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AssignmentResponse{
			ID:         a.ID,
			TargetID:   a.TargetID,
			AssignedBy: a.AssignedBy,
			AssignedAt: a.AssignedAt,
			RevokedAt:  a.RevokedAt,
			IsActive:   a.IsActive,
		})
	}
	return out
}

func toUserResponse(u *entity.User) dto.UserResponse {
	areas, warehouses := u.Areas, u.Warehouses
	if areas == nil {
		areas = []string{}
	}
	if warehouses == nil {
		warehouses = []string{}
	}
	return dto.UserResponse{
		ID:                   u.ID,
		Name:                 u.Name,
		LastName:             u.LastName,
		FullName:             u.FullName(),
		Email:                u.Email,
		RUT:                  u.RUT,
		Phone:                u.Phone,
		Role:                 u.Role.String(),
		Status:               u.Status,
		Areas:                areas,
		Warehouses:           warehouses,
		AreaAssignments:      toAssignmentResponses(u.AreaAssignments),
		WarehouseAssignments: toAssignmentResponses(u.WarehouseAssignments),
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func toUserResponses(list []entity.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(list))
	for i := range list {
		out = append(out, toUserResponse(&list[i]))
	}
	return out
}

func toWarehouseResponse(w *entity.Warehouse) dto.WarehouseResponse {
	out := dto.WarehouseResponse{
		ID:             w.ID,
		Name:           w.Name,
		CapacityKg:     w.CapacityKg,
		MaxCapacityKg:  w.MaxCapacityKg,
		FreeCapacityKg: w.FreeCapacityKg(),
		Status:         w.Status,
		IsEnabled:      w.IsEnabled,
		AreaID:         w.AreaID,
		AreaName:       w.AreaName,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
	if len(w.Supervisors) > 0 {
		out.Supervisors = toUserResponses(w.Supervisors)
	}
	return out
}

func toWarehouseResponses(list []entity.Warehouse) []dto.WarehouseResponse {
	out := make([]dto.WarehouseResponse, 0, len(list))
	for i := range list {
		out = append(out, toWarehouseResponse(&list[i]))
	}
	return out
}

func toBoxItems(list []entity.BoxItem) []dto.BoxItemResponse {
	out := make([]dto.BoxItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, dto.BoxItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Kind:      it.Kind,
			Quantity:  it.Quantity,
			WeightKg:  it.WeightKg,
		})
	}
	return out
}

func toBoxResponse(b *entity.Box) dto.BoxResponse {
	return dto.BoxResponse{
		ID:            b.ID,
		QRCode:        b.QRCode,
		Name:          b.Name,
		Description:   b.Description,
		Status:        b.Status,
		WarehouseID:   b.WarehouseID,
		WarehouseName: b.WarehouseName,
		WeightKg:      b.WeightKg,
		IsActive:      b.IsActive,
		Equipments:    toBoxItems(b.Equipments),
		Materials:     toBoxItems(b.Materials),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toBoxResponses(list []entity.Box) []dto.BoxResponse {
	out := make([]dto.BoxResponse, 0, len(list))
	for i := range list {
		out = append(out, toBoxResponse(&list[i]))
	}
	return out
}

func toBoxHistory(list []entity.BoxHistoryEntry) []dto.BoxHistoryResponse {
	out := make([]dto.BoxHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.BoxHistoryResponse{
			ID:              h.ID,
			Action:          h.Action,
			FromWarehouseID: h.FromWarehouseID,
			ToWarehouseID:   h.ToWarehouseID,
			PreviousStatus:  h.PreviousStatus,
			NewStatus:       h.NewStatus,
			PerformedBy:     h.PerformedBy,
			Details:         h.Details,
			CreatedAt:       h.CreatedAt,
		})
	}
	return out
}

func toAssignmentHistory(list []entity.AssignmentHistoryEntry) []dto.AssignmentHistoryResponse {
	out := make([]dto.AssignmentHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.AssignmentHistoryResponse{
			ID:         h.ID,
			Kind:       h.Kind,
			TargetID:   h.TargetID,
			TargetName: h.TargetName,
			AssignedBy: h.AssignedBy,
			AssignedAt: h.AssignedAt,
			RevokedAt:  h.RevokedAt,
			IsActive:   h.IsActive,
		})
	}
	return out
}

func toEnablementHistory(list []entity.UserEnablementHistoryEntry) []dto.EnablementHistoryResponse {
	out := make([]dto.EnablementHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.EnablementHistoryResponse{
			ID:             h.ID,
			UserID:         h.UserID,
			UserName:       h.UserName,
			PreviousStatus: h.PreviousStatus,
			NewStatus:      h.NewStatus,
			Reason:         h.Reason,
			ChangedBy:      h.ChangedBy,
			ChangedAt:      h.ChangedAt,
		})
	}
	return out
}

func toAuditLogResponse(l *entity.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		UserName:  l.UserName,
		Action:    l.Action,
		Entity:    l.Entity,
		EntityID:  l.EntityID,
		Details:   l.Details,
		CreatedAt: l.CreatedAt,
	}
}

func toJournalResponses(list []repository.JournalEntry) []dto.JournalEntryResponse {
	out := make([]dto.JournalEntryResponse, 0, len(list))
	for _, e := range list {
		ids := e.TargetIDs
		if ids == nil {
			ids = []string{}
		}
		out = append(out, dto.JournalEntryResponse{
			ID:        e.ID,
			Mutation:  e.Mutation,
			TargetIDs: ids,
			OK:        e.OK,
			Error:     e.Error,
			WeightKg:  e.WeightKg,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

// ToBatchResponse traduce el reporte de un lote.
func ToBatchResponse(r assignment.Report) dto.BatchResponse {
	failed := make([]dto.BatchFailure, 0, len(r.Failed))
	for _, f := range r.Failed {
		failed = append(failed, dto.BatchFailure{Label: f.Label, Message: f.Message})
	}
	succeeded := r.Succeeded
	if succeeded == nil {
		succeeded = []string{}
	}
	return dto.BatchResponse{OK: r.OK(), Total: r.Total(), Succeeded: succeeded, Failed: failed}
}
