package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
)

var (
	_ repository.AssignmentHistoryRepository = (*HistoryRepo)(nil)
	_ repository.EnablementHistoryRepository = (*EnablementRepo)(nil)
	_ repository.AuditLogRepository          = (*AuditLogRepo)(nil)
)

// HistoryRepo historial de asignaciones.
type HistoryRepo struct {
	c *Client
}

// NewAssignmentHistoryRepository construye el adaptador.
func NewAssignmentHistoryRepository(c *Client) *HistoryRepo {
	return &HistoryRepo{c: c}
}

// ListByUser asignaciones (activas y revocadas) del usuario.
func (r *HistoryRepo) ListByUser(ctx context.Context, userID string) ([]entity.AssignmentHistoryEntry, error) {
	var out []assignmentHistoryDTO
	if err := r.c.get(ctx, pathf("/assignment-history/user/%s", userID), nil, &out); err != nil {
		return nil, fmt.Errorf("historial de asignaciones: %w", err)
	}
	list := make([]entity.AssignmentHistoryEntry, 0, len(out))
	for i := range out {
		list = append(list, out[i].toEntity())
	}
	return list, nil
}

// EnablementRepo historial de habilitación.
type EnablementRepo struct {
	c *Client
}

// NewEnablementHistoryRepository construye el adaptador.
func NewEnablementHistoryRepository(c *Client) *EnablementRepo {
	return &EnablementRepo{c: c}
}

// ListByUser cambios de estado de un usuario.
func (r *EnablementRepo) ListByUser(ctx context.Context, userID string) ([]entity.UserEnablementHistoryEntry, error) {
	return r.list(ctx, pathf("/users/%s/enablement-history", userID))
}

// List cambios de estado de todos los usuarios.
func (r *EnablementRepo) List(ctx context.Context) ([]entity.UserEnablementHistoryEntry, error) {
	return r.list(ctx, "/enablement-history")
}

func (r *EnablementRepo) list(ctx context.Context, path string) ([]entity.UserEnablementHistoryEntry, error) {
	var out []enablementDTO
	if err := r.c.get(ctx, path, nil, &out); err != nil {
		return nil, fmt.Errorf("historial de habilitación: %w", err)
	}
	list := make([]entity.UserEnablementHistoryEntry, 0, len(out))
	for i := range out {
		list = append(list, out[i].toEntity())
	}
	return list, nil
}

// AuditLogRepo registros de auditoría.
type AuditLogRepo struct {
	c *Client
}

// NewAuditLogRepository construye el adaptador.
func NewAuditLogRepository(c *Client) *AuditLogRepo {
	return &AuditLogRepo{c: c}
}

// List registros filtrados.
func (r *AuditLogRepo) List(ctx context.Context, f repository.AuditLogFilter) ([]entity.AuditLog, error) {
	q := url.Values{}
	if f.UserID != "" {
		q.Set("userId", f.UserID)
	}
	if f.Entity != "" {
		q.Set("entity", f.Entity)
	}
	if f.Action != "" {
		q.Set("action", f.Action)
	}
	var out []auditLogDTO
	if err := r.c.get(ctx, "/audit-logs", q, &out); err != nil {
		return nil, fmt.Errorf("listar auditoría: %w", err)
	}
	list := make([]entity.AuditLog, 0, len(out))
	for i := range out {
		list = append(list, out[i].toEntity())
	}
	return list, nil
}

// Create registra una acción.
func (r *AuditLogRepo) Create(ctx context.Context, in repository.AuditLogWrite) (*entity.AuditLog, error) {
	var out auditLogDTO
	body := auditLogWriteDTO{Action: in.Action, Entity: in.Entity, EntityID: in.EntityID, Details: in.Details}
	if err := r.c.post(ctx, "/audit-logs", body, &out); err != nil {
		return nil, fmt.Errorf("registrar auditoría: %w", err)
	}
	l := out.toEntity()
	return &l, nil
}
