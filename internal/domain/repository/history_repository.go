package repository

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
)

// AssignmentHistoryRepository historial de asignaciones (solo lectura).
type AssignmentHistoryRepository interface {
	ListByUser(ctx context.Context, userID string) ([]entity.AssignmentHistoryEntry, error)
}

// EnablementHistoryRepository historial de habilitación de usuarios.
type EnablementHistoryRepository interface {
	ListByUser(ctx context.Context, userID string) ([]entity.UserEnablementHistoryEntry, error)
	List(ctx context.Context) ([]entity.UserEnablementHistoryEntry, error)
}

// AuditLogFilter filtros del listado de auditoría.
type AuditLogFilter struct {
	UserID string
	Entity string
	Action string
}

// AuditLogWrite registro que el panel envía al backend.
type AuditLogWrite struct {
	Action   string
	Entity   string
	EntityID string
	Details  json.RawMessage
}

// AuditLogRepository registros de auditoría.
type AuditLogRepository interface {
	List(ctx context.Context, f AuditLogFilter) ([]entity.AuditLog, error)
	Create(ctx context.Context, in AuditLogWrite) (*entity.AuditLog, error)
}
