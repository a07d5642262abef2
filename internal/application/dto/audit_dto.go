package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateAuditLogRequest registro de auditoría enviado por el panel.
type CreateAuditLogRequest struct {
	Action   string          `json:"action" validate:"required"`
	Entity   string          `json:"entity" validate:"required"`
	EntityID string          `json:"entityId"`
	Details  json.RawMessage `json:"details" swaggertype:"object"`
}

// AuditLogResponse salida de un registro de auditoría.
type AuditLogResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	UserName  string          `json:"userName,omitempty"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entityId,omitempty"`
	Details   json.RawMessage `json:"details,omitempty" swaggertype:"object"`
	CreatedAt time.Time       `json:"createdAt"`
}

// JournalEntryResponse mutación registrada en la bitácora del BFF.
type JournalEntryResponse struct {
	ID        string           `json:"id"`
	Mutation  string           `json:"mutation"`
	TargetIDs []string         `json:"targetIds"`
	OK        bool             `json:"ok"`
	Error     string           `json:"error,omitempty"`
	WeightKg  *decimal.Decimal `json:"weightKg,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
