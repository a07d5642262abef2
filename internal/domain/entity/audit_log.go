package entity

import (
	"encoding/json"
	"time"
)

// AuditLog registro de auditoría que guarda el backend.
type AuditLog struct {
	ID        string
	UserID    string
	UserName  string
	Action    string
	Entity    string
	EntityID  string
	Details   json.RawMessage
	CreatedAt time.Time
}
