package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry mutación ejecutada a través del BFF, exitosa o fallida.
type JournalEntry struct {
	ID        string
	Tenant    string
	ActorID   string
	Mutation  string
	TargetIDs []string
	OK        bool
	Error     string
	WeightKg  *decimal.Decimal // solo en mutaciones de cajas
	CreatedAt time.Time
}

// MutationJournal bitácora append-only de mutaciones.
type MutationJournal interface {
	Append(ctx context.Context, e JournalEntry) error
	ListByActor(ctx context.Context, actorID string, limit int) ([]JournalEntry, error)
}
