package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-bff/internal/domain"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema crea la tabla de la bitácora si no existe.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}

var _ repository.MutationJournal = (*JournalRepo)(nil)

// JournalRepo bitácora de mutaciones sobre PostgreSQL (usable con pool o tx).
type JournalRepo struct {
	q      Querier
	tenant string
}

// NewJournalRepository construye el adaptador; ListByActor se acota al tenant.
func NewJournalRepository(q Querier, tenant string) *JournalRepo {
	return &JournalRepo{q: q, tenant: tenant}
}

// Append inserta una entrada. Asigna ID y CreatedAt si vienen vacíos.
func (r *JournalRepo) Append(ctx context.Context, e repository.JournalEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Tenant == "" {
		e.Tenant = r.tenant
	}
	targets := e.TargetIDs
	if targets == nil {
		targets = []string{}
	}
	var errText *string
	if e.Error != "" {
		errText = &e.Error
	}

	query := `
		INSERT INTO mutation_journal (id, tenant, actor_id, mutation, target_ids, ok, error, weight_kg, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Tenant, e.ActorID, e.Mutation, targets, e.OK, errText, e.WeightKg, e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert journal: %w", err)
	}
	return nil
}

// ListByActor últimas mutaciones del actor, de la más nueva a la más vieja.
func (r *JournalRepo) ListByActor(ctx context.Context, actorID string, limit int) ([]repository.JournalEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	query := `
		SELECT id, tenant, actor_id, mutation, target_ids, ok, COALESCE(error, ''), weight_kg, created_at
		FROM mutation_journal
		WHERE tenant = $1 AND actor_id = $2
		ORDER BY created_at DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, r.tenant, actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	defer rows.Close()

	list := make([]repository.JournalEntry, 0)
	for rows.Next() {
		var e repository.JournalEntry
		var weight decimal.NullDecimal
		if err := rows.Scan(&e.ID, &e.Tenant, &e.ActorID, &e.Mutation, &e.TargetIDs, &e.OK, &e.Error, &weight, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan journal: %w", err)
		}
		if weight.Valid {
			w := weight.Decimal
			e.WeightKg = &w
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
