package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Logistica-bff/internal/application/cachesync"
	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/domain"
	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
	"github.com/jhoicas/Logistica-bff/internal/domain/visibility"
)

const (
	defaultJournalLimit = 50
	maxJournalLimit     = 500
)

// AuditUseCase auditoría del backend y bitácora de mutaciones del BFF.
type AuditUseCase struct {
	repo    repository.AuditLogRepository
	journal repository.MutationJournal
	sync    *cachesync.Synchronizer
	log     zerolog.Logger
}

// NewAuditUseCase construye el caso de uso. journal puede ser nil.
func NewAuditUseCase(repo repository.AuditLogRepository, journal repository.MutationJournal, sync *cachesync.Synchronizer, log zerolog.Logger) *AuditUseCase {
	return &AuditUseCase{repo: repo, journal: journal, sync: sync, log: log}
}

// List registros de auditoría. Solo ADMIN.
func (uc *AuditUseCase) List(ctx context.Context, actor visibility.Actor, f repository.AuditLogFilter) ([]dto.AuditLogResponse, error) {
	if actor.Role != role.Admin {
		return nil, domain.ErrForbidden
	}
	key := uc.sync.Keys().AuditLogs(map[string]string{"userId": f.UserID, "entity": f.Entity, "action": f.Action})
	logs, err := cachesync.Fetch(ctx, uc.sync, key, func(ctx context.Context) ([]entity.AuditLog, error) {
		return uc.repo.List(ctx, f)
	})
	if err != nil {
		if logs, err = degradeList[entity.AuditLog](uc.log, "audit-logs", err); err != nil {
			return nil, err
		}
	}
	out := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, toAuditLogResponse(&logs[i]))
	}
	return out, nil
}

// Create registra una acción del panel en la auditoría del backend.
func (uc *AuditUseCase) Create(ctx context.Context, actor visibility.Actor, in dto.CreateAuditLogRequest) (*dto.AuditLogResponse, error) {
	if strings.TrimSpace(in.Action) == "" || strings.TrimSpace(in.Entity) == "" {
		return nil, domain.ErrInvalidInput
	}
	l, err := uc.repo.Create(ctx, repository.AuditLogWrite{
		Action:   strings.TrimSpace(in.Action),
		Entity:   strings.TrimSpace(in.Entity),
		EntityID: in.EntityID,
		Details:  in.Details,
	})
	uc.sync.Commit(ctx, actor.ID, cachesync.CreateAuditLog, cachesync.Target{}, err)
	if err != nil {
		return nil, err
	}
	out := toAuditLogResponse(l)
	return &out, nil
}

// Journal últimas mutaciones ejecutadas por el actor. Sin bitácora configurada la lista
// es vacía.
func (uc *AuditUseCase) Journal(ctx context.Context, actor visibility.Actor, limit int) ([]dto.JournalEntryResponse, error) {
	if uc.journal == nil {
		return []dto.JournalEntryResponse{}, nil
	}
	if limit <= 0 {
		limit = defaultJournalLimit
	}
	if limit > maxJournalLimit {
		limit = maxJournalLimit
	}
	entries, err := uc.journal.ListByActor(ctx, actor.ID, limit)
	if err != nil {
		uc.log.Warn().Err(err).Str("actor_id", actor.ID).Msg("lectura de bitácora fallida")
		return []dto.JournalEntryResponse{}, nil
	}
	return toJournalResponses(entries), nil
}
