// Package cachesync mantiene la caché de consultas coherente con el backend:
// lee a través de la caché y, tras cada mutación exitosa, invalida exactamente las
// claves que la tabla declara para esa mutación. Nunca modifica entidades cacheadas.
package cachesync

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-bff/internal/application/querykey"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
)

// QueryCache almacén de consultas cacheadas con invalidación por prefijo.
type QueryCache interface {
	Get(ctx context.Context, key querykey.Key, dst any) (bool, error)
	Set(ctx context.Context, key querykey.Key, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, prefixes ...querykey.Key) error
}

// Synchronizer caché de consultas más bitácora de mutaciones (opcional).
type Synchronizer struct {
	cache   QueryCache
	keys    querykey.Builder
	ttl     time.Duration
	journal repository.MutationJournal
	log     zerolog.Logger
}

// NewSynchronizer construye el sincronizador. journal puede ser nil.
func NewSynchronizer(cache QueryCache, keys querykey.Builder, ttl time.Duration, journal repository.MutationJournal, log zerolog.Logger) *Synchronizer {
	return &Synchronizer{cache: cache, keys: keys, ttl: ttl, journal: journal, log: log}
}

// Keys builder de claves del tenant.
func (s *Synchronizer) Keys() querykey.Builder { return s.keys }

// Commit cierra una mutación: si err es nil invalida las claves de la tabla; en ambos
// casos registra el resultado en la bitácora. Los fallos de caché o bitácora se loguean
// y no se propagan: la escritura en el backend ya ocurrió.
func (s *Synchronizer) Commit(ctx context.Context, actorID string, m Mutation, t Target, err error) {
	s.CommitWeighted(ctx, actorID, m, t, nil, err)
}

// CommitWeighted igual que Commit, con el peso involucrado (mutaciones de cajas).
func (s *Synchronizer) CommitWeighted(ctx context.Context, actorID string, m Mutation, t Target, weightKg *decimal.Decimal, err error) {
	if err == nil {
		s.Invalidate(ctx, m, t)
	}
	if s.journal == nil {
		return
	}
	entry := repository.JournalEntry{
		Tenant:    s.keys.Tenant(),
		ActorID:   actorID,
		Mutation:  string(m),
		TargetIDs: t.IDs(),
		OK:        err == nil,
		WeightKg:  weightKg,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if jerr := s.journal.Append(context.WithoutCancel(ctx), entry); jerr != nil {
		s.log.Warn().Err(jerr).Str("mutation", string(m)).Msg("no se pudo registrar la mutación en la bitácora")
	}
}

// Invalidate invalida las claves de m para todos los targets en una sola operación.
func (s *Synchronizer) Invalidate(ctx context.Context, m Mutation, targets ...Target) {
	keys := Keys(s.keys, m, targets...)
	if len(keys) == 0 {
		return
	}
	if err := s.cache.Invalidate(context.WithoutCancel(ctx), keys...); err != nil {
		s.log.Error().Err(err).Str("mutation", string(m)).Int("keys", len(keys)).Msg("invalidación de caché fallida")
		return
	}
	s.log.Debug().Str("mutation", string(m)).Int("keys", len(keys)).Msg("caché invalidada")
}

// InvalidateKeys invalida claves sueltas (perfil de sesión, por ejemplo).
func (s *Synchronizer) InvalidateKeys(ctx context.Context, keys ...querykey.Key) error {
	return s.cache.Invalidate(ctx, keys...)
}

// Fetch lee key desde la caché o, si no está, la carga con load y la guarda.
// Solo los resultados exitosos se cachean; un error de caché degrada a leer del backend.
func Fetch[T any](ctx context.Context, s *Synchronizer, key querykey.Key, load func(context.Context) (T, error)) (T, error) {
	var cached T
	ok, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key.String()).Msg("lectura de caché fallida")
	} else if ok {
		return cached, nil
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key.String()).Msg("escritura de caché fallida")
	}
	return v, nil
}
