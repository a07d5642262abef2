package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Logistica-bff/internal/application/querykey"
	"github.com/jhoicas/Logistica-bff/internal/application/session"
)

// SessionStore credenciales de sesión por sujeto en un hash de Redis.
// Limpiar una sesión borra también el perfil cacheado del sujeto.
type SessionStore struct {
	rdb  *redis.Client
	keys querykey.Builder
	ttl  time.Duration
}

var _ session.CredentialStore = (*SessionStore)(nil)

// NewSessionStore construye el almacén; ttl es la vida máxima de un registro de sesión.
func NewSessionStore(rdb *redis.Client, keys querykey.Builder, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, keys: keys, ttl: ttl}
}

func (s *SessionStore) key(subject string) string {
	return s.keys.Tenant() + ":session:" + subject
}

// Save guarda las credenciales del sujeto.
func (s *SessionStore) Save(ctx context.Context, subject string, c session.Credentials) error {
	k := s.key(subject)
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, k,
			"token", c.Token,
			"role", c.Role,
			"initialized_at", c.InitializedAt.UTC().Format(time.RFC3339Nano),
		)
		p.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Load devuelve las credenciales o session.ErrNoSession.
func (s *SessionStore) Load(ctx context.Context, subject string) (*session.Credentials, error) {
	vals, err := s.rdb.HGetAll(ctx, s.key(subject)).Result()
	if errors.Is(err, redis.Nil) || (err == nil && len(vals) == 0) {
		return nil, session.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	at, _ := time.Parse(time.RFC3339Nano, vals["initialized_at"])
	return &session.Credentials{Token: vals["token"], Role: vals["role"], InitializedAt: at}, nil
}

// Clear borra credenciales y perfil cacheado.
func (s *SessionStore) Clear(ctx context.Context, subject string) error {
	if err := s.rdb.Del(ctx, s.key(subject), s.keys.Profile(subject).String()).Err(); err != nil {
		return fmt.Errorf("limpiar sesión: %w", err)
	}
	return nil
}
