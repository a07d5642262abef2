package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Logistica-bff/internal/application/cachesync"
	"github.com/jhoicas/Logistica-bff/internal/application/querykey"
)

const scanBatch = 200

// QueryCache caché de consultas: valores JSON con TTL, invalidación por prefijo.
type QueryCache struct {
	rdb *redis.Client
}

var _ cachesync.QueryCache = (*QueryCache)(nil)

// NewQueryCache construye la caché.
func NewQueryCache(rdb *redis.Client) *QueryCache {
	return &QueryCache{rdb: rdb}
}

// Get deserializa la clave en dst. Devuelve false si no existe.
func (c *QueryCache) Get(ctx context.Context, key querykey.Key, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// Un valor ilegible (cambio de forma entre versiones) se trata como ausente.
		_ = c.rdb.Del(ctx, key.String()).Err()
		return false, nil
	}
	return true, nil
}

// Set guarda value serializado como JSON.
func (c *QueryCache) Set(ctx context.Context, key querykey.Key, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key.String(), raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate borra cada prefijo y todas las claves que lo extienden.
func (c *QueryCache) Invalidate(ctx context.Context, prefixes ...querykey.Key) error {
	exact := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		exact = append(exact, p.String())
	}
	if err := c.rdb.Del(ctx, exact...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}

	for _, p := range exact {
		if err := c.deleteMatching(ctx, escapeGlob(p)+":*"); err != nil {
			return err
		}
	}
	return nil
}

func (c *QueryCache) deleteMatching(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("cache scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache invalidate: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

var globReplacer = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapeGlob escapa los metacaracteres de MATCH presentes en ids o filtros.
func escapeGlob(s string) string { return globReplacer.Replace(s) }
