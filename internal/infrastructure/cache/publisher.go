package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Logistica-bff/internal/application/session"
)

// SessionEvents publica y consume eventos session-expired por Pub/Sub.
type SessionEvents struct {
	rdb     *redis.Client
	channel string
	log     zerolog.Logger
}

var _ session.Notifier = (*SessionEvents)(nil)

// NewSessionEvents el canal queda namespaced por tenant.
func NewSessionEvents(rdb *redis.Client, tenant string, log zerolog.Logger) *SessionEvents {
	return &SessionEvents{rdb: rdb, channel: tenant + ":" + session.EventSessionExpired, log: log}
}

// Channel nombre del canal.
func (e *SessionEvents) Channel() string { return e.channel }

// SessionExpired publica el evento.
func (e *SessionEvents) SessionExpired(ctx context.Context, ev session.Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	if err := e.rdb.Publish(ctx, e.channel, raw).Err(); err != nil {
		return fmt.Errorf("publicar %s: %w", e.channel, err)
	}
	return nil
}

// Subscribe entrega cada evento recibido a handle hasta que ctx se cancele.
// Los mensajes ilegibles se descartan con un warning.
func (e *SessionEvents) Subscribe(ctx context.Context, handle func(session.Event)) error {
	sub := e.rdb.Subscribe(ctx, e.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("suscribir %s: %w", e.channel, err)
	}
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev session.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				e.log.Warn().Err(err).Msg("evento de sesión ilegible")
				continue
			}
			handle(ev)
		}
	}
}
