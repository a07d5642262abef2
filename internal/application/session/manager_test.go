package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-bff/internal/application/session"
)

// --- fakes ---

type memStore struct {
	mu      sync.Mutex
	data    map[string]session.Credentials
	cleared []string
}

func newMemStore() *memStore { return &memStore{data: map[string]session.Credentials{}} }

func (s *memStore) Save(_ context.Context, subject string, c session.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[subject] = c
	return nil
}

func (s *memStore) Load(_ context.Context, subject string) (*session.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data[subject]
	if !ok {
		return nil, session.ErrNoSession
	}
	return &c, nil
}

func (s *memStore) Clear(_ context.Context, subject string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, subject)
	s.cleared = append(s.cleared, subject)
	return nil
}

type recNotifier struct {
	mu     sync.Mutex
	events []session.Event
}

func (n *recNotifier) SessionExpired(_ context.Context, ev session.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return nil
}

func (n *recNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newManager(t *testing.T) (*session.Manager, *memStore, *recNotifier, *clock) {
	t.Helper()
	store := newMemStore()
	notif := &recNotifier{}
	clk := &clock{t: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	m := session.NewManager(store, notif, session.Config{
		GraceWindow:   3 * time.Second,
		RedirectDelay: 1500 * time.Millisecond,
		LoginPath:     "/login",
	}, zerolog.Nop()).WithClock(clk.now)
	return m, store, notif, clk
}

// --- tests ---

func TestHandleUnauthorized_ExpiraUnaSolaVez(t *testing.T) {
	m, store, notif, clk := newManager(t)
	ctx := context.Background()
	require.NoError(t, m.Init(ctx, "u1", "tok", "ADMIN"))
	clk.advance(10 * time.Second)

	assert.Equal(t, session.Expired, m.HandleUnauthorized(ctx, "u1", "/warehouses"))
	assert.Equal(t, session.AlreadyRedirecting, m.HandleUnauthorized(ctx, "u1", "/areas"))

	assert.Equal(t, 1, notif.count())
	assert.Equal(t, []string{"u1"}, store.cleared)
	assert.True(t, m.Redirecting("u1"))

	ev := notif.events[0]
	assert.Equal(t, "/login", ev.RedirectTo)
	assert.Equal(t, int64(1500), ev.RedirectAfterMs)
	assert.Equal(t, "/warehouses", ev.Path)
}

func TestHandleUnauthorized_ProfileNoRedirige(t *testing.T) {
	m, store, notif, clk := newManager(t)
	ctx := context.Background()
	require.NoError(t, m.Init(ctx, "u1", "tok", "ADMIN"))
	clk.advance(time.Minute)

	assert.Equal(t, session.IgnoredProfile, m.HandleUnauthorized(ctx, "u1", "/auth/profile"))
	assert.Equal(t, session.IgnoredProfile, m.HandleUnauthorized(ctx, "u1", "/api/auth/profile?x=1"))
	assert.Zero(t, notif.count())
	assert.Empty(t, store.cleared)
	assert.False(t, m.Redirecting("u1"))
}

func TestHandleUnauthorized_VentanaDeGracia(t *testing.T) {
	m, _, notif, clk := newManager(t)
	ctx := context.Background()
	require.NoError(t, m.Init(ctx, "u1", "tok", "JEFE_AREA"))

	clk.advance(2 * time.Second)
	assert.Equal(t, session.IgnoredGrace, m.HandleUnauthorized(ctx, "u1", "/users"))
	assert.Zero(t, notif.count())

	clk.advance(2 * time.Second)
	assert.Equal(t, session.Expired, m.HandleUnauthorized(ctx, "u1", "/users"))
}

func TestHandleUnauthorized_Concurrente(t *testing.T) {
	m, _, notif, _ := newManager(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.HandleUnauthorized(ctx, "u2", "/boxes")
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, notif.count())
}

func TestInit_ReiniciaRedireccion(t *testing.T) {
	m, _, _, clk := newManager(t)
	ctx := context.Background()

	m.HandleUnauthorized(ctx, "u1", "/areas")
	require.True(t, m.Redirecting("u1"))

	require.NoError(t, m.Init(ctx, "u1", "nuevo", "ADMIN"))
	assert.False(t, m.Redirecting("u1"))

	st, err := m.Status(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, st.Active)
	assert.Equal(t, clk.t, st.InitializedAt)

	m.Reset("u1")
	assert.False(t, m.Redirecting("u1"))
}

func TestMarkExpired_IgnoraEventosAnterioresAlInit(t *testing.T) {
	m, _, notif, clk := newManager(t)
	ctx := context.Background()
	antes := clk.t
	clk.advance(time.Minute)
	require.NoError(t, m.Init(ctx, "u1", "tok", "ADMIN"))

	m.MarkExpired(session.Event{Subject: "u1", At: antes})
	assert.False(t, m.Redirecting("u1"))

	m.MarkExpired(session.Event{Subject: "u1", At: clk.t.Add(time.Second)})
	assert.True(t, m.Redirecting("u1"))
	assert.Zero(t, notif.count(), "un evento remoto no se vuelve a publicar")
}
