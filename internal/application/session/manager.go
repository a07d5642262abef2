// Package session maneja la expiración de sesión cuando el backend responde 401.
// Todo el estado (sesiones iniciadas y redirecciones en curso) vive en un único Manager
// con ciclo de vida explícito: Init al iniciar sesión, Reset tras navegar al login.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EventSessionExpired nombre del evento publicado al expirar una sesión.
const EventSessionExpired = "session-expired"

// ProfilePath ruta del backend excluida del manejo de 401: el perfil se consulta
// justamente para saber si hay sesión.
const ProfilePath = "/auth/profile"

// ErrNoSession no hay credenciales guardadas para el sujeto.
var ErrNoSession = errors.New("sesión no inicializada")

// Credentials lo que se guarda de una sesión.
type Credentials struct {
	Token         string
	Role          string
	InitializedAt time.Time
}

// Event payload de session-expired.
type Event struct {
	Subject         string    `json:"subject"`
	Path            string    `json:"path"`
	RedirectTo      string    `json:"redirectTo"`
	RedirectAfterMs int64     `json:"redirectAfterMs"`
	At              time.Time `json:"at"`
}

// CredentialStore almacén de credenciales por sujeto.
type CredentialStore interface {
	Save(ctx context.Context, subject string, c Credentials) error
	Load(ctx context.Context, subject string) (*Credentials, error)
	Clear(ctx context.Context, subject string) error
}

// Notifier publica eventos de sesión.
type Notifier interface {
	SessionExpired(ctx context.Context, ev Event) error
}

// Outcome qué hizo HandleUnauthorized con un 401.
type Outcome int

const (
	// Expired se limpió la sesión, se publicó el evento y el sujeto quedó redirigiendo.
	Expired Outcome = iota
	// IgnoredProfile el 401 vino de /auth/profile.
	IgnoredProfile
	// IgnoredGrace el 401 llegó dentro de la ventana de gracia tras Init.
	IgnoredGrace
	// AlreadyRedirecting ya hay una redirección en curso para el sujeto.
	AlreadyRedirecting
)

func (o Outcome) String() string {
	switch o {
	case Expired:
		return "expired"
	case IgnoredProfile:
		return "ignored-profile"
	case IgnoredGrace:
		return "ignored-grace"
	case AlreadyRedirecting:
		return "already-redirecting"
	default:
		return "unknown"
	}
}

// Config parámetros del manager.
type Config struct {
	GraceWindow   time.Duration
	RedirectDelay time.Duration
	LoginPath     string
}

type subjectState struct {
	initializedAt time.Time
	redirecting   bool
}

// Status estado observable de la sesión de un sujeto.
type Status struct {
	Subject       string    `json:"subject"`
	Active        bool      `json:"active"`
	Redirecting   bool      `json:"redirecting"`
	Role          string    `json:"role,omitempty"`
	InitializedAt time.Time `json:"initializedAt,omitempty"`
	RedirectTo    string    `json:"redirectTo,omitempty"`
}

// Manager dueño del estado de sesión.
type Manager struct {
	mu       sync.Mutex
	subjects map[string]*subjectState

	store    CredentialStore
	notifier Notifier
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
}

// NewManager construye el manager.
func NewManager(store CredentialStore, notifier Notifier, cfg Config, log zerolog.Logger) *Manager {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	return &Manager{
		subjects: make(map[string]*subjectState),
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// LoginPath destino de la redirección.
func (m *Manager) LoginPath() string { return m.cfg.LoginPath }

// Init registra una sesión recién iniciada: guarda credenciales, abre la ventana de gracia
// y limpia cualquier redirección pendiente del sujeto.
func (m *Manager) Init(ctx context.Context, subject, token, role string) error {
	now := m.now()
	if err := m.store.Save(ctx, subject, Credentials{Token: token, Role: role, InitializedAt: now}); err != nil {
		return err
	}
	m.mu.Lock()
	m.subjects[subject] = &subjectState{initializedAt: now}
	m.mu.Unlock()
	return nil
}

// Reset olvida el estado en memoria del sujeto (navegación al login completada).
func (m *Manager) Reset(subject string) {
	m.mu.Lock()
	delete(m.subjects, subject)
	m.mu.Unlock()
}

// Redirecting informa si el sujeto tiene una redirección al login en curso.
func (m *Manager) Redirecting(subject string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.subjects[subject]
	return ok && st.redirecting
}

// HandleUnauthorized procesa un 401 del backend para el sujeto y la ruta dados.
// El chequeo y la marca de redirección ocurren bajo el mismo lock, así dos 401
// concurrentes producen un solo Expired.
func (m *Manager) HandleUnauthorized(ctx context.Context, subject, path string) Outcome {
	if isProfilePath(path) {
		return IgnoredProfile
	}

	now := m.now()
	m.mu.Lock()
	st, ok := m.subjects[subject]
	if !ok {
		st = &subjectState{}
		m.subjects[subject] = st
	}
	switch {
	case st.redirecting:
		m.mu.Unlock()
		return AlreadyRedirecting
	case !st.initializedAt.IsZero() && now.Sub(st.initializedAt) < m.cfg.GraceWindow:
		m.mu.Unlock()
		return IgnoredGrace
	}
	st.redirecting = true
	m.mu.Unlock()

	log := m.log.With().Str("subject", subject).Str("path", path).Logger()
	if err := m.store.Clear(ctx, subject); err != nil {
		log.Error().Err(err).Msg("no se pudieron limpiar las credenciales")
	}
	ev := Event{
		Subject:         subject,
		Path:            path,
		RedirectTo:      m.cfg.LoginPath,
		RedirectAfterMs: m.cfg.RedirectDelay.Milliseconds(),
		At:              now,
	}
	if err := m.notifier.SessionExpired(ctx, ev); err != nil {
		log.Error().Err(err).Msg("no se pudo publicar session-expired")
	}
	log.Info().Msg("sesión expirada")
	return Expired
}

// MarkExpired aplica un evento recibido desde otra instancia: marca la redirección
// sin volver a limpiar ni publicar.
func (m *Manager) MarkExpired(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.subjects[ev.Subject]
	if !ok {
		st = &subjectState{}
		m.subjects[ev.Subject] = st
	}
	if !st.initializedAt.IsZero() && ev.At.Before(st.initializedAt) {
		return
	}
	st.redirecting = true
}

// Status estado actual de la sesión del sujeto.
func (m *Manager) Status(ctx context.Context, subject string) (Status, error) {
	st := Status{Subject: subject, Redirecting: m.Redirecting(subject)}
	if st.Redirecting {
		st.RedirectTo = m.cfg.LoginPath
	}
	c, err := m.store.Load(ctx, subject)
	if errors.Is(err, ErrNoSession) {
		return st, nil
	}
	if err != nil {
		return st, err
	}
	st.Active = !st.Redirecting
	st.Role = c.Role
	st.InitializedAt = c.InitializedAt
	return st, nil
}

func isProfilePath(path string) bool {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return strings.HasSuffix(strings.TrimRight(path, "/"), ProfilePath)
}
