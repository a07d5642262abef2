package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Logistica-bff/internal/application/cachesync"
	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/application/session"
	"github.com/jhoicas/Logistica-bff/internal/domain"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
	"github.com/jhoicas/Logistica-bff/internal/domain/visibility"
)

// SessionUseCase inicio de sesión en el BFF, perfil y resolución del actor de cada request.
type SessionUseCase struct {
	catalog  *Catalog
	sessions *session.Manager
	sync     *cachesync.Synchronizer
	log      zerolog.Logger
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(catalog *Catalog, sessions *session.Manager, sync *cachesync.Synchronizer, log zerolog.Logger) *SessionUseCase {
	return &SessionUseCase{catalog: catalog, sessions: sessions, sync: sync, log: log}
}

// Start (re)inicializa la sesión del sujeto: guarda credenciales, abre la ventana de
// gracia y carga el perfil fresco desde el backend.
func (uc *SessionUseCase) Start(ctx context.Context, subject, token string, claimRole role.Role) (*dto.ProfileResponse, error) {
	if err := uc.sessions.Init(ctx, subject, token, claimRole.String()); err != nil {
		return nil, err
	}
	if err := uc.sync.InvalidateKeys(ctx, uc.sync.Keys().Profile(subject)); err != nil {
		uc.log.Warn().Err(err).Str("subject", subject).Msg("no se pudo descartar el perfil cacheado")
	}
	return uc.Profile(ctx, subject, claimRole)
}

// Profile perfil del usuario autenticado con lo que puede hacer.
func (uc *SessionUseCase) Profile(ctx context.Context, subject string, claimRole role.Role) (*dto.ProfileResponse, error) {
	u, err := uc.catalog.Profile(ctx, subject)
	if err != nil {
		return nil, err
	}
	if !u.Role.Valid() {
		u.Role = claimRole
	}
	f := visibility.New(visibility.ActorFromUser(u))
	assignable := make([]string, 0, 3)
	for _, r := range []role.Role{role.Admin, role.Jefe, role.Supervisor} {
		if f.CanAssignRole(r) {
			assignable = append(assignable, r.String())
		}
	}
	return &dto.ProfileResponse{
		User:            toUserResponse(u),
		CanWrite:        f.CanWrite(),
		AssignableRoles: assignable,
	}, nil
}

// Actor resuelve el actor de un request a partir del perfil cacheado. Si el backend no
// informa rol se usa el del token.
func (uc *SessionUseCase) Actor(ctx context.Context, subject string, claimRole role.Role) (visibility.Actor, error) {
	u, err := uc.catalog.Profile(ctx, subject)
	if err != nil {
		return visibility.Actor{}, err
	}
	actor := visibility.ActorFromUser(u)
	if actor.ID == "" {
		actor.ID = subject
	}
	if !actor.Role.Valid() {
		actor.Role = claimRole
	}
	if !actor.Role.Valid() {
		return visibility.Actor{}, domain.ErrForbidden
	}
	return actor, nil
}

// Status estado de la sesión del sujeto en el BFF.
func (uc *SessionUseCase) Status(ctx context.Context, subject string) (*dto.SessionStatusResponse, error) {
	st, err := uc.sessions.Status(ctx, subject)
	if err != nil {
		return nil, err
	}
	return &dto.SessionStatusResponse{
		Active:        st.Active,
		Redirecting:   st.Redirecting,
		Role:          st.Role,
		InitializedAt: st.InitializedAt,
		RedirectTo:    st.RedirectTo,
	}, nil
}

// Reset limpia la marca de redirección tras llegar al login.
func (uc *SessionUseCase) Reset(subject string) {
	uc.sessions.Reset(subject)
}
