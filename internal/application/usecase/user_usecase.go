package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Logistica-bff/internal/application/assignment"
	"github.com/jhoicas/Logistica-bff/internal/application/cachesync"
	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/domain"
	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
	"github.com/jhoicas/Logistica-bff/internal/domain/visibility"
	"github.com/jhoicas/Logistica-bff/pkg/textnorm"
)

// UserFilter filtros del listado de usuarios.
type UserFilter struct {
	Search string
	Role   string
	Status string
}

// UserUseCase usuarios, su estado y sus asignaciones.
type UserUseCase struct {
	catalog    *Catalog
	repo       repository.UserRepository
	history    repository.AssignmentHistoryRepository
	enablement repository.EnablementHistoryRepository
	assign     *assignment.UseCase
	sync       *cachesync.Synchronizer
	log        zerolog.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(
	catalog *Catalog,
	repo repository.UserRepository,
	history repository.AssignmentHistoryRepository,
	enablement repository.EnablementHistoryRepository,
	assign *assignment.UseCase,
	sync *cachesync.Synchronizer,
	log zerolog.Logger,
) *UserUseCase {
	return &UserUseCase{
		catalog:    catalog,
		repo:       repo,
		history:    history,
		enablement: enablement,
		assign:     assign,
		sync:       sync,
		log:        log,
	}
}

// List usuarios visibles para el actor.
func (uc *UserUseCase) List(ctx context.Context, actor visibility.Actor, f UserFilter) ([]dto.UserResponse, error) {
	s, err := uc.catalog.Scope(ctx, actor)
	if err != nil {
		return nil, err
	}
	users, err := uc.catalog.VisibleUsers(ctx, s)
	if err != nil {
		return nil, err
	}
	wantRole := role.Unknown
	if f.Role != "" {
		wantRole = role.Parse(f.Role)
	}
	out := make([]entity.User, 0, len(users))
	for _, u := range users {
		if wantRole.Valid() && u.Role != wantRole {
			continue
		}
		if f.Status != "" && !strings.EqualFold(u.Status, f.Status) {
			continue
		}
		if f.Search != "" && !matchesUser(&u, f.Search) {
			continue
		}
		out = append(out, u)
	}
	return toUserResponses(out), nil
}

func matchesUser(u *entity.User, q string) bool {
	return textnorm.Contains(u.FullName(), q) || textnorm.Contains(u.Email, q) || textnorm.Contains(u.RUT, q)
}

// Get detalle de un usuario. Cada usuario ve su propio detalle; fuera de eso aplica la
// misma visibilidad que el listado.
func (uc *UserUseCase) Get(ctx context.Context, actor visibility.Actor, id string) (*dto.UserResponse, error) {
	u, err := uc.visibleUser(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := toUserResponse(u)
	return &out, nil
}

func (uc *UserUseCase) visibleUser(ctx context.Context, actor visibility.Actor, id string) (*entity.User, error) {
	if id != actor.ID && actor.Role != role.Admin {
		s, err := uc.catalog.Scope(ctx, actor)
		if err != nil {
			return nil, err
		}
		visible, err := uc.catalog.VisibleUsers(ctx, s)
		if err != nil {
			return nil, err
		}
		if !containsUser(visible, id) {
			return nil, domain.ErrNotFound
		}
	}
	u, err := uc.catalog.User(ctx, id)
	if err != nil {
		return nil, degradeOne(uc.log, "user", err)
	}
	return u, nil
}

func containsUser(list []entity.User, id string) bool {
	for _, u := range list {
		if u.ID == id {
			return true
		}
	}
	return false
}

// Create crea un usuario y luego aplica sus áreas o bodegas iniciales en un lote.
// El rol se valida contra la autoridad del actor antes de llamar al backend.
func (uc *UserUseCase) Create(ctx context.Context, actor visibility.Actor, in dto.CreateUserRequest) (*dto.UserWriteResponse, error) {
	f := visibility.New(actor)
	target := role.Parse(in.Role)
	if err := f.CheckRoleAssignment(target); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.RUT) == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.ensureUnique(ctx, in.RUT, in.Email, ""); err != nil {
		return nil, err
	}

	u, err := uc.repo.Create(ctx, repository.UserWrite{
		Name:     strings.TrimSpace(in.Name),
		LastName: strings.TrimSpace(in.LastName),
		Email:    strings.TrimSpace(in.Email),
		RUT:      strings.TrimSpace(in.RUT),
		Phone:    strings.TrimSpace(in.Phone),
		Password: in.Password,
		Role:     target,
	})
	t := cachesync.Target{}
	if u != nil {
		t.UserID = u.ID
	}
	uc.sync.Commit(ctx, actor.ID, cachesync.CreateUser, t, err)
	if err != nil {
		return nil, err
	}

	out := &dto.UserWriteResponse{User: toUserResponse(u)}
	areas, warehouses := scopedTargets(target, in.Areas, in.Warehouses)
	if areas != nil || warehouses != nil {
		report, err := uc.applyAssignments(ctx, actor, u, areas, warehouses)
		if err != nil {
			return nil, err
		}
		out.Assignments = report
	}
	return out, nil
}

// Update edita un usuario visible y, si vienen, sincroniza sus asignaciones.
func (uc *UserUseCase) Update(ctx context.Context, actor visibility.Actor, id string, in dto.UpdateUserRequest) (*dto.UserWriteResponse, error) {
	f := visibility.New(actor)
	if !f.CanWrite() {
		return nil, domain.ErrForbidden
	}
	current, err := uc.visibleUser(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := f.CheckRoleAssignment(current.Role); err != nil {
		return nil, err
	}
	w := repository.UserWrite{
		Name:     current.Name,
		LastName: current.LastName,
		Email:    current.Email,
		RUT:      current.RUT,
		Phone:    current.Phone,
		Role:     current.Role,
	}
	applyUserPatch(&w, in)
	if in.Role != nil {
		w.Role = role.Parse(*in.Role)
		if err := f.CheckRoleAssignment(w.Role); err != nil {
			return nil, err
		}
	}
	if w.RUT != current.RUT || w.Email != current.Email {
		if err := uc.ensureUnique(ctx, w.RUT, w.Email, id); err != nil {
			return nil, err
		}
	}

	u, err := uc.repo.Update(ctx, id, w)
	uc.sync.Commit(ctx, actor.ID, cachesync.UpdateUser, cachesync.Target{UserID: id}, err)
	if err != nil {
		return nil, err
	}

	out := &dto.UserWriteResponse{User: toUserResponse(u)}
	areas, warehouses := scopedTargets(w.Role, in.Areas, in.Warehouses)
	if areas != nil || warehouses != nil {
		report, err := uc.applyAssignments(ctx, actor, current, areas, warehouses)
		if err != nil {
			return nil, err
		}
		out.Assignments = report
	}
	return out, nil
}

func applyUserPatch(w *repository.UserWrite, in dto.UpdateUserRequest) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&w.Name, in.Name)
	set(&w.LastName, in.LastName)
	set(&w.Email, in.Email)
	set(&w.RUT, in.RUT)
	set(&w.Phone, in.Phone)
}

// scopedTargets descarta la dimensión que no aplica al rol: áreas solo para JEFE,
// bodegas solo para SUPERVISOR.
func scopedTargets(r role.Role, areas, warehouses []string) ([]string, []string) {
	switch r {
	case role.Jefe:
		return areas, nil
	case role.Supervisor:
		return nil, warehouses
	default:
		return nil, nil
	}
}

func (uc *UserUseCase) ensureUnique(ctx context.Context, rut, email, excludeID string) error {
	chk, err := uc.repo.ValidateUnique(ctx, rut, email, excludeID)
	if err != nil {
		return err
	}
	switch {
	case chk.RUTTaken && chk.EmailTaken:
		return fmt.Errorf("%w: RUT y email ya registrados", domain.ErrDuplicate)
	case chk.RUTTaken:
		return fmt.Errorf("%w: RUT ya registrado", domain.ErrDuplicate)
	case chk.EmailTaken:
		return fmt.Errorf("%w: email ya registrado", domain.ErrDuplicate)
	}
	return nil
}

// ValidateUnique consulta si RUT o email ya existen, excluyendo opcionalmente a un usuario.
func (uc *UserUseCase) ValidateUnique(ctx context.Context, rut, email, excludeID string) (*dto.UniqueResponse, error) {
	if strings.TrimSpace(rut) == "" && strings.TrimSpace(email) == "" {
		return nil, domain.ErrInvalidInput
	}
	chk, err := uc.repo.ValidateUnique(ctx, rut, email, excludeID)
	if err != nil {
		return nil, err
	}
	return &dto.UniqueResponse{RUTExists: chk.RUTTaken, EmailExists: chk.EmailTaken}, nil
}

// ToggleStatus alterna HABILITADO/DESHABILITADO con un motivo que queda en el historial.
func (uc *UserUseCase) ToggleStatus(ctx context.Context, actor visibility.Actor, id, reason string) (*dto.UserResponse, error) {
	f := visibility.New(actor)
	if !f.CanWrite() || id == actor.ID {
		return nil, domain.ErrForbidden
	}
	current, err := uc.visibleUser(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := f.CheckRoleAssignment(current.Role); err != nil {
		return nil, err
	}
	u, err := uc.repo.SetStatus(ctx, id, current.ToggledStatus(), strings.TrimSpace(reason))
	uc.sync.Commit(ctx, actor.ID, cachesync.ToggleUserStatus, cachesync.Target{UserID: id}, err)
	if err != nil {
		return nil, err
	}
	out := toUserResponse(u)
	return &out, nil
}

// ByArea miembros de un área que el actor puede gestionar.
func (uc *UserUseCase) ByArea(ctx context.Context, actor visibility.Actor, areaID string) ([]dto.UserResponse, error) {
	if !visibility.New(actor).CanManageArea(areaID) {
		return nil, domain.ErrForbidden
	}
	users, err := uc.catalog.UsersByArea(ctx, areaID)
	if err != nil {
		if users, err = degradeList[entity.User](uc.log, "users-by-area", err); err != nil {
			return nil, err
		}
	}
	return toUserResponses(users), nil
}

// AssignmentHistory historial de asignaciones de un usuario visible.
func (uc *UserUseCase) AssignmentHistory(ctx context.Context, actor visibility.Actor, userID string) ([]dto.AssignmentHistoryResponse, error) {
	entries, err := uc.assignmentHistory(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	return toAssignmentHistory(entries), nil
}

func (uc *UserUseCase) assignmentHistory(ctx context.Context, actor visibility.Actor, userID string) ([]entity.AssignmentHistoryEntry, error) {
	if _, err := uc.visibleUser(ctx, actor, userID); err != nil {
		return nil, err
	}
	key := uc.sync.Keys().AssignmentHistory(userID)
	entries, err := cachesync.Fetch(ctx, uc.sync, key, func(ctx context.Context) ([]entity.AssignmentHistoryEntry, error) {
		return uc.history.ListByUser(ctx, userID)
	})
	if err != nil {
		return degradeList[entity.AssignmentHistoryEntry](uc.log, "assignment-history", err)
	}
	return entries, nil
}

// EnablementHistory cambios de estado de un usuario visible.
func (uc *UserUseCase) EnablementHistory(ctx context.Context, actor visibility.Actor, userID string) ([]dto.EnablementHistoryResponse, error) {
	if _, err := uc.visibleUser(ctx, actor, userID); err != nil {
		return nil, err
	}
	key := uc.sync.Keys().UserEnablementHistory(userID)
	entries, err := cachesync.Fetch(ctx, uc.sync, key, func(ctx context.Context) ([]entity.UserEnablementHistoryEntry, error) {
		return uc.enablement.ListByUser(ctx, userID)
	})
	if err != nil {
		if entries, err = degradeList[entity.UserEnablementHistoryEntry](uc.log, "user-enablement-history", err); err != nil {
			return nil, err
		}
	}
	return toEnablementHistory(entries), nil
}

// AllEnablementHistory historial global de habilitación. Solo ADMIN.
func (uc *UserUseCase) AllEnablementHistory(ctx context.Context, actor visibility.Actor) ([]dto.EnablementHistoryResponse, error) {
	if actor.Role != role.Admin {
		return nil, domain.ErrForbidden
	}
	entries, err := cachesync.Fetch(ctx, uc.sync, uc.sync.Keys().EnablementHistory(), uc.enablement.List)
	if err != nil {
		if entries, err = degradeList[entity.UserEnablementHistoryEntry](uc.log, "enablement-history", err); err != nil {
			return nil, err
		}
	}
	return toEnablementHistory(entries), nil
}

// UpdateAssignments lleva las áreas o bodegas del usuario al conjunto deseado con un lote
// de altas y bajas. Solo se consideran destinos que el actor puede asignar.
func (uc *UserUseCase) UpdateAssignments(ctx context.Context, actor visibility.Actor, userID string, in dto.UpdateAssignmentsRequest) (*dto.BatchResponse, error) {
	if !visibility.New(actor).CanWrite() {
		return nil, domain.ErrForbidden
	}
	u, err := uc.visibleUser(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	areas, warehouses := scopedTargets(u.Role, in.Areas, in.Warehouses)
	if areas == nil && warehouses == nil {
		return nil, fmt.Errorf("%w: el rol %s no recibe asignaciones", domain.ErrInvalidInput, u.Role)
	}
	return uc.applyAssignments(ctx, actor, u, areas, warehouses)
}

func (uc *UserUseCase) applyAssignments(ctx context.Context, actor visibility.Actor, u *entity.User, areas, warehouses []string) (*dto.BatchResponse, error) {
	s, err := uc.catalog.Scope(ctx, actor)
	if err != nil {
		return nil, err
	}
	plan := assignment.PlanUserAssignments(u, areas, warehouses)
	if plan.Empty() {
		out := ToBatchResponse(assignment.Report{})
		return &out, nil
	}

	assignableAreas := make(map[string]bool)
	for _, a := range s.Filter.AssignableAreas(s.AllAreas) {
		assignableAreas[a.ID] = true
	}
	assignableWarehouses := make(map[string]bool)
	for _, w := range s.Filter.AssignableWarehouses(s.AllWarehouses) {
		assignableWarehouses[w.ID] = true
	}
	for _, id := range plan.AddAreas {
		if !assignableAreas[id] {
			return nil, fmt.Errorf("%w: área %s fuera del alcance", domain.ErrForbidden, id)
		}
	}
	for _, id := range plan.AddWarehouses {
		if !assignableWarehouses[id] {
			return nil, fmt.Errorf("%w: bodega %s fuera del alcance", domain.ErrForbidden, id)
		}
	}

	labels := make(map[string]string, len(s.AllAreas)+len(s.AllWarehouses))
	for _, a := range s.AllAreas {
		labels[a.ID] = a.Name
	}
	byID := make(map[string]*entity.Warehouse, len(s.AllWarehouses))
	for i := range s.AllWarehouses {
		w := &s.AllWarehouses[i]
		labels[w.ID] = w.Name
		byID[w.ID] = w
	}

	report := uc.assign.ApplyUserAssignments(ctx, actor, u.ID, plan, labels, byID)
	if !report.OK() {
		uc.log.Warn().Str("user_id", u.ID).Int("failed", len(report.Failed)).Int("total", report.Total()).
			Msg("lote de asignaciones con fallos parciales")
	}
	out := ToBatchResponse(report)
	return &out, nil
}
