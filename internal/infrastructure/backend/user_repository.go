package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre /users.
type UserRepo struct {
	c *Client
}

// NewUserRepository construye el adaptador.
func NewUserRepository(c *Client) *UserRepo {
	return &UserRepo{c: c}
}

// List todos los usuarios.
func (r *UserRepo) List(ctx context.Context) ([]entity.User, error) {
	var out []userDTO
	if err := r.c.get(ctx, "/users", nil, &out); err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	return usersToEntities(out), nil
}

// ListByArea miembros de un área.
func (r *UserRepo) ListByArea(ctx context.Context, areaID string) ([]entity.User, error) {
	var out []userDTO
	if err := r.c.get(ctx, pathf("/users/area/%s", areaID), nil, &out); err != nil {
		return nil, fmt.Errorf("listar usuarios del área: %w", err)
	}
	return usersToEntities(out), nil
}

// GetByID detalle de un usuario.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out userDTO
	if err := r.c.get(ctx, pathf("/users/%s", id), nil, &out); err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	u := out.toEntity()
	return &u, nil
}

// Profile perfil del dueño del token.
func (r *UserRepo) Profile(ctx context.Context) (*entity.User, error) {
	var out userDTO
	if err := r.c.get(ctx, "/auth/profile", nil, &out); err != nil {
		return nil, fmt.Errorf("obtener perfil: %w", err)
	}
	u := out.toEntity()
	return &u, nil
}

// Create crea un usuario. El rol viaja en el vocabulario del backend.
func (r *UserRepo) Create(ctx context.Context, in repository.UserWrite) (*entity.User, error) {
	var out userDTO
	if err := r.c.post(ctx, "/users", toUserWrite(in), &out); err != nil {
		return nil, fmt.Errorf("crear usuario: %w", err)
	}
	u := out.toEntity()
	return &u, nil
}

// Update actualiza un usuario.
func (r *UserRepo) Update(ctx context.Context, id string, in repository.UserWrite) (*entity.User, error) {
	var out userDTO
	if err := r.c.put(ctx, pathf("/users/%s", id), toUserWrite(in), &out); err != nil {
		return nil, fmt.Errorf("actualizar usuario: %w", err)
	}
	u := out.toEntity()
	return &u, nil
}

// SetStatus cambia HABILITADO/DESHABILITADO; el backend registra el historial.
func (r *UserRepo) SetStatus(ctx context.Context, id, status, reason string) (*entity.User, error) {
	var out userDTO
	if err := r.c.put(ctx, pathf("/users/%s", id), userStatusDTO{Status: status, Reason: reason}, &out); err != nil {
		return nil, fmt.Errorf("cambiar estado del usuario: %w", err)
	}
	u := out.toEntity()
	return &u, nil
}

// ValidateUnique consulta si RUT o email ya están en uso (excluyendo excludeID).
func (r *UserRepo) ValidateUnique(ctx context.Context, rut, email, excludeID string) (*repository.UniqueCheck, error) {
	q := url.Values{}
	if rut != "" {
		q.Set("rut", rut)
	}
	if email != "" {
		q.Set("email", email)
	}
	if excludeID != "" {
		q.Set("excludeId", excludeID)
	}
	var out uniqueDTO
	if err := r.c.get(ctx, "/users/validate-unique", q, &out); err != nil {
		return nil, fmt.Errorf("validar unicidad: %w", err)
	}
	return &repository.UniqueCheck{RUTTaken: out.RUTExists, EmailTaken: out.EmailExists}, nil
}

func toUserWrite(in repository.UserWrite) userWriteDTO {
	return userWriteDTO{
		Name:     in.Name,
		LastName: in.LastName,
		Email:    in.Email,
		RUT:      in.RUT,
		Phone:    in.Phone,
		Password: in.Password,
		Role:     role.ToBackend(in.Role),
	}
}
