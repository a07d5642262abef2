package repository

import (
	"context"

	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
)

// UserWrite datos para crear o actualizar un usuario. Password solo en la creación.
type UserWrite struct {
	Name     string
	LastName string
	Email    string
	RUT      string
	Phone    string
	Password string
	Role     role.Role
}

// UniqueCheck resultado de /users/validate-unique.
type UniqueCheck struct {
	RUTTaken   bool
	EmailTaken bool
}

// UserRepository puerto hacia el backend para User.
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	ListByArea(ctx context.Context, areaID string) ([]entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Profile(ctx context.Context) (*entity.User, error)
	Create(ctx context.Context, in UserWrite) (*entity.User, error)
	Update(ctx context.Context, id string, in UserWrite) (*entity.User, error)
	SetStatus(ctx context.Context, id, status, reason string) (*entity.User, error)
	ValidateUnique(ctx context.Context, rut, email, excludeID string) (*UniqueCheck, error)
}
