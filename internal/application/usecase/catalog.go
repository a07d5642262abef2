// Package usecase contiene los casos de uso del panel. Cada lectura pasa por la caché de
// consultas y por el filtro de visibilidad del rol que consulta; cada escritura hace una
// llamada al backend y cierra con cachesync.Commit.
//
// Política de errores: las lecturas loguean y degradan (lista vacía o no encontrado);
// las escrituras siempre propagan.
package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Logistica-bff/internal/application/cachesync"
	"github.com/jhoicas/Logistica-bff/internal/domain"
	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
)

// Catalog lecturas cacheadas compartidas por los casos de uso.
type Catalog struct {
	areas      repository.AreaRepository
	users      repository.UserRepository
	warehouses repository.WarehouseRepository
	sync       *cachesync.Synchronizer
	log        zerolog.Logger
}

// NewCatalog construye el catálogo.
func NewCatalog(
	areas repository.AreaRepository,
	users repository.UserRepository,
	warehouses repository.WarehouseRepository,
	sync *cachesync.Synchronizer,
	log zerolog.Logger,
) *Catalog {
	return &Catalog{areas: areas, users: users, warehouses: warehouses, sync: sync, log: log}
}

// AreaTree árbol completo de áreas.
func (c *Catalog) AreaTree(ctx context.Context) ([]entity.Area, error) {
	return cachesync.Fetch(ctx, c.sync, c.sync.Keys().Areas(), c.areas.List)
}

// AreasFlat árbol aplanado en preorden.
func (c *Catalog) AreasFlat(ctx context.Context) ([]entity.Area, error) {
	tree, err := c.AreaTree(ctx)
	if err != nil {
		return nil, err
	}
	return entity.FlattenAreas(tree), nil
}

// Area detalle de un área.
func (c *Catalog) Area(ctx context.Context, id string) (*entity.Area, error) {
	return cachesync.Fetch(ctx, c.sync, c.sync.Keys().Area(id), func(ctx context.Context) (*entity.Area, error) {
		return c.areas.GetByID(ctx, id)
	})
}

// Warehouses todas las bodegas.
func (c *Catalog) Warehouses(ctx context.Context) ([]entity.Warehouse, error) {
	return cachesync.Fetch(ctx, c.sync, c.sync.Keys().Warehouses(nil), c.warehouses.List)
}

// Warehouse detalle de una bodega.
func (c *Catalog) Warehouse(ctx context.Context, id string) (*entity.Warehouse, error) {
	return cachesync.Fetch(ctx, c.sync, c.sync.Keys().Warehouse(id), func(ctx context.Context) (*entity.Warehouse, error) {
		return c.warehouses.GetByID(ctx, id)
	})
}

// Users todos los usuarios.
func (c *Catalog) Users(ctx context.Context) ([]entity.User, error) {
	return cachesync.Fetch(ctx, c.sync, c.sync.Keys().Users(nil), c.users.List)
}

// User detalle de un usuario.
func (c *Catalog) User(ctx context.Context, id string) (*entity.User, error) {
	return cachesync.Fetch(ctx, c.sync, c.sync.Keys().User(id), func(ctx context.Context) (*entity.User, error) {
		return c.users.GetByID(ctx, id)
	})
}

// UsersByArea miembros de un área.
func (c *Catalog) UsersByArea(ctx context.Context, areaID string) ([]entity.User, error) {
	return cachesync.Fetch(ctx, c.sync, c.sync.Keys().UsersByArea(areaID), func(ctx context.Context) ([]entity.User, error) {
		return c.users.ListByArea(ctx, areaID)
	})
}

// Profile perfil del usuario autenticado (con el token del contexto).
func (c *Catalog) Profile(ctx context.Context, userID string) (*entity.User, error) {
	return cachesync.Fetch(ctx, c.sync, c.sync.Keys().Profile(userID), c.users.Profile)
}

// degradeList loguea el error de lectura y devuelve una lista vacía. Un 401 se propaga:
// la sesión ya expiró y el panel debe ir al login.
func degradeList[T any](log zerolog.Logger, op string, err error) ([]T, error) {
	if errors.Is(err, domain.ErrUnauthorized) {
		return nil, err
	}
	log.Warn().Err(err).Str("op", op).Msg("lectura fallida, se devuelve lista vacía")
	return []T{}, nil
}

// degradeOne loguea el error de lectura y lo reduce a no encontrado. Los errores de
// autorización se conservan para que la capa HTTP responda 401/403.
func degradeOne(log zerolog.Logger, op string, err error) error {
	if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrNotFound) {
		return err
	}
	log.Warn().Err(err).Str("op", op).Msg("lectura fallida, se responde no encontrado")
	return domain.ErrNotFound
}
