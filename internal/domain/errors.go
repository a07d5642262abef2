package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrSessionExpired   = errors.New("sesión expirada")
	ErrUpstream         = errors.New("error del servicio remoto")
	ErrAreaNotLeaf      = errors.New("solo las áreas hoja pueden tener bodegas asignadas")
	ErrInvalidHierarchy = errors.New("nivel de área inconsistente con su padre")
	ErrRoleNotAllowed   = errors.New("el rol no puede asignar ese rol")
	ErrAlreadyAssigned  = errors.New("la asignación ya está activa")
)
