package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/domain"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// Orden relevante: el primer sentinel que coincide gana.
var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidHierarchy, fiber.StatusUnprocessableEntity, "INVALID_HIERARCHY"},
	{domain.ErrAreaNotLeaf, fiber.StatusUnprocessableEntity, "AREA_NOT_LEAF"},
	{domain.ErrSessionExpired, fiber.StatusUnauthorized, "SESSION_EXPIRED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrRoleNotAllowed, fiber.StatusForbidden, "ROLE_NOT_ALLOWED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrAlreadyAssigned, fiber.StatusConflict, "ALREADY_ASSIGNED"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUpstream, fiber.StatusBadGateway, "UPSTREAM"},
}

// respondError traduce un error de dominio a HTTP. Los 401 llevan el destino de login
// cuando el middleware de auth lo dejó en Locals.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		body := dto.ErrorResponse{Code: m.code, Message: err.Error()}
		if m.status == fiber.StatusUnauthorized {
			body.RedirectTo = localString(c, LocalLoginPath)
		}
		return c.Status(m.status).JSON(body)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func validation(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}
