package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/application/usecase"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
)

// AuditHandler auditoría del backend y bitácora de mutaciones del BFF.
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Listar registros de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        userId  query  string  false  "Usuario"
// @Param        entity  query  string  false  "Entidad"
// @Param        action  query  string  false  "Acción"
// @Success      200     {object}  dto.ListResponse[dto.AuditLogResponse]
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	f := repository.AuditLogFilter{
		UserID: c.Query("userId"),
		Entity: c.Query("entity"),
		Action: c.Query("action"),
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Create godoc
// @Summary      Registrar acción de auditoría
// @Tags         audit
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAuditLogRequest  true  "Registro"
// @Success      201   {object}  dto.AuditLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/audit-logs [post]
func (h *AuditHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAuditLogRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Action) == "" || strings.TrimSpace(in.Entity) == "" {
		return validation(c, "action y entity son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Journal godoc
// @Summary      Mis últimas mutaciones
// @Description  Bitácora local del BFF; vacía si no hay base de datos configurada.
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas"  default(50)
// @Success      200    {object}  dto.ListResponse[dto.JournalEntryResponse]
// @Router       /api/journal [get]
func (h *AuditHandler) Journal(c *fiber.Ctx) error {
	out, err := h.uc.Journal(c.UserContext(), GetActor(c), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}
