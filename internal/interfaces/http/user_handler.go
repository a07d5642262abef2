package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/application/usecase"
)

// UserHandler maneja usuarios, su estado y sus asignaciones.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios visibles
// @Description  ADMIN ve todos; JEFE los supervisores de sus áreas; SUPERVISOR ninguno.
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Nombre, email o RUT"
// @Param        role    query  string  false  "ADMIN, JEFE o SUPERVISOR"
// @Param        status  query  string  false  "HABILITADO o DESHABILITADO"
// @Success      200     {object}  dto.ListResponse[dto.UserResponse]
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	f := usecase.UserFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
		Status: c.Query("status"),
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario
// @Description  Valida la autoridad sobre el rol y la unicidad de RUT y email; luego asigna áreas o bodegas en lote.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserWriteResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	switch {
	case strings.TrimSpace(in.Name) == "":
		return validation(c, "name es requerido")
	case strings.TrimSpace(in.Email) == "":
		return validation(c, "email es requerido")
	case strings.TrimSpace(in.RUT) == "":
		return validation(c, "rut es requerido")
	case in.Role == "":
		return validation(c, "role es requerido")
	case len(in.Password) < 6:
		return validation(c, "password debe tener al menos 6 caracteres")
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserWriteResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ValidateUnique godoc
// @Summary      Validar RUT y email
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        rut        query  string  false  "RUT"
// @Param        email      query  string  false  "Email"
// @Param        excludeId  query  string  false  "Usuario a excluir (edición)"
// @Success      200  {object}  dto.UniqueResponse
// @Router       /api/users/validate-unique [get]
func (h *UserHandler) ValidateUnique(c *fiber.Ctx) error {
	rut, email := c.Query("rut"), c.Query("email")
	if rut == "" && email == "" {
		return validation(c, "rut o email es requerido")
	}
	out, err := h.uc.ValidateUnique(c.UserContext(), rut, email, c.Query("excludeId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ToggleStatus godoc
// @Summary      Habilitar o deshabilitar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true   "ID del usuario"
// @Param        body  body  dto.ToggleStatusRequest  false  "Motivo"
// @Success      200   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/toggle-status [patch]
func (h *UserHandler) ToggleStatus(c *fiber.Ctx) error {
	var in dto.ToggleStatusRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	if len(in.Reason) > 500 {
		return validation(c, "reason admite hasta 500 caracteres")
	}
	out, err := h.uc.ToggleStatus(c.UserContext(), GetActor(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByArea godoc
// @Summary      Usuarios de un área
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        areaId  path  string  true  "ID del área"
// @Success      200     {object}  dto.ListResponse[dto.UserResponse]
// @Router       /api/users/by-area/{areaId} [get]
func (h *UserHandler) ByArea(c *fiber.Ctx) error {
	out, err := h.uc.ByArea(c.UserContext(), GetActor(c), c.Params("areaId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// UpdateAssignments godoc
// @Summary      Sincronizar asignaciones del usuario
// @Description  Calcula el diff contra las asignaciones actuales y aplica altas y bajas en lote.
// @Description  La respuesta informa qué se aplicó y qué falló; lo aplicado no se revierte.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del usuario"
// @Param        body  body  dto.UpdateAssignmentsRequest  true  "Asignaciones deseadas"
// @Success      200   {object}  dto.BatchResponse
// @Success      207   {object}  dto.BatchResponse
// @Router       /api/users/{id}/assignments [put]
func (h *UserHandler) UpdateAssignments(c *fiber.Ctx) error {
	var in dto.UpdateAssignmentsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateAssignments(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return batchJSON(c, out)
}

// AssignmentHistory godoc
// @Summary      Historial de asignaciones del usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.ListResponse[dto.AssignmentHistoryResponse]
// @Router       /api/users/{id}/assignment-history [get]
func (h *UserHandler) AssignmentHistory(c *fiber.Ctx) error {
	out, err := h.uc.AssignmentHistory(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// EnablementHistory godoc
// @Summary      Historial de habilitación del usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.ListResponse[dto.EnablementHistoryResponse]
// @Router       /api/users/{id}/enablement-history [get]
func (h *UserHandler) EnablementHistory(c *fiber.Ctx) error {
	out, err := h.uc.EnablementHistory(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// AllEnablementHistory godoc
// @Summary      Historial global de habilitaciones
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.EnablementHistoryResponse]
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users/enablement-history [get]
func (h *UserHandler) AllEnablementHistory(c *fiber.Ctx) error {
	out, err := h.uc.AllEnablementHistory(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// batchJSON responde 200 si el lote se aplicó completo y 207 si hubo fallos parciales.
func batchJSON(c *fiber.Ctx, out *dto.BatchResponse) error {
	if out != nil && !out.OK {
		return c.Status(fiber.StatusMultiStatus).JSON(out)
	}
	return c.JSON(out)
}
