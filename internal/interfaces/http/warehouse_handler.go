package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/application/usecase"
)

// WarehouseHandler maneja las peticiones HTTP para bodegas y sus supervisores.
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "Datos de la bodega"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Name) == "" {
		return validation(c, "name es requerido")
	}
	if in.CapacityKg.IsNegative() || in.MaxCapacityKg.IsNegative() {
		return validation(c, "las capacidades no pueden ser negativas")
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar bodega
// @Description  areaId vacío deja la bodega sin área.
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la bodega"
// @Param        body  body  dto.UpdateWarehouseRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.WarehouseResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return validation(c, "name no puede quedar vacío")
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener bodega por ID
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar bodegas visibles
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "Nombre de la bodega o del área"
// @Param        areaId       query  string  false  "Solo bodegas del área"
// @Param        onlyEnabled  query  bool    false  "Solo bodegas habilitadas"
// @Success      200          {object}  dto.ListResponse[dto.WarehouseResponse]
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	f := usecase.WarehouseFilter{
		Search:      c.Query("search"),
		AreaID:      c.Query("areaId"),
		OnlyEnabled: c.QueryBool("onlyEnabled", false),
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Supervisors godoc
// @Summary      Supervisores de la bodega
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.ListResponse[dto.UserResponse]
// @Router       /api/warehouses/{id}/supervisors [get]
func (h *WarehouseHandler) Supervisors(c *fiber.Ctx) error {
	out, err := h.uc.Supervisors(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// SupervisorCandidates godoc
// @Summary      Supervisores asignables a la bodega
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.ListResponse[dto.UserResponse]
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/supervisors/candidates [get]
func (h *WarehouseHandler) SupervisorCandidates(c *fiber.Ctx) error {
	out, err := h.uc.SupervisorCandidates(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// AssignSupervisor godoc
// @Summary      Asignar supervisor a la bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la bodega"
// @Param        body  body  dto.AssignSupervisorRequest  true  "Supervisor"
// @Success      201   {object}  dto.AssignmentResponse
// @Router       /api/warehouses/{id}/supervisors [post]
func (h *WarehouseHandler) AssignSupervisor(c *fiber.Ctx) error {
	var in dto.AssignSupervisorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.SupervisorID == "" {
		return validation(c, "supervisorId es requerido")
	}
	out, err := h.uc.AssignSupervisor(c.UserContext(), GetActor(c), c.Params("id"), in.SupervisorID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveSupervisor godoc
// @Summary      Quitar supervisor de la bodega
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id            path  string  true  "ID de la bodega"
// @Param        supervisorId  path  string  true  "ID del supervisor"
// @Success      200  {object}  dto.AssignmentResponse
// @Router       /api/warehouses/{id}/supervisors/{supervisorId} [delete]
func (h *WarehouseHandler) RemoveSupervisor(c *fiber.Ctx) error {
	out, err := h.uc.RemoveSupervisor(c.UserContext(), GetActor(c), c.Params("id"), c.Params("supervisorId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BulkSupervisors godoc
// @Summary      Agregar y quitar supervisores en lote
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la bodega"
// @Param        body  body  dto.BulkSupervisorsRequest  true  "Supervisores a agregar y quitar"
// @Success      200   {object}  dto.BatchResponse
// @Success      207   {object}  dto.BatchResponse
// @Router       /api/warehouses/{id}/supervisors/bulk [post]
func (h *WarehouseHandler) BulkSupervisors(c *fiber.Ctx) error {
	var in dto.BulkSupervisorsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.Add) == 0 && len(in.Remove) == 0 {
		return validation(c, "add o remove debe tener al menos un id")
	}
	out, err := h.uc.BulkSupervisors(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return batchJSON(c, out)
}
