package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/application/usecase"
)

// AreaHandler maneja las peticiones HTTP de áreas y sus asignaciones.
type AreaHandler struct {
	uc *usecase.AreaUseCase
}

// NewAreaHandler construye el handler.
func NewAreaHandler(uc *usecase.AreaUseCase) *AreaHandler {
	return &AreaHandler{uc: uc}
}

// List godoc
// @Summary      Listar áreas visibles
// @Description  Devuelve el árbol y la lista plana de las áreas que el rol puede ver.
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Texto a buscar (sin distinguir acentos)"
// @Success      200     {object}  dto.AreaListResponse
// @Router       /api/areas [get]
func (h *AreaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetActor(c), c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener área por ID
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del área"
// @Success      200  {object}  dto.AreaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/areas/{id} [get]
func (h *AreaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear área
// @Description  El nivel y el tipo de nodo se calculan a partir del padre.
// @Tags         areas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAreaRequest  true  "Datos del área"
// @Success      201   {object}  dto.AreaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/areas [post]
func (h *AreaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAreaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Name) == "" {
		return validation(c, "name es requerido")
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar área
// @Description  parentId vacío convierte el área en raíz.
// @Tags         areas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del área"
// @Param        body  body  dto.UpdateAreaRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.AreaResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/areas/{id} [put]
func (h *AreaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAreaRequest
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

// Delete godoc
// @Summary      Eliminar área
// @Tags         areas
// @Security     Bearer
// @Param        id   path  string  true  "ID del área"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/areas/{id} [delete]
func (h *AreaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Managers godoc
// @Summary      Jefes del área
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del área"
// @Success      200  {object}  dto.ListResponse[dto.UserResponse]
// @Router       /api/areas/{id}/managers [get]
func (h *AreaHandler) Managers(c *fiber.Ctx) error {
	out, err := h.uc.Managers(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// ManagerCandidates godoc
// @Summary      Jefes asignables al área
// @Description  Jefes habilitados sin una asignación activa a esta área.
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del área"
// @Success      200  {object}  dto.ListResponse[dto.UserResponse]
// @Router       /api/areas/{id}/managers/candidates [get]
func (h *AreaHandler) ManagerCandidates(c *fiber.Ctx) error {
	out, err := h.uc.ManagerCandidates(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// AssignManager godoc
// @Summary      Asignar jefe al área
// @Tags         areas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del área"
// @Param        body  body  dto.AssignManagerRequest  true  "Jefe a asignar"
// @Success      201   {object}  dto.AssignmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/areas/{id}/managers [post]
func (h *AreaHandler) AssignManager(c *fiber.Ctx) error {
	var in dto.AssignManagerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ManagerID == "" {
		return validation(c, "managerId es requerido")
	}
	out, err := h.uc.AssignManager(c.UserContext(), GetActor(c), c.Params("id"), in.ManagerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveManager godoc
// @Summary      Revocar jefe del área
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID del área"
// @Param        managerId  path  string  true  "ID del jefe"
// @Success      200  {object}  dto.AssignmentResponse
// @Router       /api/areas/{id}/managers/{managerId} [delete]
func (h *AreaHandler) RemoveManager(c *fiber.Ctx) error {
	out, err := h.uc.RemoveManager(c.UserContext(), GetActor(c), c.Params("id"), c.Params("managerId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Warehouses godoc
// @Summary      Bodegas del área
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del área"
// @Success      200  {object}  dto.ListResponse[dto.WarehouseResponse]
// @Router       /api/areas/{id}/warehouses [get]
func (h *AreaHandler) Warehouses(c *fiber.Ctx) error {
	out, err := h.uc.Warehouses(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// WarehouseCandidates godoc
// @Summary      Bodegas asignables al área
// @Description  Solo áreas hoja; excluye las bodegas que ya pertenecen al área.
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del área"
// @Success      200  {object}  dto.ListResponse[dto.WarehouseResponse]
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/areas/{id}/warehouses/candidates [get]
func (h *AreaHandler) WarehouseCandidates(c *fiber.Ctx) error {
	out, err := h.uc.WarehouseCandidates(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// AssignWarehouse godoc
// @Summary      Asignar bodega al área
// @Tags         areas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del área"
// @Param        body  body  dto.AssignWarehouseRequest  true  "Bodega a asignar"
// @Success      200   {object}  dto.WarehouseResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/areas/{id}/warehouses [post]
func (h *AreaHandler) AssignWarehouse(c *fiber.Ctx) error {
	var in dto.AssignWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.WarehouseID == "" {
		return validation(c, "warehouseId es requerido")
	}
	out, err := h.uc.AssignWarehouse(c.UserContext(), GetActor(c), c.Params("id"), in.WarehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveWarehouse godoc
// @Summary      Quitar bodega del área
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Param        id           path  string  true  "ID del área"
// @Param        warehouseId  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.WarehouseResponse
// @Router       /api/areas/{id}/warehouses/{warehouseId} [delete]
func (h *AreaHandler) RemoveWarehouse(c *fiber.Ctx) error {
	out, err := h.uc.RemoveWarehouse(c.UserContext(), GetActor(c), c.Params("id"), c.Params("warehouseId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
