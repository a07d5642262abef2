package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/application/usecase"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
	"github.com/jhoicas/Logistica-bff/internal/domain/visibility"
)

// BoxHandler cajas, su contenido y sus movimientos.
type BoxHandler struct {
	uc *usecase.BoxUseCase
}

// NewBoxHandler construye el handler.
func NewBoxHandler(uc *usecase.BoxUseCase) *BoxHandler {
	return &BoxHandler{uc: uc}
}

// List godoc
// @Summary      Listar cajas
// @Tags         boxes
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  query  string  false  "Bodega"
// @Param        status       query  string  false  "DISPONIBLE, EN_USO, EN_MANTENCION o DADA_DE_BAJA"
// @Param        search       query  string  false  "Nombre o código QR"
// @Success      200          {object}  dto.ListResponse[dto.BoxResponse]
// @Router       /api/boxes [get]
func (h *BoxHandler) List(c *fiber.Ctx) error {
	f := repository.BoxFilter{
		WarehouseID: c.Query("warehouseId"),
		Status:      strings.ToUpper(c.Query("status")),
		Search:      c.Query("search"),
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// GetByID godoc
// @Summary      Obtener caja por ID
// @Tags         boxes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {object}  dto.BoxResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boxes/{id} [get]
func (h *BoxHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByQR godoc
// @Summary      Obtener caja por código QR
// @Tags         boxes
// @Security     Bearer
// @Produce      json
// @Param        qr   path  string  true  "Código QR"
// @Success      200  {object}  dto.BoxResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boxes/qr/{qr} [get]
func (h *BoxHandler) GetByQR(c *fiber.Ctx) error {
	out, err := h.uc.GetByQR(c.UserContext(), GetActor(c), c.Params("qr"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de la caja
// @Tags         boxes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {object}  dto.ListResponse[dto.BoxHistoryResponse]
// @Router       /api/boxes/{id}/history [get]
func (h *BoxHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Create godoc
// @Summary      Crear caja
// @Tags         boxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBoxRequest  true  "Datos de la caja"
// @Success      201   {object}  dto.BoxResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/boxes [post]
func (h *BoxHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBoxRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	switch {
	case strings.TrimSpace(in.QRCode) == "":
		return validation(c, "qrCode es requerido")
	case strings.TrimSpace(in.Name) == "":
		return validation(c, "name es requerido")
	case in.WarehouseID == "":
		return validation(c, "warehouseId es requerido")
	case in.WeightKg.IsNegative():
		return validation(c, "weightKg no puede ser negativo")
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar caja
// @Tags         boxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la caja"
// @Param        body  body  dto.UpdateBoxRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BoxResponse
// @Router       /api/boxes/{id} [put]
func (h *BoxHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBoxRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar caja
// @Tags         boxes
// @Security     Bearer
// @Param        id   path  string  true  "ID de la caja"
// @Success      204
// @Router       /api/boxes/{id} [delete]
func (h *BoxHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Move godoc
// @Summary      Trasladar caja a otra bodega
// @Tags         boxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la caja"
// @Param        body  body  dto.MoveBoxRequest  true  "Bodega destino"
// @Success      200   {object}  dto.BoxResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/boxes/{id}/move [post]
func (h *BoxHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveBoxRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.WarehouseID == "" {
		return validation(c, "warehouseId es requerido")
	}
	out, err := h.uc.Move(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de la caja
// @Tags         boxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la caja"
// @Param        body  body  dto.ChangeBoxStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.BoxResponse
// @Router       /api/boxes/{id}/status [patch]
func (h *BoxHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeBoxStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.Status = strings.ToUpper(strings.TrimSpace(in.Status))
	if in.Status == "" {
		return validation(c, "status es requerido")
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Dar de baja la caja
// @Tags         boxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true   "ID de la caja"
// @Param        body  body  dto.ReasonRequest  false  "Motivo"
// @Success      200   {object}  dto.BoxResponse
// @Router       /api/boxes/{id}/deactivate [post]
func (h *BoxHandler) Deactivate(c *fiber.Ctx) error {
	var in dto.ReasonRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Deactivate(c.UserContext(), GetActor(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddEquipment godoc
// @Summary      Agregar equipo a la caja
// @Tags         boxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la caja"
// @Param        body  body  dto.BoxItemRequest  true  "Equipo y cantidad"
// @Success      201   {object}  dto.BoxResponse
// @Router       /api/boxes/{id}/equipments [post]
func (h *BoxHandler) AddEquipment(c *fiber.Ctx) error {
	return h.addItem(c, h.uc.AddEquipment)
}

// AddMaterial godoc
// @Summary      Agregar material a la caja
// @Tags         boxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la caja"
// @Param        body  body  dto.BoxItemRequest  true  "Material y cantidad"
// @Success      201   {object}  dto.BoxResponse
// @Router       /api/boxes/{id}/materials [post]
func (h *BoxHandler) AddMaterial(c *fiber.Ctx) error {
	return h.addItem(c, h.uc.AddMaterial)
}

type addItemFunc func(ctx context.Context, actor visibility.Actor, id string, in dto.BoxItemRequest) (*dto.BoxResponse, error)

func (h *BoxHandler) addItem(c *fiber.Ctx, add addItemFunc) error {
	var in dto.BoxItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ProductID == "" {
		return validation(c, "productId es requerido")
	}
	if !in.Quantity.IsPositive() {
		return validation(c, "quantity debe ser mayor a cero")
	}
	out, err := add(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveEquipment godoc
// @Summary      Quitar equipo de la caja
// @Tags         boxes
// @Security     Bearer
// @Param        id      path  string  true  "ID de la caja"
// @Param        itemId  path  string  true  "ID del equipo"
// @Success      204
// @Router       /api/boxes/{id}/equipments/{itemId} [delete]
func (h *BoxHandler) RemoveEquipment(c *fiber.Ctx) error {
	if err := h.uc.RemoveEquipment(c.UserContext(), GetActor(c), c.Params("id"), c.Params("itemId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveMaterial godoc
// @Summary      Quitar material de la caja
// @Tags         boxes
// @Security     Bearer
// @Param        id      path  string  true  "ID de la caja"
// @Param        itemId  path  string  true  "ID del material"
// @Success      204
// @Router       /api/boxes/{id}/materials/{itemId} [delete]
func (h *BoxHandler) RemoveMaterial(c *fiber.Ctx) error {
	if err := h.uc.RemoveMaterial(c.UserContext(), GetActor(c), c.Params("id"), c.Params("itemId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
