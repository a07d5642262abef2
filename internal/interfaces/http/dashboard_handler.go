package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-bff/internal/application/usecase"
)

// DashboardHandler resumen del panel para el rol que consulta.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los conteos del alcance visible: áreas, bodegas, usuarios y capacidad.
// GET /api/dashboard/summary
//
// No requiere parámetros; el alcance sale del actor resuelto por RequireActor.
//
// @Summary      Resumen del panel
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
