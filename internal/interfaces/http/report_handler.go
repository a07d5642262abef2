package http

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-bff/internal/application/usecase"
)

// ReportHandler documentos PDF descargables.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// AssignmentHistory godoc
// @Summary      PDF del historial de asignaciones de un usuario
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/users/{id}/assignments [get]
func (h *ReportHandler) AssignmentHistory(c *fiber.Ctx) error {
	doc, name, err := h.uc.AssignmentHistoryPDF(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, doc, name)
}

// BoxLabel godoc
// @Summary      Etiqueta PDF con el QR de una caja
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/boxes/{id}/label [get]
func (h *ReportHandler) BoxLabel(c *fiber.Ctx) error {
	doc, name, err := h.uc.BoxLabelPDF(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, doc, name)
}

func sendPDF(c *fiber.Ctx, doc []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))
	return c.Send(doc)
}
