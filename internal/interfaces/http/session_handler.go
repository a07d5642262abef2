package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-bff/internal/application/usecase"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
)

// SessionHandler inicio de sesión en el BFF, estado y perfil.
type SessionHandler struct {
	uc *usecase.SessionUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *usecase.SessionUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Start godoc
// @Summary      Iniciar sesión en el BFF
// @Description  Registra el token emitido por el backend, abre la ventana de gracia y devuelve el perfil.
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/session [post]
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	out, err := h.uc.Start(c.UserContext(), GetUserID(c), GetToken(c), role.Parse(GetRole(c)))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Estado de la sesión
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionStatusResponse
// @Router       /api/session [get]
func (h *SessionHandler) Status(c *fiber.Ctx) error {
	out, err := h.uc.Status(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reset godoc
// @Summary      Confirmar llegada al login
// @Description  Limpia la marca de redirección del usuario.
// @Tags         session
// @Security     Bearer
// @Success      204
// @Router       /api/session/reset [post]
func (h *SessionHandler) Reset(c *fiber.Ctx) error {
	h.uc.Reset(GetUserID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// Profile godoc
// @Summary      Perfil del usuario autenticado
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/profile [get]
func (h *SessionHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.UserContext(), GetUserID(c), role.Parse(GetRole(c)))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
