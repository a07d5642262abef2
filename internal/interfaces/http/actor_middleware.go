package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
	"github.com/jhoicas/Logistica-bff/internal/domain/visibility"
)

// LocalActor key del actor resuelto en c.Locals.
const LocalActor = "actor"

// actorResolver es el contrato mínimo que necesita el middleware para resolver el actor.
// Lo implementa *usecase.SessionUseCase; el uso de interfaz evita acoplar el middleware al caso de uso.
type actorResolver interface {
	Actor(ctx context.Context, subject string, claimRole role.Role) (visibility.Actor, error)
}

// RequireActor resuelve el actor del request (perfil cacheado: rol, áreas y bodegas) y lo deja
// en c.Locals. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalUserID).
//
// Comportamiento:
//   - 401 si no hay user_id o el backend rechaza el token.
//   - 403 si el usuario no tiene un rol reconocido.
//   - Cualquier otro fallo se traduce con respondError.
func RequireActor(resolver actorResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}
		actor, err := resolver.Actor(c.UserContext(), userID, role.Parse(GetRole(c)))
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

// GetActor devuelve el actor resuelto por RequireActor.
func GetActor(c *fiber.Ctx) visibility.Actor {
	a, _ := c.Locals(LocalActor).(visibility.Actor)
	return a
}
