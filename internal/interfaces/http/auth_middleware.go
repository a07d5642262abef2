package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/domain"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
	"github.com/jhoicas/Logistica-bff/internal/infrastructure/backend"
	"github.com/jhoicas/Logistica-bff/pkg/jwt"
)

// Locals keys que deja el middleware de auth en Fiber.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalToken     = "token"
	LocalLoginPath = "login_path"
)

// redirectChecker es lo mínimo que el middleware necesita del manager de sesión.
// Lo implementa *session.Manager.
type redirectChecker interface {
	Redirecting(subject string) bool
	LoginPath() string
}

// AuthMiddleware valida el Bearer Token emitido por el backend y carga user_id, role y token
// en c.Locals. El token se reenvía tal cual al backend a través del contexto del request.
// Si sessions no es nil y el sujeto tiene una redirección al login en curso, responde 401
// SESSION_EXPIRED sin llegar al handler.
func AuthMiddleware(secret, issuer string, sessions redirectChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(secret, issuer, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		if sessions != nil {
			c.Locals(LocalLoginPath, sessions.LoginPath())
			if sessions.Redirecting(claims.UserID) {
				return respondError(c, domain.ErrSessionExpired)
			}
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalToken, tokenString)
		if r := role.FromBackend(claims.Role); r.Valid() {
			c.Locals(LocalRole, r.String())
		}

		requestID := c.Get(backend.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(backend.HeaderRequestID, requestID)
		c.SetUserContext(backend.WithCaller(c.UserContext(), backend.Caller{
			Subject:   claims.UserID,
			Token:     tokenString,
			RequestID: requestID,
		}))
		return c.Next()
	}
}

// RequireRole exige que el rol del usuario sea uno de roles. Usa el rol del actor si
// RequireActor ya lo resolvió; si no, el del token. Debe ir después de AuthMiddleware.
func RequireRole(roles ...role.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current := GetActor(c).Role
		if !current.Valid() {
			current = role.Parse(GetRole(c))
		}
		if !current.Valid() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no informa un rol reconocido"})
		}
		if !current.In(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetRole devuelve el rol normalizado del token (ADMIN, JEFE, SUPERVISOR) o "".
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// GetToken devuelve el token crudo del request.
func GetToken(c *fiber.Ctx) string {
	return localString(c, LocalToken)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
