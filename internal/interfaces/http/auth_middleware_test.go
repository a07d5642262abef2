package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-bff/internal/domain"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
	"github.com/jhoicas/Logistica-bff/internal/domain/visibility"
	"github.com/jhoicas/Logistica-bff/internal/infrastructure/backend"
	apphttp "github.com/jhoicas/Logistica-bff/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Logistica-bff/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "jefe@logistica.cl"
	testIssuer    = "logistica-test"
	testExpMin    = 60
)

// fakeSessions implementa el chequeo de redirección del middleware de auth.
type fakeSessions struct {
	redirecting map[string]bool
}

func (f *fakeSessions) Redirecting(subject string) bool { return f.redirecting[subject] }
func (f *fakeSessions) LoginPath() string               { return "/login" }

// fakeResolver resuelve el actor sin backend.
type fakeResolver struct {
	actor visibility.Actor
	err   error
}

func (f *fakeResolver) Actor(_ context.Context, subject string, claimRole role.Role) (visibility.Actor, error) {
	if f.err != nil {
		return visibility.Actor{}, f.err
	}
	a := f.actor
	a.ID = subject
	if !a.Role.Valid() {
		a.Role = claimRole
	}
	return a, nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowed ...role.Role) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, testIssuer, nil),
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado (vocabulario del backend).
func tokenForRole(t *testing.T, r string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, r, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET a path y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(role.Admin)
	resp := doRequest(t, app, "/protected", tokenForRole(t, "ADMIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "ADMIN", body["role"])
}

// JEFE_AREA del backend llega normalizado como JEFE.
func TestRequireRole_JefeAreaSeNormaliza(t *testing.T) {
	app := buildTestApp(role.Admin, role.Jefe)
	resp := doRequest(t, app, "/protected", tokenForRole(t, "JEFE_AREA"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "JEFE", body["role"])
}

// BODEGUERO colapsa en SUPERVISOR y no puede entrar a rutas de escritura.
func TestRequireRole_BodegueroBloqueadoEnRutaJefe(t *testing.T) {
	app := buildTestApp(role.Admin, role.Jefe)
	resp := doRequest(t, app, "/protected", tokenForRole(t, "BODEGUERO"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(role.Admin)
	resp := doRequest(t, app, "/protected", tokenForRole(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(role.Admin)
	resp := doRequest(t, app, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(role.Admin)
	resp := doRequest(t, app, "/protected", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: claims, caller y sesión expirada
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_PropagaCallerAlBackend(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, testIssuer, nil), func(c *fiber.Ctx) error {
		caller := backend.CallerFrom(c.UserContext())
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"subject":    caller.Subject,
			"same_token": caller.Token == apphttp.GetToken(c),
			"request_id": caller.RequestID,
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "ADMIN"))
	req.Header.Set(backend.HeaderRequestID, "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get(backend.HeaderRequestID))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testUserID, body["subject"])
	assert.Equal(t, true, body["same_token"])
	assert.Equal(t, "req-123", body["request_id"])
}

func TestAuthMiddleware_SesionRedirigiendo_Retorna401ConDestino(t *testing.T) {
	sessions := &fakeSessions{redirecting: map[string]bool{testUserID: true}}
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret, testIssuer, sessions), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp := doRequest(t, app, "/protected", tokenForRole(t, "ADMIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "SESSION_EXPIRED", body["code"])
	assert.Equal(t, domain.ErrSessionExpired.Error(), body["message"])
	assert.Equal(t, "/login", body["redirectTo"])
}

func TestAuthMiddleware_IssuerDistinto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, "ADMIN", "otro-emisor", testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(role.Admin), "/protected", "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireActor
// ──────────────────────────────────────────────────────────────────────────────

func buildActorApp(resolver *fakeResolver, sessions *fakeSessions, allowed ...role.Role) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{
		apphttp.AuthMiddleware(testJWTSecret, testIssuer, sessions),
		apphttp.RequireActor(resolver),
	}
	if len(allowed) > 0 {
		handlers = append(handlers, apphttp.RequireRole(allowed...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		a := apphttp.GetActor(c)
		return c.JSON(fiber.Map{"id": a.ID, "role": a.Role.String(), "areas": a.AreaIDs})
	})
	app.Get("/actor", handlers...)
	return app
}

// El rol del perfil manda sobre el del token.
func TestRequireActor_RolDelPerfilManda(t *testing.T) {
	resolver := &fakeResolver{actor: visibility.Actor{Role: role.Jefe, AreaIDs: []string{"a2"}}}
	app := buildActorApp(resolver, &fakeSessions{}, role.Admin, role.Jefe)

	resp := doRequest(t, app, "/actor", tokenForRole(t, "SUPERVISOR"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["id"])
	assert.Equal(t, "JEFE", body["role"])
	assert.Equal(t, []interface{}{"a2"}, body["areas"])
}

func TestRequireActor_BackendRechazaToken_Retorna401ConLogin(t *testing.T) {
	app := buildActorApp(&fakeResolver{err: domain.ErrUnauthorized}, &fakeSessions{})

	resp := doRequest(t, app, "/actor", tokenForRole(t, "ADMIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "UNAUTHORIZED", body["code"])
	assert.Equal(t, "/login", body["redirectTo"])
}

func TestRequireActor_RolDesconocido_Retorna403(t *testing.T) {
	app := buildActorApp(&fakeResolver{err: domain.ErrForbidden}, &fakeSessions{})

	resp := doRequest(t, app, "/actor", tokenForRole(t, "CONTADOR"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg: integridad del generate/parse con role
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, "JEFE_AREA", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, testIssuer, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testEmail, claims.Email)
	assert.Equal(t, "JEFE_AREA", claims.Role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, "ADMIN", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, testIssuer, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, "ADMIN", testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", testIssuer, tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
