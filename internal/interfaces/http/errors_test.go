package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/domain"
)

func TestRespondError_TraduceSentinelsEnvueltos(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("crear área: %w", domain.ErrInvalidInput), http.StatusBadRequest, "VALIDATION"},
		{domain.ErrAreaNotLeaf, http.StatusUnprocessableEntity, "AREA_NOT_LEAF"},
		{domain.ErrInvalidHierarchy, http.StatusUnprocessableEntity, "INVALID_HIERARCHY"},
		{domain.ErrRoleNotAllowed, http.StatusForbidden, "ROLE_NOT_ALLOWED"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{fmt.Errorf("GET /users/x: %w", domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{domain.ErrUpstream, http.StatusBadGateway, "UPSTREAM"},
		{errors.New("algo raro"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
			assert.Empty(t, body.RedirectTo)
		})
	}
}

func TestRespondError_401LlevaDestinoDeLogin(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals(LocalLoginPath, "/login")
		return respondError(c, fmt.Errorf("GET /areas: %w", domain.ErrUnauthorized))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "/login", body.RedirectTo)
}

func TestSendPDF_CabecerasDeDescarga(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return sendPDF(c, []byte("%PDF-1.4"), "asignaciones-u1-20260101.pdf") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="asignaciones-u1-20260101.pdf"`, resp.Header.Get("Content-Disposition"))
}
