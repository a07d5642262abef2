package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-bff/internal/domain"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
	"github.com/jhoicas/Logistica-bff/internal/infrastructure/backend"
	"github.com/jhoicas/Logistica-bff/pkg/config"
)

func newClient(t *testing.T, h http.Handler) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return backend.NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, zerolog.Nop())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func callerCtx() context.Context {
	return backend.WithCaller(context.Background(), backend.Caller{Subject: "u1", Token: "tok-123", RequestID: "req-1"})
}

func TestClient_ReenviaTokenYRequestID(t *testing.T) {
	var gotAuth, gotReq string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReq = r.Header.Get(backend.HeaderRequestID)
		writeJSON(w, http.StatusOK, []any{})
	}))

	_, err := backend.NewUserRepository(c).List(callerCtx())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "req-1", gotReq)
}

func TestClient_GeneraRequestIDSiFalta(t *testing.T) {
	var gotReq string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Header.Get(backend.HeaderRequestID)
		writeJSON(w, http.StatusOK, []any{})
	}))

	_, err := backend.NewAreaRepository(c).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, gotReq, 36)
}

func TestUserRepo_ResuelveFormasDeRol(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{
			{"id": "1", "role": "JEFE_AREA", "areas": []string{"a1"}},
			{"id": "2", "role": map[string]any{"name": "bodeguero"}, "warehouses": []map[string]any{{"id": "w1"}}},
			{"id": "3", "roleId": "ADMIN"},
			{"id": "4", "role": nil},
			{"id": "5", "role": "SUPERVISOR", "warehouseAssignments": []map[string]any{
				{"id": "x", "warehouseId": "w2", "isActive": true},
				{"id": "y", "warehouseId": "w3", "isActive": false, "revokedAt": "2025-01-02T10:00:00Z"},
			}},
		}})
	}))

	users, err := backend.NewUserRepository(c).List(callerCtx())
	require.NoError(t, err)
	require.Len(t, users, 5)

	assert.Equal(t, role.Jefe, users[0].Role)
	assert.Equal(t, []string{"a1"}, users[0].Areas)
	assert.Equal(t, role.Supervisor, users[1].Role)
	assert.Equal(t, []string{"w1"}, users[1].Warehouses)
	assert.Equal(t, role.Admin, users[2].Role)
	assert.Equal(t, role.Unknown, users[3].Role)
	assert.Equal(t, []string{"w2"}, users[4].Warehouses, "sin lista explícita se proyecta desde el historial")
	assert.True(t, users[4].WarehouseAssignments[1].Revoked())
}

func TestUserRepo_CreateEnviaRolDelBackend(t *testing.T) {
	var body map[string]any
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusCreated, map[string]any{"id": "n1", "role": "JEFE_AREA", "status": "HABILITADO"})
	}))

	u, err := backend.NewUserRepository(c).Create(callerCtx(), repository.UserWrite{Name: "Ana", Email: "a@x.cl", Role: role.Jefe})
	require.NoError(t, err)
	assert.Equal(t, "JEFE_AREA", body["role"])
	assert.Equal(t, role.Jefe, u.Role)
}

func TestUserRepo_ValidateUnique(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/validate-unique", r.URL.Path)
		assert.Equal(t, "11.111.111-1", r.URL.Query().Get("rut"))
		assert.Equal(t, "u9", r.URL.Query().Get("excludeId"))
		writeJSON(w, http.StatusOK, map[string]bool{"rutExists": true, "emailExists": false})
	}))

	res, err := backend.NewUserRepository(c).ValidateUnique(callerCtx(), "11.111.111-1", "", "u9")
	require.NoError(t, err)
	assert.True(t, res.RUTTaken)
	assert.False(t, res.EmailTaken)
}

func TestClient_NormalizaErrores(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"message":    []string{"RUT duplicado", "email duplicado"},
			"error":      "Conflict",
			"statusCode": 409,
		})
	}))

	_, err := backend.NewUserRepository(c).Create(callerCtx(), repository.UserWrite{Role: role.Supervisor})
	require.Error(t, err)

	var apiErr *backend.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 409, apiErr.StatusCode)
	assert.Equal(t, "RUT duplicado; email duplicado", apiErr.Message)
	assert.Equal(t, "Conflict", apiErr.ErrorName)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestClient_ErrorSinCuerpo(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := backend.NewAreaRepository(c).GetByID(callerCtx(), "nope")
	var apiErr *backend.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Not Found", apiErr.Message)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_Hook401ConSujetoYRuta(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "token expirado", "statusCode": 401})
	}))
	var gotSubject, gotPath string
	c.OnUnauthorized(func(_ context.Context, subject, path string) {
		gotSubject, gotPath = subject, path
	})

	_, err := backend.NewWarehouseRepository(c).List(callerCtx())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, "u1", gotSubject)
	assert.Equal(t, "/warehouses", gotPath)
}

func TestClient_ErrorDeRed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := backend.NewClient(config.BackendConfig{BaseURL: url, Timeout: time.Second}, zerolog.Nop())

	_, err := backend.NewAreaRepository(c).List(context.Background())
	var apiErr *backend.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Zero(t, apiErr.StatusCode)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestAreaRepo_ArbolYContadores(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{
			"id": "log", "name": "Logística", "level": 0, "parentId": nil, "status": "ACTIVO", "nodeType": "ROOT",
			"children": []map[string]any{{
				"id": "norte", "name": "Bodega Norte", "level": 1, "parentId": "log", "status": "ACTIVO", "nodeType": "CHILD",
			}},
		}})
	}))

	areas, err := backend.NewAreaRepository(c).List(callerCtx())
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Nil(t, areas[0].ParentID)
	assert.Equal(t, 1, areas[0].SubAreasCount)
	assert.False(t, areas[0].IsLeaf())
	require.Len(t, areas[0].Children, 1)
	assert.Equal(t, "log", *areas[0].Children[0].ParentID)
	assert.True(t, areas[0].Children[0].IsLeaf())
}

func TestWarehouseRepo_AreaAnidadaYDecimales(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"id": "w1", "name": "Central", "capacityKg": "120.5", "maxCapacityKg": 500,
			"status": "ACTIVA", "area": map[string]any{"id": "a2", "name": "Norte"},
		})
	}))

	w, err := backend.NewWarehouseRepository(c).GetByID(callerCtx(), "w1")
	require.NoError(t, err)
	assert.Equal(t, "a2", w.AreaIDValue())
	assert.Equal(t, "Norte", w.AreaName)
	assert.True(t, w.IsEnabled)
	assert.True(t, decimal.RequireFromString("379.5").Equal(w.FreeCapacityKg()))
}

// fakeAssignments backend mínimo que guarda el historial de jefe↔área.
type fakeAssignments struct {
	mu   sync.Mutex
	rows []map[string]any
}

func (f *fakeAssignments) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/areas/a1/managers":
		row := map[string]any{"id": "as1", "areaId": "a1", "assignedBy": "admin",
			"assignedAt": "2025-01-01T10:00:00Z", "revokedAt": nil, "isActive": true}
		f.rows = append(f.rows, row)
		writeJSON(w, http.StatusCreated, row)
	case r.Method == http.MethodDelete && r.URL.Path == "/areas/a1/managers/m1":
		for _, row := range f.rows {
			if row["isActive"] == true {
				row["isActive"] = false
				row["revokedAt"] = "2025-01-03T10:00:00Z"
				writeJSON(w, http.StatusOK, row)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodGet && r.URL.Path == "/assignment-history/user/m1":
		writeJSON(w, http.StatusOK, f.rows)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// Quitar una asignación la deja inactiva con revokedAt y el historial conserva el registro.
func TestAreaRepo_QuitarJefeConservaHistorial(t *testing.T) {
	c := newClient(t, &fakeAssignments{})
	areas := backend.NewAreaRepository(c)
	history := backend.NewAssignmentHistoryRepository(c)
	ctx := callerCtx()

	_, err := areas.AssignManager(ctx, "a1", "m1")
	require.NoError(t, err)
	before, err := history.ListByUser(ctx, "m1")
	require.NoError(t, err)

	removed, err := areas.RemoveManager(ctx, "a1", "m1")
	require.NoError(t, err)
	assert.False(t, removed.IsActive)
	require.NotNil(t, removed.RevokedAt)

	after, err := history.ListByUser(ctx, "m1")
	require.NoError(t, err)
	assert.Len(t, after, len(before))
	assert.False(t, after[0].IsActive)
	assert.NotNil(t, after[0].RevokedAt)
	assert.Equal(t, "AREA", after[0].Kind)
}

func TestBoxRepo_MoverYFiltrar(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/boxes":
			assert.Equal(t, "w1", r.URL.Query().Get("warehouseId"))
			assert.Equal(t, "EN_USO", r.URL.Query().Get("status"))
			writeJSON(w, http.StatusOK, []map[string]any{{"id": "b1", "weightKg": 12.25, "warehouse": map[string]any{"id": "w1", "name": "Central"}}})
		case "/boxes/b1/move":
			assert.Equal(t, http.MethodPatch, r.Method)
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "w2", body["warehouseId"])
			writeJSON(w, http.StatusOK, map[string]any{"id": "b1", "warehouseId": "w2"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	boxes := backend.NewBoxRepository(c)

	list, err := boxes.List(callerCtx(), repository.BoxFilter{WarehouseID: "w1", Status: "EN_USO"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Central", list[0].WarehouseName)
	assert.True(t, decimal.RequireFromString("12.25").Equal(list[0].WeightKg))

	moved, err := boxes.Move(callerCtx(), "b1", "w2", "reubicación")
	require.NoError(t, err)
	assert.Equal(t, "w2", moved.WarehouseID)
}
