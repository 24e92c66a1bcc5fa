package handler_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/muniempleo/intake-api/internal/database"
)

func TestUserLifecycleViaAPI(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, "admin", database.DefaultAdminPassword)

	resp := env.postJSON(t, admin, "/api/crear-usuario", fiber.Map{"username": "maria", "password": "clave123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.get(t, admin, "/api/usuarios")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items, _ := decodeBody(t, resp)["items"].([]interface{})
	require.Len(t, items, 2)

	resp = env.postJSON(t, admin, "/api/desactivar-usuario", fiber.Map{"username": "maria"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// A deactivated account cannot sign in.
	resp = env.postJSON(t, client{}, "/login", fiber.Map{"usuario": "maria", "password": "clave123"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.postJSON(t, admin, "/api/activar-usuario", fiber.Map{"username": "maria"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.postJSON(t, admin, "/api/cambiar-password", fiber.Map{"username": "maria", "password": "nueva456"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.postJSON(t, admin, "/api/obtener-password", fiber.Map{"username": "maria"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "nueva456", decodeBody(t, resp)["password"])

	resp = env.postJSON(t, admin, "/api/eliminar-usuario", fiber.Map{"username": "maria"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.postJSON(t, admin, "/api/obtener-password", fiber.Map{"username": "maria"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminAccountProtectedViaAPI(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, "admin", database.DefaultAdminPassword)

	resp := env.postJSON(t, admin, "/api/desactivar-usuario", fiber.Map{"username": "admin"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.postJSON(t, admin, "/api/eliminar-usuario", fiber.Map{"username": "admin"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUserManagementRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.createStaff(t, "maria", "clave123")
	staff := env.login(t, "maria", "clave123")

	resp := env.postJSON(t, staff, "/api/crear-usuario", fiber.Map{"username": "otro", "password": "clave"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.get(t, staff, "/api/usuarios")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLogsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.createStaff(t, "maria", "clave123")
	staff := env.login(t, "maria", "clave123")
	admin := env.login(t, "admin", database.DefaultAdminPassword)

	id := env.submitApplicant(t, "44556677")
	resp := env.postJSON(t, staff, "/api/recibir-postulante", fiber.Map{"id": id})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.get(t, admin, "/api/logs?q="+url.QueryEscape("Recibió"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	items, _ := body["items"].([]interface{})
	require.Len(t, items, 1)
	require.Equal(t, float64(1), body["total"])

	resp = env.postJSON(t, admin, "/api/limpiar-logs", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(2), decodeBody(t, resp)["eliminados"])
}

func TestHeartbeatAndActiveUsers(t *testing.T) {
	env := newTestEnv(t)
	env.createStaff(t, "maria", "clave123")
	staff := env.login(t, "maria", "clave123")
	admin := env.login(t, "admin", database.DefaultAdminPassword)

	resp := env.postJSON(t, staff, "/api/heartbeat", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.get(t, admin, "/api/usuarios-activos")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	usuarios, _ := decodeBody(t, resp)["usuarios"].([]interface{})
	require.Equal(t, []interface{}{"maria"}, usuarios)

	env.clock.Advance(2 * time.Minute)
	resp = env.get(t, admin, "/api/usuarios-activos")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	usuarios, _ = decodeBody(t, resp)["usuarios"].([]interface{})
	require.Empty(t, usuarios)
}

func TestStatsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.createStaff(t, "maria", "clave123")
	staff := env.login(t, "maria", "clave123")
	admin := env.login(t, "admin", database.DefaultAdminPassword)

	env.submitApplicant(t, "11111111")
	id := env.submitApplicant(t, "22222222")
	resp := env.postJSON(t, staff, "/api/recibir-postulante", fiber.Map{"id": id})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.get(t, admin, "/api/estadisticas")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, float64(1), body["registrados_mujeres"])
	require.Equal(t, float64(1), body["recibidos_mujeres"])
	require.Equal(t, float64(0), body["registrados_hombres"])
}

func TestExportEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.createStaff(t, "maria", "clave123")
	staff := env.login(t, "maria", "clave123")
	admin := env.login(t, "admin", database.DefaultAdminPassword)

	id := env.submitApplicant(t, "44556677")
	resp := env.postJSON(t, staff, "/api/recibir-postulante", fiber.Map{"id": id})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.get(t, admin, "/admin/export/csv")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "attachment; filename=postulantes_")

	resp = env.get(t, admin, "/admin/export/excel")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")

	resp = env.get(t, staff, "/admin/export/csv")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
