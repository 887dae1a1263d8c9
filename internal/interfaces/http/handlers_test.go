package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vivienda-api/internal/application/dto"
	"github.com/jhoicas/vivienda-api/internal/application/usecase"
	"github.com/jhoicas/vivienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/vivienda-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/vivienda-api/internal/interfaces/http"
	"github.com/jhoicas/vivienda-api/pkg/logger"
)

// newAPI arma la API completa sobre SQLite en memoria. jwtSecret vacío = sin autenticación.
func newAPI(t *testing.T, jwtSecret string) *fiber.App {
	t.Helper()
	db, err := sqlite.OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	programs := usecase.NewProgramUseCase(sqlite.NewProgramRepository(db))
	users := usecase.NewUserUseCase(sqlite.NewUserRepository(db))
	reports := usecase.NewReportUseCase(programs, pdf.NewMarotoReportGenerator())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProgramUC: programs,
		UserUC:    users,
		ReportUC:  reports,
		Logger:    logger.Nop(),
		JWTSecret: jwtSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

const programBody = `{"name":"Mi Casa Ya","description":"Subsidio para vivienda nueva","responsible_entity":"Ministerio de Vivienda"}`

func createProgram(t *testing.T, app *fiber.App) dto.ProgramResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/programs", programBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProgramResponse](t, resp)
}

func TestProgramsAPI_CRUD(t *testing.T) {
	app := newAPI(t, "")

	created := createProgram(t, app)
	assert.Regexp(t, `^[0-9]{4}BS[0-9A-F]{4}$`, created.Code)
	assert.Equal(t, "DRAFT", created.State)

	resp := call(t, app, http.MethodGet, "/api/programs/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.Code, decode[dto.ProgramResponse](t, resp).Code)

	resp = call(t, app, http.MethodPatch, "/api/programs/"+created.ID, `{"responsible_entity":"Fonvivienda","name":null}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.ProgramResponse](t, resp)
	assert.Equal(t, "Fonvivienda", updated.ResponsibleEntity)
	assert.Equal(t, "Mi Casa Ya", updated.Name)

	resp = call(t, app, http.MethodGet, "/api/programs?state=DRAFT", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ProgramListResponse](t, resp)
	assert.Equal(t, 1, list.Count)

	resp = call(t, app, http.MethodDelete, "/api/programs/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, "/api/programs/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	notFound := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", notFound.Code)
	assert.Equal(t, "El programa con ID "+created.ID+" no existe", notFound.Error)
}

func TestProgramsAPI_Validacion(t *testing.T) {
	app := newAPI(t, "")

	resp := call(t, app, http.MethodPost, "/api/programs", `{"name":"ab","description":"corta","responsible_entity":"X"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ValidationErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Len(t, body.Error, 2)

	resp = call(t, app, http.MethodPost, "/api/programs", `{"name":`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestProgramsAPI_ChangeState(t *testing.T) {
	app := newAPI(t, "")
	created := createProgram(t, app)
	path := "/api/programs/" + created.ID + "/change-state"

	resp := call(t, app, http.MethodPost, path, `{}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Debe proporcionar un new_state"}, decode[dto.ValidationErrorResponse](t, resp).Error)

	resp = call(t, app, http.MethodPost, path, `{"new_state":"FOO"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodPost, path, `{"new_state":"ACTIVE"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ChangeProgramStateResponse](t, resp)
	assert.Equal(t, "El programa fue actualizado a estado ACTIVE", out.Message)
	assert.Equal(t, "ACTIVE", out.Program.State)

	resp = call(t, app, http.MethodPost, "/api/programs/no-existe/change-state", `{"new_state":"ACTIVE"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProgramsAPI_StatsYReporte(t *testing.T) {
	app := newAPI(t, "")
	createProgram(t, app)

	resp := call(t, app, http.MethodGet, "/api/programs/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[dto.ProgramStatsResponse](t, resp)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, map[string]int{"DRAFT": 1, "ACTIVE": 0, "DISABLED": 0}, stats.ByState)

	resp = call(t, app, http.MethodGet, "/api/programs/report", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `attachment; filename="programas_`)
	doc, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(doc), "%PDF"))

	resp = call(t, app, http.MethodGet, "/api/programs/report?state=FOO", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

const userBody = `{"first_name":"Ana","last_name":"Gómez","document_number":"1020304050","email":"ana@example.com","role":"TECHNICIAN"}`

func TestUsersAPI(t *testing.T) {
	app := newAPI(t, "")

	resp := call(t, app, http.MethodPost, "/api/users", userBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ana := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "ACTIVE", ana.State)
	assert.Equal(t, "Ana Gómez", ana.FullName)

	resp = call(t, app, http.MethodPost, "/api/users",
		`{"first_name":"Luis","last_name":"Pérez","document_number":"1020304050","email":"luis@example.com","role":"STAFF"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Ya existe un usuario con el documento 1020304050"}, decode[dto.ValidationErrorResponse](t, resp).Error)

	resp = call(t, app, http.MethodPost, "/api/users",
		`{"first_name":"Luis","last_name":"Pérez","document_number":"99999","email":"luis@example.com","role":"STAFF"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/users?search=example&role=TECHNICIAN", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.UserListResponse](t, resp)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, ana.ID, list.Results[0].ID)

	resp = call(t, app, http.MethodPatch, "/api/users/"+ana.ID+"/change-state", `{}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"El estado es requerido"}, decode[dto.ValidationErrorResponse](t, resp).Error)

	resp = call(t, app, http.MethodPatch, "/api/users/"+ana.ID+"/change-state", `{"state":"INACTIVE"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "INACTIVE", decode[dto.UserResponse](t, resp).State)

	resp = call(t, app, http.MethodPut, "/api/users/"+ana.ID, `{"email":"ana.gomez@example.com"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ana.gomez@example.com", decode[dto.UserResponse](t, resp).Email)

	resp = call(t, app, http.MethodGet, "/api/users/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[dto.UserStatsResponse](t, resp)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Inactive)

	resp = call(t, app, http.MethodDelete, "/api/users/"+ana.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = call(t, app, http.MethodGet, "/api/users/"+ana.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
