package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thrilogia-ux/havaia-sub001/models"
	"github.com/thrilogia-ux/havaia-sub001/storage"
	"github.com/thrilogia-ux/havaia-sub001/utils"
)

// buildAdminTestApp wires the gated admin parties the way main does.
func buildAdminTestApp() *iris.Application {
	app := iris.New()
	app.Validator = validator.New()

	admin := app.Party("/admin")
	users := admin.Party("/users", utils.AdminOnlyMiddleware)
	users.Get("/", AdminListUsers)
	users.Post("/", AdminCreateUser)
	users.Put("/{id}", AdminUpdateUser)
	users.Delete("/{id}", AdminDeleteUser)

	experiences := admin.Party("/experiences", utils.AdminOrHostMiddleware)
	experiences.Get("/", AdminListExperiences)
	experiences.Get("/{id}", AdminGetExperience)
	experiences.Put("/{id}", AdminUpdateExperience)
	experiences.Delete("/{id}", AdminDeleteExperience)

	_ = app.Build()
	return app
}

func seedAccounts(t *testing.T) {
	t.Helper()
	storage.Initialize(t.TempDir())
	require.NoError(t, storage.Users.SaveAll([]models.User{
		{ID: "admin-1", Name: "Admin", Email: "admin@havaia.test", Role: models.RoleAdmin},
		{ID: "host-1", Name: "Hilda", Email: "hilda@havaia.test", Role: models.RoleHost},
		{ID: "host-2", Name: "Hugo", Email: "hugo@havaia.test", Role: models.RoleHost},
		{ID: "user-1", Name: "Ana", Email: "ana@havaia.test", Role: models.RoleUser},
	}))
	require.NoError(t, storage.Experiences.SaveAll([]models.Experience{
		{ID: "own-1", Title: "Ruta de tapas", Status: models.StatusApproved, HostID: "host-1"},
		// owned by host-2 through the embedded host email only
		{ID: "other-1", Title: "Surf al amanecer", Status: models.StatusApproved,
			Host: &models.Host{Name: "Hugo", Email: "hugo@havaia.test"}},
	}))
}

func doAuthed(app *iris.Application, method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func TestAdminUsersRBAC(t *testing.T) {
	seedAccounts(t)
	app := buildAdminTestApp()

	// no credential and wrong role look identical from outside
	resp := doAuthed(app, http.MethodGet, "/admin/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = doAuthed(app, http.MethodGet, "/admin/users", "user-1", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = doAuthed(app, http.MethodGet, "/admin/users", "host-1", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = doAuthed(app, http.MethodGet, "/admin/users", "admin-1", "")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestHostOwnershipScoping(t *testing.T) {
	seedAccounts(t)
	app := buildAdminTestApp()

	// foreign experience: visible ids differ on both hostId and host.email
	resp := doAuthed(app, http.MethodGet, "/admin/experiences/other-1", "host-1", "")
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = doAuthed(app, http.MethodPut, "/admin/experiences/other-1", "host-1", `{"title":"x"}`)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = doAuthed(app, http.MethodDelete, "/admin/experiences/other-1", "host-1", "")
	assert.Equal(t, http.StatusForbidden, resp.Code)

	// owned experience works
	resp = doAuthed(app, http.MethodGet, "/admin/experiences/own-1", "host-1", "")
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = doAuthed(app, http.MethodPut, "/admin/experiences/own-1", "host-1", `{"description":"con paella"}`)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = doAuthed(app, http.MethodDelete, "/admin/experiences/own-1", "host-1", "")
	assert.Equal(t, http.StatusOK, resp.Code)

	// email-based ownership admits host-2 to the record without a hostId
	resp = doAuthed(app, http.MethodGet, "/admin/experiences/other-1", "host-2", "")
	assert.Equal(t, http.StatusOK, resp.Code)

	// admins are never ownership-scoped
	resp = doAuthed(app, http.MethodDelete, "/admin/experiences/other-1", "admin-1", "")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestHostListNarrowing(t *testing.T) {
	seedAccounts(t)
	app := buildAdminTestApp()

	resp := doAuthed(app, http.MethodGet, "/admin/experiences", "host-1", "")
	require.Equal(t, http.StatusOK, resp.Code)
	body := decodeBody(t, resp)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	row := data[0].(map[string]interface{})
	assert.Equal(t, "own-1", row["id"])
}

func TestAdminCannotDeleteOwnUser(t *testing.T) {
	seedAccounts(t)
	app := buildAdminTestApp()

	resp := doAuthed(app, http.MethodDelete, "/admin/users/admin-1", "admin-1", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "invalid_payload", decodeBody(t, resp)["error"])

	resp = doAuthed(app, http.MethodDelete, "/admin/users/user-1", "admin-1", "")
	assert.Equal(t, http.StatusOK, resp.Code)

	// the deleted record is gone from subsequent reads
	resp = doAuthed(app, http.MethodGet, "/admin/users", "admin-1", "")
	require.Equal(t, http.StatusOK, resp.Code)
	for _, raw := range decodeBody(t, resp)["data"].([]interface{}) {
		assert.NotEqual(t, "user-1", raw.(map[string]interface{})["id"])
	}

	resp = doAuthed(app, http.MethodDelete, "/admin/users/user-1", "admin-1", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAdminUpdateUserValidation(t *testing.T) {
	seedAccounts(t)
	app := buildAdminTestApp()

	// a patch may not blank out identifying fields
	resp := doAuthed(app, http.MethodPut, "/admin/users/user-1", "admin-1", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doAuthed(app, http.MethodPut, "/admin/users/user-1", "admin-1", `{"email":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// nor steal another account's email
	resp = doAuthed(app, http.MethodPut, "/admin/users/user-1", "admin-1", `{"email":"hilda@havaia.test"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "invalid_payload", decodeBody(t, resp)["error"])

	resp = doAuthed(app, http.MethodPut, "/admin/users/user-1", "admin-1", `{"city":"Sevilla","role":"host"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	row := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "Sevilla", row["city"])
	assert.Equal(t, "host", row["role"])
	assert.Equal(t, "ana@havaia.test", row["email"])
}

func TestAdminCreateUserValidation(t *testing.T) {
	seedAccounts(t)
	app := buildAdminTestApp()

	// missing identifying fields
	resp := doAuthed(app, http.MethodPost, "/admin/users", "admin-1", `{"name":"Sin Correo"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// duplicate email
	resp = doAuthed(app, http.MethodPost, "/admin/users", "admin-1",
		`{"name":"Ana Dos","email":"ana@havaia.test"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doAuthed(app, http.MethodPost, "/admin/users", "admin-1",
		`{"name":"Nuevo","email":"nuevo@havaia.test","role":"host"}`)
	assert.Equal(t, http.StatusCreated, resp.Code)
}
