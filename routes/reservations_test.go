package routes

import (
	"encoding/json"
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
)

// buildBookingTestApp wires the booking surface the way main does.
func buildBookingTestApp() *iris.Application {
	app := iris.New()
	app.Validator = validator.New()
	app.Post("/reservations", CreateReservation)
	app.Delete("/reservations", CancelReservation)
	_ = app.Build()
	return app
}

func doJSON(app *iris.Application, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestCreateReservationFlow(t *testing.T) {
	storage.Initialize(t.TempDir())
	require.NoError(t, storage.PremiumExperiences.SaveAll([]models.PremiumExperience{
		{ID: "exp1", Title: "Cata de vinos", Status: models.StatusApproved, MaxSeats: 10, ReservedSeats: 8,
			Reservations: []models.Reservation{{UserID: "u8", Seats: 8}}},
	}))
	app := buildBookingTestApp()

	// over capacity
	resp := doJSON(app, http.MethodPost, "/reservations",
		`{"experienceId":"exp1","userId":"u1","userName":"Ana","seats":3}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "capacity_exceeded", decodeBody(t, resp)["error"])

	// fits exactly
	resp = doJSON(app, http.MethodPost, "/reservations",
		`{"experienceId":"exp1","userId":"u1","userName":"Ana","seats":2}`)
	require.Equal(t, http.StatusCreated, resp.Code)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	exp := body["experience"].(map[string]interface{})
	assert.EqualValues(t, 10, exp["reservedSeats"])

	// duplicate for the same user
	resp = doJSON(app, http.MethodPost, "/reservations",
		`{"experienceId":"exp1","userId":"u1","userName":"Ana","seats":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "already_reserved", decodeBody(t, resp)["error"])

	// cancel frees the seats again
	resp = doJSON(app, http.MethodDelete, "/reservations?experienceId=exp1&userId=u1", "")
	require.Equal(t, http.StatusOK, resp.Code)
	body = decodeBody(t, resp)
	exp = body["experience"].(map[string]interface{})
	assert.EqualValues(t, 8, exp["reservedSeats"])
}

func TestCreateReservationValidation(t *testing.T) {
	storage.Initialize(t.TempDir())
	app := buildBookingTestApp()

	// missing required fields
	resp := doJSON(app, http.MethodPost, "/reservations", `{"experienceId":"exp1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// unknown experience
	resp = doJSON(app, http.MethodPost, "/reservations",
		`{"experienceId":"missing","userId":"u1","userName":"Ana","seats":1}`)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCancelReservationValidation(t *testing.T) {
	storage.Initialize(t.TempDir())
	require.NoError(t, storage.PremiumExperiences.SaveAll([]models.PremiumExperience{
		{ID: "exp1", MaxSeats: 5},
	}))
	app := buildBookingTestApp()

	// missing params
	resp := doJSON(app, http.MethodDelete, "/reservations?experienceId=exp1", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// no reservation for that user
	resp = doJSON(app, http.MethodDelete, "/reservations?experienceId=exp1&userId=u1", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// no such experience
	resp = doJSON(app, http.MethodDelete, "/reservations?experienceId=nope&userId=u1", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
