package route

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupSystemRoutes(t *testing.T) {
	app := fiber.New()
	SetupSystemRoutes(app, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Endpoints map[string][]string `json:"endpoints"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Endpoints["grades"], "GET /api/v1/grades/simulations")
}
