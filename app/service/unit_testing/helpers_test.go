package service_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func setupApp() *fiber.App {
	return fiber.New()
}

// withUser stands in for the auth middleware.
func withUser(id int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", id)
		c.Locals("username", "admin")
		return c.Next()
	}
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
