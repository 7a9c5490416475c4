package main

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityHeadersOnEveryResponse(t *testing.T) {
	app := fiber.New()
	app.Use(helmet.New(securityHeaders))
	app.Get("/probe", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/probe", nil))
	require.NoError(t, err)

	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", resp.Header.Get("Referrer-Policy"))
	assert.Equal(t,
		"default-src 'self'; style-src 'self' 'unsafe-inline';",
		resp.Header.Get("Content-Security-Policy"))
}

func TestErrorPageShowsActualStatusCode(t *testing.T) {
	engine := html.New("./app/templates", ".html")
	app := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layouts/main",
		ErrorHandler: customErrorHandler,
	})
	app.Get("/probe", func(c *fiber.Ctx) error { return c.SendString("ok") })

	cases := []struct {
		method string
		path   string
		status int
		code   string
	}{
		{method: fiber.MethodGet, path: "/missing", status: fiber.StatusNotFound, code: "404"},
		{method: fiber.MethodPost, path: "/probe", status: fiber.StatusMethodNotAllowed, code: "405"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		require.NoError(t, err)
		require.Equal(t, tc.status, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), tc.code)
	}
}
