package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })
	return &buf
}

func TestRequestLogger(t *testing.T) {
	buf := captureLog(t)

	app := fiber.New()
	app.Use(requestLogger())
	app.Get("/departures", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadGateway, "upstream") })

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/departures?station=Zoo&station=Hermannplatz&vehicle=S,U", nil))
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, float64(404), entry["status"])
	assert.Equal(t, []any{"Zoo", "Hermannplatz"}, entry["stations"])
	assert.Equal(t, []any{"S", "U"}, entry["vehicles"])
	assert.Equal(t, "Request served", entry["message"])

	buf.Reset()
	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)

	entry = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, float64(502), entry["status"])
	assert.Equal(t, "upstream", entry["error"])
	assert.NotContains(t, entry, "stations")
}
