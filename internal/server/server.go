package server

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bvggrabber/bvg-cli/internal/api"
	"github.com/bvggrabber/bvg-cli/internal/board"
	"github.com/bvggrabber/bvg-cli/internal/model"
)

// Server answers departure requests over HTTP.
type Server struct {
	Client   *api.Client
	Cache    *api.ResponseCache
	Vehicles api.Vehicle
	Limit    int
	Version  string
}

// App builds the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(requestLogger())

	app.Get("/version", s.version)
	app.Get("/departures", s.departures)

	return app
}

func (s *Server) version(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"version": s.Version})
}

func (s *Server) departures(c *fiber.Ctx) error {
	stations := queryValues(c, "station", false)
	if len(stations) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least one station parameter is required",
		})
	}

	vehicles := s.Vehicles
	if names := queryValues(c, "vehicle", true); len(names) > 0 {
		parsed, err := api.ParseVehicles(names)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		vehicles = parsed
	}

	result := board.Collect(c.UserContext(), board.Stations(s.Client, stations, vehicles, s.Limit, s.Cache), 0)

	resp := result.Response
	status := fiber.StatusOK
	if len(result.Failed) == len(stations) {
		resp = result.Failed[0].Response
		status = failureStatus(resp.Err())
	}

	api.FilterDepartures(resp, c.Query("line"), c.Query("dest"))

	body, err := resp.Serialize(model.SerializeOptions{IncludeReference: c.QueryBool("reference")})
	if err != nil {
		return err
	}
	return c.Status(status).JSON(body)
}

func failureStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrStationNotFound), errors.Is(err, model.ErrAmbiguousStation):
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadGateway
	}
}

// queryValues collects a repeatable query parameter. With split, comma separated lists
// are accepted too.
func queryValues(c *fiber.Ctx, key string, split bool) []string {
	var values []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		parts := []string{string(raw)}
		if split {
			parts = strings.Split(string(raw), ",")
		}
		for _, v := range parts {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}
