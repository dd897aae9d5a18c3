package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// requestLogger logs each request once it has been answered, at a level matching the
// status class. Departure requests also log the stations and vehicles asked for.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// errors are turned into responses by the error handler, after this returns
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		var event *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			event = log.Error()
		case status >= fiber.StatusBadRequest:
			event = log.Warn()
		default:
			event = log.Info()
		}

		event = event.
			Int("status", status).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Dur("latency", time.Since(start))

		if stations := queryValues(c, "station", false); len(stations) > 0 {
			event = event.Strs("stations", stations)
		}
		if vehicles := queryValues(c, "vehicle", true); len(vehicles) > 0 {
			event = event.Strs("vehicles", vehicles)
		}
		if err != nil {
			event = event.Err(err)
		}

		event.Msg("Request served")
		return err
	}
}
