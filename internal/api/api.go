// Package api exposes the weather service over HTTP.
package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/saiprannav/weatherdesk/internal/apperr"
	"github.com/saiprannav/weatherdesk/internal/weather"
)

// Options tunes the HTTP surface.
type Options struct {
	// RequestsPerMinute caps requests per client IP. Zero disables the cap.
	RequestsPerMinute int
}

// New builds the Fiber app with all routes registered.
func New(service *weather.Service, log zerolog.Logger, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weatherdesk",
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(recover.New())
	if opts.RequestsPerMinute > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RequestsPerMinute,
			Expiration: time.Minute,
		}))
	}

	registerRoutes(app, service, log)

	return app
}

// errorHandler renders every error as the standard envelope, mapping the
// domain error kind to a status code.
func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		code := "INTERNAL_ERROR"

		var fiberErr *fiber.Error
		switch {
		case apperr.IsValidation(err):
			status = fiber.StatusBadRequest
			code = "VALIDATION_ERROR"
		case apperr.IsNotFound(err):
			status = fiber.StatusNotFound
			code = "NOT_FOUND"
		case apperr.IsUpstream(err):
			status = fiber.StatusBadGateway
			code = "UPSTREAM_ERROR"
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			if status == fiber.StatusBadRequest {
				code = "VALIDATION_ERROR"
			} else if status == fiber.StatusNotFound {
				code = "NOT_FOUND"
			} else if status == fiber.StatusTooManyRequests {
				code = "RATE_LIMITED"
			}
		}

		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		}

		return c.Status(status).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
			"code":    code,
		})
	}
}

func success(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// successWithWarning renders a success envelope for a fetch that worked but
// could not be fully persisted. The warning keeps the storage failure
// visible to the caller.
func successWithWarning(c *fiber.Ctx, data any, warning string) error {
	return c.JSON(fiber.Map{
		"status":  "success",
		"data":    data,
		"warning": warning,
	})
}
