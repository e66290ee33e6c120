package api

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/saiprannav/weatherdesk/internal/apperr"
	"github.com/saiprannav/weatherdesk/internal/export"
	"github.com/saiprannav/weatherdesk/internal/models"
	"github.com/saiprannav/weatherdesk/internal/weather"
)

var validate = validator.New()

func registerRoutes(app *fiber.App, service *weather.Service, log zerolog.Logger) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "weatherdesk"})
	})

	wg := app.Group("/api/weather")
	wg.Get("/current", currentHandler(service, log))
	wg.Get("/forecast", forecastHandler(service, log))
	wg.Get("/export", exportHandler(service))
	wg.Get("/", listHandler(service))
	wg.Post("/", createHandler(service, log))
	wg.Put("/:id", updateHandler(service))
	wg.Delete("/:id", deleteHandler(service))

	app.Get("/api/location/media", mediaHandler(service))
	app.Get("/api/location/history", locationHistoryHandler(service))
}

func requireLocation(c *fiber.Ctx) (string, error) {
	loc := c.Query("location")
	if loc == "" {
		return "", apperr.Validation("location query parameter is required")
	}
	return loc, nil
}

func currentHandler(service *weather.Service, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc, err := requireLocation(c)
		if err != nil {
			return err
		}

		current, err := service.Current(c.UserContext(), loc)
		if err != nil {
			if current != nil {
				// Fetched but not persisted; return the data and report
				// the storage failure instead of hiding it.
				log.Warn().Err(err).Str("location", loc).Msg("current conditions fetched but not persisted")
				return successWithWarning(c, current, "data could not be saved: "+err.Error())
			}
			return err
		}
		return success(c, current)
	}
}

func forecastHandler(service *weather.Service, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc, err := requireLocation(c)
		if err != nil {
			return err
		}
		days := c.QueryInt("days", weather.MaxForecastDays)

		name, daily, err := service.ForecastDays(c.UserContext(), loc, days)
		if err != nil && daily == nil {
			return err
		}
		payload := fiber.Map{
			"location": name,
			"days":     len(daily),
			"forecast": daily,
		}
		if err != nil {
			log.Warn().Err(err).Str("location", loc).Msg("forecast fetched but not persisted")
			return successWithWarning(c, payload, "data could not be saved: "+err.Error())
		}
		return success(c, payload)
	}
}

func listHandler(service *weather.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		records, err := service.List(limit)
		if err != nil {
			return err
		}
		if records == nil {
			records = []models.WeatherRecord{}
		}
		return success(c, records)
	}
}

type createRequest struct {
	Location  string `json:"location" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

func createHandler(service *weather.Service, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createRequest
		if err := c.BodyParser(&req); err != nil {
			return apperr.Validation("invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return apperr.Validation(err.Error())
		}

		rec, err := service.CreateQuery(c.UserContext(), req.Location, req.StartDate, req.EndDate)
		if err != nil && rec == nil {
			return err
		}
		body := fiber.Map{
			"status": "success",
			"data":   rec,
		}
		if err != nil {
			log.Warn().Err(err).Str("location", req.Location).Msg("weather query created but history not persisted")
			body["warning"] = "data could not be fully saved: " + err.Error()
		}
		return c.Status(fiber.StatusCreated).JSON(body)
	}
}

type updateRequest struct {
	Temperature *float64 `json:"temperature"`
	Condition   *string  `json:"condition"`
}

func updateHandler(service *weather.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return apperr.Validation("record id must be an integer")
		}

		var req updateRequest
		if err := c.BodyParser(&req); err != nil {
			return apperr.Validation("invalid request body")
		}

		rec, err := service.Update(id, models.RecordUpdate{
			Temperature: req.Temperature,
			Condition:   req.Condition,
		})
		if err != nil {
			return err
		}
		return success(c, rec)
	}
}

func deleteHandler(service *weather.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return apperr.Validation("record id must be an integer")
		}
		if err := service.Delete(id); err != nil {
			return err
		}
		return success(c, fiber.Map{"deleted": id})
	}
}

func exportHandler(service *weather.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc, err := requireLocation(c)
		if err != nil {
			return err
		}
		format := c.Query("format", "json")

		data, err := service.Snapshot(c.UserContext(), loc)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		var contentType, ext string
		switch format {
		case "json":
			contentType, ext = fiber.MIMEApplicationJSON, "json"
			err = export.JSON(&buf, data)
		case "csv":
			contentType, ext = "text/csv", "csv"
			err = export.CSV(&buf, data)
		case "pdf":
			contentType, ext = "application/pdf", "pdf"
			err = export.PDF(&buf, data)
		default:
			return apperr.Validationf("unsupported export format %q", format)
		}
		if err != nil {
			return err
		}

		filename := fmt.Sprintf("weather-%s.%s", uuid.NewString(), ext)
		c.Set(fiber.HeaderContentType, contentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(buf.Bytes())
	}
}

func mediaHandler(service *weather.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc, err := requireLocation(c)
		if err != nil {
			return err
		}
		media, err := service.Media(c.UserContext(), loc)
		if err != nil {
			return err
		}
		return success(c, media)
	}
}

func locationHistoryHandler(service *weather.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 10)
		recent, err := service.RecentLocations(limit)
		if err != nil {
			return err
		}
		if recent == nil {
			recent = []models.LocationSearch{}
		}
		return success(c, recent)
	}
}
