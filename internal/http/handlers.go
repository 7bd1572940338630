package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/forecast"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/history"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/service"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/stats"
)

const (
	defaultAlertLimit = 50
	maxForecastHours  = 48
)

func Register(app *fiber.App, svcs *service.Services) {
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	g := app.Group("/")
	g.Get("thresholds", func(c *fiber.Ctx) error {
		return c.JSON(svcs.Thresholds)
	})

	g.Get("status", func(c *fiber.Ctx) error {
		parameter := c.Query("parameter")
		if _, ok := (domain.Reading{}).Value(parameter); !ok {
			return fail(c, fiber.StatusBadRequest, errors.New("unknown parameter"))
		}
		value, err := strconv.ParseFloat(c.Query("value"), 64)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, errors.New("value must be a number"))
		}
		return c.JSON(fiber.Map{
			"parameter": parameter,
			"value":     value,
			"status":    svcs.Pipeline.Alerts().ParameterStatus(value, parameter),
		})
	})

	g.Post("readings/process", func(c *fiber.Ctx) error {
		var cycle service.Cycle
		if err := c.BodyParser(&cycle); err != nil {
			return fail(c, fiber.StatusBadRequest, err)
		}
		return c.JSON(svcs.Pipeline.Process(c.UserContext(), cycle))
	})

	g.Get("acceleration", func(c *fiber.Ctx) error {
		resp := fiber.Map{
			"ready":          svcs.Accel.Ready(),
			"implementation": svcs.Accel.Implementation(),
			"runtime":        stats.VectorInfo(),
		}
		if err := svcs.Accel.Err(); err != nil {
			resp["error"] = err.Error()
		}
		return c.JSON(resp)
	})

	g.Get("forecast/feature-importance", func(c *fiber.Ctx) error {
		return c.JSON(forecast.FeatureImportances())
	})

	g.Get("farms", func(c *fiber.Ctx) error {
		if svcs.Store == nil {
			return fail(c, fiber.StatusServiceUnavailable, errors.New("farm store not configured"))
		}
		items, err := svcs.Store.ListFarms(c.UserContext())
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, err)
		}
		return c.JSON(items)
	})

	farms := app.Group("/farms/:farm")
	farms.Get("/readings", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", history.DefaultCapacity)
		items, err := svcs.History.Recent(c.UserContext(), c.Params("farm"), limit)
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, err)
		}
		return c.JSON(items)
	})

	farms.Post("/readings", func(c *fiber.Ctx) error {
		var r domain.Reading
		if err := c.BodyParser(&r); err != nil {
			return fail(c, fiber.StatusBadRequest, err)
		}
		r.FarmID = c.Params("farm")
		res, err := svcs.Readings.Ingest(c.UserContext(), r)
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})

	farms.Get("/alerts", func(c *fiber.Ctx) error {
		if svcs.Store == nil {
			return fail(c, fiber.StatusServiceUnavailable, errors.New("alert store not configured"))
		}
		items, err := svcs.Store.RecentAlerts(c.UserContext(), c.Params("farm"), c.QueryInt("limit", defaultAlertLimit))
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, err)
		}
		return c.JSON(items)
	})

	farms.Get("/forecast", func(c *fiber.Ctx) error {
		hours := c.QueryInt("hours", 0)
		if hours < 0 || hours > maxForecastHours {
			return fail(c, fiber.StatusBadRequest, errors.New("hours must be between 0 and 48 (0 selects the default horizon)"))
		}
		items, err := svcs.Forecast(c.UserContext(), c.Params("farm"), hours)
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, err)
		}
		return c.JSON(items)
	})

	farms.Get("/feeding/metrics", func(c *fiber.Ctx) error {
		m, err := svcs.FeedingMetrics(c.UserContext(), c.Params("farm"))
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, err)
		}
		return c.JSON(m)
	})

	farms.Get("/aerator", func(c *fiber.Ctx) error {
		rec, err := svcs.Aerator(c.UserContext(), c.Params("farm"), c.QueryBool("active", false))
		if errors.Is(err, service.ErrNoHistory) {
			return fail(c, fiber.StatusNotFound, err)
		}
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, err)
		}
		return c.JSON(rec)
	})
}

func fail(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
