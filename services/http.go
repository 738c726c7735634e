package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/daffahardhan/portfolio_api/middleware"
	"github.com/daffahardhan/portfolio_api/services/handlers"
	"github.com/daffahardhan/portfolio_api/shared"
)

const apiVersion = "1.0.0"

type HttpService struct {
	context.DefaultService

	contactSvc   *ContactService
	analyticsSvc *AnalyticsService
	rateLimitSvc *RateLimitService
	monitorSvc   *MonitoringService

	port      int
	startedAt time.Time
	server    *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 5000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.contactSvc = svc.Service(CONTACT_SVC).(*ContactService)
	svc.analyticsSvc = svc.Service(ANALYTICS_SVC).(*AnalyticsService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitorSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.startedAt = time.Now()

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(svc.corsConfig()))
	app.Use(MonitoringMiddleware(svc.monitorSvc))

	contactHandler := handlers.NewContactHandler(svc.contactSvc)
	analyticsHandler := handlers.NewAnalyticsHandler(svc.analyticsSvc, DefaultRetentionDays)

	app.Get("/", svc.index)

	api := app.Group("/api", svc.rateLimitSvc.GeneralRateLimit())

	api.Get("/health", svc.health)

	contact := api.Group("/contact")
	contact.Post("/", svc.rateLimitSvc.ContactRateLimit(), middleware.ValidateContactForm(), contactHandler.Create)
	contact.Get("/", contactHandler.List)
	contact.Get("/count", contactHandler.Count)
	contact.Get("/:id", contactHandler.Get)
	contact.Delete("/:id", contactHandler.Delete)

	analytics := api.Group("/analytics")
	analytics.Post("/visit", analyticsHandler.TrackVisit)
	analytics.Get("/summary", analyticsHandler.Summary)
	analytics.Delete("/cleanup", analyticsHandler.Cleanup)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c, "Endpoint not found")
	})

	svc.server = app

	log.WithField("port", svc.port).Info("HTTP server starting")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) corsConfig() cors.Config {
	config := cors.ConfigDefault
	if origin := os.Getenv("FRONTEND_URL"); origin != "" {
		config.AllowOrigins = origin
	}
	return config
}

// @Summary API index
// @Description Name, version and endpoint map of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (svc *HttpService) index(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Portfolio API Server - Daffa Hardhan",
		"version": apiVersion,
		"endpoints": fiber.Map{
			"health":    "/api/health",
			"contact":   "/api/contact",
			"analytics": "/api/analytics",
		},
	})
}

// @Summary Health check
// @Description Liveness probe with server uptime in seconds
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func (svc *HttpService) health(c *fiber.Ctx) error {
	// Flat shape, not the usual envelope: uptime and timestamp sit at the
	// top level for the frontend status widget.
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   "Server is running",
		"uptime":    time.Since(svc.startedAt).Seconds(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleError is the centralized fiber error handler. Known AppErrors map to
// their status and message; anything else is logged and hidden behind a
// generic 500.
func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseError(c, appErr.StatusCode, appErr.Message)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseError(c, fiberErr.Code, fiberErr.Message)
	}

	log.WithError(err).WithFields(log.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("Unhandled error")

	return shared.ResponseInternalError(c)
}
