// Package main provides the FlowHR API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/flowhr/flowhr/pkg/persistence"
	"github.com/flowhr/flowhr/pkg/registry"
	"github.com/flowhr/flowhr/pkg/simulation"
	"github.com/flowhr/flowhr/pkg/validation"
	"github.com/flowhr/flowhr/pkg/web"
	"github.com/flowhr/flowhr/pkg/workflow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger   *slog.Logger
	store    persistence.Store
	validate *validator.Validate
}

func NewAPI(logger *slog.Logger, store persistence.Store) *API {
	return &API{
		logger:   logger,
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	registryInstance := registry.NewRegistry(a.logger)
	repository := workflow.NewRepository(a.store)
	workflowValidator := validation.NewValidator(registryInstance)
	engine := simulation.NewEngine(a.logger)

	handlers := web.NewAPIHandlers(repository, workflowValidator, engine, registryInstance, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("FlowHR API")
	})

	app.Get("/node-types", handlers.GetNodeTypes)
	app.Get("/automations", handlers.GetAutomations)
	app.Get("/automations/:id", handlers.GetAutomation)
	app.Post("/validate", handlers.ValidateGraph)
	app.Post("/simulate", handlers.SimulateGraph)

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Post("/", handlers.CreateWorkflow)
	w.Post("/import", handlers.ImportWorkflow)
	w.Get("/:id", handlers.GetWorkflow)
	w.Put("/:id", handlers.SaveWorkflow)
	w.Patch("/:id", handlers.RenameWorkflow)
	w.Delete("/:id", handlers.DeleteWorkflow)
	w.Get("/:id/export", handlers.ExportWorkflow)
	w.Post("/:id/validate", handlers.ValidateWorkflow)
	w.Post("/:id/simulate", handlers.SimulateWorkflow)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	return a.App().Listen(":" + strconv.Itoa(port))
}
