// Package main provides the API server: graph CRUD, validation, runs and
// schedule-triggered execution in one process.
package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/toolweave/toolweave/pkg/engine"
	"github.com/toolweave/toolweave/pkg/eventbus"
	"github.com/toolweave/toolweave/pkg/otelhelper"
	"github.com/toolweave/toolweave/pkg/persistence"
	"github.com/toolweave/toolweave/pkg/registry"
	"github.com/toolweave/toolweave/pkg/scheduler"
	"github.com/toolweave/toolweave/pkg/web"
)

type API struct {
	logger   *slog.Logger
	store    persistence.GraphStore
	registry *registry.Registry
	eventBus eventbus.EventBus
	validate *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	store persistence.GraphStore,
	reg *registry.Registry,
	eventBus eventbus.EventBus,
) *API {
	return &API{
		logger:   logger,
		store:    store,
		registry: reg,
		eventBus: eventBus,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Start builds the engine and scheduler, mounts the routes and serves until
// the listener fails or ctx ends.
func (a *API) Start(ctx context.Context, port int) error {
	opts := []engine.Option{engine.WithEventBus(a.eventBus)}

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		tracer, err := otelhelper.NewTracer(ctx, "toolweave-api")
		if err != nil {
			return err
		}

		opts = append(opts, engine.WithTracer(tracer))
	}

	eng := engine.New(a.registry, a.logger, opts...)

	sched := scheduler.New(a.store, func(ctx context.Context, graphID, nodeID string) {
		doc, err := a.store.GraphByID(ctx, graphID)
		if err != nil {
			a.logger.Error("scheduled run: failed to load graph", "graph_id", graphID, "error", err)

			return
		}

		report, err := eng.Run(ctx, doc)
		if report != nil {
			if saveErr := a.store.SaveReport(ctx, report); saveErr != nil {
				a.logger.Error("scheduled run: failed to save report", "run_id", report.RunID, "error", saveErr)
			}
		}

		if err != nil {
			a.logger.Warn("scheduled run finished with error", "graph_id", graphID, "error", err)
		}
	}, a.logger)

	if err := sched.Start(ctx); err != nil {
		return err
	}

	defer sched.Stop()

	return a.App(eng).Listen(":" + strconv.Itoa(port))
}

func (a *API) App(eng *engine.Engine) *fiber.App {
	handlers := web.NewAPIHandlers(a.store, a.registry, eng, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Toolweave API")
	})

	web.RegisterRoutes(app, handlers)

	return app
}
