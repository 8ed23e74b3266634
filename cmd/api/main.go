package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"rentsearch_backend/internal/catalog"
	"rentsearch_backend/internal/controller"
	"rentsearch_backend/internal/middleware"
	"rentsearch_backend/internal/model"
	"rentsearch_backend/internal/places"
	"rentsearch_backend/internal/search"
	"rentsearch_backend/pkg/config"
	"rentsearch_backend/pkg/cron"
	"rentsearch_backend/pkg/database"
	applog "rentsearch_backend/pkg/logger"
	"rentsearch_backend/pkg/seed"
)

func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/health", controller.HealthCheck)

	// Search routes
	properties := api.Group("/properties")
	properties.Get("/search", controller.SearchProperties)
	properties.Get("/search/options", controller.GetSearchOptions)

	api.Get("/places/nearby", controller.GetNearbyPlaces)

	// Catalog routes
	catalogRoutes := api.Group("/catalog")
	catalogRoutes.Get("/status", controller.GetCatalogStatus)
	catalogRoutes.Get("/cities", controller.GetCatalogCities)
}

func newLoader(ctx context.Context, cfg *config.Config) (catalog.Loader, error) {
	switch cfg.Catalog.Source {
	case "postgres":
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL is not set")
		}
		if err := database.InitDB(cfg.Database.URL); err != nil {
			return nil, err
		}
		if err := database.MigrateDatabase(&model.Property{}); err != nil {
			slog.Warn("migration warning", "error", err)
		}
		if cfg.Catalog.Seed {
			if _, err := seed.SeedProperties(database.GetDB(), cfg.Catalog.File); err != nil {
				slog.Warn("could not seed properties", "error", err)
			}
		}
		return catalog.NewPostgresLoader(database.GetDB()), nil
	case "s3":
		return catalog.NewS3Loader(ctx, catalog.S3Options{
			Bucket:    cfg.Catalog.S3.Bucket,
			Key:       cfg.Catalog.S3.Key,
			Endpoint:  cfg.Catalog.S3.Endpoint,
			AccessKey: cfg.Catalog.S3.AccessKey,
			SecretKey: cfg.Catalog.S3.SecretKey,
		})
	case "file":
		return catalog.NewFileLoader(cfg.Catalog.File), nil
	default:
		return nil, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.Catalog.Source)
	}
}

func main() {
	cfg := config.Load()

	log := applog.New(applog.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	slog.SetDefault(log)

	ctx := context.Background()

	loader, err := newLoader(ctx, cfg)
	if err != nil {
		log.Error("could not initialize catalog source", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	store := catalog.NewStore(loader, catalog.StoreOptions{
		GeohashPrecision: cfg.Search.GeohashPrecision,
		MaxCells:         cfg.Search.MaxCells,
	}, log)

	// A failed first load is not fatal; the scheduled refresh retries and
	// search answers 503 until then.
	initCtx, cancel := context.WithTimeout(ctx, time.Minute)
	if err := store.Refresh(initCtx); err != nil {
		log.Warn("initial catalog load failed", "error", err)
	}
	cancel()

	scheduler, err := cron.InitCatalogRefreshCron(store, cfg.Catalog.RefreshSchedule, time.Minute, log)
	if err != nil {
		log.Error("could not schedule catalog refresh", "schedule", cfg.Catalog.RefreshSchedule, "error", err)
		os.Exit(1)
	}

	if cfg.Places.APIKey == "" {
		log.Warn("PLACES_API_KEY not set, nearby places will be empty")
	}
	aggregator := places.NewAggregator(
		places.NewGooglePlacesClient(cfg.Places.APIKey, cfg.Places.BaseURL),
		places.Options{RadiusMeters: cfg.Places.RadiusMeters, Timeout: cfg.Places.Timeout},
		log,
	)

	controller.InitSearchController(controller.SearchDeps{
		Builder: search.NewFilterBuilder(search.FilterOptions{
			DefaultLimit:    cfg.Search.DefaultLimit,
			MaxLimit:        cfg.Search.MaxLimit,
			DefaultRadiusKm: cfg.Search.DefaultRadiusKm,
		}),
		Catalog: store,
		Places:  aggregator,
		Logger:  log,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				middleware.Logger(c).Error("request failed", "path", c.Path(), "error", err)
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.RequestContext(cfg.Server.RequestTimeout))

	setupRoutes(app)

	go func() {
		log.Info("server is running", "port", cfg.Server.Port, "catalog_source", loader.Source())
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	<-scheduler.Stop().Done()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}
