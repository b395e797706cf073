package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"complyapi/internal/agent"
	"complyapi/internal/config"
	"complyapi/internal/extract"
	handlers "complyapi/internal/http/handler"
	"complyapi/internal/http/middleware"
	"complyapi/internal/otel"
	"complyapi/internal/service"
	"complyapi/internal/storage"
)

func main() {
	// Configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	shutdownTracing, err := otel.Init(context.Background(), log)
	if err != nil {
		log.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownTracing(ctx)
	}()

	store, err := newStorage(cfg)
	if err != nil {
		log.Error("failed to initialize storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}

	complianceAgent := agent.New(cfg.OpenAI, agent.DefaultGuidelines)
	docSvc := service.NewDocumentService(store, service.ExtractorFunc(extract.Text), complianceAgent, cfg.Upload)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: handlers.ErrorHandler(),
		// Leave headroom above the upload ceiling so the service layer, not
		// the body reader, rejects oversized files with a descriptive error.
		BodyLimit: int(cfg.Upload.MaxFileSize) + 1024*1024,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, cfg, docSvc)

	log.Info("starting server",
		"app", cfg.AppName,
		"version", cfg.Version,
		"port", cfg.Port,
		"storage_backend", cfg.Storage.Backend,
		"openai_configured", cfg.OpenAI.APIKey != "",
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newStorage(cfg *config.AppConfig) (storage.Storage, error) {
	if cfg.Storage.Backend == "minio" {
		return storage.NewMinIO(cfg.Storage.MinIO)
	}
	return storage.NewLocal(cfg.Upload.Dir)
}
