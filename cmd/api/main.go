package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jcamargo/desviaciones-api/internal/application/auth"
	"github.com/jcamargo/desviaciones-api/internal/application/report"
	"github.com/jcamargo/desviaciones-api/internal/application/summary"
	"github.com/jcamargo/desviaciones-api/internal/application/user"
	"github.com/jcamargo/desviaciones-api/internal/infrastructure/cloudinary"
	infrapdf "github.com/jcamargo/desviaciones-api/internal/infrastructure/pdf"
	"github.com/jcamargo/desviaciones-api/internal/infrastructure/postgres"
	httpRouter "github.com/jcamargo/desviaciones-api/internal/interfaces/http"
	"github.com/jcamargo/desviaciones-api/pkg/config"
	"github.com/jcamargo/desviaciones-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")
	log.Debug().
		Str("addr", cfg.HTTP.Addr()).
		Str("cors", cfg.HTTP.CORSOrigin).
		Msg("configuración HTTP")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	summaryRepo := postgres.NewSummaryRepository(pool)

	pdfGenerator := infrapdf.NewMarotoReportPDF()
	uploadSigner := cloudinary.NewSigner(
		cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret,
	)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:          cfg.JWT.Secret,
		RefreshSecret:   cfg.JWT.RefreshSecret,
		ExpMinutes:      cfg.JWT.Expiration,
		RefreshExpHours: cfg.JWT.RefreshExpHours,
		Issuer:          cfg.JWT.Issuer,
	}, cfg.Auth.AllowOpenReg)
	reportUC := report.NewReportUseCase(reportRepo, pdfGenerator)
	summaryUC := summary.NewSummaryUseCase(summaryRepo, userRepo)
	userUC := user.NewUserUseCase(userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigin,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Desviaciones API",
	}))

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ReportUC:        reportUC,
		SummaryUC:       summaryUC,
		UserUC:          userUC,
		UploadSigner:    uploadSigner,
		JWTSecret:       cfg.JWT.Secret,
		RefreshExpHours: cfg.JWT.RefreshExpHours,
		SecureCookies:   cfg.App.Env == "production",
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
