package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/clinident/clinident-api/internal/application/auth"
	"github.com/clinident/clinident-api/internal/application/cita"
	"github.com/clinident/clinident-api/internal/application/insumo"
	"github.com/clinident/clinident-api/internal/application/paciente"
	"github.com/clinident/clinident-api/internal/application/perfil"
	"github.com/clinident/clinident-api/internal/application/reporte"
	infrapdf "github.com/clinident/clinident-api/internal/infrastructure/pdf"
	"github.com/clinident/clinident-api/internal/infrastructure/postgres"
	"github.com/clinident/clinident-api/internal/infrastructure/storage"
	httpRouter "github.com/clinident/clinident-api/internal/interfaces/http"
	"github.com/clinident/clinident-api/pkg/config"
	"github.com/clinident/clinident-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	pacienteRepo := postgres.NewPacienteRepository(pool)
	insumoRepo := postgres.NewInsumoRepository(pool)
	citaRepo := postgres.NewCitaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	perfilRepo := postgres.NewPerfilRepository(pool)
	reporteRepo := postgres.NewReporteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	fotoStorage, err := storage.NewLocalStorage(cfg.Storage.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar storage de fotos")
	}

	pacienteUC := paciente.NewPacienteUseCase(pacienteRepo)
	historiaGen := infrapdf.NewMarotoHistoriaGenerator()
	historiaUC := paciente.NewHistoriaPDFUseCase(pacienteRepo, citaRepo, historiaGen)
	insumoUC := insumo.NewInsumoUseCase(insumoRepo)
	createCitaUC := cita.NewCreateCitaUseCase(txRunner, pacienteRepo, insumoRepo, log.Zerolog())
	citaUC := cita.NewCitaUseCase(txRunner, citaRepo)
	reporteUC := reporte.NewReporteUseCase(reporteRepo)
	perfilUC := perfil.NewPerfilUseCase(perfilRepo, fotoStorage)
	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CliniDent API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		PacienteUC: pacienteUC,
		HistoriaUC: historiaUC,
		CreateCita: createCitaUC,
		CitaUC:     citaUC,
		InsumoUC:   insumoUC,
		ReporteUC:  reporteUC,
		AuthUC:     authUC,
		PerfilUC:   perfilUC,
		JWTSecret:  cfg.JWT.Secret,
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
