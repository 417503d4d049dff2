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

	"github.com/jhoicas/Pauta-api/internal/application/auth"
	"github.com/jhoicas/Pauta-api/internal/application/billing"
	"github.com/jhoicas/Pauta-api/internal/application/campaigns"
	"github.com/jhoicas/Pauta-api/internal/application/usecase"
	"github.com/jhoicas/Pauta-api/internal/domain/export"
	infrapdf "github.com/jhoicas/Pauta-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Pauta-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Pauta-api/internal/interfaces/http"
	"github.com/jhoicas/Pauta-api/pkg/config"
	"github.com/jhoicas/Pauta-api/pkg/logger"
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

	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	campaignRepo := postgres.NewCampaignRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	lineItemRepo := postgres.NewLineItemRepository(pool)
	changeLogRepo := postgres.NewChangeLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	moduleSvc := usecase.NewModuleService(companyRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	campaignUC := campaigns.NewCampaignUseCase(campaignRepo, invoiceRepo, lineItemRepo)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, campaignRepo, lineItemRepo, changeLogRepo)
	lineItemUC := billing.NewLineItemUseCase(lineItemRepo, campaignRepo, invoiceRepo)
	adjustUC := billing.NewAdjustmentUseCase(txRunner)
	changeLogUC := billing.NewChangeLogUseCase(changeLogRepo, invoiceRepo)

	csvExporter := export.NewCSVExporter(cfg.Export.CSVDateLayout)
	exportUC := billing.NewExportUseCase(campaignRepo, invoiceRepo, lineItemRepo, changeLogRepo, csvExporter)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(invoiceRepo, campaignRepo, companyRepo, lineItemRepo, pdfGenerator)

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
		Title:    "Pauta Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:   companyUC,
		ModuleSvc:   moduleSvc,
		AuthUC:      authUC,
		CampaignUC:  campaignUC,
		InvoiceUC:   invoiceUC,
		LineItemUC:  lineItemUC,
		AdjustUC:    adjustUC,
		ChangeLogUC: changeLogUC,
		ExportUC:    exportUC,
		PDFUC:       pdfUC,
		JWTSecret:   cfg.JWT.Secret,
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
