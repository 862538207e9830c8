package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/facturave/facturave-api/internal/application/auth"
	"github.com/facturave/facturave-api/internal/application/billing"
	"github.com/facturave/facturave-api/internal/application/rates"
	"github.com/facturave/facturave-api/internal/application/usecase"
	"github.com/facturave/facturave-api/internal/domain/fiscal"
	infraexcel "github.com/facturave/facturave-api/internal/infrastructure/excel"
	infrapdf "github.com/facturave/facturave-api/internal/infrastructure/pdf"
	"github.com/facturave/facturave-api/internal/infrastructure/postgres"
	"github.com/facturave/facturave-api/internal/infrastructure/timbrado"
	httpRouter "github.com/facturave/facturave-api/internal/interfaces/http"
	"github.com/facturave/facturave-api/internal/observability/metrics"
	"github.com/facturave/facturave-api/pkg/config"
	"github.com/facturave/facturave-api/pkg/logger"
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

	metrics.Init()

	// Repositorios sobre el pool. Los de emisión se re-ligan a la tx en el runner.
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	rateRepo := postgres.NewExchangeRateRepository(pool)
	controlRepo := postgres.NewControlNumberRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Calculadora fiscal: la tasa IGTF viene de config (se fija por decreto).
	tasaIGTF, err := decimal.NewFromString(cfg.Fiscal.TasaIGTF)
	if err != nil {
		log.Fatal().Err(err).Str("valor", cfg.Fiscal.TasaIGTF).Msg("IGTF_TASA inválida")
	}
	calc := fiscal.NewCalculadora(fiscal.Config{TasaIGTF: tasaIGTF})

	// Casos de uso
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	invoiceUC := billing.NewInvoiceUseCase(
		txRunner, invoiceRepo, customerRepo, companyRepo, itemRepo, rateRepo,
		calc, cfg.Fiscal.Moneda, log,
	)
	controlUC := billing.NewControlNumberUseCase(controlRepo)
	rateUC := rates.NewRateUseCase(rateRepo, log)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(invoiceRepo, companyRepo, customerRepo, pdfGenerator)

	salesBookUC := billing.NewSalesBookUseCase(
		invoiceRepo, companyRepo, customerRepo, infraexcel.NewSalesBookExporter(),
	)

	// Proveedor de timbrado (imprenta digital). En modo dev el documento se
	// genera pero no se envía.
	builder := timbrado.NewBuilderService(log.Zerolog())
	var submitter timbrado.Submitter
	if cfg.Timbrado.AppEnv != timbrado.AppEnvDev && cfg.Timbrado.Endpoint != "" {
		submitter = timbrado.NewHTTPClient(cfg.Timbrado.Endpoint, cfg.Timbrado.Token)
	}
	exportUC := billing.NewExportUseCase(
		invoiceRepo, companyRepo, customerRepo,
		builder, submitter, cfg.Timbrado.AppEnv, log,
	)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
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
	app.Use(metricsMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturave API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:  companyUC,
		ItemUC:     itemUC,
		UserUC:     userUC,
		CustomerUC: customerUC,
		InvoiceUC:  invoiceUC,
		PDFUC:      pdfUC,
		ExportUC:   exportUC,
		SalesBook:  salesBookUC,
		ControlUC:  controlUC,
		RateUC:     rateUC,
		AuthUC:     authUC,
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

// metricsMiddleware observa método, ruta y status de cada petición terminada.
func metricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		metrics.ObserveHTTPRequest(
			c.Method(), c.Route().Path,
			strconv.Itoa(c.Response().StatusCode()),
			time.Since(start),
		)
		return err
	}
}
