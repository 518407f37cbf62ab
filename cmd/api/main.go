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
	"github.com/spf13/afero"

	"github.com/jhoicas/Offers-api/docs"
	"github.com/jhoicas/Offers-api/internal/application/auth"
	"github.com/jhoicas/Offers-api/internal/application/offer"
	"github.com/jhoicas/Offers-api/internal/application/superadmin"
	"github.com/jhoicas/Offers-api/internal/application/usecase"
	"github.com/jhoicas/Offers-api/internal/domain/access"
	offerpolicy "github.com/jhoicas/Offers-api/internal/domain/offer"
	"github.com/jhoicas/Offers-api/internal/infrastructure/cache"
	"github.com/jhoicas/Offers-api/internal/infrastructure/email"
	infrapdf "github.com/jhoicas/Offers-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Offers-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Offers-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Offers-api/internal/interfaces/http"
	"github.com/jhoicas/Offers-api/pkg/config"
	"github.com/jhoicas/Offers-api/pkg/jwt"
	"github.com/jhoicas/Offers-api/pkg/logger"
	"github.com/jhoicas/Offers-api/pkg/money"
	"github.com/jhoicas/Offers-api/pkg/tracing"
)

// @title                       Offers API
// @version                     1.0
// @description                 Ofertas comerciales multi-empresa: numeración, PDF y envío por email.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, cfg.App.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.ApplyMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	offerRepo := postgres.NewOfferRepository(pool)
	statsRepo := postgres.NewPlatformStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	logos, err := storage.NewLocalLogoStorage(afero.NewOsFs(), cfg.Storage.UploadDir, cfg.Storage.PublicPath)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de logos")
	}

	// PDF y email comparten idioma de formato de importes
	lang := money.Tag(cfg.SMTP.Locale)
	pdfRenderer := infrapdf.NewMarotoOfferPDF(lang, logos.LocalPath)
	mailer := email.NewSMTPSender(cfg.SMTP, pdfRenderer, log)

	jwtOpts := jwt.Options{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		Audience:   cfg.JWT.Audience,
		ExpMinutes: cfg.JWT.Expiration,
	}

	var statusCache *cache.UserStatusCache
	var activeChecker httpRouter.ActiveChecker
	if cfg.Auth.RecheckActive {
		statusCache = cache.NewUserStatusCache(userRepo, cfg.Auth.ActiveCacheTTL)
		activeChecker = statusCache
	}
	var invalidator usecase.StatusInvalidator
	if statusCache != nil {
		invalidator = statusCache
	}

	authUC := auth.NewAuthUseCase(userRepo, txRunner, jwtOpts)
	companyUC := usecase.NewCompanyUseCase(companyRepo, logos, cfg.Storage.MaxLogoBytes)
	userUC := usecase.NewUserUseCase(userRepo, invalidator)
	offerUC := offer.NewUseCase(offerRepo, userRepo, companyRepo, txRunner, mailer, pdfRenderer, offer.Config{
		Numbering:  offerpolicy.NewNumberingPolicy(cfg.Offers.NumberPrefix, cfg.Offers.ResetMonthly),
		Visibility: access.ParseVisibility(cfg.Offers.Visibility),
	})
	superAdminUC := superadmin.NewUseCase(statsRepo, companyRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Storage.MaxLogoBytes) + 1<<20,
	})
	app.Use(recover.New())
	app.Use(httpRouter.Tracing())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.SwaggerEnabled {
		docs.SwaggerInfo.Host = cfg.HTTP.Addr()
		app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
			return c.Type("json").SendString(docs.SwaggerInfo.ReadDoc())
		})
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Offers API",
		}))
	}

	// Logos subidos
	app.Static(cfg.Storage.PublicPath, cfg.Storage.UploadDir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:               authUC,
		CompanyUC:            companyUC,
		UserUC:               userUC,
		OfferUC:              offerUC,
		SuperAdminUC:         superAdminUC,
		JWT:                  jwtOpts,
		ActiveChecker:        activeChecker,
		RateLimit:            cfg.RateLimit,
		SubscriptionEnforced: cfg.Offers.SubscriptionEnforced,
		Log:                  log,
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
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
