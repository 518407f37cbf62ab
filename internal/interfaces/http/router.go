package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Offers-api/internal/application/auth"
	"github.com/jhoicas/Offers-api/internal/application/offer"
	"github.com/jhoicas/Offers-api/internal/application/superadmin"
	"github.com/jhoicas/Offers-api/internal/application/usecase"
	"github.com/jhoicas/Offers-api/pkg/config"
	"github.com/jhoicas/Offers-api/pkg/jwt"
	"github.com/jhoicas/Offers-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	UserUC       *usecase.UserUseCase
	OfferUC      *offer.UseCase
	SuperAdminUC *superadmin.UseCase

	JWT           jwt.Options
	ActiveChecker ActiveChecker // nil = no se reverifica is_active por request
	RateLimit     config.RateLimitConfig
	// SubscriptionEnforced exige suscripción vigente para crear y enviar ofertas.
	SubscriptionEnforced bool
	Log                  *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	val := NewValidator()
	authMW := AuthMiddleware(AuthConfig{JWT: deps.JWT, Active: deps.ActiveChecker})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público, con límite por IP)
	authHandler := NewAuthHandler(deps.AuthUC, val, log.Named("auth"))
	authGroup := api.Group("/auth")
	limited := RateLimit(deps.RateLimit, IPKey)
	authGroup.Post("/login", limited, authHandler.Login)
	authGroup.Post("/register", limited, authHandler.Register)
	authGroup.Post("/refresh", limited, authHandler.Refresh)
	authGroup.Post("/logout", authMW, authHandler.Logout)

	// Empresa del token
	companyHandler := NewCompanyHandler(deps.CompanyUC, val, log.Named("company"))
	company := api.Group("/company", authMW, RequireCompany())
	company.Get("/", companyHandler.Get)
	company.Get("/me", companyHandler.Get)
	company.Put("/", companyHandler.Update)
	company.Post("/logo", companyHandler.UploadLogo)

	// Ofertas
	subscription := func(c *fiber.Ctx) error { return c.Next() }
	if deps.SubscriptionEnforced {
		subscription = RequireActiveSubscription(deps.CompanyUC)
	}
	offerHandler := NewOfferHandler(deps.OfferUC, val, log.Named("offers"))
	offers := api.Group("/offers", authMW)
	offers.Get("/", offerHandler.List)
	offers.Post("/", subscription, offerHandler.Create)
	offers.Get("/:id", offerHandler.Get)
	offers.Put("/:id", offerHandler.Update)
	offers.Delete("/:id", offerHandler.Delete)
	offers.Post("/:id/send", subscription, offerHandler.Send)
	offers.Get("/:id/pdf", offerHandler.PDF)

	// Usuarios de la empresa (solo Admin)
	userHandler := NewUserHandler(deps.UserUC, val, log.Named("users"))
	users := api.Group("/users", authMW, RequireCompany(), RequireRole("Admin"))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/toggle-status", userHandler.ToggleStatus)

	// Panel de plataforma
	saHandler := NewSuperAdminHandler(deps.SuperAdminUC, val, log.Named("superadmin"))
	sa := api.Group("/superadmin", authMW, RequireSuperAdmin())
	sa.Get("/dashboard", saHandler.Dashboard)
	sa.Get("/companies", saHandler.Companies)
	sa.Put("/companies/:id/subscription", saHandler.UpdateSubscription)
	sa.Post("/companies/:id/toggle-status", saHandler.ToggleStatus)
}
