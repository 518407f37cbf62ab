package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Offers-api/internal/application/dto"
)

// subscriptionChecker es el contrato mínimo que necesita el middleware para verificar la suscripción.
// Lo implementa *usecase.CompanyUseCase; el uso de interfaz evita el import circular.
type subscriptionChecker interface {
	HasActiveSubscription(ctx context.Context, companyID string) (bool, error)
}

// RequireActiveSubscription devuelve un middleware Fiber que verifica que la empresa del token
// esté habilitada y con suscripción vigente. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 403 SUBSCRIPTION_INACTIVE → suscripción inactiva, vencida o empresa deshabilitada.
//   - 503 SUBSCRIPTION_CHECK_FAILED → fallo de infraestructura al consultar la DB.
//   - 400 NO_COMPANY → el usuario no tiene empresa.
func RequireActiveSubscription(checker subscriptionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "NO_COMPANY",
				Message: "el usuario no pertenece a ninguna empresa",
			})
		}

		active, err := checker.HasActiveSubscription(c.UserContext(), companyID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_CHECK_FAILED",
				Message: "no se pudo verificar la suscripción, intente más tarde",
			})
		}

		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_INACTIVE",
				Message: "la suscripción de la empresa no está activa",
			})
		}

		return c.Next()
	}
}
