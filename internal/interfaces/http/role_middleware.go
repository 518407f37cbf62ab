package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Offers-api/internal/application/dto"
	"github.com/jhoicas/Offers-api/internal/domain/access"
)

// RequireRole autoriza si el token tiene alguno de los roles indicados.
// Debe usarse DESPUÉS de AuthMiddleware.
//   - 401 MISSING_ROLE → token sin roles.
//   - 403 FORBIDDEN    → rol distinto al requerido.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		have := GetRoles(c)
		if len(have) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye roles"})
		}
		if !(access.Principal{Roles: have}).HasRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tiene permisos para este recurso"})
		}
		return c.Next()
	}
}

// RequireCompany exige que el usuario pertenezca a una empresa (400 NO_COMPANY).
func RequireCompany() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetCompanyID(c) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_COMPANY", Message: "el usuario no pertenece a ninguna empresa"})
		}
		return c.Next()
	}
}

// RequireSuperAdmin restringe la ruta al administrador de plataforma (403 FORBIDDEN).
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsSuperAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el super-admin puede acceder"})
		}
		return c.Next()
	}
}
