package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Offers-api/internal/application/dto"
	"github.com/jhoicas/Offers-api/internal/domain/access"
	"github.com/jhoicas/Offers-api/pkg/jwt"
)

// Locals keys para la identidad del llamante en Fiber.
const (
	LocalUserID     = "user_id"
	LocalCompanyID  = "company_id"
	LocalEmail      = "email"
	LocalName       = "name"
	LocalRoles      = "roles"
	LocalSuperAdmin = "super_admin"
)

// ActiveChecker verifica en cada request que el usuario del token siga activo
// (lo implementa cache.UserStatusCache).
type ActiveChecker interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// AuthConfig opciones del middleware. Active nil desactiva la verificación de estado.
type AuthConfig struct {
	JWT    jwt.Options
	Active ActiveChecker
}

// AuthMiddleware valida el Bearer Token JWT y carga la identidad en c.Locals.
func AuthMiddleware(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(cfg.JWT, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if cfg.Active != nil {
			active, err := cfg.Active.IsActive(c.UserContext(), claims.UserID)
			if err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
					Code:    "AUTH_CHECK_FAILED",
					Message: "no se pudo verificar la cuenta, intente más tarde",
				})
			}
			if !active {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ACCOUNT_DISABLED", Message: "la cuenta está desactivada"})
			}
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalCompanyID, claims.CompanyID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalName, claims.Name)
		c.Locals(LocalRoles, claims.Roles)
		c.Locals(LocalSuperAdmin, claims.SuperAdmin)
		return c.Next()
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetCompanyID devuelve el CompanyID del contexto ("" si el usuario no tiene empresa).
func GetCompanyID(c *fiber.Ctx) string { return localString(c, LocalCompanyID) }

// GetRoles devuelve los roles del token.
func GetRoles(c *fiber.Ctx) []string {
	roles, _ := c.Locals(LocalRoles).([]string)
	return roles
}

// IsSuperAdmin informa si el token es de super-admin.
func IsSuperAdmin(c *fiber.Ctx) bool {
	v, _ := c.Locals(LocalSuperAdmin).(bool)
	return v
}

// GetPrincipal arma la identidad completa del llamante.
func GetPrincipal(c *fiber.Ctx) access.Principal {
	return access.Principal{
		UserID:     GetUserID(c),
		CompanyID:  GetCompanyID(c),
		Email:      localString(c, LocalEmail),
		Name:       localString(c, LocalName),
		Roles:      GetRoles(c),
		SuperAdmin: IsSuperAdmin(c),
	}
}
