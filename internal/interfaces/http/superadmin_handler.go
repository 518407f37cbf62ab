package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Offers-api/internal/application/dto"
	"github.com/jhoicas/Offers-api/internal/application/superadmin"
	"github.com/jhoicas/Offers-api/pkg/logger"
)

// SuperAdminHandler maneja los endpoints del panel de plataforma.
type SuperAdminHandler struct {
	uc  *superadmin.UseCase
	val *Validator
	log *logger.Logger
}

// NewSuperAdminHandler construye el handler.
func NewSuperAdminHandler(uc *superadmin.UseCase, val *Validator, log *logger.Logger) *SuperAdminHandler {
	return &SuperAdminHandler{uc: uc, val: val, log: log}
}

// Dashboard devuelve las métricas globales de la plataforma.
// GET /api/superadmin/dashboard
//
// Respuesta: totalCompanies, activeCompanies, totalUsers, totalOffers,
// monthlyRevenue y totalRevenue. Se recalculan en cada llamada.
func (h *SuperAdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(stats)
}

// Companies lista todas las empresas con su número de usuarios y ofertas.
// GET /api/superadmin/companies
func (h *SuperAdminHandler) Companies(c *fiber.Ctx) error {
	out, err := h.uc.Companies(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateSubscription modifica los campos de suscripción presentes en el body.
// PUT /api/superadmin/companies/:id/subscription
func (h *SuperAdminHandler) UpdateSubscription(c *fiber.Ctx) error {
	var in dto.UpdateSubscriptionRequest
	if ok, err := h.val.bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateSubscription(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ToggleStatus habilita o deshabilita la empresa.
// POST /api/superadmin/companies/:id/toggle-status
func (h *SuperAdminHandler) ToggleStatus(c *fiber.Ctx) error {
	active, err := h.uc.ToggleCompanyStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.CompanyStatusResponse{Success: true, IsActive: active})
}
