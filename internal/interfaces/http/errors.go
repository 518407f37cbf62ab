package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Offers-api/internal/application/dto"
	"github.com/jhoicas/Offers-api/internal/domain"
	"github.com/jhoicas/Offers-api/pkg/logger"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: ErrEmailAlreadyExists antes que ErrConflict.
var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrSelfAction, fiber.StatusBadRequest, "SELF_ACTION"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrAccountDisabled, fiber.StatusForbidden, "ACCOUNT_DISABLED"},
	{domain.ErrSubscriptionInactive, fiber.StatusForbidden, "SUBSCRIPTION_INACTIVE"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrOfferNumberTaken, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// writeError traduce un error de caso de uso a la respuesta HTTP.
// Los errores que no son de dominio se registran y se devuelven como 500 sin detalle.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	if errors.Is(err, domain.ErrDeliveryFailed) {
		log.Error().Err(err).Str("path", c.Path()).Msg("envío de oferta fallido")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code:    "DELIVERY_FAILED",
			Message: domain.ErrDeliveryFailed.Error(),
		})
	}
	if errors.Is(err, domain.ErrSentNotRecorded) {
		log.Error().Err(err).Str("path", c.Path()).Msg("oferta entregada por email sin estado Sent: conciliar manualmente")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "SENT_NOT_RECORDED",
			Message: domain.ErrSentNotRecorded.Error(),
		})
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "error interno del servidor",
	})
}
