package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Offers-api/internal/application/dto"
	"github.com/jhoicas/Offers-api/internal/application/offer"
	"github.com/jhoicas/Offers-api/pkg/logger"
)

// OfferHandler expone el CRUD de ofertas, el envío por email y el PDF.
type OfferHandler struct {
	uc  *offer.UseCase
	val *Validator
	log *logger.Logger
}

// NewOfferHandler construye el handler de ofertas.
func NewOfferHandler(uc *offer.UseCase, val *Validator, log *logger.Logger) *OfferHandler {
	return &OfferHandler{uc: uc, val: val, log: log}
}

// List godoc
// @Summary      Listar ofertas del usuario
// @Description  Devuelve un array; el total va en el header X-Total-Count.
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Param        page      query  int  false  "Página"            default(1)
// @Param        pageSize  query  int  false  "Tamaño de página"  default(10)
// @Success      200  {array}   dto.OfferResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/offers [get]
func (h *OfferHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", dto.DefaultPageSize),
	}
	items, total, err := h.uc.List(c.UserContext(), GetPrincipal(c), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set("X-Total-Count", strconv.Itoa(total))
	return c.JSON(items)
}

// Create godoc
// @Summary      Crear oferta
// @Description  Asigna el siguiente número correlativo de la empresa (PREFIJO-YYYYMM-NNN).
// @Tags         offers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateOfferRequest  true  "Cliente e ítems"
// @Success      201   {object}  dto.OfferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/offers [post]
func (h *OfferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOfferRequest
	if ok, err := h.val.bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener oferta por ID
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.OfferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/offers/{id} [get]
func (h *OfferHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar oferta
// @Description  Reemplaza los datos del cliente y todos los ítems. Número y estado no cambian.
// @Tags         offers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "ID de la oferta"
// @Param        body  body  dto.UpdateOfferRequest  true  "Cliente e ítems"
// @Success      200   {object}  dto.OfferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/offers/{id} [put]
func (h *OfferHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOfferRequest
	if ok, err := h.val.bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar oferta
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/offers/{id} [delete]
func (h *OfferHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Oferta eliminada"})
}

// Send godoc
// @Summary      Enviar oferta por email al cliente
// @Description  Solo si el envío tiene éxito la oferta pasa a estado Sent.
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.OfferResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/offers/{id}/send [post]
func (h *OfferHandler) Send(c *fiber.Ctx) error {
	out, err := h.uc.Send(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar la oferta en PDF
// @Tags         offers
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la oferta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/offers/{id}/pdf [get]
func (h *OfferHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.RenderPDF(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(data)
}
