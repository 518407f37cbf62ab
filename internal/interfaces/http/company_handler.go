package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Offers-api/internal/application/dto"
	"github.com/jhoicas/Offers-api/internal/application/usecase"
	"github.com/jhoicas/Offers-api/pkg/logger"
)

// CompanyHandler maneja el perfil de la empresa del usuario autenticado.
type CompanyHandler struct {
	uc  *usecase.CompanyUseCase
	val *Validator
	log *logger.Logger
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase, val *Validator, log *logger.Logger) *CompanyHandler {
	return &CompanyHandler{uc: uc, val: val, log: log}
}

// Get godoc
// @Summary      Obtener la empresa del usuario
// @Tags         company
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar la empresa del usuario
// @Tags         company
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateCompanyRequest  true  "Datos de la empresa"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/company [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if ok, err := h.val.bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UploadLogo godoc
// @Summary      Subir logo de la empresa
// @Tags         company
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        logo  formData  file  true  "png, jpg, jpeg, gif o webp"
// @Success      200   {object}  dto.LogoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company/logo [post]
func (h *CompanyHandler) UploadLogo(c *fiber.Ctx) error {
	fh, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "el campo logo es requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, h.log, err)
	}
	defer f.Close()

	path, err := h.uc.UploadLogo(c.UserContext(), GetCompanyID(c), fh.Filename, fh.Size, f)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.LogoResponse{Success: true, Logo: path})
}
