package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pauta-api/internal/application/campaigns"
	"github.com/jhoicas/Pauta-api/internal/application/dto"
	"github.com/jhoicas/Pauta-api/internal/domain"
)

// CampaignHandler maneja las peticiones HTTP de campañas (protegido).
type CampaignHandler struct {
	uc *campaigns.CampaignUseCase
}

// NewCampaignHandler construye el handler.
func NewCampaignHandler(uc *campaigns.CampaignUseCase) *CampaignHandler {
	return &CampaignHandler{uc: uc}
}

// Create crea una campaña.
// POST /api/campaigns
func (h *CampaignHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateCampaignRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	campaign, err := h.uc.Create(companyID, in)
	if err != nil {
		return campaignError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(campaign)
}

// List lista campañas con filtros y paginación por cursor.
// GET /api/campaigns
func (h *CampaignHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query params inválidos"})
	}
	page, err := h.uc.List(companyID, in)
	if err != nil {
		return campaignError(c, err)
	}
	return c.JSON(page)
}

// GetByID obtiene el detalle de una campaña (incluye IDs derivados).
// GET /api/campaigns/:id
func (h *CampaignHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	campaign, err := h.uc.GetByID(companyID, c.Params("id"))
	if err != nil {
		return campaignError(c, err)
	}
	return c.JSON(campaign)
}

// Update actualiza una campaña.
// PUT /api/campaigns/:id
func (h *CampaignHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateCampaignRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	campaign, err := h.uc.Update(companyID, c.Params("id"), in)
	if err != nil {
		return campaignError(c, err)
	}
	return c.JSON(campaign)
}

// Delete elimina una campaña sin facturas.
// DELETE /api/campaigns/:id
func (h *CampaignHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Delete(companyID, c.Params("id")); err != nil {
		return campaignError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// campaignError mapea errores de dominio a HTTP para las rutas de campañas.
func campaignError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrInvalidCursor):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CURSOR", Message: "cursor de paginación inválido"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "campaña no encontrada"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la campaña tiene facturas asociadas"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
