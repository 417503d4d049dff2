package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pauta-api/internal/application/billing"
	"github.com/jhoicas/Pauta-api/internal/application/dto"
	"github.com/jhoicas/Pauta-api/internal/domain"
)

// LineItemHandler maneja las peticiones HTTP de líneas de pauta (protegido).
type LineItemHandler struct {
	uc       *billing.LineItemUseCase
	adjustUC *billing.AdjustmentUseCase
}

// NewLineItemHandler construye el handler.
func NewLineItemHandler(uc *billing.LineItemUseCase, adjustUC *billing.AdjustmentUseCase) *LineItemHandler {
	return &LineItemHandler{uc: uc, adjustUC: adjustUC}
}

// Create crea una línea de pauta.
// POST /api/line-items
func (h *LineItemHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateLineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Create(companyID, in)
	if err != nil {
		return lineItemError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List lista líneas de pauta con filtros y paginación por cursor.
// GET /api/line-items
func (h *LineItemHandler) List(c *fiber.Ctx) error {
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
		return lineItemError(c, err)
	}
	return c.JSON(page)
}

// GetByID obtiene una línea de pauta.
// GET /api/line-items/:id
func (h *LineItemHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	item, err := h.uc.GetByID(companyID, c.Params("id"))
	if err != nil {
		return lineItemError(c, err)
	}
	return c.JSON(item)
}

// Update actualiza una línea de pauta (nunca el campo adjustments).
// PUT /api/line-items/:id
func (h *LineItemHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateLineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Update(companyID, c.Params("id"), in)
	if err != nil {
		return lineItemError(c, err)
	}
	return c.JSON(item)
}

// Delete elimina una línea de pauta no facturada.
// DELETE /api/line-items/:id
func (h *LineItemHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Delete(companyID, c.Params("id")); err != nil {
		return lineItemError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Adjust sobreescribe el ajuste de la línea dejando rastro en el change log.
// POST /api/line-items/:id/adjust
func (h *LineItemHandler) Adjust(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.adjustUC.AdjustLineItem(c.Context(), companyID, userID, c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "new_value y reason son requeridos"})
		}
		return lineItemError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// lineItemError mapea errores de dominio a HTTP para las rutas de líneas.
func lineItemError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrInvalidCursor):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CURSOR", Message: "cursor de paginación inválido"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "línea de pauta no encontrada"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "operación no permitida en el estado actual"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
