package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pauta-api/internal/application/billing"
	"github.com/jhoicas/Pauta-api/internal/application/dto"
	"github.com/jhoicas/Pauta-api/internal/domain"
)

// ExportHandler maneja las descargas CSV (protegido, módulo "exports").
type ExportHandler struct {
	uc *billing.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *billing.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Campaigns descarga el listado filtrado de campañas como CSV.
// GET /api/exports/campaigns
func (h *ExportHandler) Campaigns(c *fiber.Ctx) error {
	return h.serve(c, func(companyID string, in dto.ListRequest) (*billing.Artifact, error) {
		return h.uc.ExportCampaigns(companyID, in)
	})
}

// Invoices descarga el listado filtrado de facturas como CSV.
// GET /api/exports/invoices
func (h *ExportHandler) Invoices(c *fiber.Ctx) error {
	return h.serve(c, func(companyID string, in dto.ListRequest) (*billing.Artifact, error) {
		return h.uc.ExportInvoices(companyID, in)
	})
}

// LineItems descarga el listado filtrado de líneas de pauta como CSV.
// GET /api/exports/line-items
func (h *ExportHandler) LineItems(c *fiber.Ctx) error {
	return h.serve(c, func(companyID string, in dto.ListRequest) (*billing.Artifact, error) {
		return h.uc.ExportLineItems(companyID, in)
	})
}

// InvoiceChangeLog descarga el historial de ajustes de una factura como CSV.
// GET /api/exports/invoices/:id/changelog
func (h *ExportHandler) InvoiceChangeLog(c *fiber.Ctx) error {
	invoiceID := c.Params("id")
	return h.serve(c, func(companyID string, in dto.ListRequest) (*billing.Artifact, error) {
		return h.uc.ExportChangeLog(companyID, invoiceID, in)
	})
}

// serve ejecuta la exportación y arma la respuesta de descarga.
// Una exportación sin filas no produce archivo: responde 204 sin cuerpo.
func (h *ExportHandler) serve(c *fiber.Ctx, export func(string, dto.ListRequest) (*billing.Artifact, error)) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query params inválidos"})
	}
	artifact, err := export(companyID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
		case errors.Is(err, domain.ErrInvalidCursor):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CURSOR", Message: "cursor de paginación inválido"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	if len(artifact.Content) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+artifact.Filename+`.csv"`)
	return c.Send(artifact.Content)
}
